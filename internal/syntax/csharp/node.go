package csharp

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/partialgen/internal/syntax"
)

var declKinds = map[string]syntax.Kind{
	"compilation_unit":                  syntax.KindCompilationUnit,
	"namespace_declaration":             syntax.KindNamespace,
	"file_scoped_namespace_declaration": syntax.KindFileScopedNamespace,
	"class_declaration":                 syntax.KindClass,
	"struct_declaration":                syntax.KindStruct,
	"interface_declaration":             syntax.KindInterface,
	"record_declaration":                syntax.KindRecord,
	"record_struct_declaration":         syntax.KindRecord,
	"method_declaration":                syntax.KindMethod,
	"property_declaration":              syntax.KindProperty,
	"indexer_declaration":               syntax.KindIndexer,
}

// Modifier keywords, for grammar revisions that emit them as anonymous
// tokens instead of modifier nodes.
var modifierTokens = map[string]bool{
	"public": true, "private": true, "protected": true, "internal": true,
	"static": true, "partial": true, "abstract": true, "sealed": true,
	"virtual": true, "override": true, "readonly": true, "async": true,
	"extern": true, "unsafe": true, "new": true, "required": true,
	"file": true, "volatile": true, "const": true,
}

var paramModifierTokens = map[string]bool{
	"this": true, "ref": true, "out": true, "in": true,
	"params": true, "scoped": true, "readonly": true,
}

var accessorTokens = map[string]bool{
	"get": true, "set": true, "init": true, "add": true, "remove": true,
}

// Node is a C# declaration node. It implements syntax.Node.
type Node struct {
	n *sitter.Node
	f *File
	// bodiless is set when n is an ERROR node holding a bodiless type
	// declaration.
	bodiless *bodilessType
}

var _ syntax.Node = (*Node)(nil)

// SitterNode returns the underlying tree-sitter node.
func (n *Node) SitterNode() *sitter.Node { return n.n }

// Line returns the 1-based line the declaration starts on.
func (n *Node) Line() int { return int(n.n.StartPoint().Row) + 1 }

func (n *Node) Kind() syntax.Kind {
	if n.bodiless != nil {
		return n.bodiless.kind
	}
	if k, ok := declKinds[n.n.Type()]; ok {
		return k
	}
	return syntax.KindOther
}

func (n *Node) Text() string { return n.f.text(n.n) }

func children(n *sitter.Node) []*sitter.Node {
	count := int(n.ChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, n.Child(i))
	}
	return out
}

func namedChildren(n *sitter.Node) []*sitter.Node {
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, n.NamedChild(i))
	}
	return out
}

func childOfType(n *sitter.Node, types ...string) *sitter.Node {
	for _, c := range namedChildren(n) {
		for _, t := range types {
			if c.Type() == t {
				return c
			}
		}
	}
	return nil
}

// field returns the first child found under any of the field names, then
// falls back to the first named child of any of the given types.
func field(n *sitter.Node, names []string, types ...string) *sitter.Node {
	for _, name := range names {
		if c := n.ChildByFieldName(name); c != nil {
			return c
		}
	}
	if len(types) == 0 {
		return nil
	}
	return childOfType(n, types...)
}

func (n *Node) Modifiers() []string {
	if n.bodiless != nil {
		return n.bodiless.modifiers
	}
	var mods []string
	for _, c := range children(n.n) {
		switch {
		case c.Type() == "attribute_list":
			continue
		case c.Type() == "modifier":
			mods = append(mods, strings.TrimSpace(n.f.text(c)))
		case !c.IsNamed() && modifierTokens[c.Type()]:
			mods = append(mods, c.Type())
		default:
			return mods
		}
	}
	return mods
}

func (n *Node) Keyword() string {
	if n.bodiless != nil {
		return n.bodiless.keyword
	}
	switch n.n.Type() {
	case "class_declaration":
		return "class"
	case "struct_declaration":
		return "struct"
	case "interface_declaration":
		return "interface"
	case "record_struct_declaration":
		return "record struct"
	case "record_declaration":
		kw := "record"
		for _, c := range children(n.n) {
			if c.IsNamed() {
				continue
			}
			if t := c.Type(); t == "class" || t == "struct" {
				return kw + " " + t
			}
		}
		return kw
	}
	return ""
}

func (n *Node) nameNode() *sitter.Node {
	if c := n.n.ChildByFieldName("name"); c != nil {
		return c
	}
	switch n.Kind() {
	case syntax.KindNamespace, syntax.KindFileScopedNamespace:
		return childOfType(n.n, "qualified_name", "identifier")
	case syntax.KindMethod, syntax.KindProperty:
		// Positional fallback: the type comes first, then the name.
		var seen int
		for _, c := range namedChildren(n.n) {
			switch c.Type() {
			case "attribute_list", "modifier", "explicit_interface_specifier":
				continue
			}
			seen++
			if seen == 2 && c.Type() == "identifier" {
				return c
			}
		}
		return nil
	}
	return childOfType(n.n, "identifier")
}

func (n *Node) Identifier() string {
	if n.bodiless != nil {
		return n.bodiless.identifier
	}
	return strings.TrimSpace(n.f.text(n.nameNode()))
}

func (n *Node) typeParameterList() *sitter.Node {
	return field(n.n, []string{"type_parameters"}, "type_parameter_list")
}

func (n *Node) TypeParameters() string {
	if n.bodiless != nil {
		return n.bodiless.typeParameters
	}
	return strings.TrimSpace(n.f.text(n.typeParameterList()))
}

func (n *Node) Arity() int {
	if n.bodiless != nil {
		return n.bodiless.arity()
	}
	tpl := n.typeParameterList()
	if tpl == nil {
		return 0
	}
	count := 0
	for _, c := range namedChildren(tpl) {
		if c.Type() == "type_parameter" {
			count++
		}
	}
	return count
}

func (n *Node) typeNode() *sitter.Node {
	switch n.Kind() {
	case syntax.KindMethod:
		if c := field(n.n, []string{"returns", "type"}); c != nil {
			return c
		}
	case syntax.KindProperty, syntax.KindIndexer:
		if c := field(n.n, []string{"type"}); c != nil {
			return c
		}
	default:
		return nil
	}
	for _, c := range namedChildren(n.n) {
		switch c.Type() {
		case "attribute_list", "modifier":
			continue
		}
		return c
	}
	return nil
}

func (n *Node) Type() syntax.TypeRef {
	return n.f.typeRef(n.typeNode())
}

func (f *File) typeRef(t *sitter.Node) syntax.TypeRef {
	if t == nil || t.IsMissing() || t.Type() == "ERROR" || t.HasError() {
		return syntax.TypeRef{}
	}
	text := strings.TrimSpace(f.text(t))
	if text == "" {
		return syntax.TypeRef{}
	}
	if t.Type() == "predefined_type" {
		return syntax.TypeRef{Text: text, Kind: syntax.TypePredefined}
	}
	return syntax.TypeRef{Text: text, Kind: syntax.TypeNamed}
}

func (n *Node) Parameters() []syntax.Param {
	var list *sitter.Node
	switch n.Kind() {
	case syntax.KindMethod:
		list = field(n.n, []string{"parameters"}, "parameter_list")
	case syntax.KindIndexer:
		list = field(n.n, []string{"parameters"}, "bracketed_parameter_list")
	}
	if list == nil {
		return nil
	}
	var params []syntax.Param
	for _, c := range namedChildren(list) {
		if c.Type() == "parameter" {
			params = append(params, n.f.param(c))
		}
	}
	return params
}

func (f *File) param(p *sitter.Node) syntax.Param {
	var out syntax.Param
	for _, c := range children(p) {
		switch {
		case c.Type() == "parameter_modifier" || c.Type() == "modifier":
			out.Modifiers = append(out.Modifiers, strings.TrimSpace(f.text(c)))
		case !c.IsNamed() && paramModifierTokens[c.Type()]:
			out.Modifiers = append(out.Modifiers, c.Type())
		}
	}

	typ := p.ChildByFieldName("type")
	name := p.ChildByFieldName("name")
	if typ == nil || name == nil {
		var rest []*sitter.Node
		for _, c := range namedChildren(p) {
			switch c.Type() {
			case "attribute_list", "parameter_modifier", "modifier", "equals_value_clause":
				continue
			}
			rest = append(rest, c)
		}
		switch {
		case len(rest) >= 2:
			typ, name = rest[0], rest[1]
		case len(rest) == 1 && name == nil:
			name = rest[0]
		}
	}
	out.Type = f.typeRef(typ)
	out.Identifier = strings.TrimSpace(f.text(name))
	return out
}

func (n *Node) Accessors() ([]string, bool) {
	switch n.Kind() {
	case syntax.KindProperty, syntax.KindIndexer:
	default:
		return nil, false
	}
	list := field(n.n, []string{"accessors"}, "accessor_list")
	if list == nil {
		return nil, false
	}
	var out []string
	for _, acc := range namedChildren(list) {
		if acc.Type() != "accessor_declaration" {
			continue
		}
		if kw := n.f.accessorKeyword(acc); kw != "" {
			out = append(out, kw)
		}
	}
	return out, true
}

func (f *File) accessorKeyword(acc *sitter.Node) string {
	if c := acc.ChildByFieldName("name"); c != nil {
		return strings.TrimSpace(f.text(c))
	}
	for _, c := range children(acc) {
		if accessorTokens[c.Type()] {
			return c.Type()
		}
	}
	return ""
}

func (n *Node) Attributes() []string {
	var out []string
	for _, list := range namedChildren(n.n) {
		if list.Type() != "attribute_list" {
			continue
		}
		for _, attr := range namedChildren(list) {
			if attr.Type() != "attribute" {
				continue
			}
			name := field(attr, []string{"name"}, "identifier", "qualified_name", "generic_name", "alias_qualified_name")
			if name != nil {
				out = append(out, strings.TrimSpace(n.f.text(name)))
			}
		}
	}
	return out
}
