package csharp

import (
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/partialgen/internal/syntax"
)

// The pinned grammar predates bodiless type declarations such as
// `public partial class Inner;` and leaves them as ERROR nodes. They are
// recovered from the node text.
var bodilessPattern = regexp.MustCompile(`^((?:\[[^\]]*\]\s*)*)((?:[a-z]+\s+)*?)` +
	`(class|struct|interface|record\s+class|record\s+struct|record)\s+` +
	`([A-Za-z_@][A-Za-z0-9_]*)\s*(<[^<>]*>)?\s*;?$`)

// bodilessType is a type declaration recovered from an ERROR node.
type bodilessType struct {
	kind           syntax.Kind
	keyword        string
	identifier     string
	modifiers      []string
	typeParameters string
}

func recoverBodiless(n *sitter.Node, src []byte) *bodilessType {
	if n.Type() != "ERROR" {
		return nil
	}
	p := n.Parent()
	if p == nil || (p.Type() != "declaration_list" && p.Type() != "compilation_unit") {
		return nil
	}
	m := bodilessPattern.FindStringSubmatch(strings.TrimSpace(n.Content(src)))
	if m == nil {
		return nil
	}
	var mods []string
	for _, mod := range strings.Fields(m[2]) {
		if !modifierTokens[mod] {
			return nil
		}
		mods = append(mods, mod)
	}
	keyword := strings.Join(strings.Fields(m[3]), " ")
	b := &bodilessType{
		keyword:        keyword,
		identifier:     m[4],
		modifiers:      mods,
		typeParameters: m[5],
	}
	switch keyword {
	case "class":
		b.kind = syntax.KindClass
	case "struct":
		b.kind = syntax.KindStruct
	case "interface":
		b.kind = syntax.KindInterface
	default:
		b.kind = syntax.KindRecord
	}
	return b
}

func (b *bodilessType) arity() int {
	if b.typeParameters == "" {
		return 0
	}
	return strings.Count(b.typeParameters, ",") + 1
}
