package describe

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"

	"github.com/jward/partialgen/internal/immutable"
	"github.com/jward/partialgen/internal/sum"
)

// fingerprintVersion is mixed into Fingerprint. Bump it whenever the
// canonical encoding changes so stale cache rows stop matching.
const fingerprintVersion = "describe/v1"

// encoder writes the canonical byte stream shared by Hash and Fingerprint.
// Every string is length-prefixed and every node starts with its kind, so
// distinct trees never produce the same stream.
type encoder struct {
	w io.Writer
}

func (e *encoder) kind(name string) { fmt.Fprintf(e.w, "(%s\n", name) }
func (e *encoder) end()             { io.WriteString(e.w, ")\n") }
func (e *encoder) str(s string)     { fmt.Fprintf(e.w, "%d:%s\n", len(s), s) }
func (e *encoder) int(n int)        { fmt.Fprintf(e.w, "i%d\n", n) }

func (e *encoder) bool(b bool) {
	if b {
		io.WriteString(e.w, "t\n")
		return
	}
	io.WriteString(e.w, "f\n")
}

func (e *encoder) count(n int) { fmt.Fprintf(e.w, "#%d\n", n) }

func encodeOption[T any](e *encoder, o sum.Option[T], fn func(T)) {
	v, ok := o.Get()
	e.bool(ok)
	if ok {
		fn(v)
	}
}

func encodeArray[T immutable.Value[T]](e *encoder, a immutable.Array[T], fn func(T)) {
	e.count(a.Len())
	for _, v := range a.All() {
		fn(v)
	}
}

func encodeNode[T Node](e *encoder) func(T) {
	return func(v T) { v.encode(e) }
}

func (u Using) encode(e *encoder) {
	e.kind("using")
	e.str(u.Text)
	e.end()
}

func (t TypeIdentifier) encode(e *encoder) {
	e.kind("type_identifier")
	e.int(int(t.Kind))
	e.str(t.Identifier)
	e.end()
}

func (l ModifierList) encode(e *encoder) {
	e.kind("modifier_list")
	encodeArray(e, l.Modifiers, func(s immutable.String) { e.str(string(s)) })
	e.end()
}

func (l TypeParameterList) encode(e *encoder) {
	e.kind("type_parameter_list")
	encodeOption(e, l.Parameters, e.str)
	e.end()
}

func (p Parameter) encode(e *encoder) {
	e.kind("parameter")
	p.Modifiers.encode(e)
	encodeOption(e, p.Type, encodeNode[TypeIdentifier](e))
	e.str(p.Identifier)
	e.end()
}

func (l ParameterList) encode(e *encoder) {
	e.kind("parameter_list")
	encodeArray(e, l.Parameters, encodeNode[Parameter](e))
	e.end()
}

func (l BracketedParameterList) encode(e *encoder) {
	e.kind("bracketed_parameter_list")
	encodeArray(e, l.Parameters, encodeNode[Parameter](e))
	e.end()
}

func (a Accessor) encode(e *encoder) {
	e.kind("accessor")
	e.str(a.Keyword)
	e.end()
}

func (l AccessorList) encode(e *encoder) {
	e.kind("accessor_list")
	encodeArray(e, l.Accessors, encodeNode[Accessor](e))
	e.end()
}

func (m Module) encode(e *encoder) {
	e.kind("module")
	e.bool(m.IsTarget)
	encodeArray(e, m.Usings, encodeNode[Using](e))
	encodeArray(e, m.Members, encodeNode[Member](e))
	e.end()
}

func (n Namespace) encode(e *encoder) {
	e.kind("namespace")
	e.bool(n.IsTarget)
	e.str(n.Name)
	e.bool(n.IsFileScoped)
	encodeArray(e, n.Usings, encodeNode[Using](e))
	encodeArray(e, n.Members, encodeNode[Member](e))
	e.end()
}

func (t NamedType) encode(e *encoder) {
	e.kind("type")
	e.bool(t.IsTarget)
	t.Modifiers.encode(e)
	e.str(t.Keyword)
	e.str(t.Identifier)
	t.TypeParameters.encode(e)
	e.int(t.Arity)
	encodeArray(e, t.Members, encodeNode[Member](e))
	e.end()
}

func (m Method) encode(e *encoder) {
	e.kind("method")
	e.bool(m.IsTarget)
	m.Modifiers.encode(e)
	encodeOption(e, m.ReturnType, encodeNode[TypeIdentifier](e))
	e.str(m.Identifier)
	m.TypeParameters.encode(e)
	e.int(m.Arity)
	m.Parameters.encode(e)
	e.end()
}

func (p BaseProperty) encodeBase(e *encoder) {
	e.bool(p.IsTarget)
	p.Modifiers.encode(e)
	encodeOption(e, p.Type, encodeNode[TypeIdentifier](e))
	p.Accessors.encode(e)
}

func (p Property) encode(e *encoder) {
	e.kind("property")
	p.encodeBase(e)
	e.str(p.Identifier)
	e.end()
}

func (x Indexer) encode(e *encoder) {
	e.kind("indexer")
	x.encodeBase(e)
	x.Parameters.encode(e)
	e.end()
}

// Hash returns a 64-bit hash of n's canonical encoding. Equal nodes hash
// equally.
func Hash(n Node) uint64 {
	d := xxhash.New()
	n.encode(&encoder{w: d})
	return d.Sum64()
}

// Fingerprint returns a hex SHA-256 of n's canonical encoding. It is stable
// across processes and suitable as a persistent cache key.
func Fingerprint(n Node) string {
	h := sha256.New()
	io.WriteString(h, fingerprintVersion+"\n")
	n.encode(&encoder{w: h})
	return hex.EncodeToString(h.Sum(nil))
}

// HashTo implementations let nodes be elements of immutable arrays.

func (u Using) HashTo(d *xxhash.Digest)     { u.encode(&encoder{w: d}) }
func (p Parameter) HashTo(d *xxhash.Digest) { p.encode(&encoder{w: d}) }
func (a Accessor) HashTo(d *xxhash.Digest)  { a.encode(&encoder{w: d}) }
func (m Module) HashTo(d *xxhash.Digest)    { m.encode(&encoder{w: d}) }
func (n Namespace) HashTo(d *xxhash.Digest) { n.encode(&encoder{w: d}) }
func (t NamedType) HashTo(d *xxhash.Digest) { t.encode(&encoder{w: d}) }
func (m Method) HashTo(d *xxhash.Digest)    { m.encode(&encoder{w: d}) }
func (p Property) HashTo(d *xxhash.Digest)  { p.encode(&encoder{w: d}) }
func (x Indexer) HashTo(d *xxhash.Digest)   { x.encode(&encoder{w: d}) }
