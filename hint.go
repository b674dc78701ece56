package partialgen

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jward/partialgen/internal/syntax"
)

// HintExtension ends every generated file name.
const HintExtension = ".g.cs"

// HintName names the generated file for n: the enclosing namespaces and
// types outermost first, then n itself, dot separated. Generic types get a
// backtick and their arity, as in "Demo.Outer.Cache`2.g.cs".
func HintName(n syntax.Node) string {
	var parts []string
	for cur := n; cur != nil; cur = cur.Parent() {
		k := cur.Kind()
		switch {
		case k.IsType():
			parts = append(parts, arityName(cur.Identifier(), cur.Arity()))
		case k == syntax.KindMethod:
			parts = append(parts, arityName(cur.Identifier(), cur.Arity()))
		case k.IsNamespace(), k == syntax.KindProperty:
			parts = append(parts, cur.Identifier())
		case k == syntax.KindIndexer:
			parts = append(parts, "this")
		}
	}
	slices.Reverse(parts)
	return strings.Join(parts, ".") + HintExtension
}

func arityName(identifier string, arity int) string {
	if arity == 0 {
		return identifier
	}
	return fmt.Sprintf("%s`%d", identifier, arity)
}
