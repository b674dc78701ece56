package describe

import (
	"github.com/jward/partialgen/internal/sum"
)

// Walk visits n and its nested members in pre-order. Returning false from fn
// skips the children of that member. Non-member nodes are ignored.
func Walk(n Node, fn func(Member) bool) {
	m, ok := n.(Member)
	if !ok {
		return
	}
	if !fn(m) {
		return
	}
	for _, child := range Members(m).All() {
		Walk(child, fn)
	}
}

// CountTargets returns the number of members flagged as target.
func CountTargets(n Node) int {
	count := 0
	Walk(n, func(m Member) bool {
		if m.IsTargetNode() {
			count++
		}
		return true
	})
	return count
}

// FindTarget returns the first member flagged as target.
func FindTarget(n Node) sum.Option[Member] {
	found := sum.None[Member]()
	Walk(n, func(m Member) bool {
		if found.IsSome() {
			return false
		}
		if m.IsTargetNode() {
			found = sum.Some(m)
			return false
		}
		return true
	})
	return found
}

// TargetPath returns the chain of members from n down to the target,
// inclusive. It is empty when the tree has no target.
func TargetPath(n Node) []Member {
	m, ok := n.(Member)
	if !ok {
		return nil
	}
	if m.IsTargetNode() {
		return []Member{m}
	}
	for _, child := range Members(m).All() {
		if path := TargetPath(child); path != nil {
			return append([]Member{m}, path...)
		}
	}
	return nil
}
