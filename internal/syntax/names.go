package syntax

import (
	"strings"
	"sync"
)

const attributeSuffix = "Attribute"

// SimpleName is the short form of an attribute type name, with and without
// the Attribute suffix.
type SimpleName struct {
	Name          string
	AttributeName string
}

// NameCache memoizes SimpleName splits. It is safe for concurrent use;
// racing inserts for the same key store equal values.
type NameCache struct {
	names sync.Map
}

// NewNameCache creates an empty cache.
func NewNameCache() *NameCache {
	return &NameCache{}
}

// SimpleName splits a full attribute type name: "Foo.BarAttribute" and
// "Foo.Bar" both yield {Bar, BarAttribute}.
func (c *NameCache) SimpleName(fullName string) SimpleName {
	if v, ok := c.names.Load(fullName); ok {
		return v.(SimpleName)
	}
	v, _ := c.names.LoadOrStore(fullName, splitName(fullName))
	return v.(SimpleName)
}

// Len returns the number of cached names.
func (c *NameCache) Len() int {
	n := 0
	c.names.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func splitName(fullName string) SimpleName {
	last := fullName[strings.LastIndexByte(fullName, '.')+1:]
	if base, ok := strings.CutSuffix(last, attributeSuffix); ok {
		return SimpleName{Name: base, AttributeName: last}
	}
	return SimpleName{Name: last, AttributeName: last + attributeSuffix}
}

// MatchesAttribute reports whether an attribute, as written in source, refers to
// the type fullName. Without a semantic model this is a textual match on the
// simple or fully qualified name, with or without the Attribute suffix.
func (c *NameCache) MatchesAttribute(written, fullName string) bool {
	if fullName == "" {
		return false
	}
	written = strings.TrimPrefix(strings.TrimSpace(written), "global::")
	simple := c.SimpleName(fullName)
	if written == simple.Name || written == simple.AttributeName {
		return true
	}
	full := strings.TrimSuffix(fullName, attributeSuffix)
	return written == full || written == full+attributeSuffix
}

// HasAttribute reports whether n carries an attribute referring to fullName.
func (c *NameCache) HasAttribute(n Node, fullName string) bool {
	for _, a := range n.Attributes() {
		if c.MatchesAttribute(a, fullName) {
			return true
		}
	}
	return false
}
