package convert

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Configuration selects what a conversion includes besides the target.
type Configuration struct {
	// IncludeTypeMembers converts methods, properties and indexers of types.
	IncludeTypeMembers bool
	// IncludeNestedTypes converts type declarations nested in types.
	IncludeNestedTypes bool
	// IncludeContext wraps the target in its enclosing types, namespaces and
	// file usings.
	IncludeContext bool
}

var (
	// Single converts the target alone: no members, no context.
	Single = Configuration{}
	// Context converts the target shell with its enclosing declarations.
	Context = Configuration{IncludeContext: true}
	// All converts the target with members, nested types and context.
	All = Configuration{IncludeTypeMembers: true, IncludeNestedTypes: true, IncludeContext: true}
)

// ParseConfiguration maps a preset name to its Configuration. Names are
// case-insensitive.
func ParseConfiguration(name string) (Configuration, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "single":
		return Single, nil
	case "context", "":
		return Context, nil
	case "all":
		return All, nil
	}
	return Configuration{}, errors.Newf("convert: unknown configuration %q (want single, context or all)", name)
}

// String returns the preset name, or a field listing for custom values.
func (c Configuration) String() string {
	switch c {
	case Single:
		return "single"
	case Context:
		return "context"
	case All:
		return "all"
	}
	return fmt.Sprintf("members=%t,nested=%t,context=%t", c.IncludeTypeMembers, c.IncludeNestedTypes, c.IncludeContext)
}
