// Package sum provides the two small sum types used across partialgen in
// place of nil pointers and sentinel values: Option for expected absence and
// Result for a value-or-error outcome that must be inspected explicitly.
//
// Both types are values. Combinators are free functions because Go methods
// cannot introduce new type parameters.
package sum

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Option holds either a value (Some) or nothing (None). The zero value is
// None.
type Option[T any] struct {
	value T
	some  bool
}

// Some returns an Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, some: true}
}

// None returns an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// FromPtr returns Some(*p) for a non-nil pointer and None otherwise.
func FromPtr[T any](p *T) Option[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// IsSome reports whether the option holds a value.
func (o Option[T]) IsSome() bool { return o.some }

// IsNone reports whether the option is empty.
func (o Option[T]) IsNone() bool { return !o.some }

// Value returns the held value. Calling Value on None is a programming error
// and panics.
func (o Option[T]) Value() T {
	if !o.some {
		panic(errors.AssertionFailedf("sum: Value called on None"))
	}
	return o.value
}

// Get returns the held value and whether it was present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.some
}

// OrDefault returns the held value, or def when empty.
func (o Option[T]) OrDefault(def T) T {
	if o.some {
		return o.value
	}
	return def
}

func (o Option[T]) String() string {
	if o.some {
		return fmt.Sprintf("Some %v", o.value)
	}
	return "None"
}

// Map applies fn to the held value. None maps to None.
func Map[T, U any](o Option[T], fn func(T) U) Option[U] {
	if !o.some {
		return None[U]()
	}
	return Some(fn(o.value))
}

// Bind chains an Option-returning computation, short-circuiting on None.
func Bind[T, U any](o Option[T], fn func(T) Option[U]) Option[U] {
	if !o.some {
		return None[U]()
	}
	return fn(o.value)
}

// Where keeps the value only when pred holds.
func Where[T any](o Option[T], pred func(T) bool) Option[T] {
	if o.some && pred(o.value) {
		return o
	}
	return None[T]()
}

// OrElse returns o when it holds a value, otherwise alt.
func OrElse[T any](o Option[T], alt Option[T]) Option[T] {
	if o.some {
		return o
	}
	return alt
}

// Match dispatches to some or none depending on the variant.
func Match[T, R any](o Option[T], some func(T) R, none func() R) R {
	if o.some {
		return some(o.value)
	}
	return none()
}

// OptionEqual compares two options, using eq for the held values.
func OptionEqual[T any](a, b Option[T], eq func(T, T) bool) bool {
	switch {
	case a.some && b.some:
		return eq(a.value, b.value)
	case !a.some && !b.some:
		return true
	default:
		return false
	}
}
