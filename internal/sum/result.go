package sum

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

type resultTag uint8

const (
	tagInvalid resultTag = iota
	tagOk
	tagErr
)

// Result holds either a value (Ok) or an error payload (Err). The zero value
// is neither: any inspection of a Result that was not built with Ok or Err
// panics, so a forgotten assignment cannot silently pass as one branch.
type Result[T, E any] struct {
	value T
	err   E
	tag   resultTag
}

// Ok returns a successful Result.
func Ok[T, E any](v T) Result[T, E] {
	return Result[T, E]{value: v, tag: tagOk}
}

// Err returns a failed Result.
func Err[T, E any](e E) Result[T, E] {
	return Result[T, E]{err: e, tag: tagErr}
}

func (r Result[T, E]) validate() {
	if r.tag == tagInvalid {
		panic(errors.AssertionFailedf("sum: Result was not constructed with Ok or Err"))
	}
}

// IsOk reports whether r is the Ok variant.
func (r Result[T, E]) IsOk() bool {
	r.validate()
	return r.tag == tagOk
}

// IsErr reports whether r is the Err variant.
func (r Result[T, E]) IsErr() bool {
	r.validate()
	return r.tag == tagErr
}

// Value returns the Ok payload. Panics on Err.
func (r Result[T, E]) Value() T {
	r.validate()
	if r.tag != tagOk {
		panic(errors.AssertionFailedf("sum: Value called on Err"))
	}
	return r.value
}

// ErrorValue returns the Err payload. Panics on Ok.
func (r Result[T, E]) ErrorValue() E {
	r.validate()
	if r.tag != tagErr {
		panic(errors.AssertionFailedf("sum: ErrorValue called on Ok"))
	}
	return r.err
}

func (r Result[T, E]) String() string {
	if r.IsOk() {
		return fmt.Sprintf("Ok %v", r.value)
	}
	return fmt.Sprintf("Err %v", r.err)
}

// MapResult transforms the Ok payload and passes Err through.
func MapResult[T, U, E any](r Result[T, E], fn func(T) U) Result[U, E] {
	if r.IsOk() {
		return Ok[U, E](fn(r.value))
	}
	return Err[U](r.err)
}

// MapError transforms the Err payload and passes Ok through.
func MapError[T, E, F any](r Result[T, E], fn func(E) F) Result[T, F] {
	if r.IsErr() {
		return Err[T](fn(r.err))
	}
	return Ok[T, F](r.value)
}

// BindResult chains a Result-returning computation, stopping at the first Err.
func BindResult[T, U, E any](r Result[T, E], fn func(T) Result[U, E]) Result[U, E] {
	if r.IsOk() {
		return fn(r.value)
	}
	return Err[U](r.err)
}

// ToOption drops the error payload.
func ToOption[T, E any](r Result[T, E]) Option[T] {
	if r.IsOk() {
		return Some(r.value)
	}
	return None[T]()
}

// ResultEqual compares two results variant-wise.
func ResultEqual[T, E any](a, b Result[T, E], eqValue func(T, T) bool, eqErr func(E, E) bool) bool {
	a.validate()
	b.validate()
	switch {
	case a.tag == tagOk && b.tag == tagOk:
		return eqValue(a.value, b.value)
	case a.tag == tagErr && b.tag == tagErr:
		return eqErr(a.err, b.err)
	default:
		return false
	}
}
