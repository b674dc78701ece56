// Package immutable provides persistent sequence types with value semantics.
//
// Go slices compare by identity (or not at all), which makes them useless as
// cache keys. Array and Stack compare element-wise and hash to a stable
// 64-bit value, so two independently built trees with the same content are
// interchangeable for the render cache.
package immutable

import (
	"iter"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Value is the element constraint: elements compare by value and can feed
// their canonical bytes into a running digest.
type Value[T any] interface {
	Equal(other T) bool
	HashTo(d *xxhash.Digest)
}

// Array is an immutable, order-sensitive sequence. The zero value is an
// empty array.
type Array[T Value[T]] struct {
	items []T
}

// NewArray copies items into a new Array.
func NewArray[T Value[T]](items ...T) Array[T] {
	if len(items) == 0 {
		return Array[T]{}
	}
	cp := make([]T, len(items))
	copy(cp, items)
	return Array[T]{items: cp}
}

// Len returns the number of elements.
func (a Array[T]) Len() int { return len(a.items) }

// IsEmpty reports whether the array has no elements.
func (a Array[T]) IsEmpty() bool { return len(a.items) == 0 }

// At returns the element at index i. It panics when i is out of range.
func (a Array[T]) At(i int) T { return a.items[i] }

// All yields index/element pairs in order.
func (a Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range a.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Slice returns a copy of the elements.
func (a Array[T]) Slice() []T {
	cp := make([]T, len(a.items))
	copy(cp, a.items)
	return cp
}

// Append returns a new Array with vs added at the end.
func (a Array[T]) Append(vs ...T) Array[T] {
	out := make([]T, 0, len(a.items)+len(vs))
	out = append(out, a.items...)
	out = append(out, vs...)
	return Array[T]{items: out}
}

// Equal reports whether both arrays have the same length and pairwise equal
// elements.
func (a Array[T]) Equal(other Array[T]) bool {
	if len(a.items) != len(other.items) {
		return false
	}
	for i := range a.items {
		if !a.items[i].Equal(other.items[i]) {
			return false
		}
	}
	return true
}

// HashTo writes the array length followed by every element.
func (a Array[T]) HashTo(d *xxhash.Digest) {
	writeLen(d, len(a.items))
	for _, v := range a.items {
		v.HashTo(d)
	}
}

// Hash returns a stable hash over the elements. Equal arrays hash equally.
func (a Array[T]) Hash() uint64 {
	d := xxhash.New()
	a.HashTo(d)
	return d.Sum64()
}

// Join formats every element with fn and joins them with sep.
func Join[T Value[T]](a Array[T], sep string, fn func(T) string) string {
	parts := make([]string, 0, a.Len())
	for _, v := range a.items {
		parts = append(parts, fn(v))
	}
	return strings.Join(parts, sep)
}

func writeLen(d *xxhash.Digest, n int) {
	var buf [8]byte
	u := uint64(n)
	for i := range buf {
		buf[i] = byte(u >> (8 * i))
	}
	d.Write(buf[:])
}

// String is a string element usable in Array and Stack.
type String string

// Equal compares the underlying strings.
func (s String) Equal(other String) bool { return s == other }

// HashTo writes a length-prefixed copy of s.
func (s String) HashTo(d *xxhash.Digest) {
	writeLen(d, len(s))
	d.WriteString(string(s))
}

// Strings builds an Array of String from plain strings.
func Strings(ss ...string) Array[String] {
	items := make([]String, len(ss))
	for i, s := range ss {
		items[i] = String(s)
	}
	return NewArray(items...)
}
