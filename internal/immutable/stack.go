package immutable

import (
	"iter"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
)

type stackNode[T any] struct {
	value T
	next  *stackNode[T]
	size  int
}

// Stack is a persistent LIFO stack. Push and Pop return new stacks that share
// structure with the receiver, which is never modified. The zero value is an
// empty stack.
type Stack[T Value[T]] struct {
	head *stackNode[T]
}

// NewStack pushes items in order, so the last item ends up on top.
func NewStack[T Value[T]](items ...T) Stack[T] {
	var s Stack[T]
	for _, v := range items {
		s = s.Push(v)
	}
	return s
}

// IsEmpty reports whether the stack has no elements.
func (s Stack[T]) IsEmpty() bool { return s.head == nil }

// Len returns the number of elements.
func (s Stack[T]) Len() int {
	if s.head == nil {
		return 0
	}
	return s.head.size
}

// Push returns a new stack with v on top.
func (s Stack[T]) Push(v T) Stack[T] {
	return Stack[T]{head: &stackNode[T]{value: v, next: s.head, size: s.Len() + 1}}
}

// Peek returns the top element. Peeking an empty stack panics.
func (s Stack[T]) Peek() T {
	if s.head == nil {
		panic(errors.AssertionFailedf("immutable: Peek on empty stack"))
	}
	return s.head.value
}

// Pop returns the stack without its top element and the removed element.
// Popping an empty stack panics.
func (s Stack[T]) Pop() (Stack[T], T) {
	if s.head == nil {
		panic(errors.AssertionFailedf("immutable: Pop on empty stack"))
	}
	return Stack[T]{head: s.head.next}, s.head.value
}

// All yields elements from top to bottom.
func (s Stack[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := s.head; n != nil; n = n.next {
			if !yield(n.value) {
				return
			}
		}
	}
}

// Equal compares element-wise from the top.
func (s Stack[T]) Equal(other Stack[T]) bool {
	if s.Len() != other.Len() {
		return false
	}
	a, b := s.head, other.head
	for a != nil {
		if a != b && !a.value.Equal(b.value) {
			return false
		}
		a, b = a.next, b.next
	}
	return true
}

// HashTo writes the length followed by elements from top to bottom.
func (s Stack[T]) HashTo(d *xxhash.Digest) {
	writeLen(d, s.Len())
	for n := s.head; n != nil; n = n.next {
		n.value.HashTo(d)
	}
}

// Hash returns a stable hash over the elements. Equal stacks hash equally.
func (s Stack[T]) Hash() uint64 {
	d := xxhash.New()
	s.HashTo(d)
	return d.Sum64()
}
