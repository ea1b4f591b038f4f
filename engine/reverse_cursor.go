package engine

import (
	"iter"
)

// ReverseCursor walks a stack from the top element down to the bottom.
//
// It reflects the live region at the moment ReadOnlyBegin or ReadOnlyEnd was
// called; mutating the stack during the walk is not detected.
type ReverseCursor[T any] struct {
	pos slot[T]
}

// ReadOnlyBegin returns a cursor at the top element. On an empty stack it is
// equal to ReadOnlyEnd.
func (s *BoundedStack[T]) ReadOnlyBegin() ReverseCursor[T] {
	return ReverseCursor[T]{pos: slot[T]{store: s.store, index: s.count - 1, bound: s.count}}
}

// ReadOnlyEnd returns the sentinel one below the bottom element. It is never
// dereferenced.
func (s *BoundedStack[T]) ReadOnlyEnd() ReverseCursor[T] {
	return ReverseCursor[T]{pos: slot[T]{store: s.store, index: -1, bound: s.count}}
}

func (c ReverseCursor[T]) Index() int { return c.pos.index }

func (c ReverseCursor[T]) Get() T {
	return *c.pos.ref("dereference")
}

// Advance moves c one element toward the bottom and returns the new position.
func (c *ReverseCursor[T]) Advance() ReverseCursor[T] {
	c.pos.backward()
	return *c
}

func (c *ReverseCursor[T]) PostAdvance() ReverseCursor[T] {
	prev := *c
	c.pos.backward()
	return prev
}

func (c ReverseCursor[T]) Equal(other ReverseCursor[T]) bool {
	return c.pos.same(other.pos)
}

// Backward yields the live elements from top to bottom.
func (s *BoundedStack[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for c, end := s.ReadOnlyBegin(), s.ReadOnlyEnd(); !c.Equal(end); c.Advance() {
			if !yield(c.Get()) {
				return
			}
		}
	}
}
