package engine

import (
	"iter"
)

// slot is the position shared by every cursor kind: the store it borrows, the
// addressed index, and the number of live elements when the cursor was taken.
// Identity is (store, index); bound only guards dereferencing.
type slot[T any] struct {
	store *arena[T]
	index int
	bound int
}

func (p slot[T]) same(o slot[T]) bool {
	return p.store == o.store && p.index == o.index
}

func (p slot[T]) ref(op string) *T {
	if p.index < 0 || p.index >= p.bound {
		panic(CursorError{Op: op, Index: p.index, Bound: p.bound})
	}
	return &p.store.slots[p.index]
}

func (p *slot[T]) forward() {
	if p.index >= p.bound {
		panic(CursorError{Op: "advance past end", Index: p.index, Bound: p.bound})
	}
	p.index++
}

func (p *slot[T]) backward() {
	if p.index < 0 {
		panic(CursorError{Op: "advance past sentinel", Index: p.index, Bound: p.bound})
	}
	p.index--
}

func distance[T any](first, last slot[T]) (int, error) {
	if first.store != last.store {
		return 0, errorf(InvalidRange, "range cursors address different stores")
	}
	n := last.index - first.index
	if n < 0 {
		return 0, errorf(InvalidRange, "inverted range [%d, %d)", first.index, last.index)
	}
	return n, nil
}

// Position is implemented by both forward cursor kinds so that a Cursor and a
// ConstCursor can be compared in either direction.
//
// Stacks of capacity zero own no store, so all of their cursors share the nil
// store and compare equal across stacks; every such cursor is also an end
// position, so a traversal over any pair of them visits nothing.
type Position[T any] interface {
	position() slot[T]
}

/* *** Mutable forward cursor *** */

// Cursor walks a stack from bottom to top and may modify the addressed element.
// It must not be dereferenced at End().
type Cursor[T any] struct {
	pos slot[T]
}

// Begin returns a cursor at the bottom element.
func (s *BoundedStack[T]) Begin() Cursor[T] {
	return Cursor[T]{pos: slot[T]{store: s.store, index: 0, bound: s.count}}
}

// End returns a cursor one past the top element.
func (s *BoundedStack[T]) End() Cursor[T] {
	return Cursor[T]{pos: slot[T]{store: s.store, index: s.count, bound: s.count}}
}

func (c Cursor[T]) position() slot[T] { return c.pos }

// Index is the addressed slot index. It is informational only.
func (c Cursor[T]) Index() int { return c.pos.index }

// Const converts c to a read-only cursor at the same position.
func (c Cursor[T]) Const() ConstCursor[T] {
	return ConstCursor[T]{pos: c.pos}
}

func (c Cursor[T]) Get() T {
	return *c.pos.ref("dereference")
}

func (c Cursor[T]) Set(value T) {
	*c.pos.ref("assign") = value
}

// Ptr returns a reference to the addressed element.
func (c Cursor[T]) Ptr() *T {
	return c.pos.ref("dereference")
}

// Advance moves c to the next element and returns the new position.
func (c *Cursor[T]) Advance() Cursor[T] {
	c.pos.forward()
	return *c
}

// PostAdvance moves c to the next element and returns the previous position.
func (c *Cursor[T]) PostAdvance() Cursor[T] {
	prev := *c
	c.pos.forward()
	return prev
}

func (c Cursor[T]) Equal(other Position[T]) bool {
	return c.pos.same(other.position())
}

/* *** Read-only forward cursor *** */

// ConstCursor walks a stack from bottom to top without modifying it.
type ConstCursor[T any] struct {
	pos slot[T]
}

func (s *BoundedStack[T]) ConstBegin() ConstCursor[T] {
	return s.Begin().Const()
}

func (s *BoundedStack[T]) ConstEnd() ConstCursor[T] {
	return s.End().Const()
}

func (c ConstCursor[T]) position() slot[T] { return c.pos }

func (c ConstCursor[T]) Index() int { return c.pos.index }

func (c ConstCursor[T]) Get() T {
	return *c.pos.ref("dereference")
}

func (c *ConstCursor[T]) Advance() ConstCursor[T] {
	c.pos.forward()
	return *c
}

func (c *ConstCursor[T]) PostAdvance() ConstCursor[T] {
	prev := *c
	c.pos.forward()
	return prev
}

func (c ConstCursor[T]) Equal(other Position[T]) bool {
	return c.pos.same(other.position())
}

// All yields the live elements from bottom to top.
func (s *BoundedStack[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for c, end := s.ConstBegin(), s.ConstEnd(); !c.Equal(end); c.Advance() {
			if !yield(c.Get()) {
				return
			}
		}
	}
}
