package engine

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// arena is the fixed-length backing store owned by exactly one BoundedStack.
// Cursors borrow it; they never own it.
type arena[T any] struct {
	slots []T
}

func allocate[T any](capacity int) (a *arena[T], err error) {
	if capacity < 0 {
		return nil, errorf(InvalidRange, "capacity must be non-negative, got %d", capacity)
	}
	if capacity == 0 {
		return nil, nil
	}

	// make panics when the length cannot be satisfied; surface that as an error
	// so a failed construction never hands out a half-built stack.
	defer func() {
		if r := recover(); r != nil {
			cause, _ := r.(error)
			a, err = nil, Error{
				ErrorCode: AllocationFailure,
				Message:   fmt.Sprintf("cannot allocate %d slots: %v", capacity, r),
				Err:       cause,
			}
		}
	}()
	return &arena[T]{slots: make([]T, capacity)}, nil
}

// BoundedStack is a LIFO container whose capacity is fixed at construction.
// The zero value is a usable stack of capacity zero, permanently empty and full.
//
// A BoundedStack is not safe for concurrent use.
type BoundedStack[T any] struct {
	store    *arena[T]
	capacity int
	count    int
}

// New returns a stack of capacity zero.
func New[T any]() *BoundedStack[T] {
	return &BoundedStack[T]{}
}

// WithCapacity returns an empty stack able to hold capacity elements.
func WithCapacity[T any](capacity int) (*BoundedStack[T], error) {
	store, err := allocate[T](capacity)
	if err != nil {
		return nil, err
	}
	return &BoundedStack[T]{store: store, capacity: capacity}, nil
}

// FromSlice returns a full stack holding a copy of items; items[0] is the bottom.
func FromSlice[T any](items []T) (*BoundedStack[T], error) {
	return FromSliceFunc(items, identity[T])
}

// FromSliceFunc is like FromSlice but converts every element with convert.
func FromSliceFunc[S, T any](items []S, convert func(S) T) (*BoundedStack[T], error) {
	s, err := WithCapacity[T](len(items))
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		s.store.slots[s.count] = convert(item)
		s.count++
	}
	return s, nil
}

// FromSeq drains seq into a new stack whose capacity is the number of
// elements produced.
func FromSeq[T any](seq iter.Seq[T]) (*BoundedStack[T], error) {
	return FromSlice(slices.Collect(seq))
}

// FromRange copies the half-open range [first, last) into a new stack of
// capacity last-first. Both cursors must address the same store and the range
// must not be inverted, otherwise ErrInvalidRange is returned. Cursors of two
// different zero-capacity stacks share the nil store and form a valid empty
// range.
func FromRange[T any](first, last ConstCursor[T]) (*BoundedStack[T], error) {
	n, err := distance(first.pos, last.pos)
	if err != nil {
		return nil, err
	}
	s, err := WithCapacity[T](n)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		s.count = copy(s.store.slots, first.pos.store.slots[first.pos.index:last.pos.index])
	}
	return s, nil
}

// Clone returns a deep copy of s: same capacity, same live elements, its own
// store. Elements are copied by assignment.
func (s *BoundedStack[T]) Clone() (*BoundedStack[T], error) {
	c, err := WithCapacity[T](s.capacity)
	if err != nil {
		return nil, err
	}
	if s.count > 0 {
		c.count = copy(c.store.slots, s.store.slots[:s.count])
	}
	return c, nil
}

// Assign replaces the contents of s with a copy of other. The copy is built
// first and then swapped in, so on error s is left untouched.
func (s *BoundedStack[T]) Assign(other *BoundedStack[T]) error {
	if s == other {
		return nil
	}
	tmp, err := other.Clone()
	if err != nil {
		return err
	}
	s.swap(tmp)
	return nil
}

func (s *BoundedStack[T]) swap(other *BoundedStack[T]) {
	s.store, other.store = other.store, s.store
	s.capacity, other.capacity = other.capacity, s.capacity
	s.count, other.count = other.count, s.count
}

// EqualFunc reports whether s and other have the same capacity, the same size
// and pairwise equal live elements according to eq.
func (s *BoundedStack[T]) EqualFunc(other *BoundedStack[T], eq func(a, b T) bool) bool {
	if s.capacity != other.capacity || s.count != other.count {
		return false
	}
	for i := 0; i < s.count; i++ {
		if !eq(s.store.slots[i], other.store.slots[i]) {
			return false
		}
	}
	return true
}

// Equal is EqualFunc using ==.
func Equal[T comparable](a, b *BoundedStack[T]) bool {
	return a.EqualFunc(b, func(x, y T) bool { return x == y })
}

// Push places value on top of the stack.
func (s *BoundedStack[T]) Push(value T) error {
	if s.count >= s.capacity {
		return errorf(CapacityExceeded, "push on full stack (capacity %d)", s.capacity)
	}
	s.store.slots[s.count] = value
	s.count++
	return nil
}

// Pop removes and returns the top element.
func (s *BoundedStack[T]) Pop() (T, error) {
	if s.count == 0 {
		var zero T
		return zero, errorf(Underflow, "pop on empty stack")
	}
	s.count--
	return s.store.slots[s.count], nil
}

// Top returns the top element without removing it.
func (s *BoundedStack[T]) Top() (T, error) {
	if s.count == 0 {
		var zero T
		return zero, errorf(Underflow, "top on empty stack")
	}
	return s.store.slots[s.count-1], nil
}

// Clear empties the stack logically. The store and the capacity are kept.
func (s *BoundedStack[T]) Clear() {
	s.count = 0
}

func (s *BoundedStack[T]) IsEmpty() bool {
	return s.count == 0
}

func (s *BoundedStack[T]) IsFull() bool {
	return s.count == s.capacity
}

// Len returns the number of live elements.
func (s *BoundedStack[T]) Len() int {
	return s.count
}

// Cap returns the fixed capacity.
func (s *BoundedStack[T]) Cap() int {
	return s.capacity
}

// Fill overwrites the stack with items, items[0] becoming the bottom. When
// items does not fit, ErrSequenceTooLong is returned and nothing changes.
// The existing store is reused.
func (s *BoundedStack[T]) Fill(items []T) error {
	return FillFunc(s, items, identity[T])
}

// FillFunc is like Fill but converts every element with convert.
func FillFunc[S, T any](s *BoundedStack[T], items []S, convert func(S) T) error {
	if len(items) > s.capacity {
		return errorf(SequenceTooLong, "fill with %d elements exceeds capacity %d", len(items), s.capacity)
	}
	s.Clear()
	for _, item := range items {
		s.store.slots[s.count] = convert(item)
		s.count++
	}
	return nil
}

// FillRange is Fill over the half-open cursor range [first, last).
func (s *BoundedStack[T]) FillRange(first, last ConstCursor[T]) error {
	n, err := distance(first.pos, last.pos)
	if err != nil {
		return err
	}
	if n > s.capacity {
		return errorf(SequenceTooLong, "fill with %d elements exceeds capacity %d", n, s.capacity)
	}
	s.Clear()
	if n > 0 {
		s.count = copy(s.store.slots, first.pos.store.slots[first.pos.index:last.pos.index])
	}
	return nil
}

// Satisfies reports whether element satisfies p. It has no side effects and
// is typically called with the result of Top.
func (s *BoundedStack[T]) Satisfies(p Predicate[T], element T) bool {
	return p(element)
}

// Values returns a copy of the live elements, bottom first.
func (s *BoundedStack[T]) Values() []T {
	out := make([]T, s.count)
	if s.count > 0 {
		copy(out, s.store.slots[:s.count])
	}
	return out
}

// String renders the stack bottom to top as "[ e0 e1 ... ]\n", or
// "[ stack empty ]\n".
func (s *BoundedStack[T]) String() string {
	var sb strings.Builder
	sb.WriteString("[ ")
	if s.IsEmpty() {
		sb.WriteString("stack empty ")
	} else {
		for i := 0; i < s.count; i++ {
			fmt.Fprintf(&sb, "%v ", s.store.slots[i])
		}
	}
	sb.WriteString("]\n")
	return sb.String()
}

func identity[T any](v T) T {
	return v
}
