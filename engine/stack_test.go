package engine

import (
	"errors"
	"fmt"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"slices"
	"testing"
)

func TestWithCapacity_FreshStack(t *testing.T) {
	for _, c := range []int{0, 1, 5, 64} {
		t.Run(fmt.Sprintf("capacity=%d", c), func(t *testing.T) {
			s, err := WithCapacity[int](c)
			require.NoError(t, err)
			require.Equal(t, 0, s.Len())
			require.Equal(t, c, s.Cap())
			require.True(t, s.IsEmpty())
			require.Equal(t, c == 0, s.IsFull())
			require.Equal(t, c > 0, s.store != nil)
		})
	}
}

func TestNew_ZeroCapacity(t *testing.T) {
	s := New[string]()
	require.Equal(t, 0, s.Cap())
	require.True(t, s.IsEmpty())
	require.True(t, s.IsFull())
	require.ErrorIs(t, s.Push("a"), ErrCapacityExceeded)
	require.Equal(t, "[ stack empty ]\n", s.String())
}

func TestWithCapacity_Failures(t *testing.T) {
	s, err := WithCapacity[int](-1)
	require.ErrorIs(t, err, ErrInvalidRange)
	require.Nil(t, s)

	s2, err := WithCapacity[int64](1 << 62)
	require.ErrorIs(t, err, ErrAllocationFailure)
	require.Nil(t, s2)
}

func TestBoundedStack_PushPopInverse(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		pushed   []int
	}{
		{"empty", 3, nil},
		{"partial", 5, []int{1, 2, 3}},
		{"full", 4, []int{4, 3, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := WithCapacity[int](tt.capacity)
			require.NoError(t, err)
			for _, v := range tt.pushed {
				require.NoError(t, s.Push(v))
			}
			require.Equal(t, len(tt.pushed), s.Len())

			var popped []int
			for !s.IsEmpty() {
				v, err := s.Pop()
				require.NoError(t, err)
				popped = append(popped, v)
			}

			expected := slices.Clone(tt.pushed)
			slices.Reverse(expected)
			if diff := cmp.Diff(expected, popped); diff != "" {
				t.Errorf("popped values do not match (-expected, +received):\n%s", diff)
			}
		})
	}
}

func TestBoundedStack_Boundaries(t *testing.T) {
	s, err := WithCapacity[int](2)
	require.NoError(t, err)

	_, err = s.Pop()
	require.ErrorIs(t, err, ErrUnderflow)
	_, err = s.Top()
	require.ErrorIs(t, err, ErrUnderflow)

	require.NoError(t, s.Push(1))
	require.NoError(t, s.Push(2))
	require.True(t, s.IsFull())

	err = s.Push(3)
	require.ErrorIs(t, err, ErrCapacityExceeded)
	require.True(t, errors.Is(err, Error{ErrorCode: CapacityExceeded}))
	require.False(t, errors.Is(err, ErrUnderflow))
	require.Equal(t, 2, s.Len())

	top, err := s.Top()
	require.NoError(t, err)
	require.Equal(t, 2, top)
	require.Equal(t, 2, s.Len())
}

func TestBoundedStack_Clear(t *testing.T) {
	s, err := FromSlice([]int{1, 2, 3})
	require.NoError(t, err)
	store := s.store

	s.Clear()
	require.True(t, s.IsEmpty())
	require.Equal(t, 3, s.Cap())
	require.Same(t, store, s.store)
	require.Equal(t, "[ stack empty ]\n", s.String())

	require.NoError(t, s.Push(7))
	require.Equal(t, "[ 7 ]\n", s.String())
}

func TestBoundedStack_FillAndString(t *testing.T) {
	s, err := WithCapacity[int](5)
	require.NoError(t, err)
	store := s.store

	require.NoError(t, s.Fill([]int{5, 10, 15, 20, 25}))
	require.Equal(t, "[ 5 10 15 20 25 ]\n", s.String())
	require.True(t, s.IsFull())

	// shorter fill reuses the same store and drops the previous contents
	require.NoError(t, s.Fill([]int{1, 2}))
	require.Equal(t, "[ 1 2 ]\n", s.String())
	require.Equal(t, 5, s.Cap())
	require.Same(t, store, s.store)

	require.NoError(t, s.Fill(nil))
	require.True(t, s.IsEmpty())
}

func TestBoundedStack_FillTooLongLeavesStateUnchanged(t *testing.T) {
	s, err := WithCapacity[int](3)
	require.NoError(t, err)
	require.NoError(t, s.Fill([]int{7, 8}))

	before, err := s.Clone()
	require.NoError(t, err)

	err = s.Fill([]int{1, 2, 3, 4})
	require.ErrorIs(t, err, ErrSequenceTooLong)
	require.True(t, Equal(before, s))
	require.Equal(t, "[ 7 8 ]\n", s.String())
	require.Equal(t, 2, s.Len())
}

type doubleCustom struct {
	value float64
}

func (d doubleCustom) String() string {
	return fmt.Sprintf("%.1f", d.value)
}

func TestFillFunc_Converts(t *testing.T) {
	s, err := WithCapacity[doubleCustom](3)
	require.NoError(t, err)

	err = FillFunc(s, []float64{1.5, 2.5, 3.5}, func(f float64) doubleCustom { return doubleCustom{f} })
	require.NoError(t, err)
	require.Equal(t, "[ 1.5 2.5 3.5 ]\n", s.String())

	err = FillFunc(s, []float64{1, 2, 3, 4}, func(f float64) doubleCustom { return doubleCustom{f} })
	require.ErrorIs(t, err, ErrSequenceTooLong)
	require.Equal(t, 3, s.Len())
}

func TestFromSlice(t *testing.T) {
	items := []string{"a", "b", "c"}
	s, err := FromSlice(items)
	require.NoError(t, err)
	require.Equal(t, 3, s.Cap())
	require.Equal(t, 3, s.Len())
	require.True(t, s.IsFull())

	// the stack owns a copy
	items[0] = "z"
	if diff := cmp.Diff([]string{"a", "b", "c"}, s.Values()); diff != "" {
		t.Errorf("values do not match (-expected, +received):\n%s", diff)
	}

	empty, err := FromSlice([]string{})
	require.NoError(t, err)
	require.Equal(t, 0, empty.Cap())
	require.True(t, empty.IsFull())
}

func TestFromSliceFunc_And_FromSeq(t *testing.T) {
	s, err := FromSliceFunc([]int{1, 2, 3}, func(i int) float64 { return float64(i) / 2 })
	require.NoError(t, err)
	require.Equal(t, "[ 0.5 1 1.5 ]\n", s.String())

	q, err := FromSeq(slices.Values([]rune{'a', 'b'}))
	require.NoError(t, err)
	require.Equal(t, 2, q.Cap())
	top, err := q.Top()
	require.NoError(t, err)
	require.Equal(t, 'b', top)
}

func TestFromRange(t *testing.T) {
	src, err := FromSlice([]int{1, 2, 3, 4, 5})
	require.NoError(t, err)

	first := src.ConstBegin()
	first.Advance()
	s, err := FromRange(first, src.ConstEnd())
	require.NoError(t, err)
	require.Equal(t, 4, s.Cap())
	require.Equal(t, "[ 2 3 4 5 ]\n", s.String())

	empty, err := FromRange(src.ConstEnd(), src.ConstEnd())
	require.NoError(t, err)
	require.Equal(t, 0, empty.Cap())

	_, err = FromRange(src.ConstEnd(), src.ConstBegin())
	require.ErrorIs(t, err, ErrInvalidRange)

	other, err := FromSlice([]int{9})
	require.NoError(t, err)
	_, err = FromRange(src.ConstBegin(), other.ConstEnd())
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestFillRange(t *testing.T) {
	src, err := FromSlice([]int{1, 2, 3, 4})
	require.NoError(t, err)
	dst, err := WithCapacity[int](3)
	require.NoError(t, err)
	require.NoError(t, dst.Push(42))

	err = dst.FillRange(src.ConstBegin(), src.ConstEnd())
	require.ErrorIs(t, err, ErrSequenceTooLong)
	require.Equal(t, "[ 42 ]\n", dst.String())

	first := src.ConstBegin()
	first.Advance()
	require.NoError(t, dst.FillRange(first, src.ConstEnd()))
	require.Equal(t, "[ 2 3 4 ]\n", dst.String())
}

func TestBoundedStack_CloneIndependence(t *testing.T) {
	a, err := FromSlice([]int{1, 2, 3})
	require.NoError(t, err)

	b, err := a.Clone()
	require.NoError(t, err)
	require.True(t, Equal(a, b))
	require.NotSame(t, a.store, b.store)

	_, err = a.Pop()
	require.NoError(t, err)
	require.False(t, Equal(a, b))
	require.Equal(t, "[ 1 2 3 ]\n", b.String())

	a.Clear()
	require.Equal(t, 3, b.Len())
}

func TestBoundedStack_AssignIndependence(t *testing.T) {
	a, err := WithCapacity[int](4)
	require.NoError(t, err)
	require.NoError(t, a.Fill([]int{5, 6}))

	b, err := FromSlice([]int{100})
	require.NoError(t, err)

	require.NoError(t, b.Assign(a))
	require.True(t, Equal(a, b))
	require.Equal(t, 4, b.Cap())
	require.NotSame(t, a.store, b.store)

	require.NoError(t, a.Push(7))
	require.False(t, Equal(a, b))
	require.Equal(t, "[ 5 6 ]\n", b.String())

	require.NoError(t, b.Push(7))
	require.True(t, Equal(a, b))
}

func TestBoundedStack_SelfAssign(t *testing.T) {
	a, err := FromSlice([]int{1, 2})
	require.NoError(t, err)
	store := a.store

	require.NoError(t, a.Assign(a))
	require.Same(t, store, a.store)
	require.Equal(t, "[ 1 2 ]\n", a.String())
}

func TestBoundedStack_Equality(t *testing.T) {
	a, _ := FromSlice([]int{1, 2})
	b, _ := WithCapacity[int](3)
	require.NoError(t, b.Fill([]int{1, 2}))
	require.False(t, Equal(a, b), "capacities differ")

	c, _ := FromSlice([]int{1, 3})
	require.False(t, Equal(a, c))

	d, _ := FromSlice([]int{1, 2})
	require.True(t, Equal(a, d))

	// stale slots beyond the live region are not compared
	e, _ := FromSlice([]int{1, 2, 3})
	f, _ := FromSlice([]int{1, 2, 4})
	_, _ = e.Pop()
	_, _ = f.Pop()
	require.True(t, Equal(e, f))

	sameLength := func(x, y string) bool { return len(x) == len(y) }
	g, _ := FromSlice([]string{"ab"})
	h, _ := FromSlice([]string{"cd"})
	require.True(t, g.EqualFunc(h, sameLength))
}

func TestBoundedStack_Satisfies(t *testing.T) {
	s, err := FromSlice([]int{1, 2, 3, 4, 5, 6, 7})
	require.NoError(t, err)
	biggerThan5 := GreaterThan(5)
	isOdd := IsOdd[int]()

	top, err := s.Top()
	require.NoError(t, err)
	require.Equal(t, 7, top)
	require.True(t, s.Satisfies(biggerThan5, top))
	require.True(t, s.Satisfies(isOdd, top))

	_, err = s.Pop()
	require.NoError(t, err)
	top, err = s.Top()
	require.NoError(t, err)
	require.Equal(t, 6, top)
	require.True(t, s.Satisfies(biggerThan5, top))
	require.False(t, s.Satisfies(isOdd, top))
	require.Equal(t, 6, s.Len())
}

func TestBoundedStack_StringUserType(t *testing.T) {
	type userCustom struct {
		Name string
		Age  int
	}
	s, err := FromSlice([]userCustom{{"ada", 36}, {"alan", 41}})
	require.NoError(t, err)
	require.Equal(t, "[ {ada 36} {alan 41} ]\n", s.String())
}
