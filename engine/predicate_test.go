package engine

import (
	"github.com/stretchr/testify/require"
	"testing"
)

func TestPredicates(t *testing.T) {
	tests := []struct {
		name      string
		predicate Predicate[int]
		value     int
		expected  bool
	}{
		{"greater than", GreaterThan(5), 7, true},
		{"greater than equal bound", GreaterThan(5), 5, false},
		{"less than", LessThan(5), 4, true},
		{"equal to", EqualTo(3), 3, true},
		{"odd", IsOdd[int](), 7, true},
		{"odd negative", IsOdd[int](), -3, true},
		{"even", IsEven[int](), 6, true},
		{"not odd", Not(IsOdd[int]()), 6, true},
		{"and", And(GreaterThan(5), IsOdd[int]()), 7, true},
		{"and fails", And(GreaterThan(5), IsOdd[int]()), 6, false},
		{"empty and", And[int](), 0, true},
		{"or", Or(LessThan(0), IsEven[int]()), 6, true},
		{"empty or", Or[int](), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.predicate(tt.value))
		})
	}
}

func TestPredicates_Strings(t *testing.T) {
	s, err := FromSlice([]string{"apple", "pear"})
	require.NoError(t, err)
	top, err := s.Top()
	require.NoError(t, err)
	require.True(t, s.Satisfies(GreaterThan("orange"), top))
	require.True(t, s.Satisfies(func(v string) bool { return len(v) == 4 }, top))
}
