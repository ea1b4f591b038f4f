package api

import (
	"github.com/aleph-zero/flutterstack/engine"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func TestCollectValues(t *testing.T) {
	tests := []struct {
		input    string
		expected []engine.Value
	}{
		{``, []engine.Value{}},
		{`[]`, []engine.Value{}},
		{`  [1, "a", 2.5, false]`, []engine.Value{engine.NewIntValue(1), engine.NewStringValue("a"), engine.NewFloatValue(2.5), engine.NewBooleanValue(false)}},
		{"1\n\"a\"\n{\"kind\": \"float64\", \"value\": 2}\n", []engine.Value{engine.NewIntValue(1), engine.NewStringValue("a"), engine.NewFloatValue(2)}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			values, err := CollectValues(strings.NewReader(tt.input), 0)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.expected, values, cmp.Comparer(engine.Value.Equal)); diff != "" {
				t.Errorf("values do not match (-expected, +received):\n%s", diff)
			}
		})
	}
}

func TestCollectValues_Invalid(t *testing.T) {
	for _, input := range []string{`[1, 2`, `[1, [2]]`, `1 null`, `{"a": 1}`} {
		t.Run(input, func(t *testing.T) {
			_, err := CollectValues(strings.NewReader(input), 0)
			require.Error(t, err)
		})
	}
}

func TestCollectValues_Limit(t *testing.T) {
	values, err := CollectValues(strings.NewReader(`[1, 2, 3]`), 3)
	require.NoError(t, err)
	require.Len(t, values, 3)

	_, err = CollectValues(strings.NewReader(`[1, 2, 3, 4, 5]`), 3)
	require.ErrorIs(t, err, engine.ErrSequenceTooLong)

	_, err = CollectValues(strings.NewReader("1\n2\n3\n4\n"), 3)
	require.ErrorIs(t, err, engine.ErrSequenceTooLong)
}
