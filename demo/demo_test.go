package demo

import (
	"bytes"
	"errors"
	"github.com/aleph-zero/flutterstack/engine"
	"github.com/stretchr/testify/require"
	"io"
	"testing"
)

func TestRun(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Run(&out))

	expected := []string{
		"Stack ss (strings, push): [ project in go ]\n",
		"Stack s1 (default): [ stack empty ]\n",
		"Stack s2 (capacity 5, fill): [ 5 10 15 20 25 ]\n",
		"Stack s3 (clone of s2): [ 5 10 15 20 25 ]\n",
		"Stack s4 (custom floats, fill): [ 5 10 15 ]\n",
		"Stack s5 (clone of s4, refilled): [ 1 2 3 ]\n",
		"Stack s9 (assigned from s2): [ 5 10 15 20 25 ]\n",
		"Stack s1 full (chars, fill): [ a ? 2 # B T S ]\n",
		"Popped S and T, the top is now B\n",
		"Stack s2 full (users, from sequence): [ (Mario 25) (Luigi 30) (Pippo 35) ]\n",
		"Stack s2 after pop: [ (Mario 25) (Luigi 30) ]\n",
		"Const traversal of s2 (bottom to top):\n[ 9 8 7 6 5 4 3 ]\n",
		"Read-only traversal (top to bottom):\n[ 35 30 25 20 15 10 5 ]\n",
		"Read-only traversal (top to bottom):\n[ (Luigi 22) (Pippo 21) (Mario 20) ]\n",
		"top user name == Pippo (after pop)\n",
	}
	for _, line := range expected {
		require.Contains(t, out.String(), line)
	}
}

func TestScenario_Run(t *testing.T) {
	for _, scenario := range Scenarios {
		t.Run(scenario.Name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, scenario.Run(&out))
			require.NotEmpty(t, out.String())
		})
	}
}

func TestScenario_RunFailure(t *testing.T) {
	underflow := Scenario{Name: "underflow", run: func(_ io.Writer) error {
		return topSatisfies(engine.New[int](), engine.IsOdd[int](), "never reached")
	}}
	err := underflow.Run(&bytes.Buffer{})
	require.ErrorIs(t, err, engine.ErrUnderflow)

	unmet := Scenario{Name: "unmet", run: func(_ io.Writer) error {
		s, err := engine.FromSlice([]int{2})
		if err != nil {
			return err
		}
		return topSatisfies(s, engine.IsOdd[int](), "top is odd")
	}}
	err = unmet.Run(&bytes.Buffer{})
	require.True(t, errors.Is(err, ErrCheckFailed))
	require.Contains(t, err.Error(), "scenario unmet")
}
