package evaluator

import (
	"github.com/aleph-zero/flutterstack/engine"
	"github.com/aleph-zero/flutterstack/engine/ast"
	"github.com/aleph-zero/flutterstack/engine/parser"
	"github.com/aleph-zero/flutterstack/engine/token"
	"github.com/stretchr/testify/require"
	"testing"
)

func compile(t *testing.T, expr string) *Program {
	t.Helper()
	tokens, err := parser.LexicalScan(expr)
	require.NoError(t, err)
	node, err := parser.New(tokens).ParseExpression()
	require.NoError(t, err)
	p, err := Compile(node)
	require.NoError(t, err)
	return p
}

func TestEvaluator_Eval(t *testing.T) {
	tests := []struct {
		expr     string
		element  engine.Value
		expected engine.Value
	}{
		{`1 + 2 * 3`, engine.Value{}, engine.NewIntValue(7)},
		{`(1 + 2) * 3`, engine.Value{}, engine.NewIntValue(9)},
		{`7 / 2`, engine.Value{}, engine.NewIntValue(3)},
		{`7 / 2.0`, engine.Value{}, engine.NewFloatValue(3.5)},
		{`7 % 4`, engine.Value{}, engine.NewIntValue(3)},
		{`7.5 % 2`, engine.Value{}, engine.NewFloatValue(1.5)},
		{`--4`, engine.Value{}, engine.NewIntValue(4)},
		{`-2.5`, engine.Value{}, engine.NewFloatValue(-2.5)},
		{`"ab" + "cd"`, engine.Value{}, engine.NewStringValue("abcd")},
		{`top + 1`, engine.NewIntValue(6), engine.NewIntValue(7)},
		{`it * 2`, engine.NewFloatValue(1.25), engine.NewFloatValue(2.5)},
		{`top > 5`, engine.NewIntValue(7), engine.NewBooleanValue(true)},
		{`top >= 7.0`, engine.NewIntValue(7), engine.NewBooleanValue(true)},
		{`top < "b"`, engine.NewStringValue("a"), engine.NewBooleanValue(true)},
		{`top = 1`, engine.NewStringValue("1"), engine.NewBooleanValue(false)},
		{`top != 1`, engine.NewStringValue("1"), engine.NewBooleanValue(true)},
		{`top = true`, engine.NewBooleanValue(true), engine.NewBooleanValue(true)},
		{`NOT top`, engine.NewIntValue(0), engine.NewBooleanValue(true)},
		{`!top`, engine.NewStringValue(""), engine.NewBooleanValue(true)},
		{`top > 5 AND top % 2 = 1`, engine.NewIntValue(7), engine.NewBooleanValue(true)},
		{`top > 5 AND top % 2 = 1`, engine.NewIntValue(6), engine.NewBooleanValue(false)},
		{`top < 0 OR top % 2 = 0`, engine.NewIntValue(6), engine.NewBooleanValue(true)},
		{`TOP = 3`, engine.NewIntValue(3), engine.NewBooleanValue(true)},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			v, err := compile(t, tt.expr).Eval(tt.element)
			require.NoError(t, err)
			require.True(t, tt.expected.Equal(v), "expected %s, received %s", tt.expected, v)
		})
	}
}

func TestEvaluator_EvalErrors(t *testing.T) {
	tests := []struct {
		expr    string
		element engine.Value
		target  error
	}{
		{`1 / 0`, engine.Value{}, ErrDivisionByZero},
		{`1 % 0`, engine.Value{}, ErrDivisionByZero},
		{`1.5 / 0`, engine.Value{}, ErrDivisionByZero},
		{`1e308 * 10`, engine.Value{}, ErrNonFinite},
		{`-1e308 - 1e308`, engine.Value{}, ErrNonFinite},
		{`top * top`, engine.NewFloatValue(1e200), ErrNonFinite},
		{`top - 1`, engine.NewStringValue("a"), OperatorError{Op: token.MINUS, Left: engine.String, Right: engine.Int}},
		{`-top`, engine.NewBooleanValue(true), OperatorError{Op: token.MINUS, Left: engine.Boolean}},
		{`top > 1`, engine.NewStringValue("a"), OperatorError{Op: token.GT, Left: engine.String, Right: engine.Int}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := compile(t, tt.expr).Eval(tt.element)
			require.ErrorIs(t, err, tt.target)
		})
	}
}

func TestCompile_UnboundIdentifier(t *testing.T) {
	tokens, err := parser.LexicalScan(`top > limit`)
	require.NoError(t, err)
	node, err := parser.New(tokens).ParseExpression()
	require.NoError(t, err)

	_, err = Compile(node)
	var ue UnboundIdentifierError
	require.ErrorAs(t, err, &ue)
	require.Equal(t, "limit", ue.Name)

	_, err = Compile(nil)
	require.Error(t, err)
}

func TestProgram_PredicateOnStack(t *testing.T) {
	s, err := engine.FromSliceFunc([]int64{1, 2, 3, 4, 5, 6, 7}, engine.NewIntValue)
	require.NoError(t, err)

	biggerThan5 := compile(t, `top > 5`).Predicate()
	isOdd := compile(t, `top % 2 = 1`).Predicate()

	top, err := s.Top()
	require.NoError(t, err)
	require.True(t, s.Satisfies(biggerThan5, top))
	require.True(t, s.Satisfies(isOdd, top))

	_, err = s.Pop()
	require.NoError(t, err)
	top, err = s.Top()
	require.NoError(t, err)
	require.True(t, s.Satisfies(biggerThan5, top))
	require.False(t, s.Satisfies(isOdd, top))
}

func TestProgram_PredicateRecordsFailure(t *testing.T) {
	p := compile(t, `top > 5`)
	require.False(t, p.Predicate()(engine.NewStringValue("x")))
	require.Error(t, p.Err())
}

func TestLiteralRoundTrip(t *testing.T) {
	for _, v := range []engine.Value{
		engine.NewIntValue(-3),
		engine.NewFloatValue(0.5),
		engine.NewStringValue("s"),
		engine.NewBooleanValue(false),
	} {
		n, err := LiteralNode(v)
		require.NoError(t, err)
		require.True(t, ast.IsLiteralNode(n))
		back, ok := LiteralValue(n)
		require.True(t, ok)
		require.True(t, v.Equal(back))
	}

	_, err := LiteralNode(engine.Value{})
	require.Error(t, err)
	_, ok := LiteralValue(ast.NewIdentifierNode("top"))
	require.False(t, ok)
}
