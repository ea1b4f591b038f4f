package evaluator

import (
	"errors"
	"fmt"
	"github.com/aleph-zero/flutterstack/engine"
	"github.com/aleph-zero/flutterstack/engine/ast"
	"github.com/aleph-zero/flutterstack/engine/token"
	"golang.org/x/exp/constraints"
	"math"
)

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrNonFinite      = errors.New("result is not a finite number")
)

type OperatorError struct {
	Op    token.TokenType
	Left  engine.Kind
	Right engine.Kind
}

func (e OperatorError) Error() string {
	if e.Right == engine.Invalid {
		return fmt.Sprintf("operator '%s' cannot be applied to %s", e.Op, e.Left)
	}
	return fmt.Sprintf("operator '%s' cannot be applied to %s and %s", e.Op, e.Left, e.Right)
}

// Unary applies a prefix operator.
func Unary(op token.TokenType, v engine.Value) (engine.Value, error) {
	switch op {
	case token.MINUS:
		if i, ok := v.IntVal(); ok {
			return engine.NewIntValue(-i), nil
		}
		if f, ok := v.FloatVal(); ok {
			return finite(-f)
		}
		return engine.Value{}, OperatorError{Op: op, Left: v.Kind()}
	case token.NOT, token.BANG:
		return engine.NewBooleanValue(!v.ToBoolean()), nil
	default:
		return engine.Value{}, fmt.Errorf("failed to evaluate operator: %s", op)
	}
}

// Binary applies an infix operator. Arithmetic on two integers stays
// integral; any float operand promotes the result to float. '+' also
// concatenates strings. Values of incomparable kinds are never equal.
func Binary(op token.TokenType, left, right engine.Value) (engine.Value, error) {
	switch op {
	case token.PLUS:
		if l, ok := left.StringVal(); ok {
			if r, ok := right.StringVal(); ok {
				return engine.NewStringValue(l + r), nil
			}
		}
		return arithmetic(op, left, right)
	case token.MINUS, token.ASTERISK, token.DIVIDE, token.MODULO:
		return arithmetic(op, left, right)
	case token.GT, token.GTE, token.LT, token.LTE:
		c, err := left.Compare(right)
		if err != nil {
			return engine.Value{}, OperatorError{Op: op, Left: left.Kind(), Right: right.Kind()}
		}
		return engine.NewBooleanValue(ordered(c, op)), nil
	case token.EQUAL:
		c, err := left.Compare(right)
		return engine.NewBooleanValue(err == nil && c == 0), nil
	case token.NOT_EQUAL:
		c, err := left.Compare(right)
		return engine.NewBooleanValue(err != nil || c != 0), nil
	case token.AND:
		return engine.NewBooleanValue(left.ToBoolean() && right.ToBoolean()), nil
	case token.OR:
		return engine.NewBooleanValue(left.ToBoolean() || right.ToBoolean()), nil
	default:
		return engine.Value{}, fmt.Errorf("failed to evaluate binary operator: %s", op)
	}
}

func ordered(c int, op token.TokenType) bool {
	switch op {
	case token.GT:
		return c > 0
	case token.GTE:
		return c >= 0
	case token.LT:
		return c < 0
	default:
		return c <= 0
	}
}

func arithmetic(op token.TokenType, left, right engine.Value) (engine.Value, error) {
	if !left.IsNumeric() || !right.IsNumeric() {
		return engine.Value{}, OperatorError{Op: op, Left: left.Kind(), Right: right.Kind()}
	}

	l, lok := left.IntVal()
	r, rok := right.IntVal()
	if lok && rok {
		if (op == token.DIVIDE || op == token.MODULO) && r == 0 {
			return engine.Value{}, ErrDivisionByZero
		}
		if op == token.MODULO {
			return engine.NewIntValue(l % r), nil
		}
		return engine.NewIntValue(apply(l, r, op)), nil
	}

	lf := left.ToFloat()
	rf := right.ToFloat()
	if (op == token.DIVIDE || op == token.MODULO) && rf == 0 {
		return engine.Value{}, ErrDivisionByZero
	}
	if op == token.MODULO {
		return finite(math.Mod(lf, rf))
	}
	return finite(apply(lf, rf, op))
}

// finite wraps f as a Value. Overflow to an infinity or NaN is an error so
// that such results never reach a stack.
func finite(f float64) (engine.Value, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return engine.Value{}, fmt.Errorf("%w: %v", ErrNonFinite, f)
	}
	return engine.NewFloatValue(f), nil
}

type operable interface {
	constraints.Integer | constraints.Float
}

func apply[T operable](left, right T, op token.TokenType) T {
	switch op {
	case token.PLUS:
		return left + right
	case token.MINUS:
		return left - right
	case token.DIVIDE:
		return left / right
	case token.ASTERISK:
		return left * right
	default:
		panic(fmt.Sprintf("cannot apply arithmetic operator '%s'", op.String()))
	}
}

// LiteralValue returns the value held by a literal node.
func LiteralValue(n ast.ExpressionNode) (engine.Value, bool) {
	switch node := n.(type) {
	case *ast.IntegerLiteralNode:
		return engine.NewIntValue(node.Value), true
	case *ast.FloatLiteralNode:
		return engine.NewFloatValue(node.Value), true
	case *ast.StringLiteralNode:
		return engine.NewStringValue(node.Value), true
	case *ast.BooleanLiteralNode:
		return engine.NewBooleanValue(node.Value), true
	default:
		return engine.Value{}, false
	}
}

// LiteralNode is the inverse of LiteralValue.
func LiteralNode(v engine.Value) (ast.ExpressionNode, error) {
	switch v.Kind() {
	case engine.Int:
		i, _ := v.IntVal()
		return ast.NewIntegerLiteralNode(i), nil
	case engine.Float:
		f, _ := v.FloatVal()
		return ast.NewFloatLiteralNode(f), nil
	case engine.String:
		s, _ := v.StringVal()
		return ast.NewStringLiteralNode(s), nil
	case engine.Boolean:
		b, _ := v.BooleanVal()
		return ast.NewBooleanLiteralNode(b), nil
	default:
		return nil, fmt.Errorf("no literal for value of kind %s", v.Kind())
	}
}
