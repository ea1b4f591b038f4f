package evaluator

import (
	"fmt"
	"github.com/aleph-zero/flutterstack/engine"
	"github.com/aleph-zero/flutterstack/engine/ast"
	"github.com/aleph-zero/flutterstack/engine/token"
	"strings"
)

// Element names bind the element under test inside a predicate expression.
var elementNames = []string{"top", "it"}

type UnboundIdentifierError struct {
	Name string
}

func (e UnboundIdentifierError) Error() string {
	return fmt.Sprintf("unbound identifier '%s': predicates may only reference %s",
		e.Name, strings.Join(elementNames, " or "))
}

func isElementName(name string) bool {
	for _, n := range elementNames {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

// Program is a compiled predicate expression.
type Program struct {
	root ast.ExpressionNode
	size int
	err  error
}

// Compile checks that every identifier in node refers to the element under
// test and prepares the expression for repeated evaluation.
func Compile(node ast.ExpressionNode) (*Program, error) {
	if node == nil {
		return nil, fmt.Errorf("empty predicate expression")
	}

	var unbound error
	ast.Walk(node, func(n ast.ExpressionNode) {
		if id, ok := n.(*ast.IdentifierNode); ok && unbound == nil && !isElementName(id.Value) {
			unbound = UnboundIdentifierError{Name: id.Value}
		}
	})
	if unbound != nil {
		return nil, unbound
	}

	return &Program{root: node, size: ast.Size(node)}, nil
}

// Eval evaluates the expression with element bound to the element names.
func (p *Program) Eval(element engine.Value) (engine.Value, error) {
	stack, err := engine.WithCapacity[engine.Value](p.size)
	if err != nil {
		return engine.Value{}, err
	}

	e := &Evaluator{element: element, stack: stack}
	if err := p.root.Accept(e); err != nil {
		return engine.Value{}, err
	}
	return stack.Pop()
}

// Predicate adapts the program to an engine.Predicate. An element for which
// the expression cannot be evaluated does not satisfy the predicate; the
// failure is reported by Err.
func (p *Program) Predicate() engine.Predicate[engine.Value] {
	return func(element engine.Value) bool {
		v, err := p.Eval(element)
		if err != nil {
			p.err = err
			return false
		}
		return v.ToBoolean()
	}
}

// Err returns the last evaluation failure seen by Predicate.
func (p *Program) Err() error {
	return p.err
}

// Evaluator is a post-order expression visitor that keeps intermediate
// results on a bounded operand stack.
type Evaluator struct {
	element engine.Value
	stack   *engine.BoundedStack[engine.Value]
}

func (e *Evaluator) pop() (engine.Value, error) {
	v, err := e.stack.Pop()
	if err != nil {
		return engine.Value{}, fmt.Errorf("operand stack: %w", err)
	}
	return v, nil
}

func (e *Evaluator) push(v engine.Value) error {
	if err := e.stack.Push(v); err != nil {
		return fmt.Errorf("operand stack: %w", err)
	}
	return nil
}

func (e *Evaluator) VisitIdentifierNode(node *ast.IdentifierNode) error {
	if !isElementName(node.Value) {
		return UnboundIdentifierError{Name: node.Value}
	}
	return e.push(e.element)
}

func (e *Evaluator) VisitParenthesizedExpression(node *ast.ParenthesizedExpressionNode) error {
	return node.Node.Accept(e)
}

func (e *Evaluator) VisitLogicalNegationNode(node *ast.LogicalNegationNode) error {
	return e.unary(node.Op.TokenType, node.Node)
}

func (e *Evaluator) VisitUnaryExpressionNode(node *ast.UnaryExpressionNode) error {
	return e.unary(node.Op.TokenType, node.Node)
}

func (e *Evaluator) unary(op token.TokenType, operand ast.ExpressionNode) error {
	if err := operand.Accept(e); err != nil {
		return err
	}
	v, err := e.pop()
	if err != nil {
		return err
	}
	result, err := Unary(op, v)
	if err != nil {
		return err
	}
	return e.push(result)
}

func (e *Evaluator) VisitBinaryExpressionNode(node *ast.BinaryExpressionNode) error {
	if err := node.Left.Accept(e); err != nil {
		return err
	}
	if err := node.Right.Accept(e); err != nil {
		return err
	}

	right, err := e.pop()
	if err != nil {
		return err
	}
	left, err := e.pop()
	if err != nil {
		return err
	}

	result, err := Binary(node.Op.TokenType, left, right)
	if err != nil {
		return err
	}
	return e.push(result)
}

func (e *Evaluator) VisitStringLiteralNode(node *ast.StringLiteralNode) error {
	return e.push(engine.NewStringValue(node.Value))
}

func (e *Evaluator) VisitIntegerLiteralNode(node *ast.IntegerLiteralNode) error {
	return e.push(engine.NewIntValue(node.Value))
}

func (e *Evaluator) VisitFloatLiteralNode(node *ast.FloatLiteralNode) error {
	return e.push(engine.NewFloatValue(node.Value))
}

func (e *Evaluator) VisitBooleanLiteralNode(node *ast.BooleanLiteralNode) error {
	return e.push(engine.NewBooleanValue(node.Value))
}
