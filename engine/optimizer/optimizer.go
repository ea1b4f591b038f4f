package optimizer

import (
	"fmt"
	"github.com/aleph-zero/flutterstack/engine"
	"github.com/aleph-zero/flutterstack/engine/ast"
	"github.com/aleph-zero/flutterstack/engine/evaluator"
)

type NotConstantError struct {
	Node ast.ExpressionNode
}

func (e NotConstantError) Error() string {
	return fmt.Sprintf("expression of type %T does not reduce to a constant", e.Node)
}

// Optimize rewrites every expression held by stmt in place.
func Optimize(stmt ast.StatementNode) (ast.StatementNode, error) {
	rules := []OptimizationRule{NewConstantExpressionEvaluator()}

	var err error
	apply := func(expr ast.ExpressionNode) ast.ExpressionNode {
		if err != nil || expr == nil {
			return expr
		}
		for _, rule := range rules {
			expr, err = rule.optimize(expr)
			if err != nil {
				return nil
			}
		}
		return expr
	}

	switch node := stmt.(type) {
	case *ast.CreateStackStatementNode:
		node.Capacity = apply(node.Capacity)
		for i := range node.Values {
			node.Values[i] = apply(node.Values[i])
		}
	case *ast.PushStatementNode:
		node.Value = apply(node.Value)
	case *ast.FillStatementNode:
		for i := range node.Values {
			node.Values[i] = apply(node.Values[i])
		}
	case *ast.CheckStatementNode:
		if node.Predicate != nil {
			node.Predicate.Node = apply(node.Predicate.Node)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("optimizing %T: %w", stmt, err)
	}
	return stmt, nil
}

// Constant folds expr and returns the resulting literal value.
func Constant(expr ast.ExpressionNode) (engine.Value, error) {
	folded, err := NewConstantExpressionEvaluator().optimize(expr)
	if err != nil {
		return engine.Value{}, err
	}
	v, ok := evaluator.LiteralValue(folded)
	if !ok {
		return engine.Value{}, NotConstantError{Node: folded}
	}
	return v, nil
}

// Constants folds each expression to a literal value.
func Constants(exprs []ast.ExpressionNode) ([]engine.Value, error) {
	values := make([]engine.Value, 0, len(exprs))
	for _, expr := range exprs {
		v, err := Constant(expr)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

type OptimizationRule interface {
	optimize(ast.ExpressionNode) (ast.ExpressionNode, error)
}

/* *** Constant Expression Optimizer *** */

type ConstantExpressionEvaluator struct {
	stack *engine.BoundedStack[ast.ExpressionNode]
}

func NewConstantExpressionEvaluator() *ConstantExpressionEvaluator {
	return &ConstantExpressionEvaluator{stack: engine.New[ast.ExpressionNode]()}
}

func (c *ConstantExpressionEvaluator) optimize(expr ast.ExpressionNode) (ast.ExpressionNode, error) {
	// a post-order walk never holds more nodes than the tree has
	if size := ast.Size(expr); size > c.stack.Cap() {
		stack, err := engine.WithCapacity[ast.ExpressionNode](size)
		if err != nil {
			return nil, err
		}
		c.stack = stack
	}
	c.stack.Clear()

	if err := expr.Accept(c); err != nil {
		return nil, err
	}
	return c.pop() // replace original expression with optimized version
}

func (c *ConstantExpressionEvaluator) push(node ast.ExpressionNode) error {
	return c.stack.Push(node)
}

func (c *ConstantExpressionEvaluator) pop() (ast.ExpressionNode, error) {
	return c.stack.Pop()
}

func (c *ConstantExpressionEvaluator) VisitBinaryExpressionNode(node *ast.BinaryExpressionNode) error {
	if err := node.Left.Accept(c); err != nil {
		return err
	}
	if err := node.Right.Accept(c); err != nil {
		return err
	}

	right, err := c.pop()
	if err != nil {
		return err
	}
	left, err := c.pop()
	if err != nil {
		return err
	}

	lv, lok := evaluator.LiteralValue(left)
	rv, rok := evaluator.LiteralValue(right)
	if !lok || !rok {
		return c.push(ast.NewBinaryExpressionNode(node.Op, left, right))
	}

	result, err := evaluator.Binary(node.Op.TokenType, lv, rv)
	if err != nil {
		return err
	}
	return c.fold(result)
}

func (c *ConstantExpressionEvaluator) fold(v engine.Value) error {
	literal, err := evaluator.LiteralNode(v)
	if err != nil {
		return err
	}
	return c.push(literal)
}

func (c *ConstantExpressionEvaluator) VisitParenthesizedExpression(node *ast.ParenthesizedExpressionNode) error {
	return node.Node.Accept(c)
}

func (c *ConstantExpressionEvaluator) VisitUnaryExpressionNode(node *ast.UnaryExpressionNode) error {
	if err := node.Node.Accept(c); err != nil {
		return err
	}
	operand, err := c.pop()
	if err != nil {
		return err
	}

	v, ok := evaluator.LiteralValue(operand)
	if !ok {
		return c.push(ast.NewUnaryExpressionNode(node.Op, operand))
	}
	result, err := evaluator.Unary(node.Op.TokenType, v)
	if err != nil {
		return err
	}
	return c.fold(result)
}

func (c *ConstantExpressionEvaluator) VisitLogicalNegationNode(node *ast.LogicalNegationNode) error {
	if err := node.Node.Accept(c); err != nil {
		return err
	}
	operand, err := c.pop()
	if err != nil {
		return err
	}

	v, ok := evaluator.LiteralValue(operand)
	if !ok {
		return c.push(ast.NewLogicalNegationNode(node.Op, operand))
	}
	result, err := evaluator.Unary(node.Op.TokenType, v)
	if err != nil {
		return err
	}
	return c.fold(result)
}

func (c *ConstantExpressionEvaluator) VisitStringLiteralNode(node *ast.StringLiteralNode) error {
	return c.push(node)
}

func (c *ConstantExpressionEvaluator) VisitIntegerLiteralNode(node *ast.IntegerLiteralNode) error {
	return c.push(node)
}

func (c *ConstantExpressionEvaluator) VisitFloatLiteralNode(node *ast.FloatLiteralNode) error {
	return c.push(node)
}

func (c *ConstantExpressionEvaluator) VisitBooleanLiteralNode(node *ast.BooleanLiteralNode) error {
	return c.push(node)
}

func (c *ConstantExpressionEvaluator) VisitIdentifierNode(node *ast.IdentifierNode) error {
	return c.push(node)
}
