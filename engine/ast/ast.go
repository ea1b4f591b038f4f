package ast

import (
	"github.com/aleph-zero/flutterstack/engine/token"
)

type VisitableNode interface {
	Accept(visitor Visitor) error
}

type ExpressionNode interface {
	Expression()
	VisitableNode
}

func IsLiteralNode(n ExpressionNode) bool {
	switch n.(type) {
	case *IntegerLiteralNode, *FloatLiteralNode, *StringLiteralNode, *BooleanLiteralNode:
		return true
	default:
		return false
	}
}

// Walk calls fn for n and each of its descendants in depth-first order.
func Walk(n ExpressionNode, fn func(ExpressionNode)) {
	if n == nil {
		return
	}
	fn(n)
	switch node := n.(type) {
	case *ParenthesizedExpressionNode:
		Walk(node.Node, fn)
	case *LogicalNegationNode:
		Walk(node.Node, fn)
	case *UnaryExpressionNode:
		Walk(node.Node, fn)
	case *BinaryExpressionNode:
		Walk(node.Left, fn)
		Walk(node.Right, fn)
	}
}

// Size returns the number of nodes in the expression tree rooted at n.
func Size(n ExpressionNode) int {
	size := 0
	Walk(n, func(ExpressionNode) { size++ })
	return size
}

type PredicateNode struct {
	Node ExpressionNode
}

func NewPredicateNode(node ExpressionNode) *PredicateNode {
	return &PredicateNode{Node: node}
}

type IdentifierNode struct {
	Value string
}

func NewIdentifierNode(value string) *IdentifierNode {
	return &IdentifierNode{Value: value}
}

func (n *IdentifierNode) Expression() {}

func (n *IdentifierNode) Accept(visitor Visitor) error {
	if n != nil {
		return visitor.VisitIdentifierNode(n)
	}
	return nil
}

type ParenthesizedExpressionNode struct {
	Node ExpressionNode
}

func NewParenthesizedExpressionNode(node ExpressionNode) *ParenthesizedExpressionNode {
	return &ParenthesizedExpressionNode{Node: node}
}

func (n *ParenthesizedExpressionNode) Expression() {}

func (n *ParenthesizedExpressionNode) Accept(visitor Visitor) error {
	return visitor.VisitParenthesizedExpression(n)
}

type LogicalNegationNode struct {
	Op   token.Token
	Node ExpressionNode
}

func NewLogicalNegationNode(op token.Token, node ExpressionNode) *LogicalNegationNode {
	return &LogicalNegationNode{
		Op:   op,
		Node: node,
	}
}

func (n *LogicalNegationNode) Expression() {}

func (n *LogicalNegationNode) Accept(visitor Visitor) error {
	return visitor.VisitLogicalNegationNode(n)
}

type UnaryExpressionNode struct {
	Op   token.Token
	Node ExpressionNode
}

func NewUnaryExpressionNode(op token.Token, node ExpressionNode) *UnaryExpressionNode {
	return &UnaryExpressionNode{
		Op:   op,
		Node: node,
	}
}

func (n *UnaryExpressionNode) Expression() {}

func (n *UnaryExpressionNode) Accept(visitor Visitor) error {
	return visitor.VisitUnaryExpressionNode(n)
}

type BinaryExpressionNode struct {
	Op    token.Token
	Left  ExpressionNode
	Right ExpressionNode
}

func NewBinaryExpressionNode(op token.Token, left, right ExpressionNode) *BinaryExpressionNode {
	return &BinaryExpressionNode{
		Op:    op,
		Left:  left,
		Right: right,
	}
}

func (n *BinaryExpressionNode) Expression() {}

func (n *BinaryExpressionNode) Accept(visitor Visitor) error {
	return visitor.VisitBinaryExpressionNode(n)
}

type StringLiteralNode struct {
	Value string
}

func NewStringLiteralNode(value string) *StringLiteralNode {
	return &StringLiteralNode{Value: value}
}

func (n *StringLiteralNode) Accept(visitor Visitor) error {
	return visitor.VisitStringLiteralNode(n)
}

func (n *StringLiteralNode) Expression() {}

type IntegerLiteralNode struct {
	Value int64
}

func NewIntegerLiteralNode(value int64) *IntegerLiteralNode {
	return &IntegerLiteralNode{Value: value}
}

func (n *IntegerLiteralNode) Accept(visitor Visitor) error {
	return visitor.VisitIntegerLiteralNode(n)
}

func (n *IntegerLiteralNode) Expression() {}

type FloatLiteralNode struct {
	Value float64
}

func NewFloatLiteralNode(value float64) *FloatLiteralNode {
	return &FloatLiteralNode{Value: value}
}

func (n *FloatLiteralNode) Accept(visitor Visitor) error {
	return visitor.VisitFloatLiteralNode(n)
}

func (n *FloatLiteralNode) Expression() {}

type BooleanLiteralNode struct {
	Value bool
}

func NewBooleanLiteralNode(value bool) *BooleanLiteralNode {
	return &BooleanLiteralNode{Value: value}
}

func (n *BooleanLiteralNode) Accept(visitor Visitor) error {
	return visitor.VisitBooleanLiteralNode(n)
}

func (n *BooleanLiteralNode) Expression() {}
