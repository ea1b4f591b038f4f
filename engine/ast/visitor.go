package ast

type Visitor interface {
	VisitIdentifierNode(*IdentifierNode) error

	VisitParenthesizedExpression(*ParenthesizedExpressionNode) error
	VisitLogicalNegationNode(*LogicalNegationNode) error
	VisitUnaryExpressionNode(*UnaryExpressionNode) error
	VisitBinaryExpressionNode(*BinaryExpressionNode) error

	VisitStringLiteralNode(*StringLiteralNode) error
	VisitIntegerLiteralNode(*IntegerLiteralNode) error
	VisitFloatLiteralNode(*FloatLiteralNode) error
	VisitBooleanLiteralNode(*BooleanLiteralNode) error
}

type StatementVisitor interface {
	VisitCreateStackStatementNode(*CreateStackStatementNode) error
	VisitDropStackStatementNode(*DropStackStatementNode) error
	VisitPushStatementNode(*PushStatementNode) error
	VisitPopStatementNode(*PopStatementNode) error
	VisitTopStatementNode(*TopStatementNode) error
	VisitClearStatementNode(*ClearStatementNode) error
	VisitFillStatementNode(*FillStatementNode) error
	VisitCheckStatementNode(*CheckStatementNode) error
	VisitShowStatementNode(*ShowStatementNode) error
	VisitShowStacksStatementNode(*ShowStacksStatementNode) error
	VisitScanStatementNode(*ScanStatementNode) error
	VisitCopyStatementNode(*CopyStatementNode) error
	VisitCompareStatementNode(*CompareStatementNode) error
	VisitDescribeStatementNode(*DescribeStatementNode) error
}
