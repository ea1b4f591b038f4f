package ast

// StatementNode is the root of every parsed command.
type StatementNode interface {
	Accept(visitor StatementVisitor) error
	// Target names the stack the statement operates on, or "" when it
	// operates on the registry as a whole.
	Target() string
}

// CreateStackStatementNode creates a stack either with an explicit capacity,
// from a sequence of values (capacity = len(Values)), or with the default
// capacity when both are absent.
type CreateStackStatementNode struct {
	Stack    string
	Capacity ExpressionNode
	Values   []ExpressionNode
	FromSeq  bool
}

func NewCreateStackStatementNode(stack string) *CreateStackStatementNode {
	return &CreateStackStatementNode{Stack: stack}
}

func (n *CreateStackStatementNode) Target() string { return n.Stack }

func (n *CreateStackStatementNode) Accept(visitor StatementVisitor) error {
	return visitor.VisitCreateStackStatementNode(n)
}

type DropStackStatementNode struct {
	Stack string
}

func NewDropStackStatementNode(stack string) *DropStackStatementNode {
	return &DropStackStatementNode{Stack: stack}
}

func (n *DropStackStatementNode) Target() string { return n.Stack }

func (n *DropStackStatementNode) Accept(visitor StatementVisitor) error {
	return visitor.VisitDropStackStatementNode(n)
}

type PushStatementNode struct {
	Stack string
	Value ExpressionNode
}

func NewPushStatementNode(stack string, value ExpressionNode) *PushStatementNode {
	return &PushStatementNode{Stack: stack, Value: value}
}

func (n *PushStatementNode) Target() string { return n.Stack }

func (n *PushStatementNode) Accept(visitor StatementVisitor) error {
	return visitor.VisitPushStatementNode(n)
}

type PopStatementNode struct {
	Stack string
}

func NewPopStatementNode(stack string) *PopStatementNode {
	return &PopStatementNode{Stack: stack}
}

func (n *PopStatementNode) Target() string { return n.Stack }

func (n *PopStatementNode) Accept(visitor StatementVisitor) error {
	return visitor.VisitPopStatementNode(n)
}

type TopStatementNode struct {
	Stack string
}

func NewTopStatementNode(stack string) *TopStatementNode {
	return &TopStatementNode{Stack: stack}
}

func (n *TopStatementNode) Target() string { return n.Stack }

func (n *TopStatementNode) Accept(visitor StatementVisitor) error {
	return visitor.VisitTopStatementNode(n)
}

type ClearStatementNode struct {
	Stack string
}

func NewClearStatementNode(stack string) *ClearStatementNode {
	return &ClearStatementNode{Stack: stack}
}

func (n *ClearStatementNode) Target() string { return n.Stack }

func (n *ClearStatementNode) Accept(visitor StatementVisitor) error {
	return visitor.VisitClearStatementNode(n)
}

type FillStatementNode struct {
	Stack  string
	Values []ExpressionNode
}

func NewFillStatementNode(stack string, values []ExpressionNode) *FillStatementNode {
	return &FillStatementNode{Stack: stack, Values: values}
}

func (n *FillStatementNode) Target() string { return n.Stack }

func (n *FillStatementNode) Accept(visitor StatementVisitor) error {
	return visitor.VisitFillStatementNode(n)
}

type CheckStatementNode struct {
	Stack     string
	Predicate *PredicateNode
}

func NewCheckStatementNode(stack string, predicate *PredicateNode) *CheckStatementNode {
	return &CheckStatementNode{Stack: stack, Predicate: predicate}
}

func (n *CheckStatementNode) Target() string { return n.Stack }

func (n *CheckStatementNode) Accept(visitor StatementVisitor) error {
	return visitor.VisitCheckStatementNode(n)
}

type ShowStatementNode struct {
	Stack string
}

func NewShowStatementNode(stack string) *ShowStatementNode {
	return &ShowStatementNode{Stack: stack}
}

func (n *ShowStatementNode) Target() string { return n.Stack }

func (n *ShowStatementNode) Accept(visitor StatementVisitor) error {
	return visitor.VisitShowStatementNode(n)
}

type ShowStacksStatementNode struct{}

func NewShowStacksStatementNode() *ShowStacksStatementNode {
	return &ShowStacksStatementNode{}
}

func (n *ShowStacksStatementNode) Target() string { return "" }

func (n *ShowStacksStatementNode) Accept(visitor StatementVisitor) error {
	return visitor.VisitShowStacksStatementNode(n)
}

type ScanStatementNode struct {
	Stack   string
	Reverse bool
}

func NewScanStatementNode(stack string, reverse bool) *ScanStatementNode {
	return &ScanStatementNode{Stack: stack, Reverse: reverse}
}

func (n *ScanStatementNode) Target() string { return n.Stack }

func (n *ScanStatementNode) Accept(visitor StatementVisitor) error {
	return visitor.VisitScanStatementNode(n)
}

type CopyStatementNode struct {
	Source      string
	Destination string
}

func NewCopyStatementNode(source, destination string) *CopyStatementNode {
	return &CopyStatementNode{Source: source, Destination: destination}
}

func (n *CopyStatementNode) Target() string { return n.Destination }

func (n *CopyStatementNode) Accept(visitor StatementVisitor) error {
	return visitor.VisitCopyStatementNode(n)
}

type CompareStatementNode struct {
	Left  string
	Right string
}

func NewCompareStatementNode(left, right string) *CompareStatementNode {
	return &CompareStatementNode{Left: left, Right: right}
}

func (n *CompareStatementNode) Target() string { return n.Left }

func (n *CompareStatementNode) Accept(visitor StatementVisitor) error {
	return visitor.VisitCompareStatementNode(n)
}

type DescribeStatementNode struct {
	Stack string
}

func NewDescribeStatementNode(stack string) *DescribeStatementNode {
	return &DescribeStatementNode{Stack: stack}
}

func (n *DescribeStatementNode) Target() string { return n.Stack }

func (n *DescribeStatementNode) Accept(visitor StatementVisitor) error {
	return visitor.VisitDescribeStatementNode(n)
}
