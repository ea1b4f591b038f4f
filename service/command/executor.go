package command

import (
	"context"
	"fmt"
	"github.com/aleph-zero/flutterstack/engine"
	"github.com/aleph-zero/flutterstack/engine/ast"
	"github.com/aleph-zero/flutterstack/engine/evaluator"
	"github.com/aleph-zero/flutterstack/engine/optimizer"
	"github.com/aleph-zero/flutterstack/service/stacks"
	"strings"
)

// executor dispatches a parsed statement to the stack registry and fills in
// the command result.
type executor struct {
	ctx      context.Context
	command  string
	stackSvc stacks.Service
	result   *CommandResult
}

func (x *executor) invalid(err error) error {
	return InvalidCommandError{Command: x.command, Err: err}
}

func (x *executor) describe(d *stacks.Description) {
	x.result.Size = d.Size
	x.result.Capacity = d.Capacity
}

func (x *executor) VisitCreateStackStatementNode(node *ast.CreateStackStatementNode) error {
	if node.FromSeq {
		values, err := optimizer.Constants(node.Values)
		if err != nil {
			return x.invalid(err)
		}
		d, err := x.stackSvc.CreateFrom(x.ctx, node.Stack, values)
		if err != nil {
			return err
		}
		x.describe(d)
		x.result.Output = d.Display
		return nil
	}

	capacity := x.stackSvc.DefaultCapacity()
	if node.Capacity != nil {
		v, err := optimizer.Constant(node.Capacity)
		if err != nil {
			return x.invalid(err)
		}
		i, ok := v.IntVal()
		if !ok {
			return x.invalid(fmt.Errorf("capacity must be an integer, received %s", v.Kind()))
		}
		capacity = int(i)
	}

	d, err := x.stackSvc.Create(x.ctx, node.Stack, capacity)
	if err != nil {
		return err
	}
	x.describe(d)
	x.result.Output = fmt.Sprintf("created stack %s with capacity %d", d.Name, d.Capacity)
	return nil
}

func (x *executor) VisitDropStackStatementNode(node *ast.DropStackStatementNode) error {
	if err := x.stackSvc.Drop(x.ctx, node.Stack); err != nil {
		return err
	}
	x.result.Output = fmt.Sprintf("dropped stack %s", node.Stack)
	return nil
}

func (x *executor) VisitPushStatementNode(node *ast.PushStatementNode) error {
	v, err := optimizer.Constant(node.Value)
	if err != nil {
		return x.invalid(err)
	}
	d, err := x.stackSvc.Push(x.ctx, node.Stack, v)
	if err != nil {
		return err
	}
	x.describe(d)
	x.result.Output = d.Display
	return nil
}

func (x *executor) VisitPopStatementNode(node *ast.PopStatementNode) error {
	v, err := x.stackSvc.Pop(x.ctx, node.Stack)
	if err != nil {
		return err
	}
	x.result.Values = []engine.Value{v}
	x.result.Output = v.String()
	return x.refresh(node.Stack)
}

func (x *executor) VisitTopStatementNode(node *ast.TopStatementNode) error {
	v, err := x.stackSvc.Top(x.ctx, node.Stack)
	if err != nil {
		return err
	}
	x.result.Values = []engine.Value{v}
	x.result.Output = v.String()
	return x.refresh(node.Stack)
}

func (x *executor) VisitClearStatementNode(node *ast.ClearStatementNode) error {
	d, err := x.stackSvc.Clear(x.ctx, node.Stack)
	if err != nil {
		return err
	}
	x.describe(d)
	x.result.Output = d.Display
	return nil
}

func (x *executor) VisitFillStatementNode(node *ast.FillStatementNode) error {
	values, err := optimizer.Constants(node.Values)
	if err != nil {
		return x.invalid(err)
	}
	d, err := x.stackSvc.Fill(x.ctx, node.Stack, values)
	if err != nil {
		return err
	}
	x.describe(d)
	x.result.Output = d.Display
	return nil
}

func (x *executor) VisitCheckStatementNode(node *ast.CheckStatementNode) error {
	program, err := evaluator.Compile(node.Predicate.Node)
	if err != nil {
		return x.invalid(err)
	}

	satisfied, top, err := x.stackSvc.Check(x.ctx, node.Stack, program.Predicate())
	if err != nil {
		return err
	}
	if err := program.Err(); err != nil {
		return x.invalid(err)
	}

	x.result.Satisfied = &satisfied
	x.result.Values = []engine.Value{top}
	x.result.Output = fmt.Sprintf("%t", satisfied)
	return x.refresh(node.Stack)
}

func (x *executor) VisitShowStatementNode(node *ast.ShowStatementNode) error {
	display, err := x.stackSvc.Show(x.ctx, node.Stack)
	if err != nil {
		return err
	}
	x.result.Output = strings.TrimSuffix(display, "\n")
	return x.refresh(node.Stack)
}

func (x *executor) VisitShowStacksStatementNode(*ast.ShowStacksStatementNode) error {
	descriptions := x.stackSvc.List(x.ctx)

	var sb strings.Builder
	for i, d := range descriptions {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s %d/%d", d.Name, d.Size, d.Capacity)
	}
	x.result.Stacks = descriptions
	x.result.Output = sb.String()
	return nil
}

func (x *executor) VisitScanStatementNode(node *ast.ScanStatementNode) error {
	order := stacks.BottomUp
	if node.Reverse {
		order = stacks.TopDown
	}

	values, err := x.stackSvc.Scan(x.ctx, node.Stack, order)
	if err != nil {
		return err
	}

	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, v.String())
	}
	x.result.Values = values
	x.result.Output = strings.Join(parts, " ")
	return x.refresh(node.Stack)
}

func (x *executor) VisitCopyStatementNode(node *ast.CopyStatementNode) error {
	d, err := x.stackSvc.Copy(x.ctx, node.Source, node.Destination)
	if err != nil {
		return err
	}
	x.describe(d)
	x.result.Output = d.Display
	return nil
}

func (x *executor) VisitCompareStatementNode(node *ast.CompareStatementNode) error {
	equal, err := x.stackSvc.Compare(x.ctx, node.Left, node.Right)
	if err != nil {
		return err
	}
	x.result.Equal = &equal
	if equal {
		x.result.Output = fmt.Sprintf("%s and %s are equal", node.Left, node.Right)
	} else {
		x.result.Output = fmt.Sprintf("%s and %s differ", node.Left, node.Right)
	}
	return x.refresh(node.Left)
}

func (x *executor) VisitDescribeStatementNode(node *ast.DescribeStatementNode) error {
	d, err := x.stackSvc.Describe(x.ctx, node.Stack)
	if err != nil {
		return err
	}
	x.describe(d)
	x.result.Output = fmt.Sprintf("stack %s: size %d, capacity %d, empty %t, full %t",
		d.Name, d.Size, d.Capacity, d.Empty, d.Full)
	return nil
}

func (x *executor) refresh(name string) error {
	d, err := x.stackSvc.Describe(x.ctx, name)
	if err != nil {
		return err
	}
	x.describe(d)
	return nil
}
