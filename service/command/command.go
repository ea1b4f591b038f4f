package command

import (
	"context"
	"fmt"
	"github.com/aleph-zero/flutterstack/engine"
	"github.com/aleph-zero/flutterstack/engine/ast"
	"github.com/aleph-zero/flutterstack/engine/optimizer"
	"github.com/aleph-zero/flutterstack/engine/parser"
	"github.com/aleph-zero/flutterstack/service/stacks"
	"github.com/aleph-zero/flutterstack/telemetry"
	log "github.com/go-chi/httplog/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"time"
)

type Service interface {
	Execute(ctx context.Context, command string) (*CommandResult, error)
}

type ServiceProvider struct {
	stackSvc stacks.Service
}

func NewService(stackSvc stacks.Service) Service {
	return &ServiceProvider{stackSvc: stackSvc}
}

func (sp *ServiceProvider) Execute(ctx context.Context, command string) (*CommandResult, error) {
	start := time.Now()
	commandId := engine.NewCommandId()
	ctx = engine.WithCommandId(ctx, commandId)

	stmt, err := prepare(ctx, command)
	if err != nil {
		return nil, InvalidCommandError{Command: command, Err: err}
	}

	ctx, span := telemetry.StartSpan(ctx, "command.Execute", trace.WithAttributes(
		attribute.String("commandId", commandId),
		attribute.String("stack.command.text", command),
		attribute.String("stack.name", stmt.Target())))
	defer span.End()

	x := &executor{
		ctx:      ctx,
		command:  command,
		stackSvc: sp.stackSvc,
		result:   &CommandResult{CommandId: commandId, Stack: stmt.Target()},
	}
	if err := stmt.Accept(x); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.LogEntry(ctx).Error("Error executing command", "command", command, "commandId", commandId, "error", err)
		return nil, err
	}

	x.result.Duration = time.Since(start)
	telemetry.SetAttributes(span, attribute.Int("stack.size", x.result.Size))
	return x.result, nil
}

type CommandResult struct {
	CommandId string                `json:"commandId"`
	Duration  time.Duration         `json:"duration"`
	Stack     string                `json:"stack,omitempty"`
	Output    string                `json:"output"`
	Values    []engine.Value        `json:"values,omitempty"`
	Satisfied *bool                 `json:"satisfied,omitempty"`
	Equal     *bool                 `json:"equal,omitempty"`
	Size      int                   `json:"size"`
	Capacity  int                   `json:"capacity"`
	Stacks    []*stacks.Description `json:"stacks,omitempty"`
}

func prepare(ctx context.Context, command string) (ast.StatementNode, error) {
	tokens, err := parser.LexicalScan(command)
	if err != nil {
		log.LogEntry(ctx).Error("Error scanning command", "command", command, "commandId", engine.CommandIdFromContext(ctx), "error", err)
		return nil, err
	}

	stmt, err := parser.New(tokens).Parse()
	if err != nil {
		log.LogEntry(ctx).Error("Error parsing command", "command", command, "commandId", engine.CommandIdFromContext(ctx), "error", err)
		return nil, err
	}

	stmt, err = optimizer.Optimize(stmt)
	if err != nil {
		log.LogEntry(ctx).Error("Error optimizing command", "command", command, "commandId", engine.CommandIdFromContext(ctx), "error", err)
		return nil, err
	}
	return stmt, nil
}

/* *** Errors *** */

// InvalidCommandError reports a command that could not be lexed, parsed or
// reduced, as opposed to one that failed against the stack it addressed.
type InvalidCommandError struct {
	Command string
	Err     error
}

func (e InvalidCommandError) Error() string {
	return fmt.Sprintf("invalid command '%s': %s", e.Command, e.Err)
}

func (e InvalidCommandError) Unwrap() error {
	return e.Err
}
