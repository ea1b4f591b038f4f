package stacks

import (
	"context"
	"fmt"
	"github.com/aleph-zero/flutterstack/engine"
	log "github.com/go-chi/httplog/v2"
	"regexp"
	"slices"
	"strings"
	"sync"
)

type Order int

const (
	BottomUp Order = iota
	TopDown
)

func (o Order) String() string {
	if o == TopDown {
		return "top-down"
	}
	return "bottom-up"
}

type Service interface {
	DefaultCapacity() int
	MaxCapacity() int
	Create(ctx context.Context, name string, capacity int) (*Description, error)
	CreateFrom(ctx context.Context, name string, values []engine.Value) (*Description, error)
	Drop(ctx context.Context, name string) error
	List(ctx context.Context) []*Description
	Describe(ctx context.Context, name string) (*Description, error)
	Push(ctx context.Context, name string, value engine.Value) (*Description, error)
	Pop(ctx context.Context, name string) (engine.Value, error)
	Top(ctx context.Context, name string) (engine.Value, error)
	Clear(ctx context.Context, name string) (*Description, error)
	Fill(ctx context.Context, name string, values []engine.Value) (*Description, error)
	Check(ctx context.Context, name string, predicate engine.Predicate[engine.Value]) (bool, engine.Value, error)
	Show(ctx context.Context, name string) (string, error)
	Scan(ctx context.Context, name string, order Order) ([]engine.Value, error)
	Copy(ctx context.Context, source, destination string) (*Description, error)
	Compare(ctx context.Context, left, right string) (bool, error)
}

type ServiceProvider struct {
	config  *Config
	metrics *metrics
	lock    sync.RWMutex
	stacks  map[string]*engine.BoundedStack[engine.Value]
}

func NewService(config *Config) Service {
	if config == nil {
		config = NewConfig()
	}
	return &ServiceProvider{
		config:  config,
		metrics: newMetrics(),
		stacks:  make(map[string]*engine.BoundedStack[engine.Value]),
	}
}

// Description summarises a stack without exposing its storage.
type Description struct {
	Name     string `json:"name"`
	Size     int    `json:"size"`
	Capacity int    `json:"capacity"`
	Empty    bool   `json:"empty"`
	Full     bool   `json:"full"`
	Display  string `json:"display"`
}

func describe(name string, s *engine.BoundedStack[engine.Value]) *Description {
	return &Description{
		Name:     name,
		Size:     s.Len(),
		Capacity: s.Cap(),
		Empty:    s.IsEmpty(),
		Full:     s.IsFull(),
		Display:  strings.TrimSuffix(s.String(), "\n"),
	}
}

var validName = regexp.MustCompile(`^[_a-zA-Z][_a-zA-Z0-9]*$`)

func (sp *ServiceProvider) DefaultCapacity() int {
	return sp.config.DefaultCapacity
}

func (sp *ServiceProvider) MaxCapacity() int {
	return sp.config.MaxCapacity
}

func (sp *ServiceProvider) Create(ctx context.Context, name string, capacity int) (d *Description, err error) {
	defer func() { sp.metrics.record(ctx, "create", err) }()

	if err := sp.validate(ctx, name, capacity); err != nil {
		return nil, err
	}

	sp.lock.Lock()
	defer sp.lock.Unlock()

	if err := sp.absent(ctx, name); err != nil {
		return nil, err
	}

	s, err := engine.WithCapacity[engine.Value](capacity)
	if err != nil {
		log.LogEntry(ctx).Error("Error allocating stack", "stack", name, "capacity", capacity, "error", err)
		return nil, fmt.Errorf("creating stack %s: %w", name, err)
	}

	sp.stacks[name] = s
	sp.metrics.stacks.Add(ctx, 1)
	return describe(name, s), nil
}

func (sp *ServiceProvider) CreateFrom(ctx context.Context, name string, values []engine.Value) (d *Description, err error) {
	defer func() { sp.metrics.record(ctx, "create", err) }()

	if err := sp.validate(ctx, name, len(values)); err != nil {
		return nil, err
	}

	sp.lock.Lock()
	defer sp.lock.Unlock()

	if err := sp.absent(ctx, name); err != nil {
		return nil, err
	}

	s, err := engine.FromSlice(values)
	if err != nil {
		log.LogEntry(ctx).Error("Error allocating stack", "stack", name, "capacity", len(values), "error", err)
		return nil, fmt.Errorf("creating stack %s: %w", name, err)
	}

	sp.stacks[name] = s
	sp.metrics.stacks.Add(ctx, 1)
	return describe(name, s), nil
}

func (sp *ServiceProvider) Drop(ctx context.Context, name string) (err error) {
	defer func() { sp.metrics.record(ctx, "drop", err) }()

	sp.lock.Lock()
	defer sp.lock.Unlock()

	if _, err := sp.get(name); err != nil {
		return err
	}
	delete(sp.stacks, name)
	sp.metrics.stacks.Add(ctx, -1)
	return nil
}

func (sp *ServiceProvider) List(ctx context.Context) []*Description {
	defer sp.metrics.record(ctx, "list", nil)

	sp.lock.RLock()
	defer sp.lock.RUnlock()

	descriptions := make([]*Description, 0, len(sp.stacks))
	for name, s := range sp.stacks {
		descriptions = append(descriptions, describe(name, s))
	}
	slices.SortFunc(descriptions, func(a, b *Description) int { return strings.Compare(a.Name, b.Name) })
	return descriptions
}

func (sp *ServiceProvider) Describe(ctx context.Context, name string) (d *Description, err error) {
	defer func() { sp.metrics.record(ctx, "describe", err) }()

	sp.lock.RLock()
	defer sp.lock.RUnlock()

	s, err := sp.get(name)
	if err != nil {
		return nil, err
	}
	return describe(name, s), nil
}

func (sp *ServiceProvider) Push(ctx context.Context, name string, value engine.Value) (d *Description, err error) {
	defer func() { sp.metrics.record(ctx, "push", err) }()

	sp.lock.Lock()
	defer sp.lock.Unlock()

	s, err := sp.get(name)
	if err != nil {
		return nil, err
	}
	if err := s.Push(value); err != nil {
		return nil, fmt.Errorf("pushing onto stack %s: %w", name, err)
	}
	return describe(name, s), nil
}

func (sp *ServiceProvider) Pop(ctx context.Context, name string) (v engine.Value, err error) {
	defer func() { sp.metrics.record(ctx, "pop", err) }()

	sp.lock.Lock()
	defer sp.lock.Unlock()

	s, err := sp.get(name)
	if err != nil {
		return engine.Value{}, err
	}
	v, err = s.Pop()
	if err != nil {
		return engine.Value{}, fmt.Errorf("popping stack %s: %w", name, err)
	}
	return v, nil
}

func (sp *ServiceProvider) Top(ctx context.Context, name string) (v engine.Value, err error) {
	defer func() { sp.metrics.record(ctx, "top", err) }()

	sp.lock.RLock()
	defer sp.lock.RUnlock()

	s, err := sp.get(name)
	if err != nil {
		return engine.Value{}, err
	}
	v, err = s.Top()
	if err != nil {
		return engine.Value{}, fmt.Errorf("reading top of stack %s: %w", name, err)
	}
	return v, nil
}

func (sp *ServiceProvider) Clear(ctx context.Context, name string) (d *Description, err error) {
	defer func() { sp.metrics.record(ctx, "clear", err) }()

	sp.lock.Lock()
	defer sp.lock.Unlock()

	s, err := sp.get(name)
	if err != nil {
		return nil, err
	}
	s.Clear()
	return describe(name, s), nil
}

func (sp *ServiceProvider) Fill(ctx context.Context, name string, values []engine.Value) (d *Description, err error) {
	defer func() { sp.metrics.record(ctx, "fill", err) }()

	sp.lock.Lock()
	defer sp.lock.Unlock()

	s, err := sp.get(name)
	if err != nil {
		return nil, err
	}
	if err := s.Fill(values); err != nil {
		return nil, fmt.Errorf("filling stack %s: %w", name, err)
	}
	return describe(name, s), nil
}

// Check reports whether the top element of the named stack satisfies
// predicate. The top element is returned alongside the outcome.
func (sp *ServiceProvider) Check(ctx context.Context, name string, predicate engine.Predicate[engine.Value]) (ok bool, v engine.Value, err error) {
	defer func() { sp.metrics.record(ctx, "check", err) }()

	sp.lock.RLock()
	defer sp.lock.RUnlock()

	s, err := sp.get(name)
	if err != nil {
		return false, engine.Value{}, err
	}
	top, err := s.Top()
	if err != nil {
		return false, engine.Value{}, fmt.Errorf("checking stack %s: %w", name, err)
	}
	return s.Satisfies(predicate, top), top, nil
}

func (sp *ServiceProvider) Show(ctx context.Context, name string) (display string, err error) {
	defer func() { sp.metrics.record(ctx, "show", err) }()

	sp.lock.RLock()
	defer sp.lock.RUnlock()

	s, err := sp.get(name)
	if err != nil {
		return "", err
	}
	return s.String(), nil
}

// Scan returns the live elements bottom-up through a const forward cursor, or
// top-down through a read-only reverse cursor.
func (sp *ServiceProvider) Scan(ctx context.Context, name string, order Order) (values []engine.Value, err error) {
	defer func() { sp.metrics.record(ctx, "scan", err) }()

	sp.lock.RLock()
	defer sp.lock.RUnlock()

	s, err := sp.get(name)
	if err != nil {
		return nil, err
	}

	values = make([]engine.Value, 0, s.Len())
	switch order {
	case TopDown:
		for c, end := s.ReadOnlyBegin(), s.ReadOnlyEnd(); !c.Equal(end); c.Advance() {
			values = append(values, c.Get())
		}
	default:
		for c, end := s.ConstBegin(), s.ConstEnd(); !c.Equal(end); c.Advance() {
			values = append(values, c.Get())
		}
	}
	return values, nil
}

// Copy makes destination an independent copy of source: a new stack when
// destination does not exist, an assignment when it does.
func (sp *ServiceProvider) Copy(ctx context.Context, source, destination string) (d *Description, err error) {
	defer func() { sp.metrics.record(ctx, "copy", err) }()

	sp.lock.Lock()
	defer sp.lock.Unlock()

	src, err := sp.get(source)
	if err != nil {
		return nil, err
	}

	dst, ok := sp.stacks[destination]
	if !ok {
		if err := sp.validate(ctx, destination, src.Cap()); err != nil {
			return nil, err
		}
		clone, err := src.Clone()
		if err != nil {
			return nil, fmt.Errorf("copying stack %s to %s: %w", source, destination, err)
		}
		sp.stacks[destination] = clone
		sp.metrics.stacks.Add(ctx, 1)
		return describe(destination, clone), nil
	}

	if err := dst.Assign(src); err != nil {
		return nil, fmt.Errorf("assigning stack %s to %s: %w", source, destination, err)
	}
	return describe(destination, dst), nil
}

func (sp *ServiceProvider) Compare(ctx context.Context, left, right string) (equal bool, err error) {
	defer func() { sp.metrics.record(ctx, "compare", err) }()

	sp.lock.RLock()
	defer sp.lock.RUnlock()

	l, err := sp.get(left)
	if err != nil {
		return false, err
	}
	r, err := sp.get(right)
	if err != nil {
		return false, err
	}
	return l.EqualFunc(r, engine.Value.Equal), nil
}

func (sp *ServiceProvider) validate(ctx context.Context, name string, capacity int) error {
	if !validName.MatchString(name) {
		log.LogEntry(ctx).Error("Invalid stack name", "stack", name)
		return Error{
			ErrorCode: InvalidName,
			Message:   fmt.Sprintf("invalid stack name '%s'", name),
		}
	}
	if capacity < 0 || capacity > sp.config.MaxCapacity {
		log.LogEntry(ctx).Error("Invalid stack capacity", "stack", name, "capacity", capacity)
		return Error{
			ErrorCode: InvalidCapacity,
			Message:   fmt.Sprintf("capacity %d of stack %s is outside [0, %d]", capacity, name, sp.config.MaxCapacity),
		}
	}
	return nil
}

func (sp *ServiceProvider) absent(ctx context.Context, name string) error {
	if _, ok := sp.stacks[name]; ok {
		log.LogEntry(ctx).Error("Stack already exists", "stack", name)
		return Error{
			ErrorCode: StackExists,
			Message:   fmt.Sprintf("stack %s already exists", name),
		}
	}
	return nil
}

func (sp *ServiceProvider) get(name string) (*engine.BoundedStack[engine.Value], error) {
	s, ok := sp.stacks[name]
	if !ok {
		return nil, Error{
			ErrorCode: NoSuchStack,
			Message:   fmt.Sprintf("stack %s does not exist", name),
		}
	}
	return s, nil
}

/* *** Stacks Config *** */

const (
	DefaultCapacity = 16
	MaxCapacity     = 1 << 20
)

type Config struct {
	DefaultCapacity int
	MaxCapacity     int
}

type Option func(*Config)

func NewConfig(options ...Option) *Config {
	cfg := &Config{
		DefaultCapacity: DefaultCapacity,
		MaxCapacity:     MaxCapacity,
	}
	for _, option := range options {
		option(cfg)
	}
	return cfg
}

func WithDefaultCapacity(capacity int) Option {
	return func(config *Config) {
		config.DefaultCapacity = capacity
	}
}

func WithMaxCapacity(capacity int) Option {
	return func(config *Config) {
		config.MaxCapacity = capacity
	}
}

/* *** Errors *** */

type ErrorCode int

const (
	StackExists ErrorCode = iota + 1
	NoSuchStack
	InvalidCapacity
	InvalidName
)

func (c ErrorCode) String() string {
	switch c {
	case StackExists:
		return "stack exists"
	case NoSuchStack:
		return "no such stack"
	case InvalidCapacity:
		return "invalid capacity"
	case InvalidName:
		return "invalid name"
	default:
		return "unknown"
	}
}

type Error struct {
	ErrorCode ErrorCode
	Message   string
	Err       error
}

func (e Error) Error() string {
	return e.Message
}

func (e Error) Unwrap() error {
	return e.Err
}

func (e Error) Is(target error) bool {
	if other, ok := target.(Error); ok {
		ignoreErrorCode := other.ErrorCode == 0
		ignoreMessage := other.Message == ""
		matchErrorCode := other.ErrorCode == e.ErrorCode
		matchMessage := other.Message == e.Message

		return matchMessage && matchErrorCode || matchMessage && ignoreErrorCode || ignoreMessage && matchErrorCode
	}
	return false
}
