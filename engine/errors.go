package engine

import (
	"fmt"
)

type ErrorCode int

const (
	AllocationFailure ErrorCode = iota + 1
	CapacityExceeded
	Underflow
	SequenceTooLong
	InvalidRange
)

func (c ErrorCode) String() string {
	switch c {
	case AllocationFailure:
		return "allocation failure"
	case CapacityExceeded:
		return "capacity exceeded"
	case Underflow:
		return "underflow"
	case SequenceTooLong:
		return "sequence too long"
	case InvalidRange:
		return "invalid range"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. They match any Error carrying the same code.
var (
	ErrAllocationFailure = Error{ErrorCode: AllocationFailure}
	ErrCapacityExceeded  = Error{ErrorCode: CapacityExceeded}
	ErrUnderflow         = Error{ErrorCode: Underflow}
	ErrSequenceTooLong   = Error{ErrorCode: SequenceTooLong}
	ErrInvalidRange      = Error{ErrorCode: InvalidRange}
)

type Error struct {
	ErrorCode ErrorCode
	Message   string
	Err       error
}

func (e Error) Error() string {
	if e.Message == "" {
		return e.ErrorCode.String()
	}
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

func errorf(code ErrorCode, format string, args ...any) Error {
	return Error{ErrorCode: code, Message: fmt.Sprintf(format, args...)}
}

// CursorError is the panic value raised when a cursor is dereferenced or
// advanced outside the live region it was created for.
type CursorError struct {
	Op    string
	Index int
	Bound int
}

func (e CursorError) Error() string {
	return fmt.Sprintf("cursor precondition violated: %s at index %d (bound %d)", e.Op, e.Index, e.Bound)
}
