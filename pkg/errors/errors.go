// Package errors provides structured error types for kintree.
//
// Every error that crosses a package boundary carries a [Code]. Codes fall
// into a few [Kind]s, which is all a host needs to pick an HTTP status or a
// process exit code:
//
//	err := errors.New(errors.ErrCodeUnknownNode, "no person %q", id)
//	switch errors.KindOf(err) {
//	case errors.KindNotFound:
//	    // 404
//	}
//
// Data problems in individual rows are not errors; see record.Defect.
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes.
const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidRecord Code = "INVALID_RECORD"
	ErrCodeInvalidID     Code = "INVALID_ID"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidSource Code = "INVALID_SOURCE"

	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeUnknownNode     Code = "UNKNOWN_NODE"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeSessionNotFound Code = "SESSION_NOT_FOUND"

	// A person who is their own ancestor, directly or through a loop.
	ErrCodeCycle      Code = "STRUCTURE_CYCLE"
	ErrCodeSelfParent Code = "STRUCTURE_SELF_PARENT"

	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Kind is the coarse class of a code.
type Kind int

const (
	KindInternal Kind = iota
	KindInput
	KindNotFound
	KindStructure
	KindNetwork
)

var kinds = map[Code]Kind{
	ErrCodeInvalidInput:    KindInput,
	ErrCodeInvalidRecord:   KindInput,
	ErrCodeInvalidID:       KindInput,
	ErrCodeInvalidConfig:   KindInput,
	ErrCodeInvalidFormat:   KindInput,
	ErrCodeInvalidPath:     KindInput,
	ErrCodeInvalidSource:   KindInput,
	ErrCodeNotFound:        KindNotFound,
	ErrCodeUnknownNode:     KindNotFound,
	ErrCodeFileNotFound:    KindNotFound,
	ErrCodeSessionNotFound: KindNotFound,
	ErrCodeCycle:           KindStructure,
	ErrCodeSelfParent:      KindStructure,
	ErrCodeNetwork:         KindNetwork,
	ErrCodeTimeout:         KindNetwork,
}

// Kind returns the class of c. Unknown codes are internal.
func (c Code) Kind() Kind { return kinds[c] }

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool { return GetCode(err) == code }

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// KindOf classifies err. Errors without a code are internal.
func KindOf(err error) Kind { return GetCode(err).Kind() }

// UserMessage returns the message without the code prefix, or err's text
// for errors without a code.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsStructural reports whether err describes an impossible family shape.
// Structural errors halt layout.
func IsStructural(err error) bool { return KindOf(err) == KindStructure }

// Exit codes returned by [ExitCode].
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitStructure   = 2
	ExitInterrupted = 130
)

// ExitCode maps the error a command returned to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case IsStructural(err):
		return ExitStructure
	}
	return ExitFailure
}
