// Package errz defines structured error types shared by the eks packages.
package errz

import (
	"errors"
	"fmt"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// ErrSyntax indicates malformed calc expression text.
	ErrSyntax ErrorKind = iota
	// ErrCompile indicates a well-formed token stream that cannot compile.
	ErrCompile
	// ErrRuntime indicates an error raised while evaluating a program.
	ErrRuntime
	// ErrColor indicates an invalid color name or color literal.
	ErrColor
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrSyntax:
		return "syntax error"
	case ErrCompile:
		return "compile error"
	case ErrRuntime:
		return "runtime error"
	case ErrColor:
		return "color error"
	default:
		return "error"
	}
}

// Sentinel causes carried by structured errors. Callers can match on these
// with errors.Is without inspecting message text.
var (
	ErrEmptyExpression = errors.New("empty expression")
	ErrUnknownOperator = errors.New("unknown operator")
	ErrInvalidLiteral  = errors.New("invalid numeric literal")
	ErrStackUnderflow  = errors.New("stack underflow")
	ErrStackOverflow   = errors.New("stack overflow")
	ErrStackImbalance  = errors.New("stack imbalance")
	ErrDivisionByZero  = errors.New("division by zero")
	ErrUnknownColor    = errors.New("unknown color name")
	ErrBadColorSpec    = errors.New("malformed color literal")
)

// Error is a structured error with a kind, an optional column pointing into
// the offending input, and an optional sentinel cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Column  int // 0-indexed offset into the input, -1 when not applicable
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Column >= 0 {
		return fmt.Sprintf("%s: %s (column %d)", e.Kind, e.Message, e.Column+1)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the sentinel cause of the error, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Syntax returns a new syntax error located at the given column.
func Syntax(column int, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    ErrSyntax,
		Message: fmt.Sprintf(format, args...),
		Column:  column,
		Cause:   cause,
	}
}

// Compile returns a new compile error located at the given column.
func Compile(column int, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    ErrCompile,
		Message: fmt.Sprintf(format, args...),
		Column:  column,
		Cause:   cause,
	}
}

// Runtime returns a new runtime error.
func Runtime(cause error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    ErrRuntime,
		Message: fmt.Sprintf(format, args...),
		Column:  -1,
		Cause:   cause,
	}
}

// Color returns a new color error.
func Color(cause error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    ErrColor,
		Message: fmt.Sprintf(format, args...),
		Column:  -1,
		Cause:   cause,
	}
}
