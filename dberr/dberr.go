// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

// Package dberr defines the closed DbError taxonomy every Connection
// method returns, plus the FormattedError a driver builds its native
// error into before classification. Grounded on the teacher's typed
// hdbError-with-code style (internal/protocol/error.go): small concrete
// error structs carrying a code and accessor methods, tested with
// errors.As, rather than a single stringly-typed enum.
package dberr

import "fmt"

// Code is the closed set of semantic error kinds every Connection method
// can fail with.
type Code int

const (
	Cancelled Code = iota
	Timeout
	NotSupported
	ConnectionFailed
	IoError
	QueryFailed
	AuthFailed
	PermissionDenied
	ObjectNotFound
	SyntaxError
	ConstraintViolation
	InvalidProfile
)

func (c Code) String() string {
	switch c {
	case Cancelled:
		return "Cancelled"
	case Timeout:
		return "Timeout"
	case NotSupported:
		return "NotSupported"
	case ConnectionFailed:
		return "ConnectionFailed"
	case IoError:
		return "IoError"
	case QueryFailed:
		return "QueryFailed"
	case AuthFailed:
		return "AuthFailed"
	case PermissionDenied:
		return "PermissionDenied"
	case ObjectNotFound:
		return "ObjectNotFound"
	case SyntaxError:
		return "SyntaxError"
	case ConstraintViolation:
		return "ConstraintViolation"
	case InvalidProfile:
		return "InvalidProfile"
	default:
		return "Unknown"
	}
}

// Retriable reports whether callers may reasonably retry an operation
// that failed with this code. Only Timeout and ConnectionFailed are.
func (c Code) Retriable() bool {
	return c == Timeout || c == ConnectionFailed
}

// DbError is the error type every Connection method returns. It wraps an
// optional *FormattedError carrying the driver-native detail.
type DbError struct {
	Code      Code
	Message   string
	Formatted *FormattedError
}

func (e *DbError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Formatted != nil {
		return e.Formatted.ToDisplayString()
	}
	return e.Code.String()
}

// Unwrap exposes the formatted detail to errors.As/errors.Is chains.
func (e *DbError) Unwrap() error {
	if e.Formatted == nil {
		return nil
	}
	return e.Formatted
}

// New builds a DbError of the given code with a plain message.
func New(code Code, message string) *DbError {
	return &DbError{Code: code, Message: message}
}

// Newf builds a DbError with a formatted message.
func Newf(code Code, format string, args ...any) *DbError {
	return &DbError{Code: code, Message: fmt.Sprintf(format, args...)}
}
