// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

package dberr

import "strings"

// ErrorLocation pinpoints the schema/table/column/constraint a native
// error refers to, when the driver can determine it.
type ErrorLocation struct {
	Schema     *string
	Table      *string
	Column     *string
	Constraint *string
}

// FormattedError is the structured shape a driver builds its native error
// into before classification. Code, when present, is the driver's native
// error code (a SQLSTATE for Postgres-family drivers, a numeric string for
// MySQL) and is what the classifier keys off of.
type FormattedError struct {
	Message   string
	Detail    string
	Hint      string
	Code      string
	Location  *ErrorLocation
	Retriable bool
}

// NewFormattedError builds a FormattedError carrying only a message.
func NewFormattedError(message string) *FormattedError {
	return &FormattedError{Message: message}
}

// WithDetail sets Detail and returns the receiver for chaining.
func (f *FormattedError) WithDetail(detail string) *FormattedError {
	f.Detail = detail
	return f
}

// WithHint sets Hint and returns the receiver for chaining.
func (f *FormattedError) WithHint(hint string) *FormattedError {
	f.Hint = hint
	return f
}

// WithCode sets the native error Code and returns the receiver for
// chaining.
func (f *FormattedError) WithCode(code string) *FormattedError {
	f.Code = code
	return f
}

// WithLocation sets Location and returns the receiver for chaining.
func (f *FormattedError) WithLocation(loc ErrorLocation) *FormattedError {
	f.Location = &loc
	return f
}

// WithRetriable sets Retriable and returns the receiver for chaining.
func (f *FormattedError) WithRetriable(retriable bool) *FormattedError {
	f.Retriable = retriable
	return f
}

// Error satisfies the error interface via ToDisplayString.
func (f *FormattedError) Error() string { return f.ToDisplayString() }

// ToDisplayString assembles message, detail, hint, and code into one
// human-readable string, omitting empty parts.
func (f *FormattedError) ToDisplayString() string {
	var b strings.Builder
	b.WriteString(f.Message)
	if f.Detail != "" {
		b.WriteString(" (")
		b.WriteString(f.Detail)
		b.WriteString(")")
	}
	if f.Hint != "" {
		b.WriteString(" — ")
		b.WriteString(f.Hint)
	}
	if f.Code != "" {
		b.WriteString(" [")
		b.WriteString(f.Code)
		b.WriteString("]")
	}
	return b.String()
}

// IntoQueryError classifies the FormattedError's Code as a SQLSTATE-shaped
// query-path error, per the query-path branch of classify.
func (f *FormattedError) IntoQueryError() *DbError {
	return &DbError{Code: classify(f.Code, false), Formatted: f}
}

// IntoConnectionError classifies the FormattedError's Code as a
// SQLSTATE-shaped connection-path error.
func (f *FormattedError) IntoConnectionError() *DbError {
	return &DbError{Code: classify(f.Code, true), Formatted: f}
}

// classify maps a native SQLSTATE (Postgres-family) or numeric MySQL code
// to a DbError Code. connectionPath selects the fallback used when no
// code matches: ConnectionFailed for connection attempts, QueryFailed
// otherwise.
func classify(code string, connectionPath bool) Code {
	switch code {
	case "28000", "28P01":
		return AuthFailed
	case "1044", "1045":
		return AuthFailed
	case "42501":
		return PermissionDenied
	case "42P01", "42703", "42883", "1146", "1054":
		return ObjectNotFound
	}
	if strings.HasPrefix(code, "23") {
		return ConstraintViolation
	}
	if strings.HasPrefix(code, "28") {
		return AuthFailed
	}
	if strings.HasPrefix(code, "42") {
		return SyntaxError
	}
	if connectionPath {
		return ConnectionFailed
	}
	return QueryFailed
}

// SanitizeURI replaces the password component of a connection URI with
// "***", splitting at the last "@" then at the last ":" before it. URIs
// without an "@" (no credentials embedded) are returned unchanged.
func SanitizeURI(uri string) string {
	at := strings.LastIndex(uri, "@")
	if at < 0 {
		return uri
	}
	head := uri[:at]
	tail := uri[at:]
	colon := strings.LastIndex(head, ":")
	if colon < 0 {
		return uri
	}
	return head[:colon+1] + "***" + tail
}
