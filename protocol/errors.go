// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

package protocol

import "github.com/dbflux/dbflux/dberr"

// ErrorCode is the closed set of wire-level error kinds. Unlike dberr.Code
// (which every Connection method returns locally), ErrorCode is what a
// DbError is mapped to when it crosses the wire as ResponseBody.Error.
type ErrorCode int

const (
	InvalidRequest ErrorCode = iota
	VersionMismatch
	SessionNotFound
	UnsupportedMethod
	DriverError
	TransportError
	TimeoutError
)

func (c ErrorCode) String() string {
	switch c {
	case InvalidRequest:
		return "InvalidRequest"
	case VersionMismatch:
		return "VersionMismatch"
	case SessionNotFound:
		return "SessionNotFound"
	case UnsupportedMethod:
		return "UnsupportedMethod"
	case DriverError:
		return "Driver"
	case TransportError:
		return "Transport"
	case TimeoutError:
		return "Timeout"
	default:
		return "Unknown"
	}
}

// ErrorPayload is ResponseBody's Error variant: a sibling of every
// success variant, not a transport failure.
type ErrorPayload struct {
	Code      ErrorCode `msgpack:"code"`
	Message   string    `msgpack:"message"`
	Retriable bool      `msgpack:"retriable"`
}

func (e *ErrorPayload) Error() string { return e.Message }

// MapDbError maps a *dberr.DbError to the wire ErrorPayload per the fixed
// table in spec.md §4.8/§7: Timeout→Timeout(retriable), NotSupported→
// UnsupportedMethod, ConnectionFailed→Transport(retriable),
// everything else (including Cancelled)→Driver(non-retriable).
func MapDbError(err *dberr.DbError) ErrorPayload {
	switch err.Code {
	case dberr.Timeout:
		return ErrorPayload{Code: TimeoutError, Message: err.Error(), Retriable: true}
	case dberr.NotSupported:
		return ErrorPayload{Code: UnsupportedMethod, Message: err.Error(), Retriable: false}
	case dberr.ConnectionFailed:
		return ErrorPayload{Code: TransportError, Message: err.Error(), Retriable: true}
	default:
		return ErrorPayload{Code: DriverError, Message: err.Error(), Retriable: false}
	}
}
