// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

// Package rpcclient implements RpcClient, the frame-transport client that
// owns one stream, serializes requests, awaits replies by request id, and
// surfaces typed errors. Ported near-verbatim from
// original_source/crates/dbflux_driver_ipc/src/transport.rs: the method
// list, the expect_variant-style helper, and id-mismatch-is-fatal.
package rpcclient

import (
	"fmt"

	"github.com/dbflux/dbflux/dberr"
	"github.com/dbflux/dbflux/protocol"
)

// ErrorKind is RpcClient's own error taxonomy, distinct from dberr.Code:
// it additionally covers transport/protocol failures that never reach a
// driver at all.
type ErrorKind int

const (
	ErrConnectionFailed ErrorKind = iota
	ErrIo
	ErrProtocol
	ErrSessionNotFound
	ErrDriver
	ErrTimeout
)

func (k ErrorKind) String() string {
	switch k {
	case ErrConnectionFailed:
		return "ConnectionFailed"
	case ErrIo:
		return "Io"
	case ErrProtocol:
		return "Protocol"
	case ErrSessionNotFound:
		return "SessionNotFound"
	case ErrDriver:
		return "Driver"
	case ErrTimeout:
		return "Timeout"
	default:
		return "Unknown"
	}
}

// RpcError is what every RpcClient method returns on failure.
type RpcError struct {
	Kind    ErrorKind
	Message string
}

func (e *RpcError) Error() string {
	return fmt.Sprintf("rpcclient: %s: %s", e.Kind, e.Message)
}

func newRpcError(kind ErrorKind, format string, args ...any) *RpcError {
	return &RpcError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// fromErrorPayload converts the wire Error sibling variant into an
// RpcError.
func fromErrorPayload(p *protocol.ErrorPayload) *RpcError {
	kind := ErrDriver
	switch p.Code {
	case protocol.SessionNotFound:
		kind = ErrSessionNotFound
	case protocol.TimeoutError:
		kind = ErrTimeout
	case protocol.TransportError:
		kind = ErrConnectionFailed
	case protocol.InvalidRequest, protocol.VersionMismatch, protocol.UnsupportedMethod, protocol.DriverError:
		kind = ErrDriver
	}
	return &RpcError{Kind: kind, Message: p.Message}
}

// IntoDbError reconstitutes the RpcError as a *dberr.DbError, the
// direction an IpcConnection maps errors for its own callers.
func (e *RpcError) IntoDbError() *dberr.DbError {
	switch e.Kind {
	case ErrTimeout:
		return dberr.New(dberr.Timeout, e.Message)
	case ErrSessionNotFound:
		return dberr.New(dberr.ConnectionFailed, e.Message)
	case ErrConnectionFailed, ErrIo, ErrProtocol:
		return dberr.New(dberr.ConnectionFailed, e.Message)
	default:
		return dberr.New(dberr.QueryFailed, e.Message)
	}
}
