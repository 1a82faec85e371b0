// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

// Package driverhost implements the driver-host server loop: accept a
// stream, gate everything on a Hello handshake, dispatch every other
// request variant to the session's Connection, and map errors back onto
// the wire. Grounded on spec.md §4.8 for the dispatch algorithm and on
// internal/protocol/protocol.go's accept/dispatch/recv-send loop shape
// (the teacher's session processes messages the same sequential way).
package driverhost

import (
	"errors"
	"io"
	"log"
	"net"
	"os"
	"time"

	"github.com/dbflux/dbflux/coredb"
	"github.com/dbflux/dbflux/dberr"
	"github.com/dbflux/dbflux/driverhost/metrics"
	"github.com/dbflux/dbflux/protocol"
	"github.com/dbflux/dbflux/session"
)

var slog = log.New(os.Stderr, "dbflux.driverhost ", log.Ldate|log.Ltime|log.Lshortfile)

// Host binds exactly one coredb.Driver and serves it over one listener,
// per spec.md §4.8's "single-process, single-driver" design: the
// embedding application spawns one driver-host per bound DbKind.
type Host struct {
	Driver  coredb.Driver
	Metrics *metrics.Metrics
}

// Serve accepts connections on ln forever, handling them sequentially:
// each accepted stream is served to completion before the next Accept, so
// one client at a time is active. It returns only when ln.Accept fails
// permanently (e.g. the listener was closed for shutdown).
func (h *Host) Serve(ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		h.handleStream(conn)
	}
}

// handleStream owns one accepted connection end to end: its own
// SessionManager, its own hello_done gate, and the request loop. It
// never shares session state with any other stream.
func (h *Host) handleStream(conn net.Conn) {
	defer conn.Close()

	sessions := session.NewManager()
	defer func() {
		if h.Metrics != nil {
			h.Metrics.OpenSessions.Sub(float64(sessions.Len()))
		}
		sessions.CloseAll()
	}()

	helloDone := false

	for {
		var req protocol.RequestEnvelope
		if err := protocol.RecvMsg(conn, &req); err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			slog.Printf("recv: %v", err)
			return
		}

		start := time.Now()
		resp, errCode := h.dispatch(&req, sessions, &helloDone)
		if h.Metrics != nil {
			h.Metrics.ObserveRequest(req.Body.Kind.String(), start, errCode)
		}

		env := protocol.ResponseEnvelope{RequestID: req.RequestID, SessionID: req.SessionID, Body: resp}
		if err := protocol.SendMsg(conn, env); err != nil {
			slog.Printf("send: %v", err)
			return
		}
	}
}

// dispatch implements spec.md §4.8 step 3. It returns the response body
// to send plus the ErrorCode name for metrics (empty on success).
func (h *Host) dispatch(req *protocol.RequestEnvelope, sessions *session.Manager, helloDone *bool) (protocol.ResponseBody, string) {
	if req.Body.Kind == protocol.ReqHello {
		return h.handleHello(req.Body.Hello, helloDone)
	}
	if !*helloDone {
		return errorResponse(protocol.InvalidRequest, "Hello handshake required", false)
	}
	if req.Body.Kind == protocol.ReqOpenSession {
		return h.handleOpenSession(req.Body.OpenSession, sessions)
	}
	if req.SessionID == nil {
		return errorResponse(protocol.SessionNotFound, "request carries no session id", false)
	}
	conn, ok := sessions.Get(*req.SessionID)
	if !ok {
		return errorResponse(protocol.SessionNotFound, "no session "+*req.SessionID, false)
	}
	if req.Body.Kind == protocol.ReqCloseSession {
		sessions.Remove(*req.SessionID)
		if h.Metrics != nil {
			h.Metrics.OpenSessions.Dec()
		}
		if err := conn.Close(); err != nil {
			slog.Printf("close session %s: %v", *req.SessionID, err)
		}
		return protocol.ResponseBody{Kind: protocol.RespSessionClosed}, ""
	}
	return dispatchConnection(conn, req.Body)
}

func (h *Host) handleHello(reqHello *protocol.HelloRequest, helloDone *bool) (protocol.ResponseBody, string) {
	if reqHello == nil {
		return errorResponse(protocol.InvalidRequest, "missing hello payload", false)
	}
	selected, ok := protocol.CurrentVersion.BestMatch(reqHello.SupportedVersions)
	if !ok {
		return errorResponse(protocol.VersionMismatch, "no compatible protocol version", false)
	}
	*helloDone = true
	meta := h.Driver.Metadata()
	return protocol.ResponseBody{
		Kind: protocol.RespHello,
		Hello: &protocol.HelloResponse{
			ServerName:      "dbflux-driver-host",
			ServerVersion:   "1.0",
			SelectedVersion: selected,
			Capabilities:    meta.Capabilities,
			DriverKind:      h.Driver.Kind(),
			DriverMetadata:  meta,
			FormDefinition:  h.Driver.FormDefinition(),
		},
	}, ""
}

func (h *Host) handleOpenSession(req *protocol.OpenSessionRequest, sessions *session.Manager) (protocol.ResponseBody, string) {
	if req == nil {
		return errorResponse(protocol.InvalidRequest, "missing open_session payload", false)
	}
	profile := coredb.ConnectionProfile{DbConfigJSON: req.ProfileJSON, Kind: h.Driver.Kind()}
	conn, err := h.Driver.ConnectWithSecrets(profile, req.Password, req.SSHSecret)
	if err != nil {
		return mapDbErrResponse(asDbError(err))
	}

	id := newSessionID()
	sessions.Insert(id, conn)
	if h.Metrics != nil {
		h.Metrics.OpenSessions.Inc()
	}

	meta := h.Driver.Metadata()
	return protocol.ResponseBody{
		Kind: protocol.RespSessionOpened,
		SessionOpened: &protocol.SessionOpenedResponse{
			SessionID:           id,
			Kind:                conn.Kind(),
			Metadata:            meta,
			SchemaLoadingStrategy: protocol.SchemaLazy,
			SchemaFeatures:      conn.Capabilities(),
			CodeGenCapabilities: conn.CodeGenerators(),
		},
	}, ""
}

func errorResponse(code protocol.ErrorCode, message string, retriable bool) (protocol.ResponseBody, string) {
	return protocol.NewErrorResponse(protocol.ErrorPayload{Code: code, Message: message, Retriable: retriable}), code.String()
}

func mapDbErrResponse(err *dberr.DbError) (protocol.ResponseBody, string) {
	payload := protocol.MapDbError(err)
	return protocol.NewErrorResponse(payload), payload.Code.String()
}

func asDbError(err error) *dberr.DbError {
	var dbErr *dberr.DbError
	if errors.As(err, &dbErr) {
		return dbErr
	}
	return dberr.New(dberr.QueryFailed, err.Error())
}
