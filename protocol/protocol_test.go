// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

package protocol

import (
	"bytes"
	"io"
	"testing"

	"github.com/dbflux/dbflux/dbkind"
	"github.com/dbflux/dbflux/dbvalue"
)

func sid(s string) *string { return &s }

func TestRequestEnvelopeRoundTrip(t *testing.T) {
	cases := []RequestEnvelope{
		{
			RequestID: 42,
			Body: RequestBody{
				Kind: ReqHello,
				Hello: &HelloRequest{
					ClientName:            "dbflux",
					ClientVersion:         "0.1.0",
					SupportedVersions:     []Version{CurrentVersion},
					RequestedCapabilities: dbkind.RelationalBase,
				},
			},
		},
		{
			RequestID: 43,
			SessionID: sid("s1"),
			Body: RequestBody{
				Kind: ReqExecute,
				Execute: &ExecuteRequest{
					Query: dbvalue.QueryRequest{SQL: "SELECT 1"},
				},
			},
		},
		{
			RequestID: 44,
			SessionID: sid("s1"),
			Body: RequestBody{
				Kind:   ReqCancel,
				Cancel: &CancelRequest{HandleID: "h1"},
			},
		},
	}

	for _, env := range cases {
		var buf bytes.Buffer
		if err := SendMsg(&buf, env); err != nil {
			t.Fatalf("SendMsg: %v", err)
		}
		var got RequestEnvelope
		if err := RecvMsg(&buf, &got); err != nil {
			t.Fatalf("RecvMsg: %v", err)
		}
		if got.RequestID != env.RequestID {
			t.Errorf("RequestID = %d, want %d", got.RequestID, env.RequestID)
		}
		if got.Body.Kind != env.Body.Kind {
			t.Errorf("Body.Kind = %v, want %v", got.Body.Kind, env.Body.Kind)
		}
	}
}

func TestResponseEnvelopeRoundTripError(t *testing.T) {
	env := ResponseEnvelope{
		RequestID: 7,
		Body:      NewErrorResponse(ErrorPayload{Code: SessionNotFound, Message: "no such session", Retriable: false}),
	}
	var buf bytes.Buffer
	if err := SendMsg(&buf, env); err != nil {
		t.Fatalf("SendMsg: %v", err)
	}
	var got ResponseEnvelope
	if err := RecvMsg(&buf, &got); err != nil {
		t.Fatalf("RecvMsg: %v", err)
	}
	if got.Body.Err == nil || got.Body.Err.Code != SessionNotFound {
		t.Fatalf("got %+v, want Err.Code == SessionNotFound", got.Body)
	}
}

func TestRecvMsgEmptyFrameRejected(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0, 0, 0, 0})
	var got RequestEnvelope
	if err := RecvMsg(&buf, &got); err != ErrEmptyFrame {
		t.Fatalf("got %v, want ErrEmptyFrame", err)
	}
}

func TestRecvMsgCleanDisconnectIsEOF(t *testing.T) {
	var buf bytes.Buffer
	var got RequestEnvelope
	if err := RecvMsg(&buf, &got); err != io.EOF {
		t.Fatalf("got %v, want io.EOF on empty reader", err)
	}
}
