// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

package dberr

import "testing"

func TestClassifyQueryError(t *testing.T) {
	cases := []struct {
		code string
		want Code
	}{
		{"23505", ConstraintViolation},
		{"42P01", ObjectNotFound},
		{"42703", ObjectNotFound},
		{"1146", ObjectNotFound},
		{"1054", ObjectNotFound},
		{"42501", PermissionDenied},
		{"42000", SyntaxError},
		{"1044", AuthFailed},
		{"1045", AuthFailed},
		{"99999", QueryFailed},
	}
	for _, tc := range cases {
		got := NewFormattedError("boom").WithCode(tc.code).IntoQueryError()
		if got.Code != tc.want {
			t.Errorf("code %q: got %v, want %v", tc.code, got.Code, tc.want)
		}
	}
}

func TestClassifyConnectionError(t *testing.T) {
	got := NewFormattedError("boom").WithCode("28P01").IntoConnectionError()
	if got.Code != AuthFailed {
		t.Errorf("got %v, want AuthFailed", got.Code)
	}
	got = NewFormattedError("boom").WithCode("99999").IntoConnectionError()
	if got.Code != ConnectionFailed {
		t.Errorf("got %v, want ConnectionFailed", got.Code)
	}
}

func TestSanitizeURI(t *testing.T) {
	in := "scheme://u:p@h/d"
	want := "scheme://u:***@h/d"
	if got := SanitizeURI(in); got != want {
		t.Errorf("SanitizeURI(%q) = %q, want %q", in, got, want)
	}

	noAt := "scheme://h/d"
	if got := SanitizeURI(noAt); got != noAt {
		t.Errorf("SanitizeURI(%q) = %q, want unchanged", noAt, got)
	}
}

func TestRetriable(t *testing.T) {
	if !Timeout.Retriable() || !ConnectionFailed.Retriable() {
		t.Fatalf("Timeout and ConnectionFailed must be retriable")
	}
	if Cancelled.Retriable() || QueryFailed.Retriable() {
		t.Fatalf("Cancelled and QueryFailed must not be retriable")
	}
}
