// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package transport

import (
	"net"

	"github.com/Microsoft/go-winio"
)

// Listen opens a Windows named pipe at addr (e.g. `\\.\pipe\dbflux-<id>`).
func Listen(addr string) (net.Listener, error) {
	return winio.ListenPipe(addr, nil)
}

// Dial connects to the Windows named pipe at addr.
func Dial(addr string) (net.Conn, error) {
	return winio.DialPipe(addr, nil)
}
