// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

// Package session implements the driver-host's SessionManager: a map of
// session id to owned coredb.Connection. Grounded on spec.md §4.4;
// map-with-mutex shape follows internal/protocol/protocol.go's partCache
// (owns a map, exposes accessor methods under a lock).
package session

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/dbflux/dbflux/coredb"
)

var slog = log.New(os.Stderr, "dbflux.session ", log.Ldate|log.Ltime|log.Lshortfile)

// Manager owns every open Connection inside one driver-host stream.
// Within one stream the host processes one request at a time, so callers
// need no concurrent-access discipline on an individual Connection —
// Manager's own mutex only protects the map itself.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]coredb.Connection
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]coredb.Connection)}
}

// Insert stores conn under id, which must not already be present.
func (m *Manager) Insert(id string, conn coredb.Connection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = conn
}

// Get returns the Connection stored under id, or (nil, false).
func (m *Manager) Get(id string) (coredb.Connection, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.sessions[id]
	return c, ok
}

// Remove deletes and returns the Connection stored under id, or
// (nil, false) if absent. It does not close the Connection; callers
// decide whether and when to do so.
func (m *Manager) Remove(id string) (coredb.Connection, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	return c, ok
}

// CloseAll closes and removes every session, logging (not returning) any
// close error so one failing Connection doesn't block cleanup of the
// rest.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, c := range m.sessions {
		if err := c.Close(); err != nil {
			slog.Printf("close session %s: %v", id, err)
		}
		delete(m.sessions, id)
	}
}

// Len reports how many sessions are currently open.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// ErrSessionNotFound is returned by the driver-host for any request
// carrying a session id absent from the Manager.
var ErrSessionNotFound = fmt.Errorf("session: not found")
