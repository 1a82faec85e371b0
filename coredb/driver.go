// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

package coredb

import (
	"fmt"
	"sync"

	"github.com/dbflux/dbflux/dbkind"
	"github.com/dbflux/dbflux/formdef"
)

// ConnectionProfile is the user-saved connection configuration the core
// consumes but never persists itself (spec.md §6: profile storage belongs
// to the embedding application). DbConfig is an opaque, driver-specific
// JSON payload (e.g. a SQLite path, or host/port/user/database/SSL mode
// for a network driver) — the core treats it as a string and leaves
// parsing to the Driver.
type ConnectionProfile struct {
	ID           string
	DisplayName  string
	Kind         dbkind.Kind
	DbConfigJSON string
	SavePassword bool
}

// SecretRef derives the stable OS-keychain lookup key for this profile.
func (p ConnectionProfile) SecretRef() string {
	return "dbflux:" + string(p.Kind) + ":" + p.ID
}

// Driver is a factory and protocol adapter for one DbKind: static
// metadata, a connection form, and an entry point that turns a profile
// plus secrets into a live Connection.
type Driver interface {
	Kind() dbkind.Kind
	Metadata() dbkind.Metadata
	FormDefinition() formdef.FormDefinition
	ConnectWithSecrets(profile ConnectionProfile, password, sshSecret *string) (Connection, error)
	TestConnection(profile ConnectionProfile, password, sshSecret *string) error
}

// Registry maps DbKind to the Driver that serves it, populated at startup
// from compile-time features (the driver-host binds exactly one kind at
// a time, resolved by name from its --driver flag).
type Registry struct {
	mu      sync.RWMutex
	drivers map[dbkind.Kind]Driver
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{drivers: make(map[dbkind.Kind]Driver)}
}

// Register adds d under its own Kind. Registering the same Kind twice
// replaces the previous entry.
func (r *Registry) Register(d Driver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drivers[d.Kind()] = d
}

// Lookup returns the Driver registered for kind, or an error if none was.
func (r *Registry) Lookup(kind dbkind.Kind) (Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.drivers[kind]
	if !ok {
		return nil, fmt.Errorf("coredb: no driver registered for kind %q", kind)
	}
	return d, nil
}

// Kinds returns every registered Kind, in no particular order.
func (r *Registry) Kinds() []dbkind.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]dbkind.Kind, 0, len(r.drivers))
	for k := range r.drivers {
		out = append(out, k)
	}
	return out
}
