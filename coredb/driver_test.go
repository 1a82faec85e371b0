// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

package coredb

import (
	"testing"

	"github.com/dbflux/dbflux/dbkind"
	"github.com/dbflux/dbflux/formdef"
)

type fakeDriver struct{ kind dbkind.Kind }

func (f fakeDriver) Kind() dbkind.Kind                   { return f.kind }
func (f fakeDriver) Metadata() dbkind.Metadata           { return dbkind.Metadata{ID: string(f.kind)} }
func (f fakeDriver) FormDefinition() formdef.FormDefinition { return formdef.FormDefinition{} }
func (f fakeDriver) ConnectWithSecrets(ConnectionProfile, *string, *string) (Connection, error) {
	return nil, nil
}
func (f fakeDriver) TestConnection(ConnectionProfile, *string, *string) error { return nil }

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	r.Register(fakeDriver{kind: dbkind.SQLite})

	d, err := r.Lookup(dbkind.SQLite)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if d.Kind() != dbkind.SQLite {
		t.Fatalf("got kind %v, want sqlite", d.Kind())
	}

	if _, err := r.Lookup(dbkind.Postgres); err == nil {
		t.Fatalf("expected error looking up unregistered kind")
	}
}

func TestSecretRefIsStable(t *testing.T) {
	p := ConnectionProfile{ID: "abc", Kind: dbkind.Postgres}
	if got, want := p.SecretRef(), "dbflux:postgres:abc"; got != want {
		t.Fatalf("SecretRef() = %q, want %q", got, want)
	}
}
