// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

package dbkind

import "testing"

func TestCapabilitiesHas(t *testing.T) {
	c := RelationalBase

	if !c.Has(Views | ForeignKeys) {
		t.Fatalf("expected RelationalBase to have Views|ForeignKeys")
	}
	if c.Has(KeyExpiration) {
		t.Fatalf("did not expect RelationalBase to have KeyExpiration")
	}
	if !c.HasAny(KeyExpiration | Views) {
		t.Fatalf("expected HasAny to match on Views even without KeyExpiration")
	}
}

func TestCategoryVocabulary(t *testing.T) {
	cases := []struct {
		cat       Category
		container string
		record    string
	}{
		{Relational, "Tables", "Rows"},
		{Document, "Collections", "Documents"},
		{KeyValue, "Keys", "Values"},
	}
	for _, tc := range cases {
		if got := tc.cat.ContainerNoun(); got != tc.container {
			t.Errorf("%v.ContainerNoun() = %q, want %q", tc.cat, got, tc.container)
		}
		if got := tc.cat.RecordNoun(); got != tc.record {
			t.Errorf("%v.RecordNoun() = %q, want %q", tc.cat, got, tc.record)
		}
	}
}

func TestCustomQueryLanguageString(t *testing.T) {
	q := CustomQueryLanguage("graphql")
	if got := q.String(); got != "graphql" {
		t.Fatalf("String() = %q, want graphql", got)
	}
}
