// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"

	"github.com/dbflux/dbflux/dangerous"
)

func TestResolveFallsThroughToGlobal(t *testing.T) {
	global := DefaultGeneralSettings()
	global.RefreshPolicy = Manual

	eff := Resolve(global, nil)
	if eff.RefreshPolicy != Manual {
		t.Fatalf("expected Manual, got %v", eff.RefreshPolicy)
	}

	interval := Interval
	secs := 30
	overrides := &GlobalOverrides{RefreshPolicy: &interval, RefreshIntervalSecs: &secs}
	eff = Resolve(global, overrides)
	if eff.RefreshPolicy != Interval || eff.RefreshIntervalSecs != 30 {
		t.Fatalf("expected Interval(30), got %v(%d)", eff.RefreshPolicy, eff.RefreshIntervalSecs)
	}
	// fields absent from overrides still fall through
	if eff.ConfirmDangerousQueries != global.ConfirmDangerousQueries {
		t.Fatalf("expected ConfirmDangerousQueries to fall through to global")
	}
}

func TestEvaluateDangerousS4(t *testing.T) {
	global := GeneralSettings{
		ConfirmDangerousQueries:  true,
		DangerousRequiresWhere:   true,
		DangerousRequiresPreview: false,
		AllowRedisFlush:          true,
	}
	eff := Resolve(global, nil)

	got := eff.EvaluateDangerous(dangerous.Truncate, true)
	if got.Kind != ActionAllow {
		t.Fatalf("suppressed Truncate: got %v, want Allow", got.Kind)
	}

	eff.DangerousRequiresPreview = true
	got = eff.EvaluateDangerous(dangerous.Truncate, true)
	if got.Kind != ActionConfirm || got.DangerKind != dangerous.Truncate {
		t.Fatalf("requires_preview overrides suppression: got %+v", got)
	}
}

func TestEvaluateDangerousRedisFlushGate(t *testing.T) {
	eff := EffectiveSettings{
		ConfirmDangerousQueries: false, // would otherwise Allow everything
		AllowRedisFlush:         false,
	}
	got := eff.EvaluateDangerous(dangerous.RedisFlushAll, true)
	if got.Kind != ActionBlock {
		t.Fatalf("expected flush gate to block regardless of other settings, got %v", got.Kind)
	}
}

func TestEvaluateDangerousRequiresWhereExemption(t *testing.T) {
	eff := EffectiveSettings{
		ConfirmDangerousQueries: true,
		DangerousRequiresWhere:  false,
	}
	got := eff.EvaluateDangerous(dangerous.DeleteNoWhere, false)
	if got.Kind != ActionAllow {
		t.Fatalf("expected Allow when DangerousRequiresWhere is false, got %v", got.Kind)
	}
	// Truncate is not DeleteNoWhere/UpdateNoWhere so the exemption does
	// not apply.
	got = eff.EvaluateDangerous(dangerous.Truncate, false)
	if got.Kind != ActionConfirm {
		t.Fatalf("expected Confirm for Truncate, got %v", got.Kind)
	}
}

func TestGlobalOverridesIsEmpty(t *testing.T) {
	var o GlobalOverrides
	if !o.IsEmpty() {
		t.Fatalf("zero-value GlobalOverrides must be empty")
	}
	secs := 10
	o.RefreshIntervalSecs = &secs
	if o.IsEmpty() {
		t.Fatalf("GlobalOverrides with one field set must not be empty")
	}
}
