// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

// Package config holds AppConfig, its general/per-driver settings, and the
// dangerous-query decision function every user-flagged dangerous
// execution consults before running. Ported from
// original_source/crates/dbflux_core/src/app_config.rs; persistence style
// (constructor + named default constants) follows driver/connector.go.
package config

import (
	"github.com/dbflux/dbflux/dangerous"

	"dario.cat/mergo"
)

// RefreshKind discriminates a schema-refresh policy.
type RefreshKind int

const (
	RefreshManual RefreshKind = iota
	RefreshInterval
)

// RefreshPolicy is Manual, or Interval at a period given separately by
// GeneralSettings.RefreshIntervalSecs.
type RefreshPolicy struct {
	Kind RefreshKind
}

var Manual = RefreshPolicy{Kind: RefreshManual}
var Interval = RefreshPolicy{Kind: RefreshInterval}

// Default constants, named the way driver/connector.go names its
// Default*/min*/max* block.
const (
	DefaultRefreshIntervalSecs   = 30
	minRefreshIntervalSecs       = 5
	maxRefreshIntervalSecs       = 3600
	DefaultConfirmDangerous      = true
	DefaultDangerousRequiresWhere = true
	DefaultDangerousRequiresPreview = false
	DefaultAllowRedisFlush       = false
)

// GeneralSettings are the process-wide defaults, overridable per driver
// via GlobalOverrides.
type GeneralSettings struct {
	RefreshPolicy            RefreshPolicy
	RefreshIntervalSecs      int
	ConfirmDangerousQueries  bool
	DangerousRequiresWhere   bool
	DangerousRequiresPreview bool
	AllowRedisFlush          bool
}

// DefaultGeneralSettings returns the built-in defaults, the same role
// driver/connector.go's newConnector() constants play.
func DefaultGeneralSettings() GeneralSettings {
	return GeneralSettings{
		RefreshPolicy:            Manual,
		RefreshIntervalSecs:      DefaultRefreshIntervalSecs,
		ConfirmDangerousQueries:  DefaultConfirmDangerous,
		DangerousRequiresWhere:   DefaultDangerousRequiresWhere,
		DangerousRequiresPreview: DefaultDangerousRequiresPreview,
		AllowRedisFlush:          DefaultAllowRedisFlush,
	}
}

// ClampRefreshIntervalSecs clamps a user-supplied interval to
// [minRefreshIntervalSecs, maxRefreshIntervalSecs].
func ClampRefreshIntervalSecs(secs int) int {
	if secs < minRefreshIntervalSecs {
		return minRefreshIntervalSecs
	}
	if secs > maxRefreshIntervalSecs {
		return maxRefreshIntervalSecs
	}
	return secs
}

// GlobalOverrides is an all-optional partial shadow of the subset of
// GeneralSettings a driver may override. It is never materialized beyond
// this sparse shape — Resolve merges it field-wise at
// read time and the merged result is not itself persisted.
type GlobalOverrides struct {
	RefreshPolicy            *RefreshPolicy `json:"refresh_policy,omitempty"`
	RefreshIntervalSecs      *int           `json:"refresh_interval_secs,omitempty"`
	ConfirmDangerousQueries  *bool          `json:"confirm_dangerous_queries,omitempty"`
	DangerousRequiresWhere   *bool          `json:"dangerous_requires_where,omitempty"`
	DangerousRequiresPreview *bool          `json:"dangerous_requires_preview,omitempty"`
}

// IsEmpty reports whether every field is unset, the condition under which
// AppConfig omits a DriverOverrides entry entirely on save.
func (o GlobalOverrides) IsEmpty() bool {
	return o.RefreshPolicy == nil && o.RefreshIntervalSecs == nil &&
		o.ConfirmDangerousQueries == nil && o.DangerousRequiresWhere == nil &&
		o.DangerousRequiresPreview == nil
}

// EffectiveSettings is the resolved view of GeneralSettings after applying
// an optional GlobalOverrides.
type EffectiveSettings struct {
	RefreshPolicy            RefreshPolicy
	RefreshIntervalSecs      int
	ConfirmDangerousQueries  bool
	DangerousRequiresWhere   bool
	DangerousRequiresPreview bool
	AllowRedisFlush          bool
}

// Resolve merges overrides onto global, field-wise: an override field
// present in overrides wins, otherwise the global value carries through.
// The merge itself is one dario.cat/mergo call over a GlobalOverrides
// populated from global's values, with overrides then applied as the
// WithOverride source — this is the same "compose defaults with a sparse
// shadow record" shape app_config.rs's Option::unwrap_or chain follows,
// but without hand-rolled per-field plumbing.
func Resolve(global GeneralSettings, overrides *GlobalOverrides) EffectiveSettings {
	base := GlobalOverrides{
		RefreshPolicy:            &global.RefreshPolicy,
		RefreshIntervalSecs:      &global.RefreshIntervalSecs,
		ConfirmDangerousQueries:  &global.ConfirmDangerousQueries,
		DangerousRequiresWhere:   &global.DangerousRequiresWhere,
		DangerousRequiresPreview: &global.DangerousRequiresPreview,
	}
	if overrides != nil {
		if err := mergo.Merge(&base, *overrides, mergo.WithOverride); err != nil {
			// mergo only errors on incompatible types, impossible here
			// since both sides are GlobalOverrides.
			panic(err)
		}
	}
	return EffectiveSettings{
		RefreshPolicy:            *base.RefreshPolicy,
		RefreshIntervalSecs:      *base.RefreshIntervalSecs,
		ConfirmDangerousQueries:  *base.ConfirmDangerousQueries,
		DangerousRequiresWhere:   *base.DangerousRequiresWhere,
		DangerousRequiresPreview: *base.DangerousRequiresPreview,
		AllowRedisFlush:          global.AllowRedisFlush,
	}
}

// ActionKind discriminates the three-way dangerous-query decision.
type ActionKind int

const (
	ActionAllow ActionKind = iota
	ActionConfirm
	ActionBlock
)

// Action is the result of EvaluateDangerous: Allow, Confirm(Kind), or
// Block(message).
type Action struct {
	Kind    ActionKind
	DangerKind dangerous.Kind
	Message string
}

func allow() Action { return Action{Kind: ActionAllow} }
func confirm(k dangerous.Kind) Action {
	return Action{Kind: ActionConfirm, DangerKind: k, Message: k.Message()}
}
func block(msg string) Action { return Action{Kind: ActionBlock, Message: msg} }

// EvaluateDangerous is the single entry point consulted before executing
// a user-flagged dangerous query. Precedence, exactly as in
// app_config.rs's evaluate_dangerous:
//  1. Redis flush kinds are blocked outright when AllowRedisFlush is
//     false, regardless of every other setting.
//  2. ConfirmDangerousQueries == false allows everything else.
//  3. DangerousRequiresWhere == false exempts DeleteNoWhere/UpdateNoWhere.
//  4. DangerousRequiresPreview == true forces Confirm, ignoring
//     suppression.
//  5. isSuppressed allows.
//  6. Otherwise Confirm(kind).
func (s EffectiveSettings) EvaluateDangerous(kind dangerous.Kind, isSuppressed bool) Action {
	if (kind == dangerous.RedisFlushAll || kind == dangerous.RedisFlushDb) && !s.AllowRedisFlush {
		return block(kind.Message())
	}
	if !s.ConfirmDangerousQueries {
		return allow()
	}
	if !s.DangerousRequiresWhere && (kind == dangerous.DeleteNoWhere || kind == dangerous.UpdateNoWhere) {
		return allow()
	}
	if s.DangerousRequiresPreview {
		return confirm(kind)
	}
	if isSuppressed {
		return allow()
	}
	return confirm(kind)
}
