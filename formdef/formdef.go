// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

// Package formdef models a driver's connection form: tabs of sections of
// fields. Spec.md §4.5 mentions form_definition() only in passing; this
// module fully models it here since SessionOpened and Hello both carry it
// over the wire (spec.md §4.3/§4.8), grounded on
// original_source/crates/dbflux_core/src/driver_form.rs.
package formdef

// FieldKind discriminates how a FormField should be rendered/validated.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldPassword
	FieldNumber
	FieldBoolean
	FieldSelect
	FieldFilePath
)

// SelectOption is one choice of a FieldSelect field.
type SelectOption struct {
	Value string
	Label string
}

// FormField is one input of a connection form.
type FormField struct {
	Key         string
	Label       string
	Kind        FieldKind
	Required    bool
	Default     *string
	Placeholder string
	Options     []SelectOption // meaningful iff Kind == FieldSelect
}

// FormSection groups related fields under a heading within a FormTab.
type FormSection struct {
	Title  string
	Fields []FormField
}

// FormTab groups sections under a top-level tab of the connection form
// (e.g. "Connection", "SSH Tunnel", "Authentication").
type FormTab struct {
	Title    string
	Sections []FormSection
}

// FormDefinition is the whole connection form a Driver declares via
// form_definition().
type FormDefinition struct {
	Tabs []FormTab
}
