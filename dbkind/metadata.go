// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

package dbkind

// Icon identifies which glyph the UI shows for a driver; the core only
// ever threads the value through.
type Icon string

// Metadata holds the static facts a Driver reports about itself,
// independent of any particular connection.
type Metadata struct {
	ID             string
	DisplayName    string
	Description    string
	Category       Category
	QueryLanguage  QueryLanguage
	Capabilities   Capabilities
	DefaultPort    int // 0 means "no default network port"
	URIScheme      string
	Icon           Icon
}
