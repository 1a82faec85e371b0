// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

package dbkind

// Capabilities is a bitset of independent feature flags a driver declares
// statically at registration time. It never changes for the lifetime of a
// Connection; every gated operation checks the relevant bit before acting.
type Capabilities uint64

// Connection features.
const (
	MultipleDatabases Capabilities = 1 << iota
	Schemas
	SSHTunnel
	SSL
	Authentication

	// Execution features.
	Cancellation
	QueryTimeout
	Transactions
	PreparedStatements

	// Schema features.
	Views
	ForeignKeys
	Indexes
	Constraints
	CustomTypes
	Triggers
	Procedures
	Sequences

	// CRUD features.
	InsertRows
	UpdateRows
	DeleteRows
	Returning

	// Data features.
	Pagination
	Sorting
	Filtering
	ExportCSV
	ExportJSON

	// Document features.
	NestedDocuments
	ArrayFields
	Aggregation

	// Key-value features.
	KeyExpiration
	KeyPatternScan
	PubSub

	// Graph features.
	GraphTraversal
	GraphLabels
)

// Has reports whether every bit set in want is also set in c.
func (c Capabilities) Has(want Capabilities) bool {
	return c&want == want
}

// HasAny reports whether at least one bit set in want is set in c.
func (c Capabilities) HasAny(want Capabilities) bool {
	return c&want != 0
}

// Convenience presets. A driver starts from one of these and ORs in or
// masks out individual flags rather than enumerating every bit by hand —
// the same role the teacher's DfvLevel* constants play for protocol
// feature levels.
const (
	RelationalBase = MultipleDatabases | Schemas | SSL | Authentication |
		Cancellation | QueryTimeout | Transactions | PreparedStatements |
		Views | ForeignKeys | Indexes | Constraints |
		InsertRows | UpdateRows | DeleteRows | Returning |
		Pagination | Sorting | Filtering | ExportCSV | ExportJSON

	DocumentBase = MultipleDatabases | SSL | Authentication |
		Cancellation | QueryTimeout |
		InsertRows | UpdateRows | DeleteRows |
		Pagination | Sorting | Filtering | ExportCSV | ExportJSON |
		NestedDocuments | ArrayFields | Aggregation

	KeyValueBase = SSL | Authentication | Cancellation | QueryTimeout |
		ExportCSV | ExportJSON | KeyExpiration | KeyPatternScan | PubSub

	GraphBase = MultipleDatabases | SSL | Authentication |
		Cancellation | QueryTimeout | Transactions |
		ExportCSV | ExportJSON | GraphTraversal | GraphLabels
)
