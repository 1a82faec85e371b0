// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

package dbvalue

// RecordIdentity identifies one row by the value of one or more key
// columns — typically the primary key, but any unique column set works.
type RecordIdentity struct {
	Columns []string
	Values  []Value
}

// TableRef names a table, optionally schema-qualified, optionally scoped
// to a non-default database.
type TableRef struct {
	Database *string
	Schema   *string
	Table    string
}

// RowPatch updates the columns named in Columns to Values on the row
// identified by Identity.
type RowPatch struct {
	Table    TableRef
	Identity RecordIdentity
	Columns  []string
	Values   []Value
}

// RowInsert inserts one row with Columns/Values into Table.
type RowInsert struct {
	Table   TableRef
	Columns []string
	Values  []Value
}

// RowDelete deletes the row identified by Identity from Table.
type RowDelete struct {
	Table    TableRef
	Identity RecordIdentity
}

// CollectionRef names a document collection, optionally scoped to a
// non-default database.
type CollectionRef struct {
	Database   *string
	Collection string
}

// DocumentUpdate replaces or patches the document identified by DocumentID
// within Collection with PatchJSON.
type DocumentUpdate struct {
	Collection CollectionRef
	DocumentID string
	PatchJSON  string
}

// DocumentInsert inserts DocumentJSON into Collection.
type DocumentInsert struct {
	Collection   CollectionRef
	DocumentJSON string
}

// DocumentDelete deletes the document identified by DocumentID from
// Collection.
type DocumentDelete struct {
	Collection CollectionRef
	DocumentID string
}

// CrudResult is the common outcome shape for every CRUD mutation.
type CrudResult struct {
	AffectedCount int64
	ReturningRow  []Value
}

// BrowseRequest drives a paginated, optionally filtered and ordered
// listing of a table's or collection's rows/documents.
type BrowseRequest struct {
	Table    TableRef
	Offset   int64
	Limit    int64
	OrderBy  []OrderTerm
	Filter   *string
}

// OrderTerm is one ORDER BY term.
type OrderTerm struct {
	Column     string
	Descending bool
}

// CollectionBrowseRequest is BrowseRequest's document-store analog.
type CollectionBrowseRequest struct {
	Collection CollectionRef
	Offset     int64
	Limit      int64
	OrderBy    []OrderTerm
	Filter     *string
}

// CountResult carries the row/document count for a Browse counterpart.
type CountResult struct {
	Count int64
}
