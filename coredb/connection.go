// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

// Package coredb defines the Connection and Driver abstractions every
// concrete database backend (local or proxied over RPC) implements, plus
// the static driver registry. Grounded on spec.md §4.5/§4.6/§4.7/§4.9; the
// interface-plus-optional-capability-accessor pattern
// (Connection.KeyValueAPI returning (KeyValueApi, bool)) implements
// spec.md §9's "trait-object polymorphism with overlapping capabilities".
package coredb

import (
	"github.com/dbflux/dbflux/codegen"
	"github.com/dbflux/dbflux/dbkind"
	"github.com/dbflux/dbflux/dbvalue"
	"github.com/dbflux/dbflux/dialect"
	"github.com/dbflux/dbflux/kv"
	"github.com/dbflux/dbflux/schema"
)

// Handle identifies one in-flight cancellable query, returned by
// ExecuteWithHandle and consumed by Cancel.
type Handle string

// Connection is one connected database session. Every method returns a
// *dberr.DbError from the closed taxonomy on failure — declared here as
// `error` to avoid every implementation importing dberr just for the
// return type; callers that need the code use errors.As.
type Connection interface {
	Ping() error
	Close() error

	Execute(req dbvalue.QueryRequest) (dbvalue.QueryResult, error)
	ExecuteWithHandle(req dbvalue.QueryRequest) (Handle, dbvalue.QueryResult, error)
	Cancel(h Handle) error
	CancelActive() error
	CleanupAfterCancel() error

	Schema() (schema.Snapshot, error)
	ListDatabases() ([]schema.DatabaseInfo, error)
	SchemaForDatabase(database string) (schema.DbSchemaInfo, error)
	TableDetails(database, schemaName *string, table string) (schema.TableInfo, error)
	ViewDetails(database, schemaName *string, view string) (schema.ViewInfo, error)
	SchemaTypes(database, schemaName *string) ([]schema.CustomTypeInfo, error)
	SchemaIndexes(database, schemaName *string) ([]schema.IndexInfo, error)
	SchemaForeignKeys(database, schemaName *string) ([]schema.ForeignKeyInfo, error)

	SetActiveDatabase(database *string) error
	ActiveDatabase() (*string, error)

	BrowseTable(req dbvalue.BrowseRequest) (dbvalue.QueryResult, error)
	CountTable(req dbvalue.BrowseRequest) (int64, error)
	BrowseCollection(req dbvalue.CollectionBrowseRequest) (dbvalue.QueryResult, error)
	CountCollection(req dbvalue.CollectionBrowseRequest) (int64, error)
	Explain(req dbvalue.QueryRequest) (string, error)
	DescribeTable(database, schemaName *string, table string) ([]schema.ColumnInfo, error)

	UpdateRow(patch dbvalue.RowPatch) (dbvalue.CrudResult, error)
	InsertRow(ins dbvalue.RowInsert) (dbvalue.CrudResult, error)
	DeleteRow(del dbvalue.RowDelete) (dbvalue.CrudResult, error)
	UpdateDocument(upd dbvalue.DocumentUpdate) (dbvalue.CrudResult, error)
	InsertDocument(ins dbvalue.DocumentInsert) (dbvalue.CrudResult, error)
	DeleteDocument(del dbvalue.DocumentDelete) (dbvalue.CrudResult, error)

	// KeyValueAPI returns the connection's KeyValueApi and true iff its
	// Capabilities include the key-value feature flags; otherwise
	// (nil, false).
	KeyValueAPI() (kv.KeyValueApi, bool)

	// Dialect returns the connection's SQL dialect, or dialect.ANSI when
	// proxied over RPC (server-side methods already produce finished
	// SQL).
	Dialect() dialect.SqlDialect

	Kind() dbkind.Kind
	Capabilities() dbkind.Capabilities

	CodeGenerators() []codegen.Info
	GenerateCode(generatorID string, database, schemaName *string, table string) (string, error)
}
