// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

package protocol

import (
	"github.com/dbflux/dbflux/dbkind"
	"github.com/dbflux/dbflux/dbvalue"
)

// RequestKind exhaustively enumerates every operation a RequestBody may
// carry, per spec.md §4.2.
type RequestKind int

const (
	ReqHello RequestKind = iota
	ReqOpenSession
	ReqCloseSession
	ReqPing
	ReqSchema
	ReqExecute
	ReqExecuteWithHandle
	ReqCancel
	ReqCancelActive
	ReqCleanupAfterCancel
	ReqListDatabases
	ReqSchemaForDatabase
	ReqTableDetails
	ReqViewDetails
	ReqSetActiveDatabase
	ReqActiveDatabase
	ReqBrowseTable
	ReqCountTable
	ReqBrowseCollection
	ReqCountCollection
	ReqExplain
	ReqDescribeTable
	ReqUpdateRow
	ReqInsertRow
	ReqDeleteRow
	ReqUpdateDocument
	ReqInsertDocument
	ReqDeleteDocument
	ReqSchemaTypes
	ReqSchemaIndexes
	ReqSchemaForeignKeys
	ReqKv
	ReqCodeGenerators
	ReqGenerateCode
)

func (k RequestKind) String() string {
	names := [...]string{
		"Hello", "OpenSession", "CloseSession", "Ping", "Schema", "Execute",
		"ExecuteWithHandle", "Cancel", "CancelActive", "CleanupAfterCancel",
		"ListDatabases", "SchemaForDatabase", "TableDetails", "ViewDetails",
		"SetActiveDatabase", "ActiveDatabase", "BrowseTable", "CountTable",
		"BrowseCollection", "CountCollection", "Explain", "DescribeTable",
		"UpdateRow", "InsertRow", "DeleteRow", "UpdateDocument",
		"InsertDocument", "DeleteDocument", "SchemaTypes", "SchemaIndexes",
		"SchemaForeignKeys", "Kv", "CodeGenerators", "GenerateCode",
	}
	if int(k) < 0 || int(k) >= len(names) {
		return "Unknown"
	}
	return names[k]
}

// HelloRequest is sent immediately after connecting, before any other
// request.
type HelloRequest struct {
	ClientName            string       `msgpack:"client_name"`
	ClientVersion          string       `msgpack:"client_version"`
	SupportedVersions      []Version    `msgpack:"supported_versions"`
	RequestedCapabilities dbkind.Capabilities `msgpack:"requested_capabilities"`
}

// OpenSessionRequest opens a new Connection against profileJSON (an
// opaque, embedding-owned ConnectionProfile serialization).
type OpenSessionRequest struct {
	ProfileJSON string  `msgpack:"profile_json"`
	Password    *string `msgpack:"password,omitempty"`
	SSHSecret   *string `msgpack:"ssh_secret,omitempty"`
}

// CancelRequest interrupts the query identified by HandleID (returned
// earlier by ExecuteWithHandle).
type CancelRequest struct {
	HandleID string `msgpack:"handle_id"`
}

// DatabaseScopedRequest names a database for SchemaForDatabase.
type DatabaseScopedRequest struct {
	Database string `msgpack:"database"`
}

// TableRequest names a table or view (optionally database/schema
// qualified) for TableDetails/ViewDetails/DescribeTable.
type TableRequest struct {
	Database *string `msgpack:"database,omitempty"`
	Schema   *string `msgpack:"schema,omitempty"`
	Name     string  `msgpack:"name"`
}

// SetActiveDatabaseRequest changes (or clears, if Database is nil) the
// session's active database.
type SetActiveDatabaseRequest struct {
	Database *string `msgpack:"database,omitempty"`
}

// ExecuteRequest wraps a query invocation, shared by Execute,
// ExecuteWithHandle, and Explain.
type ExecuteRequest struct {
	Query dbvalue.QueryRequest `msgpack:"query"`
}

// BrowseTableRequest wraps a paginated table listing, shared by
// BrowseTable and CountTable.
type BrowseTableRequest struct {
	Browse dbvalue.BrowseRequest `msgpack:"browse"`
}

// BrowseCollectionRequest wraps a paginated collection listing, shared by
// BrowseCollection and CountCollection.
type BrowseCollectionRequest struct {
	Browse dbvalue.CollectionBrowseRequest `msgpack:"browse"`
}

// SchemaScopeRequest scopes SchemaTypes/SchemaIndexes/SchemaForeignKeys to
// one database/schema.
type SchemaScopeRequest struct {
	Database *string `msgpack:"database,omitempty"`
	Schema   *string `msgpack:"schema,omitempty"`
}

// GenerateCodeRequest asks for a code-generator's output for one table.
type GenerateCodeRequest struct {
	GeneratorID string  `msgpack:"generator_id"`
	Database    *string `msgpack:"database,omitempty"`
	Schema      *string `msgpack:"schema,omitempty"`
	Table       string  `msgpack:"table"`
}

// RequestBody is the tagged union of every client→host operation. Exactly
// one of the typed fields is populated, selected by Kind — the "tag field
// + payload object" option spec.md §9 names as an acceptable recast of a
// wire-format-native enum.
type RequestBody struct {
	Kind RequestKind `msgpack:"kind"`

	Hello             *HelloRequest             `msgpack:"hello,omitempty"`
	OpenSession       *OpenSessionRequest       `msgpack:"open_session,omitempty"`
	Cancel            *CancelRequest            `msgpack:"cancel,omitempty"`
	SchemaForDatabase *DatabaseScopedRequest    `msgpack:"schema_for_database,omitempty"`
	TableDetails      *TableRequest             `msgpack:"table_details,omitempty"`
	ViewDetails       *TableRequest             `msgpack:"view_details,omitempty"`
	DescribeTable     *TableRequest             `msgpack:"describe_table,omitempty"`
	SetActiveDatabase *SetActiveDatabaseRequest `msgpack:"set_active_database,omitempty"`
	Execute           *ExecuteRequest           `msgpack:"execute,omitempty"`
	BrowseTable       *BrowseTableRequest       `msgpack:"browse_table,omitempty"`
	BrowseCollection  *BrowseCollectionRequest  `msgpack:"browse_collection,omitempty"`
	UpdateRow         *dbvalue.RowPatch         `msgpack:"update_row,omitempty"`
	InsertRow         *dbvalue.RowInsert        `msgpack:"insert_row,omitempty"`
	DeleteRow         *dbvalue.RowDelete        `msgpack:"delete_row,omitempty"`
	UpdateDocument    *dbvalue.DocumentUpdate   `msgpack:"update_document,omitempty"`
	InsertDocument    *dbvalue.DocumentInsert   `msgpack:"insert_document,omitempty"`
	DeleteDocument    *dbvalue.DocumentDelete   `msgpack:"delete_document,omitempty"`
	SchemaScope       *SchemaScopeRequest       `msgpack:"schema_scope,omitempty"`
	Kv                *KvRequest                `msgpack:"kv,omitempty"`
	GenerateCode      *GenerateCodeRequest      `msgpack:"generate_code,omitempty"`
}
