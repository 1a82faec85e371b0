// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

package protocol

import (
	"github.com/dbflux/dbflux/codegen"
	"github.com/dbflux/dbflux/dbkind"
	"github.com/dbflux/dbflux/dbvalue"
	"github.com/dbflux/dbflux/formdef"
	"github.com/dbflux/dbflux/schema"
)

// ResponseKind exhaustively enumerates every success variant a
// ResponseBody may carry; Error is a sibling handled out of band via
// ResponseBody.Err.
type ResponseKind int

const (
	RespHello ResponseKind = iota
	RespSessionOpened
	RespSessionClosed
	RespPong
	RespSchema
	RespExecuteResult
	RespExecuteWithHandle
	RespCancelled
	RespDatabaseList
	RespTableDetails
	RespViewDetails
	RespActiveDatabaseSet
	RespActiveDatabase
	RespBrowseResult
	RespCountResult
	RespExplainResult
	RespDescribeResult
	RespCrudResult
	RespSchemaTypes
	RespSchemaIndexes
	RespSchemaForeignKeys
	RespKv
	RespCodeGenerators
	RespGeneratedCode
)

// HelloResponse is the server's Hello reply.
type HelloResponse struct {
	ServerName       string               `msgpack:"server_name"`
	ServerVersion    string               `msgpack:"server_version"`
	SelectedVersion  Version              `msgpack:"selected_version"`
	Capabilities     dbkind.Capabilities  `msgpack:"capabilities"`
	DriverKind       dbkind.Kind          `msgpack:"driver_kind"`
	DriverMetadata   dbkind.Metadata      `msgpack:"driver_metadata"`
	FormDefinition   formdef.FormDefinition `msgpack:"form_definition"`
}

// SchemaLoadingStrategy discriminates whether a driver returns its full
// schema eagerly or expects lazy TableDetails fetches.
type SchemaLoadingStrategy int

const (
	SchemaEager SchemaLoadingStrategy = iota
	SchemaLazy
)

// SessionOpenedResponse is returned on a successful OpenSession.
type SessionOpenedResponse struct {
	SessionID              string                `msgpack:"session_id"`
	Kind                    dbkind.Kind           `msgpack:"kind"`
	Metadata                dbkind.Metadata       `msgpack:"metadata"`
	SchemaLoadingStrategy   SchemaLoadingStrategy `msgpack:"schema_loading_strategy"`
	SchemaFeatures          dbkind.Capabilities   `msgpack:"schema_features"`
	CodeGenCapabilities     []codegen.Info        `msgpack:"code_gen_capabilities"`
}

// ExecuteResultResponse wraps a QueryResult.
type ExecuteResultResponse struct {
	Result dbvalue.QueryResult `msgpack:"result"`
}

// ExecuteWithHandleResponse returns a cancellation handle alongside the
// query result.
type ExecuteWithHandleResponse struct {
	HandleID string              `msgpack:"handle_id"`
	Result   dbvalue.QueryResult `msgpack:"result"`
}

// DatabaseListResponse answers ListDatabases.
type DatabaseListResponse struct {
	Databases []schema.DatabaseInfo `msgpack:"databases"`
}

// TableDetailsResponse answers TableDetails.
type TableDetailsResponse struct {
	Table schema.TableInfo `msgpack:"table"`
}

// ViewDetailsResponse answers ViewDetails.
type ViewDetailsResponse struct {
	View schema.ViewInfo `msgpack:"view"`
}

// ActiveDatabaseResponse answers ActiveDatabase.
type ActiveDatabaseResponse struct {
	Database *string `msgpack:"database,omitempty"`
}

// BrowseResultResponse answers BrowseTable/BrowseCollection.
type BrowseResultResponse struct {
	Result dbvalue.QueryResult `msgpack:"result"`
}

// CountResultResponse answers CountTable/CountCollection.
type CountResultResponse struct {
	Count int64 `msgpack:"count"`
}

// ExplainResultResponse answers Explain.
type ExplainResultResponse struct {
	Plan string `msgpack:"plan"`
}

// DescribeResultResponse answers DescribeTable.
type DescribeResultResponse struct {
	Columns []schema.ColumnInfo `msgpack:"columns"`
}

// CrudResultResponse answers every row/document mutation variant.
type CrudResultResponse struct {
	Result dbvalue.CrudResult `msgpack:"result"`
}

// SchemaTypesResponse answers SchemaTypes.
type SchemaTypesResponse struct {
	Types []schema.CustomTypeInfo `msgpack:"types"`
}

// SchemaIndexesResponse answers SchemaIndexes.
type SchemaIndexesResponse struct {
	Indexes []schema.IndexInfo `msgpack:"indexes"`
}

// SchemaForeignKeysResponse answers SchemaForeignKeys.
type SchemaForeignKeysResponse struct {
	ForeignKeys []schema.ForeignKeyInfo `msgpack:"foreign_keys"`
}

// CodeGeneratorsResponse answers CodeGenerators.
type CodeGeneratorsResponse struct {
	Generators []codegen.Info `msgpack:"generators"`
}

// GeneratedCodeResponse answers GenerateCode.
type GeneratedCodeResponse struct {
	Code string `msgpack:"code"`
}

// ResponseBody is the tagged union of every host→client reply. Error is a
// sibling variant (not a transport failure): when Err is non-nil, Kind
// and every success field are meaningless.
type ResponseBody struct {
	Kind ResponseKind `msgpack:"kind"`
	Err  *ErrorPayload `msgpack:"err,omitempty"`

	Hello             *HelloResponse             `msgpack:"hello,omitempty"`
	SessionOpened     *SessionOpenedResponse     `msgpack:"session_opened,omitempty"`
	Schema            *schema.Snapshot           `msgpack:"schema,omitempty"`
	ExecuteResult     *ExecuteResultResponse     `msgpack:"execute_result,omitempty"`
	ExecuteWithHandle *ExecuteWithHandleResponse `msgpack:"execute_with_handle,omitempty"`
	DatabaseList      *DatabaseListResponse      `msgpack:"database_list,omitempty"`
	TableDetails      *TableDetailsResponse      `msgpack:"table_details,omitempty"`
	ViewDetails       *ViewDetailsResponse       `msgpack:"view_details,omitempty"`
	ActiveDatabase    *ActiveDatabaseResponse    `msgpack:"active_database,omitempty"`
	BrowseResult      *BrowseResultResponse      `msgpack:"browse_result,omitempty"`
	CountResult       *CountResultResponse       `msgpack:"count_result,omitempty"`
	ExplainResult     *ExplainResultResponse     `msgpack:"explain_result,omitempty"`
	DescribeResult    *DescribeResultResponse    `msgpack:"describe_result,omitempty"`
	CrudResult        *CrudResultResponse        `msgpack:"crud_result,omitempty"`
	SchemaTypes       *SchemaTypesResponse       `msgpack:"schema_types,omitempty"`
	SchemaIndexes     *SchemaIndexesResponse     `msgpack:"schema_indexes,omitempty"`
	SchemaForeignKeys *SchemaForeignKeysResponse `msgpack:"schema_foreign_keys,omitempty"`
	Kv                *KvResult                  `msgpack:"kv,omitempty"`
	CodeGenerators    *CodeGeneratorsResponse    `msgpack:"code_generators,omitempty"`
	GeneratedCode     *GeneratedCodeResponse     `msgpack:"generated_code,omitempty"`
}

// NewErrorResponse builds a ResponseBody carrying the Error sibling
// variant.
func NewErrorResponse(err ErrorPayload) ResponseBody {
	return ResponseBody{Err: &err}
}
