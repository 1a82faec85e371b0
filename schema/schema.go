// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

// Package schema holds the server-metadata snapshot types a Connection's
// introspection methods return.
package schema

// DatabaseInfo names one database visible on the server.
type DatabaseInfo struct {
	Name      string
	IsCurrent bool
}

// ColumnInfo describes one column of a table.
type ColumnInfo struct {
	Name         string
	TypeName     string
	Nullable     bool
	DefaultValue *string
	IsPrimaryKey bool
}

// IndexInfo describes one index over a table.
type IndexInfo struct {
	Name      string
	Columns   []string
	IsUnique  bool
	IsPrimary bool
}

// TableInfo describes one table. Columns is nil until TableDetails has
// been fetched for it — schema listing is lazy by design.
type TableInfo struct {
	Schema  *string
	Name    string
	Columns []ColumnInfo
	Indexes []IndexInfo
}

// ViewInfo describes one view.
type ViewInfo struct {
	Schema     *string
	Name       string
	Definition *string
}

// CustomTypeInfo describes a server-defined composite/enum/domain type.
type CustomTypeInfo struct {
	Schema *string
	Name   string
	Kind   string
}

// ForeignKeyInfo describes one foreign-key constraint.
type ForeignKeyInfo struct {
	Name             string
	Table            string
	Columns          []string
	ReferencedTable  string
	ReferencedColumns []string
}

// DbSchemaInfo groups the tables/views/types/indexes/foreign keys that
// belong to one schema (or the whole database, for schema-less servers).
type DbSchemaInfo struct {
	Name        string
	Tables      []TableInfo
	Views       []ViewInfo
	Types       []CustomTypeInfo
	Indexes     []IndexInfo
	ForeignKeys []ForeignKeyInfo
}

// KeyValueSchema is the alternate snapshot shape for key-value systems:
// keyspaces and their approximate key counts, in lieu of tables.
type KeyValueSchema struct {
	Keyspaces []KeyspaceInfo
}

// KeyspaceInfo names one keyspace/logical database and its key count.
type KeyspaceInfo struct {
	Name     string
	KeyCount int64
}

// Snapshot is the full per-connection metadata snapshot returned by
// Connection.Schema.
type Snapshot struct {
	Databases        []DatabaseInfo
	CurrentDatabase  *string
	Schemas          []DbSchemaInfo
	Tables           []TableInfo // fallback listing for schema-less servers
	Views            []ViewInfo  // fallback listing for schema-less servers
	KeyValue         *KeyValueSchema
}
