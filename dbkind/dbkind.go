// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

// Package dbkind defines the closed set of database families DBFlux talks
// to, the broader category each belongs to, its query language, and the
// static capability bitset a driver declares for itself.
package dbkind

import "github.com/vmihailenco/msgpack/v5"

// Kind discriminates a database family. It is a closed set: a registry
// lookup with an unrecognized Kind is a programming error, not a runtime
// one a caller should expect to recover from.
type Kind string

const (
	SQLite   Kind = "sqlite"
	Postgres Kind = "postgres"
	MySQL    Kind = "mysql"
	MariaDB  Kind = "mariadb"
	MongoDB  Kind = "mongodb"
	Redis    Kind = "redis"
	// External identifies a driver hosted out-of-process and reached only
	// by a socket id; the core has no built-in knowledge of it beyond that.
	External Kind = "external"
)

// String satisfies fmt.Stringer so Kind prints readably in logs.
func (k Kind) String() string { return string(k) }

// Category groups database families by the shape of data they expose. The
// UI queries it only for vocabulary; the core otherwise never branches on
// it directly.
type Category int

const (
	Relational Category = iota
	Document
	KeyValue
	Graph
	TimeSeries
	WideColumn
)

// ContainerNoun names the top-level grouping of records for this category
// ("Tables", "Collections", "Keys", ...).
func (c Category) ContainerNoun() string {
	switch c {
	case Relational:
		return "Tables"
	case Document:
		return "Collections"
	case KeyValue:
		return "Keys"
	case Graph:
		return "Node Labels"
	case TimeSeries:
		return "Measurements"
	case WideColumn:
		return "Column Families"
	default:
		return "Containers"
	}
}

// RecordNoun names one element within a container for this category
// ("Rows", "Documents", "Values", ...).
func (c Category) RecordNoun() string {
	switch c {
	case Relational:
		return "Rows"
	case Document:
		return "Documents"
	case KeyValue:
		return "Values"
	case Graph:
		return "Nodes"
	case TimeSeries:
		return "Points"
	case WideColumn:
		return "Cells"
	default:
		return "Records"
	}
}

// String satisfies fmt.Stringer.
func (c Category) String() string {
	switch c {
	case Relational:
		return "relational"
	case Document:
		return "document"
	case KeyValue:
		return "key_value"
	case Graph:
		return "graph"
	case TimeSeries:
		return "time_series"
	case WideColumn:
		return "wide_column"
	default:
		return "unknown"
	}
}

// QueryLanguage determines which editor mode and language service a
// connection's query surface should use.
type QueryLanguage struct {
	// name is empty for every built-in language and holds the custom name
	// when kind == queryLanguageCustom.
	name string
	kind queryLanguageKind
}

type queryLanguageKind int

const (
	queryLanguageSQL queryLanguageKind = iota
	queryLanguageMongo
	queryLanguageRedis
	queryLanguageCypher
	queryLanguageInflux
	queryLanguageCQL
	queryLanguageCustom
)

var (
	QueryLanguageSQL     = QueryLanguage{kind: queryLanguageSQL}
	QueryLanguageMongo   = QueryLanguage{kind: queryLanguageMongo}
	QueryLanguageRedis   = QueryLanguage{kind: queryLanguageRedis}
	QueryLanguageCypher  = QueryLanguage{kind: queryLanguageCypher}
	QueryLanguageInflux  = QueryLanguage{kind: queryLanguageInflux}
	QueryLanguageCQL     = QueryLanguage{kind: queryLanguageCQL}
)

// CustomQueryLanguage builds a QueryLanguage for an external driver's own
// language, identified only by name.
func CustomQueryLanguage(name string) QueryLanguage {
	return QueryLanguage{kind: queryLanguageCustom, name: name}
}

// EncodeMsgpack implements msgpack.CustomEncoder. QueryLanguage's fields
// are unexported, same rationale as dbvalue.Value: without a custom
// codec the wire would see an empty struct.
func (q QueryLanguage) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeInt(int64(q.kind)); err != nil {
		return err
	}
	return enc.EncodeString(q.name)
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (q *QueryLanguage) DecodeMsgpack(dec *msgpack.Decoder) error {
	kind, err := dec.DecodeInt()
	if err != nil {
		return err
	}
	q.kind = queryLanguageKind(kind)
	q.name, err = dec.DecodeString()
	return err
}

// String satisfies fmt.Stringer.
func (q QueryLanguage) String() string {
	switch q.kind {
	case queryLanguageSQL:
		return "sql"
	case queryLanguageMongo:
		return "mongo_query"
	case queryLanguageRedis:
		return "redis_commands"
	case queryLanguageCypher:
		return "cypher"
	case queryLanguageInflux:
		return "influxql"
	case queryLanguageCQL:
		return "cql"
	case queryLanguageCustom:
		return q.name
	default:
		return "unknown"
	}
}
