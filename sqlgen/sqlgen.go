// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

// Package sqlgen builds SELECT/INSERT/UPDATE/DELETE statements and their
// templated variants, parameterized by a dialect.SqlDialect. Ported near
// verbatim from original_source/crates/dbflux_core/src/sql_generation.rs:
// same placeholder-index continuation rule across SET then WHERE, same
// PK-vs-non-PK column partition for UPDATE templates.
package sqlgen

import (
	"strings"

	"github.com/dbflux/dbflux/dbvalue"
	"github.com/dbflux/dbflux/dialect"
)

// Operation selects which statement Generate builds.
type Operation int

const (
	OpSelectWhere Operation = iota
	OpInsert
	OpUpdate
	OpDelete
)

// ValueSource discriminates whether a Request's value list is literal
// Values to format inline, or a pure column count to emit placeholders
// for.
type ValueSource int

const (
	WithValues ValueSource = iota
	WithPlaceholders
)

// Options controls formatting.
type Options struct {
	// FullyQualified includes the schema in the table reference even when
	// Schema is set; when false the table name alone is used.
	FullyQualified bool
	// Compact renders the whole statement on one line; otherwise SET and
	// VALUES lists are newline-separated and indented.
	Compact bool
}

// Request drives every builder in this package.
type Request struct {
	Operation  Operation
	Schema     *string
	Table      string
	Columns    []string
	Source     ValueSource
	Values     []dbvalue.Value // meaningful iff Source == WithValues
	PKIndices  []int           // indices into Columns; empty means "all columns"
	Options    Options
}

func (r Request) tableRef(d dialect.SqlDialect) string {
	if r.Options.FullyQualified {
		return d.QualifiedTable(r.Schema, r.Table)
	}
	return d.QuoteIdentifier(r.Table)
}

func joinSep(compact bool) string {
	if compact {
		return ", "
	}
	return ",\n  "
}

// Generate dispatches on Request.Operation.
func Generate(d dialect.SqlDialect, req Request) string {
	switch req.Operation {
	case OpInsert:
		return GenerateInsert(d, req)
	case OpUpdate:
		return GenerateUpdate(d, req)
	case OpDelete:
		return GenerateDelete(d, req)
	default:
		return GenerateSelectWhere(d, req)
	}
}

// identityIndices returns req.PKIndices if non-empty, else every column
// index — the "use PK, else all columns" rule shared by SelectWhere,
// Update's WHERE clause, and Delete.
func identityIndices(req Request) []int {
	if len(req.PKIndices) > 0 {
		return req.PKIndices
	}
	idx := make([]int, len(req.Columns))
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func valueLiteralOrPlaceholder(d dialect.SqlDialect, req Request, columnIdx, placeholderIdx int) string {
	if req.Source == WithValues {
		return d.ValueToLiteral(req.Values[columnIdx])
	}
	return dialect.Placeholder(d, placeholderIdx)
}

func isNullColumn(req Request, columnIdx int) bool {
	return req.Source == WithValues && req.Values[columnIdx].IsNull()
}

// buildWhereClause renders "col1 = v1 AND col2 = v2 ..." for the given
// column indices, starting placeholder numbering at placeholderStart.
// NULL-valued columns (only meaningful with WithValues) render
// "col IS NULL" rather than "col = NULL".
func buildWhereClause(d dialect.SqlDialect, req Request, indices []int, placeholderStart int) string {
	parts := make([]string, 0, len(indices))
	for i, colIdx := range indices {
		col := d.QuoteIdentifier(req.Columns[colIdx])
		if isNullColumn(req, colIdx) {
			parts = append(parts, col+" IS NULL")
			continue
		}
		parts = append(parts, col+" = "+valueLiteralOrPlaceholder(d, req, colIdx, placeholderStart+i))
	}
	return strings.Join(parts, " AND ")
}

// GenerateSelectWhere builds SELECT * FROM <table> WHERE <identity cols>.
func GenerateSelectWhere(d dialect.SqlDialect, req Request) string {
	indices := identityIndices(req)
	where := buildWhereClause(d, req, indices, 0)
	return "SELECT * FROM " + req.tableRef(d) + " WHERE " + where + ";"
}

// GenerateInsert builds INSERT INTO <table> (cols) VALUES (vals).
func GenerateInsert(d dialect.SqlDialect, req Request) string {
	cols := make([]string, len(req.Columns))
	for i, c := range req.Columns {
		cols[i] = d.QuoteIdentifier(c)
	}
	vals := make([]string, len(req.Columns))
	for i := range req.Columns {
		vals[i] = valueLiteralOrPlaceholder(d, req, i, i)
	}
	sep := joinSep(req.Options.Compact)
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(req.tableRef(d))
	b.WriteString(" (")
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(") VALUES (")
	if !req.Options.Compact {
		b.WriteString("\n  ")
	}
	b.WriteString(strings.Join(vals, sep))
	if !req.Options.Compact {
		b.WriteString("\n")
	}
	b.WriteString(");")
	return b.String()
}

// GenerateUpdate builds UPDATE <table> SET col=v,... WHERE <identity>.
// The SET clause covers every column (not just non-PK ones — that
// restriction is specific to GenerateUpdateTemplate, see below).
func GenerateUpdate(d dialect.SqlDialect, req Request) string {
	sep := joinSep(req.Options.Compact)
	setParts := make([]string, len(req.Columns))
	for i, c := range req.Columns {
		setParts[i] = d.QuoteIdentifier(c) + " = " + valueLiteralOrPlaceholder(d, req, i, i)
	}
	indices := identityIndices(req)
	where := buildWhereClause(d, req, indices, len(req.Columns))

	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(req.tableRef(d))
	b.WriteString(" SET ")
	if !req.Options.Compact {
		b.WriteString("\n  ")
	}
	b.WriteString(strings.Join(setParts, sep))
	if !req.Options.Compact {
		b.WriteString("\n")
	}
	b.WriteString("WHERE ")
	b.WriteString(where)
	b.WriteString(";")
	return b.String()
}

// GenerateDelete builds DELETE FROM <table> WHERE <identity>.
func GenerateDelete(d dialect.SqlDialect, req Request) string {
	indices := identityIndices(req)
	where := buildWhereClause(d, req, indices, 0)
	return "DELETE FROM " + req.tableRef(d) + " WHERE " + where + ";"
}
