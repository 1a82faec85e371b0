// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

package sqlgen

import (
	"strconv"
	"strings"

	"github.com/dbflux/dbflux/dialect"
	"github.com/dbflux/dbflux/schema"
)

// TemplateRequest is the common table reference + formatting input shared
// by every *Template/Create/Truncate/Drop builder below.
type TemplateRequest struct {
	Schema  *string
	Table   string
	Columns []schema.ColumnInfo
	Options Options
}

func (r TemplateRequest) tableRef(d dialect.SqlDialect) string {
	if r.Options.FullyQualified {
		return d.QualifiedTable(r.Schema, r.Table)
	}
	return d.QuoteIdentifier(r.Table)
}

// GenerateSelectStar builds SELECT * FROM <table> [LIMIT n].
func GenerateSelectStar(d dialect.SqlDialect, req TemplateRequest, limit *int) string {
	s := "SELECT * FROM " + req.tableRef(d)
	if limit != nil {
		s += " LIMIT " + strconv.Itoa(*limit)
	}
	return s + ";"
}

// GenerateInsertTemplate builds a fill-in-the-blanks INSERT with one
// placeholder per column, in column order.
func GenerateInsertTemplate(d dialect.SqlDialect, req TemplateRequest) string {
	cols := make([]string, len(req.Columns))
	phs := make([]string, len(req.Columns))
	for i, c := range req.Columns {
		cols[i] = d.QuoteIdentifier(c.Name)
		phs[i] = dialect.Placeholder(d, i)
	}
	sep := joinSep(req.Options.Compact)
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(req.tableRef(d))
	b.WriteString(" (")
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(") VALUES (")
	b.WriteString(strings.Join(phs, sep))
	b.WriteString(");")
	return b.String()
}

// partitionPK splits Columns into (non-PK, PK) in column order.
func partitionPK(cols []schema.ColumnInfo) (nonPK, pk []schema.ColumnInfo) {
	for _, c := range cols {
		if c.IsPrimaryKey {
			pk = append(pk, c)
		} else {
			nonPK = append(nonPK, c)
		}
	}
	return nonPK, pk
}

// GenerateUpdateTemplate builds a fill-in-the-blanks UPDATE: SET lists
// every non-PK column (or, if the table has no PK, every column), WHERE
// lists PK columns. Placeholder numbering continues across the split:
// 0..k for the k SET columns, k..k+m for the m WHERE columns.
func GenerateUpdateTemplate(d dialect.SqlDialect, req TemplateRequest) string {
	nonPK, pk := partitionPK(req.Columns)
	setCols := nonPK
	if len(pk) == 0 {
		setCols = req.Columns
		pk = nil
	}

	sep := joinSep(req.Options.Compact)
	setParts := make([]string, len(setCols))
	for i, c := range setCols {
		setParts[i] = d.QuoteIdentifier(c.Name) + " = " + dialect.Placeholder(d, i)
	}
	whereParts := make([]string, len(pk))
	for i, c := range pk {
		whereParts[i] = d.QuoteIdentifier(c.Name) + " = " + dialect.Placeholder(d, len(setCols)+i)
	}

	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(req.tableRef(d))
	b.WriteString(" SET ")
	b.WriteString(strings.Join(setParts, sep))
	if len(whereParts) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(whereParts, " AND "))
	}
	b.WriteString(";")
	return b.String()
}

// GenerateDeleteTemplate builds a fill-in-the-blanks DELETE keyed by PK
// columns (or all columns, if the table declares no PK).
func GenerateDeleteTemplate(d dialect.SqlDialect, req TemplateRequest) string {
	_, pk := partitionPK(req.Columns)
	keyCols := pk
	if len(keyCols) == 0 {
		keyCols = req.Columns
	}
	parts := make([]string, len(keyCols))
	for i, c := range keyCols {
		parts[i] = d.QuoteIdentifier(c.Name) + " = " + dialect.Placeholder(d, i)
	}
	return "DELETE FROM " + req.tableRef(d) + " WHERE " + strings.Join(parts, " AND ") + ";"
}

// GenerateCreateTable builds a CREATE TABLE statement from column
// metadata: NOT NULL for non-nullable columns, DEFAULT <lit> when
// present, and a trailing PRIMARY KEY (...) clause when any column is
// marked as one.
func GenerateCreateTable(d dialect.SqlDialect, req TemplateRequest) string {
	sep := joinSep(req.Options.Compact)
	lines := make([]string, 0, len(req.Columns)+1)
	var pkCols []string
	for _, c := range req.Columns {
		line := d.QuoteIdentifier(c.Name) + " " + c.TypeName
		if !c.Nullable {
			line += " NOT NULL"
		}
		if c.DefaultValue != nil {
			line += " DEFAULT " + *c.DefaultValue
		}
		lines = append(lines, line)
		if c.IsPrimaryKey {
			pkCols = append(pkCols, d.QuoteIdentifier(c.Name))
		}
	}
	if len(pkCols) > 0 {
		lines = append(lines, "PRIMARY KEY ("+strings.Join(pkCols, ", ")+")")
	}

	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(req.tableRef(d))
	b.WriteString(" (")
	if !req.Options.Compact {
		b.WriteString("\n  ")
	}
	b.WriteString(strings.Join(lines, sep))
	if !req.Options.Compact {
		b.WriteString("\n")
	}
	b.WriteString(");")
	return b.String()
}

// GenerateTruncate builds TRUNCATE TABLE <table>.
func GenerateTruncate(d dialect.SqlDialect, req TemplateRequest) string {
	return "TRUNCATE TABLE " + req.tableRef(d) + ";"
}

// GenerateDropTable builds DROP TABLE <table>.
func GenerateDropTable(d dialect.SqlDialect, req TemplateRequest) string {
	return "DROP TABLE " + req.tableRef(d) + ";"
}
