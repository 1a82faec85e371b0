// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

// Package dialect parameterizes SQL generation across backends. Shaped
// after syssam-velox's per-backend dialect constants and Driver
// interface, narrowed to the quoting/literal/placeholder contract the
// SQL generator actually needs.
package dialect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dbflux/dbflux/dbvalue"
)

// PlaceholderStyle discriminates how a dialect spells a positional bind
// parameter.
type PlaceholderStyle int

const (
	QuestionMark PlaceholderStyle = iota
	DollarNumber
)

// SqlDialect is the parameterization point for every SQL-generating
// function: identifier quoting, qualified-name assembly, literal
// formatting, and placeholder spelling.
type SqlDialect interface {
	QuoteIdentifier(name string) string
	QualifiedTable(schema *string, table string) string
	ValueToLiteral(v dbvalue.Value) string
	PlaceholderStyle() PlaceholderStyle
}

// Placeholder renders the Nth (0-based) positional placeholder for a
// dialect's PlaceholderStyle.
func Placeholder(d SqlDialect, index int) string {
	switch d.PlaceholderStyle() {
	case DollarNumber:
		return "$" + strconv.Itoa(index+1)
	default:
		return "?"
	}
}

// literalNumeric renders a null, numeric or bool Value the same way
// across dialects; dialects differ only in identifier quoting and string
// literal escaping, which each concrete dialect still implements itself.
func literalNumeric(v dbvalue.Value) (string, bool) {
	switch v.Kind() {
	case dbvalue.KindNull:
		return "NULL", true
	case dbvalue.KindBool:
		if v.BoolValue() {
			return "TRUE", true
		}
		return "FALSE", true
	case dbvalue.KindInt:
		return strconv.FormatInt(v.IntValue(), 10), true
	case dbvalue.KindFloat:
		return strconv.FormatFloat(v.FloatValue(), 'g', -1, 64), true
	default:
		return "", false
	}
}

func quoteStringLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// ansiDialect implements the baseline double-quote-identifier,
// single-quote-string ANSI conventions shared by Postgres and SQLite.
type ansiDialect struct {
	placeholder PlaceholderStyle
}

func (d ansiDialect) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (d ansiDialect) QualifiedTable(schema *string, table string) string {
	if schema != nil && *schema != "" {
		return d.QuoteIdentifier(*schema) + "." + d.QuoteIdentifier(table)
	}
	return d.QuoteIdentifier(table)
}

func (d ansiDialect) ValueToLiteral(v dbvalue.Value) string {
	if lit, ok := literalNumeric(v); ok {
		return lit
	}
	switch v.Kind() {
	case dbvalue.KindText, dbvalue.KindJSON:
		return quoteStringLiteral(v.TextValue())
	case dbvalue.KindBytes:
		return "X'" + fmt.Sprintf("%x", v.BytesValue()) + "'"
	default:
		return "NULL"
	}
}

func (d ansiDialect) PlaceholderStyle() PlaceholderStyle { return d.placeholder }

// Postgres uses dollar-numbered placeholders and ANSI double-quote
// identifiers.
var Postgres SqlDialect = ansiDialect{placeholder: DollarNumber}

// SQLite and the default/ANSI fallback use question-mark placeholders and
// ANSI double-quote identifiers.
var SQLite SqlDialect = ansiDialect{placeholder: QuestionMark}

// ANSI is the default dialect an IpcConnection falls back to when it has
// no server-side dialect of its own (RPC-proxied methods already return
// finished SQL).
var ANSI SqlDialect = ansiDialect{placeholder: QuestionMark}

// mysqlDialect uses backtick identifiers and question-mark placeholders.
type mysqlDialect struct{}

func (mysqlDialect) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (d mysqlDialect) QualifiedTable(schema *string, table string) string {
	if schema != nil && *schema != "" {
		return d.QuoteIdentifier(*schema) + "." + d.QuoteIdentifier(table)
	}
	return d.QuoteIdentifier(table)
}

func (mysqlDialect) ValueToLiteral(v dbvalue.Value) string {
	if lit, ok := literalNumeric(v); ok {
		return lit
	}
	switch v.Kind() {
	case dbvalue.KindText, dbvalue.KindJSON:
		return quoteStringLiteral(v.TextValue())
	case dbvalue.KindBytes:
		return "0x" + fmt.Sprintf("%x", v.BytesValue())
	default:
		return "NULL"
	}
}

func (mysqlDialect) PlaceholderStyle() PlaceholderStyle { return QuestionMark }

// MySQL and MariaDB share one dialect: backtick identifiers,
// question-mark placeholders.
var MySQL SqlDialect = mysqlDialect{}
var MariaDB SqlDialect = mysqlDialect{}
