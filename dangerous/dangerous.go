// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

// Package dangerous implements the heuristic dangerous-query classifier:
// no-WHERE delete/update, truncate, drop, alter, or a script containing
// any of those. It is pattern-based, not a parser, and documented as
// having false negatives (e.g. WHERE inside a string literal or
// subquery). Ported near-verbatim from
// original_source/crates/dbflux/src/ui/dangerous_query.rs.
package dangerous

import "strings"

// Kind is the closed set of risk classifications this detector emits.
type Kind int

const (
	DeleteNoWhere Kind = iota
	UpdateNoWhere
	Truncate
	Drop
	Alter
	Script
	// RedisFlushAll and RedisFlushDb are database-specific extras beyond
	// the SQL-oriented core set, surfaced by drivers that recognize their
	// own command language rather than by this package directly.
	RedisFlushAll
	RedisFlushDb
)

// Message returns the human-readable warning for a Kind.
func (k Kind) Message() string {
	switch k {
	case DeleteNoWhere:
		return "DELETE without a WHERE clause will remove every row."
	case UpdateNoWhere:
		return "UPDATE without a WHERE clause will modify every row."
	case Truncate:
		return "TRUNCATE removes all rows and cannot be undone."
	case Drop:
		return "DROP permanently removes the object and its data."
	case Alter:
		return "ALTER changes the table's structure."
	case Script:
		return "This script contains a dangerous statement."
	case RedisFlushAll:
		return "FLUSHALL removes every key in every database."
	case RedisFlushDb:
		return "FLUSHDB removes every key in the current database."
	default:
		return "This statement is considered dangerous."
	}
}

// Detect classifies sql and returns (kind, true) if it is dangerous, or
// (_, false) if no statement or no dangerous statement was detected.
func Detect(sql string) (Kind, bool) {
	stripped, ok := stripLeadingComments(sql)
	if !ok {
		return 0, false
	}
	stripped = strings.TrimSpace(stripped)
	if stripped == "" {
		return 0, false
	}

	statements := splitStatements(stripped)
	if len(statements) >= 2 {
		for _, stmt := range statements {
			if _, ok := detectSingle(stmt); ok {
				return Script, true
			}
		}
		return 0, false
	}
	if len(statements) == 1 {
		return detectSingle(statements[0])
	}
	return 0, false
}

// splitStatements splits on ';', strips leading comments from each
// resulting piece, and discards any that are empty afterward.
func splitStatements(sql string) []string {
	var out []string
	for _, part := range strings.Split(sql, ";") {
		s, ok := stripLeadingComments(part)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// stripLeadingComments iteratively removes leading "--" line comments and
// "/* ... */" block comments. An unterminated block comment means "no
// statement detected" — callers treat that as the safe default of "not
// dangerous" rather than guessing at intent.
func stripLeadingComments(sql string) (string, bool) {
	s := sql
	for {
		s = strings.TrimLeft(s, " \t\r\n")
		switch {
		case strings.HasPrefix(s, "--"):
			nl := strings.IndexByte(s, '\n')
			if nl < 0 {
				return "", true // whole remainder was a line comment
			}
			s = s[nl+1:]
		case strings.HasPrefix(s, "/*"):
			end := strings.Index(s, "*/")
			if end < 0 {
				return "", false
			}
			s = s[end+2:]
		default:
			return s, true
		}
	}
}

var scriptKeywordsAfterCTE = []string{"delete", "update", "insert", "select", "truncate"}

// skipCTEPrefix, given a lowercased statement, locates the last ')'
// followed (after whitespace) by one of the recognized keywords, and
// returns the suffix starting at that keyword. If no such boundary
// exists, the input is returned unchanged.
func skipCTEPrefix(lower string) string {
	if !strings.HasPrefix(lower, "with") {
		return lower
	}
	idx := strings.LastIndexByte(lower, ')')
	for idx >= 0 {
		rest := strings.TrimLeft(lower[idx+1:], " \t\r\n")
		for _, kw := range scriptKeywordsAfterCTE {
			if strings.HasPrefix(rest, kw) {
				return rest
			}
		}
		idx = strings.LastIndexByte(lower[:idx], ')')
	}
	return lower
}

func containsWhereClause(s string) bool {
	return strings.Contains(s, " where ")
}

// detectSingle classifies one already-comment-stripped, already-trimmed
// statement.
func detectSingle(stmt string) (Kind, bool) {
	lower := strings.ToLower(stmt)
	body := skipCTEPrefix(lower)
	// pad with surrounding spaces so containsWhereClause's " where "
	// substring search also matches a WHERE at the very start/end.
	padded := " " + body + " "

	switch {
	case strings.HasPrefix(body, "delete"):
		if !containsWhereClause(padded) {
			return DeleteNoWhere, true
		}
	case strings.HasPrefix(body, "update"):
		if !containsWhereClause(padded) {
			return UpdateNoWhere, true
		}
	case strings.HasPrefix(body, "truncate"):
		return Truncate, true
	case strings.HasPrefix(body, "drop"):
		return Drop, true
	case strings.HasPrefix(body, "alter"):
		return Alter, true
	}
	return 0, false
}
