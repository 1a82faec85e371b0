// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

package scripts

import (
	"bufio"
	"os"
	"strings"

	"github.com/dbflux/dbflux/coredb"
	"github.com/dbflux/dbflux/dbvalue"
	"github.com/dbflux/dbflux/dberr"
	"github.com/dbflux/dbflux/sqlscript"
)

// StatementResult is one statement's outcome within a RunScript call.
type StatementResult struct {
	Statement string
	Result    dbvalue.QueryResult
	Err       error
}

// RunScript splits a multi-statement SQL script on ';' (skipping
// separators inside string literals, per sqlscript's scanner) and
// executes each statement against conn in order, stopping at the first
// error unless stopOnError is false.
func RunScript(conn coredb.Connection, script string, stopOnError bool) ([]StatementResult, error) {
	scanner := bufio.NewScanner(strings.NewReader(script))
	scanner.Split(sqlscript.ScanFunc(sqlscript.DefaultSeparator, false))

	var results []StatementResult
	for scanner.Scan() {
		stmt := strings.TrimSpace(scanner.Text())
		if stmt == "" {
			continue
		}

		res, err := conn.Execute(dbvalue.QueryRequest{SQL: stmt})
		results = append(results, StatementResult{Statement: stmt, Result: res, Err: err})
		if err != nil && stopOnError {
			return results, err
		}
	}
	if err := scanner.Err(); err != nil {
		return results, dberr.Newf(dberr.IoError, "scripts: scan script: %v", err)
	}
	return results, nil
}

// RunScriptFile reads path and runs it through RunScript.
func RunScriptFile(conn coredb.Connection, path string, stopOnError bool) ([]StatementResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, dberr.Newf(dberr.IoError, "scripts: read %s: %v", path, err)
	}
	return RunScript(conn, string(content), stopOnError)
}
