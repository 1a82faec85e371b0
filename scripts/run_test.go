// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

package scripts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbflux/dbflux/coredb"
	"github.com/dbflux/dbflux/dberr"
	"github.com/dbflux/dbflux/dbvalue"
	"github.com/dbflux/dbflux/scripts"
)

// recordingConn is a minimal coredb.Connection stub that only implements
// Execute, recording every SQL statement it was asked to run. Every other
// method panics if called, since RunScript never reaches them.
type recordingConn struct {
	coredb.Connection
	statements []string
	failOn     string
}

func (c *recordingConn) Execute(req dbvalue.QueryRequest) (dbvalue.QueryResult, error) {
	c.statements = append(c.statements, req.SQL)
	if c.failOn != "" && req.SQL == c.failOn {
		return dbvalue.QueryResult{}, dberr.New(dberr.QueryFailed, "boom")
	}
	return dbvalue.QueryResult{}, nil
}

func TestRunScriptSplitsAndExecutesEachStatement(t *testing.T) {
	conn := &recordingConn{}
	script := `
CREATE TABLE widgets (id INTEGER);
INSERT INTO widgets VALUES (1);
INSERT INTO widgets VALUES (2);
`
	results, err := scripts.RunScript(conn, script, true)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Len(t, conn.statements, 3)
	assert.Contains(t, conn.statements[0], "CREATE TABLE widgets")
}

func TestRunScriptStopsOnErrorByDefault(t *testing.T) {
	conn := &recordingConn{failOn: "INSERT INTO widgets VALUES (1)"}
	script := `
INSERT INTO widgets VALUES (1);
INSERT INTO widgets VALUES (2);
`
	results, err := scripts.RunScript(conn, script, true)
	assert.Error(t, err)
	assert.Len(t, results, 1)
	assert.Len(t, conn.statements, 1)
}

func TestRunScriptContinuesWhenStopOnErrorFalse(t *testing.T) {
	conn := &recordingConn{failOn: "INSERT INTO widgets VALUES (1)"}
	script := `
INSERT INTO widgets VALUES (1);
INSERT INTO widgets VALUES (2);
`
	results, err := scripts.RunScript(conn, script, false)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Error(t, results[0].Err)
	assert.NoError(t, results[1].Err)
}
