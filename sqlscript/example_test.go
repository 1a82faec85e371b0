//go:build !unit

package sqlscript_test

import (
	"bufio"
	"strings"
	"testing"

	"github.com/dbflux/dbflux/sqlscript"
)

// TestScanFuncSplitsScript demonstrates splitting a multi-statement script
// into individual statements, the way scripts.RunScript feeds each one to
// a coredb.Connection in turn.
func TestScanFuncSplitsScript(t *testing.T) {
	ddlScript := `
-- create a table
CREATE TABLE widgets (
	id INTEGER,
	name TEXT
);
INSERT INTO widgets VALUES (1,'a');
INSERT INTO widgets VALUES (2,'b');
`

	scanner := bufio.NewScanner(strings.NewReader(ddlScript))
	scanner.Split(sqlscript.ScanFunc(sqlscript.DefaultSeparator, false))

	var statements []string
	for scanner.Scan() {
		statements = append(statements, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		t.Fatal(err)
	}

	if len(statements) != 3 {
		t.Fatalf("got %d statements, want 3: %q", len(statements), statements)
	}
	if !strings.HasPrefix(statements[0], "CREATE TABLE widgets") {
		t.Errorf("statement 0 = %q", statements[0])
	}
	if !strings.Contains(statements[1], "VALUES (1,'a')") {
		t.Errorf("statement 1 = %q", statements[1])
	}
}
