// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"errors"
	"testing"

	"github.com/dbflux/dbflux/codegen"
	"github.com/dbflux/dbflux/coredb"
	"github.com/dbflux/dbflux/dbkind"
	"github.com/dbflux/dbflux/dbvalue"
	"github.com/dbflux/dbflux/dialect"
	"github.com/dbflux/dbflux/kv"
	"github.com/dbflux/dbflux/schema"
)

// stubConn is the minimal coredb.Connection fake this package's tests
// need; it has no behavior beyond recording whether Close was called.
type stubConn struct {
	closeErr error
	closed   bool
}

func (s *stubConn) Ping() error { return nil }
func (s *stubConn) Close() error {
	s.closed = true
	return s.closeErr
}
func (s *stubConn) Execute(dbvalue.QueryRequest) (dbvalue.QueryResult, error) { return dbvalue.QueryResult{}, nil }
func (s *stubConn) ExecuteWithHandle(dbvalue.QueryRequest) (coredb.Handle, dbvalue.QueryResult, error) {
	return "", dbvalue.QueryResult{}, nil
}
func (s *stubConn) Cancel(coredb.Handle) error                    { return nil }
func (s *stubConn) CancelActive() error                            { return nil }
func (s *stubConn) CleanupAfterCancel() error                      { return nil }
func (s *stubConn) Schema() (schema.Snapshot, error)                { return schema.Snapshot{}, nil }
func (s *stubConn) ListDatabases() ([]schema.DatabaseInfo, error)    { return nil, nil }
func (s *stubConn) SchemaForDatabase(string) (schema.DbSchemaInfo, error) { return schema.DbSchemaInfo{}, nil }
func (s *stubConn) TableDetails(*string, *string, string) (schema.TableInfo, error) {
	return schema.TableInfo{}, nil
}
func (s *stubConn) ViewDetails(*string, *string, string) (schema.ViewInfo, error) {
	return schema.ViewInfo{}, nil
}
func (s *stubConn) SchemaTypes(*string, *string) ([]schema.CustomTypeInfo, error)   { return nil, nil }
func (s *stubConn) SchemaIndexes(*string, *string) ([]schema.IndexInfo, error)       { return nil, nil }
func (s *stubConn) SchemaForeignKeys(*string, *string) ([]schema.ForeignKeyInfo, error) { return nil, nil }
func (s *stubConn) SetActiveDatabase(*string) error                                 { return nil }
func (s *stubConn) ActiveDatabase() (*string, error)                                { return nil, nil }
func (s *stubConn) BrowseTable(dbvalue.BrowseRequest) (dbvalue.QueryResult, error)   { return dbvalue.QueryResult{}, nil }
func (s *stubConn) CountTable(dbvalue.BrowseRequest) (int64, error)                  { return 0, nil }
func (s *stubConn) BrowseCollection(dbvalue.CollectionBrowseRequest) (dbvalue.QueryResult, error) {
	return dbvalue.QueryResult{}, nil
}
func (s *stubConn) CountCollection(dbvalue.CollectionBrowseRequest) (int64, error) { return 0, nil }
func (s *stubConn) Explain(dbvalue.QueryRequest) (string, error)                  { return "", nil }
func (s *stubConn) DescribeTable(*string, *string, string) ([]schema.ColumnInfo, error) {
	return nil, nil
}
func (s *stubConn) UpdateRow(dbvalue.RowPatch) (dbvalue.CrudResult, error)       { return dbvalue.CrudResult{}, nil }
func (s *stubConn) InsertRow(dbvalue.RowInsert) (dbvalue.CrudResult, error)      { return dbvalue.CrudResult{}, nil }
func (s *stubConn) DeleteRow(dbvalue.RowDelete) (dbvalue.CrudResult, error)      { return dbvalue.CrudResult{}, nil }
func (s *stubConn) UpdateDocument(dbvalue.DocumentUpdate) (dbvalue.CrudResult, error) {
	return dbvalue.CrudResult{}, nil
}
func (s *stubConn) InsertDocument(dbvalue.DocumentInsert) (dbvalue.CrudResult, error) {
	return dbvalue.CrudResult{}, nil
}
func (s *stubConn) DeleteDocument(dbvalue.DocumentDelete) (dbvalue.CrudResult, error) {
	return dbvalue.CrudResult{}, nil
}
func (s *stubConn) KeyValueAPI() (kv.KeyValueApi, bool)     { return nil, false }
func (s *stubConn) Dialect() dialect.SqlDialect             { return dialect.ANSI }
func (s *stubConn) Kind() dbkind.Kind                        { return dbkind.SQLite }
func (s *stubConn) Capabilities() dbkind.Capabilities         { return dbkind.RelationalBase }
func (s *stubConn) CodeGenerators() []codegen.Info            { return nil }
func (s *stubConn) GenerateCode(string, *string, *string, string) (string, error) { return "", nil }

var _ coredb.Connection = (*stubConn)(nil)

func TestManagerInsertGetRemove(t *testing.T) {
	m := NewManager()
	c := &stubConn{}
	m.Insert("s1", c)

	got, ok := m.Get("s1")
	if !ok || got != c {
		t.Fatalf("Get: got (%v, %v)", got, ok)
	}

	removed, ok := m.Remove("s1")
	if !ok || removed != c {
		t.Fatalf("Remove: got (%v, %v)", removed, ok)
	}
	if _, ok := m.Get("s1"); ok {
		t.Fatalf("expected session gone after Remove")
	}
}

func TestManagerCloseAllClosesEveryConnection(t *testing.T) {
	m := NewManager()
	c1 := &stubConn{}
	c2 := &stubConn{closeErr: errors.New("boom")}
	m.Insert("s1", c1)
	m.Insert("s2", c2)

	m.CloseAll()

	if !c1.closed || !c2.closed {
		t.Fatalf("expected both connections closed")
	}
	if m.Len() != 0 {
		t.Fatalf("expected manager empty after CloseAll, got %d", m.Len())
	}
}
