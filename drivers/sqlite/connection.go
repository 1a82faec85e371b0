// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dbflux/dbflux/codegen"
	"github.com/dbflux/dbflux/coredb"
	"github.com/dbflux/dbflux/dbkind"
	"github.com/dbflux/dbflux/dberr"
	"github.com/dbflux/dbflux/dbvalue"
	"github.com/dbflux/dbflux/dialect"
	"github.com/dbflux/dbflux/kv"
	"github.com/dbflux/dbflux/schema"
	"github.com/dbflux/dbflux/sqlgen"
)

// generatorIDs is the catalog Driver.CodeGenerators advertises and
// GenerateCode dispatches on.
var generatorIDs = []codegen.Info{
	{ID: "select_star", Label: "SELECT *"},
	{ID: "insert_template", Label: "INSERT template"},
	{ID: "update_template", Label: "UPDATE template"},
	{ID: "delete_template", Label: "DELETE template"},
	{ID: "create_table", Label: "CREATE TABLE"},
	{ID: "truncate", Label: "TRUNCATE"},
	{ID: "drop_table", Label: "DROP TABLE"},
}

// Connection is the SQLite coredb.Connection: one *sql.DB pinned to a
// single open connection (db.SetMaxOpenConns(1), set in Driver.ConnectWithSecrets),
// since SQLite allows only one writer and rusqlite's Mutex<Connection> in
// the original plays the same role. Cancellation has no equivalent of
// rusqlite's InterruptHandle in modernc.org/sqlite, so it is modeled with
// a context.CancelFunc stored per in-flight query instead (the Open
// Question resolution recorded in DESIGN.md).
type Connection struct {
	db   *sql.DB
	path string

	mu           sync.Mutex
	activeCancel context.CancelFunc
	handles      map[coredb.Handle]context.CancelFunc
}

func newConnection(db *sql.DB, path string) *Connection {
	return &Connection{db: db, path: path, handles: make(map[coredb.Handle]context.CancelFunc)}
}

func (c *Connection) Ping() error {
	if err := c.db.Ping(); err != nil {
		return dberr.Newf(dberr.ConnectionFailed, "sqlite: ping: %v", err)
	}
	return nil
}

func (c *Connection) Close() error {
	if err := c.db.Close(); err != nil {
		return dberr.Newf(dberr.IoError, "sqlite: close: %v", err)
	}
	return nil
}

// queryContext builds the context a single execute runs under: req.Timeout
// if set, always cancellable, registered so Cancel/CancelActive can reach
// it from another goroutine.
func (c *Connection) queryContext(req dbvalue.QueryRequest) (context.Context, context.CancelFunc) {
	var ctx context.Context
	var cancel context.CancelFunc
	if req.Timeout != nil {
		ctx, cancel = context.WithTimeout(context.Background(), *req.Timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	return ctx, cancel
}

func (c *Connection) Execute(req dbvalue.QueryRequest) (dbvalue.QueryResult, error) {
	ctx, cancel := c.queryContext(req)
	c.mu.Lock()
	c.activeCancel = cancel
	c.mu.Unlock()
	defer func() {
		cancel()
		c.mu.Lock()
		c.activeCancel = nil
		c.mu.Unlock()
	}()
	return c.runQuery(ctx, req)
}

func (c *Connection) ExecuteWithHandle(req dbvalue.QueryRequest) (coredb.Handle, dbvalue.QueryResult, error) {
	handle := coredb.Handle(uuid.NewString())
	ctx, cancel := c.queryContext(req)
	c.mu.Lock()
	c.handles[handle] = cancel
	c.mu.Unlock()
	defer func() {
		cancel()
		c.mu.Lock()
		delete(c.handles, handle)
		c.mu.Unlock()
	}()
	result, err := c.runQuery(ctx, req)
	return handle, result, err
}

// Cancel interrupts the query registered under h. Per spec.md §5,
// cancelling a handle whose query already completed is a benign no-op.
func (c *Connection) Cancel(h coredb.Handle) error {
	c.mu.Lock()
	cancel, ok := c.handles[h]
	c.mu.Unlock()
	if !ok {
		return nil
	}
	cancel()
	return nil
}

// CancelActive interrupts the plain Execute call currently in flight, if
// any. A no-op when nothing is running.
func (c *Connection) CancelActive() error {
	c.mu.Lock()
	cancel := c.activeCancel
	c.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()
	return nil
}

// CleanupAfterCancel has nothing to undo: cancellation tears down its own
// query context and the underlying *sql.DB connection pool recovers the
// driver connection on its own, so this is a benign no-op kept only to
// satisfy the Connection contract's cancel/cleanup pairing.
func (c *Connection) CleanupAfterCancel() error { return nil }

func (c *Connection) runQuery(ctx context.Context, req dbvalue.QueryRequest) (dbvalue.QueryResult, error) {
	start := time.Now()
	if !looksLikeRowQuery(req.SQL) {
		res, err := c.db.ExecContext(ctx, req.SQL)
		if err != nil {
			return dbvalue.QueryResult{}, mapExecError(err)
		}
		affected, _ := res.RowsAffected()
		return dbvalue.QueryResult{
			Shape:         dbvalue.ShapeTable,
			AffectedRows:  &affected,
			ExecutionTime: time.Since(start),
		}, nil
	}

	rows, err := c.db.QueryContext(ctx, req.SQL)
	if err != nil {
		return dbvalue.QueryResult{}, mapExecError(err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return dbvalue.QueryResult{}, dberr.Newf(dberr.QueryFailed, "sqlite: columns: %v", err)
	}
	columns := make([]dbvalue.ColumnMeta, len(names))
	for i, n := range names {
		columns[i] = dbvalue.ColumnMeta{Name: n, TypeName: "TEXT"}
	}

	var out [][]dbvalue.Value
	scratch := make([]any, len(names))
	ptrs := make([]any, len(names))
	for i := range scratch {
		ptrs[i] = &scratch[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return dbvalue.QueryResult{}, dberr.Newf(dberr.QueryFailed, "sqlite: scan: %v", err)
		}
		row := make([]dbvalue.Value, len(scratch))
		for i, v := range scratch {
			row[i] = sqliteToValue(v)
		}
		out = append(out, row)
		if req.Limit != nil && len(out) >= *req.Limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return dbvalue.QueryResult{}, mapExecError(err)
	}

	return dbvalue.QueryResult{
		Shape:         dbvalue.ShapeTable,
		Columns:       columns,
		Rows:          out,
		ExecutionTime: time.Since(start),
	}, nil
}

func mapExecError(err error) error {
	if errors.Is(err, context.Canceled) {
		return dberr.New(dberr.Cancelled, "sqlite: query cancelled")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return dberr.New(dberr.Timeout, "sqlite: query timed out")
	}
	return dberr.Newf(dberr.QueryFailed, "sqlite: %v", err)
}

// looksLikeRowQuery reports whether sql should run through QueryContext
// (and thus produce a Columns/Rows shape) rather than ExecContext.
func looksLikeRowQuery(sqlText string) bool {
	trimmed := strings.TrimSpace(sqlText)
	upper := strings.ToUpper(trimmed)
	for _, prefix := range []string{"SELECT", "PRAGMA", "WITH", "EXPLAIN", "VALUES"} {
		if strings.HasPrefix(upper, prefix) {
			return true
		}
	}
	return false
}

// sqliteToValue converts one database/sql scan result to dbvalue.Value.
// modernc.org/sqlite hands back int64, float64, string, []byte or nil
// directly, mirroring SQLite's own dynamic column typing (the same switch
// the original's sqlite_value_to_value performs over rusqlite::ValueRef).
func sqliteToValue(v any) dbvalue.Value {
	switch t := v.(type) {
	case nil:
		return dbvalue.Null
	case int64:
		return dbvalue.Int(t)
	case float64:
		return dbvalue.Float(t)
	case string:
		return dbvalue.Text(t)
	case []byte:
		return dbvalue.Bytes(t)
	case bool:
		return dbvalue.Bool(t)
	default:
		return dbvalue.Text(fmt.Sprintf("%v", t))
	}
}

// --- schema introspection, ported from get_tables/get_columns/get_indexes/get_views ---

func (c *Connection) Schema() (schema.Snapshot, error) {
	tables, err := c.getTables()
	if err != nil {
		return schema.Snapshot{}, err
	}
	views, err := c.getViews()
	if err != nil {
		return schema.Snapshot{}, err
	}
	fks, err := c.getAllForeignKeys(tables)
	if err != nil {
		return schema.Snapshot{}, err
	}

	main := schema.DbSchemaInfo{
		Name:        "main",
		Tables:      tables,
		Views:       views,
		ForeignKeys: fks,
	}
	return schema.Snapshot{Schemas: []schema.DbSchemaInfo{main}}, nil
}

func (c *Connection) ListDatabases() ([]schema.DatabaseInfo, error) {
	return []schema.DatabaseInfo{{Name: "main", IsCurrent: true}}, nil
}

func (c *Connection) SchemaForDatabase(database string) (schema.DbSchemaInfo, error) {
	tables, err := c.getTables()
	if err != nil {
		return schema.DbSchemaInfo{}, err
	}
	views, err := c.getViews()
	if err != nil {
		return schema.DbSchemaInfo{}, err
	}
	return schema.DbSchemaInfo{Name: "main", Tables: tables, Views: views}, nil
}

func (c *Connection) TableDetails(database, schemaName *string, table string) (schema.TableInfo, error) {
	columns, err := c.getColumns(table)
	if err != nil {
		return schema.TableInfo{}, err
	}
	indexes, err := c.getIndexes(table)
	if err != nil {
		return schema.TableInfo{}, err
	}
	return schema.TableInfo{Name: table, Columns: columns, Indexes: indexes}, nil
}

func (c *Connection) ViewDetails(database, schemaName *string, view string) (schema.ViewInfo, error) {
	row := c.db.QueryRow("SELECT sql FROM sqlite_master WHERE type='view' AND name=?", view)
	var def sql.NullString
	if err := row.Scan(&def); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return schema.ViewInfo{}, dberr.Newf(dberr.ObjectNotFound, "sqlite: view %q not found", view)
		}
		return schema.ViewInfo{}, dberr.Newf(dberr.QueryFailed, "sqlite: view %q: %v", view, err)
	}
	info := schema.ViewInfo{Name: view}
	if def.Valid {
		info.Definition = &def.String
	}
	return info, nil
}

// SchemaTypes: SQLite has no user-defined composite/enum/domain types.
func (c *Connection) SchemaTypes(database, schemaName *string) ([]schema.CustomTypeInfo, error) {
	return nil, nil
}

func (c *Connection) SchemaIndexes(database, schemaName *string) ([]schema.IndexInfo, error) {
	tables, err := c.getTables()
	if err != nil {
		return nil, err
	}
	var all []schema.IndexInfo
	for _, t := range tables {
		all = append(all, t.Indexes...)
	}
	return all, nil
}

func (c *Connection) SchemaForeignKeys(database, schemaName *string) ([]schema.ForeignKeyInfo, error) {
	tables, err := c.getTables()
	if err != nil {
		return nil, err
	}
	return c.getAllForeignKeys(tables)
}

func (c *Connection) getTables() ([]schema.TableInfo, error) {
	rows, err := c.db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, dberr.Newf(dberr.QueryFailed, "sqlite: list tables: %v", err)
	}
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, dberr.Newf(dberr.QueryFailed, "sqlite: list tables: %v", err)
		}
		names = append(names, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, dberr.Newf(dberr.QueryFailed, "sqlite: list tables: %v", err)
	}

	tables := make([]schema.TableInfo, 0, len(names))
	for _, name := range names {
		columns, err := c.getColumns(name)
		if err != nil {
			return nil, err
		}
		indexes, err := c.getIndexes(name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, schema.TableInfo{Name: name, Columns: columns, Indexes: indexes})
	}
	return tables, nil
}

func (c *Connection) getColumns(table string) ([]schema.ColumnInfo, error) {
	rows, err := c.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
	if err != nil {
		return nil, dberr.Newf(dberr.QueryFailed, "sqlite: table_info(%s): %v", table, err)
	}
	defer rows.Close()

	var columns []schema.ColumnInfo
	for rows.Next() {
		var cid int
		var name, typeName string
		var notNull int
		var dflt sql.NullString
		var pk int
		if err := rows.Scan(&cid, &name, &typeName, &notNull, &dflt, &pk); err != nil {
			return nil, dberr.Newf(dberr.QueryFailed, "sqlite: table_info(%s): %v", table, err)
		}
		col := schema.ColumnInfo{
			Name:         name,
			TypeName:     typeName,
			Nullable:     notNull == 0,
			IsPrimaryKey: pk != 0,
		}
		if dflt.Valid {
			col.DefaultValue = &dflt.String
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Newf(dberr.QueryFailed, "sqlite: table_info(%s): %v", table, err)
	}
	return columns, nil
}

func (c *Connection) getIndexes(table string) ([]schema.IndexInfo, error) {
	rows, err := c.db.Query(fmt.Sprintf("PRAGMA index_list(%s)", quoteIdent(table)))
	if err != nil {
		return nil, dberr.Newf(dberr.QueryFailed, "sqlite: index_list(%s): %v", table, err)
	}
	type listEntry struct {
		name     string
		isUnique bool
	}
	var list []listEntry
	for rows.Next() {
		var seq int
		var name, origin string
		var unique, partial int
		if err := rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
			rows.Close()
			return nil, dberr.Newf(dberr.QueryFailed, "sqlite: index_list(%s): %v", table, err)
		}
		list = append(list, listEntry{name: name, isUnique: unique == 1})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, dberr.Newf(dberr.QueryFailed, "sqlite: index_list(%s): %v", table, err)
	}

	indexes := make([]schema.IndexInfo, 0, len(list))
	for _, entry := range list {
		colRows, err := c.db.Query(fmt.Sprintf("PRAGMA index_info(%s)", quoteIdent(entry.name)))
		if err != nil {
			return nil, dberr.Newf(dberr.QueryFailed, "sqlite: index_info(%s): %v", entry.name, err)
		}
		var cols []string
		for colRows.Next() {
			var seqno, cid int
			var colName sql.NullString
			if err := colRows.Scan(&seqno, &cid, &colName); err != nil {
				colRows.Close()
				return nil, dberr.Newf(dberr.QueryFailed, "sqlite: index_info(%s): %v", entry.name, err)
			}
			if colName.Valid {
				cols = append(cols, colName.String)
			}
		}
		colRows.Close()
		if err := colRows.Err(); err != nil {
			return nil, dberr.Newf(dberr.QueryFailed, "sqlite: index_info(%s): %v", entry.name, err)
		}
		indexes = append(indexes, schema.IndexInfo{Name: entry.name, Columns: cols, IsUnique: entry.isUnique})
	}
	return indexes, nil
}

func (c *Connection) getViews() ([]schema.ViewInfo, error) {
	rows, err := c.db.Query("SELECT name FROM sqlite_master WHERE type='view' ORDER BY name")
	if err != nil {
		return nil, dberr.Newf(dberr.QueryFailed, "sqlite: list views: %v", err)
	}
	defer rows.Close()

	var views []schema.ViewInfo
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, dberr.Newf(dberr.QueryFailed, "sqlite: list views: %v", err)
		}
		views = append(views, schema.ViewInfo{Name: name})
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Newf(dberr.QueryFailed, "sqlite: list views: %v", err)
	}
	return views, nil
}

func (c *Connection) getAllForeignKeys(tables []schema.TableInfo) ([]schema.ForeignKeyInfo, error) {
	var all []schema.ForeignKeyInfo
	for _, t := range tables {
		rows, err := c.db.Query(fmt.Sprintf("PRAGMA foreign_key_list(%s)", quoteIdent(t.Name)))
		if err != nil {
			return nil, dberr.Newf(dberr.QueryFailed, "sqlite: foreign_key_list(%s): %v", t.Name, err)
		}
		byID := make(map[int]*schema.ForeignKeyInfo)
		var order []int
		for rows.Next() {
			var id, seq int
			var refTable string
			var from, to sql.NullString
			var onUpdate, onDelete, match string
			if err := rows.Scan(&id, &seq, &refTable, &from, &to, &onUpdate, &onDelete, &match); err != nil {
				rows.Close()
				return nil, dberr.Newf(dberr.QueryFailed, "sqlite: foreign_key_list(%s): %v", t.Name, err)
			}
			fk, ok := byID[id]
			if !ok {
				fk = &schema.ForeignKeyInfo{
					Name:            fmt.Sprintf("%s_fk_%d", t.Name, id),
					Table:           t.Name,
					ReferencedTable: refTable,
				}
				byID[id] = fk
				order = append(order, id)
			}
			if from.Valid {
				fk.Columns = append(fk.Columns, from.String)
			}
			if to.Valid {
				fk.ReferencedColumns = append(fk.ReferencedColumns, to.String)
			}
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, dberr.Newf(dberr.QueryFailed, "sqlite: foreign_key_list(%s): %v", t.Name, err)
		}
		for _, id := range order {
			all = append(all, *byID[id])
		}
	}
	return all, nil
}

func quoteIdent(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// --- active database: a single SQLite file has exactly one, "main" ---

func (c *Connection) SetActiveDatabase(database *string) error {
	if database != nil && *database != "" && *database != "main" {
		return dberr.New(dberr.NotSupported, "sqlite: only the \"main\" database exists")
	}
	return nil
}

func (c *Connection) ActiveDatabase() (*string, error) {
	main := "main"
	return &main, nil
}

// --- browse / count / explain / describe ---

func (c *Connection) BrowseTable(req dbvalue.BrowseRequest) (dbvalue.QueryResult, error) {
	sqlText := c.browseSQL(req)
	return c.Execute(dbvalue.QueryRequest{SQL: sqlText})
}

func (c *Connection) browseSQL(req dbvalue.BrowseRequest) string {
	var b strings.Builder
	b.WriteString("SELECT * FROM ")
	b.WriteString(dialect.SQLite.QuoteIdentifier(req.Table.Table))
	if req.Filter != nil && *req.Filter != "" {
		b.WriteString(" WHERE ")
		b.WriteString(*req.Filter)
	}
	if len(req.OrderBy) > 0 {
		b.WriteString(" ORDER BY ")
		terms := make([]string, len(req.OrderBy))
		for i, t := range req.OrderBy {
			dir := "ASC"
			if t.Descending {
				dir = "DESC"
			}
			terms[i] = dialect.SQLite.QuoteIdentifier(t.Column) + " " + dir
		}
		b.WriteString(strings.Join(terms, ", "))
	}
	if req.Limit > 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.FormatInt(req.Limit, 10))
		if req.Offset > 0 {
			b.WriteString(" OFFSET ")
			b.WriteString(strconv.FormatInt(req.Offset, 10))
		}
	}
	return b.String()
}

func (c *Connection) CountTable(req dbvalue.BrowseRequest) (int64, error) {
	var b strings.Builder
	b.WriteString("SELECT COUNT(*) FROM ")
	b.WriteString(dialect.SQLite.QuoteIdentifier(req.Table.Table))
	if req.Filter != nil && *req.Filter != "" {
		b.WriteString(" WHERE ")
		b.WriteString(*req.Filter)
	}
	var count int64
	if err := c.db.QueryRow(b.String()).Scan(&count); err != nil {
		return 0, dberr.Newf(dberr.QueryFailed, "sqlite: count %s: %v", req.Table.Table, err)
	}
	return count, nil
}

// BrowseCollection/CountCollection: SQLite is relational-only, it has no
// document collections.
func (c *Connection) BrowseCollection(req dbvalue.CollectionBrowseRequest) (dbvalue.QueryResult, error) {
	return dbvalue.QueryResult{}, dberr.New(dberr.NotSupported, "sqlite: no document collections")
}

func (c *Connection) CountCollection(req dbvalue.CollectionBrowseRequest) (int64, error) {
	return 0, dberr.New(dberr.NotSupported, "sqlite: no document collections")
}

func (c *Connection) Explain(req dbvalue.QueryRequest) (string, error) {
	result, err := c.Execute(dbvalue.QueryRequest{SQL: "EXPLAIN QUERY PLAN " + req.SQL})
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, row := range result.Rows {
		parts := make([]string, len(row))
		for i, v := range row {
			parts[i] = valueToPlanText(v)
		}
		b.WriteString(strings.Join(parts, "\t"))
		b.WriteString("\n")
	}
	return b.String(), nil
}

func valueToPlanText(v dbvalue.Value) string {
	switch v.Kind() {
	case dbvalue.KindNull:
		return ""
	case dbvalue.KindInt:
		return strconv.FormatInt(v.IntValue(), 10)
	case dbvalue.KindFloat:
		return strconv.FormatFloat(v.FloatValue(), 'g', -1, 64)
	case dbvalue.KindText, dbvalue.KindJSON:
		return v.TextValue()
	default:
		return ""
	}
}

func (c *Connection) DescribeTable(database, schemaName *string, table string) ([]schema.ColumnInfo, error) {
	return c.getColumns(table)
}

// --- CRUD, via sqlgen parameterized by dialect.SQLite ---

func (c *Connection) UpdateRow(patch dbvalue.RowPatch) (dbvalue.CrudResult, error) {
	req := sqlgen.Request{
		Operation: sqlgen.OpUpdate,
		Table:     patch.Table.Table,
		Columns:   append(append([]string{}, patch.Columns...), patch.Identity.Columns...),
		Source:    sqlgen.WithValues,
		Values:    append(append([]dbvalue.Value{}, patch.Values...), patch.Identity.Values...),
		PKIndices: identityIndicesAfter(len(patch.Columns), len(patch.Identity.Columns)),
	}
	return c.execCrud(sqlgen.GenerateUpdate(dialect.SQLite, req))
}

func (c *Connection) InsertRow(ins dbvalue.RowInsert) (dbvalue.CrudResult, error) {
	req := sqlgen.Request{
		Operation: sqlgen.OpInsert,
		Table:     ins.Table.Table,
		Columns:   ins.Columns,
		Source:    sqlgen.WithValues,
		Values:    ins.Values,
	}
	return c.execCrud(sqlgen.GenerateInsert(dialect.SQLite, req))
}

func (c *Connection) DeleteRow(del dbvalue.RowDelete) (dbvalue.CrudResult, error) {
	req := sqlgen.Request{
		Operation: sqlgen.OpDelete,
		Table:     del.Table.Table,
		Columns:   del.Identity.Columns,
		Source:    sqlgen.WithValues,
		Values:    del.Identity.Values,
	}
	return c.execCrud(sqlgen.GenerateDelete(dialect.SQLite, req))
}

// identityIndicesAfter returns the indices of the identity columns once
// they have been appended after nPatch patch columns, matching the
// Columns/Values concatenation UpdateRow builds above.
func identityIndicesAfter(nPatch, nIdentity int) []int {
	idx := make([]int, nIdentity)
	for i := range idx {
		idx[i] = nPatch + i
	}
	return idx
}

func (c *Connection) execCrud(sqlText string) (dbvalue.CrudResult, error) {
	res, err := c.db.Exec(sqlText)
	if err != nil {
		return dbvalue.CrudResult{}, dberr.Newf(dberr.QueryFailed, "sqlite: %v", err)
	}
	affected, _ := res.RowsAffected()
	return dbvalue.CrudResult{AffectedCount: affected}, nil
}

// UpdateDocument/InsertDocument/DeleteDocument: SQLite is relational-only.
func (c *Connection) UpdateDocument(upd dbvalue.DocumentUpdate) (dbvalue.CrudResult, error) {
	return dbvalue.CrudResult{}, dberr.New(dberr.NotSupported, "sqlite: no document collections")
}

func (c *Connection) InsertDocument(ins dbvalue.DocumentInsert) (dbvalue.CrudResult, error) {
	return dbvalue.CrudResult{}, dberr.New(dberr.NotSupported, "sqlite: no document collections")
}

func (c *Connection) DeleteDocument(del dbvalue.DocumentDelete) (dbvalue.CrudResult, error) {
	return dbvalue.CrudResult{}, dberr.New(dberr.NotSupported, "sqlite: no document collections")
}

// KeyValueAPI: SQLite has no key-value surface.
func (c *Connection) KeyValueAPI() (kv.KeyValueApi, bool) { return nil, false }

func (c *Connection) Dialect() dialect.SqlDialect { return dialect.SQLite }

func (c *Connection) Kind() dbkind.Kind { return dbkind.SQLite }

func (c *Connection) Capabilities() dbkind.Capabilities { return capabilities }

func (c *Connection) CodeGenerators() []codegen.Info { return generatorIDs }

func (c *Connection) GenerateCode(generatorID string, database, schemaName *string, table string) (string, error) {
	columns, err := c.getColumns(table)
	if err != nil {
		return "", err
	}
	req := sqlgen.TemplateRequest{Table: table, Columns: columns}
	switch generatorID {
	case "select_star":
		return sqlgen.GenerateSelectStar(dialect.SQLite, req, nil), nil
	case "insert_template":
		return sqlgen.GenerateInsertTemplate(dialect.SQLite, req), nil
	case "update_template":
		return sqlgen.GenerateUpdateTemplate(dialect.SQLite, req), nil
	case "delete_template":
		return sqlgen.GenerateDeleteTemplate(dialect.SQLite, req), nil
	case "create_table":
		return sqlgen.GenerateCreateTable(dialect.SQLite, req), nil
	case "truncate":
		return sqlgen.GenerateTruncate(dialect.SQLite, req), nil
	case "drop_table":
		return sqlgen.GenerateDropTable(dialect.SQLite, req), nil
	default:
		return "", dberr.Newf(dberr.NotSupported, "sqlite: unknown code generator %q", generatorID)
	}
}

var _ coredb.Connection = (*Connection)(nil)
