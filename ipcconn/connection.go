// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

// Package ipcconn implements coredb.Connection by delegating every
// operation to an rpcclient.RpcClient bound to one remote session. It is
// the client-side half of the driver-host protocol: the embedding
// application never talks to an out-of-process driver directly, only
// through an IpcConnection. Grounded on
// original_source/crates/dbflux_driver_ipc/src/connection.rs, ported
// method-for-method.
package ipcconn

import (
	"errors"

	"github.com/dbflux/dbflux/codegen"
	"github.com/dbflux/dbflux/coredb"
	"github.com/dbflux/dbflux/dbkind"
	"github.com/dbflux/dbflux/dbvalue"
	"github.com/dbflux/dbflux/dialect"
	"github.com/dbflux/dbflux/kv"
	"github.com/dbflux/dbflux/protocol"
	"github.com/dbflux/dbflux/rpcclient"
	"github.com/dbflux/dbflux/schema"
)

// Connection proxies coredb.Connection over one rpcclient.RpcClient
// session. OpenSession-derived metadata is cached at construction
// time so Kind/Capabilities/Dialect stay zero-cost, matching the
// original's OnceLock-cached code_generators.
type Connection struct {
	client       *rpcclient.RpcClient
	sessionID    string
	kind         dbkind.Kind
	metadata     dbkind.Metadata
	capabilities dbkind.Capabilities
	codeGens     []codegen.Info
}

// New wraps client's already-open session, caching the metadata OpenSession
// returned.
func New(client *rpcclient.RpcClient, sessionID string, opened *protocol.SessionOpenedResponse) *Connection {
	return &Connection{
		client:       client,
		sessionID:    sessionID,
		kind:         opened.Kind,
		metadata:     opened.Metadata,
		capabilities: opened.SchemaFeatures,
		codeGens:     opened.CodeGenCapabilities,
	}
}

func intoDbErr(err error) error {
	if err == nil {
		return nil
	}
	var rpcErr *rpcclient.RpcError
	if errors.As(err, &rpcErr) {
		return rpcErr.IntoDbError()
	}
	return err
}

func (c *Connection) Ping() error { return intoDbErr(c.client.Ping(c.sessionID)) }

func (c *Connection) Close() error { return intoDbErr(c.client.CloseSession(c.sessionID)) }

func (c *Connection) Execute(req dbvalue.QueryRequest) (dbvalue.QueryResult, error) {
	res, err := c.client.Execute(c.sessionID, req)
	return res, intoDbErr(err)
}

func (c *Connection) ExecuteWithHandle(req dbvalue.QueryRequest) (coredb.Handle, dbvalue.QueryResult, error) {
	handleID, res, err := c.client.ExecuteWithHandle(c.sessionID, req)
	return coredb.Handle(handleID), res, intoDbErr(err)
}

func (c *Connection) Cancel(h coredb.Handle) error {
	return intoDbErr(c.client.Cancel(c.sessionID, string(h)))
}

func (c *Connection) CancelActive() error {
	return intoDbErr(c.client.CancelActive(c.sessionID))
}

func (c *Connection) CleanupAfterCancel() error {
	return intoDbErr(c.client.CleanupAfterCancel(c.sessionID))
}

func (c *Connection) Schema() (schema.Snapshot, error) {
	s, err := c.client.Schema(c.sessionID)
	return s, intoDbErr(err)
}

func (c *Connection) ListDatabases() ([]schema.DatabaseInfo, error) {
	dbs, err := c.client.ListDatabases(c.sessionID)
	return dbs, intoDbErr(err)
}

func (c *Connection) SchemaForDatabase(database string) (schema.DbSchemaInfo, error) {
	s, err := c.client.SchemaForDatabase(c.sessionID, database)
	return s, intoDbErr(err)
}

func (c *Connection) TableDetails(database, schemaName *string, table string) (schema.TableInfo, error) {
	t, err := c.client.TableDetails(c.sessionID, database, schemaName, table)
	return t, intoDbErr(err)
}

func (c *Connection) ViewDetails(database, schemaName *string, view string) (schema.ViewInfo, error) {
	v, err := c.client.ViewDetails(c.sessionID, database, schemaName, view)
	return v, intoDbErr(err)
}

func (c *Connection) SchemaTypes(database, schemaName *string) ([]schema.CustomTypeInfo, error) {
	t, err := c.client.SchemaTypes(c.sessionID, database, schemaName)
	return t, intoDbErr(err)
}

func (c *Connection) SchemaIndexes(database, schemaName *string) ([]schema.IndexInfo, error) {
	idx, err := c.client.SchemaIndexes(c.sessionID, database, schemaName)
	return idx, intoDbErr(err)
}

func (c *Connection) SchemaForeignKeys(database, schemaName *string) ([]schema.ForeignKeyInfo, error) {
	fks, err := c.client.SchemaForeignKeys(c.sessionID, database, schemaName)
	return fks, intoDbErr(err)
}

func (c *Connection) SetActiveDatabase(database *string) error {
	return intoDbErr(c.client.SetActiveDatabase(c.sessionID, database))
}

func (c *Connection) ActiveDatabase() (*string, error) {
	db, err := c.client.ActiveDatabase(c.sessionID)
	return db, intoDbErr(err)
}

func (c *Connection) BrowseTable(req dbvalue.BrowseRequest) (dbvalue.QueryResult, error) {
	res, err := c.client.BrowseTable(c.sessionID, req)
	return res, intoDbErr(err)
}

func (c *Connection) CountTable(req dbvalue.BrowseRequest) (int64, error) {
	n, err := c.client.CountTable(c.sessionID, req)
	return n, intoDbErr(err)
}

func (c *Connection) BrowseCollection(req dbvalue.CollectionBrowseRequest) (dbvalue.QueryResult, error) {
	res, err := c.client.BrowseCollection(c.sessionID, req)
	return res, intoDbErr(err)
}

func (c *Connection) CountCollection(req dbvalue.CollectionBrowseRequest) (int64, error) {
	n, err := c.client.CountCollection(c.sessionID, req)
	return n, intoDbErr(err)
}

func (c *Connection) Explain(req dbvalue.QueryRequest) (string, error) {
	plan, err := c.client.Explain(c.sessionID, req)
	return plan, intoDbErr(err)
}

func (c *Connection) DescribeTable(database, schemaName *string, table string) ([]schema.ColumnInfo, error) {
	cols, err := c.client.DescribeTable(c.sessionID, database, schemaName, table)
	return cols, intoDbErr(err)
}

func (c *Connection) UpdateRow(patch dbvalue.RowPatch) (dbvalue.CrudResult, error) {
	res, err := c.client.UpdateRow(c.sessionID, patch)
	return res, intoDbErr(err)
}

func (c *Connection) InsertRow(ins dbvalue.RowInsert) (dbvalue.CrudResult, error) {
	res, err := c.client.InsertRow(c.sessionID, ins)
	return res, intoDbErr(err)
}

func (c *Connection) DeleteRow(del dbvalue.RowDelete) (dbvalue.CrudResult, error) {
	res, err := c.client.DeleteRow(c.sessionID, del)
	return res, intoDbErr(err)
}

func (c *Connection) UpdateDocument(upd dbvalue.DocumentUpdate) (dbvalue.CrudResult, error) {
	res, err := c.client.UpdateDocument(c.sessionID, upd)
	return res, intoDbErr(err)
}

func (c *Connection) InsertDocument(ins dbvalue.DocumentInsert) (dbvalue.CrudResult, error) {
	res, err := c.client.InsertDocument(c.sessionID, ins)
	return res, intoDbErr(err)
}

func (c *Connection) DeleteDocument(del dbvalue.DocumentDelete) (dbvalue.CrudResult, error) {
	res, err := c.client.DeleteDocument(c.sessionID, del)
	return res, intoDbErr(err)
}

// KeyValueAPI exposes this same Connection as a kv.KeyValueApi iff the
// driver advertised the key-value feature bits.
func (c *Connection) KeyValueAPI() (kv.KeyValueApi, bool) {
	if !c.capabilities.HasAny(dbkind.KeyPatternScan | dbkind.KeyExpiration) {
		return nil, false
	}
	return c, true
}

// Dialect always returns dialect.ANSI: every SQL-producing method here is
// already a finished-SQL round trip to the driver-host, so the client
// never builds SQL text of its own (spec.md §4.9).
func (c *Connection) Dialect() dialect.SqlDialect { return dialect.ANSI }

func (c *Connection) Kind() dbkind.Kind { return c.kind }

func (c *Connection) Capabilities() dbkind.Capabilities { return c.capabilities }

func (c *Connection) CodeGenerators() []codegen.Info { return c.codeGens }

func (c *Connection) GenerateCode(generatorID string, database, schemaName *string, table string) (string, error) {
	code, err := c.client.GenerateCode(c.sessionID, generatorID, database, schemaName, table)
	return code, intoDbErr(err)
}

var _ coredb.Connection = (*Connection)(nil)
