// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

package rpcclient

import (
	"errors"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/dbflux/dbflux/codegen"
	"github.com/dbflux/dbflux/dbkind"
	"github.com/dbflux/dbflux/dbvalue"
	"github.com/dbflux/dbflux/formdef"
	"github.com/dbflux/dbflux/protocol"
	"github.com/dbflux/dbflux/schema"
)

var rlog = log.New(os.Stderr, "dbflux.rpcclient ", log.Ldate|log.Ltime|log.Lshortfile)

// HelloInfo is everything the server reported during the handshake,
// cached by the RpcClient and returned by Hello.
type HelloInfo struct {
	ServerName      string
	ServerVersion   string
	SelectedVersion protocol.Version
	Capabilities    dbkind.Capabilities
	DriverKind      dbkind.Kind
	DriverMetadata  dbkind.Metadata
	FormDefinition  formdef.FormDefinition
}

// RpcClient owns one framed stream and serializes request/response pairs
// across it. One RpcClient permits exactly one in-flight request at a
// time; callers needing concurrency run multiple RpcClients in parallel
// (spec.md §5).
type RpcClient struct {
	dial func() (net.Conn, error)

	idMu   sync.Mutex
	nextID uint64

	streamMu sync.Mutex
	conn     net.Conn

	hello *HelloInfo
}

// Dial opens conn via dial, then performs the Hello handshake with
// clientName/clientVersion against protocol.CurrentVersion. dial is
// retained so Reconnect can re-establish the stream later.
func Dial(dial func() (net.Conn, error), clientName, clientVersion string, requested dbkind.Capabilities) (*RpcClient, error) {
	conn, err := dial()
	if err != nil {
		return nil, newRpcError(ErrConnectionFailed, "dial: %v", err)
	}
	c := &RpcClient{dial: dial, conn: conn}
	if err := c.performHello(clientName, clientVersion, requested); err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

func (c *RpcClient) performHello(clientName, clientVersion string, requested dbkind.Capabilities) error {
	body := protocol.RequestBody{
		Kind: protocol.ReqHello,
		Hello: &protocol.HelloRequest{
			ClientName:            clientName,
			ClientVersion:         clientVersion,
			SupportedVersions:     []protocol.Version{protocol.CurrentVersion},
			RequestedCapabilities: requested,
		},
	}
	resp, err := c.call(nil, body)
	if err != nil {
		return err
	}
	if resp.Kind != protocol.RespHello || resp.Hello == nil {
		return newRpcError(ErrProtocol, "expected Hello response, got %v", resp.Kind)
	}
	h := resp.Hello
	c.hello = &HelloInfo{
		ServerName:      h.ServerName,
		ServerVersion:   h.ServerVersion,
		SelectedVersion: h.SelectedVersion,
		Capabilities:    h.Capabilities,
		DriverKind:      h.DriverKind,
		DriverMetadata:  h.DriverMetadata,
		FormDefinition:  h.FormDefinition,
	}
	return nil
}

// Hello returns the cached Hello response from the initial handshake.
func (c *RpcClient) Hello() *HelloInfo { return c.hello }

func (c *RpcClient) nextRequestID() uint64 {
	c.idMu.Lock()
	defer c.idMu.Unlock()
	c.nextID++
	return c.nextID
}

// call is the generic request/response path every typed method builds
// on: take the next request id, send the frame, block for the reply,
// verify id correlation, and surface either the success body or a
// mapped RpcError.
func (c *RpcClient) call(sessionID *string, body protocol.RequestBody) (protocol.ResponseBody, error) {
	id := c.nextRequestID()
	req := protocol.RequestEnvelope{RequestID: id, SessionID: sessionID, Body: body}

	c.streamMu.Lock()
	defer c.streamMu.Unlock()

	if err := protocol.SendMsg(c.conn, req); err != nil {
		return protocol.ResponseBody{}, newRpcError(ErrIo, "send: %v", err)
	}
	var resp protocol.ResponseEnvelope
	if err := protocol.RecvMsg(c.conn, &resp); err != nil {
		if errors.Is(err, io.EOF) {
			return protocol.ResponseBody{}, newRpcError(ErrConnectionFailed, "stream closed")
		}
		return protocol.ResponseBody{}, newRpcError(ErrIo, "recv: %v", err)
	}
	if resp.RequestID != id {
		// No resync: the stream is single-session, purely request/response.
		// A mismatch means the protocol itself is broken; closing is the
		// only safe response.
		c.conn.Close()
		return protocol.ResponseBody{}, newRpcError(ErrProtocol, "response id %d does not match request id %d", resp.RequestID, id)
	}
	if resp.Body.Err != nil {
		return protocol.ResponseBody{}, fromErrorPayload(resp.Body.Err)
	}
	return resp.Body, nil
}

func expectKind(resp protocol.ResponseBody, kind protocol.ResponseKind) error {
	if resp.Kind != kind {
		return newRpcError(ErrProtocol, "expected response kind %v, got %v", kind, resp.Kind)
	}
	return nil
}

// Close closes the underlying stream.
func (c *RpcClient) Close() error {
	c.streamMu.Lock()
	defer c.streamMu.Unlock()
	return c.conn.Close()
}

// Reconnect re-dials and re-performs the Hello handshake, retrying with
// exponential backoff. Intended to be called by a caller that has
// observed a retriable RpcError (Transport/Timeout) from a prior call.
func (c *RpcClient) Reconnect(clientName, clientVersion string, requested dbkind.Capabilities) error {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 30 * time.Second

	return backoff.Retry(func() error {
		conn, err := c.dial()
		if err != nil {
			rlog.Printf("reconnect dial failed: %v", err)
			return err
		}
		c.streamMu.Lock()
		if c.conn != nil {
			c.conn.Close()
		}
		c.conn = conn
		c.streamMu.Unlock()

		if err := c.performHello(clientName, clientVersion, requested); err != nil {
			rlog.Printf("reconnect hello failed: %v", err)
			return err
		}
		return nil
	}, b)
}

// OpenSession opens a new session against profileJSON.
func (c *RpcClient) OpenSession(profileJSON string, password, sshSecret *string) (string, *protocol.SessionOpenedResponse, error) {
	resp, err := c.call(nil, protocol.RequestBody{
		Kind: protocol.ReqOpenSession,
		OpenSession: &protocol.OpenSessionRequest{
			ProfileJSON: profileJSON,
			Password:    password,
			SSHSecret:   sshSecret,
		},
	})
	if err != nil {
		return "", nil, err
	}
	if err := expectKind(resp, protocol.RespSessionOpened); err != nil {
		return "", nil, err
	}
	return resp.SessionOpened.SessionID, resp.SessionOpened, nil
}

// CloseSession closes the session identified by sessionID.
func (c *RpcClient) CloseSession(sessionID string) error {
	resp, err := c.call(&sessionID, protocol.RequestBody{Kind: protocol.ReqCloseSession})
	if err != nil {
		return err
	}
	return expectKind(resp, protocol.RespSessionClosed)
}

// Ping checks liveness of the session.
func (c *RpcClient) Ping(sessionID string) error {
	resp, err := c.call(&sessionID, protocol.RequestBody{Kind: protocol.ReqPing})
	if err != nil {
		return err
	}
	return expectKind(resp, protocol.RespPong)
}

// Schema fetches the full schema snapshot.
func (c *RpcClient) Schema(sessionID string) (schema.Snapshot, error) {
	resp, err := c.call(&sessionID, protocol.RequestBody{Kind: protocol.ReqSchema})
	if err != nil {
		return schema.Snapshot{}, err
	}
	if err := expectKind(resp, protocol.RespSchema); err != nil {
		return schema.Snapshot{}, err
	}
	return *resp.Schema, nil
}

// Execute runs a query to completion (no cancellation handle).
func (c *RpcClient) Execute(sessionID string, q dbvalue.QueryRequest) (dbvalue.QueryResult, error) {
	resp, err := c.call(&sessionID, protocol.RequestBody{
		Kind:    protocol.ReqExecute,
		Execute: &protocol.ExecuteRequest{Query: q},
	})
	if err != nil {
		return dbvalue.QueryResult{}, err
	}
	if err := expectKind(resp, protocol.RespExecuteResult); err != nil {
		return dbvalue.QueryResult{}, err
	}
	return resp.ExecuteResult.Result, nil
}

// ExecuteWithHandle runs a cancellable query and returns its handle id
// alongside the result.
func (c *RpcClient) ExecuteWithHandle(sessionID string, q dbvalue.QueryRequest) (string, dbvalue.QueryResult, error) {
	resp, err := c.call(&sessionID, protocol.RequestBody{
		Kind:    protocol.ReqExecuteWithHandle,
		Execute: &protocol.ExecuteRequest{Query: q},
	})
	if err != nil {
		return "", dbvalue.QueryResult{}, err
	}
	if err := expectKind(resp, protocol.RespExecuteWithHandle); err != nil {
		return "", dbvalue.QueryResult{}, err
	}
	return resp.ExecuteWithHandle.HandleID, resp.ExecuteWithHandle.Result, nil
}

// Cancel interrupts the query identified by handleID.
func (c *RpcClient) Cancel(sessionID, handleID string) error {
	resp, err := c.call(&sessionID, protocol.RequestBody{
		Kind:   protocol.ReqCancel,
		Cancel: &protocol.CancelRequest{HandleID: handleID},
	})
	if err != nil {
		return err
	}
	return expectKind(resp, protocol.RespCancelled)
}

// CancelActive interrupts whatever query is currently running on the
// session, if any.
func (c *RpcClient) CancelActive(sessionID string) error {
	resp, err := c.call(&sessionID, protocol.RequestBody{Kind: protocol.ReqCancelActive})
	if err != nil {
		return err
	}
	return expectKind(resp, protocol.RespCancelled)
}

// CleanupAfterCancel resynchronizes driver state after a cancellation.
func (c *RpcClient) CleanupAfterCancel(sessionID string) error {
	resp, err := c.call(&sessionID, protocol.RequestBody{Kind: protocol.ReqCleanupAfterCancel})
	if err != nil {
		return err
	}
	return expectKind(resp, protocol.RespPong)
}

// ListDatabases lists every database visible on the server.
func (c *RpcClient) ListDatabases(sessionID string) ([]schema.DatabaseInfo, error) {
	resp, err := c.call(&sessionID, protocol.RequestBody{Kind: protocol.ReqListDatabases})
	if err != nil {
		return nil, err
	}
	if err := expectKind(resp, protocol.RespDatabaseList); err != nil {
		return nil, err
	}
	return resp.DatabaseList.Databases, nil
}

// SchemaForDatabase fetches the schema info for one database.
func (c *RpcClient) SchemaForDatabase(sessionID, database string) (schema.DbSchemaInfo, error) {
	resp, err := c.call(&sessionID, protocol.RequestBody{
		Kind:              protocol.ReqSchemaForDatabase,
		SchemaForDatabase: &protocol.DatabaseScopedRequest{Database: database},
	})
	if err != nil {
		return schema.DbSchemaInfo{}, err
	}
	if err := expectKind(resp, protocol.RespSchema); err != nil {
		return schema.DbSchemaInfo{}, err
	}
	if len(resp.Schema.Schemas) == 0 {
		return schema.DbSchemaInfo{}, nil
	}
	return resp.Schema.Schemas[0], nil
}

// TableDetails lazily fetches one table's columns and indexes.
func (c *RpcClient) TableDetails(sessionID string, database, schemaName *string, table string) (schema.TableInfo, error) {
	resp, err := c.call(&sessionID, protocol.RequestBody{
		Kind:         protocol.ReqTableDetails,
		TableDetails: &protocol.TableRequest{Database: database, Schema: schemaName, Name: table},
	})
	if err != nil {
		return schema.TableInfo{}, err
	}
	if err := expectKind(resp, protocol.RespTableDetails); err != nil {
		return schema.TableInfo{}, err
	}
	return resp.TableDetails.Table, nil
}

// ViewDetails fetches one view's definition.
func (c *RpcClient) ViewDetails(sessionID string, database, schemaName *string, view string) (schema.ViewInfo, error) {
	resp, err := c.call(&sessionID, protocol.RequestBody{
		Kind:        protocol.ReqViewDetails,
		ViewDetails: &protocol.TableRequest{Database: database, Schema: schemaName, Name: view},
	})
	if err != nil {
		return schema.ViewInfo{}, err
	}
	if err := expectKind(resp, protocol.RespViewDetails); err != nil {
		return schema.ViewInfo{}, err
	}
	return resp.ViewDetails.View, nil
}

// SetActiveDatabase switches (or clears) the session's active database.
func (c *RpcClient) SetActiveDatabase(sessionID string, database *string) error {
	resp, err := c.call(&sessionID, protocol.RequestBody{
		Kind:              protocol.ReqSetActiveDatabase,
		SetActiveDatabase: &protocol.SetActiveDatabaseRequest{Database: database},
	})
	if err != nil {
		return err
	}
	return expectKind(resp, protocol.RespActiveDatabaseSet)
}

// ActiveDatabase reports the session's current active database, if any.
func (c *RpcClient) ActiveDatabase(sessionID string) (*string, error) {
	resp, err := c.call(&sessionID, protocol.RequestBody{Kind: protocol.ReqActiveDatabase})
	if err != nil {
		return nil, err
	}
	if err := expectKind(resp, protocol.RespActiveDatabase); err != nil {
		return nil, err
	}
	return resp.ActiveDatabase.Database, nil
}

// BrowseTable pages through a table's rows.
func (c *RpcClient) BrowseTable(sessionID string, req dbvalue.BrowseRequest) (dbvalue.QueryResult, error) {
	resp, err := c.call(&sessionID, protocol.RequestBody{
		Kind:        protocol.ReqBrowseTable,
		BrowseTable: &protocol.BrowseTableRequest{Browse: req},
	})
	if err != nil {
		return dbvalue.QueryResult{}, err
	}
	if err := expectKind(resp, protocol.RespBrowseResult); err != nil {
		return dbvalue.QueryResult{}, err
	}
	return resp.BrowseResult.Result, nil
}

// CountTable counts a table's rows under the same filter as BrowseTable.
func (c *RpcClient) CountTable(sessionID string, req dbvalue.BrowseRequest) (int64, error) {
	resp, err := c.call(&sessionID, protocol.RequestBody{
		Kind:        protocol.ReqCountTable,
		BrowseTable: &protocol.BrowseTableRequest{Browse: req},
	})
	if err != nil {
		return 0, err
	}
	if err := expectKind(resp, protocol.RespCountResult); err != nil {
		return 0, err
	}
	return resp.CountResult.Count, nil
}

// BrowseCollection pages through a document collection.
func (c *RpcClient) BrowseCollection(sessionID string, req dbvalue.CollectionBrowseRequest) (dbvalue.QueryResult, error) {
	resp, err := c.call(&sessionID, protocol.RequestBody{
		Kind:             protocol.ReqBrowseCollection,
		BrowseCollection: &protocol.BrowseCollectionRequest{Browse: req},
	})
	if err != nil {
		return dbvalue.QueryResult{}, err
	}
	if err := expectKind(resp, protocol.RespBrowseResult); err != nil {
		return dbvalue.QueryResult{}, err
	}
	return resp.BrowseResult.Result, nil
}

// CountCollection counts a collection's documents under the same filter
// as BrowseCollection.
func (c *RpcClient) CountCollection(sessionID string, req dbvalue.CollectionBrowseRequest) (int64, error) {
	resp, err := c.call(&sessionID, protocol.RequestBody{
		Kind:             protocol.ReqCountCollection,
		BrowseCollection: &protocol.BrowseCollectionRequest{Browse: req},
	})
	if err != nil {
		return 0, err
	}
	if err := expectKind(resp, protocol.RespCountResult); err != nil {
		return 0, err
	}
	return resp.CountResult.Count, nil
}

// Explain returns the driver's query plan description for q.
func (c *RpcClient) Explain(sessionID string, q dbvalue.QueryRequest) (string, error) {
	resp, err := c.call(&sessionID, protocol.RequestBody{
		Kind:    protocol.ReqExplain,
		Execute: &protocol.ExecuteRequest{Query: q},
	})
	if err != nil {
		return "", err
	}
	if err := expectKind(resp, protocol.RespExplainResult); err != nil {
		return "", err
	}
	return resp.ExplainResult.Plan, nil
}

// DescribeTable returns a table's column metadata.
func (c *RpcClient) DescribeTable(sessionID string, database, schemaName *string, table string) ([]schema.ColumnInfo, error) {
	resp, err := c.call(&sessionID, protocol.RequestBody{
		Kind:          protocol.ReqDescribeTable,
		DescribeTable: &protocol.TableRequest{Database: database, Schema: schemaName, Name: table},
	})
	if err != nil {
		return nil, err
	}
	if err := expectKind(resp, protocol.RespDescribeResult); err != nil {
		return nil, err
	}
	return resp.DescribeResult.Columns, nil
}

func (c *RpcClient) crudCall(sessionID string, body protocol.RequestBody) (dbvalue.CrudResult, error) {
	resp, err := c.call(&sessionID, body)
	if err != nil {
		return dbvalue.CrudResult{}, err
	}
	if err := expectKind(resp, protocol.RespCrudResult); err != nil {
		return dbvalue.CrudResult{}, err
	}
	return resp.CrudResult.Result, nil
}

// UpdateRow patches a row identified by patch.Identity.
func (c *RpcClient) UpdateRow(sessionID string, patch dbvalue.RowPatch) (dbvalue.CrudResult, error) {
	return c.crudCall(sessionID, protocol.RequestBody{Kind: protocol.ReqUpdateRow, UpdateRow: &patch})
}

// InsertRow inserts a new row.
func (c *RpcClient) InsertRow(sessionID string, ins dbvalue.RowInsert) (dbvalue.CrudResult, error) {
	return c.crudCall(sessionID, protocol.RequestBody{Kind: protocol.ReqInsertRow, InsertRow: &ins})
}

// DeleteRow deletes a row identified by del.Identity.
func (c *RpcClient) DeleteRow(sessionID string, del dbvalue.RowDelete) (dbvalue.CrudResult, error) {
	return c.crudCall(sessionID, protocol.RequestBody{Kind: protocol.ReqDeleteRow, DeleteRow: &del})
}

// UpdateDocument patches a document identified by upd.DocumentID.
func (c *RpcClient) UpdateDocument(sessionID string, upd dbvalue.DocumentUpdate) (dbvalue.CrudResult, error) {
	return c.crudCall(sessionID, protocol.RequestBody{Kind: protocol.ReqUpdateDocument, UpdateDocument: &upd})
}

// InsertDocument inserts a new document.
func (c *RpcClient) InsertDocument(sessionID string, ins dbvalue.DocumentInsert) (dbvalue.CrudResult, error) {
	return c.crudCall(sessionID, protocol.RequestBody{Kind: protocol.ReqInsertDocument, InsertDocument: &ins})
}

// DeleteDocument deletes a document identified by del.DocumentID.
func (c *RpcClient) DeleteDocument(sessionID string, del dbvalue.DocumentDelete) (dbvalue.CrudResult, error) {
	return c.crudCall(sessionID, protocol.RequestBody{Kind: protocol.ReqDeleteDocument, DeleteDocument: &del})
}

// SchemaTypes lists custom types declared in the given scope.
func (c *RpcClient) SchemaTypes(sessionID string, database, schemaName *string) ([]schema.CustomTypeInfo, error) {
	resp, err := c.call(&sessionID, protocol.RequestBody{
		Kind:        protocol.ReqSchemaTypes,
		SchemaScope: &protocol.SchemaScopeRequest{Database: database, Schema: schemaName},
	})
	if err != nil {
		return nil, err
	}
	if err := expectKind(resp, protocol.RespSchemaTypes); err != nil {
		return nil, err
	}
	return resp.SchemaTypes.Types, nil
}

// SchemaIndexes lists indexes declared in the given scope.
func (c *RpcClient) SchemaIndexes(sessionID string, database, schemaName *string) ([]schema.IndexInfo, error) {
	resp, err := c.call(&sessionID, protocol.RequestBody{
		Kind:        protocol.ReqSchemaIndexes,
		SchemaScope: &protocol.SchemaScopeRequest{Database: database, Schema: schemaName},
	})
	if err != nil {
		return nil, err
	}
	if err := expectKind(resp, protocol.RespSchemaIndexes); err != nil {
		return nil, err
	}
	return resp.SchemaIndexes.Indexes, nil
}

// SchemaForeignKeys lists foreign keys declared in the given scope.
func (c *RpcClient) SchemaForeignKeys(sessionID string, database, schemaName *string) ([]schema.ForeignKeyInfo, error) {
	resp, err := c.call(&sessionID, protocol.RequestBody{
		Kind:        protocol.ReqSchemaForeignKeys,
		SchemaScope: &protocol.SchemaScopeRequest{Database: database, Schema: schemaName},
	})
	if err != nil {
		return nil, err
	}
	if err := expectKind(resp, protocol.RespSchemaForeignKeys); err != nil {
		return nil, err
	}
	return resp.SchemaForeignKeys.ForeignKeys, nil
}

// KvCall issues one key-value operation.
func (c *RpcClient) KvCall(sessionID string, req protocol.KvRequest) (*protocol.KvResult, error) {
	resp, err := c.call(&sessionID, protocol.RequestBody{Kind: protocol.ReqKv, Kv: &req})
	if err != nil {
		return nil, err
	}
	if err := expectKind(resp, protocol.RespKv); err != nil {
		return nil, err
	}
	return resp.Kv, nil
}

// CodeGenerators lists the generators the session's driver advertises.
func (c *RpcClient) CodeGenerators(sessionID string) ([]codegen.Info, error) {
	resp, err := c.call(&sessionID, protocol.RequestBody{Kind: protocol.ReqCodeGenerators})
	if err != nil {
		return nil, err
	}
	if err := expectKind(resp, protocol.RespCodeGenerators); err != nil {
		return nil, err
	}
	return resp.CodeGenerators.Generators, nil
}

// GenerateCode invokes one named generator against one table.
func (c *RpcClient) GenerateCode(sessionID, generatorID string, database, schemaName *string, table string) (string, error) {
	resp, err := c.call(&sessionID, protocol.RequestBody{
		Kind: protocol.ReqGenerateCode,
		GenerateCode: &protocol.GenerateCodeRequest{
			GeneratorID: generatorID,
			Database:    database,
			Schema:      schemaName,
			Table:       table,
		},
	})
	if err != nil {
		return "", err
	}
	if err := expectKind(resp, protocol.RespGeneratedCode); err != nil {
		return "", err
	}
	return resp.GeneratedCode.Code, nil
}

// newSessionNonce returns a client-generated identifier suitable for
// correlating retries across a Reconnect; RpcClient itself does not
// require one, but callers building idempotent retry wrappers do.
func newSessionNonce() string { return uuid.NewString() }
