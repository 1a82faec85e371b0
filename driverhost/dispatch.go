// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

package driverhost

import (
	"github.com/google/uuid"

	"github.com/dbflux/dbflux/coredb"
	"github.com/dbflux/dbflux/dbvalue"
	"github.com/dbflux/dbflux/protocol"
	"github.com/dbflux/dbflux/schema"
)

func newSessionID() string { return uuid.NewString() }

// dispatchConnection maps every RequestKind other than Hello/OpenSession/
// CloseSession to the matching coredb.Connection method, per spec.md
// §4.8 step 3's final bullet.
func dispatchConnection(conn coredb.Connection, body protocol.RequestBody) (protocol.ResponseBody, string) {
	switch body.Kind {
	case protocol.ReqPing:
		if err := conn.Ping(); err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return protocol.ResponseBody{Kind: protocol.RespPong}, ""

	case protocol.ReqSchema:
		snap, err := conn.Schema()
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return protocol.ResponseBody{Kind: protocol.RespSchema, Schema: &snap}, ""

	case protocol.ReqExecute:
		result, err := conn.Execute(body.Execute.Query)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return protocol.ResponseBody{Kind: protocol.RespExecuteResult, ExecuteResult: &protocol.ExecuteResultResponse{Result: result}}, ""

	case protocol.ReqExecuteWithHandle:
		handle, result, err := conn.ExecuteWithHandle(body.Execute.Query)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return protocol.ResponseBody{
			Kind: protocol.RespExecuteWithHandle,
			ExecuteWithHandle: &protocol.ExecuteWithHandleResponse{HandleID: string(handle), Result: result},
		}, ""

	case protocol.ReqCancel:
		if err := conn.Cancel(coredb.Handle(body.Cancel.HandleID)); err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return protocol.ResponseBody{Kind: protocol.RespCancelled}, ""

	case protocol.ReqCancelActive:
		if err := conn.CancelActive(); err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return protocol.ResponseBody{Kind: protocol.RespCancelled}, ""

	case protocol.ReqCleanupAfterCancel:
		if err := conn.CleanupAfterCancel(); err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return protocol.ResponseBody{Kind: protocol.RespPong}, ""

	case protocol.ReqListDatabases:
		dbs, err := conn.ListDatabases()
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return protocol.ResponseBody{Kind: protocol.RespDatabaseList, DatabaseList: &protocol.DatabaseListResponse{Databases: dbs}}, ""

	case protocol.ReqSchemaForDatabase:
		info, err := conn.SchemaForDatabase(body.SchemaForDatabase.Database)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		snap := schemaFromDbInfo(info)
		return protocol.ResponseBody{Kind: protocol.RespSchema, Schema: &snap}, ""

	case protocol.ReqTableDetails:
		t := body.TableDetails
		table, err := conn.TableDetails(t.Database, t.Schema, t.Name)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return protocol.ResponseBody{Kind: protocol.RespTableDetails, TableDetails: &protocol.TableDetailsResponse{Table: table}}, ""

	case protocol.ReqViewDetails:
		v := body.ViewDetails
		view, err := conn.ViewDetails(v.Database, v.Schema, v.Name)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return protocol.ResponseBody{Kind: protocol.RespViewDetails, ViewDetails: &protocol.ViewDetailsResponse{View: view}}, ""

	case protocol.ReqSetActiveDatabase:
		if err := conn.SetActiveDatabase(body.SetActiveDatabase.Database); err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return protocol.ResponseBody{Kind: protocol.RespActiveDatabaseSet}, ""

	case protocol.ReqActiveDatabase:
		db, err := conn.ActiveDatabase()
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return protocol.ResponseBody{Kind: protocol.RespActiveDatabase, ActiveDatabase: &protocol.ActiveDatabaseResponse{Database: db}}, ""

	case protocol.ReqBrowseTable:
		result, err := conn.BrowseTable(body.BrowseTable.Browse)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return protocol.ResponseBody{Kind: protocol.RespBrowseResult, BrowseResult: &protocol.BrowseResultResponse{Result: result}}, ""

	case protocol.ReqCountTable:
		count, err := conn.CountTable(body.BrowseTable.Browse)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return protocol.ResponseBody{Kind: protocol.RespCountResult, CountResult: &protocol.CountResultResponse{Count: count}}, ""

	case protocol.ReqBrowseCollection:
		result, err := conn.BrowseCollection(body.BrowseCollection.Browse)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return protocol.ResponseBody{Kind: protocol.RespBrowseResult, BrowseResult: &protocol.BrowseResultResponse{Result: result}}, ""

	case protocol.ReqCountCollection:
		count, err := conn.CountCollection(body.BrowseCollection.Browse)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return protocol.ResponseBody{Kind: protocol.RespCountResult, CountResult: &protocol.CountResultResponse{Count: count}}, ""

	case protocol.ReqExplain:
		plan, err := conn.Explain(body.Execute.Query)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return protocol.ResponseBody{Kind: protocol.RespExplainResult, ExplainResult: &protocol.ExplainResultResponse{Plan: plan}}, ""

	case protocol.ReqDescribeTable:
		d := body.DescribeTable
		cols, err := conn.DescribeTable(d.Database, d.Schema, d.Name)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return protocol.ResponseBody{Kind: protocol.RespDescribeResult, DescribeResult: &protocol.DescribeResultResponse{Columns: cols}}, ""

	case protocol.ReqUpdateRow:
		result, err := conn.UpdateRow(*body.UpdateRow)
		return crudResponse(result, err)
	case protocol.ReqInsertRow:
		result, err := conn.InsertRow(*body.InsertRow)
		return crudResponse(result, err)
	case protocol.ReqDeleteRow:
		result, err := conn.DeleteRow(*body.DeleteRow)
		return crudResponse(result, err)
	case protocol.ReqUpdateDocument:
		result, err := conn.UpdateDocument(*body.UpdateDocument)
		return crudResponse(result, err)
	case protocol.ReqInsertDocument:
		result, err := conn.InsertDocument(*body.InsertDocument)
		return crudResponse(result, err)
	case protocol.ReqDeleteDocument:
		result, err := conn.DeleteDocument(*body.DeleteDocument)
		return crudResponse(result, err)

	case protocol.ReqSchemaTypes:
		types, err := conn.SchemaTypes(body.SchemaScope.Database, body.SchemaScope.Schema)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return protocol.ResponseBody{Kind: protocol.RespSchemaTypes, SchemaTypes: &protocol.SchemaTypesResponse{Types: types}}, ""

	case protocol.ReqSchemaIndexes:
		indexes, err := conn.SchemaIndexes(body.SchemaScope.Database, body.SchemaScope.Schema)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return protocol.ResponseBody{Kind: protocol.RespSchemaIndexes, SchemaIndexes: &protocol.SchemaIndexesResponse{Indexes: indexes}}, ""

	case protocol.ReqSchemaForeignKeys:
		fks, err := conn.SchemaForeignKeys(body.SchemaScope.Database, body.SchemaScope.Schema)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return protocol.ResponseBody{Kind: protocol.RespSchemaForeignKeys, SchemaForeignKeys: &protocol.SchemaForeignKeysResponse{ForeignKeys: fks}}, ""

	case protocol.ReqKv:
		return dispatchKv(conn, body.Kv)

	case protocol.ReqCodeGenerators:
		return protocol.ResponseBody{Kind: protocol.RespCodeGenerators, CodeGenerators: &protocol.CodeGeneratorsResponse{Generators: conn.CodeGenerators()}}, ""

	case protocol.ReqGenerateCode:
		g := body.GenerateCode
		code, err := conn.GenerateCode(g.GeneratorID, g.Database, g.Schema, g.Table)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return protocol.ResponseBody{Kind: protocol.RespGeneratedCode, GeneratedCode: &protocol.GeneratedCodeResponse{Code: code}}, ""

	default:
		return errorResponse(protocol.UnsupportedMethod, "unsupported request kind", false)
	}
}

// schemaFromDbInfo wraps a single scope's DbSchemaInfo as the Snapshot
// shape RespSchema carries, for the scoped SchemaForDatabase variant.
func schemaFromDbInfo(info schema.DbSchemaInfo) schema.Snapshot {
	return schema.Snapshot{Schemas: []schema.DbSchemaInfo{info}}
}

func crudResponse(result dbvalue.CrudResult, err error) (protocol.ResponseBody, string) {
	if err != nil {
		return mapDbErrResponse(asDbError(err))
	}
	return protocol.ResponseBody{Kind: protocol.RespCrudResult, CrudResult: &protocol.CrudResultResponse{Result: result}}, ""
}

func dispatchKv(conn coredb.Connection, req *protocol.KvRequest) (protocol.ResponseBody, string) {
	api, ok := conn.KeyValueAPI()
	if !ok {
		return errorResponse(protocol.UnsupportedMethod, "connection has no key-value capability", false)
	}
	if req == nil {
		return errorResponse(protocol.InvalidRequest, "missing kv payload", false)
	}

	switch req.Op {
	case protocol.KvScanKeys:
		page, err := api.ScanKeys(*req.ScanKeys)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return kvResponse(protocol.KvScanKeys, &protocol.KvResult{Op: protocol.KvScanKeys, ScanPage: &page})

	case protocol.KvGetKey:
		result, err := api.GetKey(req.Key.Key)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return kvResponse(protocol.KvGetKey, &protocol.KvResult{Op: protocol.KvGetKey, GetResult: result})

	case protocol.KvBulkGet:
		results, err := api.BulkGet(req.BulkGet.Keys)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return kvResponse(protocol.KvBulkGet, &protocol.KvResult{Op: protocol.KvBulkGet, BulkResults: results})

	case protocol.KvSetKey:
		if err := api.SetKey(*req.SetKey); err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return kvResponse(protocol.KvSetKey, &protocol.KvResult{Op: protocol.KvSetKey})

	case protocol.KvDeleteKey:
		ok, err := api.DeleteKey(req.Key.Key)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return kvResponse(protocol.KvDeleteKey, &protocol.KvResult{Op: protocol.KvDeleteKey, Bool: &ok})

	case protocol.KvExistsKey:
		ok, err := api.ExistsKey(req.Key.Key)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return kvResponse(protocol.KvExistsKey, &protocol.KvResult{Op: protocol.KvExistsKey, Bool: &ok})

	case protocol.KvKeyType:
		t, err := api.KeyType(req.Key.Key)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return kvResponse(protocol.KvKeyType, &protocol.KvResult{Op: protocol.KvKeyType, KeyType: &t})

	case protocol.KvKeyTtl:
		ttl, err := api.KeyTTL(req.Key.Key)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return kvResponse(protocol.KvKeyTtl, &protocol.KvResult{Op: protocol.KvKeyTtl, TTLSeconds: ttl})

	case protocol.KvExpireKey:
		ok, err := api.ExpireKey(req.Expire.Key, req.Expire.TTLSeconds)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return kvResponse(protocol.KvExpireKey, &protocol.KvResult{Op: protocol.KvExpireKey, Bool: &ok})

	case protocol.KvPersistKey:
		ok, err := api.PersistKey(req.Key.Key)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return kvResponse(protocol.KvPersistKey, &protocol.KvResult{Op: protocol.KvPersistKey, Bool: &ok})

	case protocol.KvRenameKey:
		if err := api.RenameKey(req.Rename.OldKey, req.Rename.NewKey); err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return kvResponse(protocol.KvRenameKey, &protocol.KvResult{Op: protocol.KvRenameKey})

	case protocol.KvHashSet:
		ok, err := api.HashSet(*req.HashSet)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return kvResponse(protocol.KvHashSet, &protocol.KvResult{Op: protocol.KvHashSet, Bool: &ok})

	case protocol.KvHashDelete:
		ok, err := api.HashDelete(*req.HashDelete)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return kvResponse(protocol.KvHashDelete, &protocol.KvResult{Op: protocol.KvHashDelete, Bool: &ok})

	case protocol.KvListPush:
		ok, err := api.ListPush(*req.ListPush)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return kvResponse(protocol.KvListPush, &protocol.KvResult{Op: protocol.KvListPush, Bool: &ok})

	case protocol.KvListSet:
		ok, err := api.ListSet(*req.ListSet)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return kvResponse(protocol.KvListSet, &protocol.KvResult{Op: protocol.KvListSet, Bool: &ok})

	case protocol.KvListRemove:
		ok, err := api.ListRemove(*req.ListRemove)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return kvResponse(protocol.KvListRemove, &protocol.KvResult{Op: protocol.KvListRemove, Bool: &ok})

	case protocol.KvSetAdd:
		ok, err := api.SetAdd(*req.SetAdd)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return kvResponse(protocol.KvSetAdd, &protocol.KvResult{Op: protocol.KvSetAdd, Bool: &ok})

	case protocol.KvSetRemove:
		ok, err := api.SetRemove(*req.SetRemove)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return kvResponse(protocol.KvSetRemove, &protocol.KvResult{Op: protocol.KvSetRemove, Bool: &ok})

	case protocol.KvZSetAdd:
		ok, err := api.ZSetAdd(*req.ZSetAdd)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return kvResponse(protocol.KvZSetAdd, &protocol.KvResult{Op: protocol.KvZSetAdd, Bool: &ok})

	case protocol.KvZSetRemove:
		ok, err := api.ZSetRemove(*req.ZSetRemove)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return kvResponse(protocol.KvZSetRemove, &protocol.KvResult{Op: protocol.KvZSetRemove, Bool: &ok})

	case protocol.KvStreamAdd:
		id, err := api.StreamAdd(*req.StreamAdd)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return kvResponse(protocol.KvStreamAdd, &protocol.KvResult{Op: protocol.KvStreamAdd, StreamID: &id})

	case protocol.KvStreamDelete:
		count, err := api.StreamDelete(*req.StreamDelete)
		if err != nil {
			return mapDbErrResponse(asDbError(err))
		}
		return kvResponse(protocol.KvStreamDelete, &protocol.KvResult{Op: protocol.KvStreamDelete, RemovedCount: &count})

	default:
		return errorResponse(protocol.UnsupportedMethod, "unsupported kv op", false)
	}
}

func kvResponse(op protocol.KvOp, result *protocol.KvResult) (protocol.ResponseBody, string) {
	return protocol.ResponseBody{Kind: protocol.RespKv, Kv: result}, ""
}
