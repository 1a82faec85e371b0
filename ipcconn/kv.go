// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

package ipcconn

import (
	"github.com/dbflux/dbflux/dberr"
	"github.com/dbflux/dbflux/kv"
	"github.com/dbflux/dbflux/protocol"
)

func (c *Connection) kvCall(op protocol.KvOp, req protocol.KvRequest) (*protocol.KvResult, error) {
	req.Op = op
	res, err := c.client.KvCall(c.sessionID, req)
	return res, intoDbErr(err)
}

func (c *Connection) kvBool(op protocol.KvOp, req protocol.KvRequest) (bool, error) {
	res, err := c.kvCall(op, req)
	if err != nil {
		return false, err
	}
	if res.Bool == nil {
		return false, dberr.New(dberr.QueryFailed, "ipcconn: kv response missing bool result")
	}
	return *res.Bool, nil
}

func (c *Connection) kvOK(op protocol.KvOp, req protocol.KvRequest) error {
	_, err := c.kvCall(op, req)
	return err
}

func (c *Connection) ScanKeys(req kv.ScanRequest) (kv.ScanPage, error) {
	res, err := c.kvCall(protocol.KvScanKeys, protocol.KvRequest{ScanKeys: &req})
	if err != nil {
		return kv.ScanPage{}, err
	}
	if res.ScanPage == nil {
		return kv.ScanPage{}, dberr.New(dberr.QueryFailed, "ipcconn: kv response missing scan page")
	}
	return *res.ScanPage, nil
}

func (c *Connection) GetKey(key string) (*kv.GetResult, error) {
	res, err := c.kvCall(protocol.KvGetKey, protocol.KvRequest{Key: &protocol.KvKeyRequest{Key: key}})
	if err != nil {
		return nil, err
	}
	return res.GetResult, nil
}

func (c *Connection) BulkGet(keys []string) ([]*kv.GetResult, error) {
	res, err := c.kvCall(protocol.KvBulkGet, protocol.KvRequest{BulkGet: &protocol.KvBulkGetRequest{Keys: keys}})
	if err != nil {
		return nil, err
	}
	return res.BulkResults, nil
}

func (c *Connection) SetKey(req kv.SetKeyRequest) error {
	return c.kvOK(protocol.KvSetKey, protocol.KvRequest{SetKey: &req})
}

func (c *Connection) DeleteKey(key string) (bool, error) {
	return c.kvBool(protocol.KvDeleteKey, protocol.KvRequest{Key: &protocol.KvKeyRequest{Key: key}})
}

func (c *Connection) ExistsKey(key string) (bool, error) {
	return c.kvBool(protocol.KvExistsKey, protocol.KvRequest{Key: &protocol.KvKeyRequest{Key: key}})
}

func (c *Connection) KeyType(key string) (kv.KeyType, error) {
	res, err := c.kvCall(protocol.KvKeyType, protocol.KvRequest{Key: &protocol.KvKeyRequest{Key: key}})
	if err != nil {
		return 0, err
	}
	if res.KeyType == nil {
		return 0, dberr.New(dberr.QueryFailed, "ipcconn: kv response missing key type")
	}
	return *res.KeyType, nil
}

func (c *Connection) KeyTTL(key string) (*int64, error) {
	res, err := c.kvCall(protocol.KvKeyTtl, protocol.KvRequest{Key: &protocol.KvKeyRequest{Key: key}})
	if err != nil {
		return nil, err
	}
	return res.TTLSeconds, nil
}

func (c *Connection) ExpireKey(key string, ttlSeconds int64) (bool, error) {
	return c.kvBool(protocol.KvExpireKey, protocol.KvRequest{Expire: &protocol.KvExpireRequest{Key: key, TTLSeconds: ttlSeconds}})
}

func (c *Connection) PersistKey(key string) (bool, error) {
	return c.kvBool(protocol.KvPersistKey, protocol.KvRequest{Key: &protocol.KvKeyRequest{Key: key}})
}

func (c *Connection) RenameKey(oldKey, newKey string) error {
	return c.kvOK(protocol.KvRenameKey, protocol.KvRequest{Rename: &protocol.KvRenameRequest{OldKey: oldKey, NewKey: newKey}})
}

func (c *Connection) HashSet(req kv.HashSetRequest) (bool, error) {
	return c.kvBool(protocol.KvHashSet, protocol.KvRequest{HashSet: &req})
}

func (c *Connection) HashDelete(req kv.HashDeleteRequest) (bool, error) {
	return c.kvBool(protocol.KvHashDelete, protocol.KvRequest{HashDelete: &req})
}

func (c *Connection) ListPush(req kv.ListPushRequest) (bool, error) {
	return c.kvBool(protocol.KvListPush, protocol.KvRequest{ListPush: &req})
}

func (c *Connection) ListSet(req kv.ListSetRequest) (bool, error) {
	return c.kvBool(protocol.KvListSet, protocol.KvRequest{ListSet: &req})
}

func (c *Connection) ListRemove(req kv.ListRemoveRequest) (bool, error) {
	return c.kvBool(protocol.KvListRemove, protocol.KvRequest{ListRemove: &req})
}

func (c *Connection) SetAdd(req kv.SetAddRequest) (bool, error) {
	return c.kvBool(protocol.KvSetAdd, protocol.KvRequest{SetAdd: &req})
}

func (c *Connection) SetRemove(req kv.SetRemoveRequest) (bool, error) {
	return c.kvBool(protocol.KvSetRemove, protocol.KvRequest{SetRemove: &req})
}

func (c *Connection) ZSetAdd(req kv.ZSetAddRequest) (bool, error) {
	return c.kvBool(protocol.KvZSetAdd, protocol.KvRequest{ZSetAdd: &req})
}

func (c *Connection) ZSetRemove(req kv.ZSetRemoveRequest) (bool, error) {
	return c.kvBool(protocol.KvZSetRemove, protocol.KvRequest{ZSetRemove: &req})
}

func (c *Connection) StreamAdd(req kv.StreamAddRequest) (string, error) {
	res, err := c.kvCall(protocol.KvStreamAdd, protocol.KvRequest{StreamAdd: &req})
	if err != nil {
		return "", err
	}
	if res.StreamID == nil {
		return "", dberr.New(dberr.QueryFailed, "ipcconn: kv response missing stream id")
	}
	return *res.StreamID, nil
}

func (c *Connection) StreamDelete(req kv.StreamDeleteRequest) (int64, error) {
	res, err := c.kvCall(protocol.KvStreamDelete, protocol.KvRequest{StreamDelete: &req})
	if err != nil {
		return 0, err
	}
	if res.RemovedCount == nil {
		return 0, dberr.New(dberr.QueryFailed, "ipcconn: kv response missing removed count")
	}
	return *res.RemovedCount, nil
}

var _ kv.KeyValueApi = (*Connection)(nil)
