// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

package protocol

import "github.com/dbflux/dbflux/kv"

// KvOp discriminates which KeyValueApi operation a KvRequest carries.
type KvOp int

const (
	KvScanKeys KvOp = iota
	KvGetKey
	KvSetKey
	KvDeleteKey
	KvExistsKey
	KvKeyType
	KvKeyTtl
	KvExpireKey
	KvPersistKey
	KvRenameKey
	KvBulkGet
	KvHashSet
	KvHashDelete
	KvListPush
	KvListSet
	KvListRemove
	KvSetAdd
	KvSetRemove
	KvZSetAdd
	KvZSetRemove
	KvStreamAdd
	KvStreamDelete
)

// KvRenameRequest renames oldKey to newKey.
type KvRenameRequest struct {
	OldKey string `msgpack:"old_key"`
	NewKey string `msgpack:"new_key"`
}

// KvExpireRequest sets a TTL on Key.
type KvExpireRequest struct {
	Key        string `msgpack:"key"`
	TTLSeconds int64  `msgpack:"ttl_seconds"`
}

// KvKeyRequest names a single key for the simple single-key operations
// (GetKey, DeleteKey, ExistsKey, KeyType, KeyTtl, PersistKey).
type KvKeyRequest struct {
	Key string `msgpack:"key"`
}

// KvBulkGetRequest names several keys, returning results in the same
// order.
type KvBulkGetRequest struct {
	Keys []string `msgpack:"keys"`
}

// KvRequest is the envelope for every Kv* RequestBody variant: exactly
// one of the typed fields is populated, selected by Op.
type KvRequest struct {
	Op KvOp `msgpack:"op"`

	ScanKeys     *kv.ScanRequest         `msgpack:"scan_keys,omitempty"`
	Key          *KvKeyRequest           `msgpack:"key,omitempty"`
	BulkGet      *KvBulkGetRequest       `msgpack:"bulk_get,omitempty"`
	SetKey       *kv.SetKeyRequest       `msgpack:"set_key,omitempty"`
	Rename       *KvRenameRequest        `msgpack:"rename,omitempty"`
	Expire       *KvExpireRequest        `msgpack:"expire,omitempty"`
	HashSet      *kv.HashSetRequest      `msgpack:"hash_set,omitempty"`
	HashDelete   *kv.HashDeleteRequest   `msgpack:"hash_delete,omitempty"`
	ListPush     *kv.ListPushRequest     `msgpack:"list_push,omitempty"`
	ListSet      *kv.ListSetRequest      `msgpack:"list_set,omitempty"`
	ListRemove   *kv.ListRemoveRequest   `msgpack:"list_remove,omitempty"`
	SetAdd       *kv.SetAddRequest       `msgpack:"set_add,omitempty"`
	SetRemove    *kv.SetRemoveRequest    `msgpack:"set_remove,omitempty"`
	ZSetAdd      *kv.ZSetAddRequest      `msgpack:"zset_add,omitempty"`
	ZSetRemove   *kv.ZSetRemoveRequest   `msgpack:"zset_remove,omitempty"`
	StreamAdd    *kv.StreamAddRequest    `msgpack:"stream_add,omitempty"`
	StreamDelete *kv.StreamDeleteRequest `msgpack:"stream_delete,omitempty"`
}

// KvResult is the envelope for every Kv* success ResponseBody variant.
type KvResult struct {
	Op KvOp `msgpack:"op"`

	ScanPage     *kv.ScanPage    `msgpack:"scan_page,omitempty"`
	GetResult    *kv.GetResult   `msgpack:"get_result,omitempty"`
	BulkResults  []*kv.GetResult `msgpack:"bulk_results,omitempty"`
	Bool         *bool           `msgpack:"bool,omitempty"`
	KeyType      *kv.KeyType     `msgpack:"key_type,omitempty"`
	TTLSeconds   *int64          `msgpack:"ttl_seconds,omitempty"`
	StreamID     *string         `msgpack:"stream_id,omitempty"`
	RemovedCount *int64          `msgpack:"removed_count,omitempty"`
}
