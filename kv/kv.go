// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

// Package kv defines the request/response types for the optional
// key-value capability a Connection may expose.
package kv

// KeyType discriminates the shape of value stored under a key.
type KeyType int

const (
	TypeString KeyType = iota
	TypeHash
	TypeList
	TypeSet
	TypeZSet
	TypeStream
)

// ScanRequest pages through a keyspace. Cursor is opaque and
// backend-defined; the zero value starts a fresh scan.
type ScanRequest struct {
	Keyspace *string
	Cursor   string
	Pattern  *string
	Limit    int
}

// ScanPage is one page of a key scan. Done==true implies NextCursor is not
// meant to be reused for a further scan.
type ScanPage struct {
	Keys       []string
	NextCursor string
	Done       bool
}

// GetResult carries a key's value in the shape matching its KeyType.
type GetResult struct {
	Type   KeyType
	String *string
	Hash   map[string]string
	List   []string
	Set    []string
	ZSet   map[string]float64
	Stream []StreamEntry
}

// StreamEntry is one entry of a stream-typed key.
type StreamEntry struct {
	ID     string
	Fields map[string]string
}

// SetCondition constrains when SetKey is allowed to take effect.
type SetCondition int

const (
	Always SetCondition = iota
	IfNotExists
	IfExists
)

// SetKeyRequest sets a string key's value.
type SetKeyRequest struct {
	Key        string
	Value      []byte
	TTLSeconds *int64
	Condition  SetCondition
}

// ListEnd discriminates which end of a list ListPush inserts at.
type ListEnd int

const (
	Head ListEnd = iota
	Tail
)

// StreamEntryID discriminates how StreamAdd picks the new entry's id.
type StreamEntryID int

const (
	StreamIDAuto StreamEntryID = iota
	StreamIDExplicit
)

// HashSetRequest upserts one or more fields of a hash key.
type HashSetRequest struct {
	Key    string
	Fields map[string]string
}

// HashDeleteRequest removes the named fields from a hash key.
type HashDeleteRequest struct {
	Key    string
	Fields []string
}

// ListPushRequest appends Values to the Head or Tail of a list key.
type ListPushRequest struct {
	Key    string
	End    ListEnd
	Values []string
}

// ListSetRequest overwrites the element at Index of a list key.
type ListSetRequest struct {
	Key   string
	Index int64
	Value string
}

// ListRemoveRequest removes up to Count occurrences of Value from a list
// key (negative Count removes from the tail, matching Redis LREM).
type ListRemoveRequest struct {
	Key   string
	Count int64
	Value string
}

// SetAddRequest adds Members to a set key.
type SetAddRequest struct {
	Key     string
	Members []string
}

// SetRemoveRequest removes Members from a set key.
type SetRemoveRequest struct {
	Key     string
	Members []string
}

// ZSetMember is one member/score pair for ZSetAdd.
type ZSetMember struct {
	Member string
	Score  float64
}

// ZSetAddRequest adds or updates scored members of a sorted-set key.
type ZSetAddRequest struct {
	Key     string
	Members []ZSetMember
}

// ZSetRemoveRequest removes Members from a sorted-set key.
type ZSetRemoveRequest struct {
	Key     string
	Members []string
}

// StreamAddRequest appends one entry to a stream key.
type StreamAddRequest struct {
	Key        string
	IDMode     StreamEntryID
	ExplicitID string // used iff IDMode == StreamIDExplicit
	Fields     map[string]string
	MaxLen     *int64
}

// StreamDeleteRequest removes the named entry ids from a stream key.
type StreamDeleteRequest struct {
	Key string
	IDs []string
}

// KeyValueApi is the optional capability exposed by Connection.KeyValueAPI
// when the driver declares dbkind.KeyExpiration/KeyPatternScan support.
// KvKeyTtl's None-vs-"no TTL" ambiguity is intentionally left to each
// driver; callers that need to distinguish "no TTL" from "key missing"
// should call ExistsKey first.
type KeyValueApi interface {
	ScanKeys(req ScanRequest) (ScanPage, error)
	GetKey(key string) (*GetResult, error)
	BulkGet(keys []string) ([]*GetResult, error)
	SetKey(req SetKeyRequest) error
	DeleteKey(key string) (bool, error)
	ExistsKey(key string) (bool, error)
	KeyType(key string) (KeyType, error)
	KeyTTL(key string) (*int64, error)
	ExpireKey(key string, ttlSeconds int64) (bool, error)
	PersistKey(key string) (bool, error)
	RenameKey(oldKey, newKey string) error

	HashSet(req HashSetRequest) (bool, error)
	HashDelete(req HashDeleteRequest) (bool, error)
	ListPush(req ListPushRequest) (bool, error)
	ListSet(req ListSetRequest) (bool, error)
	ListRemove(req ListRemoveRequest) (bool, error)
	SetAdd(req SetAddRequest) (bool, error)
	SetRemove(req SetRemoveRequest) (bool, error)
	ZSetAdd(req ZSetAddRequest) (bool, error)
	ZSetRemove(req ZSetRemoveRequest) (bool, error)
	StreamAdd(req StreamAddRequest) (string, error)
	StreamDelete(req StreamDeleteRequest) (int64, error)
}
