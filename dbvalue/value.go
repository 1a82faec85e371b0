// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

// Package dbvalue defines the normalized value representation and
// query/CRUD request and result types shared across every Connection
// implementation.
package dbvalue

import (
	"bytes"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Kind discriminates which field of Value is populated.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindText
	KindBytes
	KindJSON
)

// Value is a tagged union over the primitive types every driver's result
// rows are normalized into before crossing the wire. Exactly one field is
// meaningful, selected by Kind; callers switch on Kind rather than probe
// fields directly, matching the teacher's typed-field-per-SQL-type
// dispatch in the protocol layer.
type Value struct {
	kind  Kind
	b     bool
	i     int64
	f     float64
	text  string
	bytes []byte
}

// Null is the shared zero Value.
var Null = Value{kind: KindNull}

func Bool(v bool) Value          { return Value{kind: KindBool, b: v} }
func Int(v int64) Value          { return Value{kind: KindInt, i: v} }
func Float(v float64) Value      { return Value{kind: KindFloat, f: v} }
func Text(v string) Value        { return Value{kind: KindText, text: v} }
func Bytes(v []byte) Value       { return Value{kind: KindBytes, bytes: v} }
func JSON(v string) Value        { return Value{kind: KindJSON, text: v} }

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// BoolValue, IntValue, FloatValue, TextValue, BytesValue return the
// underlying payload. Callers must check Kind first; calling the wrong
// accessor returns the zero value for that type rather than panicking.
func (v Value) BoolValue() bool    { return v.b }
func (v Value) IntValue() int64    { return v.i }
func (v Value) FloatValue() float64 { return v.f }
func (v Value) TextValue() string  { return v.text }
func (v Value) BytesValue() []byte { return v.bytes }
func (v Value) JSONValue() string  { return v.text }

// Equal reports value equality within a Kind; values of differing Kind are
// never equal, including Null compared to anything.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindText, KindJSON:
		return v.text == other.text
	case KindBytes:
		return bytes.Equal(v.bytes, other.bytes)
	default:
		return false
	}
}

// Less defines a total order over Value for sorting mixed-kind columns:
// Nulls sort last, then ordering proceeds by Kind, then by payload within
// a Kind.
func (v Value) Less(other Value) bool {
	if v.kind == KindNull || other.kind == KindNull {
		if v.kind == other.kind {
			return false
		}
		return other.kind == KindNull
	}
	if v.kind != other.kind {
		return v.kind < other.kind
	}
	switch v.kind {
	case KindBool:
		return !v.b && other.b
	case KindInt:
		return v.i < other.i
	case KindFloat:
		return v.f < other.f
	case KindText, KindJSON:
		return v.text < other.text
	case KindBytes:
		return bytes.Compare(v.bytes, other.bytes) < 0
	default:
		return false
	}
}

// EncodeMsgpack implements msgpack.CustomEncoder. Value's fields are
// unexported (the tagged-union discipline lives in the constructors and
// accessors, not in field visibility), so the default struct encoding
// would see no fields at all; this writes the kind followed by the
// payload as consecutive msgpack values.
func (v Value) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeInt(int64(v.kind)); err != nil {
		return err
	}
	switch v.kind {
	case KindNull:
		return enc.EncodeNil()
	case KindBool:
		return enc.EncodeBool(v.b)
	case KindInt:
		return enc.EncodeInt(v.i)
	case KindFloat:
		return enc.EncodeFloat64(v.f)
	case KindText, KindJSON:
		return enc.EncodeString(v.text)
	case KindBytes:
		return enc.EncodeBytes(v.bytes)
	default:
		return fmt.Errorf("dbvalue: encode: unknown kind %d", v.kind)
	}
}

// DecodeMsgpack implements msgpack.CustomDecoder, the inverse of
// EncodeMsgpack.
func (v *Value) DecodeMsgpack(dec *msgpack.Decoder) error {
	kind, err := dec.DecodeInt()
	if err != nil {
		return err
	}
	v.kind = Kind(kind)
	switch v.kind {
	case KindNull:
		return dec.DecodeNil()
	case KindBool:
		v.b, err = dec.DecodeBool()
	case KindInt:
		v.i, err = dec.DecodeInt64()
	case KindFloat:
		v.f, err = dec.DecodeFloat64()
	case KindText, KindJSON:
		v.text, err = dec.DecodeString()
	case KindBytes:
		v.bytes, err = dec.DecodeBytes()
	default:
		return fmt.Errorf("dbvalue: decode: unknown kind %d", v.kind)
	}
	return err
}

// ColumnMeta describes one column of a QueryResult.
type ColumnMeta struct {
	Name     string
	TypeName string
}

// ResultShape discriminates the payload carried by a QueryResult.
type ResultShape int

const (
	ShapeTable ResultShape = iota
	ShapeText
	ShapeRaw
)

// QueryRequest is a driver-agnostic query invocation.
type QueryRequest struct {
	SQL      string
	Database *string
	Limit    *int
	Timeout  *time.Duration
}

// QueryResult is the normalized outcome of executing a QueryRequest.
// Invariant: ShapeTable implies every row has len(row) == len(Columns).
type QueryResult struct {
	Shape         ResultShape
	Columns       []ColumnMeta
	Rows          [][]Value
	AffectedRows  *int64
	ExecutionTime time.Duration
	TextBody      *string
	RawBytes      []byte
}
