// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// MaxFrameBytes is the largest payload this module accepts; a frame
// declaring a larger length is a protocol error, not just a large
// allocation.
const MaxFrameBytes = 64 << 20 // 64 MiB

// ErrFrameTooLarge is returned by RecvMsg when a frame's declared length
// exceeds MaxFrameBytes.
var ErrFrameTooLarge = errors.New("protocol: frame exceeds max frame size")

// ErrEmptyFrame is returned by RecvMsg when a frame declares a zero
// length; zero-length frames never carry a valid envelope.
var ErrEmptyFrame = errors.New("protocol: frame has zero length")

// SendMsg serializes v (an envelope) to msgpack, then writes a 4-byte
// little-endian length prefix followed by the payload in one Write.
// Writers MUST NOT flush partial frames — this function always writes
// the whole frame or returns an error before writing anything.
func SendMsg(w io.Writer, v any) error {
	payload, err := msgpack.Marshal(v)
	if err != nil {
		return fmt.Errorf("protocol: encode envelope: %w", err)
	}
	if len(payload) > MaxFrameBytes {
		return ErrFrameTooLarge
	}
	frame := make([]byte, 4+len(payload))
	binary.LittleEndian.PutUint32(frame[:4], uint32(len(payload)))
	copy(frame[4:], payload)
	_, err = w.Write(frame)
	if err != nil {
		return fmt.Errorf("protocol: write frame: %w", err)
	}
	return nil
}

// RecvMsg reads exactly one frame from r and decodes its payload into v.
// An EOF while reading the 4-byte length header is a clean disconnect and
// is returned as io.EOF unchanged; an EOF partway through the length
// header or the payload is a fatal I/O error (io.ErrUnexpectedEOF).
func RecvMsg(r io.Reader, v any) error {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		if err == io.EOF {
			return io.EOF
		}
		return fmt.Errorf("protocol: read frame length: %w", err)
	}
	n := binary.LittleEndian.Uint32(lenBuf[:])
	if n == 0 {
		return ErrEmptyFrame
	}
	if n > MaxFrameBytes {
		return ErrFrameTooLarge
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return fmt.Errorf("protocol: read frame payload: %w", err)
	}
	if err := msgpack.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("protocol: decode envelope: %w", err)
	}
	return nil
}
