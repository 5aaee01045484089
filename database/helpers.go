// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package database

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/holiman/uint256"
)

const (
	Uint64Size  = 8  // bytes
	Uint256Size = 32 // bytes
)

var errWrongSize = errors.New("value has unexpected size")

func PutUInt64(db KeyValueWriter, key []byte, val uint64) error {
	return db.Put(key, PackUInt64(val))
}

func GetUInt64(db KeyValueReader, key []byte) (uint64, error) {
	b, err := db.Get(key)
	if err != nil {
		return 0, err
	}
	return ParseUInt64(b)
}

func PackUInt64(val uint64) []byte {
	bytes := make([]byte, Uint64Size)
	binary.BigEndian.PutUint64(bytes, val)
	return bytes
}

func ParseUInt64(b []byte) (uint64, error) {
	if len(b) != Uint64Size {
		return 0, fmt.Errorf("%w: expected %d bytes but got %d", errWrongSize, Uint64Size, len(b))
	}
	return binary.BigEndian.Uint64(b), nil
}

func PutUInt256(db KeyValueWriter, key []byte, val *uint256.Int) error {
	return db.Put(key, PackUInt256(val))
}

func GetUInt256(db KeyValueReader, key []byte) (*uint256.Int, error) {
	b, err := db.Get(key)
	if err != nil {
		return nil, err
	}
	return ParseUInt256(b)
}

// PackUInt256 returns the 32 byte big endian encoding of [val].
func PackUInt256(val *uint256.Int) []byte {
	b := val.Bytes32()
	return b[:]
}

func ParseUInt256(b []byte) (*uint256.Int, error) {
	if len(b) != Uint256Size {
		return nil, fmt.Errorf("%w: expected %d bytes but got %d", errWrongSize, Uint256Size, len(b))
	}
	return new(uint256.Int).SetBytes32(b), nil
}

// WithDefault returns the value at [key] in [db]. If the key doesn't exist, it
// returns [def].
func WithDefault[V any](
	get func(KeyValueReader, []byte) (V, error),
	db KeyValueReader,
	key []byte,
	def V,
) (V, error) {
	v, err := get(db, key)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	return v, err
}
