// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ids

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/cb58"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/hashing"
)

const IDLen = 32

var (
	// Empty is a useful all zero value
	Empty = ID{}

	errWrongLength = errors.New("wrong id length")
)

// ID wraps a 32 byte hash used as an identifier. Monitored sources are keyed
// by ID.
type ID [IDLen]byte

// ToID attempt to convert a byte slice into an id
func ToID(bytes []byte) (ID, error) {
	if len(bytes) != IDLen {
		return ID{}, fmt.Errorf("%w: expected %d bytes but got %d", errWrongLength, IDLen, len(bytes))
	}
	var id ID
	copy(id[:], bytes)
	return id, nil
}

// FromString is the inverse of ID.String()
func FromString(idStr string) (ID, error) {
	bytes, err := cb58.Decode(idStr)
	if err != nil {
		return ID{}, err
	}
	return ToID(bytes)
}

// SourceID derives the identifier of a source from its human readable name.
func SourceID(name string) ID {
	return hashing.ComputeHash256Array([]byte(name))
}

func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(text []byte) error {
	newID, err := FromString(string(text))
	if err != nil {
		return err
	}
	*id = newID
	return nil
}

func (id ID) String() string {
	// We assume that the maximum size of a byte slice that
	// can be stringified is at least the length of an ID
	s, _ := cb58.Encode(id[:])
	return s
}

func (id ID) Compare(other ID) int {
	return bytes.Compare(id[:], other[:])
}
