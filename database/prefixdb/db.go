// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prefixdb

import (
	"context"
	"sync"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/database"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/hashing"
)

var (
	_ database.Database = (*Database)(nil)
	_ database.Batch    = (*batch)(nil)
)

// Database partitions a database into a sub-database by prefixing all keys with
// a unique value.
type Database struct {
	// All keys in this db begin with this byte slice
	dbPrefix []byte

	// lock needs to be held during Close to guarantee closed will not be set
	// concurrently with another operation. All other operations can hold RLock.
	lock sync.RWMutex
	// The underlying storage
	db     database.Database
	closed bool
}

// New returns a new prefixed database
func New(prefix []byte, db database.Database) *Database {
	if prefixDB, ok := db.(*Database); ok {
		return &Database{
			dbPrefix: JoinPrefixes(prefixDB.dbPrefix, prefix),
			db:       prefixDB.db,
		}
	}
	return &Database{
		dbPrefix: MakePrefix(prefix),
		db:       db,
	}
}

func MakePrefix(prefix []byte) []byte {
	return hashing.ComputeHash256(prefix)
}

func JoinPrefixes(firstPrefix, secondPrefix []byte) []byte {
	simplePrefix := make([]byte, len(firstPrefix)+len(secondPrefix))
	copy(simplePrefix, firstPrefix)
	copy(simplePrefix[len(firstPrefix):], secondPrefix)
	return MakePrefix(simplePrefix)
}

func PrefixKey(prefix, key []byte) []byte {
	prefixedKey := make([]byte, len(prefix)+len(key))
	copy(prefixedKey, prefix)
	copy(prefixedKey[len(prefix):], key)
	return prefixedKey
}

func (db *Database) Has(key []byte) (bool, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return false, database.ErrClosed
	}
	return db.db.Has(PrefixKey(db.dbPrefix, key))
}

func (db *Database) Get(key []byte) ([]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return nil, database.ErrClosed
	}
	return db.db.Get(PrefixKey(db.dbPrefix, key))
}

func (db *Database) Put(key, value []byte) error {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return database.ErrClosed
	}
	return db.db.Put(PrefixKey(db.dbPrefix, key), value)
}

func (db *Database) Delete(key []byte) error {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return database.ErrClosed
	}
	return db.db.Delete(PrefixKey(db.dbPrefix, key))
}

func (db *Database) NewBatch() database.Batch {
	return &batch{
		db: db,
	}
}

// Close marks this partition closed. The underlying database is left open.
func (db *Database) Close() error {
	db.lock.Lock()
	defer db.lock.Unlock()

	if db.closed {
		return database.ErrClosed
	}
	db.closed = true
	return nil
}

func (db *Database) isClosed() bool {
	db.lock.RLock()
	defer db.lock.RUnlock()

	return db.closed
}

func (db *Database) HealthCheck(ctx context.Context) (interface{}, error) {
	if db.isClosed() {
		return nil, database.ErrClosed
	}
	return db.db.HealthCheck(ctx)
}

type keyValue struct {
	key    []byte
	value  []byte
	delete bool
}

// Batch of database operations
type batch struct {
	db *Database

	// Each key is prepended with the database's prefix.
	ops  []keyValue
	size int
}

func (b *batch) Put(key, value []byte) error {
	prefixedKey := PrefixKey(b.db.dbPrefix, key)
	b.ops = append(b.ops, keyValue{
		key:   prefixedKey,
		value: append([]byte(nil), value...),
	})
	b.size += len(prefixedKey) + len(value)
	return nil
}

func (b *batch) Delete(key []byte) error {
	prefixedKey := PrefixKey(b.db.dbPrefix, key)
	b.ops = append(b.ops, keyValue{
		key:    prefixedKey,
		delete: true,
	})
	b.size += len(prefixedKey)
	return nil
}

func (b *batch) Size() int {
	return b.size
}

// Write flushes any accumulated data to the underlying database as a single
// batch.
func (b *batch) Write() error {
	b.db.lock.RLock()
	defer b.db.lock.RUnlock()

	if b.db.closed {
		return database.ErrClosed
	}

	inner := b.db.db.NewBatch()
	for _, op := range b.ops {
		var err error
		if op.delete {
			err = inner.Delete(op.key)
		} else {
			err = inner.Put(op.key, op.value)
		}
		if err != nil {
			return err
		}
	}
	return inner.Write()
}

func (b *batch) Reset() {
	b.ops = b.ops[:0]
	b.size = 0
}
