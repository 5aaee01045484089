// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package dbtest holds the conformance suite every database implementation
// must pass.
package dbtest

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/database"
)

// Tests is a list of all database tests
var Tests = map[string]func(t *testing.T, db database.Database){
	"SimpleKeyValue":       TestSimpleKeyValue,
	"OverwriteKeyValue":    TestOverwriteKeyValue,
	"EmptyKey":             TestEmptyKey,
	"MemorySafetyDatabase": TestMemorySafetyDatabase,
	"BatchPut":             TestBatchPut,
	"BatchDelete":          TestBatchDelete,
	"BatchReset":           TestBatchReset,
	"Uint256RoundTrip":     TestUint256RoundTrip,
	"WithDefault":          TestWithDefault,
	"HealthCheck":          TestHealthCheck,
	"ClosedDatabaseErrors": TestClosedDatabaseErrors,
}

// TestSimpleKeyValue tests to make sure that simple Put + Get + Delete + Has
// calls return the expected values.
func TestSimpleKeyValue(t *testing.T, db database.Database) {
	require := require.New(t)

	key := []byte("hello")
	value := []byte("world")

	has, err := db.Has(key)
	require.NoError(err)
	require.False(has)

	_, err = db.Get(key)
	require.ErrorIs(err, database.ErrNotFound)

	require.NoError(db.Delete(key))
	require.NoError(db.Put(key, value))

	has, err = db.Has(key)
	require.NoError(err)
	require.True(has)

	v, err := db.Get(key)
	require.NoError(err)
	require.Equal(value, v)

	require.NoError(db.Delete(key))

	has, err = db.Has(key)
	require.NoError(err)
	require.False(has)

	_, err = db.Get(key)
	require.ErrorIs(err, database.ErrNotFound)
}

func TestOverwriteKeyValue(t *testing.T, db database.Database) {
	require := require.New(t)

	key := []byte("hello")
	value1 := []byte("world1")
	value2 := []byte("world2")

	require.NoError(db.Put(key, value1))
	require.NoError(db.Put(key, value2))

	gotValue, err := db.Get(key)
	require.NoError(err)
	require.Equal(value2, gotValue)
}

func TestEmptyKey(t *testing.T, db database.Database) {
	require := require.New(t)

	var (
		nilKey   = []byte(nil)
		emptyKey = []byte{}
		val1     = []byte("hi")
		val2     = []byte("hello")
	)

	// Test that nil key can be retrieved by empty key
	require.NoError(db.Put(nilKey, val1))
	value, err := db.Get(emptyKey)
	require.NoError(err)
	require.Equal(val1, value)

	// Test that empty key can be retrieved by nil key
	require.NoError(db.Put(emptyKey, val2))
	value, err = db.Get(nilKey)
	require.NoError(err)
	require.Equal(val2, value)
}

// TestMemorySafetyDatabase ensures it is safe to modify a key after passing it
// to Database.Put and Database.Get.
func TestMemorySafetyDatabase(t *testing.T, db database.Database) {
	require := require.New(t)

	key := []byte("1key")
	keyCopy := []byte("1key")
	value := []byte("value")
	key2 := []byte("2key")
	value2 := []byte("value2")

	// Put both K/V pairs in the database
	require.NoError(db.Put(key, value))
	require.NoError(db.Put(key2, value2))

	// Get the value for [key]
	gotVal, err := db.Get(key)
	require.NoError(err)
	require.Equal(value, gotVal)

	// Modify [key]; make sure the value we got before hasn't changed
	key[0] = key2[0]
	gotVal2, err := db.Get(key)
	require.NoError(err)
	require.Equal(value2, gotVal2)
	require.Equal(value, gotVal)

	// Reset [key] to its original value and make sure it's correct
	key[0] = keyCopy[0]
	gotVal, err = db.Get(key)
	require.NoError(err)
	require.Equal(value, gotVal)
}

func TestBatchPut(t *testing.T, db database.Database) {
	require := require.New(t)

	key := []byte("hello")
	value := []byte("world")

	batch := db.NewBatch()
	require.NotNil(batch)

	require.NoError(batch.Put(key, value))
	require.Positive(batch.Size())

	has, err := db.Has(key)
	require.NoError(err)
	require.False(has)

	require.NoError(batch.Write())

	has, err = db.Has(key)
	require.NoError(err)
	require.True(has)

	v, err := db.Get(key)
	require.NoError(err)
	require.Equal(value, v)
}

func TestBatchDelete(t *testing.T, db database.Database) {
	require := require.New(t)

	key := []byte("hello")
	value := []byte("world")

	require.NoError(db.Put(key, value))

	batch := db.NewBatch()
	require.NoError(batch.Delete(key))
	require.NoError(batch.Write())

	has, err := db.Has(key)
	require.NoError(err)
	require.False(has)
}

func TestBatchReset(t *testing.T, db database.Database) {
	require := require.New(t)

	key := []byte("hello")
	value := []byte("world")

	batch := db.NewBatch()
	require.NoError(batch.Put(key, value))
	batch.Reset()
	require.Zero(batch.Size())
	require.NoError(batch.Write())

	has, err := db.Has(key)
	require.NoError(err)
	require.False(has)
}

func TestUint256RoundTrip(t *testing.T, db database.Database) {
	require := require.New(t)

	key := []byte("cumulative")
	want := new(uint256.Int).SetAllOne()
	require.NoError(database.PutUInt256(db, key, want))

	got, err := database.GetUInt256(db, key)
	require.NoError(err)
	require.Equal(want, got)

	require.NoError(database.PutUInt64(db, key, 42))
	_, err = database.GetUInt256(db, key)
	require.Error(err)

	n, err := database.GetUInt64(db, key)
	require.NoError(err)
	require.Equal(uint64(42), n)
}

func TestWithDefault(t *testing.T, db database.Database) {
	require := require.New(t)

	key := []byte("missing")
	got, err := database.WithDefault(database.GetUInt64, db, key, 7)
	require.NoError(err)
	require.Equal(uint64(7), got)

	require.NoError(database.PutUInt64(db, key, 9))
	got, err = database.WithDefault(database.GetUInt64, db, key, 7)
	require.NoError(err)
	require.Equal(uint64(9), got)
}

func TestHealthCheck(t *testing.T, db database.Database) {
	_, err := db.HealthCheck(context.Background())
	require.NoError(t, err)
}

func TestClosedDatabaseErrors(t *testing.T, db database.Database) {
	require := require.New(t)

	key := []byte("hello")
	require.NoError(db.Put(key, []byte("world")))
	require.NoError(db.Close())

	_, err := db.Has(key)
	require.ErrorIs(err, database.ErrClosed)
	_, err = db.Get(key)
	require.ErrorIs(err, database.ErrClosed)
	require.ErrorIs(db.Put(key, nil), database.ErrClosed)
	require.ErrorIs(db.Delete(key), database.ErrClosed)
	require.ErrorIs(db.Close(), database.ErrClosed)
}
