// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prefixdb

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/database"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/database/dbtest"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/database/memdb"
)

func TestInterface(t *testing.T) {
	for name, test := range dbtest.Tests {
		t.Run(name, func(t *testing.T) {
			db := memdb.New()
			test(t, New([]byte("hello"), db))
			test(t, New([]byte("world"), db))
			test(t, New([]byte("wor"), New([]byte("ld"), db)))
			test(t, New([]byte("ld"), New([]byte("wor"), db)))
		})
	}
}

func TestPartitionsAreIsolated(t *testing.T) {
	require := require.New(t)

	base := memdb.New()
	a := New([]byte("a"), base)
	b := New([]byte("b"), base)

	key := []byte("latest")
	require.NoError(a.Put(key, []byte{1}))

	_, err := b.Get(key)
	require.ErrorIs(err, database.ErrNotFound)

	has, err := base.Has(key)
	require.NoError(err)
	require.False(has)

	has, err = base.Has(PrefixKey(MakePrefix([]byte("a")), key))
	require.NoError(err)
	require.True(has)
}

func TestNestedPrefixCompression(t *testing.T) {
	require := require.New(t)

	base := memdb.New()
	nested := New([]byte("inner"), New([]byte("outer"), base))

	want := JoinPrefixes(MakePrefix([]byte("outer")), []byte("inner"))
	require.Equal(want, nested.dbPrefix)
	require.Same(base, nested.db)
}

func TestCloseLeavesParentOpen(t *testing.T) {
	require := require.New(t)

	base := memdb.New()
	db := New([]byte("p"), base)
	require.NoError(db.Close())

	require.NoError(base.Put([]byte("k"), []byte("v")))
	require.ErrorIs(db.Put([]byte("k"), []byte("v")), database.ErrClosed)
}
