// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package meterdb

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/database/dbtest"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/database/memdb"
)

func TestInterface(t *testing.T) {
	for name, test := range dbtest.Tests {
		t.Run(name, func(t *testing.T) {
			db, err := New("", prometheus.NewRegistry(), memdb.New())
			require.NoError(t, err)

			test(t, db)
		})
	}
}

func TestObservesCalls(t *testing.T) {
	require := require.New(t)

	registry := prometheus.NewRegistry()
	db, err := New("db", registry, memdb.New())
	require.NoError(err)

	require.NoError(db.Put([]byte("key"), []byte("value")))
	_, err = db.Get([]byte("key"))
	require.NoError(err)
	_, err = db.Get([]byte("key"))
	require.NoError(err)

	families, err := registry.Gather()
	require.NoError(err)

	counts := make(map[string]uint64, len(families))
	for _, family := range families {
		counts[family.GetName()] = family.Metric[0].GetHistogram().GetSampleCount()
	}
	require.Equal(uint64(1), counts["db_put"])
	require.Equal(uint64(2), counts["db_get"])
	require.Zero(counts["db_has"])
}

func TestDuplicateRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()
	_, err := New("db", registry, memdb.New())
	require.NoError(t, err)

	_, err = New("db", registry, memdb.New())
	require.Error(t, err)
}
