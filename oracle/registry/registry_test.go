// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/database/memdb"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/ids"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/oracle"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/logging"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/units"
)

var (
	errTest = errors.New("non-nil error")

	testConfig = oracle.Config{WindowSize: 400, Granularity: 4}
)

func newMockOracle(t *testing.T, ctrl *gomock.Controller) (*oracle.Oracle, *oracle.MockSource) {
	source := oracle.NewMockSource(ctrl)
	o, err := oracle.New(testConfig, source)
	require.NoError(t, err)
	return o, source
}

func TestRegisterGet(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	r := New(logging.NoLog{})
	o, _ := newMockOracle(t, ctrl)

	sourceID := ids.SourceID("usdc-compound")
	require.NoError(r.Register(sourceID, o))
	require.ErrorIs(r.Register(sourceID, o), ErrDuplicateSource)

	got, err := r.Get(sourceID)
	require.NoError(err)
	require.Same(o, got)

	_, err = r.Get(ids.SourceID("dai-aave"))
	require.ErrorIs(err, ErrUnknownSource)
}

func TestAliases(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	r := New(logging.NoLog{})
	o, _ := newMockOracle(t, ctrl)

	sourceID := ids.SourceID("usdc-compound")
	require.ErrorIs(r.Alias(sourceID, "usdc-compound"), ErrUnknownSource)
	require.Equal(sourceID.String(), r.Name(sourceID))

	require.NoError(r.Register(sourceID, o))
	require.NoError(r.Alias(sourceID, "usdc-compound"))
	require.Equal("usdc-compound", r.Name(sourceID))

	got, err := r.Lookup("usdc-compound")
	require.NoError(err)
	require.Equal(sourceID, got)

	_, err = r.Lookup("dai-aave")
	require.ErrorIs(err, ids.ErrNoIDWithAlias)
}

func TestIDsSorted(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	r := New(logging.NoLog{})
	names := []string{"a", "b", "c", "d", "e"}
	for _, name := range names {
		o, _ := newMockOracle(t, ctrl)
		require.NoError(r.Register(ids.SourceID(name), o))
	}

	sourceIDs := r.IDs()
	require.Len(sourceIDs, len(names))
	for i := 1; i < len(sourceIDs); i++ {
		require.Negative(sourceIDs[i-1].Compare(sourceIDs[i]))
	}
}

func TestUpdateAllIsolatesFailures(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	r := New(logging.NoLog{})

	healthyID := ids.SourceID("healthy")
	healthy, healthySource := newMockOracle(t, ctrl)
	healthySource.EXPECT().CumulativeYield(gomock.Any()).Return(oracle.Reading{
		Timestamp: 100,
		Value:     uint256.NewInt(7),
	}, nil)
	healthySource.EXPECT().UnderlyingBalance(gomock.Any()).Return(uint256.NewInt(units.Ether), nil)
	require.NoError(r.Register(healthyID, healthy))

	brokenID := ids.SourceID("broken")
	broken, brokenSource := newMockOracle(t, ctrl)
	brokenSource.EXPECT().CumulativeYield(gomock.Any()).Return(oracle.Reading{}, errTest)
	require.NoError(r.Register(brokenID, broken))

	updated, err := r.UpdateAll(context.Background())
	require.ErrorIs(err, oracle.ErrSourceRead)
	require.ErrorIs(err, errTest)
	require.ErrorContains(err, brokenID.String())
	require.Equal([]ids.ID{healthyID}, updated)

	newest, ok := healthy.Newest()
	require.True(ok)
	require.Equal(uint64(100), newest.Timestamp)

	_, ok = broken.Newest()
	require.False(ok)
}

func TestPersistRestore(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	db := memdb.New()
	sourceIDs := []ids.ID{ids.SourceID("a"), ids.SourceID("b")}

	r := New(logging.NoLog{})
	for i, sourceID := range sourceIDs {
		o, source := newMockOracle(t, ctrl)
		for period := uint64(0); period < 4; period++ {
			source.EXPECT().CumulativeYield(gomock.Any()).Return(oracle.Reading{
				Timestamp: period * 100,
				Value:     uint256.NewInt(period * uint64(i+1) * 10),
			}, nil)
			source.EXPECT().UnderlyingBalance(gomock.Any()).Return(uint256.NewInt(units.Ether), nil)
			require.NoError(o.Update(context.Background()))
		}
		require.NoError(r.Register(sourceID, o))
	}
	require.NoError(r.Persist(db))

	restored := New(logging.NoLog{})
	for _, sourceID := range sourceIDs {
		o, _ := newMockOracle(t, ctrl)
		require.NoError(restored.Register(sourceID, o))
	}
	fresh := ids.SourceID("fresh")
	freshOracle, _ := newMockOracle(t, ctrl)
	require.NoError(restored.Register(fresh, freshOracle))

	require.NoError(restored.Restore(db))

	for i, sourceID := range sourceIDs {
		want, err := r.Get(sourceID)
		require.NoError(err)
		got, err := restored.Get(sourceID)
		require.NoError(err)

		require.Equal(want.Snapshot(), got.Snapshot())
		require.Equal(uint256.NewInt(uint64(30*(i+1))), got.Consult(300))
	}
	require.False(freshOracle.Warm())
}

func TestRestoreConfigMismatch(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	db := memdb.New()
	sourceID := ids.SourceID("a")

	r := New(logging.NoLog{})
	o, _ := newMockOracle(t, ctrl)
	require.NoError(r.Register(sourceID, o))
	require.NoError(r.Persist(db))

	other, err := oracle.New(oracle.Config{WindowSize: 800, Granularity: 8}, oracle.NewMockSource(ctrl))
	require.NoError(err)

	restored := New(logging.NoLog{})
	require.NoError(restored.Register(sourceID, other))
	require.Error(restored.Restore(db))
}
