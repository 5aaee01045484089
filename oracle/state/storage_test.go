// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/database"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/database/memdb"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/oracle"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/units"
)

type fixedSource struct {
	reading oracle.Reading
}

func (s *fixedSource) CumulativeYield(context.Context) (oracle.Reading, error) {
	return s.reading, nil
}

func (*fixedSource) UnderlyingBalance(context.Context) (*uint256.Int, error) {
	return uint256.NewInt(units.Ether), nil
}

func warmOracle(t *testing.T, config oracle.Config) *oracle.Oracle {
	source := &fixedSource{}
	o, err := oracle.New(config, source)
	require.NoError(t, err)

	cumulative := new(uint256.Int)
	for _, increment := range []uint64{50, 40, 60, 45, 50, 55, 40, 40} {
		cumulative = new(uint256.Int).Add(cumulative, uint256.NewInt(increment))
		source.reading = oracle.Reading{
			Timestamp: source.reading.Timestamp + config.PeriodSize(),
			Value:     cumulative,
		}
		require.NoError(t, o.Update(context.Background()))
	}
	return o
}

func TestSaveLoad(t *testing.T) {
	require := require.New(t)

	config := oracle.Config{WindowSize: 3 * units.Day, Granularity: 6}
	o := warmOracle(t, config)
	snapshot := o.Snapshot()

	db := memdb.New()
	require.NoError(Save(db, snapshot))

	loaded, err := Load(db, config)
	require.NoError(err)
	require.Equal(snapshot, loaded)

	restored, err := oracle.New(config, &fixedSource{})
	require.NoError(err)
	require.NoError(restored.Restore(loaded))
	require.Equal(o.Consult(units.Day), restored.Consult(units.Day))
}

func TestSaveEmptyOracle(t *testing.T) {
	require := require.New(t)

	config := oracle.Config{WindowSize: units.Day, Granularity: 4}
	o, err := oracle.New(config, &fixedSource{})
	require.NoError(err)

	db := memdb.New()
	require.NoError(Save(db, o.Snapshot()))

	loaded, err := Load(db, config)
	require.NoError(err)
	require.False(loaded.Initialized)
	require.Equal([]bool{false, false, false, false}, loaded.Written)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(memdb.New(), oracle.Config{WindowSize: units.Day, Granularity: 4})
	require.ErrorIs(t, err, database.ErrNotFound)
}

func TestLoadConfigMismatch(t *testing.T) {
	require := require.New(t)

	db := memdb.New()
	require.NoError(PutConfig(db, oracle.Config{WindowSize: units.Day, Granularity: 4}))

	_, err := Load(db, oracle.Config{WindowSize: units.Day, Granularity: 8})
	require.ErrorIs(err, ErrConfigMismatch)
}

func TestObservationEncoding(t *testing.T) {
	require := require.New(t)

	o := oracle.Observation{Timestamp: 1_700_000_000}
	o.CumulativeYield.SetAllOne()

	bytes := PackObservation(o)
	require.Len(bytes, observationSize)

	parsed, err := ParseObservation(bytes)
	require.NoError(err)
	require.Equal(o, parsed)

	_, err = ParseObservation(bytes[1:])
	require.ErrorIs(err, errCorruptObservation)
}
