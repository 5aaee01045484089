// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package oracleapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/ids"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/oracle"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/oracle/registry"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/source/pool"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/logging"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/timer/mockable"
)

type fixture struct {
	clock    *mockable.Clock
	pool     *pool.Pool
	oracle   *oracle.Oracle
	sourceID ids.ID
	client   Client

	lock    sync.Mutex
	updated []ids.ID
}

func newFixture(t *testing.T) *fixture {
	require := require.New(t)

	f := &fixture{
		clock:    &mockable.Clock{},
		sourceID: ids.SourceID("compound-usdc"),
	}
	f.clock.Set(time.Unix(1_000, 0))
	f.pool = pool.New(f.clock, logging.NoLog{})

	o, err := oracle.New(oracle.Config{
		WindowSize:  400,
		Granularity: 4,
	}, f.pool)
	require.NoError(err)
	f.oracle = o

	r := registry.New(logging.NoLog{})
	require.NoError(r.Register(f.sourceID, o))
	require.NoError(r.Alias(f.sourceID, "compound-usdc"))

	handler, err := NewHandler(
		logging.NoLog{},
		r,
		rate.Every(time.Hour),
		1,
		func(_ context.Context, sourceID ids.ID, _ *oracle.Oracle) {
			f.lock.Lock()
			defer f.lock.Unlock()

			f.updated = append(f.updated, sourceID)
		},
	)
	require.NoError(err)

	mux := http.NewServeMux()
	mux.Handle("/ext/"+Endpoint, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	f.client = NewClient(server.URL)
	return f
}

// step moves time forward one period and accrues [yield] into the pool.
func (f *fixture) step(yield uint64) {
	f.clock.Advance(100 * time.Second)
	f.pool.AddCumulativeYield(uint256.NewInt(yield), f.clock.Unix())
}

func TestConsultColdStart(t *testing.T) {
	require := require.New(t)

	f := newFixture(t)
	ctx := context.Background()

	amount, warm, err := f.client.Consult(ctx, f.sourceID, 100)
	require.NoError(err)
	require.True(amount.IsZero())
	require.False(warm)
}

func TestConsultAndUpdate(t *testing.T) {
	require := require.New(t)

	f := newFixture(t)
	ctx := context.Background()

	require.NoError(f.oracle.Update(ctx))
	for i := 0; i < 3; i++ {
		f.step(100)
		require.NoError(f.oracle.Update(ctx))
	}

	amount, warm, err := f.client.Consult(ctx, f.sourceID, 100)
	require.NoError(err)
	require.True(warm)
	require.Equal(uint256.NewInt(100), amount)

	f.step(100)
	require.NoError(f.client.Update(ctx, f.sourceID))

	f.lock.Lock()
	require.Equal([]ids.ID{f.sourceID}, f.updated)
	f.lock.Unlock()

	amount, warm, err = f.client.Consult(ctx, f.sourceID, 100)
	require.NoError(err)
	require.True(warm)
	require.Equal(uint256.NewInt(100), amount)

	amount, _, err = f.client.Consult(ctx, f.sourceID, 86_400)
	require.NoError(err)
	require.Equal(uint256.NewInt(86_400), amount)

	err = f.client.Update(ctx, f.sourceID)
	require.ErrorContains(err, errRateLimited.Error())
}

func TestGetConfig(t *testing.T) {
	require := require.New(t)

	f := newFixture(t)

	config, err := f.client.GetConfig(context.Background(), f.sourceID)
	require.NoError(err)
	require.Equal(oracle.Config{
		WindowSize:  400,
		Granularity: 4,
	}, config)
}

func TestGetObservations(t *testing.T) {
	require := require.New(t)

	f := newFixture(t)
	ctx := context.Background()

	reply, err := f.client.GetObservations(ctx, f.sourceID)
	require.NoError(err)
	require.Len(reply.Observations, 4)
	require.Nil(reply.Latest)
	require.Nil(reply.LastObserved)

	require.NoError(f.oracle.Update(ctx))
	f.step(250)
	require.NoError(f.oracle.Update(ctx))

	reply, err = f.client.GetObservations(ctx, f.sourceID)
	require.NoError(err)
	require.Equal([]APIObservation{
		{Index: 0, Timestamp: 0, CumulativeYield: "0", Written: false},
		{Index: 1, Timestamp: 0, CumulativeYield: "0", Written: false},
		{Index: 2, Timestamp: 1_000, CumulativeYield: "0", Written: true},
		{Index: 3, Timestamp: 1_100, CumulativeYield: "250", Written: true},
	}, reply.Observations)
	require.NotNil(reply.Latest)
	require.EqualValues(3, *reply.Latest)
	require.NotNil(reply.LastObserved)
	require.EqualValues(1_100, reply.LastObserved.Timestamp)
	require.Equal("250", reply.LastObserved.CumulativeYield)
	require.Equal("0", reply.UnderlyingBalance)
}

func TestListSources(t *testing.T) {
	require := require.New(t)

	f := newFixture(t)

	sourceIDs, err := f.client.ListSources(context.Background())
	require.NoError(err)
	require.Equal([]ids.ID{f.sourceID}, sourceIDs)
}

func TestGetSourceID(t *testing.T) {
	require := require.New(t)

	f := newFixture(t)
	ctx := context.Background()

	sourceID, err := f.client.GetSourceID(ctx, "compound-usdc")
	require.NoError(err)
	require.Equal(f.sourceID, sourceID)

	_, err = f.client.GetSourceID(ctx, "aave-dai")
	require.ErrorContains(err, ids.ErrNoIDWithAlias.Error())
}

func TestUnknownSource(t *testing.T) {
	require := require.New(t)

	f := newFixture(t)
	ctx := context.Background()

	unknown := ids.SourceID("aave-dai")
	_, _, err := f.client.Consult(ctx, unknown, 100)
	require.ErrorContains(err, registry.ErrUnknownSource.Error())

	_, err = f.client.GetConfig(ctx, unknown)
	require.ErrorContains(err, registry.ErrUnknownSource.Error())
}
