// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package oracle

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/math"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/units"

	dto "github.com/prometheus/client_model/go"
)

var errTest = errors.New("non-nil error")

// testSource hands out whatever reading was last set.
type testSource struct {
	lock    sync.Mutex
	reading Reading
	balance *uint256.Int
}

func newTestSource() *testSource {
	return &testSource{
		reading: Reading{Value: new(uint256.Int)},
		balance: uint256.NewInt(units.Ether),
	}
}

func (s *testSource) set(timestamp uint64, cumulative *uint256.Int) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.reading = Reading{
		Timestamp: timestamp,
		Value:     new(uint256.Int).Set(cumulative),
	}
}

func (s *testSource) CumulativeYield(context.Context) (Reading, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.reading, nil
}

func (s *testSource) UnderlyingBalance(context.Context) (*uint256.Int, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.balance, nil
}

// feed applies one update per period, starting at [start], accruing the
// provided increments. It returns consult([duration]) after each update.
func feed(
	t *testing.T,
	o *Oracle,
	source *testSource,
	start uint64,
	initial *uint256.Int,
	increments []uint64,
	duration uint64,
) []*uint256.Int {
	require := require.New(t)

	cumulative := new(uint256.Int).Set(initial)
	results := make([]*uint256.Int, 0, len(increments))
	for i, increment := range increments {
		cumulative = math.WrappingAdd(cumulative, uint256.NewInt(increment))
		source.set(start+uint64(i)*o.PeriodSize(), cumulative)
		require.NoError(o.Update(context.Background()))
		results = append(results, o.Consult(duration))
	}
	return results
}

func requireUint256s(t *testing.T, expected []uint64, actual []*uint256.Int) {
	t.Helper()

	require.Len(t, actual, len(expected))
	for i, want := range expected {
		require.Equal(t, uint256.NewInt(want), actual[i], "index %d", i)
	}
}

func TestConfigVerify(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectedErr error
	}{
		{
			name:   "three days in six periods",
			config: Config{WindowSize: 3 * units.Day, Granularity: 6},
		},
		{
			name:   "minimal granularity",
			config: Config{WindowSize: 2, Granularity: 2},
		},
		{
			name:        "zero window",
			config:      Config{WindowSize: 0, Granularity: 6},
			expectedErr: ErrInvalidConfiguration,
		},
		{
			name:        "zero granularity",
			config:      Config{WindowSize: units.Day, Granularity: 0},
			expectedErr: ErrInvalidConfiguration,
		},
		{
			name:        "single slot",
			config:      Config{WindowSize: units.Day, Granularity: 1},
			expectedErr: ErrInvalidConfiguration,
		},
		{
			name:        "not divisible",
			config:      Config{WindowSize: 100, Granularity: 7},
			expectedErr: ErrInvalidConfiguration,
		},
		{
			name:        "granularity larger than window",
			config:      Config{WindowSize: 3, Granularity: 6},
			expectedErr: ErrInvalidConfiguration,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			err := test.config.Verify()
			require.ErrorIs(err, test.expectedErr)

			_, err = New(test.config, newTestSource())
			require.ErrorIs(err, test.expectedErr)
		})
	}
}

func TestAccessors(t *testing.T) {
	require := require.New(t)

	o, err := New(Config{WindowSize: 3 * units.Day, Granularity: 6}, newTestSource())
	require.NoError(err)
	require.Equal(3*units.Day, o.WindowSize())
	require.Equal(uint64(6), o.Granularity())
	require.Equal(12*units.Hour, o.PeriodSize())
}

func TestConsultColdStart(t *testing.T) {
	require := require.New(t)

	o, err := New(Config{WindowSize: units.Day, Granularity: 24}, newTestSource())
	require.NoError(err)

	for _, duration := range []uint64{0, 1, units.Hour, units.Day, 365 * units.Day} {
		require.True(o.Consult(duration).IsZero())
	}
	require.False(o.Warm())
}

func TestSlidingWindow(t *testing.T) {
	tests := []struct {
		name    string
		start   uint64
		initial *uint256.Int
	}{
		{
			name:    "aligned start",
			start:   0,
			initial: new(uint256.Int),
		},
		{
			name:    "unaligned start",
			start:   1_700_000_123,
			initial: new(uint256.Int),
		},
		{
			name:    "counter wraps mid window",
			start:   1_700_000_123,
			initial: new(uint256.Int).Sub(math.MaxUint256(), uint256.NewInt(200)),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			source := newTestSource()
			o, err := New(Config{WindowSize: 3 * units.Day, Granularity: 6}, source)
			require.NoError(t, err)

			results := feed(t, o, source, test.start, test.initial,
				[]uint64{50, 40, 60, 45, 50, 55, 40, 40, 40},
				units.Day,
			)
			requireUint256s(t, []uint64{0, 0, 0, 0, 0, 100, 100, 92, 90}, results)
		})
	}
}

func TestWarmUpBoundary(t *testing.T) {
	require := require.New(t)

	const granularity = 8
	source := newTestSource()
	o, err := New(Config{WindowSize: granularity * units.Hour, Granularity: granularity}, source)
	require.NoError(err)

	increments := make([]uint64, granularity)
	for i := range increments {
		increments[i] = 1_000
	}
	results := feed(t, o, source, 0, new(uint256.Int), increments, units.Day)
	for i := 0; i < granularity-1; i++ {
		require.True(results[i].IsZero(), "update %d", i)
	}
	require.False(results[granularity-1].IsZero())
	require.True(o.Warm())

	first, ok := o.FirstUpdate()
	require.True(ok)
	require.Zero(first)
}

func TestExtrapolation(t *testing.T) {
	require := require.New(t)

	const (
		granularity = 24
		perPeriod   = 1_000_000
	)
	source := newTestSource()
	o, err := New(Config{WindowSize: units.Day, Granularity: granularity}, source)
	require.NoError(err)

	increments := make([]uint64, 3*granularity)
	for i := range increments {
		increments[i] = perPeriod
	}
	feed(t, o, source, 1_600_000_000, new(uint256.Int), increments, units.Day)

	require.Equal(uint256.NewInt(perPeriod*granularity), o.Consult(o.WindowSize()))
	require.Equal(uint256.NewInt(perPeriod*granularity), o.Consult(units.Day))
	require.Equal(uint256.NewInt(perPeriod), o.Consult(o.PeriodSize()))
	require.Equal(uint256.NewInt(7*perPeriod*granularity), o.Consult(7*units.Day))
	require.True(o.Consult(0).IsZero())
}

func TestConsultIsReadOnly(t *testing.T) {
	require := require.New(t)

	source := newTestSource()
	o, err := New(Config{WindowSize: 3 * units.Day, Granularity: 6}, source)
	require.NoError(err)
	feed(t, o, source, 0, new(uint256.Int), []uint64{50, 40, 60, 45, 50, 55, 40}, units.Day)

	before := o.Snapshot()
	for i := 0; i < 10; i++ {
		require.Equal(uint256.NewInt(100), o.Consult(units.Day))
	}
	require.Equal(before, o.Snapshot())
}

func TestUpdateIdempotentWithinPeriod(t *testing.T) {
	require := require.New(t)

	source := newTestSource()
	o, err := New(Config{WindowSize: 400, Granularity: 4}, source)
	require.NoError(err)

	source.set(800, uint256.NewInt(10))
	require.NoError(o.Update(context.Background()))

	source.set(850, uint256.NewInt(99))
	require.NoError(o.Update(context.Background()))
	require.NoError(o.Update(context.Background()))

	newest, ok := o.Newest()
	require.True(ok)
	require.Equal(uint64(800), newest.Timestamp)
	require.Equal(uint256.NewInt(10), &newest.CumulativeYield)

	last, ok := o.LastObserved()
	require.True(ok)
	require.Equal(uint64(850), last.Timestamp)
	require.Equal(uint256.NewInt(99), &last.CumulativeYield)

	_, written := o.Observations()
	require.Equal([]bool{true, false, false, false}, written)
}

func TestUpdateDropsStaleReading(t *testing.T) {
	require := require.New(t)

	source := newTestSource()
	o, err := New(Config{WindowSize: 400, Granularity: 4}, source)
	require.NoError(err)

	source.set(1_000, uint256.NewInt(10))
	require.NoError(o.Update(context.Background()))

	source.set(850, uint256.NewInt(5))
	require.NoError(o.Update(context.Background()))

	newest, ok := o.Newest()
	require.True(ok)
	require.Equal(uint64(1_000), newest.Timestamp)

	_, written := o.Observations()
	require.Equal([]bool{false, false, true, false}, written)
}

func TestCadenceGap(t *testing.T) {
	require := require.New(t)

	source := newTestSource()
	o, err := New(Config{WindowSize: 400, Granularity: 4}, source)
	require.NoError(err)

	update := func(period uint64, cumulative uint64) *uint256.Int {
		source.set(period*100, uint256.NewInt(cumulative))
		require.NoError(o.Update(context.Background()))
		return o.Consult(300)
	}

	for period := uint64(0); period < 4; period++ {
		update(period, period*10)
	}
	require.Equal(uint256.NewInt(30), o.Consult(300))

	// A single missed period keeps the window anchored.
	require.Equal(uint256.NewInt(30), update(5, 50))

	// A long outage leaves no valid anchor until the window refills.
	require.True(update(12, 120).IsZero())
	require.True(update(13, 130).IsZero())
	require.True(update(14, 140).IsZero())
	require.Equal(uint256.NewInt(30), update(15, 150))

	slots, written := o.Observations()
	require.Equal([]bool{true, true, true, true}, written)
	for i, slot := range slots {
		require.Equal(uint64(i), slot.Timestamp/100%4)
	}
}

func TestZeroBalanceRecordsRawCounter(t *testing.T) {
	require := require.New(t)

	source := newTestSource()
	source.balance = new(uint256.Int)
	o, err := New(Config{WindowSize: 400, Granularity: 4}, source)
	require.NoError(err)

	source.set(0, uint256.NewInt(1234))
	require.NoError(o.Update(context.Background()))

	newest, ok := o.Newest()
	require.True(ok)
	require.Equal(uint256.NewInt(1234), &newest.CumulativeYield)
	require.True(o.UnderlyingBalance().IsZero())
}

func TestUpdateSourceFailure(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*MockSource)
	}{
		{
			name: "cumulative yield",
			setup: func(s *MockSource) {
				s.EXPECT().CumulativeYield(gomock.Any()).Return(Reading{}, errTest)
			},
		},
		{
			name: "underlying balance",
			setup: func(s *MockSource) {
				s.EXPECT().CumulativeYield(gomock.Any()).Return(Reading{
					Timestamp: 100,
					Value:     uint256.NewInt(5),
				}, nil)
				s.EXPECT().UnderlyingBalance(gomock.Any()).Return(nil, errTest)
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)
			ctrl := gomock.NewController(t)

			source := NewMockSource(ctrl)
			test.setup(source)

			registry := prometheus.NewRegistry()
			o, err := New(
				Config{WindowSize: 400, Granularity: 4},
				source,
				WithMetrics("oracle", registry),
			)
			require.NoError(err)

			err = o.Update(context.Background())
			require.ErrorIs(err, ErrSourceRead)
			require.ErrorIs(err, errTest)

			_, ok := o.Newest()
			require.False(ok)
			_, ok = o.LastObserved()
			require.False(ok)
			require.Equal(float64(1), gatheredValue(t, registry, "oracle_source_failures"))
		})
	}
}

func TestMetrics(t *testing.T) {
	require := require.New(t)

	registry := prometheus.NewRegistry()
	source := newTestSource()
	o, err := New(
		Config{WindowSize: 400, Granularity: 4},
		source,
		WithMetrics("oracle", registry),
	)
	require.NoError(err)

	source.set(0, uint256.NewInt(10))
	require.NoError(o.Update(context.Background()))
	require.NoError(o.Update(context.Background()))
	source.set(500, uint256.NewInt(25))
	require.NoError(o.Update(context.Background()))
	source.set(200, uint256.NewInt(25))
	require.NoError(o.Update(context.Background()))

	require.Equal(float64(2), gatheredValue(t, registry, "oracle_observations_written"))
	require.Equal(float64(1), gatheredValue(t, registry, "oracle_updates_skipped"))
	require.Equal(float64(1), gatheredValue(t, registry, "oracle_updates_stale"))
	require.Equal(float64(500), gatheredValue(t, registry, "oracle_last_observation_timestamp"))
	require.Equal(float64(15), gatheredValue(t, registry, "oracle_last_cumulative_delta"))

	_, err = New(Config{WindowSize: 400, Granularity: 4}, source, WithMetrics("oracle", registry))
	require.Error(err)
}

func TestSnapshotRestore(t *testing.T) {
	require := require.New(t)

	config := Config{WindowSize: 3 * units.Day, Granularity: 6}
	source := newTestSource()
	o, err := New(config, source)
	require.NoError(err)
	feed(t, o, source, 0, new(uint256.Int), []uint64{50, 40, 60, 45, 50, 55, 40, 40}, units.Day)

	restored, err := New(config, source)
	require.NoError(err)
	require.NoError(restored.Restore(o.Snapshot()))
	require.Equal(uint256.NewInt(92), restored.Consult(units.Day))
	require.Equal(o.Snapshot(), restored.Snapshot())

	other, err := New(Config{WindowSize: units.Day, Granularity: 6}, source)
	require.NoError(err)
	require.ErrorIs(other.Restore(o.Snapshot()), ErrSnapshotMismatch)

	snapshot := o.Snapshot()
	snapshot.Slots = snapshot.Slots[:3]
	require.ErrorIs(restored.Restore(snapshot), ErrSnapshotMismatch)
}

func TestConcurrentUpdateAndConsult(t *testing.T) {
	source := newTestSource()
	o, err := New(Config{WindowSize: 400, Granularity: 4}, source)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = o.Update(context.Background())
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = o.Consult(units.Day)
			}
		}()
	}
	for ts := uint64(0); ts < 1_000; ts += 10 {
		source.set(ts, uint256.NewInt(ts))
	}
	wg.Wait()
}

func gatheredValue(t *testing.T, gatherer prometheus.Gatherer, name string) float64 {
	t.Helper()

	families, err := gatherer.Gather()
	require.NoError(t, err)

	var family *dto.MetricFamily
	for _, f := range families {
		if f.GetName() == name {
			family = f
		}
	}
	require.NotNil(t, family, "metric %s not gathered", name)
	require.Len(t, family.Metric, 1)

	metric := family.Metric[0]
	switch family.GetType() {
	case dto.MetricType_COUNTER:
		return metric.GetCounter().GetValue()
	default:
		return metric.GetGauge().GetValue()
	}
}
