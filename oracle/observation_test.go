// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package oracle

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func observationAt(timestamp uint64, cumulative uint64) Observation {
	o := Observation{Timestamp: timestamp}
	o.CumulativeYield.SetUint64(cumulative)
	return o
}

func TestBufferIndexOf(t *testing.T) {
	b := newBuffer(Config{WindowSize: 400, Granularity: 4})

	tests := []struct {
		timestamp uint64
		index     uint64
	}{
		{timestamp: 0, index: 0},
		{timestamp: 99, index: 0},
		{timestamp: 100, index: 1},
		{timestamp: 399, index: 3},
		{timestamp: 400, index: 0},
		{timestamp: 1050, index: 2},
	}
	for _, test := range tests {
		require.Equal(t, test.index, b.indexOf(test.timestamp), "timestamp %d", test.timestamp)
	}
}

func TestBufferReadUnwritten(t *testing.T) {
	require := require.New(t)

	b := newBuffer(Config{WindowSize: 400, Granularity: 4})
	_, ok := b.read(2)
	require.False(ok)

	b.write(2, observationAt(250, 7))
	got, ok := b.read(2)
	require.True(ok)
	require.Equal(uint64(250), got.Timestamp)
	require.Equal(uint256.NewInt(7), &got.CumulativeYield)

	b.write(2, observationAt(650, 9))
	got, ok = b.read(2)
	require.True(ok)
	require.Equal(uint64(650), got.Timestamp)
}

func TestBufferOldestInWindow(t *testing.T) {
	tests := []struct {
		name       string
		writes     []Observation
		newest     uint64
		wantOldest uint64
		wantOK     bool
	}{
		{
			name:   "empty",
			newest: 0,
		},
		{
			name: "anchor never written",
			writes: []Observation{
				observationAt(0, 0),
				observationAt(100, 1),
				observationAt(200, 2),
			},
			newest: 2,
		},
		{
			name: "full window",
			writes: []Observation{
				observationAt(0, 0),
				observationAt(100, 1),
				observationAt(200, 2),
				observationAt(300, 3),
			},
			newest:     3,
			wantOldest: 0,
			wantOK:     true,
		},
		{
			name: "anchor one period late",
			writes: []Observation{
				observationAt(150, 0),
				observationAt(500, 1),
				observationAt(200, 2),
				observationAt(300, 3),
			},
			newest:     1,
			wantOldest: 200,
			wantOK:     true,
		},
		{
			name: "anchor too recent",
			writes: []Observation{
				observationAt(0, 0),
				observationAt(100, 1),
				observationAt(299, 2),
				observationAt(300, 3),
			},
			newest: 1,
		},
		{
			name: "anchor older than the window",
			writes: []Observation{
				observationAt(0, 0),
				observationAt(900, 1),
				observationAt(200, 2),
				observationAt(300, 3),
			},
			newest: 1,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			b := newBuffer(Config{WindowSize: 400, Granularity: 4})
			for _, o := range test.writes {
				b.write(b.indexOf(o.Timestamp), o)
			}

			oldest, ok := b.oldestInWindow(test.newest)
			require.Equal(test.wantOK, ok)
			if ok {
				require.Equal(test.wantOldest, oldest.Timestamp)
			}
		})
	}
}
