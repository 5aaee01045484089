// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package oracle

import "github.com/holiman/uint256"

type Observation struct {
	Timestamp       uint64
	CumulativeYield uint256.Int
}

// buffer holds one observation per period of the window. A period is stored
// at index (timestamp / periodSize) % granularity, so a slot is overwritten
// once the window has slid a full revolution past it.
//
// buffer is not thread safe.
type buffer struct {
	windowSize uint64
	periodSize uint64
	slots      []Observation
	written    []bool
}

func newBuffer(config Config) *buffer {
	return &buffer{
		windowSize: config.WindowSize,
		periodSize: config.PeriodSize(),
		slots:      make([]Observation, config.Granularity),
		written:    make([]bool, config.Granularity),
	}
}

func (b *buffer) granularity() uint64 {
	return uint64(len(b.slots))
}

func (b *buffer) period(timestamp uint64) uint64 {
	return timestamp / b.periodSize
}

func (b *buffer) indexOf(timestamp uint64) uint64 {
	return b.period(timestamp) % b.granularity()
}

func (b *buffer) write(index uint64, observation Observation) {
	b.slots[index] = observation
	b.written[index] = true
}

func (b *buffer) read(index uint64) (Observation, bool) {
	return b.slots[index], b.written[index]
}

// oldestInWindow returns the anchor of the window ending at the observation
// stored at [newest]. That is the slot that will be overwritten by the next
// period. The anchor is rejected if it was never written or if its age falls
// outside [windowSize - 2*periodSize, windowSize].
func (b *buffer) oldestInWindow(newest uint64) (Observation, bool) {
	last, ok := b.read(newest)
	if !ok {
		return Observation{}, false
	}
	first, ok := b.read((newest + 1) % b.granularity())
	if !ok || first.Timestamp > last.Timestamp {
		return Observation{}, false
	}

	elapsed := last.Timestamp - first.Timestamp
	if elapsed > b.windowSize {
		return Observation{}, false
	}
	if elapsed < b.windowSize-2*b.periodSize {
		return Observation{}, false
	}
	return first, true
}
