// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package oracle

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Snapshot is a copy of an oracle's mutable state.
type Snapshot struct {
	Config            Config
	Slots             []Observation
	Written           []bool
	Latest            uint64
	Initialized       bool
	FirstUpdate       uint64
	LastObserved      Observation
	UnderlyingBalance uint256.Int
}

func (o *Oracle) Snapshot() Snapshot {
	o.lock.RLock()
	defer o.lock.RUnlock()

	return Snapshot{
		Config:            o.config,
		Slots:             append([]Observation(nil), o.buffer.slots...),
		Written:           append([]bool(nil), o.buffer.written...),
		Latest:            o.latest,
		Initialized:       o.initialized,
		FirstUpdate:       o.firstUpdate,
		LastObserved:      o.lastObserved,
		UnderlyingBalance: o.underlyingBalance,
	}
}

// Restore replaces the oracle's state with [s]. The snapshot must have been
// taken from an oracle with the same configuration.
func (o *Oracle) Restore(s Snapshot) error {
	if s.Config != o.config {
		return fmt.Errorf("%w: expected %+v but got %+v", ErrSnapshotMismatch, o.config, s.Config)
	}
	granularity := int(o.config.Granularity)
	if len(s.Slots) != granularity || len(s.Written) != granularity {
		return fmt.Errorf("%w: expected %d slots but got %d", ErrSnapshotMismatch, granularity, len(s.Slots))
	}
	if s.Initialized && (s.Latest >= o.config.Granularity || !s.Written[s.Latest]) {
		return fmt.Errorf("%w: newest slot %d is empty", ErrSnapshotMismatch, s.Latest)
	}

	o.lock.Lock()
	defer o.lock.Unlock()

	copy(o.buffer.slots, s.Slots)
	copy(o.buffer.written, s.Written)
	o.latest = s.Latest
	o.initialized = s.Initialized
	o.firstUpdate = s.FirstUpdate
	o.lastObserved = s.LastObserved
	o.underlyingBalance = s.UnderlyingBalance
	return nil
}
