// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package oracle

import (
	"context"

	"github.com/holiman/uint256"
)

// Reading is a sample of a source's cumulative yield counter.
type Reading struct {
	// Timestamp is the unix time, in seconds, the counter was read at.
	Timestamp uint64
	// Value is the counter, which wraps silently at 2^256.
	Value *uint256.Int
}

// Source is the vault observed by an oracle.
type Source interface {
	// CumulativeYield returns the current value of the counter.
	CumulativeYield(ctx context.Context) (Reading, error)
	// UnderlyingBalance returns the principal currently held by the source.
	UnderlyingBalance(ctx context.Context) (*uint256.Int, error)
}
