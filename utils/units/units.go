// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package units

// Durations in seconds, the time unit of every oracle window.
const (
	Second uint64 = 1
	Minute uint64 = 60 * Second
	Hour   uint64 = 60 * Minute
	Day    uint64 = 24 * Hour
)

// Fixed point scale of an 18 decimal underlying token.
const (
	Wei   uint64 = 1
	GWei  uint64 = 1_000_000_000 * Wei
	Ether uint64 = 1_000_000_000 * GWei
)
