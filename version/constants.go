// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package version

// Client is the name reported by the node and its tooling.
const Client = "yieldoracle"

var (
	Current = &Semantic{
		Major: 0,
		Minor: 3,
		Patch: 1,
	}

	// GitCommit is set by the build script.
	GitCommit string
)
