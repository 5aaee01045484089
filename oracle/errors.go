// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package oracle

import "errors"

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrSourceRead           = errors.New("failed to read source")
	ErrSnapshotMismatch     = errors.New("snapshot does not match oracle configuration")
)
