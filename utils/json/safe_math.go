// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package json

import (
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/math"

	stdmath "math"
)

func SafeAdd(a, b Uint64) Uint64 {
	ret, err := math.Add64(uint64(a), uint64(b))
	if err != nil {
		return stdmath.MaxUint64
	}
	return Uint64(ret)
}
