// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package json

import (
	"encoding/json"
	stdmath "math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUint64(t *testing.T) {
	require := require.New(t)

	for _, v := range []uint64{0, 1, 86_400, stdmath.MaxUint64} {
		bytes, err := json.Marshal(Uint64(v))
		require.NoError(err)

		var parsed Uint64
		require.NoError(json.Unmarshal(bytes, &parsed))
		require.Equal(Uint64(v), parsed)
	}

	var parsed Uint64
	require.NoError(json.Unmarshal([]byte("86400"), &parsed))
	require.Equal(Uint64(86_400), parsed)

	require.Error(json.Unmarshal([]byte(`"-1"`), &parsed))
}

func TestSafeAdd(t *testing.T) {
	require.Equal(t, Uint64(3), SafeAdd(1, 2))
	require.Equal(t, Uint64(stdmath.MaxUint64), SafeAdd(stdmath.MaxUint64, 1))
}
