// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAtomic(t *testing.T) {
	require := require.New(t)

	var a Atomic[bool]
	require.Zero(a.Get())

	a.Set(false)
	require.False(a.Get())

	a.Set(true)
	require.True(a.Get())

	a.Set(false)
	require.False(a.Get())
}

func TestAtomicJSON(t *testing.T) {
	tests := []struct {
		name     string
		value    *Atomic[map[string]uint64]
		expected string
	}{
		{
			name:     "zero value",
			value:    new(Atomic[map[string]uint64]),
			expected: `null`,
		},
		{
			name:     "populated",
			value:    NewAtomic(map[string]uint64{"timestamp": 300}),
			expected: `{"timestamp":300}`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			b, err := json.Marshal(test.value)
			require.NoError(err)
			require.Equal(test.expected, string(b))

			var parsed Atomic[map[string]uint64]
			require.NoError(json.Unmarshal([]byte(test.expected), &parsed))
			require.Equal(test.value.Get(), parsed.Get())
		})
	}
}
