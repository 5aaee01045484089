// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cb58

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	require := require.New(t)

	for _, raw := range [][]byte{
		nil,
		{},
		{0},
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
	} {
		str, err := Encode(raw)
		require.NoError(err)

		got, err := Decode(str)
		require.NoError(err)
		require.Len(got, len(raw))
		if len(raw) > 0 {
			require.Equal(raw, got)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	require := require.New(t)

	_, err := Decode("0OIl")
	require.ErrorIs(err, ErrBase58Decoding)

	_, err = Decode("1")
	require.ErrorIs(err, ErrMissingChecksum)

	str, err := Encode([]byte{1, 2, 3})
	require.NoError(err)
	corrupted := []byte(str)
	if corrupted[0] == '2' {
		corrupted[0] = '3'
	} else {
		corrupted[0] = '2'
	}
	_, err = Decode(string(corrupted))
	require.Error(err)
}
