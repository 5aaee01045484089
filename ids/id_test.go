// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ids

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIDStringRoundTrip(t *testing.T) {
	require := require.New(t)

	id := SourceID("compound-usdc")
	parsed, err := FromString(id.String())
	require.NoError(err)
	require.Equal(id, parsed)
	require.NotEqual(Empty, id)
	require.Equal(id, SourceID("compound-usdc"))
	require.NotEqual(id, SourceID("aave-usdc"))
}

func TestToIDWrongLength(t *testing.T) {
	_, err := ToID([]byte{1, 2, 3})
	require.ErrorIs(t, err, errWrongLength)
}

func TestIDJSON(t *testing.T) {
	require := require.New(t)

	type wrapper struct {
		Source ID `json:"source"`
	}
	in := wrapper{Source: SourceID("compound-dai")}
	b, err := json.Marshal(in)
	require.NoError(err)
	require.JSONEq(`{"source":"`+in.Source.String()+`"}`, string(b))

	var out wrapper
	require.NoError(json.Unmarshal(b, &out))
	require.Equal(in, out)
}

func TestIDCompare(t *testing.T) {
	require := require.New(t)

	a := ID{1}
	b := ID{2}
	require.Negative(a.Compare(b))
	require.Positive(b.Compare(a))
	require.Zero(a.Compare(a))
}
