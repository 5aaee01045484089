// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package redissource

import (
	"context"
	"os"
	"testing"

	"github.com/holiman/uint256"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/ids"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/oracle"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/math"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/units"
)

func mustParse(t *testing.T, s string) *uint256.Int {
	v, err := math.ParseUint256(s)
	require.NoError(t, err)
	return v
}

func TestParseReading(t *testing.T) {
	tests := []struct {
		name        string
		fields      map[string]string
		expected    oracle.Reading
		expectedErr error
	}{
		{
			name: "valid",
			fields: map[string]string{
				cumulativeField: "123456789012345678901234567890",
				timestampField:  "1700000000",
			},
			expected: oracle.Reading{
				Timestamp: 1_700_000_000,
				Value:     mustParse(t, "123456789012345678901234567890"),
			},
		},
		{
			name: "missing cumulative",
			fields: map[string]string{
				timestampField: "1700000000",
			},
			expectedErr: errMissingField,
		},
		{
			name: "missing timestamp",
			fields: map[string]string{
				cumulativeField: "1",
			},
			expectedErr: errMissingField,
		},
		{
			name: "negative cumulative",
			fields: map[string]string{
				cumulativeField: "-1",
				timestampField:  "1700000000",
			},
			expectedErr: math.ErrInvalidDecimal,
		},
		{
			name: "cumulative wider than the counter",
			fields: map[string]string{
				cumulativeField: "115792089237316195423570985008687907853269984665640564039457584007913129639936",
				timestampField:  "1700000000",
			},
			expectedErr: math.ErrOverflow,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			reading, err := ParseReading(test.fields)
			require.ErrorIs(err, test.expectedErr)
			if test.expectedErr == nil {
				require.Equal(test.expected, reading)
			}
		})
	}
}

func TestKey(t *testing.T) {
	sourceID := ids.SourceID("usdc")
	require.Equal(t, "vault:"+sourceID.String(), Key("", sourceID))
	require.Equal(t, "indexer:"+sourceID.String(), Key("indexer", sourceID))
}

func TestSourceAgainstRedis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	require := require.New(t)
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	prefix := "test:redissource"
	sourceID := ids.SourceID(t.Name())
	require.NoError(client.Del(ctx, Key(prefix, sourceID)).Err())

	s := New(client, prefix, sourceID)
	_, err := s.CumulativeYield(ctx)
	require.ErrorIs(err, errMissingVault)

	reading := oracle.Reading{
		Timestamp: 1_700_000_000,
		Value:     math.MaxUint256(),
	}
	balance := new(uint256.Int).Mul(uint256.NewInt(42), uint256.NewInt(units.Ether))
	require.NoError(Publish(ctx, client, prefix, sourceID, reading, balance))

	got, err := s.CumulativeYield(ctx)
	require.NoError(err)
	require.Equal(reading, got)

	gotBalance, err := s.UnderlyingBalance(ctx)
	require.NoError(err)
	require.Equal(balance, gotBalance)
}
