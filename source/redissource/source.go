// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package redissource

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/holiman/uint256"
	"github.com/redis/go-redis/v9"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/ids"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/oracle"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/math"
)

const (
	DefaultPrefix = "vault"

	cumulativeField = "cumulative"
	timestampField  = "timestamp"
	balanceField    = "balance"
)

var (
	_ oracle.Source = (*Source)(nil)

	errMissingField = errors.New("missing field")
	errMissingVault = errors.New("vault not published")
)

// Source reads a vault's counters from a redis hash kept up to date by an
// external indexer:
//
//	HSET <prefix>:<sourceID> cumulative <dec> timestamp <unix> balance <dec>
type Source struct {
	client redis.UniversalClient
	key    string
}

func New(client redis.UniversalClient, prefix string, sourceID ids.ID) *Source {
	return &Source{
		client: client,
		key:    Key(prefix, sourceID),
	}
}

func Key(prefix string, sourceID ids.ID) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + ":" + sourceID.String()
}

func (s *Source) CumulativeYield(ctx context.Context) (oracle.Reading, error) {
	fields, err := s.fields(ctx)
	if err != nil {
		return oracle.Reading{}, err
	}
	return ParseReading(fields)
}

func (s *Source) UnderlyingBalance(ctx context.Context) (*uint256.Int, error) {
	fields, err := s.fields(ctx)
	if err != nil {
		return nil, err
	}
	return parseUint256Field(fields, balanceField)
}

func (s *Source) fields(ctx context.Context) (map[string]string, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %s", errMissingVault, s.key)
	}
	return fields, nil
}

// Publish writes a vault's counters the way an indexer would.
func Publish(
	ctx context.Context,
	client redis.UniversalClient,
	prefix string,
	sourceID ids.ID,
	reading oracle.Reading,
	balance *uint256.Int,
) error {
	return client.HSet(ctx, Key(prefix, sourceID),
		cumulativeField, math.FormatUint256(reading.Value),
		timestampField, strconv.FormatUint(reading.Timestamp, 10),
		balanceField, math.FormatUint256(balance),
	).Err()
}

func ParseReading(fields map[string]string) (oracle.Reading, error) {
	value, err := parseUint256Field(fields, cumulativeField)
	if err != nil {
		return oracle.Reading{}, err
	}
	timestampStr, ok := fields[timestampField]
	if !ok {
		return oracle.Reading{}, fmt.Errorf("%w: %s", errMissingField, timestampField)
	}
	timestamp, err := strconv.ParseUint(timestampStr, 10, 64)
	if err != nil {
		return oracle.Reading{}, fmt.Errorf("failed to parse %s: %w", timestampField, err)
	}
	return oracle.Reading{
		Timestamp: timestamp,
		Value:     value,
	}, nil
}

func parseUint256Field(fields map[string]string, field string) (*uint256.Int, error) {
	str, ok := fields[field]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errMissingField, field)
	}
	value, err := math.ParseUint256(str)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", field, err)
	}
	return value, nil
}
