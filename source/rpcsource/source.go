// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpcsource

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/ids"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/oracle"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/json"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/math"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/rpc"
)

// Service is the name the remote vault registers its JSON-RPC service under.
const Service = "vault"

var _ oracle.Source = (*Source)(nil)

type GetCumulativesArgs struct {
	SourceID ids.ID `json:"sourceID"`
}

// GetCumulativesReply carries 256 bit values as decimal strings.
type GetCumulativesReply struct {
	Cumulative        string      `json:"cumulative"`
	Timestamp         json.Uint64 `json:"timestamp"`
	UnderlyingBalance string      `json:"underlyingBalance"`
}

// Source reads a vault exposed over JSON-RPC.
type Source struct {
	requester rpc.EndpointRequester
	sourceID  ids.ID
}

// New returns a source querying the vault service at [uri].
func New(uri string, sourceID ids.ID) *Source {
	return &Source{
		requester: rpc.NewEndpointRequester(uri, Service),
		sourceID:  sourceID,
	}
}

func (s *Source) getCumulatives(ctx context.Context) (*GetCumulativesReply, error) {
	reply := &GetCumulativesReply{}
	err := s.requester.SendRequest(ctx, "getCumulatives", &GetCumulativesArgs{
		SourceID: s.sourceID,
	}, reply)
	return reply, err
}

func (s *Source) CumulativeYield(ctx context.Context) (oracle.Reading, error) {
	reply, err := s.getCumulatives(ctx)
	if err != nil {
		return oracle.Reading{}, err
	}
	value, err := math.ParseUint256(reply.Cumulative)
	if err != nil {
		return oracle.Reading{}, fmt.Errorf("failed to parse cumulative: %w", err)
	}
	return oracle.Reading{
		Timestamp: uint64(reply.Timestamp),
		Value:     value,
	}, nil
}

func (s *Source) UnderlyingBalance(ctx context.Context) (*uint256.Int, error) {
	reply, err := s.getCumulatives(ctx)
	if err != nil {
		return nil, err
	}
	balance, err := math.ParseUint256(reply.UnderlyingBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to parse underlying balance: %w", err)
	}
	return balance, nil
}
