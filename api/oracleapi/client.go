// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package oracleapi

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/api"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/ids"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/oracle"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/math"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/rpc"

	avajson "github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/json"
)

var _ Client = (*client)(nil)

// Client interface for the yield oracle API
type Client interface {
	// Consult returns the yield of [sourceID] over [duration] seconds and
	// whether the oracle is warm
	Consult(ctx context.Context, sourceID ids.ID, duration uint64, options ...rpc.Option) (*uint256.Int, bool, error)
	// Update samples [sourceID] and records the reading
	Update(ctx context.Context, sourceID ids.ID, options ...rpc.Option) error
	// GetConfig returns the window configuration of [sourceID]
	GetConfig(ctx context.Context, sourceID ids.ID, options ...rpc.Option) (oracle.Config, error)
	// GetObservations returns the slots of [sourceID]'s window
	GetObservations(ctx context.Context, sourceID ids.ID, options ...rpc.Option) (*GetObservationsReply, error)
	// ListSources returns the IDs of every monitored source
	ListSources(context.Context, ...rpc.Option) ([]ids.ID, error)
	// GetSourceID resolves the configured name of a source into its ID
	GetSourceID(ctx context.Context, alias string, options ...rpc.Option) (ids.ID, error)
}

type client struct {
	requester rpc.EndpointRequester
}

// NewClient returns a new oracle API client
func NewClient(uri string) Client {
	return &client{requester: rpc.NewEndpointRequester(
		uri+"/ext/"+Endpoint,
		Endpoint,
	)}
}

func (c *client) Consult(ctx context.Context, sourceID ids.ID, duration uint64, options ...rpc.Option) (*uint256.Int, bool, error) {
	res := &ConsultReply{}
	err := c.requester.SendRequest(ctx, "consult", &ConsultArgs{
		JSONSourceID: api.JSONSourceID{SourceID: sourceID},
		Duration:     avajson.Uint64(duration),
	}, res, options...)
	if err != nil {
		return nil, false, err
	}
	amount, err := math.ParseUint256(res.Amount)
	return amount, res.Warm, err
}

func (c *client) Update(ctx context.Context, sourceID ids.ID, options ...rpc.Option) error {
	return c.requester.SendRequest(ctx, "update", &api.JSONSourceID{
		SourceID: sourceID,
	}, &api.EmptyReply{}, options...)
}

func (c *client) GetConfig(ctx context.Context, sourceID ids.ID, options ...rpc.Option) (oracle.Config, error) {
	res := &GetConfigReply{}
	err := c.requester.SendRequest(ctx, "getConfig", &api.JSONSourceID{
		SourceID: sourceID,
	}, res, options...)
	return oracle.Config{
		WindowSize:  uint64(res.WindowSize),
		Granularity: uint64(res.Granularity),
	}, err
}

func (c *client) GetObservations(ctx context.Context, sourceID ids.ID, options ...rpc.Option) (*GetObservationsReply, error) {
	res := &GetObservationsReply{}
	err := c.requester.SendRequest(ctx, "getObservations", &api.JSONSourceID{
		SourceID: sourceID,
	}, res, options...)
	return res, err
}

func (c *client) ListSources(ctx context.Context, options ...rpc.Option) ([]ids.ID, error) {
	res := &api.JSONSourceIDs{}
	err := c.requester.SendRequest(ctx, "listSources", struct{}{}, res, options...)
	return res.SourceIDs, err
}

func (c *client) GetSourceID(ctx context.Context, alias string, options ...rpc.Option) (ids.ID, error) {
	res := &api.JSONSourceID{}
	err := c.requester.SendRequest(ctx, "getSourceID", &GetSourceIDArgs{
		Alias: alias,
	}, res, options...)
	return res.SourceID, err
}
