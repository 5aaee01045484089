// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package health

import (
	"context"
	"time"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/rpc"
)

var _ Client = (*client)(nil)

// Client interface for the health API
type Client interface {
	// Readiness returns if the oracles have warmed up
	Readiness(context.Context, ...rpc.Option) (*APIReply, error)
	// Health returns a summation of the health of the service
	Health(context.Context, ...rpc.Option) (*APIReply, error)
}

type client struct {
	requester rpc.EndpointRequester
}

// NewClient returns a client to interact with the health API at [uri]
func NewClient(uri string) Client {
	return &client{requester: rpc.NewEndpointRequester(
		uri+"/ext/health",
		"health",
	)}
}

func (c *client) Readiness(ctx context.Context, options ...rpc.Option) (*APIReply, error) {
	res := &APIReply{}
	err := c.requester.SendRequest(ctx, "readiness", &APIArgs{}, res, options...)
	return res, err
}

func (c *client) Health(ctx context.Context, options ...rpc.Option) (*APIReply, error) {
	res := &APIReply{}
	err := c.requester.SendRequest(ctx, "health", &APIArgs{}, res, options...)
	return res, err
}

// AwaitReady polls the service every [freq] until it reports ready.
// Only returns an error if [ctx] returns an error.
func AwaitReady(ctx context.Context, c Client, freq time.Duration, options ...rpc.Option) (bool, error) {
	return await(ctx, freq, c.Readiness, options...)
}

// AwaitHealthy polls the service every [freq] until it reports healthy.
// Only returns an error if [ctx] returns an error.
func AwaitHealthy(ctx context.Context, c Client, freq time.Duration, options ...rpc.Option) (bool, error) {
	return await(ctx, freq, c.Health, options...)
}

func await(
	ctx context.Context,
	freq time.Duration,
	check func(ctx context.Context, options ...rpc.Option) (*APIReply, error),
	options ...rpc.Option,
) (bool, error) {
	ticker := time.NewTicker(freq)
	defer ticker.Stop()

	for {
		res, err := check(ctx, options...)
		if err == nil && res.Healthy {
			return true, nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
}
