// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package admin

import (
	"context"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/api"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/logging"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/rpc"
)

var _ Client = (*client)(nil)

// Client interface for the admin API
type Client interface {
	Alias(ctx context.Context, endpoint string, alias string, options ...rpc.Option) error
	Persist(context.Context, ...rpc.Option) error
	SetLoggerLevel(ctx context.Context, loggerName, logLevel, displayLevel string, options ...rpc.Option) (map[string]LogAndDisplayLevels, error)
	GetLoggerLevel(ctx context.Context, loggerName string, options ...rpc.Option) (map[string]LogAndDisplayLevels, error)
}

type client struct {
	requester rpc.EndpointRequester
}

// NewClient returns a new admin API client
func NewClient(uri string) Client {
	return &client{requester: rpc.NewEndpointRequester(
		uri+"/ext/admin",
		"admin",
	)}
}

func (c *client) Alias(ctx context.Context, endpoint, alias string, options ...rpc.Option) error {
	return c.requester.SendRequest(ctx, "alias", &AliasArgs{
		Endpoint: endpoint,
		Alias:    alias,
	}, &api.EmptyReply{}, options...)
}

func (c *client) Persist(ctx context.Context, options ...rpc.Option) error {
	return c.requester.SendRequest(ctx, "persist", struct{}{}, &api.SuccessResponse{}, options...)
}

func (c *client) SetLoggerLevel(
	ctx context.Context,
	loggerName,
	logLevel,
	displayLevel string,
	options ...rpc.Option,
) (map[string]LogAndDisplayLevels, error) {
	var (
		logLevelArg     *logging.Level
		displayLevelArg *logging.Level
		err             error
	)
	if len(logLevel) > 0 {
		logLevelArg = new(logging.Level)
		*logLevelArg, err = logging.ToLevel(logLevel)
		if err != nil {
			return nil, err
		}
	}
	if len(displayLevel) > 0 {
		displayLevelArg = new(logging.Level)
		*displayLevelArg, err = logging.ToLevel(displayLevel)
		if err != nil {
			return nil, err
		}
	}
	res := &LoggerLevelReply{}
	err = c.requester.SendRequest(ctx, "setLoggerLevel", &SetLoggerLevelArgs{
		LoggerName:   loggerName,
		LogLevel:     logLevelArg,
		DisplayLevel: displayLevelArg,
	}, res, options...)
	return res.LoggerLevels, err
}

func (c *client) GetLoggerLevel(
	ctx context.Context,
	loggerName string,
	options ...rpc.Option,
) (map[string]LogAndDisplayLevels, error) {
	res := &LoggerLevelReply{}
	err := c.requester.SendRequest(ctx, "getLoggerLevel", &GetLoggerLevelArgs{
		LoggerName: loggerName,
	}, res, options...)
	return res.LoggerLevels, err
}
