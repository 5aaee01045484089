// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"net/http"
	"time"
)

const DefaultRequestTimeout = 30 * time.Second

var _ EndpointRequester = (*endpointRequester)(nil)

type EndpointRequester interface {
	SendRequest(ctx context.Context, method string, params interface{}, reply interface{}, options ...Option) error
}

type endpointRequester struct {
	client *http.Client
	uri    string
	base   string
}

// NewEndpointRequester issues requests to [uri]. Methods are namespaced by
// [base], so SendRequest(ctx, "consult", ...) calls "<base>.consult".
func NewEndpointRequester(uri, base string) EndpointRequester {
	return &endpointRequester{
		client: &http.Client{Timeout: DefaultRequestTimeout},
		uri:    uri,
		base:   base,
	}
}

func (e *endpointRequester) SendRequest(
	ctx context.Context,
	method string,
	params interface{},
	reply interface{},
	options ...Option,
) error {
	return SendJSONRequest(
		ctx,
		e.client,
		e.uri,
		e.base+"."+method,
		params,
		reply,
		options...,
	)
}
