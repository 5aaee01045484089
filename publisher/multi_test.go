// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package publisher

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/ids"
)

var errTest = errors.New("non-nil error")

type recorder struct {
	events []Event
	err    error
	closed bool
}

func (r *recorder) Publish(_ context.Context, event Event) error {
	r.events = append(r.events, event)
	return r.err
}

func (r *recorder) Close() error {
	r.closed = true
	return r.err
}

func TestNewMultiCollapses(t *testing.T) {
	require := require.New(t)

	require.Equal(Noop{}, NewMulti())

	r := &recorder{}
	require.Same(r, NewMulti(r))
}

func TestMultiFansOut(t *testing.T) {
	require := require.New(t)

	failing := &recorder{err: errTest}
	working := &recorder{}
	p := NewMulti(failing, working)

	event := Event{SourceID: ids.SourceID("compound-usdc")}
	err := p.Publish(context.Background(), event)
	require.ErrorIs(err, errTest)
	require.Equal([]Event{event}, failing.events)
	require.Equal([]Event{event}, working.events)

	require.ErrorIs(p.Close(), errTest)
	require.True(failing.closed)
	require.True(working.closed)
}
