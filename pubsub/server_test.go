// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/ids"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/publisher"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/logging"
)

const awaitTimeout = 5 * time.Second

func dial(t *testing.T, s *Server) *websocket.Conn {
	require := require.New(t)

	httpServer := httptest.NewServer(s)
	t.Cleanup(httpServer.Close)

	url := "ws" + strings.TrimPrefix(httpServer.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(err)
	require.NoError(resp.Body.Close())
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

// subscribe sends [cmd] and waits for it to be applied to the server side of
// the only connection.
func subscribe(t *testing.T, s *Server, conn *websocket.Conn, cmd *Command, sourceID ids.ID) {
	require.NoError(t, conn.WriteJSON(cmd))
	require.Eventually(t, func() bool {
		conns := s.connections()
		return len(conns) == 1 && conns[0].matches(sourceID)
	}, awaitTimeout, time.Millisecond)
}

func TestFilter(t *testing.T) {
	require := require.New(t)

	a := ids.SourceID("a")
	b := ids.SourceID("b")

	f := newFilter()
	require.False(f.matches(a))

	f.apply(&Command{Subscribe: []ids.ID{a, b}})
	require.True(f.matches(a))
	require.True(f.matches(b))

	f.apply(&Command{Unsubscribe: []ids.ID{b}})
	require.True(f.matches(a))
	require.False(f.matches(b))

	all := true
	f.apply(&Command{All: &all})
	require.True(f.matches(b))

	all = false
	f.apply(&Command{All: &all})
	require.False(f.matches(b))
}

func TestCommandString(t *testing.T) {
	require := require.New(t)

	all := true
	require.Equal("all", (&Command{All: &all}).String())
	require.Equal("subscribe", (&Command{Subscribe: []ids.ID{{}}}).String())
	require.Equal("unsubscribe", (&Command{Unsubscribe: []ids.ID{{}}}).String())
	require.Equal("unknown", (&Command{}).String())
}

func TestPublishToSubscribers(t *testing.T) {
	require := require.New(t)

	s := New(logging.NoLog{})
	defer func() {
		require.NoError(s.Close())
	}()

	subscribed := ids.SourceID("compound-usdc")
	other := ids.SourceID("aave-dai")

	conn := dial(t, s)
	require.Eventually(func() bool {
		return s.NumConnections() == 1
	}, awaitTimeout, time.Millisecond)

	subscribe(t, s, conn, &Command{Subscribe: []ids.ID{subscribed}}, subscribed)

	ctx := context.Background()
	require.NoError(s.Publish(ctx, publisher.Event{
		SourceID:  other,
		Timestamp: 1_000,
	}))
	expected := publisher.Event{
		SourceID:        subscribed,
		Timestamp:       1_100,
		CumulativeYield: "250",
		DailyYield:      "0",
	}
	require.NoError(s.Publish(ctx, expected))

	require.NoError(conn.SetReadDeadline(time.Now().Add(awaitTimeout)))
	var event publisher.Event
	require.NoError(conn.ReadJSON(&event))
	require.Equal(expected, event)
}

func TestInvalidCommandClosesConnection(t *testing.T) {
	require := require.New(t)

	s := New(logging.NoLog{})
	defer func() {
		require.NoError(s.Close())
	}()

	conn := dial(t, s)
	require.Eventually(func() bool {
		return s.NumConnections() == 1
	}, awaitTimeout, time.Millisecond)

	require.NoError(conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	require.Eventually(func() bool {
		return s.NumConnections() == 0
	}, awaitTimeout, time.Millisecond)
}
