// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package publisher

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/logging"
)

const (
	clientName     = "yieldoracle"
	reconnectWait  = 2 * time.Second
	connectTimeout = 5 * time.Second
)

var _ Publisher = (*natsPublisher)(nil)

type natsPublisher struct {
	log  logging.Logger
	conn *nats.EncodedConn
}

// NewNATS connects to the NATS server at [url] and publishes events encoded as
// JSON.
func NewNATS(log logging.Logger, url string) (Publisher, error) {
	nc, err := nats.Connect(
		url,
		nats.Name(clientName),
		nats.Timeout(connectTimeout),
		nats.ReconnectWait(reconnectWait),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("disconnected from NATS",
				zap.Error(err),
			)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("reconnected to NATS",
				zap.String("url", nc.ConnectedUrlRedacted()),
			)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	ec, err := nats.NewEncodedConn(nc, nats.JSON_ENCODER)
	if err != nil {
		nc.Close()
		return nil, err
	}
	return &natsPublisher{
		log:  log,
		conn: ec,
	}, nil
}

func (p *natsPublisher) Publish(ctx context.Context, event Event) error {
	subject := Subject(event.SourceID)
	if err := p.conn.Publish(subject, event); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	if err := p.conn.Conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("failed to flush %s: %w", subject, err)
	}
	p.log.Debug("published event",
		zap.String("subject", subject),
		zap.Uint64("timestamp", uint64(event.Timestamp)),
	)
	return nil
}

func (p *natsPublisher) Close() error {
	return p.conn.Drain()
}
