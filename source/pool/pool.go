// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pool simulates a yield bearing vault that keeps its own cumulative
// yield counter and drives an oracle every time the counter moves.
package pool

import (
	"context"
	"sync"

	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/oracle"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/logging"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/math"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/timer/mockable"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/units"
)

var (
	_ oracle.Source = (*Pool)(nil)

	// yieldScale is the fixed point unit that yield is normalised to: the
	// counter accrues the yield earned by one whole underlying token.
	yieldScale = uint256.NewInt(units.Ether)
)

// Updater is notified after the pool cumulates.
type Updater interface {
	Update(ctx context.Context) error
}

type Pool struct {
	clock *mockable.Clock
	log   logging.Logger

	lock                  sync.RWMutex
	updater               Updater
	cumulative            uint256.Int
	cumulativeTimestamp   uint64
	underlyingBalance     uint256.Int
	underlyingBalanceLast uint256.Int
}

func New(clock *mockable.Clock, log logging.Logger) *Pool {
	return &Pool{
		clock: clock,
		log:   log,
	}
}

// SetUpdater attaches the oracle that is updated on every cumulate.
func (p *Pool) SetUpdater(updater Updater) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.updater = updater
}

func (p *Pool) CumulativeYield(context.Context) (oracle.Reading, error) {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return oracle.Reading{
		Timestamp: p.clock.Unix(),
		Value:     new(uint256.Int).Set(&p.cumulative),
	}, nil
}

func (p *Pool) UnderlyingBalance(context.Context) (*uint256.Int, error) {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return new(uint256.Int).Set(&p.underlyingBalance), nil
}

// CumulativeTimestamp returns the time the counter was last moved.
func (p *Pool) CumulativeTimestamp() uint64 {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return p.cumulativeTimestamp
}

// SetCumulativeYield overwrites the counter.
func (p *Pool) SetCumulativeYield(value *uint256.Int, at uint64) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.cumulative.Set(value)
	p.cumulativeTimestamp = at
}

// AddCumulativeYield moves the counter forward by [delta], wrapping at 2^256.
func (p *Pool) AddCumulativeYield(delta *uint256.Int, at uint64) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.cumulative.Add(&p.cumulative, delta)
	p.cumulativeTimestamp = at
}

// SetUnderlyingBalance replaces the balance without accruing yield. The next
// cumulate measures yield against the last cumulated balance.
func (p *Pool) SetUnderlyingBalance(balance *uint256.Int) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.underlyingBalance.Set(balance)
}

// SetUnderlyingBalanceAndCumulate replaces the balance and cumulates.
func (p *Pool) SetUnderlyingBalanceAndCumulate(ctx context.Context, balance *uint256.Int) error {
	p.SetUnderlyingBalance(balance)
	return p.Cumulate(ctx)
}

// Cumulate accrues the growth of the underlying balance since the last
// cumulate, normalised per whole underlying token, and then updates the
// attached oracle.
func (p *Pool) Cumulate(ctx context.Context) error {
	updater := p.cumulate()
	if updater == nil {
		return nil
	}
	return updater.Update(ctx)
}

func (p *Pool) cumulate() Updater {
	p.lock.Lock()
	defer p.lock.Unlock()

	now := p.clock.Unix()
	if now <= p.cumulativeTimestamp {
		return p.updater
	}

	if !p.underlyingBalanceLast.IsZero() && p.underlyingBalance.Gt(&p.underlyingBalanceLast) {
		growth := new(uint256.Int).Sub(&p.underlyingBalance, &p.underlyingBalanceLast)
		accrued, err := math.MulDiv(growth, yieldScale, &p.underlyingBalanceLast)
		if err == nil {
			p.cumulative.Add(&p.cumulative, accrued)
		}
		p.log.Verbo("cumulated yield",
			zap.String("accrued", math.FormatUint256(accrued)),
			zap.String("cumulative", math.FormatUint256(&p.cumulative)),
		)
	}
	p.underlyingBalanceLast.Set(&p.underlyingBalance)
	p.cumulativeTimestamp = now
	return p.updater
}

// CumulativeOverflowProof returns [x] after pushing it through the counter's
// wrapping arithmetic.
func (*Pool) CumulativeOverflowProof(x *uint256.Int) *uint256.Int {
	return math.CumulativeOverflowProof(x)
}
