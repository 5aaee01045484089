// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package oracle

import (
	"context"
	"fmt"
	"sync"

	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/logging"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/math"
)

const tracerName = "yieldoracle/oracle"

type Option func(*Oracle) error

func WithLogger(log logging.Logger) Option {
	return func(o *Oracle) error {
		o.log = log
		return nil
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(o *Oracle) error {
		o.tracer = tracer
		return nil
	}
}

// WithMetrics registers the oracle's metrics with [registerer].
func WithMetrics(namespace string, registerer prometheus.Registerer) Option {
	return func(o *Oracle) error {
		m, err := newMetrics(namespace, registerer)
		o.metrics = m
		return err
	}
}

// Oracle is a sliding window time weighted average over a source's cumulative
// yield counter.
//
// Update and Consult are safe to call concurrently.
type Oracle struct {
	config     Config
	periodSize uint64
	source     Source

	log     logging.Logger
	tracer  trace.Tracer
	metrics *metrics

	lock   sync.RWMutex
	buffer *buffer
	// latest is the index of the newest observation. Only valid once
	// initialized is true.
	latest      uint64
	initialized bool
	firstUpdate uint64

	// lastObserved is the most recent reading, including readings that did
	// not result in a write.
	lastObserved      Observation
	underlyingBalance uint256.Int
}

func New(config Config, source Source, opts ...Option) (*Oracle, error) {
	if err := config.Verify(); err != nil {
		return nil, err
	}

	o := &Oracle{
		config:     config,
		periodSize: config.PeriodSize(),
		source:     source,
		log:        logging.NoLog{},
		tracer:     trace.NewNoopTracerProvider().Tracer(tracerName),
		buffer:     newBuffer(config),
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.metrics == nil {
		m, err := newMetrics("", prometheus.NewRegistry())
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

func (o *Oracle) WindowSize() uint64 {
	return o.config.WindowSize
}

func (o *Oracle) Granularity() uint64 {
	return o.config.Granularity
}

func (o *Oracle) PeriodSize() uint64 {
	return o.periodSize
}

func (o *Oracle) Config() Config {
	return o.config
}

// Update samples the source and records the reading in the slot of the
// current period. A period is only ever recorded once: later readings in the
// same period leave the window untouched.
func (o *Oracle) Update(ctx context.Context) error {
	ctx, span := o.tracer.Start(ctx, "Oracle.Update")
	defer span.End()

	reading, err := o.source.CumulativeYield(ctx)
	if err != nil {
		return o.sourceFailure(span, err)
	}
	if reading.Value == nil {
		reading.Value = new(uint256.Int)
	}
	balance, err := o.source.UnderlyingBalance(ctx)
	if err != nil {
		return o.sourceFailure(span, err)
	}
	if balance == nil {
		balance = new(uint256.Int)
	}

	span.SetAttributes(
		attribute.Int64("timestamp", int64(reading.Timestamp)),
		attribute.String("cumulativeYield", math.FormatUint256(reading.Value)),
	)

	o.lock.Lock()
	defer o.lock.Unlock()

	o.record(reading, balance)
	return nil
}

func (o *Oracle) sourceFailure(span trace.Span, err error) error {
	o.metrics.sourceFailures.Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, "source read failed")
	return fmt.Errorf("%w: %w", ErrSourceRead, err)
}

// record assumes the write lock is held.
func (o *Oracle) record(reading Reading, balance *uint256.Int) {
	observation := Observation{Timestamp: reading.Timestamp}
	observation.CumulativeYield.Set(reading.Value)

	o.lastObserved = observation
	o.underlyingBalance.Set(balance)

	index := o.buffer.indexOf(reading.Timestamp)
	period := o.buffer.period(reading.Timestamp)
	if existing, ok := o.buffer.read(index); ok && o.buffer.period(existing.Timestamp) == period {
		o.metrics.skipped.Inc()
		o.log.Verbo("period already observed",
			zap.Uint64("period", period),
			zap.Uint64("timestamp", reading.Timestamp),
		)
		return
	}

	delta := new(uint256.Int)
	if o.initialized {
		newest, _ := o.buffer.read(o.latest)
		if newest.Timestamp > reading.Timestamp {
			o.metrics.stale.Inc()
			o.log.Warn("dropping stale reading",
				zap.Uint64("timestamp", reading.Timestamp),
				zap.Uint64("newestTimestamp", newest.Timestamp),
			)
			return
		}
		delta = math.WrappingSub(reading.Value, &newest.CumulativeYield)
	} else {
		o.firstUpdate = reading.Timestamp
	}

	o.buffer.write(index, observation)
	o.latest = index
	o.initialized = true

	o.metrics.written.Inc()
	o.metrics.lastUpdate.Set(float64(reading.Timestamp))
	o.metrics.lastDelta.Set(toFloat(delta))
	o.log.Debug("recorded observation",
		zap.Uint64("index", index),
		zap.Uint64("timestamp", reading.Timestamp),
		zap.String("cumulativeYield", math.FormatUint256(&observation.CumulativeYield)),
		zap.String("delta", math.FormatUint256(delta)),
	)
}

// Consult returns the yield accrued over [duration] seconds, extrapolated from
// the average rate across the window. Zero is returned until the window holds
// a full set of observations.
func (o *Oracle) Consult(duration uint64) *uint256.Int {
	o.lock.RLock()
	defer o.lock.RUnlock()

	if !o.initialized {
		return new(uint256.Int)
	}
	newest, _ := o.buffer.read(o.latest)
	oldest, ok := o.buffer.oldestInWindow(o.latest)
	if !ok {
		return new(uint256.Int)
	}

	delta := math.WrappingSub(&newest.CumulativeYield, &oldest.CumulativeYield)
	elapsed := uint256.NewInt(newest.Timestamp - oldest.Timestamp)
	result, err := math.MulDiv(delta, uint256.NewInt(duration), elapsed)
	if err != nil {
		return new(uint256.Int)
	}
	return result
}

// Warm reports whether Consult currently has a valid window to extrapolate
// from.
func (o *Oracle) Warm() bool {
	o.lock.RLock()
	defer o.lock.RUnlock()

	if !o.initialized {
		return false
	}
	_, ok := o.buffer.oldestInWindow(o.latest)
	return ok
}

// Newest returns the most recently written observation.
func (o *Oracle) Newest() (Observation, bool) {
	o.lock.RLock()
	defer o.lock.RUnlock()

	if !o.initialized {
		return Observation{}, false
	}
	return o.buffer.read(o.latest)
}

// LastObserved returns the most recent reading taken from the source, even if
// it was not written to the window.
func (o *Oracle) LastObserved() (Observation, bool) {
	o.lock.RLock()
	defer o.lock.RUnlock()

	return o.lastObserved, o.initialized
}

// UnderlyingBalance returns the source's balance at the last update.
func (o *Oracle) UnderlyingBalance() *uint256.Int {
	o.lock.RLock()
	defer o.lock.RUnlock()

	return new(uint256.Int).Set(&o.underlyingBalance)
}

// FirstUpdate returns the timestamp of the first recorded observation.
func (o *Oracle) FirstUpdate() (uint64, bool) {
	o.lock.RLock()
	defer o.lock.RUnlock()

	return o.firstUpdate, o.initialized
}

// Observations returns a copy of every slot, ordered by slot index, along
// with whether each slot has been written.
func (o *Oracle) Observations() ([]Observation, []bool) {
	o.lock.RLock()
	defer o.lock.RUnlock()

	return append([]Observation(nil), o.buffer.slots...), append([]bool(nil), o.buffer.written...)
}
