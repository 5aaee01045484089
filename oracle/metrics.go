// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package oracle

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/wrappers"
)

type metrics struct {
	written        prometheus.Counter
	skipped        prometheus.Counter
	stale          prometheus.Counter
	sourceFailures prometheus.Counter
	lastUpdate     prometheus.Gauge
	lastDelta      prometheus.Gauge
}

func newMetrics(namespace string, registerer prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		written: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "observations_written",
			Help:      "Number of updates that wrote a new observation",
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_skipped",
			Help:      "Number of updates that found the current period already observed",
		}),
		stale: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_stale",
			Help:      "Number of updates whose reading was older than the newest observation",
		}),
		sourceFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_failures",
			Help:      "Number of updates that failed to read the source",
		}),
		lastUpdate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_observation_timestamp",
			Help:      "Unix timestamp of the newest observation",
		}),
		lastDelta: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_cumulative_delta",
			Help:      "Cumulative yield accrued between the two newest observations",
		}),
	}

	errs := wrappers.Errs{}
	errs.Add(
		registerer.Register(m.written),
		registerer.Register(m.skipped),
		registerer.Register(m.stale),
		registerer.Register(m.sourceFailures),
		registerer.Register(m.lastUpdate),
		registerer.Register(m.lastDelta),
	)
	return m, errs.Err
}

func toFloat(x *uint256.Int) float64 {
	f, _ := new(big.Float).SetInt(x.ToBig()).Float64()
	return f
}
