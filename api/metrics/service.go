// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewHandler returns a handler that serves the metrics of [gatherer] in the
// prometheus exposition format. Scrapes are instrumented on [registerer].
func NewHandler(gatherer prometheus.Gatherer, registerer prometheus.Registerer) http.Handler {
	return promhttp.InstrumentMetricHandler(
		registerer,
		promhttp.HandlerFor(
			gatherer,
			promhttp.HandlerOpts{},
		),
	)
}
