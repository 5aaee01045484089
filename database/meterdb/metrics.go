// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package meterdb

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// nanosecondsBuckets spans 100ns to ~1.7s.
var nanosecondsBuckets = prometheus.ExponentialBuckets(100, 4, 12)

func newMetric(namespace, name string) prometheus.Histogram {
	return prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      name,
		Help:      fmt.Sprintf("Latency of a %s call in nanoseconds", name),
		Buckets:   nanosecondsBuckets,
	})
}

type metrics struct {
	has,
	get,
	put,
	delete,
	newBatch,
	healthCheck,
	close,
	bPut,
	bDelete,
	bWrite,
	bReset prometheus.Histogram
}

func (m *metrics) initialize(
	namespace string,
	registerer prometheus.Registerer,
) error {
	m.has = newMetric(namespace, "has")
	m.get = newMetric(namespace, "get")
	m.put = newMetric(namespace, "put")
	m.delete = newMetric(namespace, "delete")
	m.newBatch = newMetric(namespace, "new_batch")
	m.healthCheck = newMetric(namespace, "health_check")
	m.close = newMetric(namespace, "close")
	m.bPut = newMetric(namespace, "batch_put")
	m.bDelete = newMetric(namespace, "batch_delete")
	m.bWrite = newMetric(namespace, "batch_write")
	m.bReset = newMetric(namespace, "batch_reset")

	return errors.Join(
		registerer.Register(m.has),
		registerer.Register(m.get),
		registerer.Register(m.put),
		registerer.Register(m.delete),
		registerer.Register(m.newBatch),
		registerer.Register(m.healthCheck),
		registerer.Register(m.close),
		registerer.Register(m.bPut),
		registerer.Register(m.bDelete),
		registerer.Register(m.bWrite),
		registerer.Register(m.bReset),
	)
}
