// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	dto "github.com/prometheus/client_model/go"
)

var (
	_ LabelGatherer = (*labelGatherer)(nil)

	errDuplicateGatherer = errors.New("attempt to register duplicate gatherer")
)

// LabelGatherer combines multiple gatherers, tagging every metric of a
// registered gatherer with a label.
type LabelGatherer interface {
	prometheus.Gatherer

	// Register adds the outputs of [gatherer] to the results of future calls
	// to Gather with the provided label value added to the metrics.
	Register(labelValue string, gatherer prometheus.Gatherer) error
}

// NewLabelGatherer returns a new LabelGatherer that merges metrics by adding
// [labelName].
func NewLabelGatherer(labelName string) LabelGatherer {
	return &labelGatherer{
		labelName: labelName,
	}
}

type labelGatherer struct {
	lock      sync.RWMutex
	labelName string
	names     []string
	gatherers prometheus.Gatherers
}

func (g *labelGatherer) Gather() ([]*dto.MetricFamily, error) {
	g.lock.RLock()
	defer g.lock.RUnlock()

	return g.gatherers.Gather()
}

func (g *labelGatherer) Register(labelValue string, gatherer prometheus.Gatherer) error {
	g.lock.Lock()
	defer g.lock.Unlock()

	if slices.Contains(g.names, labelValue) {
		return fmt.Errorf("%w: for %q with label %q",
			errDuplicateGatherer,
			g.labelName,
			labelValue,
		)
	}

	g.names = append(g.names, labelValue)
	g.gatherers = append(g.gatherers, &labeledGatherer{
		labelName:  g.labelName,
		labelValue: labelValue,
		gatherer:   gatherer,
	})
	return nil
}

type labeledGatherer struct {
	labelName  string
	labelValue string
	gatherer   prometheus.Gatherer
}

func (g *labeledGatherer) Gather() ([]*dto.MetricFamily, error) {
	// Gather returns partially filled metrics in the case of an error. So, it
	// is expected to still return the metrics in the case an error is returned.
	metricFamilies, err := g.gatherer.Gather()
	for _, metricFamily := range metricFamilies {
		for _, metric := range metricFamily.Metric {
			metric.Label = append(metric.Label, &dto.LabelPair{
				Name:  &g.labelName,
				Value: &g.labelValue,
			})
		}
	}
	return metricFamilies, err
}
