// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package publisher

import (
	"context"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/ids"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/oracle"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/json"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/math"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/units"
)

// SubjectPrefix is prepended to the source ID to form the subject events are
// published on.
const SubjectPrefix = "yieldoracle."

// Event describes the state of an oracle after an update.
type Event struct {
	SourceID        ids.ID      `json:"sourceID"`
	Timestamp       json.Uint64 `json:"timestamp"`
	CumulativeYield string      `json:"cumulative"`
	// DailyYield is the oracle's consult over one day.
	DailyYield        string `json:"dailyYield"`
	UnderlyingBalance string `json:"underlyingBalance"`
	Warm              bool   `json:"warm"`
}

// NewEvent describes the newest observation of [o]. False is returned if [o]
// has not recorded anything yet.
func NewEvent(sourceID ids.ID, o *oracle.Oracle) (Event, bool) {
	newest, ok := o.Newest()
	if !ok {
		return Event{}, false
	}
	return Event{
		SourceID:          sourceID,
		Timestamp:         json.Uint64(newest.Timestamp),
		CumulativeYield:   math.FormatUint256(&newest.CumulativeYield),
		DailyYield:        math.FormatUint256(o.Consult(units.Day)),
		UnderlyingBalance: math.FormatUint256(o.UnderlyingBalance()),
		Warm:              o.Warm(),
	}, true
}

// Subject returns the subject events of [sourceID] are published on.
func Subject(sourceID ids.ID) string {
	return SubjectPrefix + sourceID.String()
}

// Publisher fans out oracle updates to external consumers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

var _ Publisher = Noop{}

// Noop drops every event.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error {
	return nil
}

func (Noop) Close() error {
	return nil
}
