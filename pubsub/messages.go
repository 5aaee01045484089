// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import "github.com/gustavo821/BarnBridge-SmartYieldBonds/ids"

// Command is sent by a client to change which sources it is notified about.
type Command struct {
	// Subscribe adds the listed sources to the filter
	Subscribe []ids.ID `json:"subscribe,omitempty"`
	// Unsubscribe removes the listed sources from the filter
	Unsubscribe []ids.ID `json:"unsubscribe,omitempty"`
	// All, if set, notifies the client about every source regardless of the
	// listed subscriptions
	All *bool `json:"all,omitempty"`
}

func (c *Command) String() string {
	switch {
	case c.All != nil:
		return "all"
	case len(c.Subscribe) > 0:
		return "subscribe"
	case len(c.Unsubscribe) > 0:
		return "unsubscribe"
	}
	return "unknown"
}

// filter tracks the sources a connection is subscribed to. It is not safe for
// concurrent use.
type filter struct {
	all       bool
	sourceIDs map[ids.ID]struct{}
}

func newFilter() *filter {
	return &filter{
		sourceIDs: make(map[ids.ID]struct{}),
	}
}

func (f *filter) apply(cmd *Command) {
	if cmd.All != nil {
		f.all = *cmd.All
	}
	for _, sourceID := range cmd.Subscribe {
		f.sourceIDs[sourceID] = struct{}{}
	}
	for _, sourceID := range cmd.Unsubscribe {
		delete(f.sourceIDs, sourceID)
	}
}

func (f *filter) matches(sourceID ids.ID) bool {
	if f.all {
		return true
	}
	_, ok := f.sourceIDs[sourceID]
	return ok
}
