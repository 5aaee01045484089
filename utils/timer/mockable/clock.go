// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mockable

import (
	"sync"
	"time"
)

// Clock is a wall clock that can be frozen and moved by hand in tests.
//
// The zero value follows the system time.
type Clock struct {
	lock  sync.RWMutex
	faked bool
	time  time.Time
}

// Set freezes the clock at [t].
func (c *Clock) Set(t time.Time) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.faked = true
	c.time = t
}

// Advance moves a frozen clock forward by [d]. A clock following the system
// time is frozen at now+d.
func (c *Clock) Advance(d time.Duration) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if !c.faked {
		c.faked = true
		c.time = time.Now()
	}
	c.time = c.time.Add(d)
}

// Sync makes the clock follow the system time again.
func (c *Clock) Sync() {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.faked = false
}

// Time returns the time on this clock.
func (c *Clock) Time() time.Time {
	c.lock.RLock()
	defer c.lock.RUnlock()

	if c.faked {
		return c.time
	}
	return time.Now()
}

// Unix returns the unix timestamp on this clock, clamped at 0.
func (c *Clock) Unix() uint64 {
	return uint64(max(c.Time().Unix(), 0))
}
