// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package oracle

import (
	"fmt"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/math"
)

// Config is fixed for the lifetime of an oracle.
type Config struct {
	// WindowSize is the number of seconds covered by the window.
	WindowSize uint64 `json:"windowSize"`
	// Granularity is the number of observation slots in the window.
	Granularity uint64 `json:"granularity"`
}

// PeriodSize is the number of seconds between two slots.
func (c Config) PeriodSize() uint64 {
	if c.Granularity == 0 {
		return 0
	}
	return c.WindowSize / c.Granularity
}

func (c Config) Verify() error {
	switch {
	case c.WindowSize == 0:
		return fmt.Errorf("%w: window size must be positive", ErrInvalidConfiguration)
	case c.Granularity < 2:
		return fmt.Errorf("%w: granularity %d must be at least 2", ErrInvalidConfiguration, c.Granularity)
	}

	periodSize := c.PeriodSize()
	windowSize, err := math.Mul64(periodSize, c.Granularity)
	if err != nil || periodSize == 0 || windowSize != c.WindowSize {
		return fmt.Errorf("%w: granularity %d does not evenly divide window size %d",
			ErrInvalidConfiguration,
			c.Granularity,
			c.WindowSize,
		)
	}
	return nil
}
