// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package publisher

import (
	"context"
	"errors"
)

var _ Publisher = multi(nil)

type multi []Publisher

// NewMulti returns a publisher that forwards every event to each of
// [publishers]. A failing publisher does not prevent delivery to the others.
func NewMulti(publishers ...Publisher) Publisher {
	switch len(publishers) {
	case 0:
		return Noop{}
	case 1:
		return publishers[0]
	default:
		return multi(publishers)
	}
}

func (m multi) Publish(ctx context.Context, event Event) error {
	errs := make([]error, 0, len(m))
	for _, p := range m {
		errs = append(errs, p.Publish(ctx, event))
	}
	return errors.Join(errs...)
}

func (m multi) Close() error {
	errs := make([]error, 0, len(m))
	for _, p := range m {
		errs = append(errs, p.Close())
	}
	return errors.Join(errs...)
}
