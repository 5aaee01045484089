// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package health

import (
	"context"
	"errors"
	"time"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/timer/mockable"
)

var (
	_ Checker = CheckerFunc(nil)

	// ErrHeartbeatNotDetected is returned when a heartbeat has not been
	// detected recently enough.
	ErrHeartbeatNotDetected = errors.New("heartbeat not detected")
	errNotYetRun            = errors.New("not yet run")

	notYetRunErr    = errNotYetRun.Error()
	notYetRunResult = Result{
		Error: &notYetRunErr,
	}
)

// Checker can have its health checked
type Checker interface {
	// HealthCheck returns health check results and, if not healthy, a non-nil
	// error
	//
	// It is expected that the results are json marshallable.
	HealthCheck(context.Context) (interface{}, error)
}

type CheckerFunc func(context.Context) (interface{}, error)

func (f CheckerFunc) HealthCheck(ctx context.Context) (interface{}, error) {
	return f(ctx)
}

// Result is the result of a health check.
type Result struct {
	// Details of the HealthCheck.
	Details interface{} `json:"message,omitempty"`

	// Error is the string representation of the error returned by the failing
	// HealthCheck. The value is nil if the check passed.
	Error *string `json:"error,omitempty"`

	// Timestamp of the last HealthCheck.
	Timestamp time.Time `json:"timestamp,omitempty"`

	// Duration is the amount of time this HealthCheck last took to evaluate.
	Duration time.Duration `json:"duration"`

	// ContiguousFailures the HealthCheck has returned.
	ContiguousFailures int64 `json:"contiguousFailures,omitempty"`

	// TimeOfFirstFailure of the HealthCheck,
	TimeOfFirstFailure *time.Time `json:"timeOfFirstFailure,omitempty"`
}

// Heartbeater reports the unix time of its most recent pulse. A zero value
// means no pulse has been observed yet.
type Heartbeater interface {
	Heartbeat() uint64
}

type HeartbeaterFunc func() uint64

func (f HeartbeaterFunc) Heartbeat() uint64 {
	return f()
}

// HeartbeatChecker fails once [hb] has not pulsed within [maxAge] of [clock].
func HeartbeatChecker(hb Heartbeater, maxAge time.Duration, clock *mockable.Clock) Checker {
	return CheckerFunc(func(context.Context) (interface{}, error) {
		beat := hb.Heartbeat()
		details := map[string]uint64{"heartbeat": beat}
		if beat == 0 {
			return details, ErrHeartbeatNotDetected
		}

		last := time.Unix(int64(beat), 0)
		if last.Add(maxAge).Before(clock.Time()) {
			return details, ErrHeartbeatNotDetected
		}
		return details, nil
	})
}
