// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/logging"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/timer/mockable"
)

const (
	checkFreq    = time.Millisecond
	awaitFreq    = 50 * time.Microsecond
	awaitTimeout = 30 * time.Second
)

var errUnhealthy = errors.New("unhealthy")

func awaitReadiness(t *testing.T, r Reporter, ready bool) {
	require.Eventually(t, func() bool {
		_, ok := r.Readiness()
		return ok == ready
	}, awaitTimeout, awaitFreq)
}

func awaitHealthy(t *testing.T, r Reporter, healthy bool) {
	require.Eventually(t, func() bool {
		_, ok := r.Health()
		return ok == healthy
	}, awaitTimeout, awaitFreq)
}

func TestDuplicatedRegistrations(t *testing.T) {
	require := require.New(t)

	check := CheckerFunc(func(context.Context) (interface{}, error) {
		return "", nil
	})

	h, err := New(logging.NoLog{}, "oracle", prometheus.NewRegistry())
	require.NoError(err)

	require.NoError(h.RegisterReadinessCheck("check", check))
	err = h.RegisterReadinessCheck("check", check)
	require.ErrorIs(err, errDuplicateCheck)

	require.NoError(h.RegisterHealthCheck("check", check))
	err = h.RegisterHealthCheck("check", check)
	require.ErrorIs(err, errDuplicateCheck)
}

func TestDefaultFailing(t *testing.T) {
	require := require.New(t)

	check := CheckerFunc(func(context.Context) (interface{}, error) {
		return "", nil
	})

	h, err := New(logging.NoLog{}, "oracle", prometheus.NewRegistry())
	require.NoError(err)

	{
		require.NoError(h.RegisterReadinessCheck("check", check))

		readinessResult, readiness := h.Readiness()
		require.Len(readinessResult, 1)
		require.Contains(readinessResult, "check")
		require.Equal(notYetRunResult, readinessResult["check"])
		require.False(readiness)
	}

	{
		require.NoError(h.RegisterHealthCheck("check", check))

		healthResult, health := h.Health()
		require.Len(healthResult, 1)
		require.Contains(healthResult, "check")
		require.Equal(notYetRunResult, healthResult["check"])
		require.False(health)
	}
}

func TestPassingChecks(t *testing.T) {
	require := require.New(t)

	check := CheckerFunc(func(context.Context) (interface{}, error) {
		return "", nil
	})

	h, err := New(logging.NoLog{}, "oracle", prometheus.NewRegistry())
	require.NoError(err)

	require.NoError(h.RegisterReadinessCheck("check", check))
	require.NoError(h.RegisterHealthCheck("check", check))

	h.Start(context.Background(), checkFreq)
	defer h.Stop()

	awaitReadiness(t, h, true)
	awaitHealthy(t, h, true)

	{
		readinessResult, readiness := h.Readiness()
		require.Len(readinessResult, 1)
		result := readinessResult["check"]
		require.Equal("", result.Details)
		require.Nil(result.Error)
		require.Zero(result.ContiguousFailures)
		require.Nil(result.TimeOfFirstFailure)
		require.True(readiness)
	}

	{
		healthResult, health := h.Health()
		require.Len(healthResult, 1)
		result := healthResult["check"]
		require.Equal("", result.Details)
		require.Nil(result.Error)
		require.Zero(result.ContiguousFailures)
		require.Nil(result.TimeOfFirstFailure)
		require.True(health)
	}
}

func TestPassingThenFailingChecks(t *testing.T) {
	require := require.New(t)

	var (
		lock    sync.Mutex
		failing bool
	)
	check := CheckerFunc(func(context.Context) (interface{}, error) {
		lock.Lock()
		defer lock.Unlock()

		if failing {
			return "", errUnhealthy
		}
		return "", nil
	})

	h, err := New(logging.NoLog{}, "oracle", prometheus.NewRegistry())
	require.NoError(err)

	require.NoError(h.RegisterReadinessCheck("check", check))
	require.NoError(h.RegisterHealthCheck("check", check))

	h.Start(context.Background(), checkFreq)
	defer h.Stop()

	awaitReadiness(t, h, true)
	awaitHealthy(t, h, true)

	lock.Lock()
	failing = true
	lock.Unlock()

	awaitHealthy(t, h, false)

	// Readiness is monotonic
	_, readiness := h.Readiness()
	require.True(readiness)

	healthResult, health := h.Health()
	require.False(health)
	result := healthResult["check"]
	require.NotNil(result.Error)
	require.Equal(errUnhealthy.Error(), *result.Error)
	require.Positive(result.ContiguousFailures)
	require.NotNil(result.TimeOfFirstFailure)
}

func TestFailingChecksMetric(t *testing.T) {
	require := require.New(t)

	check := CheckerFunc(func(context.Context) (interface{}, error) {
		return nil, errUnhealthy
	})

	registry := prometheus.NewRegistry()
	w, err := newWorker("oracle_health", registry)
	require.NoError(err)

	require.NoError(w.RegisterCheck("a", check))
	require.NoError(w.RegisterCheck("b", CheckerFunc(func(context.Context) (interface{}, error) {
		return nil, nil
	})))

	w.runChecks(context.Background())

	families, err := registry.Gather()
	require.NoError(err)
	require.Len(families, 1)
	require.Equal("oracle_health_checks_failing", families[0].GetName())
	require.Equal(float64(1), families[0].GetMetric()[0].GetGauge().GetValue())
}

func TestHeartbeatChecker(t *testing.T) {
	start := time.Unix(1_000, 0)
	tests := []struct {
		name        string
		beat        uint64
		elapsed     time.Duration
		expectedErr error
	}{
		{
			name:        "never pulsed",
			beat:        0,
			expectedErr: ErrHeartbeatNotDetected,
		},
		{
			name: "fresh",
			beat: 1_000,
		},
		{
			name:    "at limit",
			beat:    1_000,
			elapsed: time.Minute,
		},
		{
			name:        "stale",
			beat:        1_000,
			elapsed:     time.Minute + time.Second,
			expectedErr: ErrHeartbeatNotDetected,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			clock := &mockable.Clock{}
			clock.Set(start.Add(test.elapsed))

			checker := HeartbeatChecker(
				HeartbeaterFunc(func() uint64 { return test.beat }),
				time.Minute,
				clock,
			)
			details, err := checker.HealthCheck(context.Background())
			require.ErrorIs(err, test.expectedErr)
			require.Equal(map[string]uint64{"heartbeat": test.beat}, details)
		})
	}
}

func TestGetHandler(t *testing.T) {
	require := require.New(t)

	h, err := New(logging.NoLog{}, "oracle", prometheus.NewRegistry())
	require.NoError(err)
	require.NoError(h.RegisterHealthCheck("check", CheckerFunc(func(context.Context) (interface{}, error) {
		return nil, nil
	})))

	handler := NewGetHandler(h.Health)

	// Not yet run
	{
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(http.StatusServiceUnavailable, w.Code)

		var reply APIReply
		require.NoError(json.NewDecoder(w.Body).Decode(&reply))
		require.False(reply.Healthy)
		require.Contains(reply.Checks, "check")
	}

	h.Start(context.Background(), checkFreq)
	defer h.Stop()
	awaitHealthy(t, h, true)

	{
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(http.StatusOK, w.Code)

		var reply APIReply
		require.NoError(json.NewDecoder(w.Body).Decode(&reply))
		require.True(reply.Healthy)
	}
}

func TestClient(t *testing.T) {
	require := require.New(t)

	h, err := New(logging.NoLog{}, "oracle", prometheus.NewRegistry())
	require.NoError(err)
	require.NoError(h.RegisterReadinessCheck("warm", CheckerFunc(func(context.Context) (interface{}, error) {
		return nil, nil
	})))
	require.NoError(h.RegisterHealthCheck("fresh", CheckerFunc(func(context.Context) (interface{}, error) {
		return nil, errUnhealthy
	})))

	handler, err := NewGetAndPostHandler(logging.NoLog{}, h)
	require.NoError(err)

	mux := http.NewServeMux()
	mux.Handle("/ext/health", handler)
	server := httptest.NewServer(mux)
	defer server.Close()

	h.Start(context.Background(), checkFreq)
	defer h.Stop()
	awaitReadiness(t, h, true)

	c := NewClient(server.URL)
	ctx := context.Background()

	ready, err := AwaitReady(ctx, c, checkFreq)
	require.NoError(err)
	require.True(ready)

	reply, err := c.Health(ctx)
	require.NoError(err)
	require.False(reply.Healthy)
	require.Contains(reply.Checks, "fresh")

	timeoutCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	healthy, err := AwaitHealthy(timeoutCtx, c, checkFreq)
	require.ErrorIs(err, context.DeadlineExceeded)
	require.False(healthy)
}
