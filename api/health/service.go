// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package health

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/rpc/v2"
	"go.uber.org/zap"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/logging"

	avajson "github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/json"
)

// Service wraps a [Reporter] to be available over JSON-RPC.
type Service struct {
	log    logging.Logger
	health Reporter
}

// APIReply is the response for Readiness and Health.
type APIReply struct {
	Checks  map[string]Result `json:"checks"`
	Healthy bool              `json:"healthy"`
}

// APIArgs is the arguments for Readiness and Health.
type APIArgs struct{}

// Readiness returns if the oracles have warmed up.
func (s *Service) Readiness(_ *http.Request, _ *APIArgs, reply *APIReply) error {
	s.log.Debug("API called",
		zap.String("service", "health"),
		zap.String("method", "readiness"),
	)
	reply.Checks, reply.Healthy = s.health.Readiness()
	return nil
}

// Health returns a summation of the health of the service.
func (s *Service) Health(_ *http.Request, _ *APIArgs, reply *APIReply) error {
	s.log.Debug("API called",
		zap.String("service", "health"),
		zap.String("method", "health"),
	)
	reply.Checks, reply.Healthy = s.health.Health()
	return nil
}

// NewGetAndPostHandler returns a handler that serves the health report on GET
// and the JSON-RPC service on POST.
func NewGetAndPostHandler(log logging.Logger, reporter Reporter) (http.Handler, error) {
	newServer := rpc.NewServer()
	codec := avajson.NewCodec()
	newServer.RegisterCodec(codec, "application/json")
	newServer.RegisterCodec(codec, "application/json;charset=UTF-8")

	getHandler := NewGetHandler(reporter.Health)
	err := newServer.RegisterService(
		&Service{
			log:    log,
			health: reporter,
		},
		"health",
	)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			getHandler.ServeHTTP(w, r)
			return
		}
		newServer.ServeHTTP(w, r)
	}), err
}

// NewGetHandler writes the result of [reporter] as JSON, responding with 503
// when it reports unhealthy.
func NewGetHandler(reporter func() (map[string]Result, bool)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		checks, healthy := reporter()
		w.Header().Set("Content-Type", "application/json")
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		// The encoder will write an error to the response body on failure.
		_ = json.NewEncoder(w).Encode(APIReply{
			Checks:  checks,
			Healthy: healthy,
		})
	})
}
