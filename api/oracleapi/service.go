// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package oracleapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/rpc/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/api"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/ids"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/oracle"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/oracle/registry"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/logging"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/math"

	avajson "github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/json"
)

const Endpoint = "oracle"

var errRateLimited = errors.New("update rate limit exceeded")

// UpdateHandler is notified after a successful update of [sourceID].
type UpdateHandler func(ctx context.Context, sourceID ids.ID, o *oracle.Oracle)

// Service is the API service for consulting the yield oracles
type Service struct {
	log      logging.Logger
	registry *registry.Registry
	limiter  *rate.Limiter
	onUpdate UpdateHandler
}

// NewHandler returns a handler serving the oracle API. Manual updates are
// limited to [updateLimit] per second with bursts of up to [updateBurst].
func NewHandler(
	log logging.Logger,
	registry *registry.Registry,
	updateLimit rate.Limit,
	updateBurst int,
	onUpdate UpdateHandler,
) (http.Handler, error) {
	server := rpc.NewServer()
	codec := avajson.NewCodec()
	server.RegisterCodec(codec, "application/json")
	server.RegisterCodec(codec, "application/json;charset=UTF-8")
	return server, server.RegisterService(
		&Service{
			log:      log,
			registry: registry,
			limiter:  rate.NewLimiter(updateLimit, updateBurst),
			onUpdate: onUpdate,
		},
		Endpoint,
	)
}

// ConsultArgs are the arguments for Consult
type ConsultArgs struct {
	api.JSONSourceID
	Duration avajson.Uint64 `json:"duration"`
}

// ConsultReply is the response from Consult
type ConsultReply struct {
	// Amount is the decimal yield accrued over the requested duration
	Amount string `json:"amount"`
	// Warm is false while the window has not filled up
	Warm bool `json:"warm"`
}

// Consult returns the yield of a source extrapolated over a duration
func (s *Service) Consult(_ *http.Request, args *ConsultArgs, reply *ConsultReply) error {
	s.log.Debug("API called",
		zap.String("service", Endpoint),
		zap.String("method", "consult"),
		zap.Stringer("sourceID", args.SourceID),
		zap.Uint64("duration", uint64(args.Duration)),
	)

	o, err := s.registry.Get(args.SourceID)
	if err != nil {
		return err
	}

	reply.Amount = math.FormatUint256(o.Consult(uint64(args.Duration)))
	reply.Warm = o.Warm()
	return nil
}

// Update samples a source and records the reading
func (s *Service) Update(r *http.Request, args *api.JSONSourceID, _ *api.EmptyReply) error {
	s.log.Debug("API called",
		zap.String("service", Endpoint),
		zap.String("method", "update"),
		zap.Stringer("sourceID", args.SourceID),
	)

	if !s.limiter.Allow() {
		return errRateLimited
	}

	o, err := s.registry.Get(args.SourceID)
	if err != nil {
		return err
	}

	ctx := r.Context()
	if err := o.Update(ctx); err != nil {
		return err
	}
	if s.onUpdate != nil {
		s.onUpdate(ctx, args.SourceID, o)
	}
	return nil
}

// GetConfigReply is the response from GetConfig
type GetConfigReply struct {
	WindowSize  avajson.Uint64 `json:"windowSize"`
	Granularity avajson.Uint64 `json:"granularity"`
	PeriodSize  avajson.Uint64 `json:"periodSize"`
}

// GetConfig returns the window configuration of a source's oracle
func (s *Service) GetConfig(_ *http.Request, args *api.JSONSourceID, reply *GetConfigReply) error {
	s.log.Debug("API called",
		zap.String("service", Endpoint),
		zap.String("method", "getConfig"),
		zap.Stringer("sourceID", args.SourceID),
	)

	o, err := s.registry.Get(args.SourceID)
	if err != nil {
		return err
	}

	reply.WindowSize = avajson.Uint64(o.WindowSize())
	reply.Granularity = avajson.Uint64(o.Granularity())
	reply.PeriodSize = avajson.Uint64(o.PeriodSize())
	return nil
}

// APIObservation is a single slot of an oracle's window
type APIObservation struct {
	Index           avajson.Uint64 `json:"index"`
	Timestamp       avajson.Uint64 `json:"timestamp"`
	CumulativeYield string         `json:"cumulativeYield"`
	Written         bool           `json:"written"`
}

// GetObservationsReply is the response from GetObservations
type GetObservationsReply struct {
	Observations []APIObservation `json:"observations"`
	// Latest is the index of the newest observation, if any was written
	Latest *avajson.Uint64 `json:"latest,omitempty"`
	// LastObserved is the most recent reading, written or not
	LastObserved      *APIObservation `json:"lastObserved,omitempty"`
	UnderlyingBalance string          `json:"underlyingBalance"`
}

// GetObservations returns every slot of a source's oracle
func (s *Service) GetObservations(_ *http.Request, args *api.JSONSourceID, reply *GetObservationsReply) error {
	s.log.Debug("API called",
		zap.String("service", Endpoint),
		zap.String("method", "getObservations"),
		zap.Stringer("sourceID", args.SourceID),
	)

	o, err := s.registry.Get(args.SourceID)
	if err != nil {
		return err
	}

	slots, written := o.Observations()
	reply.Observations = make([]APIObservation, len(slots))
	for i, slot := range slots {
		reply.Observations[i] = APIObservation{
			Index:           avajson.Uint64(i),
			Timestamp:       avajson.Uint64(slot.Timestamp),
			CumulativeYield: math.FormatUint256(&slot.CumulativeYield),
			Written:         written[i],
		}
	}

	if newest, ok := o.Newest(); ok {
		latest := avajson.Uint64((newest.Timestamp / o.PeriodSize()) % o.Granularity())
		reply.Latest = &latest
	}
	if last, ok := o.LastObserved(); ok {
		reply.LastObserved = &APIObservation{
			Index:           avajson.Uint64((last.Timestamp / o.PeriodSize()) % o.Granularity()),
			Timestamp:       avajson.Uint64(last.Timestamp),
			CumulativeYield: math.FormatUint256(&last.CumulativeYield),
		}
	}
	reply.UnderlyingBalance = math.FormatUint256(o.UnderlyingBalance())
	return nil
}

// ListSources returns the IDs of every monitored source
func (s *Service) ListSources(_ *http.Request, _ *struct{}, reply *api.JSONSourceIDs) error {
	s.log.Debug("API called",
		zap.String("service", Endpoint),
		zap.String("method", "listSources"),
	)

	reply.SourceIDs = s.registry.IDs()
	return nil
}

// GetSourceIDArgs are the arguments for GetSourceID
type GetSourceIDArgs struct {
	Alias string `json:"alias"`
}

// GetSourceID resolves the name a source was configured with into its ID
func (s *Service) GetSourceID(_ *http.Request, args *GetSourceIDArgs, reply *api.JSONSourceID) error {
	s.log.Debug("API called",
		zap.String("service", Endpoint),
		zap.String("method", "getSourceID"),
		logging.UserString("alias", args.Alias),
	)

	sourceID, err := s.registry.Lookup(args.Alias)
	if err != nil {
		return err
	}
	reply.SourceID = sourceID
	return nil
}
