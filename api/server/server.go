// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/logging"
)

const (
	baseURL           = "/ext"
	readHeaderTimeout = 10 * time.Second
)

var _ Server = (*server)(nil)

// Server maintains the HTTP router
type Server interface {
	// Dispatch starts the API server
	Dispatch() error
	// AddRoute registers a route to a handler.
	AddRoute(handler http.Handler, base, endpoint string) error
	// AddAliases registers aliases to the server
	AddAliases(endpoint string, aliases ...string) error
	// AddAliasesWithReadLock registers aliases to the server assuming the http
	// read lock is currently held.
	AddAliasesWithReadLock(endpoint string, aliases ...string) error
	// Addr returns the address the server is listening on
	Addr() net.Addr
	// Shutdown this server
	Shutdown() error
}

type server struct {
	// log this server writes to
	log logging.Logger
	// requests are logged here in the combined log format
	requestLog io.Writer

	shutdownTimeout time.Duration

	metrics *metrics

	// Maps endpoints to handlers
	router *router

	listener net.Listener
	srv      *http.Server
}

// New returns an instance of a Server.
func New(
	log logging.Logger,
	requestLog io.Writer,
	listener net.Listener,
	allowedOrigins []string,
	shutdownTimeout time.Duration,
	namespace string,
	registerer prometheus.Registerer,
	wrappers ...Wrapper,
) (Server, error) {
	m, err := newMetrics(namespace, registerer)
	if err != nil {
		return nil, err
	}

	router := newRouter()
	log.Info("API created",
		zap.Strings("allowedOrigins", allowedOrigins),
	)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
	}).Handler(router)
	gzipHandler := gziphandler.GzipHandler(corsHandler)
	var handler http.Handler = gzipHandler

	for _, wrapper := range wrappers {
		handler = wrapper.WrapHandler(handler)
	}

	httpServer := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return &server{
		log:             log,
		requestLog:      requestLog,
		shutdownTimeout: shutdownTimeout,
		metrics:         m,
		router:          router,
		listener:        listener,
		srv:             httpServer,
	}, nil
}

func (s *server) Dispatch() error {
	s.log.Info("HTTP API server listening",
		zap.Stringer("address", s.listener.Addr()),
	)
	return s.srv.Serve(s.listener)
}

func (s *server) Addr() net.Addr {
	return s.listener.Addr()
}

func (s *server) AddRoute(handler http.Handler, base, endpoint string) error {
	url := fmt.Sprintf("%s/%s", baseURL, base)
	s.log.Info("adding route",
		zap.String("url", url),
		zap.String("endpoint", endpoint),
	)
	// Apply logging middleware
	h := handlers.CombinedLoggingHandler(s.requestLog, handler)
	h = s.metrics.wrapHandler(base, h)
	return s.router.AddRouter(url, endpoint, h)
}

func (s *server) AddAliases(endpoint string, aliases ...string) error {
	url := fmt.Sprintf("%s/%s", baseURL, endpoint)
	endpoints := make([]string, len(aliases))
	for i, alias := range aliases {
		endpoints[i] = fmt.Sprintf("%s/%s", baseURL, alias)
	}
	return s.router.AddAlias(url, endpoints...)
}

func (s *server) AddAliasesWithReadLock(endpoint string, aliases ...string) error {
	// This is safe, as the read lock doesn't actually need to be held once the
	// http handler is called. However, it is unlocked later, so this function
	// must end with the lock held.
	s.router.lock.RUnlock()
	defer s.router.lock.RLock()

	return s.AddAliases(endpoint, aliases...)
}

func (s *server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	err := s.srv.Shutdown(ctx)
	cancel()

	// If shutdown times out, make sure the server is still shutdown.
	_ = s.srv.Close()
	// The listener is only owned by [srv] once Dispatch was called.
	_ = s.listener.Close()
	return err
}
