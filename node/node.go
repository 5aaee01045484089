// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package node

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/shirou/gopsutil/disk"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/api/admin"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/api/health"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/api/metrics"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/api/oracleapi"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/api/server"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/database"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/database/leveldb"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/database/memdb"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/database/meterdb"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/database/prefixdb"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/database/redisdb"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/ids"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/oracle"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/oracle/registry"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/publisher"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/pubsub"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/source/redissource"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/source/rpcsource"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/trace"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/logging"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/timer/mockable"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/version"
)

const (
	healthBase  = "health"
	metricsBase = "metrics"
	adminBase   = "admin"

	eventsEndpoint = "/events"

	databaseCheck  = "database"
	diskSpaceCheck = "diskspace"
	warmCheck      = "warm/"
	freshCheck     = "fresh/"
)

var (
	oracleDBPrefix = []byte("oracle")

	errUnknownDatabase       = errors.New("unknown database type")
	errInsufficientDiskSpace = errors.New("insufficient available disk space")
	errNotWarm               = errors.New("oracle window has not filled up")
)

// Node is an instance of the yield oracle service.
type Node struct {
	Log        logging.Logger
	LogFactory logging.Factory
	Config     *Config

	// Storage for the persisted oracle windows
	DB database.Database

	// Metrics of the node itself
	MetricsRegisterer *prometheus.Registry
	// Metrics of the oracles, labeled by source
	oracleGatherer metrics.LabelGatherer

	tracer trace.Tracer
	clock  mockable.Clock

	redisClient redis.UniversalClient
	registry    *registry.Registry

	publisher    publisher.Publisher
	pubsubServer *pubsub.Server

	health health.Health

	APIServer server.Server

	// Guards concurrent snapshots of the registry into DB
	persistLock sync.Mutex
	// Tracks the update loop so shutdown can wait for it to stop
	updating sync.WaitGroup

	// This node's context, cancelled on shutdown
	ctx    context.Context
	cancel context.CancelFunc

	shuttingDown         utils.Atomic[bool]
	shuttingDownExitCode utils.Atomic[int]
	shutdownOnce         sync.Once

	// Incremented only once on initialization.
	// Decremented when node is done shutting down.
	DoneShuttingDown sync.WaitGroup
}

// New returns an initialized node. [logFactory] is closed by the caller.
func New(
	config *Config,
	logFactory logging.Factory,
	log logging.Logger,
) (*Node, error) {
	if err := config.Verify(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	n := &Node{
		Log:        log,
		LogFactory: logFactory,
		Config:     config,
	}
	n.ctx, n.cancel = context.WithCancel(context.Background())
	n.DoneShuttingDown.Add(1)

	n.Log.Info("initializing node",
		zap.Stringer("version", version.Current),
		zap.Reflect("config", n.Config),
	)

	if err := n.initMetrics(); err != nil {
		return nil, fmt.Errorf("couldn't initialize metrics: %w", err)
	}
	if err := n.initDatabase(); err != nil {
		return nil, fmt.Errorf("couldn't initialize database: %w", err)
	}
	if err := n.initTracer(); err != nil {
		return nil, fmt.Errorf("couldn't initialize tracer: %w", err)
	}
	if err := n.initRegistry(); err != nil {
		return nil, fmt.Errorf("couldn't initialize oracles: %w", err)
	}
	if err := n.initPublisher(); err != nil {
		return nil, fmt.Errorf("couldn't initialize publisher: %w", err)
	}
	if err := n.initHealth(); err != nil {
		return nil, fmt.Errorf("couldn't initialize health: %w", err)
	}
	if err := n.initAPIServer(); err != nil {
		return nil, fmt.Errorf("couldn't initialize API server: %w", err)
	}
	if err := n.initAPIs(); err != nil {
		return nil, fmt.Errorf("couldn't initialize APIs: %w", err)
	}
	return n, nil
}

func (n *Node) initMetrics() error {
	n.MetricsRegisterer = prometheus.NewRegistry()
	n.oracleGatherer = metrics.NewLabelGatherer("source")
	return errors.Join(
		n.MetricsRegisterer.Register(collectors.NewGoCollector()),
		n.MetricsRegisterer.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})),
	)
}

func (n *Node) initDatabase() error {
	var (
		db  database.Database
		err error
	)
	switch n.Config.DatabaseConfig.Name {
	case leveldb.Name:
		db, err = leveldb.New(n.Config.DatabaseConfig.Path, n.Log, 0, 0, 0)
		if err != nil {
			return err
		}
	case memdb.Name:
		db = memdb.New()
	case redisdb.Name:
		db = redisdb.New(n.Config.DatabaseConfig.Redis)
	default:
		return fmt.Errorf("%w: %q", errUnknownDatabase, n.Config.DatabaseConfig.Name)
	}

	meterDB, err := meterdb.New(n.Config.MetricsNamespace+"_db", n.MetricsRegisterer, db)
	if err != nil {
		return errors.Join(err, db.Close())
	}
	n.DB = prefixdb.New(oracleDBPrefix, meterDB)

	n.Log.Info("initialized database",
		zap.String("name", n.Config.DatabaseConfig.Name),
		zap.String("path", n.Config.DatabaseConfig.Path),
	)
	return nil
}

func (n *Node) initTracer() error {
	config := n.Config.TraceConfig
	if config.Version == "" {
		config.Version = version.Current.String()
	}

	var err error
	n.tracer, err = trace.New(config)
	return err
}

func (n *Node) newSource(config SourceConfig, sourceID ids.ID) (oracle.Source, error) {
	switch config.Type {
	case RPCSource:
		return rpcsource.New(config.URI, sourceID), nil
	case RedisSource:
		if n.redisClient == nil {
			n.redisClient = redis.NewClient(&redis.Options{
				Addr:     n.Config.RedisSource.Addr,
				Password: n.Config.RedisSource.Password,
				DB:       n.Config.RedisSource.DB,
			})
		}
		return redissource.New(n.redisClient, n.Config.RedisSource.Prefix, sourceID), nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownSourceType, config.Type)
	}
}

// initRegistry creates one oracle per configured source and restores any
// window persisted by a previous run.
func (n *Node) initRegistry() error {
	n.registry = registry.New(n.Log)
	for _, sourceConfig := range n.Config.Sources {
		sourceID := ids.SourceID(sourceConfig.Name)
		source, err := n.newSource(sourceConfig, sourceID)
		if err != nil {
			return err
		}

		oracleRegistry := prometheus.NewRegistry()
		o, err := oracle.New(
			n.Config.OracleConfig,
			source,
			oracle.WithLogger(n.Log.With(
				zap.String("source", sourceConfig.Name),
			)),
			oracle.WithTracer(n.tracer),
			oracle.WithMetrics(n.Config.MetricsNamespace, oracleRegistry),
		)
		if err != nil {
			return fmt.Errorf("couldn't create oracle %q: %w", sourceConfig.Name, err)
		}
		if err := n.oracleGatherer.Register(sourceID.String(), oracleRegistry); err != nil {
			return err
		}
		if err := n.registry.Register(sourceID, o); err != nil {
			return err
		}
		if err := n.registry.Alias(sourceID, sourceConfig.Name); err != nil {
			return err
		}
	}
	return n.registry.Restore(n.DB)
}

func (n *Node) initPublisher() error {
	n.pubsubServer = pubsub.New(n.Log)
	publishers := []publisher.Publisher{n.pubsubServer}
	if n.Config.NATSURL != "" {
		natsPublisher, err := publisher.NewNATS(n.Log, n.Config.NATSURL)
		if err != nil {
			return err
		}
		publishers = append(publishers, natsPublisher)
	}
	n.publisher = publisher.NewMulti(publishers...)
	return nil
}

func (n *Node) initHealth() error {
	var err error
	n.health, err = health.New(n.Log, n.Config.MetricsNamespace, n.MetricsRegisterer)
	if err != nil {
		return err
	}

	if err := n.health.RegisterHealthCheck(databaseCheck, health.CheckerFunc(n.DB.HealthCheck)); err != nil {
		return err
	}
	if n.Config.DatabaseConfig.Name == leveldb.Name {
		if err := n.health.RegisterHealthCheck(diskSpaceCheck, health.CheckerFunc(n.checkDiskSpace)); err != nil {
			return err
		}
	}

	maxAge := 2 * max(
		time.Duration(n.Config.OracleConfig.PeriodSize())*time.Second,
		n.Config.UpdateInterval,
	)
	for _, sourceID := range n.registry.IDs() {
		o, err := n.registry.Get(sourceID)
		if err != nil {
			return err
		}
		name := n.registry.Name(sourceID)

		warm := health.CheckerFunc(func(context.Context) (interface{}, error) {
			details := map[string]interface{}{"sourceID": sourceID}
			if !o.Warm() {
				return details, errNotWarm
			}
			return details, nil
		})
		if err := n.health.RegisterReadinessCheck(warmCheck+name, warm); err != nil {
			return err
		}

		newest := health.HeartbeaterFunc(func() uint64 {
			observation, _ := o.Newest()
			return observation.Timestamp
		})
		if err := n.health.RegisterHealthCheck(freshCheck+name, health.HeartbeatChecker(newest, maxAge, &n.clock)); err != nil {
			return err
		}
	}
	return nil
}

func (n *Node) checkDiskSpace(context.Context) (interface{}, error) {
	usage, err := disk.Usage(n.Config.DatabaseConfig.Path)
	if err != nil {
		return nil, err
	}

	details := map[string]uint64{
		"availableDiskBytes": usage.Free,
		"requiredDiskBytes":  n.Config.RequiredAvailableDiskSpace,
	}
	if usage.Free < n.Config.RequiredAvailableDiskSpace {
		return details, fmt.Errorf("%w: %d < %d",
			errInsufficientDiskSpace,
			usage.Free,
			n.Config.RequiredAvailableDiskSpace,
		)
	}
	return details, nil
}

func (n *Node) initAPIServer() error {
	address := net.JoinHostPort(n.Config.HTTPConfig.Host, strconv.Itoa(int(n.Config.HTTPConfig.Port)))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}

	requestLog, err := n.LogFactory.Make("http")
	if err != nil {
		_ = listener.Close()
		return err
	}

	n.APIServer, err = server.New(
		n.Log,
		requestLog,
		listener,
		n.Config.HTTPConfig.AllowedOrigins,
		n.Config.HTTPConfig.ShutdownTimeout,
		n.Config.MetricsNamespace+"_api",
		n.MetricsRegisterer,
		server.AllowedHosts(n.Config.HTTPConfig.AllowedHosts),
	)
	if err != nil {
		_ = listener.Close()
		return err
	}

	n.Log.Info("initialized API server",
		zap.Stringer("address", n.APIServer.Addr()),
	)
	return nil
}

func (n *Node) initAPIs() error {
	oracleHandler, err := oracleapi.NewHandler(
		n.Log,
		n.registry,
		n.Config.APIConfig.UpdateRateLimit,
		n.Config.APIConfig.UpdateBurst,
		n.onUpdate,
	)
	if err != nil {
		return err
	}
	if err := n.APIServer.AddRoute(oracleHandler, oracleapi.Endpoint, ""); err != nil {
		return err
	}
	if err := n.APIServer.AddRoute(n.pubsubServer, oracleapi.Endpoint, eventsEndpoint); err != nil {
		return err
	}

	healthHandler, err := health.NewGetAndPostHandler(n.Log, n.health)
	if err != nil {
		return err
	}
	if err := n.APIServer.AddRoute(healthHandler, healthBase, ""); err != nil {
		return err
	}

	gatherer := prometheus.Gatherers{n.MetricsRegisterer, n.oracleGatherer}
	if err := n.APIServer.AddRoute(metrics.NewHandler(gatherer, n.MetricsRegisterer), metricsBase, ""); err != nil {
		return err
	}

	if !n.Config.APIConfig.AdminAPIEnabled {
		n.Log.Info("skipping admin API initialization because it has been disabled")
		return nil
	}
	adminHandler, err := admin.NewService(admin.Config{
		Log:        n.Log,
		LogFactory: n.LogFactory,
		HTTPServer: n.APIServer,
		Persister:  n,
	})
	if err != nil {
		return err
	}
	return n.APIServer.AddRoute(adminHandler, adminBase, "")
}

// Dispatch starts the node's servers and periodic updates. It blocks until
// the node is shut down.
func (n *Node) Dispatch() error {
	eg, ctx := errgroup.WithContext(n.ctx)

	n.health.Start(ctx, n.Config.HealthCheckFreq)

	eg.Go(func() error {
		n.Log.Info("API server listening",
			zap.Stringer("address", n.APIServer.Addr()),
		)
		err := n.APIServer.Dispatch()
		if n.shuttingDown.Get() || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		n.Log.Fatal("API server dispatch failed",
			zap.Error(err),
		)
		return err
	})
	n.updating.Add(1)
	eg.Go(func() error {
		defer n.updating.Done()

		n.updateLoop(ctx)
		return nil
	})

	err := eg.Wait()
	n.Shutdown(1)
	n.DoneShuttingDown.Wait()
	return err
}

func (n *Node) updateLoop(ctx context.Context) {
	ticker := time.NewTicker(n.Config.UpdateInterval)
	defer ticker.Stop()

	for {
		n.updateAll(ctx)

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

// updateAll samples every source, publishes the resulting observations and
// persists the windows.
func (n *Node) updateAll(ctx context.Context) {
	updated, err := n.registry.UpdateAll(ctx)
	if err != nil {
		n.Log.Warn("some oracles failed to update",
			zap.Error(err),
		)
	}
	for _, sourceID := range updated {
		o, err := n.registry.Get(sourceID)
		if err != nil {
			continue
		}
		n.publish(ctx, sourceID, o)
	}

	if len(updated) == 0 {
		return
	}
	if err := n.Persist(ctx); err != nil {
		n.Log.Error("failed to persist oracles",
			zap.Error(err),
		)
	}
}

func (n *Node) onUpdate(ctx context.Context, sourceID ids.ID, o *oracle.Oracle) {
	n.publish(ctx, sourceID, o)
}

func (n *Node) publish(ctx context.Context, sourceID ids.ID, o *oracle.Oracle) {
	event, ok := publisher.NewEvent(sourceID, o)
	if !ok {
		return
	}
	if err := n.publisher.Publish(ctx, event); err != nil {
		n.Log.Warn("failed to publish update",
			zap.Stringer("sourceID", sourceID),
			zap.Error(err),
		)
	}
}

// Persist writes the window of every oracle to the database.
func (n *Node) Persist(context.Context) error {
	n.persistLock.Lock()
	defer n.persistLock.Unlock()

	return n.registry.Persist(n.DB)
}

// Registry returns the oracles served by this node.
func (n *Node) Registry() *registry.Registry {
	return n.registry
}

// Health returns the health reports of this node.
func (n *Node) Health() health.Reporter {
	return n.health
}

// Shutdown this node. May be called multiple times; only the first exit code
// is kept.
func (n *Node) Shutdown(exitCode int) {
	if !n.shuttingDown.Get() {
		n.shuttingDownExitCode.Set(exitCode)
	}
	n.shuttingDown.Set(true)
	n.shutdownOnce.Do(n.shutdown)
}

func (n *Node) shutdown() {
	n.Log.Info("shutting down node",
		zap.Int("exitCode", n.ExitCode()),
	)

	n.cancel()
	if err := n.APIServer.Shutdown(); err != nil {
		n.Log.Debug("error during API shutdown",
			zap.Error(err),
		)
	}
	n.health.Stop()
	n.updating.Wait()

	if err := n.Persist(context.Background()); err != nil {
		n.Log.Error("failed to persist oracles during shutdown",
			zap.Error(err),
		)
	}
	if err := n.publisher.Close(); err != nil {
		n.Log.Debug("error closing publisher",
			zap.Error(err),
		)
	}
	if n.redisClient != nil {
		if err := n.redisClient.Close(); err != nil {
			n.Log.Debug("error closing redis source client",
				zap.Error(err),
			)
		}
	}
	if err := n.tracer.Close(); err != nil {
		n.Log.Debug("error closing tracer",
			zap.Error(err),
		)
	}
	if err := n.DB.Close(); err != nil {
		n.Log.Warn("error during DB shutdown",
			zap.Error(err),
		)
	}

	n.DoneShuttingDown.Done()
	n.Log.Info("finished node shutdown")
}

func (n *Node) ExitCode() int {
	return n.shuttingDownExitCode.Get()
}
