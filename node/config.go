// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package node

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/database/redisdb"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/oracle"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/trace"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/logging"
)

const (
	// RPCSource reads cumulatives from a remote vault over JSON-RPC.
	RPCSource = "rpc"
	// RedisSource reads cumulatives published into redis by an indexer.
	RedisSource = "redis"
)

var (
	errInvalidSourceSpec   = errors.New("invalid source specification")
	errUnknownSourceType   = errors.New("unknown source type")
	errDuplicateSourceName = errors.New("duplicate source name")
	errNoSources           = errors.New("no sources configured")
)

type HTTPConfig struct {
	Host            string        `json:"host"`
	Port            uint16        `json:"port"`
	AllowedOrigins  []string      `json:"allowedOrigins"`
	AllowedHosts    []string      `json:"allowedHosts"`
	ShutdownTimeout time.Duration `json:"shutdownTimeout"`
}

type APIConfig struct {
	AdminAPIEnabled bool `json:"adminAPIEnabled"`
	// UpdateRateLimit is the number of manual updates allowed per second
	UpdateRateLimit rate.Limit `json:"updateRateLimit"`
	UpdateBurst     int        `json:"updateBurst"`
}

type DatabaseConfig struct {
	// Name of the database type to use
	Name string `json:"name"`
	// Path to database
	Path  string         `json:"path"`
	Redis redisdb.Config `json:"redis"`
}

type RedisSourceConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
	Prefix   string `json:"prefix"`
}

// SourceConfig describes one monitored yield source.
type SourceConfig struct {
	// Name is hashed into the source's ID
	Name string `json:"name"`
	Type string `json:"type"`
	// URI of the vault API, only used by rpc sources
	URI string `json:"uri,omitempty"`
}

// ParseSourceConfig parses a source from "<name>:<type>[:<uri>]".
func ParseSourceConfig(spec string) (SourceConfig, error) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) < 2 || parts[0] == "" {
		return SourceConfig{}, fmt.Errorf("%w: %q", errInvalidSourceSpec, spec)
	}

	config := SourceConfig{
		Name: parts[0],
		Type: strings.ToLower(parts[1]),
	}
	switch config.Type {
	case RPCSource:
		if len(parts) != 3 || parts[2] == "" {
			return SourceConfig{}, fmt.Errorf("%w: %q is missing the vault uri", errInvalidSourceSpec, spec)
		}
		config.URI = parts[2]
	case RedisSource:
		if len(parts) != 2 {
			return SourceConfig{}, fmt.Errorf("%w: %q", errInvalidSourceSpec, spec)
		}
	default:
		return SourceConfig{}, fmt.Errorf("%w: %q", errUnknownSourceType, parts[1])
	}
	return config, nil
}

// Config contains all of the configurations of the oracle service.
type Config struct {
	HTTPConfig     `json:"httpConfig"`
	APIConfig      `json:"apiConfig"`
	DatabaseConfig `json:"databaseConfig"`

	LoggingConfig logging.Config `json:"loggingConfig"`
	TraceConfig   trace.Config   `json:"traceConfig"`

	OracleConfig oracle.Config     `json:"oracleConfig"`
	Sources      []SourceConfig    `json:"sources"`
	RedisSource  RedisSourceConfig `json:"redisSource"`

	// UpdateInterval is the time between two updates of every oracle
	UpdateInterval time.Duration `json:"updateInterval"`

	// HealthCheckFreq is the time between two health check evaluations
	HealthCheckFreq time.Duration `json:"healthCheckFreq"`
	// RequiredAvailableDiskSpace is the minimum free space, in bytes, of the
	// database volume before the health check fails
	RequiredAvailableDiskSpace uint64 `json:"requiredAvailableDiskSpace"`

	// NATSURL is the server update events are published to. Empty disables
	// publishing to NATS.
	NATSURL string `json:"natsURL"`

	MetricsNamespace string `json:"metricsNamespace"`
}

// Verify returns an error if the configuration can not run.
func (c *Config) Verify() error {
	if err := c.OracleConfig.Verify(); err != nil {
		return err
	}
	if len(c.Sources) == 0 {
		return errNoSources
	}
	names := make(map[string]struct{}, len(c.Sources))
	for _, source := range c.Sources {
		if _, ok := names[source.Name]; ok {
			return fmt.Errorf("%w: %q", errDuplicateSourceName, source.Name)
		}
		names[source.Name] = struct{}{}
	}
	return nil
}
