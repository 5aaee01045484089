// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/database/leveldb"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/database/memdb"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/database/redisdb"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/node"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/source/redissource"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/trace"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/units"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/version"
)

const (
	DefaultHTTPPort = 9750

	defaultWindowSize  = 3 * units.Day
	defaultGranularity = 24
)

var (
	// [defaultUnexpandedDataDir] will be expanded when reading the flags
	defaultDataDir            = filepath.Join("$HOME", "."+version.Client)
	dataDirVar                = strings.ToUpper(strings.ReplaceAll(DataDirKey, "-", "_"))
	defaultUnexpandedDataDir  = "$" + dataDirVar
	defaultLogDir             = filepath.Join(defaultUnexpandedDataDir, "logs")
	defaultDBDir              = filepath.Join(defaultUnexpandedDataDir, "db")
	defaultConfigFileLocation = filepath.Join(defaultUnexpandedDataDir, "configs", "node.json")
)

func addNodeFlags(fs *pflag.FlagSet) {
	// Home directory
	fs.String(DataDirKey, defaultDataDir, "Sets the base data directory where default sub-directories will be placed unless otherwise specified.")

	// Version
	fs.Bool(VersionKey, false, "If true, print version and quit")

	// Config file
	fs.String(ConfigFileKey, "", fmt.Sprintf("Specifies a config file. Defaults to %s if it exists", defaultConfigFileLocation))
	fs.String(ConfigFileTypeKey, "json", "Specifies the format of the config file. One of {json, yaml, toml}")

	// Logging
	fs.String(LogsDirKey, defaultLogDir, "Logging directory")
	fs.String(LogLevelKey, "info", "The log level. Should be one of {verbo, debug, trace, info, warn, error, fatal, off}")
	fs.String(LogDisplayLevelKey, "", "The log display level. If left blank, will inherit the value of log-level. Otherwise, should be one of {verbo, debug, trace, info, warn, error, fatal, off}")
	fs.String(LogFormatKey, "auto", "The structure of log format. Defaults to 'auto' which formats terminal-like logs, when the output is a terminal. Otherwise, should be one of {auto, plain, colors, json}")
	fs.Bool(LogDisableDisplayKey, false, "If true, logs are only written to the log files")
	fs.Uint(LogRotaterMaxSizeKey, 8, "The maximum file size in megabytes of the log file before it gets rotated.")
	fs.Uint(LogRotaterMaxFilesKey, 7, "The maximum number of old log files to retain. 0 means retain all old log files.")
	fs.Uint(LogRotaterMaxAgeKey, 0, "The maximum number of days to retain old log files based on the timestamp encoded in their filename. 0 means retain all old log files.")
	fs.Bool(LogRotaterCompressEnabledKey, false, "Enables the compression of rotated log files through gzip.")

	// HTTP API
	fs.String(HTTPHostKey, "127.0.0.1", "Address of the HTTP server. If the address is empty or a literal unspecified IP address, the server will bind on all available unicast and anycast IP addresses of the local system")
	fs.Uint(HTTPPortKey, DefaultHTTPPort, "Port of the HTTP server. If the port is 0 a port number is automatically chosen")
	fs.StringSlice(HTTPAllowedOriginsKey, []string{"*"}, "Origins to allow on the HTTP port. Defaults to * which allows all origins")
	fs.StringSlice(HTTPAllowedHostsKey, []string{"localhost"}, "List of acceptable host names in API requests. Provide the wildcard ('*') to accept requests from all hosts")
	fs.Duration(HTTPShutdownTimeoutKey, 10*time.Second, "Maximum duration to wait for existing connections to complete during shutdown")
	fs.Bool(AdminAPIEnabledKey, false, "If true, this node exposes the Admin API")
	fs.Float64(UpdateRateLimitKey, 1, "Number of manual oracle updates accepted per second")
	fs.Int(UpdateBurstKey, 5, "Number of manual oracle updates that may be accepted at once")

	// Database
	fs.String(DBTypeKey, leveldb.Name, fmt.Sprintf("Database type to use. Should be one of {%s, %s, %s}", leveldb.Name, memdb.Name, redisdb.Name))
	fs.String(DBPathKey, defaultDBDir, "Path to database directory")
	fs.String(DBRedisAddrKey, "127.0.0.1:6379", "Address of the redis server used when db-type is redis")
	fs.String(DBRedisPasswordKey, "", "Password of the redis server used when db-type is redis")
	fs.Int(DBRedisDBKey, 0, "Logical database of the redis server used when db-type is redis")
	fs.String(DBRedisNamespaceKey, version.Client, "Prefix of every key written to redis")
	fs.Duration(DBRedisTimeoutKey, 5*time.Second, "Timeout of a single redis operation")

	// Oracle
	fs.Uint64(OracleWindowSizeKey, defaultWindowSize, "Number of seconds covered by the sliding window of every oracle")
	fs.Uint64(OracleGranularityKey, defaultGranularity, "Number of observations in the sliding window. Must evenly divide the window size")
	fs.Duration(OracleUpdateIntervalKey, time.Minute, "Time between two updates of every oracle")

	// Sources
	fs.StringSlice(SourcesKey, nil, fmt.Sprintf("Monitored sources, each of the form <name>:<type>[:<uri>] where type is one of {%s, %s}", node.RPCSource, node.RedisSource))
	fs.String(RedisSourceAddrKey, "127.0.0.1:6379", "Address of the redis server redis sources are read from")
	fs.String(RedisSourcePasswordKey, "", "Password of the redis server redis sources are read from")
	fs.Int(RedisSourceDBKey, 0, "Logical database redis sources are read from")
	fs.String(RedisSourcePrefixKey, redissource.DefaultPrefix, "Prefix of the hashes redis sources are read from")

	// Health
	fs.Duration(HealthCheckFreqKey, 30*time.Second, "Time between health checks")
	fs.Uint64(RequiredDiskSpaceKey, 512*units.MiB, "Minimum number of available bytes on the database volume before the node reports unhealthy")

	// Publishing
	fs.String(NATSURLKey, "", "NATS server update events are published to. Empty disables publishing to NATS")

	// Metrics
	fs.String(MetricsNamespaceKey, version.Client, "Namespace of every exported metric")

	// Tracing
	fs.String(TracingExporterTypeKey, "disabled", fmt.Sprintf("Type of exporter to use for tracing. Options are [disabled, %s, %s]", trace.GRPC, trace.HTTP))
	fs.String(TracingEndpointKey, "", "The endpoint to send trace data to")
	fs.Bool(TracingInsecureKey, true, "If true, don't use TLS when sending trace data")
	fs.Float64(TracingSampleRateKey, 0.1, "The fraction of traces to sample. If >= 1, always sample. If <= 0, never sample")
	fs.StringToString(TracingHeadersKey, map[string]string{}, "The headers to provide the trace indexer")
}

// BuildFlagSet returns a complete set of flags for the oracle node
func BuildFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(version.Client, pflag.ContinueOnError)
	addNodeFlags(fs)
	return fs
}

// GetExpandedArg gets the string in viper corresponding to [key] and expands
// any variables using the OS env. If the DATA_DIR var is used, it expands
// the value of the variable with the value of [DataDirKey].
func GetExpandedArg(v interface{ GetString(string) string }, key string) string {
	return GetExpandedString(v, v.GetString(key))
}

// GetExpandedString expands [s] with any variables using the OS env. If the
// DATA_DIR var is used, it expands the value of the variable with the value
// of [DataDirKey].
func GetExpandedString(v interface{ GetString(string) string }, s string) string {
	return os.Expand(
		s,
		func(strVar string) string {
			if strVar == dataDirVar {
				return os.ExpandEnv(v.GetString(DataDirKey))
			}
			return os.Getenv(strVar)
		},
	)
}
