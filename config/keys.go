// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

// EnvPrefix is prepended to the upper cased key of every flag that may also be
// set through the environment.
const EnvPrefix = "yieldoracle"

const (
	ConfigFileKey        = "config-file"
	ConfigFileTypeKey    = "config-file-type"
	VersionKey           = "version"
	DataDirKey           = "data-dir"
	MetricsNamespaceKey  = "metrics-namespace"
	NATSURLKey           = "nats-url"
	HealthCheckFreqKey   = "health-check-frequency"
	RequiredDiskSpaceKey = "required-available-disk-space"

	// Logging
	LogsDirKey                   = "log-dir"
	LogLevelKey                  = "log-level"
	LogDisplayLevelKey           = "log-display-level"
	LogFormatKey                 = "log-format"
	LogDisableDisplayKey         = "log-disable-display"
	LogRotaterMaxSizeKey         = "log-rotater-max-size"
	LogRotaterMaxFilesKey        = "log-rotater-max-files"
	LogRotaterMaxAgeKey          = "log-rotater-max-age"
	LogRotaterCompressEnabledKey = "log-rotater-compress-enabled"

	// HTTP API
	HTTPHostKey            = "http-host"
	HTTPPortKey            = "http-port"
	HTTPAllowedOriginsKey  = "http-allowed-origins"
	HTTPAllowedHostsKey    = "http-allowed-hosts"
	HTTPShutdownTimeoutKey = "http-shutdown-timeout"
	AdminAPIEnabledKey     = "api-admin-enabled"
	UpdateRateLimitKey     = "api-update-rate-limit"
	UpdateBurstKey         = "api-update-burst"

	// Database
	DBTypeKey           = "db-type"
	DBPathKey           = "db-dir"
	DBRedisAddrKey      = "db-redis-addr"
	DBRedisPasswordKey  = "db-redis-password"
	DBRedisDBKey        = "db-redis-db"
	DBRedisNamespaceKey = "db-redis-namespace"
	DBRedisTimeoutKey   = "db-redis-timeout"

	// Oracle
	OracleWindowSizeKey     = "oracle-window-size"
	OracleGranularityKey    = "oracle-granularity"
	OracleUpdateIntervalKey = "oracle-update-interval"

	// Sources
	SourcesKey             = "sources"
	RedisSourceAddrKey     = "redis-source-addr"
	RedisSourcePasswordKey = "redis-source-password"
	RedisSourceDBKey       = "redis-source-db"
	RedisSourcePrefixKey   = "redis-source-prefix"

	// Tracing
	TracingExporterTypeKey = "tracing-exporter-type"
	TracingEndpointKey     = "tracing-endpoint"
	TracingInsecureKey     = "tracing-insecure"
	TracingSampleRateKey   = "tracing-sample-rate"
	TracingHeadersKey      = "tracing-headers"
)
