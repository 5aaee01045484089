// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/database/redisdb"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/node"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/oracle"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/trace"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/logging"
)

var (
	errInvalidPort            = errors.New("invalid HTTP port")
	errInvalidUpdateInterval  = errors.New("update interval must be positive")
	errInvalidHealthCheckFreq = errors.New("health check frequency must be positive")
	errInvalidUpdateRateLimit = errors.New("update rate limit must not be negative")
)

// BuildViper parses [args] into [fs] and returns a viper instance reading,
// in decreasing priority, the flags, the environment and the config file.
func BuildViper(fs *pflag.FlagSet, args []string) (*viper.Viper, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix(EnvPrefix)
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	configFile := GetExpandedArg(v, ConfigFileKey)
	if configFile == "" {
		defaultConfigFile := GetExpandedString(v, defaultConfigFileLocation)
		if _, err := os.Stat(defaultConfigFile); err == nil {
			configFile = defaultConfigFile
		}
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType(v.GetString(ConfigFileTypeKey))
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("couldn't read config file %q: %w", configFile, err)
		}
	}
	return v, nil
}

func getLoggingConfig(v *viper.Viper) (logging.Config, error) {
	loggingConfig := logging.Config{}
	loggingConfig.Directory = GetExpandedArg(v, LogsDirKey)

	var err error
	loggingConfig.LogLevel, err = logging.ToLevel(v.GetString(LogLevelKey))
	if err != nil {
		return loggingConfig, err
	}

	logDisplayLevel := v.GetString(LogLevelKey)
	if v.IsSet(LogDisplayLevelKey) {
		logDisplayLevel = v.GetString(LogDisplayLevelKey)
	}
	loggingConfig.DisplayLevel, err = logging.ToLevel(logDisplayLevel)
	if err != nil {
		return loggingConfig, err
	}

	loggingConfig.LogFormat, err = logging.ToFormat(v.GetString(LogFormatKey), os.Stdout.Fd())
	if err != nil {
		return loggingConfig, err
	}

	loggingConfig.DisableWriterDisplaying = v.GetBool(LogDisableDisplayKey)
	loggingConfig.MaxSize = int(v.GetUint(LogRotaterMaxSizeKey))
	loggingConfig.MaxFiles = int(v.GetUint(LogRotaterMaxFilesKey))
	loggingConfig.MaxAge = int(v.GetUint(LogRotaterMaxAgeKey))
	loggingConfig.Compress = v.GetBool(LogRotaterCompressEnabledKey)
	return loggingConfig, nil
}

func getHTTPConfig(v *viper.Viper) (node.HTTPConfig, error) {
	port := v.GetUint(HTTPPortKey)
	if port > math.MaxUint16 {
		return node.HTTPConfig{}, fmt.Errorf("%w: %d", errInvalidPort, port)
	}
	return node.HTTPConfig{
		Host:            v.GetString(HTTPHostKey),
		Port:            uint16(port),
		AllowedOrigins:  v.GetStringSlice(HTTPAllowedOriginsKey),
		AllowedHosts:    v.GetStringSlice(HTTPAllowedHostsKey),
		ShutdownTimeout: v.GetDuration(HTTPShutdownTimeoutKey),
	}, nil
}

func getAPIConfig(v *viper.Viper) (node.APIConfig, error) {
	limit := v.GetFloat64(UpdateRateLimitKey)
	if limit < 0 {
		return node.APIConfig{}, fmt.Errorf("%w: %f", errInvalidUpdateRateLimit, limit)
	}
	return node.APIConfig{
		AdminAPIEnabled: v.GetBool(AdminAPIEnabledKey),
		UpdateRateLimit: rate.Limit(limit),
		UpdateBurst:     v.GetInt(UpdateBurstKey),
	}, nil
}

func getDatabaseConfig(v *viper.Viper) node.DatabaseConfig {
	return node.DatabaseConfig{
		Name: v.GetString(DBTypeKey),
		Path: GetExpandedArg(v, DBPathKey),
		Redis: redisdb.Config{
			Addr:      v.GetString(DBRedisAddrKey),
			Password:  v.GetString(DBRedisPasswordKey),
			DB:        v.GetInt(DBRedisDBKey),
			Namespace: v.GetString(DBRedisNamespaceKey),
			Timeout:   v.GetDuration(DBRedisTimeoutKey),
		},
	}
}

func getTraceConfig(v *viper.Viper) (trace.Config, error) {
	exporterType, err := trace.ExporterTypeFromString(v.GetString(TracingExporterTypeKey))
	if err != nil {
		return trace.Config{}, err
	}
	return trace.Config{
		ExporterConfig: trace.ExporterConfig{
			Type:     exporterType,
			Endpoint: v.GetString(TracingEndpointKey),
			Insecure: v.GetBool(TracingInsecureKey),
			Headers:  v.GetStringMapString(TracingHeadersKey),
		},
		TraceSampleRate: v.GetFloat64(TracingSampleRateKey),
	}, nil
}

func getSourcesConfig(v *viper.Viper) ([]node.SourceConfig, error) {
	specs := v.GetStringSlice(SourcesKey)
	sources := make([]node.SourceConfig, 0, len(specs))
	for _, spec := range specs {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}
		source, err := node.ParseSourceConfig(spec)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}
	return sources, nil
}

// GetNodeConfig reads the node's configuration out of [v]
func GetNodeConfig(v *viper.Viper) (node.Config, error) {
	var (
		nodeConfig node.Config
		err        error
	)

	nodeConfig.LoggingConfig, err = getLoggingConfig(v)
	if err != nil {
		return node.Config{}, err
	}

	nodeConfig.HTTPConfig, err = getHTTPConfig(v)
	if err != nil {
		return node.Config{}, err
	}

	nodeConfig.APIConfig, err = getAPIConfig(v)
	if err != nil {
		return node.Config{}, err
	}

	nodeConfig.DatabaseConfig = getDatabaseConfig(v)

	nodeConfig.TraceConfig, err = getTraceConfig(v)
	if err != nil {
		return node.Config{}, err
	}

	nodeConfig.OracleConfig = oracle.Config{
		WindowSize:  v.GetUint64(OracleWindowSizeKey),
		Granularity: v.GetUint64(OracleGranularityKey),
	}

	nodeConfig.UpdateInterval = v.GetDuration(OracleUpdateIntervalKey)
	if nodeConfig.UpdateInterval <= 0 {
		return node.Config{}, fmt.Errorf("%w: %s", errInvalidUpdateInterval, nodeConfig.UpdateInterval)
	}

	nodeConfig.Sources, err = getSourcesConfig(v)
	if err != nil {
		return node.Config{}, err
	}
	nodeConfig.RedisSource = node.RedisSourceConfig{
		Addr:     v.GetString(RedisSourceAddrKey),
		Password: v.GetString(RedisSourcePasswordKey),
		DB:       v.GetInt(RedisSourceDBKey),
		Prefix:   v.GetString(RedisSourcePrefixKey),
	}

	nodeConfig.HealthCheckFreq = v.GetDuration(HealthCheckFreqKey)
	if nodeConfig.HealthCheckFreq <= 0 {
		return node.Config{}, fmt.Errorf("%w: %s", errInvalidHealthCheckFreq, nodeConfig.HealthCheckFreq)
	}
	nodeConfig.RequiredAvailableDiskSpace = v.GetUint64(RequiredDiskSpaceKey)

	nodeConfig.NATSURL = v.GetString(NATSURLKey)
	nodeConfig.MetricsNamespace = v.GetString(MetricsNamespaceKey)

	return nodeConfig, nodeConfig.Verify()
}
