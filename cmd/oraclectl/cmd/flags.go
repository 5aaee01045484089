// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/version"
)

const (
	URIKey     = "uri"
	TimeoutKey = "timeout"

	DefaultURI     = "http://127.0.0.1:9750"
	DefaultTimeout = 30 * time.Second
)

// Config is shared by every subcommand.
type Config struct {
	URI     string
	Timeout time.Duration
}

func AddFlags(flags *pflag.FlagSet) {
	flags.String(URIKey, DefaultURI, "API URI of the oracle node")
	flags.Duration(TimeoutKey, DefaultTimeout, "Maximum duration of a command")
}

// ParseFlags reads the shared flags of [flags]. Unset flags fall back to
// YIELDORACLE_ prefixed environment variables.
func ParseFlags(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(version.Client)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	config := &Config{
		URI:     strings.TrimSuffix(v.GetString(URIKey), "/"),
		Timeout: v.GetDuration(TimeoutKey),
	}
	if config.URI == "" {
		return nil, fmt.Errorf("--%s must not be empty", URIKey)
	}
	return config, nil
}
