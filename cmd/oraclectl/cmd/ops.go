// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/api/admin"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/api/health"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/api/metrics"
)

const (
	readinessKey    = "readiness"
	prefixKey       = "prefix"
	logLevelKey     = "log-level"
	displayLevelKey = "display-level"
)

var errUnhealthy = errors.New("unhealthy")

func healthCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "health",
		Short: "Prints the health checks of the node",
		Args:  cobra.NoArgs,
		RunE:  healthFunc,
	}
	c.Flags().Bool(readinessKey, false, "Report readiness instead of liveness")
	return c
}

func healthFunc(c *cobra.Command, _ []string) error {
	config, ctx, cancel, err := setup(c)
	if err != nil {
		return err
	}
	defer cancel()

	readiness, err := c.Flags().GetBool(readinessKey)
	if err != nil {
		return err
	}

	client := health.NewClient(config.URI)
	check := client.Health
	if readiness {
		check = client.Readiness
	}
	reply, err := check(ctx)
	if err != nil {
		return err
	}

	names := maps.Keys(reply.Checks)
	slices.Sort(names)
	out := c.OutOrStdout()
	for _, name := range names {
		result := reply.Checks[name]
		status := "ok"
		if result.Error != nil {
			status = *result.Error
		}
		fmt.Fprintf(out, "%s: %s\n", name, status)
	}
	if !reply.Healthy {
		return errUnhealthy
	}
	return nil
}

func metricsCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "metrics",
		Short: "Prints the metrics exposed by the node",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			config, ctx, cancel, err := setup(c)
			if err != nil {
				return err
			}
			defer cancel()

			prefix, err := c.Flags().GetString(prefixKey)
			if err != nil {
				return err
			}

			families, err := metrics.NewClient(config.URI).GetMetrics(ctx)
			if err != nil {
				return err
			}

			names := maps.Keys(families)
			slices.Sort(names)
			for _, name := range names {
				if !strings.HasPrefix(name, prefix) {
					continue
				}
				if _, err := expfmt.MetricFamilyToText(c.OutOrStdout(), families[name]); err != nil {
					return err
				}
			}
			return nil
		},
	}
	c.Flags().String(prefixKey, "", "Only print metric families starting with this prefix")
	return c
}

func adminCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "admin",
		Short: "Manages the node through the admin API",
	}
	c.AddCommand(
		persistCommand(),
		aliasCommand(),
		loggerCommand(),
	)
	return c
}

func persistCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "persist",
		Short: "Writes every observation window to the database",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			config, ctx, cancel, err := setup(c)
			if err != nil {
				return err
			}
			defer cancel()

			if err := admin.NewClient(config.URI).Persist(ctx); err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.OutOrStdout(), "persisted")
			return err
		},
	}
}

func aliasCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "alias <endpoint> <alias>",
		Short: "Serves an API endpoint under an additional path",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			config, ctx, cancel, err := setup(c)
			if err != nil {
				return err
			}
			defer cancel()

			return admin.NewClient(config.URI).Alias(ctx, args[0], args[1])
		},
	}
}

func loggerCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "logger [name]",
		Short: "Prints or changes logger levels",
		Long:  "Prints the levels of the named logger, or of every logger if no name is given. Passing a level changes it.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  loggerFunc,
	}
	c.Flags().String(logLevelKey, "", "New log level")
	c.Flags().String(displayLevelKey, "", "New display level")
	return c
}

func loggerFunc(c *cobra.Command, args []string) error {
	config, ctx, cancel, err := setup(c)
	if err != nil {
		return err
	}
	defer cancel()

	var loggerName string
	if len(args) > 0 {
		loggerName = args[0]
	}
	logLevel, err := c.Flags().GetString(logLevelKey)
	if err != nil {
		return err
	}
	displayLevel, err := c.Flags().GetString(displayLevelKey)
	if err != nil {
		return err
	}

	client := admin.NewClient(config.URI)
	var levels map[string]admin.LogAndDisplayLevels
	if logLevel == "" && displayLevel == "" {
		levels, err = client.GetLoggerLevel(ctx, loggerName)
	} else {
		levels, err = client.SetLoggerLevel(ctx, loggerName, logLevel, displayLevel)
	}
	if err != nil {
		return err
	}

	names := maps.Keys(levels)
	slices.Sort(names)
	for _, name := range names {
		level := levels[name]
		fmt.Fprintf(c.OutOrStdout(), "%s: log=%s display=%s\n", name, level.LogLevel, level.DisplayLevel)
	}
	return nil
}
