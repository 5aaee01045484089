// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/api/oracleapi"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/ids"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/version"
)

// Command returns the root command of oraclectl.
func Command() *cobra.Command {
	c := &cobra.Command{
		Use:           "oraclectl",
		Short:         "Queries and manages a yield oracle node",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	AddFlags(c.PersistentFlags())
	c.AddCommand(
		versionCommand(),
		consultCommand(),
		updateCommand(),
		observationsCommand(),
		configCommand(),
		sourcesCommand(),
		healthCommand(),
		metricsCommand(),
		adminCommand(),
	)
	return c
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version details",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(c.OutOrStdout(), version.String())
			return err
		},
	}
}

// setup parses the shared flags and returns a context bounded by the
// configured timeout.
func setup(c *cobra.Command) (*Config, context.Context, context.CancelFunc, error) {
	config, err := ParseFlags(c.Flags())
	if err != nil {
		return nil, nil, nil, err
	}
	ctx, cancel := context.WithTimeout(c.Context(), config.Timeout)
	return config, ctx, cancel, nil
}

// resolveSource accepts either the ID of a source or the name it was
// configured with.
func resolveSource(ctx context.Context, client oracleapi.Client, source string) (ids.ID, error) {
	if sourceID, err := ids.FromString(source); err == nil {
		return sourceID, nil
	}
	return client.GetSourceID(ctx, source)
}
