// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/api/oracleapi"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/units"
)

const durationKey = "duration"

func consultCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "consult <source>",
		Short: "Prints the yield of a source extrapolated over a duration",
		Args:  cobra.ExactArgs(1),
		RunE:  consultFunc,
	}
	c.Flags().Uint64(durationKey, units.Day, "Number of seconds to extrapolate the average yield over")
	return c
}

func consultFunc(c *cobra.Command, args []string) error {
	config, ctx, cancel, err := setup(c)
	if err != nil {
		return err
	}
	defer cancel()

	duration, err := c.Flags().GetUint64(durationKey)
	if err != nil {
		return err
	}

	client := oracleapi.NewClient(config.URI)
	sourceID, err := resolveSource(ctx, client, args[0])
	if err != nil {
		return err
	}

	amount, warm, err := client.Consult(ctx, sourceID, duration)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.OutOrStdout(), "%s over %ds (warm=%t)\n", amount.Dec(), duration, warm)
	return err
}

func updateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update <source>",
		Short: "Samples a source and records the reading",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			config, ctx, cancel, err := setup(c)
			if err != nil {
				return err
			}
			defer cancel()

			client := oracleapi.NewClient(config.URI)
			sourceID, err := resolveSource(ctx, client, args[0])
			if err != nil {
				return err
			}
			if err := client.Update(ctx, sourceID); err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.OutOrStdout(), "updated %s\n", sourceID)
			return err
		},
	}
}

func observationsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "observations <source>",
		Short: "Prints every slot of a source's window",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			config, ctx, cancel, err := setup(c)
			if err != nil {
				return err
			}
			defer cancel()

			client := oracleapi.NewClient(config.URI)
			sourceID, err := resolveSource(ctx, client, args[0])
			if err != nil {
				return err
			}
			reply, err := client.GetObservations(ctx, sourceID)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(c.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "INDEX\tTIMESTAMP\tCUMULATIVE\tWRITTEN\tLATEST")
			for _, observation := range reply.Observations {
				latest := reply.Latest != nil && *reply.Latest == observation.Index
				fmt.Fprintf(w, "%d\t%d\t%s\t%t\t%t\n",
					observation.Index,
					observation.Timestamp,
					observation.CumulativeYield,
					observation.Written,
					latest,
				)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.OutOrStdout(), "underlying balance: %s\n", reply.UnderlyingBalance)
			return err
		},
	}
}

func configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config <source>",
		Short: "Prints the window configuration of a source",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			config, ctx, cancel, err := setup(c)
			if err != nil {
				return err
			}
			defer cancel()

			client := oracleapi.NewClient(config.URI)
			sourceID, err := resolveSource(ctx, client, args[0])
			if err != nil {
				return err
			}
			oracleConfig, err := client.GetConfig(ctx, sourceID)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.OutOrStdout(), "window=%ds granularity=%d period=%ds\n",
				oracleConfig.WindowSize,
				oracleConfig.Granularity,
				oracleConfig.PeriodSize(),
			)
			return err
		},
	}
}

func sourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "Lists the monitored sources",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			config, ctx, cancel, err := setup(c)
			if err != nil {
				return err
			}
			defer cancel()

			sourceIDs, err := oracleapi.NewClient(config.URI).ListSources(ctx)
			if err != nil {
				return err
			}
			for _, sourceID := range sourceIDs {
				if _, err := fmt.Fprintln(c.OutOrStdout(), sourceID); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
