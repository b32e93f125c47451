package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/radutopala/switchboard/internal/interval"
)

func newIntervalCmd() *cobra.Command {
	var granularity int
	cmd := &cobra.Command{
		Use:     "interval <seconds>",
		Aliases: []string{"i"},
		Short:   "Format seconds as a readable duration",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("parsing seconds: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), interval.Format(seconds, granularity))
			return nil
		},
	}
	cmd.Flags().IntVarP(&granularity, "granularity", "g", interval.DefaultGranularity, "Number of units to show")
	return cmd
}
