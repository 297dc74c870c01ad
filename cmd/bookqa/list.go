package main

import (
	"fmt"
	"strings"

	"bookqa/internal/scenario"
	"bookqa/internal/suite"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var suites, tags []string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the scenario catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, sc := range scenario.Filter(suite.All(), suites, tags) {
				fmt.Fprintf(out, "%-4s %-32s %-12s %s\n", sc.Suite, sc.Name, "["+strings.Join(sc.Tags, ",")+"]", sc.Title)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&suites, "suite", nil, "only these suites: api, ui, e2e, all")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "only scenarios carrying one of these tags")
	return cmd
}
