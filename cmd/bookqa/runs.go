package main

import (
	"fmt"
	"time"

	"bookqa/internal/config"
	"bookqa/internal/store"

	"github.com/spf13/cobra"
)

func newRunsCmd(root *rootFlags) *cobra.Command {
	var dsn string
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect runs stored in the results database",
	}
	cmd.PersistentFlags().StringVar(&dsn, "results-db", "", "Postgres DSN (default $"+config.EnvResultsDSN+" or the env db key)")

	open := func(cmd *cobra.Command) (*store.RunsPG, func(), error) {
		if dsn == "" {
			dsn = config.GetEnv(config.EnvResultsDSN, "")
		}
		if dsn == "" {
			if cfg, err := root.loadConfig(); err == nil {
				dsn = cfg.DBURL
			}
		}
		if dsn == "" {
			return nil, nil, fmt.Errorf("no results database configured")
		}
		pool, err := store.Open(cmd.Context(), dsn)
		if err != nil {
			return nil, nil, err
		}
		return store.NewRunsPG(pool), pool.Close, nil
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List the most recent runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeDB, err := open(cmd)
			if err != nil {
				return err
			}
			defer closeDB()

			runs, err := repo.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, r := range runs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %-8s passed %d, failed %d, skipped %d\n",
					r.ID, r.StartedAt.Format(time.RFC3339), r.Env, r.Passed, r.Failed, r.Skipped)
			}
			return nil
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "number of runs")

	show := &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Show the cases of one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeDB, err := open(cmd)
			if err != nil {
				return err
			}
			defer closeDB()

			run, err := repo.GetRun(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("run %s: %w", args[0], err)
			}
			cases, err := repo.ListCases(cmd.Context(), run.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run %s (%s, %s)\n", run.ID, run.Env, run.Browser)
			for _, c := range cases {
				fmt.Fprintf(out, "  %-7s %-32s %8s %s\n", c.Status, c.Name, c.Duration.Round(time.Millisecond), c.Error)
			}
			return nil
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}
