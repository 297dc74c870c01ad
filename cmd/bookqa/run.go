package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"bookqa/internal/config"
	"bookqa/internal/fixture"
	"bookqa/internal/logging"
	"bookqa/internal/report"
	"bookqa/internal/scenario"
	"bookqa/internal/store"
	"bookqa/internal/suite"
	"bookqa/internal/ui"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type runFlags struct {
	suites      []string
	tags        []string
	browser     string
	headless    bool
	windowSize  string
	lang        string
	incognito   bool
	baseURL     string
	iwait       int
	har         bool
	cleanupUser bool
	reportDir   string
	resultsDB   string
	timeout     time.Duration
	rateLimit   float64
}

func newRunCmd(root *rootFlags) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run scenarios and write the HTML and JSON reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runScenarios(ctx, cmd, root, f)
		},
	}

	d := ui.DefaultOptions()
	cmd.Flags().StringSliceVar(&f.suites, "suite", []string{scenario.SuiteAll}, "suites to run: api, ui, e2e, all")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "only scenarios carrying one of these tags")
	cmd.Flags().StringVar(&f.browser, "browser", d.Browser, "browser: chrome or edge")
	cmd.Flags().BoolVar(&f.headless, "headless", d.Headless, "run the browser headless")
	cmd.Flags().StringVar(&f.windowSize, "window-size", d.WindowSize, "browser window size as W,H")
	cmd.Flags().StringVar(&f.lang, "lang", d.Lang, "browser language")
	cmd.Flags().BoolVar(&f.incognito, "incognito", false, "open the browser in incognito mode")
	cmd.Flags().StringVar(&f.baseURL, "base-url", "", "web UI address, overrides the env properties")
	cmd.Flags().IntVar(&f.iwait, "iwait", int(d.ImplicitWait/time.Second), "element wait in seconds")
	cmd.Flags().BoolVar(&f.har, "har", false, "record a HAR file per browser scenario")
	cmd.Flags().BoolVar(&f.cleanupUser, "cleanup-user", false, "delete temporary users created for UI and e2e scenarios")
	cmd.Flags().StringVar(&f.reportDir, "report-dir", "target", "directory for reports, screenshots and HAR files")
	cmd.Flags().StringVar(&f.resultsDB, "results-db", "", "Postgres DSN to store results in (default $"+config.EnvResultsDSN+" or the env db key)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", scenario.DefaultTimeout, "per-scenario time limit")
	cmd.Flags().Float64Var(&f.rateLimit, "rate-limit", 0, "max API requests per second, 0 for no limit")
	return cmd
}

// browserOptions turns the flags into driver options.
func (f *runFlags) browserOptions() (ui.Options, error) {
	if _, _, err := ui.ParseWindowSize(f.windowSize); err != nil {
		return ui.Options{}, err
	}
	o := ui.DefaultOptions()
	o.Browser = f.browser
	o.Headless = f.headless
	o.WindowSize = f.windowSize
	o.Lang = f.lang
	o.Incognito = f.incognito
	if f.iwait > 0 {
		o.ImplicitWait = time.Duration(f.iwait) * time.Second
	}
	return o, nil
}

// dsn picks the results database: flag, environment, then the env file.
func (f *runFlags) dsn(cfg config.Run) string {
	if f.resultsDB != "" {
		return f.resultsDB
	}
	return config.GetEnv(config.EnvResultsDSN, cfg.DBURL)
}

func runScenarios(ctx context.Context, cmd *cobra.Command, root *rootFlags, f *runFlags) error {
	logger := logging.Component("runner")

	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if f.baseURL != "" {
		cfg.UIBaseURL = f.baseURL
	}
	browser, err := f.browserOptions()
	if err != nil {
		return err
	}

	selected := scenario.Filter(suite.All(), f.suites, f.tags)
	if len(selected) == 0 {
		return fmt.Errorf("no scenarios match suite %v and tag %v", f.suites, f.tags)
	}
	logger.Info().Int("scenarios", len(selected)).Strs("suite", f.suites).Strs("tag", f.tags).Msg("Starting run")

	session := fixture.NewSession(cfg, fixture.Options{
		Timeout:   30 * time.Second,
		RateLimit: f.rateLimit,
		Logger:    log.Logger,
	})
	defer session.Close()

	if cfg.APIUser.Username != "" {
		if _, err := session.AuthenticateDefault(ctx); err != nil {
			logger.Warn().Err(err).Msg("Default user token not acquired")
		}
	}

	runner := scenario.NewRunner(session, scenario.Options{
		ReportDir:   f.reportDir,
		Browser:     browser,
		HAR:         f.har,
		CleanupUser: f.cleanupUser,
		Timeout:     f.timeout,
	}, logger)

	results, finish := openResults(ctx, f.dsn(cfg), store.Run{
		Env:     cfg.Env,
		Suites:  f.suites,
		Tags:    f.tags,
		Browser: browser.Browser,
	})
	if results != nil {
		runner.Sink = results.repo
		runner.RunID = results.runID
	}
	defer finish()

	res := runner.Run(ctx, selected)

	htmlPath := filepath.Join(f.reportDir, "report.html")
	if err := report.WriteHTML(htmlPath, "DemoQA "+cfg.Env, res.Cases); err != nil {
		logger.Error().Err(err).Msg("HTML report not written")
	}
	if err := report.WriteJSON(filepath.Join(f.reportDir, "results.json"), res.Cases); err != nil {
		logger.Error().Err(err).Msg("JSON report not written")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "passed %d, failed %d, skipped %d (report: %s)\n",
		res.Passed, res.Failed, res.Skipped, htmlPath)
	if results != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "stored as run %s\n", results.runID)
	}
	if !res.OK() {
		return errScenariosFailed
	}
	return nil
}

type resultsStore struct {
	repo  *store.RunsPG
	runID string
}

// openResults connects, migrates and opens a run row. A store failure is
// logged and the run continues without persistence.
func openResults(ctx context.Context, dsn string, run store.Run) (*resultsStore, func()) {
	if dsn == "" {
		return nil, func() {}
	}
	logger := logging.Component("store")

	pool, err := store.Open(ctx, dsn)
	if err != nil {
		logger.Warn().Err(err).Msg("Results store unavailable")
		return nil, func() {}
	}
	if err := store.Migrate(ctx, pool); err != nil {
		logger.Warn().Err(err).Msg("Results store not migrated")
		pool.Close()
		return nil, func() {}
	}

	repo := store.NewRunsPG(pool)
	if err := repo.CreateRun(ctx, &run); err != nil {
		logger.Warn().Err(err).Msg("Run not recorded")
		pool.Close()
		return nil, func() {}
	}
	logger.Info().Str("run_id", run.ID).Msg("Recording results")

	return &resultsStore{repo: repo, runID: run.ID}, func() {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := repo.FinishRun(fctx, run.ID); err != nil {
			logger.Warn().Err(err).Str("run_id", run.ID).Msg("Run not finalised")
		}
		pool.Close()
	}
}
