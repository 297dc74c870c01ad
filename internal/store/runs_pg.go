// Package store persists run results in Postgres.
package store

import (
	"context"
	"errors"
	"time"

	"bookqa/internal/report"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

// Run is one invocation of the suite.
type Run struct {
	ID         string
	Env        string
	Suites     []string
	Tags       []string
	Browser    string
	StartedAt  time.Time
	FinishedAt *time.Time
	Passed     int
	Failed     int
	Skipped    int
}

// CaseResult is a stored scenario outcome.
type CaseResult struct {
	ID         string
	RunID      string
	Name       string
	Title      string
	Feature    string
	Suite      string
	Tags       []string
	Status     report.Status
	Error      string
	Steps      []string
	Screenshot string
	StartedAt  time.Time
	Duration   time.Duration
}

type RunsPG struct {
	db *pgxpool.Pool
}

func NewRunsPG(db *pgxpool.Pool) *RunsPG {
	return &RunsPG{db: db}
}

func (r *RunsPG) CreateRun(ctx context.Context, run *Run) error {
	const query = `
	INSERT INTO test_runs (id, env, suites, tags, browser)
	VALUES (gen_random_uuid(), $1, $2, $3, $4)
	RETURNING id, started_at
	`
	return r.db.QueryRow(ctx, query,
		run.Env,
		nonNil(run.Suites),
		nonNil(run.Tags),
		run.Browser,
	).Scan(&run.ID, &run.StartedAt)
}

// FinishRun stamps the run and recomputes its tallies from the stored cases.
func (r *RunsPG) FinishRun(ctx context.Context, runID string) error {
	runID, ok := canonicalID(runID)
	if !ok {
		return ErrNotFound
	}
	const query = `
	UPDATE test_runs SET
		finished_at = now(),
		passed  = (SELECT count(*) FROM test_cases WHERE run_id = $1 AND status = 'passed'),
		failed  = (SELECT count(*) FROM test_cases WHERE run_id = $1 AND status = 'failed'),
		skipped = (SELECT count(*) FROM test_cases WHERE run_id = $1 AND status = 'skipped')
	WHERE id = $1
	`
	result, err := r.db.Exec(ctx, query, runID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveCase upserts a finished case. It satisfies the runner's CaseSink.
func (r *RunsPG) SaveCase(ctx context.Context, runID string, c *report.Case) error {
	const query = `
	INSERT INTO test_cases (id, run_id, name, title, feature, suite, tags, status, error, steps, screenshot, started_at, duration_ms)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	ON CONFLICT (id) DO UPDATE SET
		status = EXCLUDED.status,
		error = EXCLUDED.error,
		steps = EXCLUDED.steps,
		screenshot = EXCLUDED.screenshot,
		duration_ms = EXCLUDED.duration_ms
	`
	_, err := r.db.Exec(ctx, query,
		c.ID,
		runID,
		c.Name,
		c.Title,
		c.Feature,
		c.Suite,
		nonNil(c.Tags),
		string(c.Status),
		c.Error,
		nonNil(c.StepNames()),
		c.Screenshot,
		c.Start,
		c.Duration.Milliseconds(),
	)
	return err
}

func (r *RunsPG) GetRun(ctx context.Context, id string) (Run, error) {
	id, ok := canonicalID(id)
	if !ok {
		return Run{}, ErrNotFound
	}
	const query = `
	SELECT id, env, suites, tags, browser, started_at, finished_at, passed, failed, skipped
	FROM test_runs
	WHERE id = $1
	LIMIT 1
	`
	var run Run
	err := r.db.QueryRow(ctx, query, id).Scan(
		&run.ID,
		&run.Env,
		&run.Suites,
		&run.Tags,
		&run.Browser,
		&run.StartedAt,
		&run.FinishedAt,
		&run.Passed,
		&run.Failed,
		&run.Skipped,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Run{}, ErrNotFound
		}
		return Run{}, err
	}
	return run, nil
}

// ListCases returns a run's cases in execution order.
func (r *RunsPG) ListCases(ctx context.Context, runID string) ([]CaseResult, error) {
	runID, ok := canonicalID(runID)
	if !ok {
		return nil, nil
	}
	const query = `
	SELECT id, run_id, name, title, feature, suite, tags, status, error, steps, screenshot, started_at, duration_ms
	FROM test_cases
	WHERE run_id = $1
	ORDER BY started_at, name
	`
	rows, err := r.db.Query(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cases []CaseResult
	for rows.Next() {
		var (
			c      CaseResult
			status string
			ms     int64
		)
		if err := rows.Scan(
			&c.ID,
			&c.RunID,
			&c.Name,
			&c.Title,
			&c.Feature,
			&c.Suite,
			&c.Tags,
			&status,
			&c.Error,
			&c.Steps,
			&c.Screenshot,
			&c.StartedAt,
			&ms,
		); err != nil {
			return nil, err
		}
		c.Status = report.Status(status)
		c.Duration = time.Duration(ms) * time.Millisecond
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

// ListRuns returns the most recent runs first.
func (r *RunsPG) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	const query = `
	SELECT id, env, suites, tags, browser, started_at, finished_at, passed, failed, skipped
	FROM test_runs
	ORDER BY started_at DESC
	LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(
			&run.ID,
			&run.Env,
			&run.Suites,
			&run.Tags,
			&run.Browser,
			&run.StartedAt,
			&run.FinishedAt,
			&run.Passed,
			&run.Failed,
			&run.Skipped,
		); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// canonicalID normalises a run id. Anything that is not a UUID cannot name
// a row.
func canonicalID(id string) (string, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return u.String(), true
}

// nonNil keeps NOT NULL array columns from receiving NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
