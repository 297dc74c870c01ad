//go:build integration

package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"bookqa/internal/report"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupResultsDB(t *testing.T) *pgxpool.Pool {
	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "bookqa_results",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		).WithDeadline(2 * time.Minute),
	}
	pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("Skipping test: cannot start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	host, err := pg.Host(ctx)
	require.NoError(t, err)
	port, err := pg.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://postgres:postgres@%s:%s/bookqa_results?sslmode=disable", host, port.Port())
	pool, err := Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, Migrate(ctx, pool))
	return pool
}

func finishedCase(rec *report.Recorder, name string, status report.Status, err error) *report.Case {
	c := rec.Begin(report.Meta{Name: name, Feature: "Account", Suite: "api", Tags: []string{"account"}})
	c.Step("Create user")
	c.Step("Check response")
	return rec.End(status, err)
}

func TestRunsPG_RoundTrip(t *testing.T) {
	pool := setupResultsDB(t)
	repo := NewRunsPG(pool)
	ctx := context.Background()

	run := &Run{Env: "demoqa", Suites: []string{"api"}, Browser: "chrome"}
	require.NoError(t, repo.CreateRun(ctx, run))
	require.NotEmpty(t, run.ID)
	require.NotZero(t, run.StartedAt)

	rec := report.NewRecorder(zerolog.Nop())
	passed := finishedCase(rec, "account_create_user", report.StatusPassed, nil)
	failed := finishedCase(rec, "account_login", report.StatusFailed, errors.New("login: 502"))
	require.NoError(t, repo.SaveCase(ctx, run.ID, passed))
	require.NoError(t, repo.SaveCase(ctx, run.ID, failed))
	// Saving twice updates in place.
	require.NoError(t, repo.SaveCase(ctx, run.ID, failed))

	require.NoError(t, repo.FinishRun(ctx, run.ID))

	got, err := repo.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "demoqa", got.Env)
	assert.Equal(t, []string{"api"}, got.Suites)
	assert.Empty(t, got.Tags)
	assert.NotNil(t, got.FinishedAt)
	assert.Equal(t, 1, got.Passed)
	assert.Equal(t, 1, got.Failed)
	assert.Equal(t, 0, got.Skipped)

	cases, err := repo.ListCases(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, "account_create_user", cases[0].Name)
	assert.Equal(t, report.StatusPassed, cases[0].Status)
	assert.Equal(t, []string{"Create user", "Check response"}, cases[0].Steps)
	assert.Equal(t, report.StatusFailed, cases[1].Status)
	assert.Equal(t, "login: 502", cases[1].Error)

	runs, err := repo.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
}

func TestRunsPG_NotFound(t *testing.T) {
	pool := setupResultsDB(t)
	repo := NewRunsPG(pool)
	ctx := context.Background()

	_, err := repo.GetRun(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.FinishRun(ctx, "00000000-0000-0000-0000-000000000000"), ErrNotFound)

	_, err = repo.GetRun(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
}
