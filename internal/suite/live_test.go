//go:build live

package suite

import (
	"context"
	"os"
	"testing"
	"time"

	"bookqa/internal/config"
	"bookqa/internal/fixture"
	"bookqa/internal/report"
	"bookqa/internal/scenario"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLiveAPI runs the API catalog against the configured environment.
// go test -tags live ./internal/suite -run TestLiveAPI
func TestLiveAPI(t *testing.T) {
	config.LoadEnv()
	cfg, err := config.Load("../../config")
	require.NoError(t, err)

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	s := fixture.NewSession(cfg, fixture.Options{Timeout: 30 * time.Second, RateLimit: 5, Logger: logger})
	defer s.Close()

	r := scenario.NewRunner(s, scenario.Options{ReportDir: t.TempDir(), CleanupUser: true}, logger)
	res := r.Run(context.Background(), scenario.Filter(All(), []string{scenario.SuiteAPI}, nil))

	for _, c := range res.Cases {
		assert.NotEqual(t, report.StatusFailed, c.Status, "%s: %s", c.Name, c.Error)
	}
}
