// Package fixture wires the shared objects of a test run: configuration,
// the HTTP session with its hooks, the API services and test accounts.
package fixture

import (
	"context"
	"net/http"
	"time"

	"bookqa/internal/account"
	"bookqa/internal/bookstore"
	"bookqa/internal/config"
	"bookqa/internal/httpclient"
	"bookqa/internal/report"

	"github.com/rs/zerolog"
)

type Options struct {
	Timeout   time.Duration
	RateLimit float64
	Transport http.RoundTripper
	Recorder  *report.Recorder
	Logger    zerolog.Logger
}

// Session holds the single HTTP client shared by every scenario of a run.
type Session struct {
	Config   config.Run
	HTTP     *httpclient.Client
	Accounts *account.Service
	Books    *bookstore.Service
	Recorder *report.Recorder

	logger zerolog.Logger
}

func NewSession(cfg config.Run, opts Options) *Session {
	logger := opts.Logger
	rec := opts.Recorder
	if rec == nil {
		rec = report.NewRecorder(logger.With().Str("component", "report").Logger())
	}

	httpOpts := []httpclient.Option{
		httpclient.WithLogger(logger.With().Str("component", "http").Logger()),
	}
	if opts.Timeout > 0 {
		httpOpts = append(httpOpts, httpclient.WithTimeout(opts.Timeout))
	}
	if opts.RateLimit > 0 {
		httpOpts = append(httpOpts, httpclient.WithRateLimit(opts.RateLimit))
	}
	if opts.Transport != nil {
		httpOpts = append(httpOpts, httpclient.WithTransport(opts.Transport))
	}
	hc := httpclient.New(cfg.APIBaseURL, httpOpts...)

	report.NewAPILogger(rec, report.DefaultMaxBody, logger.With().Str("component", "api-logger").Logger()).Install(hc)

	return &Session{
		Config:   cfg,
		HTTP:     hc,
		Accounts: account.NewService(account.NewClient(hc), logger.With().Str("component", "account").Logger()),
		Books:    bookstore.NewService(bookstore.NewClient(hc), logger.With().Str("component", "bookstore").Logger()),
		Recorder: rec,
		logger:   logger.With().Str("component", "fixture").Logger(),
	}
}

// AuthenticateDefault makes the configured API user's token the session
// bearer.
func (s *Session) AuthenticateDefault(ctx context.Context) (string, error) {
	s.logger.Info().Str("user", s.Config.APIUser.Username).Msg("Acquiring token for default user")
	token, err := s.Accounts.Authenticate(ctx, account.UserRequest{
		UserName: s.Config.APIUser.Username,
		Password: s.Config.APIUser.Password,
	})
	if err != nil {
		return "", err
	}
	s.logger.Info().Msg("Token for default user acquired")
	return token, nil
}

func (s *Session) Close() {
	s.HTTP.Close()
}
