package fixture

import (
	"context"
	"fmt"

	"bookqa/internal/account"
	"bookqa/internal/config"
	"bookqa/internal/datagen"
	"bookqa/internal/report"
)

// TestUser is an account a scenario acts as. Cleanup is set for accounts
// the run created and must remove.
type TestUser struct {
	UserID   string
	Username string
	Password string
	Token    string
	Expires  string
	Cleanup  bool
}

func (u TestUser) Request() account.UserRequest {
	return account.UserRequest{UserName: u.Username, Password: u.Password}
}

// CreateUser registers a random account without logging in.
func (s *Session) CreateUser(ctx context.Context) (TestUser, error) {
	report.StepCtx(ctx, "DemoQA: Create user via /Account/v1/User")
	creds := datagen.NewCredentials()
	body := account.UserRequest{UserName: creds.UserName, Password: creds.Password}

	created, err := s.Accounts.CreateUser(ctx, body)
	if err != nil {
		return TestUser{}, fmt.Errorf("create user %s: %w", body.UserName, err)
	}
	return TestUser{
		UserID:   created.UserID,
		Username: body.UserName,
		Password: body.Password,
		Cleanup:  true,
	}, nil
}

// LoginUser attaches a fresh token and expiry to u.
func (s *Session) LoginUser(ctx context.Context, u TestUser) (TestUser, error) {
	report.StepCtx(ctx, "DemoQA: Login user via /Account/v1/Login")
	session, err := s.Accounts.Login(ctx, u.Request())
	if err != nil {
		return TestUser{}, fmt.Errorf("login %s: %w", u.Username, err)
	}
	if session.UserID != "" {
		u.UserID = session.UserID
	}
	u.Token = session.Token
	u.Expires = session.Expires
	return u, nil
}

// CreateTempUser creates a random account and logs it in.
func (s *Session) CreateTempUser(ctx context.Context) (TestUser, error) {
	report.StepCtx(ctx, "DemoQA: Create and login temporary user")
	u, err := s.CreateUser(ctx)
	if err != nil {
		return TestUser{}, err
	}
	u, err = s.LoginUser(ctx, u)
	if err != nil {
		s.Cleanup(ctx, u)
		return TestUser{}, err
	}
	return u, nil
}

// EnsureUser logs in the account from DEMOQA_USER/DEMOQA_PASS when both are
// set; otherwise it provisions a temporary account flagged for cleanup.
func (s *Session) EnsureUser(ctx context.Context) (TestUser, error) {
	report.StepCtx(ctx, "DemoQA: Ensure test user from env or create temporary")
	if name, pass, ok := config.OverrideCredentials(); ok {
		s.logger.Info().Str("user", name).Msg("Using test user from environment")
		return s.LoginUser(ctx, TestUser{Username: name, Password: pass})
	}
	return s.CreateTempUser(ctx)
}

// Cleanup deletes the shelf and then the account of a user created by the
// run. Failures are logged and swallowed.
func (s *Session) Cleanup(ctx context.Context, u TestUser) {
	if !u.Cleanup || u.UserID == "" {
		return
	}
	report.StepCtx(ctx, "DemoQA: Cleanup user (books + account)")

	token := u.Token
	if token == "" {
		t, err := s.Accounts.IssueToken(ctx, u.Request())
		if err != nil {
			s.logger.Debug().Err(err).Str("user", u.Username).Msg("Cleanup: no token, account left behind")
			return
		}
		token = t
	}

	if err := s.Books.ClearShelf(ctx, u.UserID, token); err != nil {
		s.logger.Debug().Err(err).Str("user_id", u.UserID).Msg("Cleanup: clearing shelf failed")
	}
	if _, err := s.Accounts.DeleteUser(ctx, u.UserID, token); err != nil {
		s.logger.Debug().Err(err).Str("user_id", u.UserID).Msg("Cleanup: deleting user failed")
		return
	}
	s.logger.Info().Str("user", u.Username).Msg("Temporary user removed")
}
