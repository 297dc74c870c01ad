// Package suite is the scenario catalog: account and bookstore API checks,
// web UI checks and the API-to-UI end-to-end flows.
package suite

import (
	"context"

	"bookqa/internal/account"
	"bookqa/internal/datagen"
	"bookqa/internal/fixture"
	"bookqa/internal/httpclient"
	"bookqa/internal/scenario"
	"bookqa/internal/ui"
)

// All returns every scenario in catalog order.
func All() []scenario.Scenario {
	var out []scenario.Scenario
	out = append(out, Account()...)
	out = append(out, BookStore()...)
	out = append(out, UI()...)
	out = append(out, E2E()...)
	return out
}

// registeredUser creates an account without logging in and removes it after
// the scenario.
func registeredUser(t *scenario.T) (account.UserRequest, account.CreatedUser) {
	creds := datagen.NewCredentials()
	body := account.UserRequest{UserName: creds.UserName, Password: creds.Password}
	created, err := t.Session().Accounts.CreateUser(t.Context(), body)
	t.NoError(err, "create user")
	t.Cleanup("remove "+body.UserName, func(ctx context.Context) error {
		t.Session().Cleanup(ctx, fixture.TestUser{
			UserID:   created.UserID,
			Username: body.UserName,
			Password: body.Password,
			Cleanup:  true,
		})
		return nil
	})
	return body, created
}

// tempUser creates and logs in a throwaway account, removed afterwards.
func tempUser(t *scenario.T) fixture.TestUser {
	u, err := t.Session().CreateTempUser(t.Context())
	t.NoError(err, "create temporary user")
	t.Cleanup("remove "+u.Username, func(ctx context.Context) error {
		t.Session().Cleanup(ctx, u)
		return nil
	})
	return u
}

// runUser is the environment account when one is configured, otherwise a
// temporary one. Temporary accounts are removed only with --cleanup-user.
func runUser(t *scenario.T) fixture.TestUser {
	u, err := t.Session().EnsureUser(t.Context())
	t.NoError(err, "ensure test user")
	if u.Cleanup && t.Options().CleanupUser {
		t.Cleanup("remove "+u.Username, func(ctx context.Context) error {
			t.Session().Cleanup(ctx, u)
			return nil
		})
	}
	return u
}

func firstISBNs(t *scenario.T, n int) []string {
	isbns, err := t.Session().Books.FirstISBNs(t.Context(), n)
	t.NoError(err, "pick catalog ISBNs")
	return isbns
}

// uiAuth issues a token for the configured UI account.
func uiAuth(t *scenario.T) ui.Auth {
	cfg := t.Config().UIUser
	token, err := t.Session().Accounts.IssueToken(t.Context(), account.UserRequest{
		UserName: cfg.Username,
		Password: cfg.Password,
	})
	t.NoError(err, "issue token for UI user")
	return ui.Auth{UserID: cfg.UserID, Username: cfg.Username, Token: token}
}

// message reads the "message" field of an error body.
func message(resp *httpclient.Response) string {
	if resp == nil {
		return ""
	}
	m, _ := resp.JSONMap()["message"].(string)
	return m
}
