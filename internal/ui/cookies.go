package ui

import (
	"context"
	"strings"
	"time"

	"bookqa/internal/datagen"
	"bookqa/internal/report"
)

// Auth is what the web app keeps in cookies for a logged in user.
type Auth struct {
	UserID   string
	Username string
	Token    string
}

// cookieAnchor is a static asset on the app's origin. Cookies can only be
// set once the browser is on that origin.
const cookieAnchor = "/images/Toolsqa.jpg"

// AuthCookies returns the cookies the app reads for auth.
func AuthCookies(a Auth, now time.Time) []Cookie {
	return []Cookie{
		{Name: "token", Value: a.Token, Path: "/"},
		{Name: "userName", Value: a.Username, Path: "/"},
		{Name: "userID", Value: a.UserID, Path: "/"},
		{Name: "expires", Value: datagen.AuthCookieExpiry(now), Path: "/"},
	}
}

// LoginWithCookies logs the browser in without the login form.
func LoginWithCookies(ctx context.Context, d Driver, baseURL string, a Auth) error {
	report.StepCtx(ctx, "UI: set auth cookies")
	if err := d.Navigate(ctx, strings.TrimRight(baseURL, "/")+cookieAnchor); err != nil {
		return err
	}
	if err := d.ClearStorage(ctx); err != nil {
		return err
	}
	return d.SetCookies(ctx, AuthCookies(a, time.Now())...)
}
