package account

import (
	"context"
	"net/http"

	"bookqa/internal/httpclient"
	"bookqa/internal/report"
)

const (
	accountPath = "/Account/v1"
	userPath    = accountPath + "/User"
)

// Client issues raw Account API requests. Callers choose the expected
// statuses and inspect the response themselves.
type Client struct {
	http *httpclient.Client
}

func NewClient(c *httpclient.Client) *Client {
	return &Client{http: c}
}

// HTTP exposes the shared session, e.g. to set or clear the bearer.
func (c *Client) HTTP() *httpclient.Client {
	return c.http
}

func (c *Client) CreateUser(ctx context.Context, body UserRequest, expect httpclient.StatusSet) (*httpclient.Response, error) {
	report.StepCtx(ctx, "Account: Create user")
	return c.http.Post(ctx, userPath, body, expect)
}

func (c *Client) GenerateToken(ctx context.Context, body UserRequest, expect httpclient.StatusSet) (*httpclient.Response, error) {
	report.StepCtx(ctx, "Account: Generate token")
	return c.http.Post(ctx, accountPath+"/GenerateToken", body, expect)
}

func (c *Client) Authorized(ctx context.Context, body UserRequest, expect httpclient.StatusSet) (*httpclient.Response, error) {
	report.StepCtx(ctx, "Account: Check authorization")
	return c.http.Post(ctx, accountPath+"/Authorized", body, expect)
}

func (c *Client) Login(ctx context.Context, body UserRequest, expect httpclient.StatusSet) (*httpclient.Response, error) {
	report.StepCtx(ctx, "Account: Login user")
	return c.http.Post(ctx, accountPath+"/Login", body, expect)
}

// GetUser reads a user. An empty token falls back to the session bearer.
func (c *Client) GetUser(ctx context.Context, userID, token string, expect httpclient.StatusSet) (*httpclient.Response, error) {
	report.StepCtx(ctx, "Account: Get user "+userID)
	return c.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   userPath + "/" + userID,
		Token:  token,
		Expect: expect,
	})
}

// DeleteUser removes a user. An empty token falls back to the session bearer.
func (c *Client) DeleteUser(ctx context.Context, userID, token string, expect httpclient.StatusSet) (*httpclient.Response, error) {
	report.StepCtx(ctx, "Account: Delete user "+userID)
	return c.http.Do(ctx, httpclient.Request{
		Method: http.MethodDelete,
		Path:   userPath + "/" + userID,
		Token:  token,
		Expect: expect,
	})
}
