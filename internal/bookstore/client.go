package bookstore

import (
	"context"
	"net/http"
	"net/url"

	"bookqa/internal/httpclient"
	"bookqa/internal/report"
)

const (
	booksPath = "/BookStore/v1/Books"
	bookPath  = "/BookStore/v1/Book"
)

// Client issues raw BookStore API requests. Shelf operations take an
// explicit token; an empty one falls back to the session bearer.
type Client struct {
	http *httpclient.Client
}

func NewClient(c *httpclient.Client) *Client {
	return &Client{http: c}
}

func (c *Client) ListBooks(ctx context.Context, expect httpclient.StatusSet) (*httpclient.Response, error) {
	report.StepCtx(ctx, "BookStore: List books")
	return c.http.Get(ctx, booksPath, nil, expect)
}

func (c *Client) GetBook(ctx context.Context, isbn string, expect httpclient.StatusSet) (*httpclient.Response, error) {
	report.StepCtx(ctx, "BookStore: Get book "+isbn)
	return c.http.Get(ctx, bookPath, url.Values{"ISBN": {isbn}}, expect)
}

func (c *Client) AddBooks(ctx context.Context, body UserBooks, token string, expect httpclient.StatusSet) (*httpclient.Response, error) {
	report.StepCtx(ctx, "BookStore: Add books to user")
	return c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   booksPath,
		JSON:   body,
		Token:  token,
		Expect: expect,
	})
}

func (c *Client) ReplaceBook(ctx context.Context, userID, oldISBN, newISBN, token string, expect httpclient.StatusSet) (*httpclient.Response, error) {
	report.StepCtx(ctx, "BookStore: Replace book "+oldISBN+" with "+newISBN)
	return c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPut,
		Path:   booksPath + "/" + url.PathEscape(newISBN),
		JSON:   replaceBody{UserID: userID, ISBN: oldISBN},
		Token:  token,
		Expect: expect,
	})
}

func (c *Client) DeleteBook(ctx context.Context, userID, isbn, token string, expect httpclient.StatusSet) (*httpclient.Response, error) {
	report.StepCtx(ctx, "BookStore: Delete book "+isbn)
	return c.http.Do(ctx, httpclient.Request{
		Method: http.MethodDelete,
		Path:   bookPath,
		JSON:   deleteBody{ISBN: isbn, UserID: userID},
		Token:  token,
		Expect: expect,
	})
}

// ClearBooks removes every book from a user's shelf.
func (c *Client) ClearBooks(ctx context.Context, userID, token string, expect httpclient.StatusSet) (*httpclient.Response, error) {
	report.StepCtx(ctx, "BookStore: Delete all books of user")
	return c.http.Do(ctx, httpclient.Request{
		Method: http.MethodDelete,
		Path:   booksPath,
		Query:  url.Values{"UserId": {userID}},
		Token:  token,
		Expect: expect,
	})
}
