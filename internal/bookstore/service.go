package bookstore

import (
	"context"
	"errors"
	"fmt"

	"bookqa/internal/httpclient"

	"github.com/rs/zerolog"
)

var ErrEmptyCatalog = errors.New("book catalog is empty")

// APIError is the {code, message} body returned on failures.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bookstore api: %d %s (code %s)", e.Status, e.Message, e.Code)
}

func AsAPIError(err error) (*APIError, bool) {
	var e *APIError
	ok := errors.As(err, &e)
	return e, ok
}

type Service struct {
	client *Client
	logger zerolog.Logger
}

func NewService(client *Client, logger zerolog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

func (s *Service) Client() *Client {
	return s.client
}

func (s *Service) Books(ctx context.Context) ([]Book, error) {
	resp, err := s.client.ListBooks(ctx, httpclient.Expect(200))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		return nil, apiError(resp)
	}
	var env booksEnvelope
	if err := resp.DecodeJSON(&env); err != nil {
		return nil, err
	}

	first := ""
	if len(env.Books) > 0 {
		first = env.Books[0].Title
	}
	s.logger.Info().Int("total", len(env.Books)).Str("first", first).Msg("Books listed")
	return env.Books, nil
}

// FirstISBNs returns the ISBNs of the first n catalog books.
func (s *Service) FirstISBNs(ctx context.Context, n int) ([]string, error) {
	books, err := s.Books(ctx)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, ErrEmptyCatalog
	}
	if n > len(books) {
		n = len(books)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = books[i].ISBN
	}
	return out, nil
}

func (s *Service) Book(ctx context.Context, isbn string) (Book, error) {
	resp, err := s.client.GetBook(ctx, isbn, httpclient.Expect(200))
	if err != nil {
		return Book{}, err
	}
	if resp.StatusCode != 200 {
		return Book{}, apiError(resp)
	}
	var b Book
	if err := resp.DecodeJSON(&b); err != nil {
		return Book{}, err
	}
	return b, nil
}

func (s *Service) AddToShelf(ctx context.Context, userID, token string, isbns ...string) (AddedBooks, error) {
	resp, err := s.client.AddBooks(ctx, NewUserBooks(userID, isbns...), token, httpclient.Expect(201))
	if err != nil {
		return AddedBooks{}, err
	}
	if resp.StatusCode != 201 {
		return AddedBooks{}, apiError(resp)
	}
	var out AddedBooks
	if err := resp.DecodeJSON(&out); err != nil {
		return AddedBooks{}, err
	}
	return out, nil
}

func (s *Service) ReplaceOnShelf(ctx context.Context, userID, oldISBN, newISBN, token string) (Shelf, error) {
	resp, err := s.client.ReplaceBook(ctx, userID, oldISBN, newISBN, token, httpclient.Expect(200))
	if err != nil {
		return Shelf{}, err
	}
	if resp.StatusCode != 200 {
		return Shelf{}, apiError(resp)
	}
	var out Shelf
	if err := resp.DecodeJSON(&out); err != nil {
		return Shelf{}, err
	}
	return out, nil
}

func (s *Service) RemoveFromShelf(ctx context.Context, userID, isbn, token string) error {
	resp, err := s.client.DeleteBook(ctx, userID, isbn, token, httpclient.Expect(204))
	if err != nil {
		return err
	}
	if resp.StatusCode != 204 {
		return apiError(resp)
	}
	return nil
}

// ClearShelf accepts 200 and 204.
func (s *Service) ClearShelf(ctx context.Context, userID, token string) error {
	resp, err := s.client.ClearBooks(ctx, userID, token, httpclient.Expect(200, 204))
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 && resp.StatusCode != 204 {
		return apiError(resp)
	}
	return nil
}

func apiError(resp *httpclient.Response) error {
	e := &APIError{Status: resp.StatusCode}
	if err := resp.DecodeJSON(e); err != nil || e.Message == "" {
		e.Message = httpclient.Shorten(resp.Text(), 300)
	}
	return e
}
