package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookqa/internal/httpclient"
	"bookqa/internal/validation"

	"github.com/rs/zerolog"
)

var (
	// ErrEmptyToken is returned when the token endpoint answers without a
	// token.
	ErrEmptyToken = errors.New("token not returned")
	ErrNotFound   = errors.New("user not found")
)

// APIError is the {code, message} body the service returns on failures.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("account api: %d %s (code %s)", e.Status, e.Message, e.Code)
}

// Service layers typed results over Client.
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

// ValidateUser checks credentials against the service's account rules.
func ValidateUser(u UserRequest) error {
	return validation.Struct(u)
}

func (s *Service) CreateUser(ctx context.Context, body UserRequest) (CreatedUser, error) {
	resp, err := s.client.CreateUser(ctx, body, httpclient.Expect(201))
	if err != nil {
		return CreatedUser{}, err
	}
	if resp.StatusCode != 201 {
		return CreatedUser{}, apiError(resp)
	}
	var out CreatedUser
	if err := resp.DecodeJSON(&out); err != nil {
		return CreatedUser{}, err
	}
	s.logger.Info().Str("user", out.Username).Str("user_id", out.UserID).Msg("User created")
	return out, nil
}

// GenerateToken returns the decoded token body, including "Failed" results.
func (s *Service) GenerateToken(ctx context.Context, body UserRequest) (TokenResult, error) {
	resp, err := s.client.GenerateToken(ctx, body, httpclient.Expect(200))
	if err != nil {
		return TokenResult{}, err
	}
	if resp.StatusCode != 200 {
		return TokenResult{}, apiError(resp)
	}
	var out TokenResult
	if err := resp.DecodeJSON(&out); err != nil {
		return TokenResult{}, err
	}
	return out, nil
}

// IssueToken returns a non-empty token or ErrEmptyToken.
func (s *Service) IssueToken(ctx context.Context, body UserRequest) (string, error) {
	res, err := s.GenerateToken(ctx, body)
	if err != nil {
		return "", err
	}
	if res.Token == "" {
		s.logger.Error().Str("user", body.UserName).Str("result", res.Result).Msg("Token was not returned by API")
		return "", fmt.Errorf("%w: %s", ErrEmptyToken, res.Result)
	}
	return res.Token, nil
}

// Authenticate issues a token for body and makes it the session bearer.
func (s *Service) Authenticate(ctx context.Context, body UserRequest) (string, error) {
	s.logger.Info().Str("user", body.UserName).Msg("Acquiring token")
	token, err := s.IssueToken(ctx, body)
	if err != nil {
		return "", err
	}
	s.client.HTTP().SetBearer(token)
	return token, nil
}

func (s *Service) Login(ctx context.Context, body UserRequest) (Session, error) {
	resp, err := s.client.Login(ctx, body, httpclient.Expect(200))
	if err != nil {
		return Session{}, err
	}
	if resp.StatusCode != 200 {
		return Session{}, apiError(resp)
	}
	var out Session
	if err := resp.DecodeJSON(&out); err != nil {
		return Session{}, err
	}
	if out.Token == "" {
		return Session{}, ErrEmptyToken
	}
	return out, nil
}

// IsAuthorized reports the service's "true"/"false" answer.
func (s *Service) IsAuthorized(ctx context.Context, body UserRequest) (bool, error) {
	resp, err := s.client.Authorized(ctx, body, httpclient.Expect(200))
	if err != nil {
		return false, err
	}
	switch resp.StatusCode {
	case 200:
		return strings.TrimSpace(resp.Text()) == "true", nil
	case 404:
		return false, fmt.Errorf("%w: %s", ErrNotFound, body.UserName)
	default:
		return false, apiError(resp)
	}
}

func (s *Service) GetUser(ctx context.Context, userID, token string) (User, error) {
	resp, err := s.client.GetUser(ctx, userID, token, httpclient.Expect(200))
	if err != nil {
		return User{}, err
	}
	if resp.StatusCode != 200 {
		return User{}, apiError(resp)
	}
	var out User
	if err := resp.DecodeJSON(&out); err != nil {
		return User{}, err
	}
	return out, nil
}

// DeleteUser accepts 200 and 204; the service answers 200 with a message
// body for ids it does not recognise.
func (s *Service) DeleteUser(ctx context.Context, userID, token string) (*httpclient.Response, error) {
	resp, err := s.client.DeleteUser(ctx, userID, token, httpclient.Expect(200, 204))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 && resp.StatusCode != 204 {
		return resp, apiError(resp)
	}
	return resp, nil
}

func apiError(resp *httpclient.Response) error {
	e := &APIError{Status: resp.StatusCode}
	if err := resp.DecodeJSON(e); err != nil || e.Message == "" {
		e.Message = httpclient.Shorten(resp.Text(), 300)
	}
	return e
}

// AsAPIError unwraps err into an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var e *APIError
	ok := errors.As(err, &e)
	return e, ok
}
