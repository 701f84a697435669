package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/JuanGabriel-Garcia/eventhub/internal/model"
)

// TokenSource yields the current bearer token, empty when logged out.
// The session store satisfies this.
type TokenSource interface {
	Token() string
}

// Client is the typed facade over the EventHub REST API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *zap.Logger
}

func NewClient(baseURL string, tokens TokenSource, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		logger:  logger,
	}
}

func (c *Client) Login(ctx context.Context, email, password string) (model.LoginResponse, error) {
	var out model.LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", model.LoginRequest{Email: email, Password: password}, &out, false)
	return out, err
}

// CreateUser never attaches a token: it is the one call that must work
// before any session exists.
func (c *Client) CreateUser(ctx context.Context, req model.CreateUserRequest) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodPost, "/users/", req, &out, false)
	return out, err
}

func (c *Client) CurrentUser(ctx context.Context) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodGet, "/users/me", nil, &out, true)
	return out, err
}

func (c *Client) UserByID(ctx context.Context, id string) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodGet, "/users/"+id, nil, &out, true)
	return out, err
}

func (c *Client) Events(ctx context.Context) ([]model.Event, error) {
	var out []model.Event
	err := c.do(ctx, http.MethodGet, "/events/", nil, &out, false)
	return out, err
}

func (c *Client) CreateEvent(ctx context.Context, req model.CreateEventRequest) (model.Event, error) {
	var out model.Event
	err := c.do(ctx, http.MethodPost, "/events/", req, &out, true)
	return out, err
}

func (c *Client) EventsByOrganizer(ctx context.Context) ([]model.Event, error) {
	var out []model.Event
	err := c.do(ctx, http.MethodGet, "/events/organizer", nil, &out, true)
	return out, err
}

func (c *Client) RegisteredEvents(ctx context.Context) ([]model.Event, error) {
	var out []model.Event
	err := c.do(ctx, http.MethodGet, "/events/registered", nil, &out, true)
	return out, err
}

func (c *Client) EventByID(ctx context.Context, id string) (model.EventWithAttendees, error) {
	var out model.EventWithAttendees
	err := c.do(ctx, http.MethodGet, "/events/"+id, nil, &out, true)
	return out, err
}

func (c *Client) Register(ctx context.Context, eventID string) error {
	return c.do(ctx, http.MethodPost, "/events/"+eventID+"/register", nil, nil, true)
}

func (c *Client) CancelRegistration(ctx context.Context, eventID string) error {
	return c.do(ctx, http.MethodDelete, "/events/"+eventID+"/register", nil, nil, true)
}

// Ping distinguishes "server up" from "server down" without credentials:
// the public events listing answers 200, or 401 behind a proxy that guards
// everything, and either means the server is alive.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/events/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return networkError(err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusUnauthorized {
		return nil
	}
	return &Error{
		Kind:    classify(resp.StatusCode, ""),
		Status:  resp.StatusCode,
		Message: fmt.Sprintf("HTTP error, status %d", resp.StatusCode),
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, withAuth bool) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if withAuth {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return networkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.responseError(method, path, resp, raw)
	}

	// 204 and zero-length bodies decode to the zero value.
	if out == nil || resp.StatusCode == http.StatusNoContent || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// responseError turns a non-2xx response into a classified *Error. The body
// is only parsed when the server says it is JSON; a parse failure on an
// error body degrades to the generic status message.
func (c *Client) responseError(method, path string, resp *http.Response, raw []byte) error {
	message := fmt.Sprintf("HTTP error, status %d", resp.StatusCode)
	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
			message = body.Message
		}
	}
	c.logger.Warn("api error",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("message", message))
	return &Error{Kind: classify(resp.StatusCode, message), Status: resp.StatusCode, Message: message}
}
