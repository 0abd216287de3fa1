// Package adminclient is a Go client for the GKK99 admin API. It keeps a
// locally persisted session cache so a restarted client can resume without
// logging in again, falling back to server verification.
package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"gkk99-backend/internal/models"
)

var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("access denied")
	ErrRequestFailed   = errors.New("request failed")
)

// Client talks to the admin API and maintains the session cache
type Client struct {
	baseURL string
	httpc   *http.Client
	store   TokenStore

	mu      sync.Mutex
	state   AuthState
	token   string
	account *models.Account
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// New creates a client for the API at baseURL, caching sessions in store
func New(baseURL string, store TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   http.DefaultClient,
		store:   store,
		state:   StateUnknown,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current auth state
func (c *Client) State() AuthState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Account returns the authenticated account snapshot, or nil
func (c *Client) Account() *models.Account {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.account
}

// Resume loads the cached session and verifies it with the server. A failed
// verification clears the cache and leaves the client unauthenticated.
func (c *Client) Resume(ctx context.Context) (AuthState, error) {
	cached, err := c.store.Load()
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			c.setUnauthenticated()
			return StateUnauthenticated, nil
		}
		return StateUnknown, err
	}

	c.mu.Lock()
	c.state = StateVerifying
	c.mu.Unlock()

	var account models.Account
	err = c.do(ctx, http.MethodGet, "/auth/verify", cached.Token, nil, &account)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) || errors.Is(err, ErrForbidden) {
			c.store.Clear()
			c.setUnauthenticated()
			return StateUnauthenticated, nil
		}
		// Transport failure: verdict unknown, keep the cache
		c.mu.Lock()
		c.state = StateUnknown
		c.mu.Unlock()
		return StateUnknown, err
	}

	c.mu.Lock()
	c.state = StateAuthenticated
	c.token = cached.Token
	c.account = &account
	c.mu.Unlock()

	return StateAuthenticated, nil
}

// Login authenticates and persists the new session, replacing any cached one
func (c *Client) Login(ctx context.Context, username, password string) (*models.Account, error) {
	var resp models.LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", "", models.LoginRequest{
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	if err := c.store.Save(&CachedSession{Token: resp.Token, User: *resp.User}); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.state = StateAuthenticated
	c.token = resp.Token
	c.account = resp.User
	c.mu.Unlock()

	return resp.User, nil
}

// Logout ends the session. The local cache is cleared even when the remote
// call fails; logout is best-effort remote, guaranteed local.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()

	var remoteErr error
	if token != "" {
		remoteErr = c.do(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
	}

	c.store.Clear()
	c.setUnauthenticated()

	return remoteErr
}

// GetContent fetches the public site content
func (c *Client) GetContent(ctx context.Context) (*models.SiteContent, error) {
	var content models.SiteContent
	if err := c.do(ctx, http.MethodGet, "/content", "", nil, &content); err != nil {
		return nil, err
	}
	return &content, nil
}

// UpdateContent saves a partial content update and returns the full record
func (c *Client) UpdateContent(ctx context.Context, req models.UpdateContentRequest) (*models.SiteContent, error) {
	token, err := c.currentToken()
	if err != nil {
		return nil, err
	}

	var content models.SiteContent
	if err := c.do(ctx, http.MethodPut, "/content", token, req, &content); err != nil {
		return nil, err
	}
	return &content, nil
}

// ListUsers fetches all admin accounts (main admin only)
func (c *Client) ListUsers(ctx context.Context) ([]*models.Account, error) {
	token, err := c.currentToken()
	if err != nil {
		return nil, err
	}

	var accounts []*models.Account
	if err := c.do(ctx, http.MethodGet, "/admin/users", token, nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// SetUserStatus toggles an account's active flag (main admin only)
func (c *Client) SetUserStatus(ctx context.Context, userID string, active bool) (*models.Account, error) {
	token, err := c.currentToken()
	if err != nil {
		return nil, err
	}

	var account models.Account
	path := fmt.Sprintf("/admin/users/%s/status", userID)
	err = c.do(ctx, http.MethodPatch, path, token, models.UpdateAccountStatusRequest{IsActive: &active}, &account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *Client) currentToken() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateAuthenticated || c.token == "" {
		return "", ErrUnauthenticated
	}
	return c.token, nil
}

func (c *Client) setUnauthenticated() {
	c.mu.Lock()
	c.state = StateUnauthenticated
	c.token = ""
	c.account = nil
	c.mu.Unlock()
}

// do performs a request and decodes the envelope, mapping failures to errors
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api"+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	if !envelope.Success {
		msg := envelope.Error
		if msg == "" {
			msg = envelope.Message
		}
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", ErrUnauthenticated, msg)
		case http.StatusForbidden:
			return fmt.Errorf("%w: %s", ErrForbidden, msg)
		default:
			return fmt.Errorf("%w: %s", ErrRequestFailed, msg)
		}
	}

	if out != nil && len(envelope.Data) > 0 {
		return json.Unmarshal(envelope.Data, out)
	}
	return nil
}
