package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"petvault/internal/platform/httpclient"
	"petvault/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("supabase client not configured")
	ErrUnauthorized  = errors.New("supabase unauthorized")
	ErrUpstream      = errors.New("supabase upstream error")
)

// Config del cliente de auth de Supabase (GoTrue).
type Config struct {
	BaseURL string // https://<project>.supabase.co
	AnonKey string

	Timeout time.Duration
}

type Client struct {
	anonKey string
	http    *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		anonKey: strings.TrimSpace(cfg.AnonKey),
		http:    hc,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.anonKey != ""
}

// GetUser resuelve el access token contra GoTrue (/auth/v1/user).
func (c *Client) GetUser(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrUnauthorized
	}

	var out struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}

	err := c.http.DoJSON(ctx, http.MethodGet, "/auth/v1/user", map[string]string{
		"Authorization": "Bearer " + token,
		"apikey":        c.anonKey,
	}, &out)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden {
				return auth.Claims{}, ErrUnauthorized
			}
			return auth.Claims{}, fmt.Errorf("%w: status=%d", ErrUpstream, httpErr.StatusCode)
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	out.ID = strings.TrimSpace(out.ID)
	if out.ID == "" {
		return auth.Claims{}, errors.New("supabase response missing user id")
	}

	return auth.Claims{
		UserID: out.ID,
		Email:  strings.TrimSpace(out.Email),
	}, nil
}
