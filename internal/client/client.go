// Package client talks to the HTTP API and holds the presentation state for a
// single user: session, feed and profile views.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/baharkarakas/mini-linkedin/internal/models"
)

// APIError is returned for every non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

type LoginResponse struct {
	User      models.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

type Client struct {
	baseURL string
	hc      *http.Client
}

// New returns a client for the API rooted at baseURL, e.g.
// "http://localhost:8080". A nil hc uses a client with a 10s timeout.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/") + "/api/v1", hc: hc}
}

func (c *Client) Register(ctx context.Context, name, email, password string) (models.User, error) {
	var u models.User
	err := c.do(ctx, http.MethodPost, "/users", "", map[string]string{
		"name": name, "email": email, "password": password,
	}, &u)
	return u, err
}

func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	var res LoginResponse
	err := c.do(ctx, http.MethodPost, "/sessions", "", map[string]string{
		"email": email, "password": password,
	}, &res)
	return res, err
}

func (c *Client) Me(ctx context.Context, token string) (models.User, error) {
	var u models.User
	err := c.do(ctx, http.MethodGet, "/me", token, nil, &u)
	return u, err
}

func (c *Client) Posts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := c.do(ctx, http.MethodGet, "/posts", "", nil, &posts)
	return posts, err
}

func (c *Client) CreatePost(ctx context.Context, token, content string) (models.Post, error) {
	var p models.Post
	err := c.do(ctx, http.MethodPost, "/posts", token, map[string]string{"content": content}, &p)
	return p, err
}

func (c *Client) Profile(ctx context.Context, userID string) (models.Profile, error) {
	var prof models.Profile
	err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID), "", nil, &prof)
	return prof, err
}

func (c *Client) UpdateBio(ctx context.Context, token, userID, bio string) (models.User, error) {
	var u models.User
	err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(userID), token, map[string]string{"bio": bio}, &u)
	return u, err
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s: %w", method, path, err)
	}
	return nil
}
