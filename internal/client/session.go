package client

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/baharkarakas/mini-linkedin/internal/models"
)

// Session holds the current identity and bearer token. It is resolving from
// construction until Init returns.
type Session struct {
	c     *Client
	store TokenStore

	mu        sync.RWMutex
	user      *models.User
	token     string
	resolving bool
}

func NewSession(c *Client, store TokenStore) *Session {
	return &Session{c: c, store: store, resolving: true}
}

// Init restores a persisted token and resolves it to a user. A token the
// server rejects is discarded. Transport failures leave the stored token in
// place and are returned.
func (s *Session) Init(ctx context.Context) error {
	defer func() {
		s.mu.Lock()
		s.resolving = false
		s.mu.Unlock()
	}()

	tok, err := s.store.Load()
	if err != nil || tok == "" {
		return err
	}

	u, err := s.c.Me(ctx, tok)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusNotFound) {
			return s.store.Clear()
		}
		return err
	}

	s.set(&u, tok)
	return nil
}

func (s *Session) Login(ctx context.Context, email, password string) (models.User, error) {
	res, err := s.c.Login(ctx, email, password)
	if err != nil {
		return models.User{}, err
	}
	s.set(&res.User, res.Token)
	if err := s.store.Save(res.Token); err != nil {
		return res.User, err
	}
	return res.User, nil
}

// Register creates the account and then logs in with the same credentials.
func (s *Session) Register(ctx context.Context, name, email, password string) (models.User, error) {
	if _, err := s.c.Register(ctx, name, email, password); err != nil {
		return models.User{}, err
	}
	return s.Login(ctx, email, password)
}

func (s *Session) Logout() error {
	s.set(nil, "")
	return s.store.Clear()
}

// User returns the signed-in user, if any.
func (s *Session) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Resolving() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolving
}

func (s *Session) set(u *models.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
	s.token = token
}
