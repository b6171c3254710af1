package client

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/baharkarakas/mini-linkedin/internal/models"
)

var (
	ErrSessionResolving = errors.New("session is still resolving")
	ErrNotSignedIn      = errors.New("not signed in")
	ErrEmptyContent     = errors.New("post content is empty")
)

type FeedState int

const (
	FeedLoading FeedState = iota
	FeedSuccess
	FeedError
)

func (s FeedState) String() string {
	switch s {
	case FeedLoading:
		return "loading"
	case FeedSuccess:
		return "success"
	case FeedError:
		return "error"
	}
	return "unknown"
}

// Feed is the home timeline. Concurrent loads are not cancelled; whichever
// completes last determines the state.
type Feed struct {
	c *Client
	s *Session

	mu     sync.Mutex
	state  FeedState
	posts  []models.Post
	errMsg string
}

func NewFeed(c *Client, s *Session) *Feed {
	return &Feed{c: c, s: s, state: FeedLoading}
}

// Load fetches the timeline. It refuses to run until the session has resolved.
func (f *Feed) Load(ctx context.Context) error {
	if f.s.Resolving() {
		return ErrSessionResolving
	}

	f.mu.Lock()
	f.state = FeedLoading
	f.errMsg = ""
	f.mu.Unlock()

	posts, err := f.c.Posts(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = FeedError
		f.errMsg = failureMessage(err, "Failed to load posts")
		return err
	}
	f.state = FeedSuccess
	f.posts = withAuthors(posts)
	return nil
}

func (f *Feed) Retry(ctx context.Context) error { return f.Load(ctx) }

// Submit publishes content as the signed-in user. The new post is prepended
// only when its author projection is usable.
func (f *Feed) Submit(ctx context.Context, content string) (models.Post, error) {
	tok := f.s.Token()
	if tok == "" {
		return models.Post{}, ErrNotSignedIn
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Post{}, ErrEmptyContent
	}

	p, err := f.c.CreatePost(ctx, tok, content)
	if err != nil {
		return models.Post{}, err
	}

	if p.HasAuthor() {
		f.mu.Lock()
		f.posts = append([]models.Post{p}, f.posts...)
		f.mu.Unlock()
	}
	return p, nil
}

func (f *Feed) State() FeedState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Feed) Posts() []models.Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Post(nil), f.posts...)
}

// Err is the message shown in the error state.
func (f *Feed) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

func withAuthors(posts []models.Post) []models.Post {
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if p.HasAuthor() {
			out = append(out, p)
		}
	}
	return out
}

// failureMessage prefers the server's message and falls back to def. Errors
// that never reached the server get a network message.
func failureMessage(err error, def string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return def
	}
	return "Network error: Unable to connect to server"
}
