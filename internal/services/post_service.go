package services

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/baharkarakas/mini-linkedin/internal/metrics"
	"github.com/baharkarakas/mini-linkedin/internal/models"
	repo "github.com/baharkarakas/mini-linkedin/internal/repository"
	"github.com/baharkarakas/mini-linkedin/internal/validate"
)

const maxPostLen = 1000

type PostService struct {
	posts    repo.Posts
	users    repo.Users
	activity *ActivityRecorder
	m        *metrics.Metrics
	now      func() time.Time
}

func NewPostService(posts repo.Posts, users repo.Users, activity *ActivityRecorder, m *metrics.Metrics) *PostService {
	return &PostService{posts: posts, users: users, activity: activity, m: m, now: time.Now}
}

// Create stores a post for authorID and returns it with the author embedded.
func (s *PostService) Create(ctx context.Context, authorID, content string) (models.Post, error) {
	// limits apply to the trimmed text, counted in runes
	content = strings.TrimSpace(content)
	if err := validate.First(
		validate.Check("content", content, validation.Required.Error("Post content is required")),
		validate.Check("content", content,
			validation.RuneLength(0, maxPostLen).Error("Post content must be at most 1000 characters")),
	); err != nil {
		return models.Post{}, err
	}

	ok, err := s.users.Exists(ctx, authorID)
	if err != nil {
		return models.Post{}, err
	}
	if !ok {
		return models.Post{}, ErrUserNotFound
	}

	p, err := s.posts.Create(ctx, models.Post{AuthorID: authorID, Content: content, CreatedAt: s.now().UTC()})
	if err != nil {
		return models.Post{}, err
	}

	s.m.PostCreated()
	s.activity.Record(authorID, models.ActionPostCreated, map[string]any{"post_id": p.ID})
	return p, nil
}

// ListAll returns every post with a resolvable author, newest first.
func (s *PostService) ListAll(ctx context.Context) ([]models.Post, error) {
	return s.posts.List(ctx, repo.PostFilter{})
}

func (s *PostService) ListByAuthor(ctx context.Context, userID string) ([]models.Post, error) {
	return s.posts.List(ctx, repo.PostFilter{AuthorID: userID})
}

// Profile composes a user with their posts. Lookup errors match
// UserService.GetByID.
func (s *PostService) Profile(ctx context.Context, userID string) (models.Profile, error) {
	u, err := lookupUser(ctx, s.users, userID)
	if err != nil {
		return models.Profile{}, err
	}
	posts, err := s.ListByAuthor(ctx, u.ID)
	if err != nil {
		return models.Profile{}, err
	}
	return models.Profile{User: u, Posts: posts}, nil
}
