package repository

import (
	"context"
	"errors"

	"github.com/baharkarakas/mini-linkedin/internal/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

type Users interface {
	// Create stores u and returns it with its assigned id. A taken email
	// yields ErrDuplicate.
	Create(ctx context.Context, u models.User) (models.User, error)
	// GetByID never populates PasswordHash.
	GetByID(ctx context.Context, id string) (models.User, error)
	// GetByEmail includes PasswordHash for credential checks.
	GetByEmail(ctx context.Context, email string) (models.User, error)
	Exists(ctx context.Context, id string) (bool, error)
	UpdateBio(ctx context.Context, id, bio string) (models.User, error)
}

// PostFilter narrows a post listing. The zero value lists every post.
type PostFilter struct {
	AuthorID string
}

// Posts returns posts joined with their author. Posts whose author cannot be
// joined are left out of every result.
type Posts interface {
	Create(ctx context.Context, p models.Post) (models.Post, error)
	GetByID(ctx context.Context, id string) (models.Post, error)
	// List orders by creation time, newest first.
	List(ctx context.Context, f PostFilter) ([]models.Post, error)
}

type Activity interface {
	Create(ctx context.Context, a models.Activity) error
}
