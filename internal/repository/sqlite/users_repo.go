package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/baharkarakas/mini-linkedin/internal/models"
	"github.com/baharkarakas/mini-linkedin/internal/repository"
)

type usersRepo struct{ db *sql.DB }

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, bio, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Bio, toUnix(u.CreatedAt),
	)
	if err != nil {
		if isConstraintViolation(err) {
			return models.User{}, repository.ErrDuplicate
		}
		return models.User{}, fmt.Errorf("inserting user: %w", err)
	}
	return u, nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	var (
		u  models.User
		ts int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, bio, created_at FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Bio, &ts)
	if err != nil {
		return models.User{}, notFound(err, "selecting user")
	}
	u.CreatedAt = fromUnix(ts)
	return u, nil
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var (
		u  models.User
		ts int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, bio, created_at FROM users WHERE email = ?`, email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Bio, &ts)
	if err != nil {
		return models.User{}, notFound(err, "selecting user by email")
	}
	u.CreatedAt = fromUnix(ts)
	return u, nil
}

func (r *usersRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking user: %w", err)
	}
	return exists, nil
}

func (r *usersRepo) UpdateBio(ctx context.Context, id, bio string) (models.User, error) {
	var (
		u  models.User
		ts int64
	)
	err := r.db.QueryRowContext(ctx,
		`UPDATE users SET bio = ? WHERE id = ? RETURNING id, name, email, bio, created_at`, bio, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Bio, &ts)
	if err != nil {
		return models.User{}, notFound(err, "updating bio")
	}
	u.CreatedAt = fromUnix(ts)
	return u, nil
}

func notFound(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
