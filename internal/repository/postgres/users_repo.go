package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/mini-linkedin/internal/models"
	"github.com/baharkarakas/mini-linkedin/internal/repository"
)

type usersRepo struct{ pool *pgxpool.Pool }

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users(id, name, email, password_hash, bio, created_at)
		 VALUES($1,$2,$3,$4,$5,$6) RETURNING created_at`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Bio, u.CreatedAt,
	).Scan(&u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, repository.ErrDuplicate
		}
		return models.User{}, fmt.Errorf("inserting user: %w", err)
	}
	return u, nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, bio, created_at FROM users WHERE id=$1`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Bio, &u.CreatedAt)
	if err != nil {
		return models.User{}, wrap(err, "selecting user")
	}
	return u, nil
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, bio, created_at FROM users WHERE email=$1`, email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Bio, &u.CreatedAt)
	if err != nil {
		return models.User{}, wrap(err, "selecting user by email")
	}
	return u, nil
}

func (r *usersRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id=$1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking user: %w", err)
	}
	return exists, nil
}

func (r *usersRepo) UpdateBio(ctx context.Context, id, bio string) (models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx,
		`UPDATE users SET bio=$2 WHERE id=$1 RETURNING id, name, email, bio, created_at`, id, bio,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Bio, &u.CreatedAt)
	if err != nil {
		return models.User{}, wrap(err, "updating bio")
	}
	return u, nil
}

func wrap(err error, op string) error {
	if isNoRows(err) {
		return repository.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
