package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/mini-linkedin/internal/models"
	"github.com/baharkarakas/mini-linkedin/internal/repository"
)

type postsRepo struct{ pool *pgxpool.Pool }

const selectJoinedPosts = `
SELECT p.id, p.author_id, p.content, p.created_at, u.id, u.name, u.email
  FROM posts p
  JOIN users u ON u.id = p.author_id`

func (r *postsRepo) Create(ctx context.Context, p models.Post) (models.Post, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO posts(id, author_id, content, created_at) VALUES($1,$2,$3,$4)`,
		p.ID, p.AuthorID, p.Content, p.CreatedAt,
	)
	if err != nil {
		return models.Post{}, fmt.Errorf("inserting post: %w", err)
	}
	return r.GetByID(ctx, p.ID)
}

func (r *postsRepo) GetByID(ctx context.Context, id string) (models.Post, error) {
	p, err := scanPost(r.pool.QueryRow(ctx, selectJoinedPosts+` WHERE p.id=$1`, id))
	if err != nil {
		return models.Post{}, wrap(err, "selecting post")
	}
	return p, nil
}

func (r *postsRepo) List(ctx context.Context, f repository.PostFilter) ([]models.Post, error) {
	q := selectJoinedPosts
	var args []any
	if f.AuthorID != "" {
		q += ` WHERE p.author_id=$1`
		args = append(args, f.AuthorID)
	}
	q += ` ORDER BY p.created_at DESC, p.id DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	defer rows.Close()

	out := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning post: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPost(row pgx.Row) (models.Post, error) {
	var (
		p models.Post
		a models.Author
	)
	if err := row.Scan(&p.ID, &p.AuthorID, &p.Content, &p.CreatedAt, &a.ID, &a.Name, &a.Email); err != nil {
		return models.Post{}, err
	}
	p.Author = &a
	return p, nil
}
