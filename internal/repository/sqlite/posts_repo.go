package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/baharkarakas/mini-linkedin/internal/models"
	"github.com/baharkarakas/mini-linkedin/internal/repository"
)

type postsRepo struct{ db *sql.DB }

const selectJoinedPosts = `
SELECT p.id, p.author_id, p.content, p.created_at, u.id, u.name, u.email
  FROM posts p
  JOIN users u ON u.id = p.author_id`

func (r *postsRepo) Create(ctx context.Context, p models.Post) (models.Post, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (id, author_id, content, created_at) VALUES (?, ?, ?, ?)`,
		p.ID, p.AuthorID, p.Content, toUnix(p.CreatedAt),
	)
	if err != nil {
		return models.Post{}, fmt.Errorf("inserting post: %w", err)
	}
	return r.GetByID(ctx, p.ID)
}

func (r *postsRepo) GetByID(ctx context.Context, id string) (models.Post, error) {
	p, err := scanPost(r.db.QueryRowContext(ctx, selectJoinedPosts+` WHERE p.id = ?`, id))
	if err != nil {
		return models.Post{}, notFound(err, "selecting post")
	}
	return p, nil
}

func (r *postsRepo) List(ctx context.Context, f repository.PostFilter) ([]models.Post, error) {
	q := selectJoinedPosts
	var args []any
	if f.AuthorID != "" {
		q += ` WHERE p.author_id = ?`
		args = append(args, f.AuthorID)
	}
	q += ` ORDER BY p.created_at DESC, p.rowid DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (models.Post, error) {
	var (
		p  models.Post
		a  models.Author
		ts int64
	)
	if err := row.Scan(&p.ID, &p.AuthorID, &p.Content, &ts, &a.ID, &a.Name, &a.Email); err != nil {
		return models.Post{}, err
	}
	p.CreatedAt = fromUnix(ts)
	p.Author = &a
	return p, nil
}
