package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/mini-linkedin/internal/models"
)

type activityRepo struct{ pool *pgxpool.Pool }

// Create stores the entry; Details is encoded straight into the jsonb column.
func (r *activityRepo) Create(ctx context.Context, a models.Activity) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Details == nil {
		a.Details = map[string]any{}
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO activity(id, user_id, action, details, created_at) VALUES($1,$2,$3,$4,$5)`,
		a.ID, a.UserID, a.Action, a.Details, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting activity: %w", err)
	}
	return nil
}
