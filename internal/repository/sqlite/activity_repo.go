package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/baharkarakas/mini-linkedin/internal/models"
)

type activityRepo struct{ db *sql.DB }

func (r *activityRepo) Create(ctx context.Context, a models.Activity) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Details == nil {
		a.Details = map[string]any{}
	}
	details, err := json.Marshal(a.Details)
	if err != nil {
		return fmt.Errorf("encoding activity details: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO activity (id, user_id, action, details, created_at) VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.Action, string(details), toUnix(a.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting activity: %w", err)
	}
	return nil
}
