package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/baharkarakas/mini-linkedin/internal/models"
	repo "github.com/baharkarakas/mini-linkedin/internal/repository"
	"github.com/baharkarakas/mini-linkedin/internal/worker"
)

const activityWriteTimeout = 5 * time.Second

// ActivityRecorder appends audit entries in the background. Failures are
// logged and never reach the caller. A nil recorder drops every entry.
type ActivityRecorder struct {
	repo repo.Activity
	wp   *worker.Pool
	log  *slog.Logger
	now  func() time.Time
}

func NewActivityRecorder(r repo.Activity, wp *worker.Pool, log *slog.Logger) *ActivityRecorder {
	return &ActivityRecorder{repo: r, wp: wp, log: log, now: time.Now}
}

func (a *ActivityRecorder) Record(userID, action string, details map[string]any) {
	if a == nil {
		return
	}
	entry := models.Activity{UserID: userID, Action: action, Details: details, CreatedAt: a.now()}
	err := a.wp.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), activityWriteTimeout)
		defer cancel()
		if err := a.repo.Create(ctx, entry); err != nil {
			a.log.Error("activity write failed", "action", action, "user_id", userID, "err", err)
		}
	})
	if err != nil {
		a.log.Warn("activity dropped", "action", action, "user_id", userID, "err", err)
	}
}
