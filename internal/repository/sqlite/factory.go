// Package sqlite implements the repositories on top of database/sql and the
// pure-Go modernc SQLite driver. Timestamps are stored as Unix nanoseconds so
// ordering by created_at is exact.
package sqlite

import (
	"database/sql"
	"errors"
	"time"

	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/baharkarakas/mini-linkedin/internal/repository"
)

func NewRepositories(db *sql.DB) repository.Repositories {
	return repository.Repositories{
		Users:    &usersRepo{db},
		Posts:    &postsRepo{db},
		Activity: &activityRepo{db},
	}
}

func isConstraintViolation(err error) bool {
	var se *moderncsqlite.Error
	if errors.As(err, &se) {
		return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}

func toUnix(t time.Time) int64 { return t.UnixNano() }

func fromUnix(n int64) time.Time { return time.Unix(0, n).UTC() }
