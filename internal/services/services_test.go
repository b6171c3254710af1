package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/baharkarakas/mini-linkedin/internal/auth"
	"github.com/baharkarakas/mini-linkedin/internal/db"
	"github.com/baharkarakas/mini-linkedin/internal/metrics"
	"github.com/baharkarakas/mini-linkedin/internal/models"
	"github.com/baharkarakas/mini-linkedin/internal/repository/sqlite"
	"github.com/baharkarakas/mini-linkedin/internal/validate"
	"github.com/baharkarakas/mini-linkedin/internal/worker"
)

type env struct {
	conn   *sql.DB
	users  *UserService
	posts  *PostService
	tokens *auth.TokenManager
	m      *metrics.Metrics
	pool   *worker.Pool
}

// stepClock returns a strictly increasing time on every call.
func stepClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	conn, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.RunMigrations(ctx, conn, "sqlite"))

	repos := sqlite.NewRepositories(conn)
	m := metrics.New(prometheus.NewRegistry())
	pool := worker.NewPool(2, 64, m.SetQueueDepth)
	t.Cleanup(pool.Stop)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	rec := NewActivityRecorder(repos.Activity, pool, log)
	tm := auth.NewTokenManager("test-secret", time.Hour)

	clock := stepClock()
	us := NewUserService(repos.Users, tm, bcrypt.MinCost, rec, m)
	us.now = clock
	ps := NewPostService(repos.Posts, repos.Users, rec, m)
	ps.now = clock

	return &env{conn: conn, users: us, posts: ps, tokens: tm, m: m, pool: pool}
}

func (e *env) register(t *testing.T, name, email string) models.User {
	t.Helper()
	u, err := e.users.Register(context.Background(), RegisterInput{Name: name, Email: email, Password: "secret1"})
	require.NoError(t, err)
	return u
}

func validationMsg(t *testing.T, err error) string {
	t.Helper()
	var errs validate.Errs
	require.ErrorAs(t, err, &errs)
	return errs.Error()
}

func TestRegister_Success(t *testing.T) {
	e := newEnv(t)

	u, err := e.users.Register(context.Background(), RegisterInput{
		Name: "  Ada  ", Email: " Ada@Example.COM ", Password: "secret1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Empty(t, u.PasswordHash)
	assert.Equal(t, "", u.Bio)
	assert.False(t, u.CreatedAt.IsZero())
	assert.Equal(t, 1.0, testutil.ToFloat64(e.m.UsersRegistered))
}

func TestRegister_Validation(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name string
		in   RegisterInput
		want string
	}{
		{"missing name", RegisterInput{Email: "a@x.com", Password: "secret1"}, "All fields are required"},
		{"blank name", RegisterInput{Name: "   ", Email: "a@x.com", Password: "secret1"}, "All fields are required"},
		{"missing email", RegisterInput{Name: "A", Password: "secret1"}, "All fields are required"},
		{"missing password", RegisterInput{Name: "A", Email: "a@x.com"}, "All fields are required"},
		{"short password", RegisterInput{Name: "A", Email: "a@x.com", Password: "12345"}, "Password must be at least 6 characters"},
		{"long password", RegisterInput{Name: "A", Email: "a@x.com", Password: strings.Repeat("p", 73)}, "Password must be at most 72 bytes"},
		{"multibyte over limit", RegisterInput{Name: "A", Email: "a@x.com", Password: strings.Repeat("ü", 37)}, "Password must be at most 72 bytes"},
		{"no at sign", RegisterInput{Name: "A", Email: "ax.com", Password: "secret1"}, "Invalid email format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.users.Register(context.Background(), tt.in)
			assert.Equal(t, tt.want, validationMsg(t, err))
		})
	}

	_, err := e.users.Register(context.Background(), RegisterInput{Name: "A", Email: "a@x.com", Password: strings.Repeat("p", 72)})
	assert.NoError(t, err, "72 bytes is accepted")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	e := newEnv(t)
	e.register(t, "A", "a@x.com")

	_, err := e.users.Register(context.Background(), RegisterInput{Name: "B", Email: "A@X.com", Password: "secret2"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_ConcurrentSameEmail(t *testing.T) {
	e := newEnv(t)

	const n = 5
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, dupe int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.users.Register(context.Background(), RegisterInput{Name: "A", Email: "race@x.com", Password: "secret1"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case assert.ErrorIs(t, err, ErrEmailTaken):
				dupe++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, dupe)
}

func TestLogin(t *testing.T) {
	e := newEnv(t)
	u := e.register(t, "A", "a@x.com")
	ctx := context.Background()

	res, err := e.users.Login(ctx, " A@x.com ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)
	assert.Empty(t, res.User.PasswordHash)
	assert.True(t, res.ExpiresAt.After(time.Now()))

	uid, err := e.tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, uid)

	_, err = e.users.Login(ctx, "a@x.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = e.users.Login(ctx, "nobody@x.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = e.users.Login(ctx, "", "secret1")
	assert.Equal(t, "Email and password are required", validationMsg(t, err))
	_, err = e.users.Login(ctx, "a@x.com", "")
	assert.Equal(t, "Email and password are required", validationMsg(t, err))

	assert.Equal(t, 1.0, testutil.ToFloat64(e.m.Logins.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(e.m.Logins.WithLabelValues("failure")))
}

func TestGetByID(t *testing.T) {
	e := newEnv(t)
	u := e.register(t, "A", "a@x.com")
	ctx := context.Background()

	got, err := e.users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)
	assert.Empty(t, got.PasswordHash)

	_, err = e.users.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = e.users.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateBio(t *testing.T) {
	e := newEnv(t)
	a := e.register(t, "A", "a@x.com")
	b := e.register(t, "B", "b@x.com")
	ctx := context.Background()

	updated, err := e.users.UpdateBio(ctx, a.ID, a.ID, "  Gopher  ")
	require.NoError(t, err)
	assert.Equal(t, "Gopher", updated.Bio)

	_, err = e.users.UpdateBio(ctx, b.ID, a.ID, "hijack")
	assert.ErrorIs(t, err, ErrForbidden)
	got, err := e.users.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gopher", got.Bio, "forbidden update leaves bio unchanged")

	// ownership is checked before the id is even parsed
	_, err = e.users.UpdateBio(ctx, b.ID, "garbage", "x")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = e.users.UpdateBio(ctx, a.ID, a.ID, strings.Repeat("é", 501))
	assert.Equal(t, "Bio must be at most 500 characters", validationMsg(t, err))

	_, err = e.users.UpdateBio(ctx, a.ID, a.ID, strings.Repeat("é", 500))
	assert.NoError(t, err)

	padded, err := e.users.UpdateBio(ctx, a.ID, a.ID, " "+strings.Repeat("b", 500)+" ")
	require.NoError(t, err)
	assert.Len(t, padded.Bio, 500)

	cleared, err := e.users.UpdateBio(ctx, a.ID, a.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "", cleared.Bio)

	ghost := uuid.NewString()
	_, err = e.users.UpdateBio(ctx, ghost, ghost, "hi")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreatePost(t *testing.T) {
	e := newEnv(t)
	a := e.register(t, "A", "a@x.com")
	ctx := context.Background()

	p, err := e.posts.Create(ctx, a.ID, "  Hello  ")
	require.NoError(t, err)
	assert.Equal(t, "Hello", p.Content)
	require.NotNil(t, p.Author)
	assert.Equal(t, models.Author{ID: a.ID, Name: "A", Email: "a@x.com"}, *p.Author)
	assert.Equal(t, 1.0, testutil.ToFloat64(e.m.PostsCreated))

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty", "", "Post content is required"},
		{"whitespace", " \n\t ", "Post content is required"},
		{"too long", strings.Repeat("x", 1001), "Post content must be at most 1000 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.posts.Create(ctx, a.ID, tt.content)
			assert.Equal(t, tt.want, validationMsg(t, err))
		})
	}

	_, err = e.posts.Create(ctx, a.ID, strings.Repeat("x", 1000))
	assert.NoError(t, err)

	// surrounding whitespace does not count toward the limit
	padded, err := e.posts.Create(ctx, a.ID, "  "+strings.Repeat("x", 1000)+"\n")
	require.NoError(t, err)
	assert.Len(t, padded.Content, 1000)

	_, err = e.posts.Create(ctx, uuid.NewString(), "orphan")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListAndProfile(t *testing.T) {
	e := newEnv(t)
	a := e.register(t, "A", "a@x.com")
	b := e.register(t, "B", "b@x.com")
	ctx := context.Background()

	for _, c := range []struct{ author, content string }{
		{a.ID, "a1"}, {b.ID, "b1"}, {a.ID, "a2"},
	} {
		_, err := e.posts.Create(ctx, c.author, c.content)
		require.NoError(t, err)
	}

	all, err := e.posts.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"a2", "b1", "a1"}, contents(all))
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt))
	}

	prof, err := e.posts.Profile(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, prof.User.ID)
	assert.Equal(t, []string{"a2", "a1"}, contents(prof.Posts))

	empty, err := e.posts.Profile(ctx, e.register(t, "C", "c@x.com").ID)
	require.NoError(t, err)
	assert.Empty(t, empty.Posts)

	_, err = e.posts.Profile(ctx, "bad-id")
	assert.ErrorIs(t, err, ErrInvalidID)
	_, err = e.posts.Profile(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestActivityRecorded(t *testing.T) {
	e := newEnv(t)
	a := e.register(t, "A", "a@x.com")
	ctx := context.Background()
	_, err := e.users.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	_, err = e.posts.Create(ctx, a.ID, "hi")
	require.NoError(t, err)
	_, err = e.users.UpdateBio(ctx, a.ID, a.ID, "bio")
	require.NoError(t, err)

	e.pool.Stop()

	rows, err := e.conn.QueryContext(ctx, `SELECT action FROM activity WHERE user_id = ?`, a.ID)
	require.NoError(t, err)
	defer rows.Close()
	var actions []string
	for rows.Next() {
		var s string
		require.NoError(t, rows.Scan(&s))
		actions = append(actions, s)
	}
	require.NoError(t, rows.Err())
	assert.ElementsMatch(t, []string{
		models.ActionUserRegistered, models.ActionUserLoggedIn, models.ActionPostCreated, models.ActionBioUpdated,
	}, actions)
}

func TestActivityRecorder_NilAndStopped(t *testing.T) {
	var nilRec *ActivityRecorder
	assert.NotPanics(t, func() { nilRec.Record("u", models.ActionPostCreated, nil) })

	e := newEnv(t)
	e.pool.Stop()
	// registration still succeeds when the audit trail is unavailable
	e.register(t, "A", "a@x.com")
}

func contents(posts []models.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Content
	}
	return out
}
