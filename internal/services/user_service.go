package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"

	"github.com/baharkarakas/mini-linkedin/internal/auth"
	"github.com/baharkarakas/mini-linkedin/internal/metrics"
	"github.com/baharkarakas/mini-linkedin/internal/models"
	repo "github.com/baharkarakas/mini-linkedin/internal/repository"
	"github.com/baharkarakas/mini-linkedin/internal/validate"
)

const (
	minPasswordLen = 6
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
	maxBioLen        = 500
)

var emailPattern = regexp.MustCompile(`@`)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginResult struct {
	User      models.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

type UserService struct {
	users    repo.Users
	tokens   *auth.TokenManager
	cost     int
	activity *ActivityRecorder
	m        *metrics.Metrics
	now      func() time.Time
}

func NewUserService(users repo.Users, tokens *auth.TokenManager, bcryptCost int, activity *ActivityRecorder, m *metrics.Metrics) *UserService {
	return &UserService{users: users, tokens: tokens, cost: bcryptCost, activity: activity, m: m, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)

	required := validation.Required.Error("All fields are required")
	if err := validate.First(
		validate.Check("name", name, required),
		validate.Check("email", email, required),
		validate.Check("password", in.Password, required),
		validate.Check("password", in.Password,
			validation.RuneLength(minPasswordLen, 0).Error("Password must be at least 6 characters")),
		validate.Check("password", in.Password,
			validation.Length(0, maxPasswordBytes).Error("Password must be at most 72 bytes")),
		validate.Check("email", email, validation.Match(emailPattern).Error("Invalid email format")),
	); err != nil {
		return models.User{}, err
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return models.User{}, err
	}

	hash, err := auth.HashPassword(in.Password, s.cost)
	if err != nil {
		return models.User{}, fmt.Errorf("hashing password: %w", err)
	}

	u, err := s.users.Create(ctx, models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if errors.Is(err, repo.ErrDuplicate) {
		return models.User{}, ErrEmailTaken
	}
	if err != nil {
		return models.User{}, err
	}

	s.m.UserRegistered()
	s.activity.Record(u.ID, models.ActionUserRegistered, map[string]any{"email": u.Email})
	return u.Public(), nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = normalizeEmail(email)
	required := validation.Required.Error("Email and password are required")
	if err := validate.First(
		validate.Check("email", email, required),
		validate.Check("password", password, required),
	); err != nil {
		return LoginResult{}, err
	}

	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		s.m.Login(false)
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}
	if !auth.VerifyPassword(password, u.PasswordHash) {
		s.m.Login(false)
		return LoginResult{}, ErrInvalidCredentials
	}

	tok, exp, err := s.tokens.Issue(u.ID)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issuing token: %w", err)
	}

	s.m.Login(true)
	s.activity.Record(u.ID, models.ActionUserLoggedIn, nil)
	return LoginResult{User: u.Public(), Token: tok, ExpiresAt: exp}, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (models.User, error) {
	return lookupUser(ctx, s.users, id)
}

func lookupUser(ctx context.Context, users repo.Users, id string) (models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.User{}, ErrInvalidID
	}
	u, err := users.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u.Public(), nil
}

// UpdateBio replaces targetID's bio. Only the owner may do so; the ownership
// check runs before anything is read.
func (s *UserService) UpdateBio(ctx context.Context, actorID, targetID, bio string) (models.User, error) {
	if actorID != targetID {
		return models.User{}, ErrForbidden
	}
	if _, err := uuid.Parse(targetID); err != nil {
		return models.User{}, ErrInvalidID
	}

	// measured after trimming, in runes
	bio = strings.TrimSpace(bio)
	if err := validate.First(
		validate.Check("bio", bio, validation.RuneLength(0, maxBioLen).Error("Bio must be at most 500 characters")),
	); err != nil {
		return models.User{}, err
	}

	u, err := s.users.UpdateBio(ctx, targetID, bio)
	if errors.Is(err, repo.ErrNotFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}

	s.activity.Record(u.ID, models.ActionBioUpdated, map[string]any{"length": len([]rune(bio))})
	return u.Public(), nil
}
