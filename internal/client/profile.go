package client

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/baharkarakas/mini-linkedin/internal/models"
)

type Mode int

const (
	Viewing Mode = iota
	Editing
)

var ErrNotOwner = errors.New("profile belongs to another user")

// ProfileView shows one user's profile and lets its owner edit the bio.
type ProfileView struct {
	c      *Client
	s      *Session
	userID string

	mu      sync.Mutex
	profile *models.Profile
	loadErr string
	mode    Mode
	draft   string
	saveErr string
}

func NewProfileView(c *Client, s *Session, userID string) *ProfileView {
	return &ProfileView{c: c, s: s, userID: userID}
}

func (v *ProfileView) Load(ctx context.Context) error {
	prof, err := v.c.Profile(ctx, v.userID)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			v.loadErr = "User not found"
		} else {
			v.loadErr = "Failed to load profile"
		}
		return err
	}
	v.profile = &prof
	v.loadErr = ""
	v.draft = prof.User.Bio
	return nil
}

// IsOwn reports whether the signed-in user is viewing their own profile.
func (v *ProfileView) IsOwn() bool {
	u, ok := v.s.User()
	return ok && u.ID == v.userID
}

func (v *ProfileView) BeginEdit() error {
	if !v.IsOwn() {
		return ErrNotOwner
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.profile != nil {
		v.draft = v.profile.User.Bio
	}
	v.mode = Editing
	v.saveErr = ""
	return nil
}

func (v *ProfileView) SetDraft(bio string) {
	v.mu.Lock()
	v.draft = bio
	v.mu.Unlock()
}

// Cancel drops the draft and returns to Viewing.
func (v *ProfileView) Cancel() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.draft = ""
	if v.profile != nil {
		v.draft = v.profile.User.Bio
	}
	v.mode = Viewing
	v.saveErr = ""
}

// Save submits the draft. On success the profile user is replaced and the view
// returns to Viewing; on failure it stays in Editing with SaveErr set.
func (v *ProfileView) Save(ctx context.Context) error {
	tok := v.s.Token()
	if tok == "" {
		return ErrNotSignedIn
	}
	v.mu.Lock()
	draft := v.draft
	v.mu.Unlock()

	u, err := v.c.UpdateBio(ctx, tok, v.userID, draft)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.saveErr = failureMessage(err, "Failed to update bio")
		return err
	}
	if v.profile == nil {
		v.profile = &models.Profile{Posts: []models.Post{}}
	}
	v.profile.User = u
	v.draft = u.Bio
	v.mode = Viewing
	v.saveErr = ""
	return nil
}

func (v *ProfileView) Profile() (models.Profile, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.profile == nil {
		return models.Profile{}, false
	}
	return *v.profile, true
}

func (v *ProfileView) Mode() Mode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mode
}

func (v *ProfileView) Draft() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.draft
}

// Err is the load failure message, if any.
func (v *ProfileView) Err() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loadErr
}

func (v *ProfileView) SaveErr() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.saveErr
}
