package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/mini-linkedin/internal/api/httpx"
	"github.com/baharkarakas/mini-linkedin/internal/middleware"
	"github.com/baharkarakas/mini-linkedin/internal/services"
)

type UserHandler struct {
	Users *services.UserService
	Posts *services.PostService
	Log   *slog.Logger
}

func NewUserHandler(us *services.UserService, ps *services.PostService, log *slog.Logger) *UserHandler {
	return &UserHandler{Users: us, Posts: ps, Log: log}
}

type updateBioReq struct {
	Bio string `json:"bio"`
}

// Profile handles GET /users/{id} and returns the user with their posts.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	prof, err := h.Posts.Profile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, prof)
}

// UpdateBio handles PUT /users/{id}.
func (h *UserHandler) UpdateBio(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	target := chi.URLParam(r, "id")
	if target != uid {
		writeError(w, r, h.Log, services.ErrForbidden)
		return
	}
	var req updateBioReq
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	u, err := h.Users.UpdateBio(r.Context(), uid, target, req.Bio)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}
