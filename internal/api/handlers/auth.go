package handlers

import (
	"log/slog"
	"net/http"

	"github.com/baharkarakas/mini-linkedin/internal/api/httpx"
	"github.com/baharkarakas/mini-linkedin/internal/middleware"
	"github.com/baharkarakas/mini-linkedin/internal/services"
)

type AuthHandler struct {
	Users *services.UserService
	Log   *slog.Logger
}

func NewAuthHandler(us *services.UserService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{Users: us, Log: log}
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /users.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	u, err := h.Users.Register(r.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, u)
}

// Login handles POST /sessions.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	res, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// Me handles GET /me. Must be mounted behind the auth guard.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	u, err := h.Users.GetByID(r.Context(), uid)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}
