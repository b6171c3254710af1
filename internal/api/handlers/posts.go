package handlers

import (
	"log/slog"
	"net/http"

	"github.com/baharkarakas/mini-linkedin/internal/api/httpx"
	"github.com/baharkarakas/mini-linkedin/internal/middleware"
	"github.com/baharkarakas/mini-linkedin/internal/services"
)

type PostHandler struct {
	Posts *services.PostService
	Log   *slog.Logger
}

func NewPostHandler(ps *services.PostService, log *slog.Logger) *PostHandler {
	return &PostHandler{Posts: ps, Log: log}
}

type createPostReq struct {
	Content string `json:"content"`
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Posts.ListAll(r.Context())
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	var req createPostReq
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	p, err := h.Posts.Create(r.Context(), uid, req.Content)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, p)
}
