package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/baharkarakas/mini-linkedin/internal/api/httpx"
	"github.com/baharkarakas/mini-linkedin/internal/services"
	"github.com/baharkarakas/mini-linkedin/internal/validate"
)

// writeError maps service and validation errors onto status codes. Anything
// unrecognised is logged and reported as a 500.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var verrs validate.Errs
	switch {
	case errors.As(err, &verrs):
		httpx.WriteError(w, http.StatusBadRequest, verrs.Error())
	case errors.Is(err, httpx.ErrInvalidBody):
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
	case errors.Is(err, services.ErrInvalidID):
		httpx.WriteError(w, http.StatusBadRequest, "Invalid user ID")
	case errors.Is(err, services.ErrEmailTaken):
		httpx.WriteError(w, http.StatusBadRequest, "User already exists with this email")
	case errors.Is(err, services.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "You can only update your own profile")
	case errors.Is(err, services.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, "User not found")
	default:
		log.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimw.GetReqID(r.Context()),
			"err", err,
		)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}
