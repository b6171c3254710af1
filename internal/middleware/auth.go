package middleware

import (
	"net/http"
	"strings"

	"github.com/baharkarakas/mini-linkedin/internal/api/httpx"
	"github.com/baharkarakas/mini-linkedin/internal/auth"
)

const bearerPrefix = "bearer "

type AuthMiddleware struct {
	TM *auth.TokenManager
}

func NewAuthMiddleware(tm *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{TM: tm}
}

// Auth accepts "Authorization: Bearer <token>" and stores the token's user id
// in the request context. A missing credential and a rejected one get
// different messages.
func (m *AuthMiddleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ah := r.Header.Get("Authorization")
		if len(ah) < len(bearerPrefix) || !strings.EqualFold(ah[:len(bearerPrefix)], bearerPrefix) {
			httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		token := strings.TrimSpace(ah[len(bearerPrefix):])
		if token == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		uid, err := m.TM.Verify(token)
		if err != nil {
			httpx.WriteError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), uid)))
	})
}
