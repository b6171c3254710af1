package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/mini-linkedin/internal/api/handlers"
	"github.com/baharkarakas/mini-linkedin/internal/api/httpx"
	"github.com/baharkarakas/mini-linkedin/internal/auth"
	"github.com/baharkarakas/mini-linkedin/internal/config"
	"github.com/baharkarakas/mini-linkedin/internal/metrics"
	"github.com/baharkarakas/mini-linkedin/internal/middleware"
	"github.com/baharkarakas/mini-linkedin/internal/services"
)

type RouterDeps struct {
	Cfg     config.Config
	Log     *slog.Logger
	Tokens  *auth.TokenManager
	Metrics *metrics.Metrics
	UserSvc *services.UserService
	PostSvc *services.PostService
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		chimw.RequestID,
		chimw.RealIP,
		middleware.RequestLogger(d.Log),
		middleware.HTTPMetrics(d.Metrics),
		middleware.Recover(d.Log),
		middleware.RateLimit(d.Cfg.RateRPS),
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.Cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics.Handler())
	}

	authH := handlers.NewAuthHandler(d.UserSvc, d.Log)
	postH := handlers.NewPostHandler(d.PostSvc, d.Log)
	userH := handlers.NewUserHandler(d.UserSvc, d.PostSvc, d.Log)
	guard := middleware.NewAuthMiddleware(d.Tokens).Auth

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/users", authH.Register)
		r.Post("/sessions", authH.Login)
		r.Get("/posts", postH.List)
		r.Get("/users/{id}", userH.Profile)

		r.Group(func(r chi.Router) {
			r.Use(guard)
			r.Get("/me", authH.Me)
			r.Post("/posts", postH.Create)
			r.Put("/users/{id}", userH.UpdateBio)
		})
	})

	return r
}
