package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"quizly/internal/quiz"
)

// RouterConfig carries the handler wiring for NewRouter.
type RouterConfig struct {
	Repo      quiz.Repository
	Explainer quiz.Explainer
	Sessions  *quiz.Manager
	// AllowedOrigin is the browser frontend origin for CORS. Empty means
	// same-origin only.
	AllowedOrigin string
	CookieSecret  []byte
}

func NewRouter(cfg RouterConfig) http.Handler {
	api := NewAPI(cfg.Repo, cfg.Explainer, cfg.Sessions, cfg.CookieSecret)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	// The explanation call upstream can take a while; keep headroom.
	r.Use(middleware.Timeout(60 * time.Second))

	if cfg.AllowedOrigin != "" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{cfg.AllowedOrigin},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/levels", api.HandleLevels)
		r.Get("/questions", api.HandleQuestions)
		r.Post("/explain", api.HandleExplain)

		r.Route("/session", func(r chi.Router) {
			r.Get("/", api.HandleSessionState)
			r.Post("/start", api.HandleSessionStart)
			r.Post("/answer", api.HandleSessionAnswer)
			r.Post("/advance", api.HandleSessionAdvance)
			r.Post("/end", api.HandleSessionEnd)
			r.Post("/restart", api.HandleSessionRestart)
		})
	})

	return r
}
