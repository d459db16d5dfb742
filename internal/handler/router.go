package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

const adminRealm = "repo-detective admin"

// RouterConfig carries what NewRouter needs. Admin routes are mounted only
// when both Admin and AdminCredentials are set.
type RouterConfig struct {
	Analyze          *AnalyzeHandler
	Admin            *AdminHandler
	AdminCredentials map[string]string
	Logger           *log.Logger
}

// NewRouter creates a new Chi router with all routes configured.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.RequestLogger(&chimiddleware.DefaultLogFormatter{Logger: cfg.Logger, NoColor: true}))
	r.Use(chimiddleware.Recoverer)

	r.MethodNotAllowed(MethodNotAllowed)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Post("/api/analyze", cfg.Analyze.Analyze)

	if cfg.Admin != nil && len(cfg.AdminCredentials) > 0 {
		r.Route("/api/admin", func(r chi.Router) {
			r.Use(chimiddleware.BasicAuth(adminRealm, cfg.AdminCredentials))
			r.Post("/fixes", cfg.Admin.ApplyFixes)
		})
	}

	return r
}
