package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ewilliams-labs/soundify/internal/core/services"
)

// Options tunes the HTTP adapter.
type Options struct {
	// CORSOrigins lists the browser origins allowed to call the API.
	CORSOrigins []string
}

// Handler manages the HTTP interface for our application.
type Handler struct {
	svc    *services.Recommender
	router chi.Router
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(svc *services.Recommender, opts Options) *Handler {
	h := &Handler{
		svc:    svc,
		router: chi.NewRouter(),
	}

	h.middleware(opts)
	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) middleware(opts Options) {
	h.router.Use(requestID)
	h.router.Use(accessLog)
	h.router.Use(middleware.Recoverer)
	if len(opts.CORSOrigins) > 0 {
		h.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
			ExposedHeaders: []string{requestIDHeader},
			MaxAge:         300,
		}))
	}
	h.router.Use(middleware.StripSlashes)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	h.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	h.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	h.router.Get("/health", h.HealthCheck)
	h.router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// The search variant reports provider failures as 500, the others as 400.
	h.router.Post("/recommendations", h.Recommend(services.History, http.StatusBadRequest))
	h.router.Post("/filtered-recommendations", h.Recommend(services.Filtered, http.StatusBadRequest))
	h.router.Post("/search-recommendations", h.Recommend(services.Search, http.StatusInternalServerError))
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "Soundify is live 🎶"})
}
