package web

import (
	"context"
	"net/http"
	"time"

	"backoffice/internal/app"

	"github.com/go-chi/chi/v5"
)

// Options configures the HTTP surface.
type Options struct {
	// AllowedOrigins is a comma-separated list of CORS origins.
	AllowedOrigins string
	JWTSecret      string
	// AuthDisabled skips bearer token checks on the API routes.
	AuthDisabled bool
	// RateLimit is the number of requests allowed per client IP per minute.
	// Zero disables rate limiting.
	RateLimit int
	// ExposeErrors includes internal error text in 500 responses.
	ExposeErrors bool
}

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc          app.ApplicationService
	router       chi.Router
	jwtSecret    string
	exposeErrors bool
}

// NewHandler creates and wires the chi router with all routes. Background
// maintenance stops when ctx is cancelled.
func NewHandler(ctx context.Context, svc app.ApplicationService, opts Options) http.Handler {
	h := &Handler{
		svc:          svc,
		jwtSecret:    opts.JWTSecret,
		exposeErrors: opts.ExposeErrors,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(SecurityHeaders)
	r.Use(CORS(opts.AllowedOrigins))
	if opts.RateLimit > 0 {
		r.Use(NewRateLimiter(ctx, opts.RateLimit).Middleware)
	}

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	// ── Public ───────────────────────────────────────────────────────────────
	r.Get("/health", h.health)
	r.Get("/api/health", h.health)
	r.Get("/api/schema/listing", h.listingSchema)

	// ── Protected API routes (return 401 JSON if unauthenticated) ────────────
	r.Group(func(r chi.Router) {
		if !opts.AuthDisabled {
			r.Use(h.RequireAuth)
		}
		r.Get("/api/categorias/{entity}", h.apiListCategories)
		r.Get("/api/{entity}", h.apiListRecords)
		r.Get("/api/{entity}/{id}", h.apiGetRecord)
	})

	h.router = r
	return r
}

// health reports service status and whether the backend answers.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
		Database  string    `json:"database"`
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := response{Status: "ok", Timestamp: time.Now().UTC(), Database: "ok"}
	if err := h.svc.Ping(ctx); err != nil {
		resp.Status = "degraded"
		resp.Database = "unavailable"
		writeJSONStatus(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, resp)
}

// entityParam extracts the {entity} URL parameter.
func entityParam(r *http.Request) string {
	return chi.URLParam(r, "entity")
}
