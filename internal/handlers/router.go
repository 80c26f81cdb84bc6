package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"partyhub/internal/config"
	"partyhub/internal/game"
	localMiddleware "partyhub/internal/middleware"
)

// RouterOptions allows customization of router setup for tests
type RouterOptions struct {
	DisableRateLimiting  bool
	DisableRequestLogger bool
	CustomMiddleware     []func(http.Handler) http.Handler
}

// SetupRouter creates the application router with all routes and middleware
func SetupRouter(h *Handler, cfg *config.Config, opts *RouterOptions) *chi.Mux {
	if opts == nil {
		opts = &RouterOptions{}
	}

	r := chi.NewRouter()

	// Chi's built-in middleware (conditionally applied)
	if !opts.DisableRequestLogger {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	// Our custom middleware
	r.Use(localMiddleware.RequestSizeLimiter(cfg.Server.MaxRequestSize))
	r.Use(localMiddleware.SecurityHeaders())

	// Rate limiting (conditionally applied)
	if !opts.DisableRateLimiting {
		rateLimiter := localMiddleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateLimitBurst)
		r.Use(rateLimiter.Middleware())
	}

	// Apply custom middleware if provided
	for _, mw := range opts.CustomMiddleware {
		r.Use(mw)
	}

	r.Route("/api", func(api chi.Router) {
		// Player surface
		api.With(h.requireOp(game.OpJoin)).Post("/join", h.Join)
		api.With(h.requireOp(game.OpRename)).Post("/rename", h.Rename)
		api.With(h.requireOp(game.OpSubmit)).Post("/submit", h.Submit)
		api.With(h.requireOp(game.OpVote)).Post("/vote", h.Vote)
		api.With(h.requireOp(game.OpSnapshot)).Get("/state", h.State)

		// Host surface
		api.Route("/host", func(hr chi.Router) {
			hr.With(h.requireOp(game.OpStartRound)).Post("/round/start", h.StartRound)
			hr.With(h.requireOp(game.OpAdvance)).Post("/round/advance", h.Advance)
			hr.With(h.requireOp(game.OpReveal)).Post("/round/reveal", h.Reveal)
			hr.With(h.requireOp(game.OpAwardPoints)).Post("/award", h.Award)
			hr.With(h.requireOp(game.OpKick)).Post("/kick", h.Kick)
			hr.With(h.requireOp(game.OpHostSnapshot)).Get("/state", h.HostState)
			hr.With(h.requireOp(game.OpRecap)).Get("/recap", h.Recap)
			hr.With(h.requireOp(game.OpHostSnapshot)).Get("/qr.png", h.ShareQR)
		})
	})

	// Health check endpoints (no auth required)
	r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
