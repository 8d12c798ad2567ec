package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/journey-mate/journeymate/frontend/internal/authform"
	"github.com/journey-mate/journeymate/frontend/internal/handler"
	"github.com/journey-mate/journeymate/frontend/internal/middleware"
	"github.com/journey-mate/journeymate/frontend/internal/setup"
	mw "github.com/journey-mate/journeymate/shared/middleware"
	"github.com/journey-mate/journeymate/shared/middleware/metrics"
)

// pages are server rendered with no inline scripts
const frontendCSP = "default-src 'self'; script-src 'self'; style-src 'self'; img-src 'self' data:; frame-ancestors 'none'; form-action 'self'"

func SetupRouter(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()
	h := deps.Handler
	pub := deps.Public
	secure := pub.Cookies.Secure

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(mw.SecurityHeaders(secure, frontendCSP))
	r.Use(middleware.FormSession(secure))

	r.Get("/healthz", handler.HealthHandler)
	r.Handle("/metrics", promhttp.Handler())

	limitSubmissions := mw.RateLimit(deps.Limiter, mw.ClientIP)

	// JSON submit endpoint for script-driven pages, guarded by CORS instead of the form token
	r.Route("/api", func(api chi.Router) {
		// an empty origin list means same-origin only; cors.Handler would read it as "*"
		if len(pub.Cors.AllowedOrigins) > 0 {
			api.Use(cors.Handler(cors.Options{
				AllowedOrigins:   pub.Cors.AllowedOrigins,
				AllowedMethods:   []string{http.MethodPost, http.MethodOptions},
				AllowedHeaders:   []string{"Content-Type"},
				AllowCredentials: true,
				MaxAge:           300,
			}))
		}
		api.With(limitSubmissions).Post("/auth/submit", h.AuthAPIHandler)
	})

	r.Group(func(pages chi.Router) {
		pages.Use(middleware.CSRF(secure))

		pages.Get(pub.Routes.Entry, h.IndexGetHandler)
		pages.Get("/auth", h.AuthGetHandler)
		pages.With(limitSubmissions).Post("/auth", h.AuthPostHandler)
		pages.Post("/logout", h.LogoutHandler)

		pages.Group(func(signedIn chi.Router) {
			signedIn.Use(middleware.NeedToken(authform.TokenKey, secure))
			signedIn.Get(pub.Routes.Default, h.BookingsGetHandler)
			signedIn.Get(pub.Routes.Admin, h.AdminGetHandler)
		})
	})

	return r
}
