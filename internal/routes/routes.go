package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veloura/atelier/internal/auth"
	"github.com/veloura/atelier/internal/handlers"
	"github.com/veloura/atelier/internal/middleware"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	authHandler *handlers.AuthHandler,
	contentHandler *handlers.ContentHandler,
	sessions auth.SessionStore,
	guardConfig auth.GuardConfig,
) {
	rateLimitConfig := middleware.DefaultAuthRateLimit()

	// Login gate - public, throttled per IP in front of the lockout limiter
	router.With(middleware.RateLimitByIP(rateLimitConfig)).Post("/api/auth/login", authHandler.Login)
	router.Delete("/api/auth/login", authHandler.Logout)

	// Public content reads for the marketing pages
	router.Get("/api/content/gallery", contentHandler.ListGallery)
	router.Get("/api/content/pricing", contentHandler.ListPricing)
	router.Get("/api/content/experiences", contentHandler.ListExperiences)
	router.Get("/api/content/blocks/{key}", contentHandler.GetBlock)

	// Admin dashboard pages - shape-only cookie pre-filter
	router.Group(func(r chi.Router) {
		r.Use(auth.PageGuard(guardConfig))

		r.Get("/admin/dashboard", serveDashboard)
		r.Get("/admin/dashboard/*", serveDashboard)
	})

	// Admin API - server-side session validation
	router.Group(func(r chi.Router) {
		r.Use(auth.RequireSession(sessions))

		r.Post("/api/admin/gallery", contentHandler.CreateGalleryImage)
		r.Put("/api/admin/gallery/{id}", contentHandler.UpdateGalleryImage)
		r.Delete("/api/admin/gallery/{id}", contentHandler.DeleteGalleryImage)

		r.Post("/api/admin/pricing", contentHandler.CreatePricingTier)
		r.Put("/api/admin/pricing/{id}", contentHandler.UpdatePricingTier)
		r.Delete("/api/admin/pricing/{id}", contentHandler.DeletePricingTier)

		r.Post("/api/admin/experiences", contentHandler.CreateExperience)
		r.Put("/api/admin/experiences/{id}", contentHandler.UpdateExperience)
		r.Delete("/api/admin/experiences/{id}", contentHandler.DeleteExperience)

		r.Put("/api/admin/blocks/{key}", contentHandler.SaveBlock)

		r.Post("/api/admin/media", contentHandler.UploadMedia)
		r.Delete("/api/admin/media/{key}", contentHandler.DeleteMedia)
	})
}

// serveDashboard hands the dashboard shell to the SPA bundle. The front-end
// fetches everything it renders through the session-validated admin API.
func serveDashboard(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, "web/dashboard.html")
}
