package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts every endpoint under /api/v1.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware(h.logger))
	r.Use(RecoveryMiddleware(h.logger))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/themes", h.ListThemes)

		r.Get("/dashboards", h.ListDashboards)
		r.Post("/dashboards", h.CreateDashboard)

		r.Route("/dashboards/{dashboard}", func(r chi.Router) {
			r.Use(h.dashboardCtx)
			r.Get("/", h.GetDashboard)
			r.Delete("/", h.DeleteDashboard)

			r.Get("/activities", h.ListActivities)
			r.Post("/activities", h.CreateActivity)
			r.Put("/activities/{activity}", h.UpdateActivity)
			r.Delete("/activities/{activity}", h.DeleteActivity)

			r.Get("/taxonomies/{kind}", h.GetTaxonomy)
			r.Post("/taxonomies/{kind}", h.AddTaxonomyEntry)

			r.Get("/report", h.Report)
			r.Get("/heatmap", h.Heatmap)
			r.Get("/badges", h.Badges)
			r.Get("/analysis", h.Analysis)
		})
	})

	return r
}
