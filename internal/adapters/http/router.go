package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { writeSuccess(w, http.StatusOK, "ok", nil) })
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) { writeSuccess(w, http.StatusOK, "ready", nil) })
	r.Route("/v1", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/campaigns/plan", handler.createPlan)
		r.Route("/campaigns/{campaign_id}", func(r chi.Router) {
			r.Get("/", handler.getCampaign)
			r.Get("/estimate", handler.estimate)
			r.Post("/generate", handler.startGeneration)
			r.Post("/cancel", handler.cancelGeneration)
			r.Post("/assemble", handler.assemble)
			r.Route("/beats/{beat_order}", func(r chi.Router) {
				r.Get("/versions", handler.listVersions)
				r.Get("/archives", handler.listArchives)
				r.Post("/select", handler.selectVersion)
				r.Post("/restore", handler.restoreVersion)
				r.Post("/regenerate", handler.regenerate)
				r.Post("/script", handler.editScript)
				r.Put("/adjustments", handler.setAdjustments)
				r.Delete("/adjustments", handler.resetAdjustments)
				r.Post("/analyze", handler.analyzeClip)
			})
		})
	})
	return r
}
