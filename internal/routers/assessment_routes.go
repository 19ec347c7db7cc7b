package routers

import (
	"github.com/go-chi/chi/v5"

	"talentgate/assess/internal/handlers"
	"talentgate/assess/internal/middleware"
	"talentgate/assess/internal/models"
)

func AssessmentRoutes(router *chi.Mux, assessmentHandler *handlers.AssessmentHandler) {
	router.Route("/api/v1/assessments", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.GenerateAssessmentRequest]()).
			Post("/generate", assessmentHandler.GenerateHandler)
		r.With(middleware.ValidateRequest[*models.EvaluateAssessmentRequest]()).
			Post("/{id}/evaluate", assessmentHandler.EvaluateHandler)
		r.Get("/stats", assessmentHandler.StatsHandler)
	})
}
