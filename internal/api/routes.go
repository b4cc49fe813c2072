package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(metricsMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		if s.RequestTimeout > 0 {
			r.Use(timeoutMiddleware(s.RequestTimeout))
		}
		r.Use(userMiddleware)

		r.Route("/games", func(r chi.Router) {
			r.Get("/", s.handleListGames)
			r.Post("/", s.handleCreateGame)
			r.Get("/{id}", s.handleGetGame)
			r.Put("/{id}", s.handleUpdateGame)
			r.Delete("/{id}", s.handleDeleteGame)
			r.Post("/{id}/sessions", s.handleAddSession)
			r.Delete("/{id}/sessions/{sessionID}", s.handleDeleteSession)
		})

		r.Route("/insights", func(r chi.Router) {
			r.Get("/summary", s.handleSummary)
			r.Get("/games/{id}", s.handleGameCard)
			r.Get("/games/{id}/critics", s.handleCritics)
			r.Get("/period", s.handlePeriod)
			r.Get("/week", s.handleWeek)
			r.Get("/month", s.handleMonth)
			r.Get("/year/{year}", s.handleYear)
			r.Get("/streaks", s.handleStreaks)
			r.Get("/momentum", s.handleMomentum)
			r.Get("/patterns", s.handlePatterns)
			r.Get("/personality", s.handlePersonality)
			r.Get("/relationships", s.handleRelationships)
			r.Get("/trophies", s.handleTrophies)
			r.Get("/next-up", s.handleNextUp)
			r.Get("/doomsday", s.handleDoomsday)
			r.Get("/spending", s.handleSpending)
			r.Get("/deals", s.handleDeals)
		})

		r.Post("/library/import", s.handleImportLibrary)
		r.Get("/library/export", s.handleExportLibrary)
	})
	return r
}
