package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/gameshelf/internal/errors"
)

// libraryInsight serves an insight that only needs the caller's library.
func libraryInsight[T any](fn func(ctx context.Context, userID string) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := fn(r.Context(), userFromContext(r.Context()))
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, out)
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	libraryInsight(s.InsightsService.Summary)(w, r)
}

func (s *Server) handleStreaks(w http.ResponseWriter, r *http.Request) {
	libraryInsight(s.InsightsService.Streaks)(w, r)
}

func (s *Server) handleMomentum(w http.ResponseWriter, r *http.Request) {
	libraryInsight(s.InsightsService.Momentum)(w, r)
}

func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	libraryInsight(s.InsightsService.Patterns)(w, r)
}

func (s *Server) handlePersonality(w http.ResponseWriter, r *http.Request) {
	libraryInsight(s.InsightsService.Personality)(w, r)
}

func (s *Server) handleRelationships(w http.ResponseWriter, r *http.Request) {
	libraryInsight(s.InsightsService.Relationships)(w, r)
}

func (s *Server) handleTrophies(w http.ResponseWriter, r *http.Request) {
	libraryInsight(s.InsightsService.Trophies)(w, r)
}

func (s *Server) handleDoomsday(w http.ResponseWriter, r *http.Request) {
	libraryInsight(s.InsightsService.Doomsday)(w, r)
}

func (s *Server) handleSpending(w http.ResponseWriter, r *http.Request) {
	libraryInsight(s.InsightsService.Spending)(w, r)
}

func (s *Server) handleDeals(w http.ResponseWriter, r *http.Request) {
	libraryInsight(s.EnrichmentService.Deals)(w, r)
}

func (s *Server) handleGameCard(w http.ResponseWriter, r *http.Request) {
	card, err := s.InsightsService.GameCard(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleCritics(w http.ResponseWriter, r *http.Request) {
	cmp, err := s.EnrichmentService.Critics(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, cmp)
}

// handlePeriod accepts either start and end dates or a trailing day count.
func (s *Server) handlePeriod(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := userFromContext(ctx)
	q := r.URL.Query()

	if q.Get("days") != "" {
		if q.Get("start") != "" || q.Get("end") != "" {
			handleError(w, r, errors.NewBadRequestError("use either days or start and end, not both"))
			return
		}
		days, err := intParam(r, "days", 0)
		if err != nil {
			handleError(w, r, err)
			return
		}
		stats, err := s.InsightsService.LastDays(ctx, userID, days)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, stats)
		return
	}

	if q.Get("start") == "" || q.Get("end") == "" {
		handleError(w, r, errors.NewBadRequestError("start and end are required"))
		return
	}
	stats, err := s.InsightsService.Period(ctx, userID, q.Get("start"), q.Get("end"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleWeek(w http.ResponseWriter, r *http.Request) {
	weeksAgo, err := intParam(r, "weeks_ago", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}
	out, err := s.InsightsService.Week(r.Context(), userFromContext(r.Context()), weeksAgo)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	monthsAgo, err := intParam(r, "months_ago", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}
	out, err := s.InsightsService.Month(r.Context(), userFromContext(r.Context()), monthsAgo)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		handleError(w, r, errors.NewValidationError("year", "must be an integer"))
		return
	}
	out, err := s.InsightsService.Year(r.Context(), userFromContext(r.Context()), year)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleNextUp(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", 5)
	if err != nil {
		handleError(w, r, err)
		return
	}
	out, err := s.InsightsService.NextUp(r.Context(), userFromContext(r.Context()), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}
