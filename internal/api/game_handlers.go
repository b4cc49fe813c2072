package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/gameshelf/internal/errors"
	"github.com/vytor/gameshelf/internal/logger"
	"github.com/vytor/gameshelf/internal/models"
)

var perPageOptions = map[int]bool{10: true, 25: true, 50: true, 100: true}

type gameListResponse struct {
	Games      []models.Game `json:"games"`
	Page       int           `json:"page"`
	PerPage    int           `json:"per_page"`
	TotalCount int           `json:"total_count"`
	TotalPages int           `json:"total_pages"`
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	log := logger.FromContext(r.Context())

	page, err := intParam(r, "page", 1)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if page < 1 {
		page = 1
	}
	perPage, err := intParam(r, "per_page", 25)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if !perPageOptions[perPage] {
		perPage = 25
	}

	orderDir := strings.ToUpper(q.Get("order_dir"))
	if orderDir != "ASC" && orderDir != "DESC" {
		orderDir = "ASC"
	}

	filter := models.GameFilter{
		UserID:   userFromContext(r.Context()),
		Status:   models.GameStatus(q.Get("status")),
		Platform: q.Get("platform"),
		Genre:    q.Get("genre"),
		Search:   strings.TrimSpace(q.Get("q")),
		Limit:    perPage,
		Offset:   (page - 1) * perPage,
		OrderBy:  q.Get("order_by"),
		OrderDir: orderDir,
	}

	games, totalCount, err := s.GameService.ListGames(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}

	totalPages := totalCount / perPage
	if totalCount%perPage != 0 {
		totalPages++
	}
	if totalPages == 0 {
		totalPages = 1
	}

	log.Debug("found %d games", len(games))
	writeJSON(w, r, http.StatusOK, gameListResponse{
		Games:      games,
		Page:       page,
		PerPage:    perPage,
		TotalCount: totalCount,
		TotalPages: totalPages,
	})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, err := s.GameService.GetGame(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, game)
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var in models.GameInput
	if err := decodeJSON(w, r, &in); err != nil {
		handleError(w, r, err)
		return
	}
	game, err := s.GameService.CreateGame(r.Context(), userFromContext(r.Context()), in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/games/"+game.ID)
	writeJSON(w, r, http.StatusCreated, game)
}

func (s *Server) handleUpdateGame(w http.ResponseWriter, r *http.Request) {
	var in models.GameInput
	if err := decodeJSON(w, r, &in); err != nil {
		handleError(w, r, err)
		return
	}
	game, err := s.GameService.UpdateGame(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "id"), in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, game)
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := s.GameService.DeleteGame(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddSession(w http.ResponseWriter, r *http.Request) {
	var in models.SessionInput
	if err := decodeJSON(w, r, &in); err != nil {
		handleError(w, r, err)
		return
	}
	entry, err := s.GameService.AddSession(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "id"), in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, entry)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		handleError(w, r, errors.NewBadRequestError("session id is required"))
		return
	}
	if err := s.GameService.DeleteSession(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "id"), sessionID); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
