package api_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/gameshelf/internal/api"
	"github.com/vytor/gameshelf/internal/jobs"
	"github.com/vytor/gameshelf/internal/models"
	"github.com/vytor/gameshelf/internal/repository/sqlite"
	"github.com/vytor/gameshelf/internal/services"
	"github.com/vytor/gameshelf/internal/testutil"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type APISuite struct {
	suite.Suite
	server  *httptest.Server
	closeDB func()
}

func (s *APISuite) SetupTest() {
	db := testutil.NewTestDB(s.T())
	s.closeDB = func() { testutil.MustClose(s.T(), db) }

	now := func() time.Time { return time.Date(2024, time.June, 15, 18, 30, 0, 0, time.UTC) }
	repo := sqlite.NewGameRepository(db)
	srv := &api.Server{
		GameService:       services.NewGameService(repo, jobs.NoopQueue{}, now),
		InsightsService:   services.NewInsightsService(repo, now, time.UTC),
		EnrichmentService: services.NewEnrichmentService(repo, nil, nil, now),
		LibraryService:    services.NewLibraryService(repo, jobs.NoopQueue{}, now),
		DB:                pinger{},
		RequestTimeout:    5 * time.Second,
	}
	s.server = httptest.NewServer(srv.Routes())
}

func (s *APISuite) TearDownTest() {
	s.server.Close()
	s.closeDB()
}

func (s *APISuite) do(method, path, user string, body any) *http.Response {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, s.server.URL+path, reader)
	s.Require().NoError(err)
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	s.T().Cleanup(func() { resp.Body.Close() })
	return resp
}

func (s *APISuite) decode(resp *http.Response, dst any) {
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(dst))
}

func (s *APISuite) errorCode(resp *http.Response) string {
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	s.decode(resp, &body)
	return body.Error.Code
}

func (s *APISuite) createGame(user string, in models.GameInput) models.Game {
	resp := s.do(http.MethodPost, "/api/games", user, in)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var game models.Game
	s.decode(resp, &game)
	return game
}

func (s *APISuite) TestHealthAndReady() {
	resp := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("nosniff", resp.Header.Get("X-Content-Type-Options"))
	s.NotEmpty(resp.Header.Get("X-Request-ID"))

	resp = s.do(http.MethodGet, "/ready", "", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *APISuite) TestMetricsEndpoint() {
	s.do(http.MethodGet, "/health", "", nil)
	resp := s.do(http.MethodGet, "/metrics", "", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Contains(string(body), "gameshelf_http_requests_total")
}

func (s *APISuite) TestRequiresUser() {
	resp := s.do(http.MethodGet, "/api/games", "", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal("UNAUTHORIZED", s.errorCode(resp))
}

func (s *APISuite) TestGameLifecycle() {
	game := s.createGame("alice", models.GameInput{
		Name: "Hades", Platform: "PC", Genre: "Roguelike", Price: 25, Status: models.StatusNotStarted,
		DatePurchased: "2024-05-01",
	})
	s.NotEmpty(game.ID)
	s.Equal("alice", game.UserID)

	resp := s.do(http.MethodPost, "/api/games/"+game.ID+"/sessions", "alice", models.SessionInput{Date: "2024-06-14", Hours: 2})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var entry models.PlayLog
	s.decode(resp, &entry)

	resp = s.do(http.MethodGet, "/api/games/"+game.ID, "alice", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var got models.Game
	s.decode(resp, &got)
	s.Equal(models.StatusInProgress, got.Status)
	s.Require().Len(got.PlayLogs, 1)

	resp = s.do(http.MethodGet, "/api/games/"+game.ID, "bob", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	update := models.InputOf(got)
	update.Status = models.StatusCompleted
	update.EndDate = "2024-06-15"
	update.Rating = 9
	resp = s.do(http.MethodPut, "/api/games/"+game.ID, "alice", update)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	resp = s.do(http.MethodDelete, "/api/games/"+game.ID+"/sessions/"+entry.ID, "alice", nil)
	s.Equal(http.StatusNoContent, resp.StatusCode)
	resp = s.do(http.MethodDelete, "/api/games/"+game.ID+"/sessions/"+entry.ID, "alice", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	resp = s.do(http.MethodDelete, "/api/games/"+game.ID, "alice", nil)
	s.Equal(http.StatusNoContent, resp.StatusCode)
	resp = s.do(http.MethodGet, "/api/games/"+game.ID, "alice", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *APISuite) TestCreateGame_BadInput() {
	resp := s.do(http.MethodPost, "/api/games", "alice", `{"name": "X", "status": "Not Started", "colour": "red"}`)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("BAD_REQUEST", s.errorCode(resp))

	resp = s.do(http.MethodPost, "/api/games", "alice", models.GameInput{Name: "X", Status: "Someday"})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("VALIDATION_ERROR", s.errorCode(resp))
}

func (s *APISuite) TestListGames() {
	s.createGame("alice", models.GameInput{Name: "Celeste", Status: models.StatusCompleted, Platform: "Switch"})
	s.createGame("alice", models.GameInput{Name: "Hades", Status: models.StatusInProgress, Platform: "PC"})
	s.createGame("alice", models.GameInput{Name: "Silksong", Status: models.StatusWishlist, Platform: "PC"})
	s.createGame("bob", models.GameInput{Name: "Tetris", Status: models.StatusCompleted})

	resp := s.do(http.MethodGet, "/api/games?platform=PC&order_by=name&order_dir=desc", "alice", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var list struct {
		Games      []models.Game `json:"games"`
		TotalCount int           `json:"total_count"`
		TotalPages int           `json:"total_pages"`
	}
	s.decode(resp, &list)
	s.Equal(2, list.TotalCount)
	s.Equal(1, list.TotalPages)
	s.Require().Len(list.Games, 2)
	s.Equal("Silksong", list.Games[0].Name)

	resp = s.do(http.MethodGet, "/api/games?status=Bogus", "alice", nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *APISuite) TestInsights() {
	s.createGame("alice", models.GameInput{
		Name: "Hades", Status: models.StatusCompleted, Price: 25, Hours: 40, Rating: 9,
		DatePurchased: "2024-01-10", StartDate: "2024-01-10", EndDate: "2024-03-01",
	})
	s.createGame("alice", models.GameInput{Name: "Starfield", Status: models.StatusNotStarted, Price: 70, DatePurchased: "2024-04-01"})

	resp := s.do(http.MethodGet, "/api/insights/summary", "alice", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var sum models.AnalyticsSummary
	s.decode(resp, &sum)
	s.Equal(2, sum.TotalGames)
	s.Equal(95.0, sum.TotalSpent)

	for _, path := range []string{
		"/api/insights/period?days=30",
		"/api/insights/period?start=2024-01-01&end=2024-06-30",
		"/api/insights/week?weeks_ago=1",
		"/api/insights/month",
		"/api/insights/year/2024",
		"/api/insights/streaks",
		"/api/insights/momentum",
		"/api/insights/patterns",
		"/api/insights/personality",
		"/api/insights/relationships",
		"/api/insights/trophies",
		"/api/insights/next-up?limit=3",
		"/api/insights/doomsday",
		"/api/insights/spending",
	} {
		resp := s.do(http.MethodGet, path, "alice", nil)
		s.Equal(http.StatusOK, resp.StatusCode, path)
	}

	for path, status := range map[string]int{
		"/api/insights/period":                        http.StatusBadRequest,
		"/api/insights/period?days=7&start=2024-01-01": http.StatusBadRequest,
		"/api/insights/period?days=abc":                http.StatusBadRequest,
		"/api/insights/year/nineteen":                  http.StatusBadRequest,
		"/api/insights/next-up?limit=99":               http.StatusBadRequest,
		"/api/insights/games/missing":                  http.StatusNotFound,
		"/api/insights/deals":                          http.StatusServiceUnavailable,
	} {
		resp := s.do(http.MethodGet, path, "alice", nil)
		s.Equal(status, resp.StatusCode, path)
	}
}

func (s *APISuite) TestGameCard() {
	game := s.createGame("alice", models.GameInput{Name: "Celeste", Status: models.StatusInProgress, Price: 20, Hours: 3, StartDate: "2024-06-01"})

	resp := s.do(http.MethodGet, "/api/insights/games/"+game.ID, "alice", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var card models.GameCard
	s.decode(resp, &card)
	s.Equal("Celeste", card.Game.Name)
	s.NotNil(card.Finish)
	s.NotEmpty(card.Rarity.Tier)

	resp = s.do(http.MethodGet, "/api/insights/games/"+game.ID+"/critics", "alice", nil)
	s.Equal(http.StatusServiceUnavailable, resp.StatusCode)
}

func (s *APISuite) TestLibraryRoundTrip() {
	s.createGame("alice", models.GameInput{Name: "Hades", Status: models.StatusCompleted, Platform: "PC"})

	resp := s.do(http.MethodGet, "/api/library/export", "alice", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal("application/yaml", resp.Header.Get("Content-Type"))
	doc, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Contains(string(doc), "name: Hades")

	resp = s.do(http.MethodPost, "/api/library/import", "bob", string(doc))
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var res services.ImportResult
	s.decode(resp, &res)
	s.Equal(1, res.Imported)

	resp = s.do(http.MethodPost, "/api/library/import", "bob", "version: 1\ngames:\n  - nmae: typo\n")
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func TestReadyReportsDatabaseFailure(t *testing.T) {
	srv := &api.Server{DB: pinger{err: errors.New("database is locked")}}
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unavailable", body["status"])
}

func TestRecoveryMiddlewareReturnsJSON(t *testing.T) {
	srv := &api.Server{InsightsService: nil}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/insights/summary", nil)
	req.Header.Set("X-User-ID", "alice")
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}
