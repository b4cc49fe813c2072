package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/gameshelf/internal/logger"
	"github.com/vytor/gameshelf/internal/metrics"
	"github.com/vytor/gameshelf/internal/models"
	"github.com/vytor/gameshelf/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

var gameColumns = []string{
	"id", "user_id", "name", "platform", "genre", "franchise", "thumbnail",
	"price", "original_price", "acquired_free", "purchase_source", "subscription_source",
	"status", "date_purchased", "start_date", "end_date", "hours", "rating", "review",
	"created_at", "updated_at",
}

// orderColumns whitelists sortable columns for List.
var orderColumns = map[string]string{
	"name":           "name COLLATE NOCASE",
	"date_purchased": "date_purchased",
	"hours":          "hours",
	"rating":         "rating",
	"price":          "price",
	"created_at":     "created_at",
}

const defaultListLimit = 200

type gameRepository struct {
	db *sql.DB
}

// NewGameRepository creates a new GameRepository implementation
func NewGameRepository(db *sql.DB) repository.GameRepository {
	return &gameRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (models.Game, error) {
	var g models.Game
	var original sql.NullFloat64
	var status string
	err := row.Scan(&g.ID, &g.UserID, &g.Name, &g.Platform, &g.Genre, &g.Franchise, &g.Thumbnail,
		&g.Price, &original, &g.AcquiredFree, &g.PurchaseSource, &g.SubscriptionSource,
		&status, &g.DatePurchased, &g.StartDate, &g.EndDate, &g.Hours, &g.Rating, &g.Review,
		&g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return g, err
	}
	g.Status = models.GameStatus(status)
	if original.Valid {
		v := original.Float64
		g.OriginalPrice = &v
	}
	g.PlayLogs = []models.PlayLog{}
	return g, nil
}

func gameValues(g models.Game) []any {
	var original any
	if g.OriginalPrice != nil {
		original = *g.OriginalPrice
	}
	return []any{g.ID, g.UserID, g.Name, g.Platform, g.Genre, g.Franchise, g.Thumbnail,
		g.Price, original, g.AcquiredFree, g.PurchaseSource, g.SubscriptionSource,
		string(g.Status), g.DatePurchased, g.StartDate, g.EndDate, g.Hours, g.Rating, g.Review,
		g.CreatedAt, g.UpdatedAt}
}

func (r *gameRepository) GetAll(ctx context.Context, userID string) ([]models.Game, error) {
	defer metrics.ObserveQuery("games_get_all", time.Now())
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("loading library: user_id=%s", userID)

	games, err := r.queryGames(ctx, sqlBuilder.Select(gameColumns...).From("games").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("name COLLATE NOCASE ASC", "id ASC"))
	if err != nil {
		log.Error("failed to load library: %v", err)
		return nil, err
	}
	if err := r.attachPlayLogs(ctx, games); err != nil {
		log.Error("failed to load play logs: %v", err)
		return nil, err
	}
	log.Debug("library loaded: %d games", len(games))
	return games, nil
}

func (r *gameRepository) Get(ctx context.Context, id string) (*models.Game, error) {
	defer metrics.ObserveQuery("games_get", time.Now())
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("getting game: id=%s", id)

	query, args, err := sqlBuilder.Select(gameColumns...).From("games").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	g, err := scanGame(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("game not found: id=%s", id)
		} else {
			log.Error("failed to get game: %v", err)
		}
		return nil, err
	}
	games := []models.Game{g}
	if err := r.attachPlayLogs(ctx, games); err != nil {
		log.Error("failed to load play logs: %v", err)
		return nil, err
	}
	return &games[0], nil
}

func applyFilter(q squirrel.SelectBuilder, filter models.GameFilter) squirrel.SelectBuilder {
	if filter.UserID != "" {
		q = q.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": string(filter.Status)})
	}
	if filter.Platform != "" {
		q = q.Where(squirrel.Eq{"platform": filter.Platform})
	}
	if filter.Genre != "" {
		q = q.Where("genre = ? COLLATE NOCASE", filter.Genre)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		q = q.Where(squirrel.Like{"name": "%" + s + "%"})
	}
	return q
}

func (r *gameRepository) List(ctx context.Context, filter models.GameFilter) ([]models.Game, error) {
	defer metrics.ObserveQuery("games_list", time.Now())
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("listing games with filter: user_id=%s, status=%s, platform=%s, genre=%s, search=%s",
		filter.UserID, filter.Status, filter.Platform, filter.Genre, filter.Search)

	query := applyFilter(sqlBuilder.Select(gameColumns...).From("games"), filter)

	orderBy, ok := orderColumns[filter.OrderBy]
	if !ok {
		orderBy = orderColumns["name"]
	}
	orderDir := "ASC"
	if strings.EqualFold(filter.OrderDir, "DESC") {
		orderDir = "DESC"
	}
	query = query.OrderBy(orderBy+" "+orderDir, "id ASC")

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	games, err := r.queryGames(ctx, query)
	if err != nil {
		log.Error("failed to list games: %v", err)
		return nil, err
	}
	if err := r.attachPlayLogs(ctx, games); err != nil {
		log.Error("failed to load play logs: %v", err)
		return nil, err
	}
	log.Debug("found %d games", len(games))
	return games, nil
}

func (r *gameRepository) Count(ctx context.Context, filter models.GameFilter) (int, error) {
	defer metrics.ObserveQuery("games_count", time.Now())
	query, args, err := applyFilter(sqlBuilder.Select("COUNT(*)").From("games"), filter).ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		logger.FromContext(ctx).WithPrefix("game_repo").Error("failed to count games: %v", err)
		return 0, err
	}
	return n, nil
}

func (r *gameRepository) queryGames(ctx context.Context, q squirrel.SelectBuilder) ([]models.Game, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := []models.Game{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// attachPlayLogs fills PlayLogs for every game in place with one query.
func (r *gameRepository) attachPlayLogs(ctx context.Context, games []models.Game) error {
	if len(games) == 0 {
		return nil
	}
	index := make(map[string]int, len(games))
	ids := make([]string, len(games))
	for i, g := range games {
		index[g.ID] = i
		ids[i] = g.ID
	}

	query, args, err := sqlBuilder.Select("game_id", "id", "date", "hours", "notes", "mood").
		From("play_logs").
		Where(squirrel.Eq{"game_id": ids}).
		OrderBy("date ASC", "id ASC").
		ToSql()
	if err != nil {
		return err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var gameID string
		var l models.PlayLog
		if err := rows.Scan(&gameID, &l.ID, &l.Date, &l.Hours, &l.Notes, &l.Mood); err != nil {
			return err
		}
		if i, ok := index[gameID]; ok {
			games[i].PlayLogs = append(games[i].PlayLogs, l)
		}
	}
	return rows.Err()
}

func insertGame(ctx context.Context, tx *sql.Tx, g models.Game) error {
	query, args, err := sqlBuilder.Insert("games").Columns(gameColumns...).Values(gameValues(g)...).ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	for _, l := range g.PlayLogs {
		if err := insertPlayLog(ctx, tx, g.ID, l); err != nil {
			return err
		}
	}
	return nil
}

func insertPlayLog(ctx context.Context, tx *sql.Tx, gameID string, l models.PlayLog) error {
	query, args, err := sqlBuilder.Insert("play_logs").
		Columns("id", "game_id", "date", "hours", "notes", "mood").
		Values(l.ID, gameID, l.Date, l.Hours, l.Notes, l.Mood).
		ToSql()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}

func (r *gameRepository) Create(ctx context.Context, game models.Game) error {
	defer metrics.ObserveQuery("games_create", time.Now())
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("creating game: id=%s, name=%s", game.ID, game.Name)

	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		return insertGame(ctx, tx, game)
	})
	if err != nil {
		log.Error("failed to create game: %v", err)
		return err
	}
	return nil
}

func (r *gameRepository) CreateBatch(ctx context.Context, games []models.Game) error {
	defer metrics.ObserveQuery("games_create_batch", time.Now())
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	if len(games) == 0 {
		return nil
	}
	log.Debug("creating %d games in batch", len(games))

	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		for _, g := range games {
			if err := insertGame(ctx, tx, g); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to create games: %v", err)
		return err
	}
	log.Info("created %d games", len(games))
	return nil
}

func (r *gameRepository) Update(ctx context.Context, game models.Game) error {
	defer metrics.ObserveQuery("games_update", time.Now())
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("updating game: id=%s", game.ID)

	values := gameValues(game)
	update := sqlBuilder.Update("games")
	// id and user_id are immutable; created_at is never rewritten.
	for i, col := range gameColumns {
		switch col {
		case "id", "user_id", "created_at":
			continue
		}
		update = update.Set(col, values[i])
	}
	query, args, err := update.Where(squirrel.Eq{"id": game.ID}).ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update game: %v", err)
		return err
	}
	return requireAffected(res)
}

func (r *gameRepository) Delete(ctx context.Context, id string) error {
	defer metrics.ObserveQuery("games_delete", time.Now())
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("deleting game: id=%s", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete game: %v", err)
		return err
	}
	return requireAffected(res)
}

func (r *gameRepository) AddPlayLog(ctx context.Context, gameID string, l models.PlayLog) error {
	defer metrics.ObserveQuery("play_logs_add", time.Now())
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("adding play log: game_id=%s, date=%s, hours=%.2f", gameID, l.Date, l.Hours)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		var exists int
		if err := tx.QueryRowContext(ctx, `SELECT 1 FROM games WHERE id = ?`, gameID).Scan(&exists); err != nil {
			return err
		}
		return insertPlayLog(ctx, tx, gameID, l)
	})
}

func (r *gameRepository) DeletePlayLog(ctx context.Context, gameID, logID string) error {
	defer metrics.ObserveQuery("play_logs_delete", time.Now())
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("deleting play log: game_id=%s, id=%s", gameID, logID)

	res, err := r.db.ExecContext(ctx, `DELETE FROM play_logs WHERE id = ? AND game_id = ?`, logID, gameID)
	if err != nil {
		log.Error("failed to delete play log: %v", err)
		return err
	}
	return requireAffected(res)
}
