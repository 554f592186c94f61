package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/openrec/dugout/internal/store"
)

// GameRepository handles game data access
type GameRepository struct {
	db *store.Database
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *store.Database) *GameRepository {
	return &GameRepository{db: db}
}

// GetByID finds a game by its database ID
func (r *GameRepository) GetByID(ctx context.Context, gameID int) (*store.Game, error) {
	query := `
		SELECT game_id, team_id, external_id, opponent, game_date, game_time,
			field, home_away, status, created_at, updated_at
		FROM games
		WHERE game_id = $1
	`

	game := &store.Game{}
	err := r.db.DB().QueryRowContext(ctx, query, gameID).Scan(
		&game.GameID, &game.TeamID, &game.ExternalID, &game.Opponent,
		&game.GameDate, &game.GameTime, &game.Field, &game.HomeAway,
		&game.Status, &game.CreatedAt, &game.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("game not found: %d", gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying game: %w", err)
	}

	return game, nil
}

// GetByTeam returns a team's games, most recent first
func (r *GameRepository) GetByTeam(ctx context.Context, teamID int, limit int) ([]*store.Game, error) {
	query := `
		SELECT game_id, team_id, external_id, opponent, game_date, game_time,
			field, home_away, status, created_at, updated_at
		FROM games
		WHERE team_id = $1
		ORDER BY game_date DESC
		LIMIT $2
	`

	rows, err := r.db.DB().QueryContext(ctx, query, teamID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying team games: %w", err)
	}
	defer rows.Close()

	return r.scanGames(rows)
}

// GetUpcomingByTeam returns a team's scheduled games from today forward
func (r *GameRepository) GetUpcomingByTeam(ctx context.Context, teamID int, limit int) ([]*store.Game, error) {
	today := time.Now().Truncate(24 * time.Hour)

	query := `
		SELECT game_id, team_id, external_id, opponent, game_date, game_time,
			field, home_away, status, created_at, updated_at
		FROM games
		WHERE team_id = $1 AND status = 'scheduled' AND game_date >= $2
		ORDER BY game_date, game_time
		LIMIT $3
	`

	rows, err := r.db.DB().QueryContext(ctx, query, teamID, today, limit)
	if err != nil {
		return nil, fmt.Errorf("querying upcoming games: %w", err)
	}
	defer rows.Close()

	return r.scanGames(rows)
}

// Create inserts a new game and populates its generated ID
func (r *GameRepository) Create(ctx context.Context, game *store.Game) error {
	query := `
		INSERT INTO games (team_id, external_id, opponent, game_date, game_time,
			field, home_away, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING game_id, created_at, updated_at
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		game.TeamID, game.ExternalID, game.Opponent, game.GameDate, game.GameTime,
		game.Field, game.HomeAway, game.Status,
	).Scan(&game.GameID, &game.CreatedAt, &game.UpdatedAt)

	if err != nil {
		return fmt.Errorf("inserting game: %w", err)
	}

	return nil
}

// Upsert inserts or updates a game keyed by (team_id, external_id).
// Used by the league schedule ingester.
func (r *GameRepository) Upsert(ctx context.Context, game *store.Game) error {
	query := `
		INSERT INTO games (team_id, external_id, opponent, game_date, game_time,
			field, home_away, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (team_id, external_id) DO UPDATE SET
			opponent = EXCLUDED.opponent,
			game_date = EXCLUDED.game_date,
			game_time = EXCLUDED.game_time,
			field = EXCLUDED.field,
			home_away = EXCLUDED.home_away,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING game_id
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		game.TeamID, game.ExternalID, game.Opponent, game.GameDate, game.GameTime,
		game.Field, game.HomeAway, game.Status,
	).Scan(&game.GameID)

	if err != nil {
		return fmt.Errorf("upserting game: %w", err)
	}

	return nil
}

// CleanupPastGames marks scheduled games whose date has passed as played.
// Games are never deleted so lineups stay reviewable after the fact.
func (r *GameRepository) CleanupPastGames(ctx context.Context) (int64, error) {
	today := time.Now().Truncate(24 * time.Hour)

	query := `
		UPDATE games
		SET status = $1, updated_at = NOW()
		WHERE status = $2
			AND game_date < $3
	`

	result, err := r.db.DB().ExecContext(ctx, query, store.GamePlayed, store.GameScheduled, today)
	if err != nil {
		return 0, fmt.Errorf("cleaning up past games: %w", err)
	}

	return result.RowsAffected()
}

// scanGames scans multiple game rows
func (r *GameRepository) scanGames(rows *sql.Rows) ([]*store.Game, error) {
	var games []*store.Game
	for rows.Next() {
		game := &store.Game{}
		err := rows.Scan(
			&game.GameID, &game.TeamID, &game.ExternalID, &game.Opponent,
			&game.GameDate, &game.GameTime, &game.Field, &game.HomeAway,
			&game.Status, &game.CreatedAt, &game.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		games = append(games, game)
	}

	return games, rows.Err()
}
