package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/openrec/dugout/internal/store"
)

// PlayerRepository handles player data access
type PlayerRepository struct {
	db *store.Database
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *store.Database) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// GetByID finds a player by ID, including position preferences
func (r *PlayerRepository) GetByID(ctx context.Context, playerID int) (*store.Player, error) {
	query := `
		SELECT player_id, team_id, full_name, email, gender, is_pitcher,
			is_admin, is_active, created_at, updated_at
		FROM players
		WHERE player_id = $1
	`

	player := &store.Player{}
	err := r.db.DB().QueryRowContext(ctx, query, playerID).Scan(
		&player.PlayerID, &player.TeamID, &player.FullName, &player.Email,
		&player.Gender, &player.IsPitcher, &player.IsAdmin, &player.IsActive,
		&player.CreatedAt, &player.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player not found: %d", playerID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying player: %w", err)
	}

	prefs, err := r.getPreferences(ctx, []int{player.PlayerID})
	if err != nil {
		return nil, err
	}
	player.Preferences = prefs[player.PlayerID]

	return player, nil
}

// GetByTeam returns the full roster for a team, including position preferences
func (r *PlayerRepository) GetByTeam(ctx context.Context, teamID int) ([]*store.Player, error) {
	query := `
		SELECT player_id, team_id, full_name, email, gender, is_pitcher,
			is_admin, is_active, created_at, updated_at
		FROM players
		WHERE team_id = $1
		ORDER BY full_name
	`

	rows, err := r.db.DB().QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("querying roster: %w", err)
	}
	defer rows.Close()

	players, err := r.scanPlayers(rows)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.PlayerID)
	}

	prefs, err := r.getPreferences(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range players {
		p.Preferences = prefs[p.PlayerID]
	}

	return players, nil
}

// Create inserts a new player and populates its generated ID
func (r *PlayerRepository) Create(ctx context.Context, player *store.Player) error {
	query := `
		INSERT INTO players (team_id, full_name, email, gender, is_pitcher, is_admin, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, true)
		RETURNING player_id, created_at, updated_at
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		player.TeamID, player.FullName, player.Email, player.Gender,
		player.IsPitcher, player.IsAdmin,
	).Scan(&player.PlayerID, &player.CreatedAt, &player.UpdatedAt)

	if err != nil {
		return fmt.Errorf("inserting player: %w", err)
	}

	return nil
}

// SetPreferences replaces a player's ranked position preferences
func (r *PlayerRepository) SetPreferences(ctx context.Context, playerID int, prefs []store.PositionPreference) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning preferences tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM position_preferences WHERE player_id = $1`, playerID); err != nil {
		return fmt.Errorf("deleting preferences: %w", err)
	}

	for _, pref := range prefs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO position_preferences (player_id, position, rank)
			VALUES ($1, $2, $3)
		`, playerID, pref.Position, pref.Rank)
		if err != nil {
			return fmt.Errorf("inserting preference: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing preferences: %w", err)
	}

	return nil
}

// Deactivate marks a player inactive without deleting history
func (r *PlayerRepository) Deactivate(ctx context.Context, playerID int) error {
	result, err := r.db.DB().ExecContext(ctx, `
		UPDATE players
		SET is_active = false, updated_at = NOW()
		WHERE player_id = $1
	`, playerID)
	if err != nil {
		return fmt.Errorf("deactivating player: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("player not found: %d", playerID)
	}

	return nil
}

// getPreferences loads preferences for a set of players, keyed by player ID
func (r *PlayerRepository) getPreferences(ctx context.Context, playerIDs []int) (map[int][]store.PositionPreference, error) {
	prefs := make(map[int][]store.PositionPreference, len(playerIDs))
	if len(playerIDs) == 0 {
		return prefs, nil
	}

	query := `
		SELECT player_id, position, rank
		FROM position_preferences
		WHERE player_id = ANY($1)
		ORDER BY player_id, rank
	`

	rows, err := r.db.DB().QueryContext(ctx, query, intArray(playerIDs))
	if err != nil {
		return nil, fmt.Errorf("querying preferences: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pref store.PositionPreference
		if err := rows.Scan(&pref.PlayerID, &pref.Position, &pref.Rank); err != nil {
			return nil, fmt.Errorf("scanning preference: %w", err)
		}
		prefs[pref.PlayerID] = append(prefs[pref.PlayerID], pref)
	}

	return prefs, rows.Err()
}

// intArray converts ids for use with = ANY($1)
func intArray(ids []int) pq.Int64Array {
	arr := make(pq.Int64Array, len(ids))
	for i, id := range ids {
		arr[i] = int64(id)
	}
	return arr
}

// scanPlayers scans multiple player rows
func (r *PlayerRepository) scanPlayers(rows *sql.Rows) ([]*store.Player, error) {
	var players []*store.Player
	for rows.Next() {
		player := &store.Player{}
		err := rows.Scan(
			&player.PlayerID, &player.TeamID, &player.FullName, &player.Email,
			&player.Gender, &player.IsPitcher, &player.IsAdmin, &player.IsActive,
			&player.CreatedAt, &player.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning player: %w", err)
		}
		players = append(players, player)
	}

	return players, rows.Err()
}
