package repository

import (
	"context"
	"fmt"

	"github.com/openrec/dugout/internal/store"
)

// AttendanceRepository handles attendance data access
type AttendanceRepository struct {
	db *store.Database
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *store.Database) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// GetByGame returns all attendance records for a game
func (r *AttendanceRepository) GetByGame(ctx context.Context, gameID int) ([]*store.AttendanceRecord, error) {
	query := `
		SELECT game_id, player_id, status, updated_at
		FROM attendance
		WHERE game_id = $1
		ORDER BY player_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying attendance: %w", err)
	}
	defer rows.Close()

	var records []*store.AttendanceRecord
	for rows.Next() {
		rec := &store.AttendanceRecord{}
		if err := rows.Scan(&rec.GameID, &rec.PlayerID, &rec.Status, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning attendance: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// SetStatus upserts one player's RSVP for a game
func (r *AttendanceRepository) SetStatus(ctx context.Context, gameID, playerID int, status string) error {
	switch status {
	case store.AttendanceGoing, store.AttendanceMaybe, store.AttendanceNotGoing:
	default:
		return fmt.Errorf("invalid attendance status: %q", status)
	}

	query := `
		INSERT INTO attendance (game_id, player_id, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (game_id, player_id) DO UPDATE SET
			status = EXCLUDED.status,
			updated_at = NOW()
	`

	if _, err := r.db.DB().ExecContext(ctx, query, gameID, playerID, status); err != nil {
		return fmt.Errorf("upserting attendance: %w", err)
	}

	return nil
}
