package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/openrec/dugout/internal/store"
)

// LineupRepository handles batting order and fielding lineup persistence.
// Regeneration is always a full replace: prior rows for the scope are deleted
// and the new set inserted inside one transaction, never merged.
type LineupRepository struct {
	db *store.Database
}

// NewLineupRepository creates a new lineup repository
func NewLineupRepository(db *store.Database) *LineupRepository {
	return &LineupRepository{db: db}
}

// GetBattingOrder returns a game's batting order, in batting position order
func (r *LineupRepository) GetBattingOrder(ctx context.Context, gameID int) ([]*store.BattingSlot, error) {
	query := `
		SELECT slot_id, game_id, player_id, batting_position, generated, created_at
		FROM batting_slots
		WHERE game_id = $1
		ORDER BY batting_position
	`

	rows, err := r.db.DB().QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying batting order: %w", err)
	}
	defer rows.Close()

	var slots []*store.BattingSlot
	for rows.Next() {
		slot := &store.BattingSlot{}
		err := rows.Scan(&slot.SlotID, &slot.GameID, &slot.PlayerID,
			&slot.BattingPosition, &slot.Generated, &slot.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning batting slot: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, rows.Err()
}

// ReplaceBattingOrder deletes the game's existing batting order and inserts the new one
func (r *LineupRepository) ReplaceBattingOrder(ctx context.Context, gameID int, slots []*store.BattingSlot) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning batting order tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM batting_slots WHERE game_id = $1`, gameID); err != nil {
		return fmt.Errorf("deleting batting order: %w", err)
	}

	if err := insertBattingSlots(ctx, tx, gameID, slots); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batting order: %w", err)
	}

	return nil
}

// GetFieldingLineup returns all fielding assignments for a game, ordered by inning
func (r *LineupRepository) GetFieldingLineup(ctx context.Context, gameID int) ([]*store.FieldingAssignment, error) {
	query := `
		SELECT assignment_id, game_id, inning, position, player_id, generated, created_at
		FROM fielding_assignments
		WHERE game_id = $1
		ORDER BY inning, position
	`

	rows, err := r.db.DB().QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying fielding lineup: %w", err)
	}
	defer rows.Close()

	var assignments []*store.FieldingAssignment
	for rows.Next() {
		a := &store.FieldingAssignment{}
		err := rows.Scan(&a.AssignmentID, &a.GameID, &a.Inning, &a.Position,
			&a.PlayerID, &a.Generated, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning fielding assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	return assignments, rows.Err()
}

// ReplaceFieldingLineup deletes every fielding assignment for the game and
// inserts the new complete plan
func (r *LineupRepository) ReplaceFieldingLineup(ctx context.Context, gameID int, assignments []*store.FieldingAssignment) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning fielding lineup tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM fielding_assignments WHERE game_id = $1`, gameID); err != nil {
		return fmt.Errorf("deleting fielding lineup: %w", err)
	}

	if err := insertFieldingAssignments(ctx, tx, gameID, assignments); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing fielding lineup: %w", err)
	}

	return nil
}

// ReplaceFieldingInning replaces assignments for a single inning only
func (r *LineupRepository) ReplaceFieldingInning(ctx context.Context, gameID, inning int, assignments []*store.FieldingAssignment) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning fielding inning tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM fielding_assignments WHERE game_id = $1 AND inning = $2`, gameID, inning); err != nil {
		return fmt.Errorf("deleting fielding inning: %w", err)
	}

	if err := insertFieldingAssignments(ctx, tx, gameID, assignments); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing fielding inning: %w", err)
	}

	return nil
}

func insertBattingSlots(ctx context.Context, tx *sql.Tx, gameID int, slots []*store.BattingSlot) error {
	for _, slot := range slots {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO batting_slots (game_id, player_id, batting_position, generated)
			VALUES ($1, $2, $3, $4)
		`, gameID, slot.PlayerID, slot.BattingPosition, slot.Generated)
		if err != nil {
			return fmt.Errorf("inserting batting slot %d: %w", slot.BattingPosition, err)
		}
	}
	return nil
}

func insertFieldingAssignments(ctx context.Context, tx *sql.Tx, gameID int, assignments []*store.FieldingAssignment) error {
	for _, a := range assignments {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO fielding_assignments (game_id, inning, position, player_id, generated)
			VALUES ($1, $2, $3, $4, $5)
		`, gameID, a.Inning, a.Position, a.PlayerID, a.Generated)
		if err != nil {
			return fmt.Errorf("inserting assignment %s inning %d: %w", a.Position, a.Inning, err)
		}
	}
	return nil
}
