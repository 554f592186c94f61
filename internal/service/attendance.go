package service

import (
	"context"
	"fmt"

	"github.com/openrec/dugout/internal/store"
	"github.com/openrec/dugout/internal/store/repository"
)

// AttendanceService handles game RSVP business logic
type AttendanceService struct {
	attendanceRepo *repository.AttendanceRepository
	gameRepo       *repository.GameRepository
	playerRepo     *repository.PlayerRepository
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(db *store.Database) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: repository.NewAttendanceRepository(db),
		gameRepo:       repository.NewGameRepository(db),
		playerRepo:     repository.NewPlayerRepository(db),
	}
}

// GetAttendance returns all RSVPs recorded for a game
func (s *AttendanceService) GetAttendance(ctx context.Context, gameID int) ([]*store.AttendanceRecord, error) {
	if _, err := s.gameRepo.GetByID(ctx, gameID); err != nil {
		return nil, fmt.Errorf("fetching game: %w", err)
	}

	records, err := s.attendanceRepo.GetByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching attendance: %w", err)
	}
	return records, nil
}

// SetStatus records a player's RSVP for a game. The player must be on
// the roster of the team the game belongs to.
func (s *AttendanceService) SetStatus(ctx context.Context, gameID, playerID int, status string) error {
	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return fmt.Errorf("fetching game: %w", err)
	}
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return fmt.Errorf("fetching player: %w", err)
	}
	if player.TeamID != game.TeamID {
		return fmt.Errorf("player %d is not on team %d", playerID, game.TeamID)
	}

	if err := s.attendanceRepo.SetStatus(ctx, gameID, playerID, status); err != nil {
		return fmt.Errorf("saving rsvp: %w", err)
	}
	return nil
}
