package service

import (
	"context"
	"fmt"

	"github.com/openrec/dugout/internal/store"
	"github.com/openrec/dugout/internal/store/repository"
)

// GameService handles game schedule business logic
type GameService struct {
	gameRepo *repository.GameRepository
	teamRepo *repository.TeamRepository
}

// NewGameService creates a new game service
func NewGameService(db *store.Database) *GameService {
	return &GameService{
		gameRepo: repository.NewGameRepository(db),
		teamRepo: repository.NewTeamRepository(db),
	}
}

// GetGame retrieves a game by ID
func (s *GameService) GetGame(ctx context.Context, gameID int) (*store.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching game: %w", err)
	}
	return game, nil
}

// defaultScheduleLimit bounds schedule queries; a season runs well
// under this many games.
const defaultScheduleLimit = 100

// GetSchedule returns a team's games, optionally only upcoming ones
func (s *GameService) GetSchedule(ctx context.Context, teamID int, upcomingOnly bool, limit int) ([]*store.Game, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, fmt.Errorf("fetching team: %w", err)
	}
	if limit <= 0 || limit > defaultScheduleLimit {
		limit = defaultScheduleLimit
	}

	var games []*store.Game
	var err error
	if upcomingOnly {
		games, err = s.gameRepo.GetUpcomingByTeam(ctx, teamID, limit)
	} else {
		games, err = s.gameRepo.GetByTeam(ctx, teamID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching schedule: %w", err)
	}
	return games, nil
}

// AddGame adds a game to a team's schedule by hand, outside the
// league-site sync path
func (s *GameService) AddGame(ctx context.Context, game *store.Game) error {
	if game.Opponent == "" {
		return fmt.Errorf("opponent is required")
	}
	if game.GameDate.IsZero() {
		return fmt.Errorf("game date is required")
	}
	if _, err := s.teamRepo.GetByID(ctx, game.TeamID); err != nil {
		return fmt.Errorf("fetching team: %w", err)
	}

	if game.Status == "" {
		game.Status = store.GameScheduled
	}
	if err := s.gameRepo.Create(ctx, game); err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	return nil
}

// CleanupPastGames marks scheduled games whose date has passed as played
func (s *GameService) CleanupPastGames(ctx context.Context) (int64, error) {
	count, err := s.gameRepo.CleanupPastGames(ctx)
	if err != nil {
		return 0, fmt.Errorf("cleaning up past games: %w", err)
	}
	return count, nil
}
