package service

import (
	"context"
	"fmt"

	"github.com/openrec/dugout/internal/lineup"
	"github.com/openrec/dugout/internal/store"
	"github.com/openrec/dugout/internal/store/repository"
)

// PlayerService handles player-related business logic
type PlayerService struct {
	playerRepo *repository.PlayerRepository
	teamRepo   *repository.TeamRepository
}

// NewPlayerService creates a new player service
func NewPlayerService(db *store.Database) *PlayerService {
	return &PlayerService{
		playerRepo: repository.NewPlayerRepository(db),
		teamRepo:   repository.NewTeamRepository(db),
	}
}

// GetPlayer retrieves a player by ID
func (s *PlayerService) GetPlayer(ctx context.Context, playerID int) (*store.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("fetching player: %w", err)
	}
	return player, nil
}

// AddPlayer adds a player to a team's roster
func (s *PlayerService) AddPlayer(ctx context.Context, player *store.Player) error {
	if player.FullName == "" {
		return fmt.Errorf("player name is required")
	}
	if player.Gender != string(lineup.GenderFemale) && player.Gender != string(lineup.GenderMale) {
		return fmt.Errorf("invalid gender %q", player.Gender)
	}
	if _, err := s.teamRepo.GetByID(ctx, player.TeamID); err != nil {
		return fmt.Errorf("fetching team: %w", err)
	}

	if err := s.playerRepo.Create(ctx, player); err != nil {
		return fmt.Errorf("creating player: %w", err)
	}
	return nil
}

// SetPreferences replaces a player's ranked position preferences.
// Ranks must be contiguous from 1 and every position must be on the
// standard fielding chart.
func (s *PlayerService) SetPreferences(ctx context.Context, playerID int, prefs []store.PositionPreference) error {
	if _, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		return fmt.Errorf("fetching player: %w", err)
	}

	seen := make(map[string]bool, len(prefs))
	for i := range prefs {
		if prefs[i].Rank != i+1 {
			return fmt.Errorf("preference ranks must be contiguous from 1, got %d at index %d", prefs[i].Rank, i)
		}
		if !validPosition(prefs[i].Position) {
			return fmt.Errorf("unknown position %q", prefs[i].Position)
		}
		if seen[prefs[i].Position] {
			return fmt.Errorf("duplicate position %q", prefs[i].Position)
		}
		seen[prefs[i].Position] = true
		prefs[i].PlayerID = playerID
	}

	if err := s.playerRepo.SetPreferences(ctx, playerID, prefs); err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}
	return nil
}

// RemovePlayer deactivates a player without destroying their history
func (s *PlayerService) RemovePlayer(ctx context.Context, playerID int) error {
	if err := s.playerRepo.Deactivate(ctx, playerID); err != nil {
		return fmt.Errorf("deactivating player: %w", err)
	}
	return nil
}

func validPosition(position string) bool {
	for _, p := range lineup.Positions {
		if p == position {
			return true
		}
	}
	return false
}
