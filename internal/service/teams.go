package service

import (
	"context"
	"fmt"

	"github.com/openrec/dugout/internal/store"
	"github.com/openrec/dugout/internal/store/repository"
)

// TeamService handles team-related business logic
type TeamService struct {
	teamRepo   *repository.TeamRepository
	playerRepo *repository.PlayerRepository
}

// NewTeamService creates a new team service
func NewTeamService(db *store.Database) *TeamService {
	return &TeamService{
		teamRepo:   repository.NewTeamRepository(db),
		playerRepo: repository.NewPlayerRepository(db),
	}
}

// GetTeams returns all active teams, optionally filtered by division
func (s *TeamService) GetTeams(ctx context.Context, division string) ([]*store.Team, error) {
	var (
		teams []*store.Team
		err   error
	)
	if division != "" {
		teams, err = s.teamRepo.GetByDivision(ctx, division)
	} else {
		teams, err = s.teamRepo.GetAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching teams: %w", err)
	}
	return teams, nil
}

// GetTeam retrieves a team by ID
func (s *TeamService) GetTeam(ctx context.Context, teamID int) (*store.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("fetching team: %w", err)
	}
	return team, nil
}

// CreateTeam registers a new team
func (s *TeamService) CreateTeam(ctx context.Context, team *store.Team) error {
	if team.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if team.Season == "" {
		return fmt.Errorf("team season is required")
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return fmt.Errorf("creating team: %w", err)
	}
	return nil
}

// GetRoster returns a team's full roster with position preferences
func (s *TeamService) GetRoster(ctx context.Context, teamID int) ([]*store.Player, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, fmt.Errorf("fetching team: %w", err)
	}

	players, err := s.playerRepo.GetByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("fetching roster: %w", err)
	}
	return players, nil
}
