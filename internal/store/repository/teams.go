package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/openrec/dugout/internal/store"
)

// TeamRepository handles team data access
type TeamRepository struct {
	db *store.Database
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *store.Database) *TeamRepository {
	return &TeamRepository{db: db}
}

// GetAll returns all active teams
func (r *TeamRepository) GetAll(ctx context.Context) ([]*store.Team, error) {
	query := `
		SELECT team_id, name, division, season, external_id, is_active,
			created_at, updated_at
		FROM teams
		WHERE is_active = true
		ORDER BY name
	`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	var teams []*store.Team
	for rows.Next() {
		team := &store.Team{}
		err := rows.Scan(
			&team.TeamID, &team.Name, &team.Division, &team.Season,
			&team.ExternalID, &team.IsActive, &team.CreatedAt, &team.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}

// GetByID finds a team by ID
func (r *TeamRepository) GetByID(ctx context.Context, teamID int) (*store.Team, error) {
	query := `
		SELECT team_id, name, division, season, external_id, is_active,
			created_at, updated_at
		FROM teams
		WHERE team_id = $1
	`

	team := &store.Team{}
	err := r.db.DB().QueryRowContext(ctx, query, teamID).Scan(
		&team.TeamID, &team.Name, &team.Division, &team.Season,
		&team.ExternalID, &team.IsActive, &team.CreatedAt, &team.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team not found: %d", teamID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying team: %w", err)
	}

	return team, nil
}

// GetByExternalID finds a team by its league-website ID
func (r *TeamRepository) GetByExternalID(ctx context.Context, externalID string) (*store.Team, error) {
	query := `
		SELECT team_id, name, division, season, external_id, is_active,
			created_at, updated_at
		FROM teams
		WHERE external_id = $1
	`

	team := &store.Team{}
	err := r.db.DB().QueryRowContext(ctx, query, externalID).Scan(
		&team.TeamID, &team.Name, &team.Division, &team.Season,
		&team.ExternalID, &team.IsActive, &team.CreatedAt, &team.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team not found with league ID: %s", externalID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying team: %w", err)
	}

	return team, nil
}

// Create inserts a new team and populates its generated ID
func (r *TeamRepository) Create(ctx context.Context, team *store.Team) error {
	query := `
		INSERT INTO teams (name, division, season, external_id, is_active)
		VALUES ($1, $2, $3, $4, true)
		RETURNING team_id, created_at, updated_at
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		team.Name, team.Division, team.Season, team.ExternalID,
	).Scan(&team.TeamID, &team.CreatedAt, &team.UpdatedAt)

	if err != nil {
		return fmt.Errorf("inserting team: %w", err)
	}

	return nil
}

// GetByDivision returns all active teams in a division
func (r *TeamRepository) GetByDivision(ctx context.Context, division string) ([]*store.Team, error) {
	query := `
		SELECT team_id, name, division, season, external_id, is_active,
			created_at, updated_at
		FROM teams
		WHERE division = $1 AND is_active = true
		ORDER BY name
	`

	rows, err := r.db.DB().QueryContext(ctx, query, division)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	var teams []*store.Team
	for rows.Next() {
		team := &store.Team{}
		err := rows.Scan(
			&team.TeamID, &team.Name, &team.Division, &team.Season,
			&team.ExternalID, &team.IsActive, &team.CreatedAt, &team.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}
