package syncjob

import (
	"context"
	"fmt"

	"github.com/openrec/dugout/internal/ingest/league"
	"github.com/openrec/dugout/internal/store"
	"github.com/openrec/dugout/internal/store/repository"
)

// Runner executes sync specs using the league site ingester.
type Runner struct {
	ingester *league.Ingester
	teamRepo *repository.TeamRepository
}

// NewRunner constructs a runner with the default league site URL.
func NewRunner(db *store.Database) *Runner {
	return &Runner{
		ingester: league.NewIngester(db),
		teamRepo: repository.NewTeamRepository(db),
	}
}

// NewRunnerWithBaseURL overrides the league site base URL (useful for tests).
func NewRunnerWithBaseURL(db *store.Database, baseURL string) *Runner {
	return &Runner{
		ingester: league.NewIngesterWithBaseURL(db, baseURL),
		teamRepo: repository.NewTeamRepository(db),
	}
}

// Close releases the ingester's browser resources.
func (r *Runner) Close() {
	r.ingester.Close()
}

// Run executes the job spec, reporting progress via the Reporter if provided.
func (r *Runner) Run(ctx context.Context, spec JobSpec, reporter Reporter) error {
	if reporter != nil {
		reporter.OnJobStart(spec)
	}

	if spec.DryRun {
		if reporter != nil {
			reporter.OnProgress("Dry-run mode: no data will be written", 0, 0)
			reporter.OnJobComplete()
		}
		return nil
	}

	teams, err := r.resolveTeams(ctx, spec)
	if err != nil {
		if reporter != nil {
			reporter.OnJobError(err)
		}
		return err
	}
	if len(teams) == 0 {
		if reporter != nil {
			reporter.OnProgress("No teams to sync", 0, 0)
			reporter.OnJobComplete()
		}
		return nil
	}

	total := len(teams)
	for idx, team := range teams {
		if err := ctx.Err(); err != nil {
			return err
		}

		if reporter != nil {
			reporter.OnTeamStart(team.Name, idx, total)
		}

		games, err := r.ingester.SyncTeamSchedule(ctx, team)
		if err != nil {
			if reporter != nil {
				reporter.OnJobError(err)
			}
			return err
		}

		if reporter != nil {
			reporter.OnTeamSynced(team.Name, games)
			reporter.OnProgress(fmt.Sprintf("Synced %s (%d games)", team.Name, games), idx+1, total)
		}
	}

	if reporter != nil {
		reporter.OnJobComplete()
	}

	return nil
}

// resolveTeams lists the teams a spec applies to. Teams without a
// league site identifier cannot be synced and are skipped.
func (r *Runner) resolveTeams(ctx context.Context, spec JobSpec) ([]*store.Team, error) {
	switch spec.Type {
	case JobTypeSeason:
		all, err := r.teamRepo.GetAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing teams: %w", err)
		}

		var teams []*store.Team
		for _, team := range all {
			if spec.Season != "" && team.Season != spec.Season {
				continue
			}
			if team.ExternalID.Valid && team.ExternalID.String != "" {
				teams = append(teams, team)
			}
		}
		return teams, nil

	case JobTypeTeam:
		if len(spec.TeamIDs) == 0 {
			return nil, fmt.Errorf("team job requires at least one team id")
		}

		teams := make([]*store.Team, 0, len(spec.TeamIDs))
		for _, externalID := range spec.TeamIDs {
			team, err := r.teamRepo.GetByExternalID(ctx, externalID)
			if err != nil {
				return nil, fmt.Errorf("team %q: %w", externalID, err)
			}
			teams = append(teams, team)
		}
		return teams, nil

	default:
		return nil, fmt.Errorf("unsupported job type %s", spec.Type)
	}
}
