package league

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/openrec/dugout/internal/store"
	"github.com/openrec/dugout/internal/store/repository"
)

// Ingester turns parsed schedule rows into game records. Games are
// keyed by (team_id, external_id) so re-running a sync is idempotent.
type Ingester struct {
	client   *Client
	gameRepo *repository.GameRepository
}

// NewIngester constructs an ingester with the default league site URL
func NewIngester(db *store.Database) *Ingester {
	return NewIngesterWithBaseURL(db, "")
}

// NewIngesterWithBaseURL overrides the league site base URL (useful for tests)
func NewIngesterWithBaseURL(db *store.Database, baseURL string) *Ingester {
	client, err := NewClient(baseURL)
	if err != nil {
		// NewClient only fails on allocator setup, which has no
		// recoverable path here
		log.Printf("Warning: league client setup: %v", err)
	}
	return &Ingester{
		client:   client,
		gameRepo: repository.NewGameRepository(db),
	}
}

// Close releases the underlying browser
func (i *Ingester) Close() {
	if i.client != nil {
		i.client.Close()
	}
}

// SyncTeamSchedule fetches the league site schedule for a team and
// upserts every game it appears in. Returns the number of games
// written.
func (i *Ingester) SyncTeamSchedule(ctx context.Context, team *store.Team) (int, error) {
	if !team.ExternalID.Valid || team.ExternalID.String == "" {
		return 0, fmt.Errorf("team %d has no league site identifier", team.TeamID)
	}

	html, err := i.client.FetchTeamSchedule(ctx, team.ExternalID.String)
	if err != nil {
		return 0, fmt.Errorf("fetching schedule for team %d: %w", team.TeamID, err)
	}

	doc, err := ParseHTML(html)
	if err != nil {
		return 0, err
	}

	scheduled, err := ParseSchedule(doc, team.Season)
	if err != nil {
		return 0, err
	}

	return i.upsertGames(ctx, team, scheduled)
}

// upsertGames writes the rows that involve the given team
func (i *Ingester) upsertGames(ctx context.Context, team *store.Team, scheduled []ScheduledGame) (int, error) {
	count := 0
	for _, sg := range scheduled {
		game, ok := buildGame(team, sg)
		if !ok {
			continue
		}

		if err := i.gameRepo.Upsert(ctx, game); err != nil {
			return count, fmt.Errorf("upserting game %s: %w", sg.ExternalID, err)
		}
		count++
	}

	log.Printf("Synced %d games for team %d (%s)", count, team.TeamID, team.Name)
	return count, nil
}

// buildGame maps a schedule row onto a game record for the team, or
// reports false when the team is not playing in it.
func buildGame(team *store.Team, sg ScheduledGame) (*store.Game, bool) {
	var opponent, homeAway string
	switch {
	case teamNamesMatch(team.Name, sg.HomeTeam):
		opponent, homeAway = sg.AwayTeam, "home"
	case teamNamesMatch(team.Name, sg.AwayTeam):
		opponent, homeAway = sg.HomeTeam, "away"
	default:
		return nil, false
	}

	game := &store.Game{
		TeamID:     team.TeamID,
		ExternalID: sql.NullString{String: sg.ExternalID, Valid: true},
		Opponent:   opponent,
		GameDate:   sg.Date,
		HomeAway:   homeAway,
		Status:     store.GameScheduled,
	}
	if sg.Field != "" {
		game.Field = sql.NullString{String: sg.Field, Valid: true}
	}
	if t, err := parseGameTime(sg.Date, sg.Time); err == nil {
		game.GameTime = sql.NullTime{Time: t, Valid: true}
	}

	return game, true
}

// teamNamesMatch compares names case-insensitively, tolerating the
// league site's habit of appending division suffixes.
func teamNamesMatch(ours, theirs string) bool {
	ours = strings.ToLower(strings.TrimSpace(ours))
	theirs = strings.ToLower(strings.TrimSpace(theirs))
	return ours == theirs || strings.HasPrefix(theirs, ours+" ")
}

// parseGameTime combines the schedule date with a clock like "6:30 PM"
func parseGameTime(date time.Time, clock string) (time.Time, error) {
	clock = strings.TrimSpace(clock)
	for _, layout := range []string{"3:04 PM", "3:04PM", "15:04"} {
		if t, err := time.Parse(layout, clock); err == nil {
			return time.Date(date.Year(), date.Month(), date.Day(),
				t.Hour(), t.Minute(), 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", clock)
}
