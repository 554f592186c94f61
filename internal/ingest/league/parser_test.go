package league

import (
	"database/sql"
	"testing"
	"time"

	"github.com/openrec/dugout/internal/store"
)

func teamFixture(name string) *store.Team {
	return &store.Team{
		TeamID:     1,
		Name:       name,
		Season:     "Summer 2026",
		ExternalID: sql.NullString{String: "t-77", Valid: true},
	}
}

const scheduleHTML = `
<html><body>
<table class="schedule">
<thead><tr><th>Date</th><th>Time</th><th>Field</th><th>Home</th><th>Away</th></tr></thead>
<tbody>
<tr data-game-id="g-1001">
  <td>2026-06-02</td><td>6:30 PM</td><td>Brewer Park 1</td><td>Sliders</td><td>Bat Attitudes</td>
</tr>
<tr data-game-id="g-1002">
  <td>Jun 9, 2026</td><td>8:00 PM</td><td>Brewer Park 2</td><td>Pitch Slap</td><td>Sliders</td>
</tr>
<tr><td colspan="5">Week 3 — bye</td></tr>
<tr>
  <td>Tue, Jun 16</td><td>6:30 PM</td><td>Heron Park</td><td>Sliders</td><td>Base Invaders</td>
</tr>
</tbody>
</table>
</body></html>`

func TestParseSchedule(t *testing.T) {
	doc, err := ParseHTML(scheduleHTML)
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}

	games, err := ParseSchedule(doc, "Summer 2026")
	if err != nil {
		t.Fatalf("ParseSchedule: %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("expected 3 games, got %d", len(games))
	}

	first := games[0]
	if first.ExternalID != "g-1001" {
		t.Errorf("external ID = %q, want g-1001", first.ExternalID)
	}
	if !first.Date.Equal(time.Date(2026, time.June, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %v", first.Date)
	}
	if first.HomeTeam != "Sliders" || first.AwayTeam != "Bat Attitudes" {
		t.Errorf("teams = %q vs %q", first.HomeTeam, first.AwayTeam)
	}
	if first.Field != "Brewer Park 1" {
		t.Errorf("field = %q", first.Field)
	}

	// Second row uses the long date format
	if !games[1].Date.Equal(time.Date(2026, time.June, 9, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("second game date = %v", games[1].Date)
	}

	// Third row has no data-game-id and a year-less date; the ID is
	// synthesized and the year comes from the season label
	third := games[2]
	if third.ExternalID != "20260616-sliders-base-invaders" {
		t.Errorf("synthesized ID = %q", third.ExternalID)
	}
	if third.Date.Year() != 2026 {
		t.Errorf("year = %d, want 2026", third.Date.Year())
	}
}

func TestParseScheduleSkipsMalformedRows(t *testing.T) {
	html := `<table class="schedule"><tbody>
<tr><td>not a date</td><td>6:30 PM</td><td>Field</td><td>A</td><td>B</td></tr>
<tr><td>2026-06-02</td><td>6:30 PM</td><td>Field</td><td>A</td><td>B</td></tr>
</tbody></table>`

	doc, err := ParseHTML(html)
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}
	games, err := ParseSchedule(doc, "2026")
	if err != nil {
		t.Fatalf("ParseSchedule: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}
}

func TestBuildGameHomeAway(t *testing.T) {
	team := teamFixture("Sliders")
	sg := ScheduledGame{
		ExternalID: "g-1",
		Date:       time.Date(2026, time.June, 2, 0, 0, 0, 0, time.UTC),
		Time:       "6:30 PM",
		Field:      "Brewer Park 1",
		HomeTeam:   "Sliders",
		AwayTeam:   "Bat Attitudes",
	}

	game, ok := buildGame(team, sg)
	if !ok {
		t.Fatal("expected a match")
	}
	if game.HomeAway != "home" || game.Opponent != "Bat Attitudes" {
		t.Errorf("home game mapped to %q vs %q", game.HomeAway, game.Opponent)
	}
	if !game.GameTime.Valid || game.GameTime.Time.Hour() != 18 || game.GameTime.Time.Minute() != 30 {
		t.Errorf("game time = %+v", game.GameTime)
	}

	sg.HomeTeam, sg.AwayTeam = "Bat Attitudes", "Sliders"
	game, ok = buildGame(team, sg)
	if !ok || game.HomeAway != "away" {
		t.Errorf("away game mapped to %+v", game)
	}

	sg.HomeTeam, sg.AwayTeam = "Pitch Slap", "Base Invaders"
	if _, ok := buildGame(team, sg); ok {
		t.Error("expected no match for a game the team is not in")
	}
}

func TestParseScheduleDateUnknownFormat(t *testing.T) {
	if _, err := parseScheduleDate("someday soon", "2026"); err == nil {
		t.Error("expected error for unknown date format")
	}
}
