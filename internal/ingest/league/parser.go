package league

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ScheduledGame is one row of a league schedule table
type ScheduledGame struct {
	ExternalID string
	Date       time.Time
	Time       string
	Field      string
	HomeTeam   string
	AwayTeam   string
}

// ParseSchedule extracts scheduled games from a rendered schedule page.
// The league site lays the schedule out as a table with one row per
// game; each row carries a data-game-id attribute.
func ParseSchedule(doc *goquery.Document, season string) ([]ScheduledGame, error) {
	var games []ScheduledGame

	doc.Find("table.schedule tbody tr, table#schedule tbody tr").Each(func(i int, row *goquery.Selection) {
		game, err := parseScheduleRow(row, season)
		if err != nil {
			// One malformed row should not sink the whole page
			log.Printf("Skipping schedule row %d: %v", i, err)
			return
		}
		if game != nil {
			games = append(games, *game)
		}
	})

	log.Printf("Parsed %d scheduled games", len(games))
	return games, nil
}

// parseScheduleRow extracts one game from a table row. Expected cells,
// in order: date, time, field, home team, away team.
func parseScheduleRow(row *goquery.Selection, season string) (*ScheduledGame, error) {
	cells := row.Find("td")
	if cells.Length() < 5 {
		return nil, nil // header or spacer row
	}

	game := &ScheduledGame{
		Time:     strings.TrimSpace(cells.Eq(1).Text()),
		Field:    strings.TrimSpace(cells.Eq(2).Text()),
		HomeTeam: strings.TrimSpace(cells.Eq(3).Text()),
		AwayTeam: strings.TrimSpace(cells.Eq(4).Text()),
	}

	dateText := strings.TrimSpace(cells.Eq(0).Text())
	date, err := parseScheduleDate(dateText, season)
	if err != nil {
		return nil, err
	}
	game.Date = date

	if game.HomeTeam == "" || game.AwayTeam == "" {
		return nil, fmt.Errorf("missing team names")
	}

	if id, ok := row.Attr("data-game-id"); ok && id != "" {
		game.ExternalID = id
	} else {
		// Synthesize a stable ID when the site omits one
		game.ExternalID = fmt.Sprintf("%s-%s-%s",
			date.Format("20060102"),
			slugify(game.HomeTeam),
			slugify(game.AwayTeam))
	}

	return game, nil
}

// parseScheduleDate handles the date formats the league site has used
// over the years. Rows that omit the year inherit it from the season.
func parseScheduleDate(text, season string) (time.Time, error) {
	formats := []string{
		"2006-01-02",
		"Jan 2, 2006",
		"Monday, Jan 2, 2006",
		"01/02/2006",
	}
	for _, layout := range formats {
		if date, err := time.Parse(layout, text); err == nil {
			return date, nil
		}
	}

	// Year-less formats like "Mon, Jun 15"
	yearless := []string{"Mon, Jan 2", "Jan 2"}
	for _, layout := range yearless {
		if date, err := time.Parse(layout, text); err == nil {
			year := seasonYear(season)
			return time.Date(year, date.Month(), date.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", text)
}

// seasonYear extracts the year from season labels like "2026" or
// "Summer 2026", falling back to the current year.
func seasonYear(season string) int {
	fields := strings.Fields(season)
	for _, f := range fields {
		var year int
		if _, err := fmt.Sscanf(f, "%d", &year); err == nil && year > 2000 {
			return year
		}
	}
	return time.Now().Year()
}

func slugify(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('-')
		}
	}
	return b.String()
}
