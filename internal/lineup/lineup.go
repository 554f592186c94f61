// Package lineup generates batting orders and fielding lineups for co-ed
// slow-pitch games. It is a pure computation stage: callers hand it in-memory
// roster and attendance snapshots and persist the results themselves.
package lineup

import (
	"errors"
	"math/rand"
	"time"
)

// Positions is the fixed fielding position list, in assignment order.
var Positions = []string{"C", "1B", "2B", "3B", "SS", "LF", "CF", "RF", "Rover"}

const (
	// InningsPerGame is the fixed number of innings in a complete fielding plan.
	InningsPerGame = 7

	// FieldersPerInning is the number of defensive positions filled each inning.
	FieldersPerInning = 9

	// MajoritySize and MinoritySize define the required gender split per inning.
	MajoritySize = 5
	MinoritySize = 4

	// maxInningsPerPlayer caps playing time in a multi-inning run. The cap only
	// engages when the confirmed roster can absorb it; see FieldingPlan.
	maxInningsPerPlayer = 6
)

// Domain errors. Both are terminal, client-correctable conditions.
var (
	// ErrInsufficientPlayers means fewer than 9 confirmed players.
	ErrInsufficientPlayers = errors.New("insufficient confirmed players")

	// ErrGenderSplit means no 5-4 or 4-5 gender combination is feasible.
	ErrGenderSplit = errors.New("cannot achieve gender split")
)

// Gender is a player's recorded gender.
type Gender string

// Recognized genders.
const (
	GenderFemale Gender = "F"
	GenderMale   Gender = "M"
)

// Preference is one entry of a player's ranked position wish list (rank 1-3).
type Preference struct {
	Position string
	Rank     int
}

// Player is the engine's view of a team membership record.
type Player struct {
	ID          string
	Name        string
	Gender      Gender
	Pitcher     bool
	Active      bool
	Preferences []Preference
}

// prefers reports whether the player listed the position, and at what rank.
func (p Player) prefers(position string) (int, bool) {
	for _, pref := range p.Preferences {
		if pref.Position == position {
			return pref.Rank, true
		}
	}
	return 0, false
}

// AttendanceStatus is a player's RSVP state for a game.
type AttendanceStatus string

// RSVP states. The engine only ever acts on StatusGoing.
const (
	StatusGoing    AttendanceStatus = "going"
	StatusMaybe    AttendanceStatus = "maybe"
	StatusNotGoing AttendanceStatus = "not_going"
)

// AttendanceRecord links a player to their RSVP for the game being generated.
type AttendanceRecord struct {
	PlayerID string
	Status   AttendanceStatus
}

// BattingSlot is one entry of a generated batting order, numbered 1..N.
type BattingSlot struct {
	PlayerID  string
	Position  int
	Generated bool
}

// FieldingAssignment places one player at one position for one inning.
type FieldingAssignment struct {
	Inning    int
	Position  string
	PlayerID  string
	Generated bool
}

// Rand is the injected randomness source. *math/rand.Rand satisfies it;
// tests substitute a fixed source to pin orderings.
type Rand interface {
	Shuffle(n int, swap func(i, j int))
	Intn(n int) int
}

// Engine generates lineups. It holds no per-game state and is safe to reuse
// across calls, though the Rand source itself is not synchronized.
type Engine struct {
	rng Rand
}

// NewEngine creates an engine. A nil rng gets a time-seeded source.
func NewEngine(rng Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{rng: rng}
}

// shuffle permutes players in place using the injected source.
func (e *Engine) shuffle(players []Player) {
	e.rng.Shuffle(len(players), func(i, j int) {
		players[i], players[j] = players[j], players[i]
	})
}
