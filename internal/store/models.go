package store

import (
	"database/sql"
	"time"
)

// Team represents a league team
type Team struct {
	TeamID     int            `json:"team_id" db:"team_id"`
	Name       string         `json:"name" db:"name"`
	Division   sql.NullString `json:"division,omitempty" db:"division"`
	Season     string         `json:"season" db:"season"`
	ExternalID sql.NullString `json:"external_id,omitempty" db:"external_id"`
	IsActive   bool           `json:"is_active" db:"is_active"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at" db:"updated_at"`
}

// Player represents a team membership record
type Player struct {
	PlayerID  int            `json:"player_id" db:"player_id"`
	TeamID    int            `json:"team_id" db:"team_id"`
	FullName  string         `json:"full_name" db:"full_name"`
	Email     sql.NullString `json:"email,omitempty" db:"email"`
	Gender    string         `json:"gender" db:"gender"`
	IsPitcher bool           `json:"is_pitcher" db:"is_pitcher"`
	IsAdmin   bool           `json:"is_admin" db:"is_admin"`
	IsActive  bool           `json:"is_active" db:"is_active"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`

	// Not in the players table - populated from position_preferences for API responses
	Preferences []PositionPreference `json:"preferences,omitempty" db:"-"`
}

// PositionPreference is a player's ranked choice of fielding position
type PositionPreference struct {
	PlayerID int    `json:"player_id" db:"player_id"`
	Position string `json:"position" db:"position"`
	Rank     int    `json:"rank" db:"rank"`
}

// Game represents a scheduled game for a team
type Game struct {
	GameID     int            `json:"game_id" db:"game_id"`
	TeamID     int            `json:"team_id" db:"team_id"`
	ExternalID sql.NullString `json:"external_id,omitempty" db:"external_id"`
	Opponent   string         `json:"opponent" db:"opponent"`
	GameDate   time.Time      `json:"game_date" db:"game_date"`
	GameTime   sql.NullTime   `json:"game_time,omitempty" db:"game_time"`
	Field      sql.NullString `json:"field,omitempty" db:"field"`
	HomeAway   string         `json:"home_away" db:"home_away"`
	Status     string         `json:"status" db:"status"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at" db:"updated_at"`
}

// AttendanceRecord is a player's RSVP for a game
type AttendanceRecord struct {
	GameID    int       `json:"game_id" db:"game_id"`
	PlayerID  int       `json:"player_id" db:"player_id"`
	Status    string    `json:"status" db:"status"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Attendance status values
const (
	AttendanceGoing    = "going"
	AttendanceMaybe    = "maybe"
	AttendanceNotGoing = "not_going"
)

// Game status values
const (
	GameScheduled = "scheduled"
	GamePlayed    = "played"
	GameCancelled = "cancelled"
)

// BattingSlot is one entry of a game's batting order
type BattingSlot struct {
	SlotID          int       `json:"slot_id" db:"slot_id"`
	GameID          int       `json:"game_id" db:"game_id"`
	PlayerID        int       `json:"player_id" db:"player_id"`
	BattingPosition int       `json:"batting_position" db:"batting_position"`
	Generated       bool      `json:"generated" db:"generated"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// FieldingAssignment places one player at one position for one inning
type FieldingAssignment struct {
	AssignmentID int       `json:"assignment_id" db:"assignment_id"`
	GameID       int       `json:"game_id" db:"game_id"`
	Inning       int       `json:"inning" db:"inning"`
	Position     string    `json:"position" db:"position"`
	PlayerID     int       `json:"player_id" db:"player_id"`
	Generated    bool      `json:"generated" db:"generated"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
