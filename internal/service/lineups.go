package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/openrec/dugout/internal/lineup"
	"github.com/openrec/dugout/internal/publisher"
	"github.com/openrec/dugout/internal/store"
)

// ErrGameNotOwned is returned when a game exists but belongs to a
// different team than the request names.
var ErrGameNotOwned = errors.New("game does not belong to team")

// Collaborator interfaces for LineupService. The repository and cache
// types satisfy them; tests substitute in-memory stubs.
type (
	// PlayerStore loads a team's roster with preferences attached
	PlayerStore interface {
		GetByTeam(ctx context.Context, teamID int) ([]*store.Player, error)
	}

	// GameStore loads individual games
	GameStore interface {
		GetByID(ctx context.Context, gameID int) (*store.Game, error)
	}

	// AttendanceStore loads RSVPs for a game
	AttendanceStore interface {
		GetByGame(ctx context.Context, gameID int) ([]*store.AttendanceRecord, error)
	}

	// LineupStore persists generated lineups
	LineupStore interface {
		GetBattingOrder(ctx context.Context, gameID int) ([]*store.BattingSlot, error)
		ReplaceBattingOrder(ctx context.Context, gameID int, slots []*store.BattingSlot) error
		GetFieldingLineup(ctx context.Context, gameID int) ([]*store.FieldingAssignment, error)
		ReplaceFieldingLineup(ctx context.Context, gameID int, assignments []*store.FieldingAssignment) error
		ReplaceFieldingInning(ctx context.Context, gameID, inning int, assignments []*store.FieldingAssignment) error
	}

	// LineupCache is the Redis layer in front of LineupStore
	LineupCache interface {
		GetBattingOrder(ctx context.Context, gameID int) ([]*store.BattingSlot, error)
		SetBattingOrder(ctx context.Context, gameID int, slots []*store.BattingSlot) error
		GetFieldingLineup(ctx context.Context, gameID int) ([]*store.FieldingAssignment, error)
		SetFieldingLineup(ctx context.Context, gameID int, assignments []*store.FieldingAssignment) error
		InvalidateLineups(ctx context.Context, gameID int) error
	}

	// EventPublisher announces generated lineups to stream consumers
	EventPublisher interface {
		PublishLineupEvent(ctx context.Context, kind string, gameID int, payload interface{}) error
	}
)

// LineupService generates and serves batting orders and fielding
// lineups. Generation always goes roster -> engine -> replace in DB ->
// refresh cache -> publish; reads go cache first, DB on miss.
type LineupService struct {
	players    PlayerStore
	games      GameStore
	attendance AttendanceStore
	lineups    LineupStore
	cache      LineupCache
	events     EventPublisher
	engine     *lineup.Engine
}

// NewLineupService creates a lineup service. cache and events may be
// nil; generation then skips those steps.
func NewLineupService(players PlayerStore, games GameStore, attendance AttendanceStore, lineups LineupStore, cache LineupCache, events EventPublisher) *LineupService {
	return &LineupService{
		players:    players,
		games:      games,
		attendance: attendance,
		lineups:    lineups,
		cache:      cache,
		events:     events,
		engine:     lineup.NewEngine(nil),
	}
}

// gameRoster loads everything the engine needs for one game: the game
// itself (verifying team ownership), the roster, and the RSVPs.
func (s *LineupService) gameRoster(ctx context.Context, teamID, gameID int) ([]lineup.Player, []lineup.AttendanceRecord, error) {
	game, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching game: %w", err)
	}
	if game.TeamID != teamID {
		return nil, nil, fmt.Errorf("game %d: %w", gameID, ErrGameNotOwned)
	}

	players, err := s.players.GetByTeam(ctx, teamID)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching roster: %w", err)
	}
	records, err := s.attendance.GetByGame(ctx, gameID)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching attendance: %w", err)
	}

	roster := make([]lineup.Player, 0, len(players))
	for _, p := range players {
		prefs := make([]lineup.Preference, 0, len(p.Preferences))
		for _, pref := range p.Preferences {
			prefs = append(prefs, lineup.Preference{Position: pref.Position, Rank: pref.Rank})
		}
		roster = append(roster, lineup.Player{
			ID:          strconv.Itoa(p.PlayerID),
			Name:        p.FullName,
			Gender:      lineup.Gender(p.Gender),
			Pitcher:     p.IsPitcher,
			Active:      p.IsActive,
			Preferences: prefs,
		})
	}

	rsvps := make([]lineup.AttendanceRecord, 0, len(records))
	for _, r := range records {
		rsvps = append(rsvps, lineup.AttendanceRecord{
			PlayerID: strconv.Itoa(r.PlayerID),
			Status:   lineup.AttendanceStatus(r.Status),
		})
	}
	return roster, rsvps, nil
}

// GenerateBattingOrder builds and persists a fresh batting order for a
// game, replacing any existing one.
func (s *LineupService) GenerateBattingOrder(ctx context.Context, teamID, gameID int) ([]*store.BattingSlot, error) {
	roster, rsvps, err := s.gameRoster(ctx, teamID, gameID)
	if err != nil {
		return nil, err
	}

	order, err := s.engine.BattingOrder(roster, rsvps)
	if err != nil {
		return nil, fmt.Errorf("generating batting order: %w", err)
	}

	slots := make([]*store.BattingSlot, 0, len(order))
	for _, slot := range order {
		playerID, err := strconv.Atoi(slot.PlayerID)
		if err != nil {
			return nil, fmt.Errorf("parsing player id %q: %w", slot.PlayerID, err)
		}
		slots = append(slots, &store.BattingSlot{
			GameID:          gameID,
			PlayerID:        playerID,
			BattingPosition: slot.Position,
			Generated:       slot.Generated,
		})
	}

	if err := s.lineups.ReplaceBattingOrder(ctx, gameID, slots); err != nil {
		return nil, fmt.Errorf("saving batting order: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetBattingOrder(ctx, gameID, slots); err != nil {
			log.Printf("Warning: failed to cache batting order for game %d: %v", gameID, err)
		}
	}
	if s.events != nil {
		if err := s.events.PublishLineupEvent(ctx, publisher.EventBattingGenerated, gameID, slots); err != nil {
			log.Printf("Warning: failed to publish batting order for game %d: %v", gameID, err)
		}
	}
	return slots, nil
}

// GetBattingOrder returns a game's stored batting order
func (s *LineupService) GetBattingOrder(ctx context.Context, teamID, gameID int) ([]*store.BattingSlot, error) {
	if err := s.verifyOwnership(ctx, teamID, gameID); err != nil {
		return nil, err
	}

	if s.cache != nil {
		slots, err := s.cache.GetBattingOrder(ctx, gameID)
		if err != nil {
			log.Printf("Warning: batting order cache read for game %d: %v", gameID, err)
		} else if slots != nil {
			return slots, nil
		}
	}

	slots, err := s.lineups.GetBattingOrder(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching batting order: %w", err)
	}
	if s.cache != nil && len(slots) > 0 {
		if err := s.cache.SetBattingOrder(ctx, gameID, slots); err != nil {
			log.Printf("Warning: failed to cache batting order for game %d: %v", gameID, err)
		}
	}
	return slots, nil
}

// GenerateFieldingLineup builds and persists a full 7-inning fielding
// plan for a game, replacing any existing one.
func (s *LineupService) GenerateFieldingLineup(ctx context.Context, teamID, gameID int) ([]*store.FieldingAssignment, error) {
	roster, rsvps, err := s.gameRoster(ctx, teamID, gameID)
	if err != nil {
		return nil, err
	}

	plan, err := s.engine.FieldingPlan(roster, rsvps)
	if err != nil {
		return nil, fmt.Errorf("generating fielding lineup: %w", err)
	}

	assignments, err := s.toStoreAssignments(gameID, plan)
	if err != nil {
		return nil, err
	}
	if err := s.lineups.ReplaceFieldingLineup(ctx, gameID, assignments); err != nil {
		return nil, fmt.Errorf("saving fielding lineup: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetFieldingLineup(ctx, gameID, assignments); err != nil {
			log.Printf("Warning: failed to cache fielding lineup for game %d: %v", gameID, err)
		}
	}
	if s.events != nil {
		if err := s.events.PublishLineupEvent(ctx, publisher.EventFieldingGenerated, gameID, assignments); err != nil {
			log.Printf("Warning: failed to publish fielding lineup for game %d: %v", gameID, err)
		}
	}
	return assignments, nil
}

// RegenerateFieldingInning rebuilds a single inning of an existing
// fielding lineup, leaving the other innings untouched. Playing-time
// balance is not rebalanced across the rest of the game.
func (s *LineupService) RegenerateFieldingInning(ctx context.Context, teamID, gameID, inning int) ([]*store.FieldingAssignment, error) {
	if inning < 1 || inning > lineup.InningsPerGame {
		return nil, fmt.Errorf("inning must be between 1 and %d", lineup.InningsPerGame)
	}

	roster, rsvps, err := s.gameRoster(ctx, teamID, gameID)
	if err != nil {
		return nil, err
	}

	single, err := s.engine.FieldingInning(roster, rsvps, inning)
	if err != nil {
		return nil, fmt.Errorf("generating inning %d: %w", inning, err)
	}

	assignments, err := s.toStoreAssignments(gameID, single)
	if err != nil {
		return nil, err
	}
	if err := s.lineups.ReplaceFieldingInning(ctx, gameID, inning, assignments); err != nil {
		return nil, fmt.Errorf("saving inning %d: %w", inning, err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateLineups(ctx, gameID); err != nil {
			log.Printf("Warning: failed to invalidate lineup cache for game %d: %v", gameID, err)
		}
	}
	if s.events != nil {
		if err := s.events.PublishLineupEvent(ctx, publisher.EventFieldingGenerated, gameID, assignments); err != nil {
			log.Printf("Warning: failed to publish inning %d for game %d: %v", inning, gameID, err)
		}
	}
	return assignments, nil
}

// GetFieldingLineup returns a game's stored fielding lineup
func (s *LineupService) GetFieldingLineup(ctx context.Context, teamID, gameID int) ([]*store.FieldingAssignment, error) {
	if err := s.verifyOwnership(ctx, teamID, gameID); err != nil {
		return nil, err
	}

	if s.cache != nil {
		assignments, err := s.cache.GetFieldingLineup(ctx, gameID)
		if err != nil {
			log.Printf("Warning: fielding lineup cache read for game %d: %v", gameID, err)
		} else if assignments != nil {
			return assignments, nil
		}
	}

	assignments, err := s.lineups.GetFieldingLineup(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching fielding lineup: %w", err)
	}
	if s.cache != nil && len(assignments) > 0 {
		if err := s.cache.SetFieldingLineup(ctx, gameID, assignments); err != nil {
			log.Printf("Warning: failed to cache fielding lineup for game %d: %v", gameID, err)
		}
	}
	return assignments, nil
}

// InvalidateGame drops cached lineups for a game. Attendance changes
// route through here so stale lineups never outlive their roster.
func (s *LineupService) InvalidateGame(ctx context.Context, gameID int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateLineups(ctx, gameID); err != nil {
		log.Printf("Warning: failed to invalidate lineup cache for game %d: %v", gameID, err)
	}
}

func (s *LineupService) verifyOwnership(ctx context.Context, teamID, gameID int) error {
	game, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		return fmt.Errorf("fetching game: %w", err)
	}
	if game.TeamID != teamID {
		return fmt.Errorf("game %d: %w", gameID, ErrGameNotOwned)
	}
	return nil
}

func (s *LineupService) toStoreAssignments(gameID int, plan []lineup.FieldingAssignment) ([]*store.FieldingAssignment, error) {
	assignments := make([]*store.FieldingAssignment, 0, len(plan))
	for _, a := range plan {
		playerID, err := strconv.Atoi(a.PlayerID)
		if err != nil {
			return nil, fmt.Errorf("parsing player id %q: %w", a.PlayerID, err)
		}
		assignments = append(assignments, &store.FieldingAssignment{
			GameID:    gameID,
			Inning:    a.Inning,
			Position:  a.Position,
			PlayerID:  playerID,
			Generated: a.Generated,
		})
	}
	return assignments, nil
}
