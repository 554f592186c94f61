package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/openrec/dugout/internal/lineup"
	"github.com/openrec/dugout/internal/store"
)

type stubPlayerStore struct {
	players []*store.Player
	err     error
}

func (s *stubPlayerStore) GetByTeam(_ context.Context, _ int) ([]*store.Player, error) {
	return s.players, s.err
}

type stubGameStore struct {
	game *store.Game
	err  error
}

func (s *stubGameStore) GetByID(_ context.Context, _ int) (*store.Game, error) {
	return s.game, s.err
}

type stubAttendanceStore struct {
	records []*store.AttendanceRecord
}

func (s *stubAttendanceStore) GetByGame(_ context.Context, _ int) ([]*store.AttendanceRecord, error) {
	return s.records, nil
}

type stubLineupStore struct {
	batting          []*store.BattingSlot
	fielding         []*store.FieldingAssignment
	replacedBatting  []*store.BattingSlot
	replacedFielding []*store.FieldingAssignment
	replacedInning   int
}

func (s *stubLineupStore) GetBattingOrder(_ context.Context, _ int) ([]*store.BattingSlot, error) {
	return s.batting, nil
}

func (s *stubLineupStore) ReplaceBattingOrder(_ context.Context, _ int, slots []*store.BattingSlot) error {
	s.replacedBatting = slots
	return nil
}

func (s *stubLineupStore) GetFieldingLineup(_ context.Context, _ int) ([]*store.FieldingAssignment, error) {
	return s.fielding, nil
}

func (s *stubLineupStore) ReplaceFieldingLineup(_ context.Context, _ int, assignments []*store.FieldingAssignment) error {
	s.replacedFielding = assignments
	return nil
}

func (s *stubLineupStore) ReplaceFieldingInning(_ context.Context, _ int, inning int, assignments []*store.FieldingAssignment) error {
	s.replacedInning = inning
	s.replacedFielding = assignments
	return nil
}

type stubCache struct {
	batting     []*store.BattingSlot
	setBatting  []*store.BattingSlot
	invalidated int
}

func (s *stubCache) GetBattingOrder(_ context.Context, _ int) ([]*store.BattingSlot, error) {
	return s.batting, nil
}

func (s *stubCache) SetBattingOrder(_ context.Context, _ int, slots []*store.BattingSlot) error {
	s.setBatting = slots
	return nil
}

func (s *stubCache) GetFieldingLineup(_ context.Context, _ int) ([]*store.FieldingAssignment, error) {
	return nil, nil
}

func (s *stubCache) SetFieldingLineup(_ context.Context, _ int, _ []*store.FieldingAssignment) error {
	return nil
}

func (s *stubCache) InvalidateLineups(_ context.Context, _ int) error {
	s.invalidated++
	return nil
}

type stubPublisher struct {
	kinds []string
}

func (s *stubPublisher) PublishLineupEvent(_ context.Context, kind string, _ int, _ interface{}) error {
	s.kinds = append(s.kinds, kind)
	return nil
}

func testRosterPlayers(nMale, nFemale int) ([]*store.Player, []*store.AttendanceRecord) {
	var players []*store.Player
	var records []*store.AttendanceRecord
	id := 1
	for i := 0; i < nMale; i++ {
		players = append(players, &store.Player{
			PlayerID: id, TeamID: 1, FullName: fmt.Sprintf("Male %d", i+1),
			Gender: "M", IsActive: true,
		})
		records = append(records, &store.AttendanceRecord{GameID: 10, PlayerID: id, Status: store.AttendanceGoing})
		id++
	}
	for i := 0; i < nFemale; i++ {
		players = append(players, &store.Player{
			PlayerID: id, TeamID: 1, FullName: fmt.Sprintf("Female %d", i+1),
			Gender: "F", IsActive: true,
		})
		records = append(records, &store.AttendanceRecord{GameID: 10, PlayerID: id, Status: store.AttendanceGoing})
		id++
	}
	return players, records
}

func newTestService(players []*store.Player, records []*store.AttendanceRecord) (*LineupService, *stubLineupStore, *stubCache, *stubPublisher) {
	lineups := &stubLineupStore{}
	cache := &stubCache{}
	events := &stubPublisher{}
	svc := NewLineupService(
		&stubPlayerStore{players: players},
		&stubGameStore{game: &store.Game{GameID: 10, TeamID: 1}},
		&stubAttendanceStore{records: records},
		lineups,
		cache,
		events,
	)
	return svc, lineups, cache, events
}

func TestGenerateBattingOrderPersistsCachesAndPublishes(t *testing.T) {
	players, records := testRosterPlayers(6, 5)
	svc, lineups, cache, events := newTestService(players, records)

	slots, err := svc.GenerateBattingOrder(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("GenerateBattingOrder: %v", err)
	}
	if len(slots) != 11 {
		t.Fatalf("expected 11 slots, got %d", len(slots))
	}
	for i, slot := range slots {
		if slot.BattingPosition != i+1 {
			t.Errorf("slot %d has batting position %d", i, slot.BattingPosition)
		}
		if slot.GameID != 10 || !slot.Generated {
			t.Errorf("slot %d not stamped for game: %+v", i, slot)
		}
	}
	if len(lineups.replacedBatting) != 11 {
		t.Errorf("expected batting order persisted, got %d rows", len(lineups.replacedBatting))
	}
	if len(cache.setBatting) != 11 {
		t.Errorf("expected batting order cached, got %d rows", len(cache.setBatting))
	}
	if len(events.kinds) != 1 || events.kinds[0] != "batting_order.generated" {
		t.Errorf("expected one batting event, got %v", events.kinds)
	}
}

func TestGenerateBattingOrderRejectsForeignGame(t *testing.T) {
	players, records := testRosterPlayers(6, 5)
	svc, lineups, _, _ := newTestService(players, records)

	if _, err := svc.GenerateBattingOrder(context.Background(), 2, 10); !errors.Is(err, ErrGameNotOwned) {
		t.Fatalf("err = %v, want ErrGameNotOwned", err)
	}
	if lineups.replacedBatting != nil {
		t.Error("batting order should not be persisted on ownership failure")
	}
}

func TestGenerateBattingOrderInsufficientPlayers(t *testing.T) {
	players, records := testRosterPlayers(4, 4)
	svc, lineups, _, events := newTestService(players, records)

	_, err := svc.GenerateBattingOrder(context.Background(), 1, 10)
	if !errors.Is(err, lineup.ErrInsufficientPlayers) {
		t.Fatalf("expected ErrInsufficientPlayers, got %v", err)
	}
	if lineups.replacedBatting != nil || len(events.kinds) != 0 {
		t.Error("nothing should be persisted or published on engine failure")
	}
}

func TestGenerateFieldingLineupFullGame(t *testing.T) {
	players, records := testRosterPlayers(7, 5)
	svc, lineups, _, events := newTestService(players, records)

	assignments, err := svc.GenerateFieldingLineup(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("GenerateFieldingLineup: %v", err)
	}
	if len(assignments) != 63 {
		t.Fatalf("expected 63 assignments, got %d", len(assignments))
	}
	if len(lineups.replacedFielding) != 63 {
		t.Errorf("expected fielding lineup persisted, got %d rows", len(lineups.replacedFielding))
	}
	if len(events.kinds) != 1 || events.kinds[0] != "fielding_lineup.generated" {
		t.Errorf("expected one fielding event, got %v", events.kinds)
	}
}

func TestGenerateFieldingLineupGenderSplitError(t *testing.T) {
	players, records := testRosterPlayers(6, 3)
	svc, _, _, _ := newTestService(players, records)

	_, err := svc.GenerateFieldingLineup(context.Background(), 1, 10)
	if !errors.Is(err, lineup.ErrGenderSplit) {
		t.Fatalf("expected ErrGenderSplit, got %v", err)
	}
}

func TestRegenerateFieldingInning(t *testing.T) {
	players, records := testRosterPlayers(7, 5)
	svc, lineups, cache, _ := newTestService(players, records)

	assignments, err := svc.RegenerateFieldingInning(context.Background(), 1, 10, 4)
	if err != nil {
		t.Fatalf("RegenerateFieldingInning: %v", err)
	}
	if len(assignments) != 9 {
		t.Fatalf("expected 9 assignments, got %d", len(assignments))
	}
	for _, a := range assignments {
		if a.Inning != 4 {
			t.Errorf("assignment has inning %d, want 4", a.Inning)
		}
	}
	if lineups.replacedInning != 4 {
		t.Errorf("expected inning 4 replaced, got %d", lineups.replacedInning)
	}
	if cache.invalidated != 1 {
		t.Errorf("expected one cache invalidation, got %d", cache.invalidated)
	}

	if _, err := svc.RegenerateFieldingInning(context.Background(), 1, 10, 8); err == nil {
		t.Error("expected error for inning out of range")
	}
}

func TestGetBattingOrderPrefersCache(t *testing.T) {
	players, records := testRosterPlayers(6, 5)
	svc, lineups, cache, _ := newTestService(players, records)

	cache.batting = []*store.BattingSlot{{GameID: 10, PlayerID: 1, BattingPosition: 1}}
	lineups.batting = []*store.BattingSlot{
		{GameID: 10, PlayerID: 2, BattingPosition: 1},
		{GameID: 10, PlayerID: 3, BattingPosition: 2},
	}

	slots, err := svc.GetBattingOrder(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("GetBattingOrder: %v", err)
	}
	if len(slots) != 1 || slots[0].PlayerID != 1 {
		t.Fatalf("expected cached order, got %+v", slots)
	}
}

func TestGetBattingOrderFallsBackToStore(t *testing.T) {
	players, records := testRosterPlayers(6, 5)
	svc, lineups, cache, _ := newTestService(players, records)

	lineups.batting = []*store.BattingSlot{
		{GameID: 10, PlayerID: 2, BattingPosition: 1},
	}

	slots, err := svc.GetBattingOrder(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("GetBattingOrder: %v", err)
	}
	if len(slots) != 1 || slots[0].PlayerID != 2 {
		t.Fatalf("expected stored order, got %+v", slots)
	}
	if len(cache.setBatting) != 1 {
		t.Error("expected store result written back to cache")
	}
}
