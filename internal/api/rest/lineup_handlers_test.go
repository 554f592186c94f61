package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/openrec/dugout/internal/service"
	"github.com/openrec/dugout/internal/store"
)

type fakePlayerStore struct{ players []*store.Player }

func (f *fakePlayerStore) GetByTeam(_ context.Context, _ int) ([]*store.Player, error) {
	return f.players, nil
}

type fakeGameStore struct{ game *store.Game }

func (f *fakeGameStore) GetByID(_ context.Context, _ int) (*store.Game, error) {
	return f.game, nil
}

type fakeAttendanceStore struct{ records []*store.AttendanceRecord }

func (f *fakeAttendanceStore) GetByGame(_ context.Context, _ int) ([]*store.AttendanceRecord, error) {
	return f.records, nil
}

type fakeLineupStore struct{}

func (f *fakeLineupStore) GetBattingOrder(_ context.Context, _ int) ([]*store.BattingSlot, error) {
	return nil, nil
}

func (f *fakeLineupStore) ReplaceBattingOrder(_ context.Context, _ int, _ []*store.BattingSlot) error {
	return nil
}

func (f *fakeLineupStore) GetFieldingLineup(_ context.Context, _ int) ([]*store.FieldingAssignment, error) {
	return nil, nil
}

func (f *fakeLineupStore) ReplaceFieldingLineup(_ context.Context, _ int, _ []*store.FieldingAssignment) error {
	return nil
}

func (f *fakeLineupStore) ReplaceFieldingInning(_ context.Context, _, _ int, _ []*store.FieldingAssignment) error {
	return nil
}

func rosterFixture(nMale, nFemale int) ([]*store.Player, []*store.AttendanceRecord) {
	var players []*store.Player
	var records []*store.AttendanceRecord
	id := 1
	add := func(gender string, n int) {
		for i := 0; i < n; i++ {
			players = append(players, &store.Player{
				PlayerID: id, TeamID: 1, FullName: fmt.Sprintf("Player %d", id),
				Gender: gender, IsActive: true,
			})
			records = append(records, &store.AttendanceRecord{
				GameID: 10, PlayerID: id, Status: store.AttendanceGoing,
			})
			id++
		}
	}
	add("M", nMale)
	add("F", nFemale)
	return players, records
}

func testRouter(nMale, nFemale int) *mux.Router {
	players, records := rosterFixture(nMale, nFemale)
	lineupSvc := service.NewLineupService(
		&fakePlayerStore{players: players},
		&fakeGameStore{game: &store.Game{GameID: 10, TeamID: 1}},
		&fakeAttendanceStore{records: records},
		&fakeLineupStore{},
		nil,
		nil,
	)

	handler := &Handler{lineupService: lineupSvc}
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/teams/{teamID}/games/{gameID}/batting-order", handler.GenerateBattingOrder).Methods("POST")
	router.HandleFunc("/api/v1/teams/{teamID}/games/{gameID}/fielding-lineup", handler.GenerateFieldingLineup).Methods("POST")
	return router
}

func TestGenerateBattingOrderEndpoint(t *testing.T) {
	router := testRouter(6, 5)

	req := httptest.NewRequest("POST", "/api/v1/teams/1/games/10/batting-order", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Count != 11 {
		t.Errorf("count = %d, want 11", body.Count)
	}
}

func TestGenerateBattingOrderTooFewPlayersReturns422(t *testing.T) {
	router := testRouter(4, 4)

	req := httptest.NewRequest("POST", "/api/v1/teams/1/games/10/batting-order", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body.String())
	}
}

func TestGenerateFieldingLineupGenderSplitReturns422(t *testing.T) {
	router := testRouter(7, 3)

	req := httptest.NewRequest("POST", "/api/v1/teams/1/games/10/fielding-lineup", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body.String())
	}
}

func TestGenerateBattingOrderForeignGameReturns404(t *testing.T) {
	router := testRouter(6, 5)

	req := httptest.NewRequest("POST", "/api/v1/teams/2/games/10/batting-order", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", rec.Code, rec.Body.String())
	}
}

func TestGenerateFieldingLineupInvalidInningReturns400(t *testing.T) {
	router := testRouter(7, 5)

	req := httptest.NewRequest("POST", "/api/v1/teams/1/games/10/fielding-lineup?inning=abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestGenerateFieldingLineupOutOfRangeInningReturns400(t *testing.T) {
	router := testRouter(7, 5)

	for _, inning := range []string{"0", "8"} {
		req := httptest.NewRequest("POST", "/api/v1/teams/1/games/10/fielding-lineup?inning="+inning, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("inning %s: status = %d, want 400: %s", inning, rec.Code, rec.Body.String())
		}
	}
}
