package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/openrec/dugout/internal/lineup"
	"github.com/openrec/dugout/internal/service"
)

// lineupStatus maps engine failures onto HTTP statuses. Roster
// shortfalls and infeasible gender splits are client-correctable, so
// they come back as 422 rather than 500.
func lineupStatus(err error) (int, string) {
	switch {
	case errors.Is(err, lineup.ErrInsufficientPlayers):
		return http.StatusUnprocessableEntity, "Not enough confirmed players"
	case errors.Is(err, lineup.ErrGenderSplit):
		return http.StatusUnprocessableEntity, "Cannot satisfy gender split"
	case errors.Is(err, service.ErrGameNotOwned):
		return http.StatusNotFound, "Game not found for team"
	default:
		return http.StatusInternalServerError, "Failed to generate lineup"
	}
}

// GenerateBattingOrder handles POST /teams/{teamID}/games/{gameID}/batting-order
func (h *Handler) GenerateBattingOrder(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathInt(w, r, "teamID", "Invalid team ID")
	if !ok {
		return
	}
	gameID, ok := pathInt(w, r, "gameID", "Invalid game ID")
	if !ok {
		return
	}

	slots, err := h.lineupService.GenerateBattingOrder(r.Context(), teamID, gameID)
	if err != nil {
		status, message := lineupStatus(err)
		respondError(w, status, message, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"batting_order": slots,
		"count":         len(slots),
	})
}

// GetBattingOrder handles GET /teams/{teamID}/games/{gameID}/batting-order
func (h *Handler) GetBattingOrder(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathInt(w, r, "teamID", "Invalid team ID")
	if !ok {
		return
	}
	gameID, ok := pathInt(w, r, "gameID", "Invalid game ID")
	if !ok {
		return
	}

	slots, err := h.lineupService.GetBattingOrder(r.Context(), teamID, gameID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Batting order not found", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"batting_order": slots,
		"count":         len(slots),
	})
}

// GenerateFieldingLineup handles POST /teams/{teamID}/games/{gameID}/fielding-lineup.
// Without a query parameter it regenerates the full 7-inning plan;
// with ?inning=N it rebuilds just that inning.
func (h *Handler) GenerateFieldingLineup(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathInt(w, r, "teamID", "Invalid team ID")
	if !ok {
		return
	}
	gameID, ok := pathInt(w, r, "gameID", "Invalid game ID")
	if !ok {
		return
	}

	if inningStr := r.URL.Query().Get("inning"); inningStr != "" {
		inning, err := strconv.Atoi(inningStr)
		if err != nil || inning < 1 || inning > lineup.InningsPerGame {
			respondError(w, http.StatusBadRequest, "Invalid inning", err)
			return
		}

		assignments, err := h.lineupService.RegenerateFieldingInning(r.Context(), teamID, gameID, inning)
		if err != nil {
			status, message := lineupStatus(err)
			respondError(w, status, message, err)
			return
		}

		respondJSON(w, http.StatusCreated, map[string]interface{}{
			"inning":      inning,
			"assignments": assignments,
		})
		return
	}

	assignments, err := h.lineupService.GenerateFieldingLineup(r.Context(), teamID, gameID)
	if err != nil {
		status, message := lineupStatus(err)
		respondError(w, status, message, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"assignments": assignments,
		"count":       len(assignments),
	})
}

// GetFieldingLineup handles GET /teams/{teamID}/games/{gameID}/fielding-lineup
func (h *Handler) GetFieldingLineup(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathInt(w, r, "teamID", "Invalid team ID")
	if !ok {
		return
	}
	gameID, ok := pathInt(w, r, "gameID", "Invalid game ID")
	if !ok {
		return
	}

	assignments, err := h.lineupService.GetFieldingLineup(r.Context(), teamID, gameID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Fielding lineup not found", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"assignments": assignments,
		"count":       len(assignments),
	})
}
