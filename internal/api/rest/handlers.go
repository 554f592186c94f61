package rest

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/openrec/dugout/internal/publisher"
	"github.com/openrec/dugout/internal/service"
	"github.com/openrec/dugout/internal/store"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db                *store.Database
	teamService       *service.TeamService
	playerService     *service.PlayerService
	gameService       *service.GameService
	attendanceService *service.AttendanceService
	lineupService     *service.LineupService
	events            *publisher.RedisStreamPublisher
}

// NewHandler creates a new handler. events may be nil when Redis is
// not configured.
func NewHandler(db *store.Database, lineups *service.LineupService, events *publisher.RedisStreamPublisher) *Handler {
	return &Handler{
		db:                db,
		teamService:       service.NewTeamService(db),
		playerService:     service.NewPlayerService(db),
		gameService:       service.NewGameService(db),
		attendanceService: service.NewAttendanceService(db),
		lineupService:     lineups,
		events:            events,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "dugout",
		"version": "1.0.0",
	})
}

// GetTeams returns all active teams. Accepts ?division=X to filter.
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.GetTeams(r.Context(), r.URL.Query().Get("division"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch teams", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"teams": teams})
}

// GetTeam returns a specific team by ID
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathInt(w, r, "teamID", "Invalid team ID")
	if !ok {
		return
	}

	team, err := h.teamService.GetTeam(r.Context(), teamID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Team not found", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"team": team})
}

// CreateTeam registers a new team
func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var team store.Team
	if err := json.NewDecoder(r.Body).Decode(&team); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.teamService.CreateTeam(r.Context(), &team); err != nil {
		respondError(w, http.StatusBadRequest, "Failed to create team", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"team": team})
}

// GetTeamRoster returns a team's roster with position preferences
func (h *Handler) GetTeamRoster(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathInt(w, r, "teamID", "Invalid team ID")
	if !ok {
		return
	}

	roster, err := h.teamService.GetRoster(r.Context(), teamID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch team roster", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"players": roster,
		"count":   len(roster),
	})
}

// AddPlayer adds a player to a team's roster
func (h *Handler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathInt(w, r, "teamID", "Invalid team ID")
	if !ok {
		return
	}

	var player store.Player
	if err := json.NewDecoder(r.Body).Decode(&player); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	player.TeamID = teamID
	player.IsActive = true

	if err := h.playerService.AddPlayer(r.Context(), &player); err != nil {
		respondError(w, http.StatusBadRequest, "Failed to add player", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"player": player})
}

// GetPlayer returns a player by ID
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	playerID, ok := pathInt(w, r, "playerID", "Invalid player ID")
	if !ok {
		return
	}

	player, err := h.playerService.GetPlayer(r.Context(), playerID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Player not found", err)
		return
	}

	respondJSON(w, http.StatusOK, player)
}

// RemovePlayer deactivates a roster member
func (h *Handler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	playerID, ok := pathInt(w, r, "playerID", "Invalid player ID")
	if !ok {
		return
	}

	if err := h.playerService.RemovePlayer(r.Context(), playerID); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to remove player", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"message": "Player removed"})
}

// SetPreferences replaces a player's ranked position preferences
func (h *Handler) SetPreferences(w http.ResponseWriter, r *http.Request) {
	playerID, ok := pathInt(w, r, "playerID", "Invalid player ID")
	if !ok {
		return
	}

	var body struct {
		Preferences []store.PositionPreference `json:"preferences"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.playerService.SetPreferences(r.Context(), playerID, body.Preferences); err != nil {
		respondError(w, http.StatusBadRequest, "Failed to save preferences", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Preferences saved",
		"preferences": body.Preferences,
	})
}

// GetTeamSchedule returns a team's schedule
func (h *Handler) GetTeamSchedule(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathInt(w, r, "teamID", "Invalid team ID")
	if !ok {
		return
	}

	upcomingOnly := r.URL.Query().Get("upcoming") == "true"

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	games, err := h.gameService.GetSchedule(r.Context(), teamID, upcomingOnly, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch team schedule", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games": games,
		"count": len(games),
	})
}

// AddGame adds a game to a team's schedule manually
func (h *Handler) AddGame(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathInt(w, r, "teamID", "Invalid team ID")
	if !ok {
		return
	}

	var game store.Game
	if err := json.NewDecoder(r.Body).Decode(&game); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	game.TeamID = teamID

	if err := h.gameService.AddGame(r.Context(), &game); err != nil {
		respondError(w, http.StatusBadRequest, "Failed to add game", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"game": game})
}

// CleanupPastGames marks old "scheduled" games as "played"
func (h *Handler) CleanupPastGames(w http.ResponseWriter, r *http.Request) {
	count, err := h.gameService.CleanupPastGames(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to cleanup past games", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "Past games cleaned up",
		"games_updated": count,
	})
}

// GetAttendance returns all RSVPs for a game
func (h *Handler) GetAttendance(w http.ResponseWriter, r *http.Request) {
	gameID, ok := pathInt(w, r, "gameID", "Invalid game ID")
	if !ok {
		return
	}

	records, err := h.attendanceService.GetAttendance(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Attendance not found", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"attendance": records,
		"count":      len(records),
	})
}

// SetAttendance records a player's RSVP for a game
func (h *Handler) SetAttendance(w http.ResponseWriter, r *http.Request) {
	gameID, ok := pathInt(w, r, "gameID", "Invalid game ID")
	if !ok {
		return
	}
	playerID, ok := pathInt(w, r, "playerID", "Invalid player ID")
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.attendanceService.SetStatus(r.Context(), gameID, playerID, body.Status); err != nil {
		respondError(w, http.StatusBadRequest, "Failed to save RSVP", err)
		return
	}

	// An RSVP change makes any cached lineup stale
	h.lineupService.InvalidateGame(r.Context(), gameID)
	if h.events != nil {
		// Never fail the RSVP on publish errors
		if err := h.events.PublishAttendanceChanged(r.Context(), gameID, playerID, body.Status); err != nil {
			log.Printf("Warning: failed to publish RSVP change for game %d: %v", gameID, err)
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"message": "RSVP saved"})
}

// pathInt extracts an integer path variable, writing a 400 on failure
func pathInt(w http.ResponseWriter, r *http.Request, name, message string) (int, bool) {
	value, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		respondError(w, http.StatusBadRequest, message, err)
		return 0, false
	}
	return value, true
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
