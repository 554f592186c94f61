package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/openrec/dugout/internal/publisher"
	"github.com/openrec/dugout/internal/service"
	"github.com/openrec/dugout/internal/store"
	"github.com/openrec/dugout/internal/syncjob"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(port string, db *store.Database, lineups *service.LineupService, events *publisher.RedisStreamPublisher, syncSvc *syncjob.Service) *Server {
	handler := NewHandler(db, lineups, events)
	syncHandler := NewSyncHandler(syncSvc)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Teams and rosters
	api.HandleFunc("/teams", handler.GetTeams).Methods("GET")
	api.HandleFunc("/teams", handler.CreateTeam).Methods("POST")
	api.HandleFunc("/teams/{teamID}", handler.GetTeam).Methods("GET")
	api.HandleFunc("/teams/{teamID}/roster", handler.GetTeamRoster).Methods("GET")
	api.HandleFunc("/teams/{teamID}/players", handler.AddPlayer).Methods("POST")

	// Players
	api.HandleFunc("/players/{playerID}", handler.GetPlayer).Methods("GET")
	api.HandleFunc("/players/{playerID}", handler.RemovePlayer).Methods("DELETE")
	api.HandleFunc("/players/{playerID}/preferences", handler.SetPreferences).Methods("PUT")

	// Schedule
	api.HandleFunc("/teams/{teamID}/schedule", handler.GetTeamSchedule).Methods("GET")
	api.HandleFunc("/teams/{teamID}/games", handler.AddGame).Methods("POST")
	api.HandleFunc("/games/cleanup", handler.CleanupPastGames).Methods("POST")

	// Attendance
	api.HandleFunc("/games/{gameID}/attendance", handler.GetAttendance).Methods("GET")
	api.HandleFunc("/games/{gameID}/attendance/{playerID}", handler.SetAttendance).Methods("PUT")

	// Lineups
	api.HandleFunc("/teams/{teamID}/games/{gameID}/batting-order", handler.GenerateBattingOrder).Methods("POST")
	api.HandleFunc("/teams/{teamID}/games/{gameID}/batting-order", handler.GetBattingOrder).Methods("GET")
	api.HandleFunc("/teams/{teamID}/games/{gameID}/fielding-lineup", handler.GenerateFieldingLineup).Methods("POST")
	api.HandleFunc("/teams/{teamID}/games/{gameID}/fielding-lineup", handler.GetFieldingLineup).Methods("GET")

	// Schedule sync operations
	api.HandleFunc("/sync", syncHandler.HandleSyncRequest).Methods("POST")
	api.HandleFunc("/sync/status", syncHandler.HandleSyncStatus).Methods("GET")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
