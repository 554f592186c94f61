package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/openrec/dugout/internal/cache"
	"github.com/openrec/dugout/internal/publisher"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Roster pages are served from varying origins
	},
}

// Server pushes lineup events to connected clients. It tails the
// Redis lineup stream and fans every entry out through the hub.
type Server struct {
	port   string
	server *http.Server
	hub    *Hub
	cache  *cache.RedisCache
}

// NewServer creates a new WebSocket server
func NewServer(cache *cache.RedisCache) *Server {
	return &Server{
		hub:   NewHub(),
		cache: cache,
	}
}

// Start starts the WebSocket server and the stream consumer
func (s *Server) Start(ctx context.Context, port string) error {
	s.port = port

	go s.hub.Run()
	go s.consumeLineupStream(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/lineups", s.handleLineups)
	mux.HandleFunc("/ws/health", s.handleHealth)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: mux,
	}

	log.Printf("WebSocket server listening on :%s", port)
	return s.server.ListenAndServe()
}

// handleLineups handles WebSocket connections for lineup updates
func (s *Server) handleLineups(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// handleHealth returns WebSocket server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status": "healthy", "clients": %d}`, s.hub.ClientCount())
}

// consumeLineupStream tails the lineup event stream and broadcasts
// each entry to connected clients. Only events published after the
// consumer starts are delivered; clients needing history hit the REST
// API instead.
func (s *Server) consumeLineupStream(ctx context.Context) {
	client := s.cache.Client()
	lastID := "$"

	for {
		if ctx.Err() != nil {
			return
		}

		streams, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{publisher.LineupStream, lastID},
			Block:   5 * time.Second,
		}).Result()
		if err != nil {
			if err == redis.Nil || ctx.Err() != nil {
				continue
			}
			log.Printf("Lineup stream read error: %v", err)
			time.Sleep(time.Second)
			continue
		}

		for _, stream := range streams {
			for _, entry := range stream.Messages {
				lastID = entry.ID
				s.broadcastEntry(entry)
			}
		}
	}
}

// broadcastEntry reshapes a stream entry into the client-facing event
func (s *Server) broadcastEntry(entry redis.XMessage) {
	event := map[string]interface{}{
		"kind":    entry.Values["kind"],
		"game_id": entry.Values["game_id"],
	}
	if raw, ok := entry.Values["data"].(string); ok && raw != "" {
		var data interface{}
		if err := json.Unmarshal([]byte(raw), &data); err == nil {
			event["data"] = data
		}
	}

	message, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to encode lineup event: %v", err)
		return
	}
	s.hub.Broadcast(message)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
