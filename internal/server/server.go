// Package server provides the HTTP server for the pose capture engine.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/JamesHardey/PoseDetect/internal/capture"
	"github.com/JamesHardey/PoseDetect/internal/server/api"
	"github.com/JamesHardey/PoseDetect/internal/session"
	"github.com/JamesHardey/PoseDetect/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Camera    capture.Camera
	Session   *session.Controller
}

// Server represents the HTTP server for the pose capture application.
type Server struct {
	config Config
	mux    *http.ServeMux
	events *EventsHandler
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		events: NewEventsHandler(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// Events returns the WebSocket event hub so session events can be wired in.
func (s *Server) Events() *EventsHandler {
	return s.events
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.Handle("/api/events", s.events)

	// Register capture API handlers if Store is configured
	if s.config.Store != nil {
		captureHandler := api.NewCaptureHandler(s.config.Store)
		s.mux.Handle("/api/captures", captureHandler)
		s.mux.Handle("/api/captures/", captureHandler)

		var applier api.ReferenceApplier
		if s.config.Session != nil {
			applier = s.config.Session
		}
		referenceHandler := api.NewReferenceHandler(s.config.Store, applier)
		s.mux.Handle("/api/reference", referenceHandler)
	}

	// Register camera stream endpoint if Camera is configured
	if s.config.Camera != nil {
		streamHandler := NewStreamHandler(s.config.Camera)
		s.mux.Handle("/api/stream", streamHandler)
	}

	// Register session state endpoint if Session is configured
	if s.config.Session != nil {
		s.mux.HandleFunc("/api/state", s.handleState)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// handleState handles GET requests to /api/state and reports the current
// capture session position.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state := s.config.Session.State()

	response := map[string]interface{}{
		"stage":         state.Stage.String(),
		"countdown":     state.Countdown,
		"counting_down": state.IsCountingDown(),
	}
	if state.FrontImage != "" {
		response["front_image"] = state.FrontImage
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
