// Package api provides HTTP API handlers for the pose capture engine.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/JamesHardey/PoseDetect/internal/store"
)

// CaptureHandler handles HTTP requests for capture resources. Captures are
// created by the session itself, so the API only reads and deletes them.
type CaptureHandler struct {
	store *store.Store
}

// NewCaptureHandler creates a new CaptureHandler with the given store.
func NewCaptureHandler(s *store.Store) *CaptureHandler {
	return &CaptureHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *CaptureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/captures or /api/captures/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/captures")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/captures
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.list(w, r)
		return
	}

	// Item endpoint: /api/captures/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type captureResponse struct {
	ID        string `json:"id"`
	FrontPath string `json:"front_path"`
	SidePath  string `json:"side_path"`
	CreatedAt string `json:"created_at"`
}

type listCapturesResponse struct {
	Captures []captureResponse `json:"captures"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Capture to a captureResponse.
func toResponse(c *store.Capture) captureResponse {
	return captureResponse{
		ID:        c.ID,
		FrontPath: c.FrontPath,
		SidePath:  c.SidePath,
		CreatedAt: c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/captures and returns all captures, newest first.
func (h *CaptureHandler) list(w http.ResponseWriter, r *http.Request) {
	captures, err := h.store.Captures().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list captures")
		return
	}

	response := listCapturesResponse{
		Captures: make([]captureResponse, 0, len(captures)),
	}

	for _, c := range captures {
		response.Captures = append(response.Captures, toResponse(c))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/captures/{id} and returns a single capture.
func (h *CaptureHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	capture, err := h.store.Captures().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Capture not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get capture")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(capture))
}

// delete handles DELETE /api/captures/{id} and removes a capture record.
func (h *CaptureHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Captures().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Capture not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete capture")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
