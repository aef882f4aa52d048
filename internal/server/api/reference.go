package api

import (
	"encoding/json"
	"net/http"

	"github.com/JamesHardey/PoseDetect/internal/posture"
	"github.com/JamesHardey/PoseDetect/internal/store"
)

// ReferenceApplier exposes the live session's reference pose so updates take
// effect without a restart.
type ReferenceApplier interface {
	Reference() posture.Reference
	SetReference(posture.Reference)
}

// ReferenceHandler handles HTTP requests for the reference pose.
type ReferenceHandler struct {
	store   *store.Store
	session ReferenceApplier
}

// NewReferenceHandler creates a new ReferenceHandler. The session may be nil,
// in which case updates are only persisted for the next startup.
func NewReferenceHandler(s *store.Store, session ReferenceApplier) *ReferenceHandler {
	return &ReferenceHandler{store: s, session: session}
}

// ServeHTTP implements the http.Handler interface.
func (h *ReferenceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// get handles GET /api/reference and returns the active reference pose.
func (h *ReferenceHandler) get(w http.ResponseWriter, r *http.Request) {
	if h.session != nil {
		writeJSON(w, http.StatusOK, h.session.Reference())
		return
	}

	ref, err := h.store.Settings().GetReference()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load reference pose")
		return
	}

	writeJSON(w, http.StatusOK, ref)
}

// update handles PUT /api/reference: it persists the new reference pose and
// applies it to the running session.
func (h *ReferenceHandler) update(w http.ResponseWriter, r *http.Request) {
	var ref posture.Reference
	if err := json.NewDecoder(r.Body).Decode(&ref); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := validateReference(ref); err != "" {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.store.Settings().SetReference(ref); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save reference pose")
		return
	}

	if h.session != nil {
		h.session.SetReference(ref)
	}

	writeJSON(w, http.StatusOK, ref)
}

// validateReference returns an error message for out-of-range values, or ""
// when the reference is usable.
func validateReference(ref posture.Reference) string {
	angles := map[string]float64{
		"shoulder_target":       ref.ShoulderTarget,
		"elbow_target":          ref.ElbowTarget,
		"hip_target":            ref.HipTarget,
		"leg_separation_target": ref.LegSeparationTarget,
	}
	for name, angle := range angles {
		if angle < 0 || angle > 180 {
			return "Field " + name + " must be between 0 and 180"
		}
	}

	tolerances := map[string]float64{
		"shoulder_tolerance":       ref.ShoulderTolerance,
		"elbow_tolerance":          ref.ElbowTolerance,
		"spine_tolerance":          ref.SpineTolerance,
		"hip_tolerance":            ref.HipTolerance,
		"shoulder_level_tolerance": ref.ShoulderLevelTolerance,
		"leg_separation_tolerance": ref.LegSeparationTolerance,
	}
	for name, tolerance := range tolerances {
		if tolerance <= 0 {
			return "Field " + name + " must be positive"
		}
	}

	fractions := map[string]float64{
		"min_arm_spread":      ref.MinArmSpread,
		"min_feet_separation": ref.MinFeetSeparation,
	}
	for name, fraction := range fractions {
		if fraction <= 0 || fraction >= 1 {
			return "Field " + name + " must be between 0 and 1"
		}
	}

	return ""
}
