package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JamesHardey/PoseDetect/internal/posture"
)

// fakeApplier records reference updates in place of a live session.
type fakeApplier struct {
	ref     posture.Reference
	applied int
}

func (f *fakeApplier) Reference() posture.Reference {
	return f.ref
}

func (f *fakeApplier) SetReference(ref posture.Reference) {
	f.ref = ref
	f.applied++
}

func TestReferenceHandler_GetDefault(t *testing.T) {
	handler := NewReferenceHandler(newTestStore(t), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/reference", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var ref posture.Reference
	if err := json.NewDecoder(rec.Body).Decode(&ref); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if ref != posture.DefaultReference() {
		t.Errorf("got %+v, want the default reference", ref)
	}
}

func TestReferenceHandler_GetFromSession(t *testing.T) {
	applier := &fakeApplier{ref: posture.DefaultReference()}
	applier.ref.ShoulderTarget = 85
	handler := NewReferenceHandler(newTestStore(t), applier)

	req := httptest.NewRequest(http.MethodGet, "/api/reference", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var ref posture.Reference
	if err := json.NewDecoder(rec.Body).Decode(&ref); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if ref.ShoulderTarget != 85 {
		t.Errorf("got shoulder target %v, want the session value", ref.ShoulderTarget)
	}
}

func TestReferenceHandler_Update(t *testing.T) {
	s := newTestStore(t)
	applier := &fakeApplier{ref: posture.DefaultReference()}
	handler := NewReferenceHandler(s, applier)

	ref := posture.DefaultReference()
	ref.ShoulderTarget = 80
	ref.SpineTolerance = 10
	body, _ := json.Marshal(ref)

	req := httptest.NewRequest(http.MethodPut, "/api/reference", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	// Applied to the live session.
	if applier.applied != 1 || applier.ref != ref {
		t.Errorf("expected the update applied to the session, got %+v", applier.ref)
	}

	// Persisted for the next startup.
	stored, err := s.Settings().GetReference()
	if err != nil {
		t.Fatalf("failed to load stored reference: %v", err)
	}
	if stored != ref {
		t.Errorf("stored reference = %+v, want %+v", stored, ref)
	}
}

func TestReferenceHandler_UpdateInvalidJSON(t *testing.T) {
	handler := NewReferenceHandler(newTestStore(t), nil)

	req := httptest.NewRequest(http.MethodPut, "/api/reference", strings.NewReader("{nope"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestReferenceHandler_UpdateRejectsBadValues(t *testing.T) {
	handler := NewReferenceHandler(newTestStore(t), nil)

	cases := []struct {
		name   string
		mutate func(*posture.Reference)
	}{
		{"angle above 180", func(r *posture.Reference) { r.ElbowTarget = 270 }},
		{"negative angle", func(r *posture.Reference) { r.ShoulderTarget = -5 }},
		{"zero tolerance", func(r *posture.Reference) { r.SpineTolerance = 0 }},
		{"negative tolerance", func(r *posture.Reference) { r.HipTolerance = -1 }},
		{"spread out of range", func(r *posture.Reference) { r.MinArmSpread = 1.5 }},
		{"zero feet separation", func(r *posture.Reference) { r.MinFeetSeparation = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ref := posture.DefaultReference()
			tc.mutate(&ref)
			body, _ := json.Marshal(ref)

			req := httptest.NewRequest(http.MethodPut, "/api/reference", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestReferenceHandler_MethodNotAllowed(t *testing.T) {
	handler := NewReferenceHandler(newTestStore(t), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/reference", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
