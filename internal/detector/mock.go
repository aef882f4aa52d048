package detector

import (
	"gocv.io/x/gocv"

	"github.com/JamesHardey/PoseDetect/internal/pose"
)

// MockDetector is a test implementation of the Detector interface. It lets
// tests control the detection results.
type MockDetector struct {
	snapshot *pose.Snapshot
	err      error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetSnapshot sets the snapshot that will be returned by Detect.
func (m *MockDetector) SetSnapshot(s *pose.Snapshot) {
	m.snapshot = s
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured snapshot or error.
func (m *MockDetector) Detect(frame *gocv.Mat) (*pose.Snapshot, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.snapshot, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}
