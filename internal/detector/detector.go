// Package detector provides the body-pose estimation boundary: interfaces
// and implementations producing landmark snapshots from video frames.
package detector

import (
	"gocv.io/x/gocv"

	"github.com/JamesHardey/PoseDetect/internal/pose"
)

// Detector defines the interface for pose estimation implementations.
type Detector interface {
	// Detect analyzes a video frame and returns the detected body
	// landmarks. Returns nil (and no error) when no person is detected.
	Detect(frame *gocv.Mat) (*pose.Snapshot, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for pose detection.
type Config struct {
	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64

	// Mirrored marks the produced snapshots as coming from a horizontally
	// mirrored (selfie) feed.
	Mirrored bool
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
		Mirrored:        true,
	}
}
