// Package app wires the camera, pose detector, and capture session into the
// running application.
package app

import (
	"log"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/JamesHardey/PoseDetect/internal/capture"
	"github.com/JamesHardey/PoseDetect/internal/detector"
	"github.com/JamesHardey/PoseDetect/internal/posture"
	"github.com/JamesHardey/PoseDetect/internal/session"
	"github.com/JamesHardey/PoseDetect/internal/store"
)

// Config holds configuration options for the application.
type Config struct {
	Store    *store.Store
	DataDir  string
	CameraID int
	Mirrored bool
}

// App orchestrates the capture pipeline: frames in, guidance and captured
// images out.
type App struct {
	config       Config
	camera       capture.Camera
	photographer *capture.FilePhotographer
	session      *session.Controller

	mu        sync.RWMutex
	detector  detector.Detector
	enabled   bool
	stopCh    chan struct{}
	onCapture func(frontRef, sideRef string)
}

// New creates a new App instance with the given configuration.
func New(config Config) (*App, error) {
	a := &App{
		config: config,
		camera: capture.NewCamera(config.CameraID, config.Mirrored),
	}

	// Try MediaPipe first, fall back to mock detector
	detectorConfig := detector.DefaultConfig()
	detectorConfig.Mirrored = config.Mirrored
	if mp, err := detector.NewMediaPipeDetector(detectorConfig); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe pose detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	photographer, err := capture.NewPhotographer(a.camera, filepath.Join(config.DataDir, "captures"))
	if err != nil {
		return nil, err
	}
	a.photographer = photographer

	ref := posture.DefaultReference()
	if config.Store != nil {
		stored, err := config.Store.Settings().GetReference()
		if err != nil {
			log.Printf("Failed to load reference pose (%v), using defaults", err)
		} else {
			ref = stored
		}
	}

	a.session = session.NewController(session.DefaultConfig(), posture.NewGate(ref), photographer)
	a.session.OnCapture(a.persistCapture)

	return a, nil
}

// persistCapture records a completed two-stage capture in the database and
// notifies the capture hook.
func (a *App) persistCapture(frontRef, sideRef string) {
	if a.config.Store != nil {
		record := &store.Capture{
			ID:        uuid.New().String(),
			FrontPath: frontRef,
			SidePath:  sideRef,
		}
		if err := a.config.Store.Captures().Create(record); err != nil {
			log.Printf("Failed to persist capture: %v", err)
		} else {
			log.Printf("Capture %s saved (front: %s, side: %s)", record.ID, frontRef, sideRef)
		}
	}

	a.mu.RLock()
	fn := a.onCapture
	a.mu.RUnlock()
	if fn != nil {
		fn(frontRef, sideRef)
	}
}

// OnCapture sets a callback invoked after each completed capture is
// persisted.
func (a *App) OnCapture(fn func(frontRef, sideRef string)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onCapture = fn
}

// SetEnabled enables or disables frame processing. The session resets when
// processing is disabled so a re-enable starts a fresh capture.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	a.enabled = enabled
	a.mu.Unlock()

	if !enabled {
		a.session.Stop()
	}
}

// IsEnabled returns whether frame processing is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the pose detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// Detector returns the pose detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// Session returns the capture session controller.
func (a *App) Session() *session.Controller {
	return a.session
}

// Start opens the camera and begins the capture pipeline.
func (a *App) Start() error {
	a.mu.Lock()

	// Don't start if already running
	if a.stopCh != nil {
		a.mu.Unlock()
		return nil
	}

	if err := a.camera.Open(); err != nil {
		a.mu.Unlock()
		a.session.Announce(session.StatusError, "Could not open the camera")
		return err
	}

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)
	a.mu.Unlock()

	a.session.Announce(session.StatusCameraStarted, "Camera started")
	log.Println("Capture pipeline started")
	return nil
}

// Stop halts the capture pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}
	a.mu.Unlock()

	a.session.Stop()

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.mu.RLock()
	d := a.detector
	a.mu.RUnlock()
	if d != nil {
		if err := d.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Capture pipeline stopped")
}
