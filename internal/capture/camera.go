// Package capture provides camera acquisition and photo persistence using
// GoCV (OpenCV).
package capture

import (
	"errors"
	"sync"

	"gocv.io/x/gocv"
)

// Default capture resolution. 640x480 keeps per-frame landmark detection
// cheap without hurting capture quality noticeably.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// ErrCameraNotOpen is returned when reading from a camera that is not open.
var ErrCameraNotOpen = errors.New("camera is not open")

// Camera defines the interface for camera implementations.
type Camera interface {
	Open() error
	Close() error
	// ReadFrame reads one frame. The caller owns the returned Mat and must
	// close it.
	ReadFrame() (*gocv.Mat, error)
	IsOpen() bool
	// Mirrored reports whether frames come from a horizontally mirrored
	// (selfie) feed. The flag travels with every snapshot so user-facing
	// left/right guidance can be translated once, in one place.
	Mirrored() bool
}

// webcam captures frames from a physical device via GoCV.
type webcam struct {
	deviceID int
	mirrored bool

	mu      sync.Mutex
	capture *gocv.VideoCapture
	running bool
}

// NewCamera creates a camera for the given device ID. mirrored should be
// true for front-facing (selfie) cameras.
func NewCamera(deviceID int, mirrored bool) Camera {
	return &webcam{
		deviceID: deviceID,
		mirrored: mirrored,
	}
}

// Open opens the device and pins the capture resolution.
func (c *webcam) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return nil
	}

	capture, err := gocv.OpenVideoCapture(c.deviceID)
	if err != nil {
		return err
	}

	capture.Set(gocv.VideoCaptureFrameWidth, DefaultWidth)
	capture.Set(gocv.VideoCaptureFrameHeight, DefaultHeight)

	c.capture = capture
	c.running = true
	return nil
}

// Close closes the device and releases resources.
func (c *webcam) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.capture == nil {
		c.running = false
		return nil
	}

	err := c.capture.Close()
	c.capture = nil
	c.running = false
	return err
}

// ReadFrame reads a single frame from the device.
func (c *webcam) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.capture == nil {
		return nil, ErrCameraNotOpen
	}

	mat := gocv.NewMat()
	if ok := c.capture.Read(&mat); !ok {
		mat.Close()
		return nil, errors.New("failed to read frame from camera")
	}

	if mat.Empty() {
		mat.Close()
		return nil, errors.New("captured frame is empty")
	}

	return &mat, nil
}

// IsOpen reports whether the camera is currently open.
func (c *webcam) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Mirrored reports whether the feed is horizontally mirrored.
func (c *webcam) Mirrored() bool {
	return c.mirrored
}
