package capture

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"gocv.io/x/gocv"
)

// thumbnailSize is the bounding box for capture thumbnails.
const thumbnailSize = 320

// FilePhotographer persists the camera's current frame as a JPEG under a
// directory and returns the file path as the image reference. A thumbnail
// is written alongside each capture for gallery views.
type FilePhotographer struct {
	camera Camera
	dir    string
}

// NewPhotographer creates a photographer writing into dir, creating it if
// needed.
func NewPhotographer(camera Camera, dir string) (*FilePhotographer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create capture directory: %w", err)
	}
	return &FilePhotographer{camera: camera, dir: dir}, nil
}

// Capture reads the current frame, encodes it as JPEG and writes it to
// disk. The label (e.g. "front", "side") becomes part of the file name.
func (p *FilePhotographer) Capture(label string) (string, error) {
	frame, err := p.camera.ReadFrame()
	if err != nil {
		return "", fmt.Errorf("read frame: %w", err)
	}
	defer frame.Close()

	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return "", fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	data := buf.GetBytes()
	path := filepath.Join(p.dir, fmt.Sprintf("%s-%s.jpg", label, uuid.NewString()))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write capture: %w", err)
	}

	// Thumbnail failure is not a capture failure.
	if err := writeThumbnail(path, data); err != nil {
		log.Printf("Failed to write thumbnail for %s: %v", path, err)
	}

	return path, nil
}

// writeThumbnail decodes the captured JPEG and stores a scaled-down copy
// next to it with a .thumb.jpg suffix.
func writeThumbnail(capturePath string, data []byte) error {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}

	thumb := imaging.Fit(img, thumbnailSize, thumbnailSize, imaging.Lanczos)
	return imaging.Save(thumb, ThumbnailPath(capturePath))
}

// ThumbnailPath returns the thumbnail location for a capture path.
func ThumbnailPath(capturePath string) string {
	return strings.TrimSuffix(capturePath, filepath.Ext(capturePath)) + ".thumb.jpg"
}
