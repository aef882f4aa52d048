package app

import (
	"log"
	"time"

	"github.com/JamesHardey/PoseDetect/internal/pose"
)

// PipelineFPS is the frame processing rate. Pose guidance needs to feel live
// but the detector subprocess dominates the budget, so 15 FPS is plenty.
const PipelineFPS = 15

// runPipeline is the main loop: read a frame, detect landmarks, feed the
// session. A frame with no detected person still produces an (empty) snapshot
// so the session can tell the user to step into view.
func (a *App) runPipeline(stopCh chan struct{}) {
	ticker := time.NewTicker(time.Second / PipelineFPS)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			width, height := frame.Cols(), frame.Rows()

			snapshot, err := a.Detector().Detect(frame)
			frame.Close()
			if err != nil {
				log.Printf("Error detecting pose: %v", err)
				continue
			}

			if snapshot == nil {
				snapshot = pose.NewSnapshot(width, height, a.camera.Mirrored(), nil)
			}

			a.session.ObserveFrame(snapshot)
		}
	}
}
