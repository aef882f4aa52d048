package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/JamesHardey/PoseDetect/internal/app"
	"github.com/JamesHardey/PoseDetect/internal/server"
	"github.com/JamesHardey/PoseDetect/internal/session"
	"github.com/JamesHardey/PoseDetect/internal/store"
	"github.com/JamesHardey/PoseDetect/internal/tray"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	cameraID := flag.Int("camera", 0, "camera device ID")
	dataDir := flag.String("data", "", "data directory (default ~/.posedetect)")
	useTray := flag.Bool("tray", false, "run with a system tray icon")
	mirrored := flag.Bool("mirrored", true, "treat the camera feed as mirrored (selfie view)")
	flag.Parse()

	fmt.Println("PoseDetect - Guided Two-Stage Pose Capture")

	dir := *dataDir
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get home directory: %v", err)
		}
		dir = filepath.Join(homeDir, ".posedetect")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dir, "posedetect.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	application, err := app.New(app.Config{
		Store:    st,
		DataDir:  dir,
		CameraID: *cameraID,
		Mirrored: *mirrored,
	})
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Camera:    application.Camera(),
		Session:   application.Session(),
	})

	var trayUI *tray.Tray
	if *useTray {
		trayUI = tray.New()
	}

	// Forward session events to WebSocket clients (and the tray, if any).
	events := srv.Events()
	sess := application.Session()

	sess.OnStatus(func(status session.Status, message string) {
		events.Broadcast("status", map[string]string{
			"status":  string(status),
			"message": message,
		})
		if trayUI != nil {
			switch status {
			case session.StatusFrontPoseCaptured:
				trayUI.SetStage("side")
			case session.StatusBothPosesCaptured, session.StatusCaptureIncomplete:
				trayUI.SetStage("front")
			}
		}
	})
	sess.OnFrame(func(ev session.FrameEvent) {
		events.Broadcast("frame", ev)
	})
	sess.OnCountdown(func(value int, stage session.Stage) {
		events.Broadcast("countdown", map[string]interface{}{
			"value": value,
			"stage": stage.String(),
		})
	})
	application.OnCapture(func(frontRef, sideRef string) {
		events.Broadcast("capture", map[string]string{
			"front": frontRef,
			"side":  sideRef,
		})
		if trayUI != nil {
			trayUI.SetLastCapture(filepath.Base(sideRef))
		}
	})

	if err := application.Start(); err != nil {
		log.Fatalf("Failed to start capture pipeline: %v", err)
	}
	application.SetEnabled(true)

	go func() {
		fmt.Printf("Starting server on %s\n", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if trayUI != nil {
		trayUI.OnToggle(application.SetEnabled)
		trayUI.OnSettings(func() {
			log.Printf("Settings available at http://localhost%s/", *addr)
		})
		trayUI.OnQuit(application.Stop)

		// Blocks until Quit is chosen from the menu.
		trayUI.Run()
		return
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Println("Shutting down")
	application.Stop()
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.posedetect/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".posedetect", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
