package session

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/JamesHardey/PoseDetect/internal/geometry"
	"github.com/JamesHardey/PoseDetect/internal/pose"
	"github.com/JamesHardey/PoseDetect/internal/posture"
)

// fakePhotographer writes small placeholder files so the controller's
// existence checks pass.
type fakePhotographer struct {
	mu    sync.Mutex
	dir   string
	fail  bool
	calls []string
}

func (p *fakePhotographer) Capture(label string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls = append(p.calls, label)
	if p.fail {
		return "", errors.New("capture failed")
	}

	path := filepath.Join(p.dir, label+"-"+strconv.Itoa(len(p.calls))+".jpg")
	if err := os.WriteFile(path, []byte("jpeg"), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (p *fakePhotographer) setFail(fail bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fail = fail
}

func newTestController(t *testing.T) (*Controller, *fakePhotographer, chan Status, chan [2]string) {
	t.Helper()

	photographer := &fakePhotographer{dir: t.TempDir()}
	gate := posture.NewGate(posture.DefaultReference())

	c := NewController(Config{
		TickInterval: 10 * time.Millisecond,
		DwellDelay:   5 * time.Millisecond,
	}, gate, photographer)

	statuses := make(chan Status, 64)
	captures := make(chan [2]string, 4)

	c.OnStatus(func(status Status, _ string) { statuses <- status })
	c.OnCapture(func(front, side string) { captures <- [2]string{front, side} })

	t.Cleanup(c.Stop)
	return c, photographer, statuses, captures
}

func waitStatus(t *testing.T, statuses chan Status, want Status) {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case got := <-statuses:
			if got == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for status %q", want)
		}
	}
}

func emptySnapshot() *pose.Snapshot {
	return pose.NewSnapshot(pose.FixtureWidth, pose.FixtureHeight, true, nil)
}

func TestController_FullTwoStageFlow(t *testing.T) {
	c, photographer, statuses, captures := newTestController(t)

	c.ObserveFrame(pose.FrontPoseSnapshot())
	waitStatus(t, statuses, StatusReadyToCapture)
	waitStatus(t, statuses, StatusFrontPoseCaptured)

	state := c.State()
	assert.Equal(t, SidePose, state.Stage)
	assert.NotEmpty(t, state.FrontImage)

	c.ObserveFrame(pose.SidePoseSnapshot())
	waitStatus(t, statuses, StatusReadyToCaptureSide)
	waitStatus(t, statuses, StatusBothPosesCaptured)

	select {
	case refs := <-captures:
		for _, ref := range refs {
			if _, err := os.Stat(ref); err != nil {
				t.Errorf("captured image %q does not exist: %v", ref, err)
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the dual-capture event")
	}

	// Session resets after a completed capture.
	state = c.State()
	assert.Equal(t, FrontPose, state.Stage)
	assert.Empty(t, state.FrontImage)
	assert.Empty(t, state.SideImage)

	photographer.mu.Lock()
	assert.Equal(t, []string{"front", "side"}, photographer.calls)
	photographer.mu.Unlock()
}

func TestController_InvalidFrameNeverStartsCountdown(t *testing.T) {
	c, _, statuses, _ := newTestController(t)

	c.ObserveFrame(emptySnapshot())

	select {
	case got := <-statuses:
		t.Fatalf("unexpected status %q for an invalid frame", got)
	case <-time.After(50 * time.Millisecond):
	}

	assert.Equal(t, PhaseSeeking, c.State().Phase)
}

func TestController_TickRevalidatesLatestSnapshot(t *testing.T) {
	c, _, statuses, _ := newTestController(t)

	c.ObserveFrame(pose.FrontPoseSnapshot())
	waitStatus(t, statuses, StatusReadyToCapture)

	// The user steps out mid-countdown: the next tick re-validates the
	// newest snapshot and cancels.
	c.ObserveFrame(emptySnapshot())
	waitStatus(t, statuses, StatusCaptureCancelled)

	state := c.State()
	assert.Equal(t, 3, state.Countdown)
	assert.False(t, state.IsCountingDown())
	assert.Equal(t, FrontPose, state.Stage)
}

func TestController_CaptureFailureReportsIncompleteAndRetries(t *testing.T) {
	c, photographer, statuses, _ := newTestController(t)
	photographer.setFail(true)

	c.ObserveFrame(pose.FrontPoseSnapshot())
	waitStatus(t, statuses, StatusCaptureIncomplete)

	state := c.State()
	assert.Equal(t, FrontPose, state.Stage, "failed capture keeps the stage")
	assert.Empty(t, state.FrontImage)

	// The user retries without restarting the session.
	photographer.setFail(false)
	c.ObserveFrame(pose.FrontPoseSnapshot())
	waitStatus(t, statuses, StatusFrontPoseCaptured)
}

func TestController_FrameEventAlwaysEmitted(t *testing.T) {
	c, _, _, _ := newTestController(t)

	events := make(chan FrameEvent, 8)
	c.OnFrame(func(ev FrameEvent) { events <- ev })

	joints := pose.FrontPoseJoints()
	joints[pose.LeftWrist] = pose.Landmark{
		Location:   geometry.Point{X: 150, Y: 250},
		Confidence: 0.9,
	}
	c.ObserveFrame(pose.NewSnapshot(pose.FixtureWidth, pose.FixtureHeight, true, joints))

	select {
	case ev := <-events:
		assert.False(t, ev.Valid)
		assert.Equal(t, "Raise your Right arm up to shoulder height", ev.Feedback)
		assert.Contains(t, ev.Guidance, pose.LeftWrist.String())
	case <-time.After(time.Second):
		t.Fatal("no frame event emitted")
	}
}

func TestController_SideStageFeedback(t *testing.T) {
	c, _, statuses, _ := newTestController(t)

	events := make(chan FrameEvent, 8)
	c.OnFrame(func(ev FrameEvent) { events <- ev })

	// Complete the front stage first.
	c.ObserveFrame(pose.FrontPoseSnapshot())
	waitStatus(t, statuses, StatusFrontPoseCaptured)
	drainFrames(events)

	// Facing the camera during the side stage prompts a turn.
	c.ObserveFrame(pose.FrontPoseSnapshot())

	select {
	case ev := <-events:
		assert.Equal(t, SidePose, ev.Stage)
		assert.False(t, ev.Valid)
		assert.Equal(t, posture.MsgTurnSideways, ev.Feedback)
	case <-time.After(time.Second):
		t.Fatal("no frame event emitted")
	}
}

func TestController_StopResetsSession(t *testing.T) {
	c, _, statuses, _ := newTestController(t)

	c.ObserveFrame(pose.FrontPoseSnapshot())
	waitStatus(t, statuses, StatusReadyToCapture)

	c.Stop()

	state := c.State()
	assert.Equal(t, FrontPose, state.Stage)
	assert.Equal(t, PhaseSeeking, state.Phase)
	assert.Equal(t, 3, state.Countdown)
}

func TestController_SetReference(t *testing.T) {
	c, _, _, _ := newTestController(t)

	ref := c.Reference()
	ref.MinFeetSeparation = 0.5
	c.SetReference(ref)

	assert.Equal(t, 0.5, c.Reference().MinFeetSeparation)
}

func drainFrames(events chan FrameEvent) {
	for {
		select {
		case <-events:
		default:
			return
		}
	}
}
