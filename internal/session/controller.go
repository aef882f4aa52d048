package session

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/JamesHardey/PoseDetect/internal/pose"
	"github.com/JamesHardey/PoseDetect/internal/posture"
)

// Timing defaults. The countdown tick is long enough for a companion voice
// prompt to finish; the dwell lets the displayed frame settle before the
// shot is taken.
const (
	DefaultTickInterval = 2 * time.Second
	DefaultDwellDelay   = 700 * time.Millisecond
)

// feetInFrameConfidence is required of both ankles before a countdown may
// start, on top of the stage checks.
const feetInFrameConfidence = 0.5

// Photographer captures the current camera frame and returns an opaque
// image reference (a file path).
type Photographer interface {
	Capture(label string) (string, error)
}

// Config holds controller tunables.
type Config struct {
	TickInterval time.Duration
	DwellDelay   time.Duration
}

// DefaultConfig returns the production timing configuration.
func DefaultConfig() Config {
	return Config{
		TickInterval: DefaultTickInterval,
		DwellDelay:   DefaultDwellDelay,
	}
}

// FrameEvent is the per-frame guidance payload for the overlay. It is
// emitted for every observed frame, whether or not a capture is pending.
type FrameEvent struct {
	Stage        Stage             `json:"stage"`
	Valid        bool              `json:"is_valid"`
	Feedback     string            `json:"feedback"`
	Guidance     map[string]string `json:"guidance,omitempty"`
	Metrics      *posture.Metrics  `json:"metrics,omitempty"`
	Countdown    int               `json:"countdown"`
	CountingDown bool              `json:"counting_down"`
}

// Controller drives the capture state machine from two asynchronous
// producers: the landmark frame stream and the countdown timer. All machine
// transitions are serialized under one mutex; pose evaluation itself is pure
// and runs outside it. The latest snapshot is published through a
// single-slot atomic reference so a timer tick always re-validates the
// newest pose, never a queued stale one.
type Controller struct {
	cfg          Config
	photographer Photographer

	mu       sync.Mutex
	gate     *posture.Gate
	machine  *Machine
	tickStop chan struct{}
	dwell    *time.Timer

	latest atomic.Pointer[pose.Snapshot]

	onStatus    func(Status, string)
	onFrame     func(FrameEvent)
	onCountdown func(value int, stage Stage)
	onCapture   func(frontRef, sideRef string)
}

// NewController creates a controller around the given gate and photographer.
func NewController(cfg Config, gate *posture.Gate, photographer Photographer) *Controller {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.DwellDelay <= 0 {
		cfg.DwellDelay = DefaultDwellDelay
	}

	return &Controller{
		cfg:          cfg,
		photographer: photographer,
		gate:         gate,
		machine:      NewMachine(),
	}
}

// OnStatus sets the status event callback.
func (c *Controller) OnStatus(fn func(Status, string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onStatus = fn
}

// OnFrame sets the per-frame guidance callback.
func (c *Controller) OnFrame(fn func(FrameEvent)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onFrame = fn
}

// OnCountdown sets the countdown announcement callback.
func (c *Controller) OnCountdown(fn func(value int, stage Stage)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onCountdown = fn
}

// OnCapture sets the dual-capture callback, invoked once per completed
// session with both image references.
func (c *Controller) OnCapture(fn func(frontRef, sideRef string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onCapture = fn
}

// State returns the current session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.State()
}

// Reference returns the active reference pose.
func (c *Controller) Reference() posture.Reference {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gate.Reference()
}

// SetReference replaces the reference pose used for front-stage validation.
func (c *Controller) SetReference(ref posture.Reference) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gate = posture.NewGate(ref)
}

// Announce emits a status event that does not originate from a machine
// transition (camera startup, setup errors).
func (c *Controller) Announce(status Status, message string) {
	c.mu.Lock()
	fn := c.onStatus
	c.mu.Unlock()

	if fn != nil {
		fn(status, message)
	}
}

// ObserveFrame publishes one landmark snapshot and feeds its validation into
// the state machine. It always emits a guidance payload, so the user is
// never left without feedback.
func (c *Controller) ObserveFrame(s *pose.Snapshot) {
	if s == nil {
		return
	}

	c.latest.Store(s)

	c.mu.Lock()
	stage := c.machine.State().Stage
	gate := c.gate
	c.mu.Unlock()

	// Pure evaluation, outside the lock.
	valid, ev := evaluateStage(gate, s, stage)

	c.mu.Lock()
	if c.machine.State().Stage != stage {
		// The stage moved while we were evaluating; this frame is stale.
		c.mu.Unlock()
		return
	}

	calls := c.apply(c.machine.Frame(valid))

	state := c.machine.State()
	ev.Countdown = state.Countdown
	ev.CountingDown = state.IsCountingDown()
	frameFn := c.onFrame
	c.mu.Unlock()

	if frameFn != nil {
		frameFn(ev)
	}
	for _, call := range calls {
		call()
	}
}

// Stop cancels any countdown and pending timers and resets the session.
func (c *Controller) Stop() {
	c.mu.Lock()
	calls := c.apply(c.machine.Reset())
	if c.dwell != nil {
		c.dwell.Stop()
		c.dwell = nil
	}
	c.mu.Unlock()

	for _, call := range calls {
		call()
	}
}

// apply executes machine effects. Must be called with c.mu held; callback
// invocations are returned as closures so the caller can run them after
// releasing the lock.
func (c *Controller) apply(effects []Effect) []func() {
	var calls []func()

	for _, e := range effects {
		switch e := e.(type) {
		case StatusEffect:
			if fn := c.onStatus; fn != nil {
				calls = append(calls, func() { fn(e.Status, e.Message) })
			}
		case CountdownEffect:
			if fn := c.onCountdown; fn != nil {
				calls = append(calls, func() { fn(e.Value, e.Stage) })
			}
		case StartCountdownEffect:
			c.startCountdown()
		case StopCountdownEffect:
			c.stopCountdown()
		case StartDwellEffect:
			c.dwell = time.AfterFunc(c.cfg.DwellDelay, c.handleDwell)
		case CaptureEffect:
			go c.captureNow(e.Stage)
		case DualCaptureEffect:
			if fn := c.onCapture; fn != nil {
				calls = append(calls, func() { fn(e.FrontImage, e.SideImage) })
			}
		}
	}

	return calls
}

func (c *Controller) startCountdown() {
	if c.tickStop != nil {
		return
	}
	stop := make(chan struct{})
	c.tickStop = stop
	go c.runCountdown(stop)
}

func (c *Controller) stopCountdown() {
	if c.tickStop != nil {
		close(c.tickStop)
		c.tickStop = nil
	}
}

func (c *Controller) runCountdown(stop chan struct{}) {
	ticker := time.NewTicker(c.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.handleTick()
		}
	}
}

// handleTick re-validates the latest snapshot and advances the countdown.
func (c *Controller) handleTick() {
	c.mu.Lock()
	stage := c.machine.State().Stage
	gate := c.gate
	c.mu.Unlock()

	valid := false
	if s := c.latest.Load(); s != nil {
		valid, _ = evaluateStage(gate, s, stage)
	}

	c.mu.Lock()
	calls := c.apply(c.machine.Tick(valid))
	c.mu.Unlock()

	for _, call := range calls {
		call()
	}
}

func (c *Controller) handleDwell() {
	c.mu.Lock()
	calls := c.apply(c.machine.DwellElapsed())
	c.mu.Unlock()

	for _, call := range calls {
		call()
	}
}

// captureNow triggers the photographer and feeds the outcome back into the
// machine. It verifies that the produced file (and, for the side stage, the
// earlier front image) actually exists before a success is reported.
func (c *Controller) captureNow(stage Stage) {
	ref, err := c.photographer.Capture(stage.String())
	if err == nil {
		if _, statErr := os.Stat(ref); statErr != nil {
			err = fmt.Errorf("captured image missing: %w", statErr)
		}
	}

	c.mu.Lock()
	if err == nil && stage == SidePose {
		if front := c.machine.State().FrontImage; front != "" {
			if _, statErr := os.Stat(front); statErr != nil {
				err = fmt.Errorf("front image missing: %w", statErr)
			}
		}
	}
	calls := c.apply(c.machine.CaptureResult(ref, err))
	c.mu.Unlock()

	for _, call := range calls {
		call()
	}
}

// evaluateStage runs the stage-appropriate validation. It is pure: both the
// frame handler and the tick handler use it against whichever snapshot is
// newest.
func evaluateStage(gate *posture.Gate, s *pose.Snapshot, stage Stage) (bool, FrameEvent) {
	if stage == SidePose {
		return evaluateSide(s)
	}
	return evaluateFront(gate, s)
}

func evaluateFront(gate *posture.Gate, s *pose.Snapshot) (bool, FrameEvent) {
	res := gate.Evaluate(s)

	ev := FrameEvent{
		Stage:    FrontPose,
		Valid:    res.Valid,
		Feedback: res.Feedback,
		Guidance: guidanceByName(res.Guidance),
		Metrics:  res.Metrics,
	}

	if res.Valid && !feetInFrame(s) {
		ev.Valid = false
		ev.Feedback = posture.MsgFeetVisible
		ev.Guidance = map[string]string{
			pose.LeftAnkle.String():  posture.MsgFeetVisible,
			pose.RightAnkle.String(): posture.MsgFeetVisible,
		}
	}

	return ev.Valid, ev
}

func evaluateSide(s *pose.Snapshot) (bool, FrameEvent) {
	ev := FrameEvent{Stage: SidePose}

	switch {
	case !posture.SkeletonVisible(s):
		ev.Feedback = posture.MsgFullBody
	case !feetInFrame(s):
		ev.Feedback = posture.MsgFeetVisible
	default:
		res := posture.CheckSide(s)
		ev.Valid = res.Valid()
		ev.Feedback = res.Feedback()
	}

	return ev.Valid, ev
}

// feetInFrame requires both ankles to be confidently detected inside the
// image bounds before a countdown may start.
func feetInFrame(s *pose.Snapshot) bool {
	return s.Usable(pose.LeftAnkle, feetInFrameConfidence) && s.InFrame(pose.LeftAnkle) &&
		s.Usable(pose.RightAnkle, feetInFrameConfidence) && s.InFrame(pose.RightAnkle)
}

func guidanceByName(guidance map[pose.Joint]string) map[string]string {
	if len(guidance) == 0 {
		return nil
	}
	named := make(map[string]string, len(guidance))
	for j, msg := range guidance {
		named[j.String()] = msg
	}
	return named
}
