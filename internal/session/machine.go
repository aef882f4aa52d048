package session

import "fmt"

// Effect describes a side effect the controller must execute after a
// transition. The machine itself never touches timers, callbacks or the
// filesystem, which keeps every transition a pure function of
// (state, event).
type Effect interface {
	effect()
}

// StatusEffect reports a lifecycle status to the host.
type StatusEffect struct {
	Status  Status
	Message string
}

// CountdownEffect announces the remaining countdown value after a tick.
type CountdownEffect struct {
	Value int
	Stage Stage
}

// StartCountdownEffect starts the periodic countdown timer.
type StartCountdownEffect struct{}

// StopCountdownEffect stops the periodic countdown timer.
type StopCountdownEffect struct{}

// StartDwellEffect starts the one-shot settle delay before capture.
type StartDwellEffect struct{}

// CaptureEffect requests an immediate frame capture for the given stage.
type CaptureEffect struct {
	Stage Stage
}

// DualCaptureEffect delivers both image references after a completed
// session. Emitted exactly once per successful session.
type DualCaptureEffect struct {
	FrontImage string
	SideImage  string
}

func (StatusEffect) effect()         {}
func (CountdownEffect) effect()      {}
func (StartCountdownEffect) effect() {}
func (StopCountdownEffect) effect()  {}
func (StartDwellEffect) effect()     {}
func (CaptureEffect) effect()        {}
func (DualCaptureEffect) effect()    {}

// Machine is the pure capture state machine. It is not safe for concurrent
// use; the controller serializes access to it.
type Machine struct {
	state State
}

// NewMachine creates a machine seeking the front pose.
func NewMachine() *Machine {
	return &Machine{state: initialState()}
}

// State returns the current session state.
func (m *Machine) State() State {
	return m.state
}

// Frame applies one validated frame observation. A valid pose while seeking
// starts the countdown; anything else is a no-op (countdown cancellation is
// driven by ticks, which re-validate the latest snapshot themselves).
func (m *Machine) Frame(valid bool) []Effect {
	if m.state.Phase != PhaseSeeking || !valid {
		return nil
	}

	m.state.Phase = PhaseCounting
	m.state.Countdown = CountdownStart

	status := StatusReadyToCapture
	message := "Hold the pose for the countdown"
	if m.state.Stage == SidePose {
		status = StatusReadyToCaptureSide
		message = "Hold the side pose for the countdown"
	}

	return []Effect{
		StatusEffect{Status: status, Message: message},
		StartCountdownEffect{},
	}
}

// Tick applies one countdown timer tick. stillValid is the re-validation of
// the latest snapshot: when it fails the countdown cancels immediately and
// the counter resets.
func (m *Machine) Tick(stillValid bool) []Effect {
	if m.state.Phase != PhaseCounting {
		return nil
	}

	if !stillValid {
		m.state.Phase = PhaseSeeking
		m.state.Countdown = CountdownStart
		return []Effect{
			StopCountdownEffect{},
			StatusEffect{Status: StatusCaptureCancelled, Message: "Pose lost, countdown cancelled"},
		}
	}

	m.state.Countdown--
	if m.state.Countdown > 0 {
		return []Effect{CountdownEffect{Value: m.state.Countdown, Stage: m.state.Stage}}
	}

	// Countdown hit zero: the frame is committed, cancellation is no longer
	// possible.
	m.state.Phase = PhaseDwelling
	return []Effect{
		StopCountdownEffect{},
		StartDwellEffect{},
	}
}

// DwellElapsed fires after the settle delay and triggers the capture.
func (m *Machine) DwellElapsed() []Effect {
	if m.state.Phase != PhaseDwelling {
		return nil
	}

	m.state.Phase = PhaseCapturing
	return []Effect{CaptureEffect{Stage: m.state.Stage}}
}

// CaptureResult applies the outcome of a capture trigger. A failure reports
// capture_incomplete and returns to seeking the same stage with nothing
// cleared, so the session stays retryable.
func (m *Machine) CaptureResult(ref string, err error) []Effect {
	if m.state.Phase != PhaseCapturing {
		return nil
	}

	m.state.Phase = PhaseSeeking
	m.state.Countdown = CountdownStart

	if err != nil {
		return []Effect{StatusEffect{
			Status:  StatusCaptureIncomplete,
			Message: fmt.Sprintf("Capture failed: %v", err),
		}}
	}

	if m.state.Stage == FrontPose {
		m.state.FrontImage = ref
		m.state.Stage = SidePose
		return []Effect{StatusEffect{
			Status:  StatusFrontPoseCaptured,
			Message: "Front pose captured. Now turn to your side",
		}}
	}

	m.state.SideImage = ref
	if m.state.FrontImage == "" {
		// Should not happen; treated as an incomplete session rather than a
		// silent loss.
		return []Effect{StatusEffect{
			Status:  StatusCaptureIncomplete,
			Message: "Front image reference missing",
		}}
	}

	effects := []Effect{
		DualCaptureEffect{FrontImage: m.state.FrontImage, SideImage: m.state.SideImage},
		StatusEffect{Status: StatusBothPosesCaptured, Message: "Both poses captured"},
	}

	m.state = initialState()
	return effects
}

// Reset cancels everything and returns to seeking the front pose. Used for
// session-level cancellation (external stage switch, shutdown).
func (m *Machine) Reset() []Effect {
	counting := m.state.Phase == PhaseCounting
	m.state = initialState()

	if counting {
		return []Effect{StopCountdownEffect{}}
	}
	return nil
}
