// Package session owns the two-stage capture lifecycle: the pure state
// machine deciding transitions and the controller that serializes the
// landmark stream and countdown timer around it.
package session

// Stage identifies which of the two poses is currently being captured.
type Stage int

const (
	// FrontPose is the first capture stage: the user faces the camera.
	FrontPose Stage = iota
	// SidePose is the second capture stage: the user turns 90 degrees.
	SidePose
)

// String returns the stage name.
func (s Stage) String() string {
	if s == SidePose {
		return "side"
	}
	return "front"
}

// Phase is the machine's position within the current stage.
type Phase int

const (
	// PhaseSeeking waits for a valid pose.
	PhaseSeeking Phase = iota
	// PhaseCounting runs the countdown while the pose stays valid.
	PhaseCounting
	// PhaseDwelling is the short settle pause after the countdown reaches
	// zero. It cannot be cancelled: the frame is considered committed.
	PhaseDwelling
	// PhaseCapturing waits for the capture trigger to finish. New
	// countdowns are locked out until it completes.
	PhaseCapturing
)

// CountdownStart is the initial countdown value.
const CountdownStart = 3

// Status identifies an engine lifecycle event reported to the host.
type Status string

const (
	StatusCameraStarted      Status = "camera_started"
	StatusReadyToCapture     Status = "ready_to_capture"
	StatusReadyToCaptureSide Status = "ready_to_capture_side"
	StatusCaptureCancelled   Status = "capture_cancelled"
	StatusFrontPoseCaptured  Status = "front_pose_captured"
	StatusBothPosesCaptured  Status = "both_poses_captured"
	StatusCaptureIncomplete  Status = "capture_incomplete"
	StatusError              Status = "error"
)

// State is one immutable view of the capture session.
type State struct {
	Stage      Stage  `json:"stage"`
	Phase      Phase  `json:"phase"`
	Countdown  int    `json:"countdown"`
	FrontImage string `json:"front_image,omitempty"`
	SideImage  string `json:"side_image,omitempty"`
}

// IsCountingDown reports whether a countdown is in progress.
func (s State) IsCountingDown() bool {
	return s.Phase == PhaseCounting
}

// initialState is the session start state: seeking the front pose with the
// countdown primed.
func initialState() State {
	return State{
		Stage:     FrontPose,
		Phase:     PhaseSeeking,
		Countdown: CountdownStart,
	}
}
