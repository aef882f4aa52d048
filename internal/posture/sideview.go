package posture

import (
	"math"

	"github.com/JamesHardey/PoseDetect/internal/pose"
)

// Side-pose tolerances as fractions of frame width, so the checks are
// resolution-independent.
const (
	sidewaysShoulderTolerance = 0.08
	sidewaysArmTolerance      = 0.12
	sidewaysLegTolerance      = 0.12

	// sideMinConfidence is the minimum joint confidence the side checks
	// accept.
	sideMinConfidence = 0.3
)

// Side-stage corrective messages.
const (
	MsgTurnSideways = "Turn to your side"
	MsgArmsAtSide   = "Keep your arms at your side"
	MsgFeetTogether = "Keep your feet together"
)

// SideResult holds the three independent orientation checks for the side
// capture stage.
type SideResult struct {
	Sideways     bool `json:"sideways"`
	ArmsSideways bool `json:"arms_sideways"`
	LegsSideways bool `json:"legs_sideways"`
}

// Valid reports whether all three orientation checks hold.
func (r SideResult) Valid() bool {
	return r.Sideways && r.ArmsSideways && r.LegsSideways
}

// Feedback returns the single most corrective instruction for the side
// stage, or the hold-still message when the pose is correct.
func (r SideResult) Feedback() string {
	switch {
	case !r.Sideways:
		return MsgTurnSideways
	case !r.ArmsSideways:
		return MsgArmsAtSide
	case !r.LegsSideways:
		return MsgFeetTogether
	default:
		return MsgHoldStill
	}
}

// CheckSide classifies the sideways alignment of shoulders, arms and legs.
// A check whose joints are missing is reported as false, never as an error.
func CheckSide(s *pose.Snapshot) SideResult {
	return SideResult{
		Sideways:     shouldersSideways(s),
		ArmsSideways: armsSideways(s),
		LegsSideways: legsSideways(s),
	}
}

// shouldersSideways holds when the shoulders nearly overlap horizontally,
// meaning the body is turned 90 degrees to the camera.
func shouldersSideways(s *pose.Snapshot) bool {
	if !s.Usable(pose.LeftShoulder, sideMinConfidence) || !s.Usable(pose.RightShoulder, sideMinConfidence) {
		return false
	}

	left, _ := s.Location(pose.LeftShoulder)
	right, _ := s.Location(pose.RightShoulder)

	return normDiffX(left.X, right.X, s.Width()) < sidewaysShoulderTolerance
}

func armsSideways(s *pose.Snapshot) bool {
	return jointPairAligned(s, pose.LeftWrist, pose.LeftShoulder, sidewaysArmTolerance) &&
		jointPairAligned(s, pose.RightWrist, pose.RightShoulder, sidewaysArmTolerance)
}

func legsSideways(s *pose.Snapshot) bool {
	return jointPairAligned(s, pose.LeftAnkle, pose.LeftHip, sidewaysLegTolerance) &&
		jointPairAligned(s, pose.RightAnkle, pose.RightHip, sidewaysLegTolerance)
}

// jointPairAligned holds when the two joints are horizontally within the
// given fraction of the frame width of each other.
func jointPairAligned(s *pose.Snapshot, a, b pose.Joint, tolerance float64) bool {
	if !s.Usable(a, sideMinConfidence) || !s.Usable(b, sideMinConfidence) {
		return false
	}

	pa, _ := s.Location(a)
	pb, _ := s.Location(b)

	return normDiffX(pa.X, pb.X, s.Width()) < tolerance
}

func normDiffX(ax, bx float64, width int) float64 {
	if width == 0 {
		return math.Inf(1)
	}
	return math.Abs(ax-bx) / float64(width)
}
