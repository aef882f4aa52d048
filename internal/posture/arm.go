package posture

import (
	"fmt"
	"math"

	"github.com/JamesHardey/PoseDetect/internal/geometry"
	"github.com/JamesHardey/PoseDetect/internal/pose"
)

// Vertical wrist position limits as fractions of arm length. Outside this
// band the arm is reported too low or too high.
const (
	armLowRatio  = 0.45
	armHighRatio = -0.30
)

// armSide identifies an arm in detector space. Detector labels are kept
// internally consistent; translation to the user's anatomical side happens
// in exactly one place (userSideName).
type armSide int

const (
	detectorLeft armSide = iota
	detectorRight
)

func (a armSide) joints() (shoulder, elbow, wrist, hip pose.Joint) {
	if a == detectorLeft {
		return pose.LeftShoulder, pose.LeftElbow, pose.LeftWrist, pose.LeftHip
	}
	return pose.RightShoulder, pose.RightElbow, pose.RightWrist, pose.RightHip
}

// userSideName translates a detector-space side into the side the user
// perceives. A mirrored (selfie) feed swaps the anatomical sense: the
// detector's left joints belong to the user's right side.
func userSideName(a armSide, mirrored bool) string {
	left := a == detectorLeft
	if mirrored {
		left = !left
	}
	if left {
		return "Left"
	}
	return "Right"
}

// armFault identifies the single most corrective problem with one arm. The
// enum order is the fixed priority: spread, too low, too high, bent elbow,
// abduction low, abduction high.
type armFault int

const (
	armOK armFault = iota
	faultArmSpread
	faultArmTooLow
	faultArmTooHigh
	faultElbowBent
	faultAbductionLow
	faultAbductionHigh
)

// message returns the sided corrective instruction, e.g. "Raise your Right
// arm up to shoulder height".
func (f armFault) message(side string) string {
	switch f {
	case faultArmSpread:
		return fmt.Sprintf("Extend your %s arm out to the side", side)
	case faultArmTooLow:
		return fmt.Sprintf("Raise your %s arm up to shoulder height", side)
	case faultArmTooHigh:
		return fmt.Sprintf("Lower your %s arm down to shoulder height", side)
	case faultElbowBent:
		return fmt.Sprintf("Straighten your %s elbow", side)
	case faultAbductionLow:
		return fmt.Sprintf("Raise your %s arm slightly", side)
	case faultAbductionHigh:
		return fmt.Sprintf("Lower your %s arm slightly", side)
	default:
		return ""
	}
}

// bothMessage returns the combined instruction used when both arms carry the
// same fault.
func (f armFault) bothMessage() string {
	switch f {
	case faultArmSpread:
		return "Both arms: extend your arms out to the side"
	case faultArmTooLow:
		return "Both arms: raise your arms up to shoulder height"
	case faultArmTooHigh:
		return "Both arms: lower your arms down to shoulder height"
	case faultElbowBent:
		return "Both arms: straighten your elbows"
	case faultAbductionLow:
		return "Both arms: raise your arms slightly"
	case faultAbductionHigh:
		return "Both arms: lower your arms slightly"
	default:
		return ""
	}
}

// checkArm validates one arm against the reference pose and returns the
// highest-priority fault, or armOK when all four checks pass.
func checkArm(s *pose.Snapshot, m Metrics, ref Reference, side armSide) armFault {
	shoulderJ, elbowJ, wristJ, _ := side.joints()

	shoulder, _ := s.Location(shoulderJ)
	elbow, _ := s.Location(elbowJ)
	wrist, _ := s.Location(wristJ)

	armLength := geometry.Distance(shoulder, elbow) + geometry.Distance(elbow, wrist)
	if armLength == 0 {
		return faultArmSpread
	}

	spread := math.Abs(wrist.X-shoulder.X) / armLength
	vertical := (wrist.Y - shoulder.Y) / armLength

	elbowAngle := m.LeftElbowAngle
	abduction := m.LeftShoulderAngle
	if side == detectorRight {
		elbowAngle = m.RightElbowAngle
		abduction = m.RightShoulderAngle
	}

	switch {
	case spread < ref.MinArmSpread:
		return faultArmSpread
	case vertical > armLowRatio:
		return faultArmTooLow
	case vertical < armHighRatio:
		return faultArmTooHigh
	case elbowAngle < ref.ElbowTarget-ref.ElbowTolerance:
		return faultElbowBent
	case abduction < ref.ShoulderTarget-ref.ShoulderTolerance:
		return faultAbductionLow
	case abduction > ref.ShoulderTarget+ref.ShoulderTolerance:
		return faultAbductionHigh
	default:
		return armOK
	}
}
