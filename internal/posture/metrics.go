// Package posture derives posture metrics from landmark snapshots and
// validates them against a reference pose.
package posture

import (
	"math"

	"github.com/JamesHardey/PoseDetect/internal/geometry"
	"github.com/JamesHardey/PoseDetect/internal/pose"
)

// requiredJoints are the joints the metrics computation cannot do without.
// This is a hard precondition: a snapshot missing any of them yields no
// metrics at all.
var requiredJoints = []pose.Joint{
	pose.LeftShoulder, pose.RightShoulder,
	pose.LeftElbow, pose.RightElbow,
	pose.LeftWrist, pose.RightWrist,
	pose.LeftHip, pose.RightHip,
	pose.LeftKnee, pose.RightKnee,
	pose.Neck,
}

// Metrics holds the scalar posture values derived from one snapshot. Angles
// are in degrees. ShoulderLevelDiff is a fraction of the frame height and
// FeetSeparation a fraction of the frame width, so both are
// resolution-independent.
type Metrics struct {
	LeftShoulderAngle  float64 `json:"left_shoulder_angle"`
	RightShoulderAngle float64 `json:"right_shoulder_angle"`
	LeftElbowAngle     float64 `json:"left_elbow_angle"`
	RightElbowAngle    float64 `json:"right_elbow_angle"`
	SpineAngle         float64 `json:"spine_angle"`
	LeftHipAngle       float64 `json:"left_hip_angle"`
	RightHipAngle      float64 `json:"right_hip_angle"`
	ShoulderLevelDiff  float64 `json:"shoulder_level_diff"`
	LegSeparationAngle float64 `json:"leg_separation_angle"`
}

// ComputeMetrics derives the posture metrics from a snapshot. The second
// return value is false when any required joint is missing; in that case no
// metrics are available.
func ComputeMetrics(s *pose.Snapshot) (Metrics, bool) {
	for _, j := range requiredJoints {
		if _, ok := s.Get(j); !ok {
			return Metrics{}, false
		}
	}

	leftShoulder, _ := s.Location(pose.LeftShoulder)
	rightShoulder, _ := s.Location(pose.RightShoulder)
	leftElbow, _ := s.Location(pose.LeftElbow)
	rightElbow, _ := s.Location(pose.RightElbow)
	leftWrist, _ := s.Location(pose.LeftWrist)
	rightWrist, _ := s.Location(pose.RightWrist)
	leftHip, _ := s.Location(pose.LeftHip)
	rightHip, _ := s.Location(pose.RightHip)
	leftKnee, _ := s.Location(pose.LeftKnee)
	rightKnee, _ := s.Location(pose.RightKnee)
	neck, _ := s.Location(pose.Neck)

	hipCenter := geometry.Midpoint(leftHip, rightHip)

	m := Metrics{
		// Abduction: angle at the shoulder between the same-side hip and elbow.
		LeftShoulderAngle:  geometry.AngleDeg(leftHip, leftShoulder, leftElbow),
		RightShoulderAngle: geometry.AngleDeg(rightHip, rightShoulder, rightElbow),

		// Straightness: angle at the elbow between the shoulder and the wrist.
		LeftElbowAngle:  geometry.AngleDeg(leftShoulder, leftElbow, leftWrist),
		RightElbowAngle: geometry.AngleDeg(rightShoulder, rightElbow, rightWrist),

		SpineAngle: spineTilt(neck, hipCenter),

		// Straightness: angle at the hip between the shoulder and the knee.
		LeftHipAngle:  geometry.AngleDeg(leftShoulder, leftHip, leftKnee),
		RightHipAngle: geometry.AngleDeg(rightShoulder, rightHip, rightKnee),

		ShoulderLevelDiff:  math.Abs(leftShoulder.Y-rightShoulder.Y) / float64(s.Height()),
		LegSeparationAngle: geometry.AngleDeg(leftKnee, hipCenter, rightKnee),
	}

	return m, true
}

// spineTilt is the deviation of the neck→hip-center line from vertical, in
// degrees. An upright spine yields 0.
func spineTilt(neck, hipCenter geometry.Point) float64 {
	dx := math.Abs(hipCenter.X - neck.X)
	dy := math.Abs(hipCenter.Y - neck.Y)
	return math.Atan2(dx, dy) * 180 / math.Pi
}

// FeetSeparation returns the horizontal ankle-to-ankle distance as a
// fraction of the frame width. The second return value is false when either
// ankle is missing.
func FeetSeparation(s *pose.Snapshot) (float64, bool) {
	left, okL := s.Location(pose.LeftAnkle)
	right, okR := s.Location(pose.RightAnkle)
	if !okL || !okR || s.Width() == 0 {
		return 0, false
	}
	return math.Abs(left.X-right.X) / float64(s.Width()), true
}
