package posture

import "math"

// Accuracy holds the per-joint-group comparison of one metrics set against
// the reference pose.
type Accuracy struct {
	LeftShoulder  bool `json:"left_shoulder"`
	RightShoulder bool `json:"right_shoulder"`
	LeftElbow     bool `json:"left_elbow"`
	RightElbow    bool `json:"right_elbow"`
	Spine         bool `json:"spine"`
	LeftHip       bool `json:"left_hip"`
	RightHip      bool `json:"right_hip"`
}

// CompareAccuracy checks each metric against the reference. Every check is
// |metric - target| <= tolerance except the spine, which only needs the
// upper bound since the tilt is non-negative by construction.
func CompareAccuracy(m Metrics, ref Reference) Accuracy {
	return Accuracy{
		LeftShoulder:  withinTolerance(m.LeftShoulderAngle, ref.ShoulderTarget, ref.ShoulderTolerance),
		RightShoulder: withinTolerance(m.RightShoulderAngle, ref.ShoulderTarget, ref.ShoulderTolerance),
		LeftElbow:     withinTolerance(m.LeftElbowAngle, ref.ElbowTarget, ref.ElbowTolerance),
		RightElbow:    withinTolerance(m.RightElbowAngle, ref.ElbowTarget, ref.ElbowTolerance),
		Spine:         m.SpineAngle <= ref.SpineTolerance,
		LeftHip:       withinTolerance(m.LeftHipAngle, ref.HipTarget, ref.HipTolerance),
		RightHip:      withinTolerance(m.RightHipAngle, ref.HipTarget, ref.HipTolerance),
	}
}

func withinTolerance(metric, target, tolerance float64) bool {
	return math.Abs(metric-target) <= tolerance
}
