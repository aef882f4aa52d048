package posture

// Reference defines the target pose: the angle targets and tolerances a
// correct front pose must satisfy. It is read-only at runtime; overrides are
// loaded once at startup.
type Reference struct {
	// Shoulder abduction: angle between torso and upper arm.
	ShoulderTarget    float64 `json:"shoulder_target"`
	ShoulderTolerance float64 `json:"shoulder_tolerance"`

	// Elbow straightness. Only "too bent" is penalized during the per-arm
	// check, so the lower bound ElbowTarget-ElbowTolerance is what matters
	// there.
	ElbowTarget    float64 `json:"elbow_target"`
	ElbowTolerance float64 `json:"elbow_tolerance"`

	// Spine verticality: upper bound on the tilt from vertical.
	SpineTolerance float64 `json:"spine_tolerance"`

	// Hip straightness: shoulder-hip-knee angle.
	HipTarget    float64 `json:"hip_target"`
	HipTolerance float64 `json:"hip_tolerance"`

	// Shoulder level: upper bound on the vertical shoulder offset as a
	// fraction of frame height.
	ShoulderLevelTolerance float64 `json:"shoulder_level_tolerance"`

	// Leg separation: knee-hipcenter-knee angle.
	LegSeparationTarget    float64 `json:"leg_separation_target"`
	LegSeparationTolerance float64 `json:"leg_separation_tolerance"`

	// MinArmSpread is the minimum lateral wrist offset from the shoulder as
	// a fraction of arm length.
	MinArmSpread float64 `json:"min_arm_spread"`

	// MinFeetSeparation is the minimum ankle-to-ankle distance as a fraction
	// of frame width.
	MinFeetSeparation float64 `json:"min_feet_separation"`
}

// DefaultReference returns the built-in target pose: arms abducted to
// roughly 90 degrees with straight elbows, upright spine, straight legs,
// feet just over shoulder width apart.
func DefaultReference() Reference {
	return Reference{
		ShoulderTarget:         90,
		ShoulderTolerance:      20,
		ElbowTarget:            180,
		ElbowTolerance:         20,
		SpineTolerance:         15,
		HipTarget:              180,
		HipTolerance:           15,
		ShoulderLevelTolerance: 0.05,
		LegSeparationTarget:    30,
		LegSeparationTolerance: 20,
		MinArmSpread:           0.55,
		MinFeetSeparation:      0.15,
	}
}
