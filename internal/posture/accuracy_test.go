package posture

import "testing"

func TestCompareAccuracy_AllWithinTolerance(t *testing.T) {
	ref := DefaultReference()
	m := Metrics{
		LeftShoulderAngle:  85,
		RightShoulderAngle: 95,
		LeftElbowAngle:     175,
		RightElbowAngle:    165,
		SpineAngle:         5,
		LeftHipAngle:       178,
		RightHipAngle:      182,
	}

	acc := CompareAccuracy(m, ref)
	if acc != (Accuracy{true, true, true, true, true, true, true}) {
		t.Errorf("expected all accurate, got %+v", acc)
	}
}

func TestCompareAccuracy_BoundaryInclusive(t *testing.T) {
	ref := DefaultReference()

	// Exactly at tolerance counts as accurate.
	m := Metrics{
		LeftShoulderAngle:  ref.ShoulderTarget - ref.ShoulderTolerance,
		RightShoulderAngle: ref.ShoulderTarget + ref.ShoulderTolerance,
		LeftElbowAngle:     ref.ElbowTarget - ref.ElbowTolerance,
		RightElbowAngle:    ref.ElbowTarget,
		SpineAngle:         ref.SpineTolerance,
		LeftHipAngle:       ref.HipTarget - ref.HipTolerance,
		RightHipAngle:      ref.HipTarget + ref.HipTolerance,
	}

	acc := CompareAccuracy(m, ref)
	if acc != (Accuracy{true, true, true, true, true, true, true}) {
		t.Errorf("boundary values must pass, got %+v", acc)
	}
}

func TestCompareAccuracy_SpineOneSided(t *testing.T) {
	ref := DefaultReference()

	m := Metrics{SpineAngle: ref.SpineTolerance + 0.1}
	if CompareAccuracy(m, ref).Spine {
		t.Error("spine tilt above the tolerance must fail")
	}

	// A perfectly vertical spine passes: the check has no lower bound.
	m.SpineAngle = 0
	if !CompareAccuracy(m, ref).Spine {
		t.Error("zero spine tilt must pass")
	}
}

func TestCompareAccuracy_PerSideIndependent(t *testing.T) {
	ref := DefaultReference()
	m := Metrics{
		LeftShoulderAngle:  90,
		RightShoulderAngle: 140, // out of tolerance
		LeftElbowAngle:     180,
		RightElbowAngle:    120, // out of tolerance
		LeftHipAngle:       180,
		RightHipAngle:      150, // out of tolerance
	}

	acc := CompareAccuracy(m, ref)
	if !acc.LeftShoulder || acc.RightShoulder {
		t.Errorf("shoulder accuracy wrong: %+v", acc)
	}
	if !acc.LeftElbow || acc.RightElbow {
		t.Errorf("elbow accuracy wrong: %+v", acc)
	}
	if !acc.LeftHip || acc.RightHip {
		t.Errorf("hip accuracy wrong: %+v", acc)
	}
}
