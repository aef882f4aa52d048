package pose

import (
	"math"
	"testing"
)

func TestNewSnapshot_ComputesNeck(t *testing.T) {
	s := NewSnapshot(640, 480, false, map[Joint]Landmark{
		LeftShoulder:  lm(100, 200, 0.8),
		RightShoulder: lm(300, 240, 0.6),
	})

	neck, ok := s.Get(Neck)
	if !ok {
		t.Fatal("expected neck to be computed when both shoulders are present")
	}

	if neck.Location.X != 200 || neck.Location.Y != 220 {
		t.Errorf("neck location = (%f, %f), want (200, 220)", neck.Location.X, neck.Location.Y)
	}

	// Confidence is the lower of the two shoulder confidences.
	if math.Abs(neck.Confidence-0.6) > 1e-9 {
		t.Errorf("neck confidence = %f, want 0.6", neck.Confidence)
	}
}

func TestNewSnapshot_NoNeckWithoutShoulders(t *testing.T) {
	s := NewSnapshot(640, 480, false, map[Joint]Landmark{
		LeftShoulder: lm(100, 200, 0.8),
	})

	if _, ok := s.Get(Neck); ok {
		t.Error("neck must not be computed with a single shoulder")
	}
}

func TestSnapshot_MissingJoint(t *testing.T) {
	s := NewSnapshot(640, 480, false, nil)

	if _, ok := s.Get(Nose); ok {
		t.Error("expected nose to be absent")
	}
	if s.Confidence(Nose) != 0 {
		t.Error("expected zero confidence for an absent joint")
	}
	if s.Usable(Nose, 0.1) {
		t.Error("absent joint must not be usable")
	}
}

func TestSnapshot_Usable(t *testing.T) {
	s := NewSnapshot(640, 480, false, map[Joint]Landmark{
		Nose: lm(320, 80, 0.4),
	})

	if !s.Usable(Nose, 0.4) {
		t.Error("joint at exactly the threshold must be usable")
	}
	if s.Usable(Nose, 0.5) {
		t.Error("joint below the threshold must not be usable")
	}
}

func TestSnapshot_InFrame(t *testing.T) {
	s := NewSnapshot(640, 480, false, map[Joint]Landmark{
		LeftAnkle:  lm(320, 470, 0.9),
		RightAnkle: lm(700, 470, 0.9),
	})

	if !s.InFrame(LeftAnkle) {
		t.Error("left ankle should be inside the frame")
	}
	if s.InFrame(RightAnkle) {
		t.Error("right ankle at x=700 should be outside a 640 wide frame")
	}
	if s.InFrame(Nose) {
		t.Error("absent joint cannot be in frame")
	}
}

func TestJointString(t *testing.T) {
	if Nose.String() != "nose" {
		t.Errorf("Nose.String() = %q", Nose.String())
	}
	if Neck.String() != "neck" {
		t.Errorf("Neck.String() = %q", Neck.String())
	}
	if Joint(-1).String() != "unknown" {
		t.Errorf("Joint(-1).String() = %q", Joint(-1).String())
	}
}
