package posture

import (
	"math"
	"testing"

	"github.com/JamesHardey/PoseDetect/internal/pose"
)

func TestComputeMetrics_FrontPose(t *testing.T) {
	m, ok := ComputeMetrics(pose.FrontPoseSnapshot())
	if !ok {
		t.Fatal("expected metrics to be available for the front pose fixture")
	}

	if math.Abs(m.LeftElbowAngle-180) > 1 {
		t.Errorf("left elbow angle = %f, want ~180", m.LeftElbowAngle)
	}
	if math.Abs(m.RightElbowAngle-180) > 1 {
		t.Errorf("right elbow angle = %f, want ~180", m.RightElbowAngle)
	}
	if math.Abs(m.LeftHipAngle-180) > 15 {
		t.Errorf("left hip angle = %f, want within 15 of 180", m.LeftHipAngle)
	}
	if math.Abs(m.RightHipAngle-180) > 15 {
		t.Errorf("right hip angle = %f, want within 15 of 180", m.RightHipAngle)
	}
	if m.SpineAngle > 1 {
		t.Errorf("spine tilt = %f, want ~0 for an upright fixture", m.SpineAngle)
	}
	if m.ShoulderLevelDiff > 1e-9 {
		t.Errorf("shoulder level diff = %f, want 0", m.ShoulderLevelDiff)
	}

	// Abduction close to 90 degrees on both sides.
	if math.Abs(m.LeftShoulderAngle-90) > 20 {
		t.Errorf("left shoulder angle = %f, want within 20 of 90", m.LeftShoulderAngle)
	}
	if math.Abs(m.RightShoulderAngle-90) > 20 {
		t.Errorf("right shoulder angle = %f, want within 20 of 90", m.RightShoulderAngle)
	}
}

func TestComputeMetrics_MissingJointUnavailable(t *testing.T) {
	required := []pose.Joint{
		pose.LeftShoulder, pose.RightShoulder,
		pose.LeftElbow, pose.RightElbow,
		pose.LeftWrist, pose.RightWrist,
		pose.LeftHip, pose.RightHip,
		pose.LeftKnee, pose.RightKnee,
	}

	for _, missing := range required {
		joints := pose.FrontPoseJoints()
		delete(joints, missing)

		s := pose.NewSnapshot(pose.FixtureWidth, pose.FixtureHeight, true, joints)
		if _, ok := ComputeMetrics(s); ok {
			t.Errorf("expected no metrics with %s missing", missing)
		}
	}
}

func TestComputeMetrics_EmptySnapshot(t *testing.T) {
	s := pose.NewSnapshot(pose.FixtureWidth, pose.FixtureHeight, true, nil)
	if _, ok := ComputeMetrics(s); ok {
		t.Error("expected no metrics for an empty snapshot")
	}
}

func TestFeetSeparation(t *testing.T) {
	sep, ok := FeetSeparation(pose.FrontPoseSnapshot())
	if !ok {
		t.Fatal("expected feet separation for the front pose fixture")
	}

	// Fixture ankles are 100px apart on a 640px frame.
	if math.Abs(sep-100.0/640.0) > 1e-9 {
		t.Errorf("feet separation = %f, want %f", sep, 100.0/640.0)
	}

	joints := pose.FrontPoseJoints()
	delete(joints, pose.LeftAnkle)
	s := pose.NewSnapshot(pose.FixtureWidth, pose.FixtureHeight, true, joints)
	if _, ok := FeetSeparation(s); ok {
		t.Error("expected no feet separation without both ankles")
	}
}
