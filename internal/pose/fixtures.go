package pose

import "github.com/JamesHardey/PoseDetect/internal/geometry"

// Fixture frame dimensions used by the preset snapshots.
const (
	FixtureWidth  = 640
	FixtureHeight = 480
)

func lm(x, y, conf float64) Landmark {
	return Landmark{Location: geometry.Point{X: x, Y: y}, Confidence: conf}
}

// FrontPoseJoints returns the joints of a correct front capture pose: arms
// abducted to roughly 90 degrees with straight elbows, legs straight, feet
// just over shoulder width apart. Tests tweak individual entries before
// building a snapshot.
func FrontPoseJoints() map[Joint]Landmark {
	return map[Joint]Landmark{
		Nose:          lm(320, 80, 0.95),
		LeftShoulder:  lm(260, 140, 0.9),
		RightShoulder: lm(380, 140, 0.9),
		LeftElbow:     lm(180, 150, 0.9),
		RightElbow:    lm(460, 150, 0.9),
		LeftWrist:     lm(100, 160, 0.9),
		RightWrist:    lm(540, 160, 0.9),
		LeftHip:       lm(280, 260, 0.9),
		RightHip:      lm(360, 260, 0.9),
		LeftKnee:      lm(285, 360, 0.9),
		RightKnee:     lm(355, 360, 0.9),
		LeftAnkle:     lm(270, 440, 0.9),
		RightAnkle:    lm(370, 440, 0.9),
	}
}

// FrontPoseSnapshot builds a mirrored 640x480 snapshot of the correct front
// pose.
func FrontPoseSnapshot() *Snapshot {
	return NewSnapshot(FixtureWidth, FixtureHeight, true, FrontPoseJoints())
}

// SidePoseJoints returns the joints of a correct side capture pose: the body
// turned 90 degrees so shoulders, wrists and ankles nearly overlap
// horizontally.
func SidePoseJoints() map[Joint]Landmark {
	return map[Joint]Landmark{
		Nose:          lm(330, 80, 0.95),
		LeftShoulder:  lm(318, 140, 0.9),
		RightShoulder: lm(330, 140, 0.9),
		LeftElbow:     lm(315, 210, 0.9),
		RightElbow:    lm(327, 210, 0.9),
		LeftWrist:     lm(310, 280, 0.9),
		RightWrist:    lm(324, 280, 0.9),
		LeftHip:       lm(318, 260, 0.9),
		RightHip:      lm(326, 260, 0.9),
		LeftKnee:      lm(320, 350, 0.9),
		RightKnee:     lm(328, 350, 0.9),
		LeftAnkle:     lm(322, 440, 0.9),
		RightAnkle:    lm(330, 440, 0.9),
	}
}

// SidePoseSnapshot builds a mirrored 640x480 snapshot of the correct side
// pose.
func SidePoseSnapshot() *Snapshot {
	return NewSnapshot(FixtureWidth, FixtureHeight, true, SidePoseJoints())
}
