// Package pose defines the body landmark model produced by the pose detector.
package pose

import "github.com/JamesHardey/PoseDetect/internal/geometry"

// Joint identifies one named body landmark.
type Joint int

// Body landmark indices following the MediaPipe BlazePose convention.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
const (
	Nose Joint = iota
	LeftEyeInner
	LeftEye
	LeftEyeOuter
	RightEyeInner
	RightEye
	RightEyeOuter
	LeftEar
	RightEar
	MouthLeft
	MouthRight
	LeftShoulder
	RightShoulder
	LeftElbow
	RightElbow
	LeftWrist
	RightWrist
	LeftPinky
	RightPinky
	LeftIndex
	RightIndex
	LeftThumb
	RightThumb
	LeftHip
	RightHip
	LeftKnee
	RightKnee
	LeftAnkle
	RightAnkle
	LeftHeel
	RightHeel
	LeftFootIndex
	RightFootIndex

	// Neck is a computed joint: the midpoint of the two shoulders with
	// confidence equal to the lower of the two shoulder confidences. It is
	// never part of the detector output.
	Neck

	// NumJoints is the total number of joints including the computed neck.
	NumJoints
)

// NumDetectedJoints is the number of joints the detector reports (Neck excluded).
const NumDetectedJoints = int(Neck)

var jointNames = [NumJoints]string{
	Nose:           "nose",
	LeftEyeInner:   "left_eye_inner",
	LeftEye:        "left_eye",
	LeftEyeOuter:   "left_eye_outer",
	RightEyeInner:  "right_eye_inner",
	RightEye:       "right_eye",
	RightEyeOuter:  "right_eye_outer",
	LeftEar:        "left_ear",
	RightEar:       "right_ear",
	MouthLeft:      "mouth_left",
	MouthRight:     "mouth_right",
	LeftShoulder:   "left_shoulder",
	RightShoulder:  "right_shoulder",
	LeftElbow:      "left_elbow",
	RightElbow:     "right_elbow",
	LeftWrist:      "left_wrist",
	RightWrist:     "right_wrist",
	LeftPinky:      "left_pinky",
	RightPinky:     "right_pinky",
	LeftIndex:      "left_index",
	RightIndex:     "right_index",
	LeftThumb:      "left_thumb",
	RightThumb:     "right_thumb",
	LeftHip:        "left_hip",
	RightHip:       "right_hip",
	LeftKnee:       "left_knee",
	RightKnee:      "right_knee",
	LeftAnkle:      "left_ankle",
	RightAnkle:     "right_ankle",
	LeftHeel:       "left_heel",
	RightHeel:      "right_heel",
	LeftFootIndex:  "left_foot_index",
	RightFootIndex: "right_foot_index",
	Neck:           "neck",
}

// String returns the snake_case name of the joint.
func (j Joint) String() string {
	if j < 0 || j >= NumJoints {
		return "unknown"
	}
	return jointNames[j]
}

// Landmark is one detected joint location with its detection confidence.
type Landmark struct {
	Location   geometry.Point `json:"location"`
	Confidence float64        `json:"confidence"`
}

// Snapshot is one frame's full set of detected joints. A snapshot is
// immutable once built; each processed frame produces a new one.
type Snapshot struct {
	joints   [NumJoints]Landmark
	present  [NumJoints]bool
	width    int
	height   int
	mirrored bool
}

// NewSnapshot builds a snapshot from the detected joints of a frame with the
// given dimensions. The mirrored flag records whether the frame is a
// horizontally mirrored (selfie) feed. The computed neck joint is derived
// here when both shoulders are present.
func NewSnapshot(width, height int, mirrored bool, joints map[Joint]Landmark) *Snapshot {
	s := &Snapshot{
		width:    width,
		height:   height,
		mirrored: mirrored,
	}

	for j, lm := range joints {
		if j < 0 || j >= Neck {
			continue
		}
		s.joints[j] = lm
		s.present[j] = true
	}

	if s.present[LeftShoulder] && s.present[RightShoulder] {
		left := s.joints[LeftShoulder]
		right := s.joints[RightShoulder]

		conf := left.Confidence
		if right.Confidence < conf {
			conf = right.Confidence
		}

		s.joints[Neck] = Landmark{
			Location:   geometry.Midpoint(left.Location, right.Location),
			Confidence: conf,
		}
		s.present[Neck] = true
	}

	return s
}

// Get returns the landmark for a joint and whether it was detected.
func (s *Snapshot) Get(j Joint) (Landmark, bool) {
	if j < 0 || j >= NumJoints || !s.present[j] {
		return Landmark{}, false
	}
	return s.joints[j], true
}

// Location returns the joint position. The second return value is false when
// the joint was not detected.
func (s *Snapshot) Location(j Joint) (geometry.Point, bool) {
	lm, ok := s.Get(j)
	return lm.Location, ok
}

// Confidence returns the joint's detection confidence, or 0 when the joint
// was not detected.
func (s *Snapshot) Confidence(j Joint) float64 {
	lm, ok := s.Get(j)
	if !ok {
		return 0
	}
	return lm.Confidence
}

// Usable reports whether the joint was detected with at least minConfidence.
func (s *Snapshot) Usable(j Joint, minConfidence float64) bool {
	lm, ok := s.Get(j)
	return ok && lm.Confidence >= minConfidence
}

// Width returns the frame width in pixels.
func (s *Snapshot) Width() int { return s.width }

// Height returns the frame height in pixels.
func (s *Snapshot) Height() int { return s.height }

// Mirrored reports whether the frame comes from a horizontally mirrored feed.
func (s *Snapshot) Mirrored() bool { return s.mirrored }

// InFrame reports whether the joint position lies within the frame bounds.
func (s *Snapshot) InFrame(j Joint) bool {
	p, ok := s.Location(j)
	if !ok {
		return false
	}
	return p.X >= 0 && p.X <= float64(s.width) && p.Y >= 0 && p.Y <= float64(s.height)
}
