package posture

import "github.com/JamesHardey/PoseDetect/internal/pose"

// Confidence thresholds for the front-stage cascade.
const (
	// framingConfidence is required of the head and both ankles before any
	// posture detail is judged.
	framingConfidence = 0.4
	// skeletonConfidence is required of every core skeleton joint.
	skeletonConfidence = 0.3
)

// Front-stage feedback messages.
const (
	MsgStepIntoFrame  = "Please step into the camera frame"
	MsgHeadVisible    = "Move back so your head is visible"
	MsgFeetVisible    = "Move back so both feet are visible"
	MsgStepBack       = "Step back so your full body fits in the frame"
	MsgFullBody       = "Stand in front of the camera so your full body is visible"
	MsgPoseUnreadable = "Cannot read your pose. Make sure the area is well lit"
	MsgLegsStraight   = "Keep both legs straight"
	MsgFeetApart      = "Spread your feet shoulder-width apart"
	MsgHoldStill      = "Perfect! Hold still..."
)

// skeletonJoints are the joints the whole-body visibility check requires.
var skeletonJoints = []pose.Joint{
	pose.Nose,
	pose.LeftShoulder, pose.RightShoulder,
	pose.LeftElbow, pose.RightElbow,
	pose.LeftWrist, pose.RightWrist,
	pose.LeftHip, pose.RightHip,
	pose.LeftKnee, pose.RightKnee,
	pose.LeftAnkle, pose.RightAnkle,
}

// Result is the outcome of one front-stage evaluation: whether the pose is
// valid, exactly one human-readable feedback message, and per-joint guidance
// for the overlay.
type Result struct {
	Valid    bool                  `json:"is_valid"`
	Feedback string                `json:"feedback"`
	Guidance map[pose.Joint]string `json:"guidance,omitempty"`
	Metrics  *Metrics              `json:"metrics,omitempty"`
}

// Gate validates front-stage snapshots against a reference pose. Evaluation
// is pure: the same snapshot always yields the same result.
type Gate struct {
	ref Reference
}

// NewGate creates a gate for the given reference pose.
func NewGate(ref Reference) *Gate {
	return &Gate{ref: ref}
}

// Reference returns the gate's reference pose.
func (g *Gate) Reference() Reference {
	return g.ref
}

// SkeletonVisible reports whether every core skeleton joint exceeds the
// whole-body confidence threshold.
func SkeletonVisible(s *pose.Snapshot) bool {
	for _, j := range skeletonJoints {
		if s.Confidence(j) <= skeletonConfidence {
			return false
		}
	}
	return true
}

// Evaluate runs the front-stage validation cascade. Checks apply in strict
// priority order and short-circuit on the first failure, so exactly one
// feedback message is produced per call.
func (g *Gate) Evaluate(s *pose.Snapshot) Result {
	if res, ok := g.checkFraming(s); !ok {
		return res
	}

	if !SkeletonVisible(s) {
		return Result{Feedback: MsgFullBody}
	}

	metrics, ok := ComputeMetrics(s)
	if !ok {
		return Result{Feedback: MsgPoseUnreadable}
	}

	acc := CompareAccuracy(metrics, g.ref)
	if !acc.LeftHip || !acc.RightHip {
		return Result{
			Feedback: MsgLegsStraight,
			Guidance: tagJoints(MsgLegsStraight, pose.LeftHip, pose.RightHip, pose.LeftKnee, pose.RightKnee),
			Metrics:  &metrics,
		}
	}

	if separation, ok := FeetSeparation(s); !ok || separation < g.ref.MinFeetSeparation {
		return Result{
			Feedback: MsgFeetApart,
			Guidance: tagJoints(MsgFeetApart, pose.LeftAnkle, pose.RightAnkle),
			Metrics:  &metrics,
		}
	}

	if res, ok := g.checkArms(s, metrics); !ok {
		res.Metrics = &metrics
		return res
	}

	return Result{Valid: true, Feedback: MsgHoldStill, Metrics: &metrics}
}

// checkFraming verifies head and feet visibility before anything else. Foot
// failures are only attributed once general body presence is confirmed,
// since they are ambiguous without it.
func (g *Gate) checkFraming(s *pose.Snapshot) (Result, bool) {
	headOK := s.Confidence(pose.Nose) > framingConfidence
	leftFootOK := s.Confidence(pose.LeftAnkle) > framingConfidence
	rightFootOK := s.Confidence(pose.RightAnkle) > framingConfidence

	if headOK && leftFootOK && rightFootOK {
		return Result{}, true
	}

	kneesVisible := s.Confidence(pose.LeftKnee) > skeletonConfidence &&
		s.Confidence(pose.RightKnee) > skeletonConfidence

	switch {
	case !headOK && !leftFootOK && !rightFootOK:
		return Result{Feedback: MsgStepIntoFrame}, false
	case !headOK:
		return Result{Feedback: MsgHeadVisible}, false
	case kneesVisible:
		return Result{Feedback: MsgFeetVisible}, false
	default:
		return Result{Feedback: MsgStepBack}, false
	}
}

// checkArms validates both arms and applies the tie-break rule: identical
// faults collapse into one combined message, otherwise the detector-left arm
// (the user's anatomical right on a mirrored feed) wins.
func (g *Gate) checkArms(s *pose.Snapshot, m Metrics) (Result, bool) {
	leftFault := checkArm(s, m, g.ref, detectorLeft)
	rightFault := checkArm(s, m, g.ref, detectorRight)

	if leftFault == armOK && rightFault == armOK {
		return Result{}, true
	}

	guidance := make(map[pose.Joint]string)
	var feedback string

	switch {
	case leftFault != armOK && rightFault == leftFault:
		feedback = leftFault.bothMessage()
		tagArm(guidance, detectorLeft, leftFault.message(userSideName(detectorLeft, s.Mirrored())))
		tagArm(guidance, detectorRight, rightFault.message(userSideName(detectorRight, s.Mirrored())))
	case leftFault != armOK:
		feedback = leftFault.message(userSideName(detectorLeft, s.Mirrored()))
		tagArm(guidance, detectorLeft, feedback)
		if rightFault != armOK {
			tagArm(guidance, detectorRight, rightFault.message(userSideName(detectorRight, s.Mirrored())))
		}
	default:
		feedback = rightFault.message(userSideName(detectorRight, s.Mirrored()))
		tagArm(guidance, detectorRight, feedback)
	}

	return Result{Feedback: feedback, Guidance: guidance}, false
}

func tagArm(guidance map[pose.Joint]string, side armSide, message string) {
	shoulder, elbow, wrist, _ := side.joints()
	guidance[shoulder] = message
	guidance[elbow] = message
	guidance[wrist] = message
}

func tagJoints(message string, joints ...pose.Joint) map[pose.Joint]string {
	guidance := make(map[pose.Joint]string, len(joints))
	for _, j := range joints {
		guidance[j] = message
	}
	return guidance
}
