package posemirror

// Landmark index constants following the MediaPipe Pose convention.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
const (
	Nose           = 0
	LeftEyeInner   = 1
	LeftEye        = 2
	LeftEyeOuter   = 3
	RightEyeInner  = 4
	RightEye       = 5
	RightEyeOuter  = 6
	LeftEar        = 7
	RightEar       = 8
	MouthLeft      = 9
	MouthRight     = 10
	LeftShoulder   = 11
	RightShoulder  = 12
	LeftElbow      = 13
	RightElbow     = 14
	LeftWrist      = 15
	RightWrist     = 16
	LeftPinky      = 17
	RightPinky     = 18
	LeftIndex      = 19
	RightIndex     = 20
	LeftThumb      = 21
	RightThumb     = 22
	LeftHip        = 23
	RightHip       = 24
	LeftKnee       = 25
	RightKnee      = 26
	LeftAnkle      = 27
	RightAnkle     = 28
	LeftHeel       = 29
	RightHeel      = 30
	LeftFootIndex  = 31
	RightFootIndex = 32
	NumLandmarks   = 33
)

// MinVisibility is the minimum visibility score a landmark requires
// before it is rendered.  Landmarks below this threshold are an
// expected occlusion condition and are skipped silently.
const MinVisibility = 0.5

// Landmark is a single detected body keypoint.  X and Y are normalized
// to the frame width and height respectively, nominally in [0,1] though
// detectors may extrapolate slightly outside that range.  Z is relative
// depth and is carried through unscaled.  Visibility is the detector's
// confidence the point is present and unoccluded, in [0,1].
type Landmark struct {
	X          float64
	Y          float64
	Z          float64
	Visibility float64
}

// Visible reports whether the landmark meets the render confidence
// threshold.
func (l Landmark) Visible() bool {
	return l.Visibility >= MinVisibility
}

// Pose is the full ordered set of body landmarks for one detected
// person in one frame, indexed by the landmark constants above.  The
// index to body part mapping is fixed and shared by every component.
//
// Pose coordinates are always normalized to the frame dimensions.  The
// mirror transform operates in this normalized space and only the
// skeleton renderer converts to pixel coordinates, against the actual
// size of the buffer it draws on.  A missing detection is represented
// as a nil *Pose, never as a zero filled one.
type Pose [NumLandmarks]Landmark
