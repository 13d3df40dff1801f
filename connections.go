package posemirror

// Connections defines the skeletal edges to draw lines between, as
// unordered pairs of landmark indices.  The graph matches the MediaPipe
// Pose topology and is shared by the renderer for both the original and
// the mirrored skeleton.
var Connections = [][2]int{
	// face
	{Nose, LeftEyeInner}, {LeftEyeInner, LeftEye}, {LeftEye, LeftEyeOuter},
	{LeftEyeOuter, LeftEar}, {Nose, RightEyeInner}, {RightEyeInner, RightEye},
	{RightEye, RightEyeOuter}, {RightEyeOuter, RightEar}, {MouthLeft, MouthRight},
	// arms
	{LeftShoulder, RightShoulder},
	{LeftShoulder, LeftElbow}, {LeftElbow, LeftWrist},
	{LeftWrist, LeftPinky}, {LeftWrist, LeftIndex}, {LeftWrist, LeftThumb},
	{LeftPinky, LeftIndex},
	{RightShoulder, RightElbow}, {RightElbow, RightWrist},
	{RightWrist, RightPinky}, {RightWrist, RightIndex}, {RightWrist, RightThumb},
	{RightPinky, RightIndex},
	// torso
	{LeftShoulder, LeftHip}, {RightShoulder, RightHip}, {LeftHip, RightHip},
	// legs
	{LeftHip, LeftKnee}, {RightHip, RightKnee},
	{LeftKnee, LeftAnkle}, {RightKnee, RightAnkle},
	{LeftAnkle, LeftHeel}, {RightAnkle, RightHeel},
	{LeftHeel, LeftFootIndex}, {RightHeel, RightFootIndex},
	{LeftAnkle, LeftFootIndex}, {RightAnkle, RightFootIndex},
}
