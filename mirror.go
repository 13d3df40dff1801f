package posemirror

// MirrorConfig holds the parameters of the mirror transform.  OffsetX
// is the horizontal displacement of the mirrored skeleton in pixels and
// may be zero, positive or negative; negative values place the overlay
// to the left of the original.  FrameWidth and FrameHeight are the
// dimensions of the frame the pose was detected on.
type MirrorConfig struct {
	OffsetX     int
	FrameWidth  int
	FrameHeight int
}

// Mirror returns a new Pose reflected horizontally and displaced by the
// configured offset.  In pixel space the mapping for each landmark is
//
//	mirroredX = (frameWidth - x) + offsetX
//
// carried out in the normalized coordinate space the Pose contract
// requires, so Y, Z and Visibility pass through unchanged.  The input
// pose is never mutated and a nil pose mirrors to nil.
//
// Mirror does not clip: large offsets legitimately push landmarks
// outside [0,1] and off the visible frame.  Dropping those draws is the
// renderer's job.  Applying Mirror twice with the same offset restores
// the original x coordinates within floating point tolerance.
func Mirror(pose *Pose, cfg MirrorConfig) *Pose {
	if pose == nil {
		return nil
	}

	offset := float64(cfg.OffsetX) / float64(cfg.FrameWidth)

	out := *pose

	for i := range out {
		out[i].X = 1 - pose[i].X + offset
	}

	return &out
}
