package render

import (
	"image"
	"image/color"

	"github.com/dancekit/go-posemirror"
	"gocv.io/x/gocv"
)

// Style defines the visual parameters for rendering one skeleton.  It
// is immutable per render call; the original and mirrored skeletons may
// use different styles.
type Style struct {
	// PointRadius is the radius of landmark circles in pixels
	PointRadius int
	// LineThickness is the thickness of connection lines in pixels
	LineThickness int
	// PointColor is the flat color for landmark circles
	PointColor color.RGBA
	// LineColor is the flat color for connection lines
	LineColor color.RGBA
	// Palette switches from the flat colors to the per joint/limb pose
	// palette, which colors left and right limbs differently
	Palette bool
}

// DefaultStyle returns the style used for the original (non mirrored)
// skeleton, drawn with the pose palette.
func DefaultStyle() Style {
	return Style{
		PointRadius:   3,
		LineThickness: 2,
		PointColor:    Pink,
		LineColor:     White,
		Palette:       true,
	}
}

// MirroredStyle returns the style used for the mirrored skeleton.  It
// deliberately uses flat colors distinct from the pose palette so the
// two skeletons stay distinguishable when a small or negative offset
// makes them overlap.
func MirroredStyle() Style {
	return Style{
		PointRadius:   3,
		LineThickness: 2,
		PointColor:    Yellow,
		LineColor:     Cyan,
	}
}

// Skeleton draws the pose's joints and connecting limb lines onto img
// in place.  Landmarks below the visibility threshold produce no circle
// and suppress both lines incident to them; this is the normal
// occlusion case, not an error.  Coordinates outside the image bounds
// are clipped by the underlying draw primitives, so an entirely
// off-screen skeleton leaves img untouched.
//
// The conns graph uses the same landmark indices as the pose; both
// renders of a frame share one graph.
func Skeleton(img *gocv.Mat, pose *posemirror.Pose, conns [][2]int, style Style) {

	if pose == nil {
		return
	}

	w := img.Cols()
	h := img.Rows()

	// draw limb lines first so joints sit on top of them
	for i, c := range conns {

		a := pose[c[0]]
		b := pose[c[1]]

		if !a.Visible() || !b.Visible() {
			continue
		}

		clr := style.LineColor
		if style.Palette {
			clr = limbColors[i%len(limbColors)]
		}

		gocv.Line(img, pixelPoint(a, w, h), pixelPoint(b, w, h),
			clr, style.LineThickness)
	}

	// draw circles at the skeleton joints
	for i := range pose {

		lm := pose[i]

		if !lm.Visible() {
			continue
		}

		clr := style.PointColor
		if style.Palette {
			clr = jointColors[i%len(jointColors)]
		}

		gocv.Circle(img, pixelPoint(lm, w, h), style.PointRadius, clr, -1)
	}
}

// pixelPoint converts a landmark's normalized coordinates to pixel
// coordinates on a w by h buffer.  Truncation matches the detector
// convention for landmark placement.
func pixelPoint(lm posemirror.Landmark, w, h int) image.Point {
	return image.Pt(int(lm.X*float64(w)), int(lm.Y*float64(h)))
}
