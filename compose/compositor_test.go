package compose

import (
	"bytes"
	"errors"
	"image/color"
	"testing"

	"github.com/dancekit/go-posemirror"
	"github.com/dancekit/go-posemirror/render"
	"gocv.io/x/gocv"
)

// fakeDetector returns a fixed pose, or nil, or an error
type fakeDetector struct {
	pose *posemirror.Pose
	err  error
}

func (f *fakeDetector) Detect(frame gocv.Mat) (*posemirror.Pose, error) {
	return f.pose, f.err
}

func (f *fakeDetector) Close() error { return nil }

// testFrame returns a 640x480 frame with non-zero content so
// pass-through comparisons are meaningful
func testFrame() gocv.Mat {
	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(90, 120, 60, 0),
		480, 640, gocv.MatTypeCV8UC3)
	return img
}

func flatStyle(point, line color.RGBA) render.Style {
	return render.Style{
		PointRadius:   3,
		LineThickness: 2,
		PointColor:    point,
		LineColor:     line,
	}
}

func TestCompositePassThroughOnNoPose(t *testing.T) {

	src := testFrame()
	defer src.Close()

	c := New(&fakeDetector{}, 150, render.DefaultStyle(), render.MirroredStyle())

	out, detected, err := c.Composite(src)
	defer out.Close()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if detected {
		t.Error("detected = true with no pose")
	}

	if !bytes.Equal(out.ToBytes(), src.ToBytes()) {
		t.Error("pass-through output is not byte identical to source frame")
	}
}

func TestCompositeTenEmptyFramesVerbatim(t *testing.T) {

	c := New(&fakeDetector{}, 150, render.DefaultStyle(), render.MirroredStyle())

	for i := 0; i < 10; i++ {
		src := testFrame()

		out, _, err := c.Composite(src)

		if err != nil {
			t.Fatalf("frame %d: unexpected error: %v", i, err)
		}

		if !bytes.Equal(out.ToBytes(), src.ToBytes()) {
			t.Errorf("frame %d: output differs from source", i)
		}

		out.Close()
		src.Close()
	}
}

func TestCompositeDrawsBothSkeletons(t *testing.T) {

	src := testFrame()
	defer src.Close()

	pose := &posemirror.Pose{}
	pose[posemirror.Nose] = posemirror.Landmark{X: 0.5, Y: 0.5, Visibility: 1.0}

	origPoint := color.RGBA{R: 255, A: 255}
	mirrPoint := color.RGBA{B: 255, A: 255}

	c := New(&fakeDetector{pose: pose}, 150,
		flatStyle(origPoint, color.RGBA{G: 255, A: 255}),
		flatStyle(mirrPoint, color.RGBA{G: 128, A: 255}))

	out, detected, err := c.Composite(src)
	defer out.Close()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !detected {
		t.Fatal("detected = false with a pose present")
	}

	// original nose circle at (320,240), mirrored at (640-320)+150 = 470
	origVec := out.GetVecbAt(240, 320)
	if origVec[2] != origPoint.R || origVec[1] != origPoint.G || origVec[0] != origPoint.B {
		t.Errorf("original skeleton not drawn at (320,240), got %v", origVec)
	}

	mirrVec := out.GetVecbAt(240, 470)
	if mirrVec[2] != mirrPoint.R || mirrVec[1] != mirrPoint.G || mirrVec[0] != mirrPoint.B {
		t.Errorf("mirrored skeleton not drawn at (470,240), got %v", mirrVec)
	}

	// source frame itself must be untouched
	clean := testFrame()
	defer clean.Close()

	if !bytes.Equal(src.ToBytes(), clean.ToBytes()) {
		t.Error("source frame was mutated by Composite")
	}
}

func TestCompositeOffscreenMirrorLeavesBaseUnchanged(t *testing.T) {

	src := testFrame()
	defer src.Close()

	pose := &posemirror.Pose{}
	pose[posemirror.Nose] = posemirror.Landmark{X: 0.5, Y: 0.5, Visibility: 1.0}

	// offset of -frameWidth pushes the mirrored skeleton fully off the
	// left edge; only the original skeleton may appear
	c := New(&fakeDetector{pose: pose}, -640,
		flatStyle(color.RGBA{R: 255, A: 255}, color.RGBA{G: 255, A: 255}),
		flatStyle(color.RGBA{B: 255, A: 255}, color.RGBA{G: 128, A: 255}))

	out, _, err := c.Composite(src)
	defer out.Close()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// render only the original onto a reference copy and compare: the
	// mirrored contribution must be a no-op
	ref := src.Clone()
	defer ref.Close()

	render.Skeleton(&ref, pose, posemirror.Connections,
		flatStyle(color.RGBA{R: 255, A: 255}, color.RGBA{G: 255, A: 255}))

	if !bytes.Equal(out.ToBytes(), ref.ToBytes()) {
		t.Error("off-screen mirrored skeleton changed the output buffer")
	}
}

func TestCompositeDetectorErrorStillReturnsFrame(t *testing.T) {

	src := testFrame()
	defer src.Close()

	detErr := errors.New("landmark service unreachable")

	c := New(&fakeDetector{err: detErr}, 150, render.DefaultStyle(), render.MirroredStyle())

	out, detected, err := c.Composite(src)
	defer out.Close()

	if !errors.Is(err, detErr) {
		t.Errorf("error = %v, want wrapped %v", err, detErr)
	}

	if detected {
		t.Error("detected = true on detector error")
	}

	if !bytes.Equal(out.ToBytes(), src.ToBytes()) {
		t.Error("errored frame is not a clean pass-through of the source")
	}
}
