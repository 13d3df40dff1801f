package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Font defines the parameters for rendering overlay text on an image
type Font struct {
	Face      gocv.HersheyFont
	Scale     float64
	Color     color.RGBA
	Thickness int
	LineType  gocv.LineType
	// Padding to place around text
	LeftPad   int
	RightPad  int
	TopPad    int
	BottomPad int
}

// DefaultFont returns default font settings
func DefaultFont() Font {
	return Font{
		Face:      gocv.FontHersheySimplex,
		Scale:     0.5,
		Color:     White,
		Thickness: 1,
		LineType:  gocv.LineAA,
		LeftPad:   4,
		RightPad:  4,
		TopPad:    4,
		BottomPad: 6,
	}
}

// Status draws a line of overlay text at the top left of the image on a
// filled background box so it stays readable over video content.  Used
// by the stream driver for the FPS counter and the pass-through
// indicator.
func Status(img *gocv.Mat, text string, font Font) {

	textSize := gocv.GetTextSize(text, font.Face, font.Scale, font.Thickness)

	boxHeight := textSize.Y + font.TopPad + font.BottomPad

	// box text gets written on
	bRect := image.Rect(0, 0, textSize.X+font.LeftPad+font.RightPad, boxHeight)
	gocv.Rectangle(img, bRect, Black, -1)

	textPos := image.Pt(font.LeftPad, boxHeight-font.BottomPad)

	gocv.PutTextWithParams(img, text, textPos,
		font.Face, font.Scale, font.Color, font.Thickness,
		font.LineType, false)
}
