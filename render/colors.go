package render

import "image/color"

var (
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow = color.RGBA{R: 255, G: 255, B: 50, A: 255}
	Pink   = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	Cyan   = color.RGBA{R: 0, G: 255, B: 255, A: 255}

	// posePalette are the base colors used for the skeleton/pose
	posePalette = []color.RGBA{
		{R: 255, G: 128, B: 0, A: 255},
		{R: 255, G: 153, B: 51, A: 255},
		{R: 255, G: 178, B: 102, A: 255},
		{R: 230, G: 230, B: 0, A: 255},
		{R: 255, G: 153, B: 255, A: 255},
		{R: 153, G: 204, B: 255, A: 255},
		{R: 255, G: 102, B: 255, A: 255},
		{R: 255, G: 51, B: 255, A: 255},
		{R: 102, G: 178, B: 255, A: 255},
		{R: 51, G: 153, B: 255, A: 255},
		{R: 255, G: 153, B: 153, A: 255},
		{R: 255, G: 102, B: 102, A: 255},
		{R: 255, G: 51, B: 51, A: 255},
		{R: 153, G: 255, B: 153, A: 255},
		{R: 102, G: 255, B: 102, A: 255},
		{R: 51, G: 255, B: 51, A: 255},
		{R: 0, G: 255, B: 0, A: 255},
		{R: 0, G: 0, B: 255, A: 255},
		{R: 255, G: 0, B: 0, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
	}

	// jointColors correspond to the 33 pose landmarks: face landmarks
	// share one color, left side joints another and right side joints
	// a third so handedness stays readable in the overlay
	jointColors = []color.RGBA{
		// face 0-10
		posePalette[16], posePalette[16], posePalette[16], posePalette[16],
		posePalette[16], posePalette[16], posePalette[16], posePalette[16],
		posePalette[16], posePalette[16], posePalette[16],
		// shoulders, elbows, wrists and hands 11-22 alternate left/right
		posePalette[9], posePalette[0], posePalette[9], posePalette[0],
		posePalette[9], posePalette[0], posePalette[9], posePalette[0],
		posePalette[9], posePalette[0], posePalette[9], posePalette[0],
		// hips, knees, ankles and feet 23-32 alternate left/right
		posePalette[9], posePalette[0], posePalette[9], posePalette[0],
		posePalette[9], posePalette[0], posePalette[9], posePalette[0],
		posePalette[9], posePalette[0],
	}

	// limbColors correspond to the 35 connection graph edges, in the
	// same order as posemirror.Connections
	limbColors = []color.RGBA{
		// face edges
		posePalette[16], posePalette[16], posePalette[16], posePalette[16],
		posePalette[16], posePalette[16], posePalette[16], posePalette[16],
		posePalette[16],
		// shoulder line
		posePalette[7],
		// left arm and hand
		posePalette[9], posePalette[9], posePalette[9], posePalette[9],
		posePalette[9], posePalette[9],
		// right arm and hand
		posePalette[0], posePalette[0], posePalette[0], posePalette[0],
		posePalette[0], posePalette[0],
		// torso
		posePalette[7], posePalette[7], posePalette[7],
		// legs and feet
		posePalette[9], posePalette[0], posePalette[9], posePalette[0],
		posePalette[9], posePalette[0], posePalette[9], posePalette[0],
		posePalette[9], posePalette[0],
	}
)
