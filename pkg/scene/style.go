package scene

import "image/color"

// Style holds the colors and stroke sizes used by Block and Link rendering.
type Style struct {
	Fill          color.Color // block body
	Border        color.Color // unfocused block border
	BorderFocused color.Color // focused block border
	Link          color.Color // link curve
	DebugAnchor   color.Color // debug marker on a link's start block
	DebugControl  color.Color // debug markers on curve points

	Radius      float64 // block corner radius
	BorderWidth float64 // block border ring width
	LinkWidth   float64 // link stroke width
}

// DefaultStyle returns the stock look: light-gray bodies, a black border on
// focused blocks and a mid-gray border otherwise.
func DefaultStyle() Style {
	return Style{
		Fill:          color.RGBA{R: 191, G: 191, B: 191, A: 255},
		Border:        color.RGBA{R: 100, G: 100, B: 100, A: 255},
		BorderFocused: color.Black,
		Link:          color.Black,
		DebugAnchor:   color.RGBA{G: 255, A: 255},
		DebugControl:  color.RGBA{R: 255, A: 255},
		Radius:        5,
		BorderWidth:   0.5,
		LinkWidth:     1,
	}
}
