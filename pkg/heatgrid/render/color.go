package render

import (
	"fmt"
	"math"
)

// RGB is an 8-bit color.
type RGB struct {
	R, G, B uint8
}

// String formats the color as an SVG rgb() function.
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// Color maps a ratio in [0, 1] onto a green (0) to red (1) gradient.
func Color(ratio float64) RGB {
	if math.IsNaN(ratio) {
		ratio = 0.5
	}
	return RGB{
		R: channel(255 * ratio),
		G: channel(255 * (1 - ratio)),
		B: 0,
	}
}

func channel(v float64) uint8 {
	v = math.Round(v)
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
