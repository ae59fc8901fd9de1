// Package render defines the drawing interfaces used by the viewer and the
// mapping from map coordinates to screen pixels.
package render

import "chosenoffset.com/camyaw/internal/core/camera"

// Viewport maps map coordinates onto a screen with a uniform scale and
// offset. Screen Y grows with map Z.
type Viewport struct {
	Scale   float64 // pixels per map unit
	OffsetX float64
	OffsetY float64
}

// DefaultViewport shrinks the 16384-unit map by 16 into a 1024 pixel square.
var DefaultViewport = Viewport{Scale: 1.0 / 16, OffsetX: 512, OffsetY: 512}

// ViewportForSize fits the whole map into a square of the given side.
func ViewportForSize(side int) Viewport {
	half := float64(side) / 2
	return Viewport{
		Scale:   half / camera.BoundsExtent,
		OffsetX: half,
		OffsetY: half,
	}
}

// ToScreen converts a map point to screen coordinates.
func (v Viewport) ToScreen(p camera.Point) (x, y float64) {
	return p.X*v.Scale + v.OffsetX, p.Z*v.Scale + v.OffsetY
}

// ToMap converts screen coordinates back to a map point.
func (v Viewport) ToMap(x, y float64) camera.Point {
	return camera.Point{
		X: (x - v.OffsetX) / v.Scale,
		Z: (y - v.OffsetY) / v.Scale,
	}
}

// Path converts a polygon to screen space.
func (v Viewport) Path(poly []camera.Point) []Vec {
	out := make([]Vec, len(poly))
	for i, p := range poly {
		x, y := v.ToScreen(p)
		out[i] = Vec{X: float32(x), Y: float32(y)}
	}
	return out
}
