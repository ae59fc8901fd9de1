package camera

import "math"

// Normalize reduces any integer to [0, FullTurn).
func Normalize(y int) Yaw {
	y %= FullTurn
	if y < 0 {
		y += FullTurn
	}
	return Yaw(y)
}

// AngleTo returns the yaw pointing from one point toward another.
// Coincident points give atan2(0, 0) = 0, so the result is QuarterTurn (+X).
func AngleTo(from, to Point) Yaw {
	rad := math.Atan2(to.Z-from.Z, to.X-from.X)
	return Normalize(QuarterTurn - int(rad/math.Pi*HalfTurn))
}

// Contains reports whether y lies inside the window, endpoints included.
func (w Window) Contains(y Yaw) bool {
	switch {
	case w.Start == w.End:
		// whole circle
		return true
	case w.Start < w.End:
		return y >= w.Start && y <= w.End
	default:
		return y >= w.Start || y <= w.End
	}
}

// InWindow is the function form of Window.Contains.
func InWindow(y Yaw, w Window) bool {
	return w.Contains(y)
}

// Offset turns both endpoints by the orientation's offset.
func (w Window) Offset(o Orientation) Window {
	off := o.Offset()
	return NewWindow(int(w.Start)+off, int(w.End)+off)
}

// sweep returns how far y lies past start travelling in increasing yaw.
func sweep(start, y Yaw) int {
	return int(Normalize(int(y) - int(start)))
}

func distSquared(a, b Point) float64 {
	dx := a.X - b.X
	dz := a.Z - b.Z
	return dx*dx + dz*dz
}
