package camera

import "math"

// Intersect returns the point where a ray from focal in direction yaw leaves
// the map. The focal point is expected to lie inside the map.
func Intersect(focal Point, yaw Yaw) Point {
	yaw = Normalize(int(yaw))

	// Axis-aligned rays have zero or infinite slope.
	switch yaw {
	case 0:
		return Point{X: focal.X, Z: BoundsExtent}
	case QuarterTurn:
		return Point{X: BoundsExtent, Z: focal.Z}
	case HalfTurn:
		return Point{X: focal.X, Z: -BoundsExtent}
	case HalfTurn + QuarterTurn:
		return Point{X: -BoundsExtent, Z: focal.Z}
	}

	// Standard math angle: 0 toward +X, counter-clockwise toward +Z.
	angle := float64(Normalize(QuarterTurn-int(yaw))) / HalfTurn * math.Pi
	slope := math.Tan(angle)

	// Each quadrant exits through one vertical and one horizontal edge.
	edgeX, edgeZ := BoundsExtent, BoundsExtent
	switch {
	case angle < math.Pi/2:
	case angle < math.Pi:
		edgeX = -BoundsExtent
	case angle < 3*math.Pi/2:
		edgeX, edgeZ = -BoundsExtent, -BoundsExtent
	default:
		edgeZ = -BoundsExtent
	}

	onVertical := Point{X: edgeX, Z: focal.Z + slope*(edgeX-focal.X)}
	onHorizontal := Point{X: focal.X + (edgeZ-focal.Z)/slope, Z: edgeZ}

	if distSquared(focal, onVertical) < distSquared(focal, onHorizontal) {
		onVertical.Z = clampExtent(onVertical.Z)
		return onVertical
	}
	onHorizontal.X = clampExtent(onHorizontal.X)
	return onHorizontal
}

// clampExtent pins rounding noise back onto the map edge.
func clampExtent(v float64) float64 {
	return math.Max(-BoundsExtent, math.Min(BoundsExtent, v))
}
