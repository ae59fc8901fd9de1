// Package camera implements the yaw geometry used to decide which ground
// positions a fixed-focus camera accepts. Angles are integer yaw units with
// 65536 per full turn, 0 pointing toward +Z and increasing toward +X.
package camera

// Yaw units.
const (
	FullTurn    = 65536
	HalfTurn    = 32768
	QuarterTurn = 16384
)

// BoundsExtent is the half-width of the square map. Corners sit at
// (±BoundsExtent, ±BoundsExtent).
const BoundsExtent = 8192.0

// Point represents a position on the map plane.
type Point struct {
	X, Z float64
}

// Yaw is an angle in [0, FullTurn).
type Yaw int

// Window is a sweep from Start to End in the direction of increasing yaw,
// wrapping through 0 when End < Start. Start == End covers the whole circle.
type Window struct {
	Start, End Yaw
}

// NewWindow builds a window from raw integers, normalizing both ends.
func NewWindow(start, end int) Window {
	return Window{Start: Normalize(start), End: Normalize(end)}
}

// Rule pairs a focal point with the windows it accepts. A yaw inside any of
// the windows satisfies the rule.
type Rule struct {
	Focal   Point
	Windows []Window
}

// RuleSet is evaluated in order; a test point belongs to the first rule it
// satisfies.
type RuleSet []Rule

// Orientation selects the direction yaw is measured in.
//
// When Flipped is false, windows are turned by a half turn before polygons
// are built and test point yaw is measured from the focal point toward the
// test point. When Flipped is true, windows are used as written and yaw is
// measured from the test point toward the focal point.
type Orientation struct {
	Flipped bool
}

// Offset returns the yaw added to window endpoints under this orientation.
func (o Orientation) Offset() int {
	if o.Flipped {
		return 0
	}
	return HalfTurn
}

// Corners of the map in canonical order: bottom-left, top-left, top-right,
// bottom-right.
var Corners = [4]Point{
	{X: -BoundsExtent, Z: -BoundsExtent},
	{X: -BoundsExtent, Z: BoundsExtent},
	{X: BoundsExtent, Z: BoundsExtent},
	{X: BoundsExtent, Z: -BoundsExtent},
}

// Region is the polygon produced for one window of one rule.
type Region struct {
	Rule    int // index into the RuleSet
	Window  Window
	Polygon []Point
}
