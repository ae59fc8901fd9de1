package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullMapArea = 4 * BoundsExtent * BoundsExtent

var (
	bottomLeft  = Corners[0]
	topLeft     = Corners[1]
	topRight    = Corners[2]
	bottomRight = Corners[3]
)

// pointInPolygon is the even-odd ray casting test.
func pointInPolygon(p Point, poly []Point) bool {
	inside := false
	j := len(poly) - 1
	for i := range poly {
		xi, zi := poly[i].X, poly[i].Z
		xj, zj := poly[j].X, poly[j].Z
		if (zi > p.Z) != (zj > p.Z) && p.X < (xj-xi)*(p.Z-zi)/(zj-zi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}

// assertPolygonMatchesWindow samples the map and checks that the polygon
// covers exactly the points whose yaw from focal lies in the offset window.
func assertPolygonMatchesWindow(t *testing.T, focal Point, w Window, o Orientation) {
	t.Helper()
	poly := BuildPolygon(focal, w, o)
	adjusted := w.Offset(o)

	for x := -BoundsExtent + 256; x < BoundsExtent; x += 512 {
		for z := -BoundsExtent + 256; z < BoundsExtent; z += 512 {
			p := Point{X: x, Z: z}
			yaw := AngleTo(focal, p)
			if adjusted.Start != adjusted.End &&
				(absSweep(adjusted.Start, yaw) <= 2 || absSweep(adjusted.End, yaw) <= 2) {
				continue
			}
			want := adjusted.Contains(yaw)
			require.Equal(t, want, pointInPolygon(p, poly),
				"focal %v window %v flipped=%v point %v yaw %d", focal, w, o.Flipped, p, yaw)
		}
	}
}

func absSweep(a, b Yaw) int {
	d := sweep(a, b)
	if d > HalfTurn {
		d = FullTurn - d
	}
	return d
}

func TestBuildPolygonNearlyFullCircle(t *testing.T) {
	for _, o := range []Orientation{{}, {Flipped: true}} {
		poly := BuildPolygon(Point{}, NewWindow(0, 65535), o)
		corners := EnclosedCorners(Point{}, NewWindow(0, 65535), o)
		assert.Len(t, corners, 4, "flipped=%v", o.Flipped)
		assert.Len(t, poly, 8)
		assert.InEpsilon(t, fullMapArea, PolygonArea(poly), 1e-4)
	}
}

func TestBuildPolygonQuarterCircle(t *testing.T) {
	w := NewWindow(16384, 32768)

	poly := BuildPolygon(Point{}, w, Orientation{})
	want := []Point{{}, {X: -8192, Z: 0}, topLeft, {X: 0, Z: 8192}, {}}
	assert.Equal(t, want, poly)
	assert.Equal(t, BoundsExtent*BoundsExtent, PolygonArea(poly))

	poly = BuildPolygon(Point{}, w, Orientation{Flipped: true})
	want = []Point{{}, {X: 8192, Z: 0}, bottomRight, {X: 0, Z: -8192}, {}}
	assert.Equal(t, want, poly)
}

func TestEnclosedCornerCounts(t *testing.T) {
	flipped := Orientation{Flipped: true}
	tests := []struct {
		name string
		w    Window
		want []Point
	}{
		{"none", NewWindow(1000, 2000), nil},
		{"one", NewWindow(0, 16384), []Point{topRight}},
		{"two", NewWindow(0, 32768), []Point{topRight, bottomRight}},
		{"three", NewWindow(0, 49152), []Point{topRight, bottomRight, bottomLeft}},
		{"four wrapping", NewWindow(1, 0), []Point{topRight, bottomRight, bottomLeft, topLeft}},
		{"whole circle", NewWindow(100, 100), []Point{topRight, bottomRight, bottomLeft, topLeft}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EnclosedCorners(Point{}, tt.w, flipped)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnclosedCornersCanonicalWhenSweepAgrees(t *testing.T) {
	// Sweeping from -Z through -X to +Z meets corners in canonical order.
	got := EnclosedCorners(Point{}, NewWindow(HalfTurn, 0), Orientation{Flipped: true})
	assert.Equal(t, []Point{bottomLeft, topLeft}, got)
}

func TestEnclosedCornersFollowSweepOrder(t *testing.T) {
	// Bottom-right comes before bottom-left going clockwise from 20000,
	// which is the reverse of canonical order.
	got := EnclosedCorners(Point{}, NewWindow(20000, 45000), Orientation{Flipped: true})
	assert.Equal(t, []Point{bottomRight, bottomLeft}, got)

	// Same sweep seen through the half turn offset.
	got = EnclosedCorners(Point{}, NewWindow(20000+HalfTurn, 45000+HalfTurn), Orientation{})
	assert.Equal(t, []Point{bottomRight, bottomLeft}, got)
}

func TestBuildPolygonCoversWindow(t *testing.T) {
	focals := []Point{
		{},
		{X: 3000, Z: -1500},
		{X: -7000, Z: 6000},
	}
	windows := []Window{
		NewWindow(16384, 32768),
		NewWindow(20000, 45000),
		NewWindow(0, 32768),
		NewWindow(60000, 40000),
		NewWindow(48005, 48000),
		NewWindow(1234, 1234),
		NewWindow(100, 900),
	}

	for _, focal := range focals {
		for _, w := range windows {
			assertPolygonMatchesWindow(t, focal, w, Orientation{})
			assertPolygonMatchesWindow(t, focal, w, Orientation{Flipped: true})
		}
	}
}

func TestBuildPolygonWholeCircleCoversMap(t *testing.T) {
	focal := Point{X: -2500, Z: 400}
	poly := BuildPolygon(focal, NewWindow(7000, 7000), Orientation{Flipped: true})

	require.Len(t, poly, 8)
	assert.Equal(t, focal, poly[0])
	assert.Equal(t, poly[1], poly[6], "start and end rays coincide")
	assert.InEpsilon(t, fullMapArea, PolygonArea(poly), 1e-9)
}

func TestBuildPolygonClosedAtFocal(t *testing.T) {
	focal := Point{X: 10, Z: 20}
	poly := BuildPolygon(focal, NewWindow(500, 30000), Orientation{})
	require.GreaterOrEqual(t, len(poly), 4)
	assert.Equal(t, focal, poly[0])
	assert.Equal(t, focal, poly[len(poly)-1])
}

func TestRegions(t *testing.T) {
	rules := RuleSet{
		{Focal: Point{X: 1, Z: 2}, Windows: []Window{NewWindow(0, 100), NewWindow(200, 300)}},
		{Focal: Point{X: -5, Z: 5}, Windows: []Window{NewWindow(40000, 50000)}},
		{Focal: Point{X: 7, Z: 7}},
	}

	regions := Regions(rules, Orientation{})
	require.Len(t, regions, 3)
	assert.Equal(t, 0, regions[0].Rule)
	assert.Equal(t, NewWindow(200, 300), regions[1].Window)
	assert.Equal(t, 1, regions[2].Rule)
	assert.Equal(t, BuildPolygon(rules[1].Focal, rules[1].Windows[0], Orientation{}), regions[2].Polygon)
}

func TestPolygonArea(t *testing.T) {
	square := []Point{{0, 0}, {0, 2}, {2, 2}, {2, 0}}
	assert.Equal(t, 4.0, PolygonArea(square))
	assert.Equal(t, 4.0, PolygonArea(append(square, square[0])))
	assert.Zero(t, PolygonArea(square[:2]))
}
