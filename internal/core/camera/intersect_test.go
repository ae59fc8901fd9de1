package camera

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntersectAxisAligned(t *testing.T) {
	focal := Point{X: 1200, Z: -3400}

	assert.Equal(t, Point{X: 1200, Z: 8192}, Intersect(focal, 0))
	assert.Equal(t, Point{X: 8192, Z: -3400}, Intersect(focal, QuarterTurn))
	assert.Equal(t, Point{X: 1200, Z: -8192}, Intersect(focal, HalfTurn))
	assert.Equal(t, Point{X: -8192, Z: -3400}, Intersect(focal, HalfTurn+QuarterTurn))
}

func TestIntersectDiagonalFromOrigin(t *testing.T) {
	tests := []struct {
		yaw  Yaw
		want Point
	}{
		{8192, Point{X: 8192, Z: 8192}},
		{24576, Point{X: 8192, Z: -8192}},
		{40960, Point{X: -8192, Z: -8192}},
		{57344, Point{X: -8192, Z: 8192}},
	}

	for _, tt := range tests {
		got := Intersect(Point{}, tt.yaw)
		assert.InDelta(t, tt.want.X, got.X, 1e-6, "yaw %d x", tt.yaw)
		assert.InDelta(t, tt.want.Z, got.Z, 1e-6, "yaw %d z", tt.yaw)
	}
}

func TestIntersectPicksNearestEdge(t *testing.T) {
	focal := Point{X: 1000, Z: -2000}

	// 22.5 degrees off +Z toward +X reaches the top edge first.
	got := Intersect(focal, 4096)
	assert.Equal(t, 8192.0, got.Z)
	assert.InDelta(t, 1000+10192*math.Tan(math.Pi/8), got.X, 0.01)

	// 22.5 degrees off +X toward -Z reaches the right edge first.
	got = Intersect(focal, QuarterTurn+4096)
	assert.Equal(t, 8192.0, got.X)
	assert.InDelta(t, -2000-7192*math.Tan(math.Pi/8), got.Z, 0.01)
}

func TestIntersectNormalizesYaw(t *testing.T) {
	focal := Point{X: -50, Z: 75}
	assert.Equal(t, Intersect(focal, 1000), Intersect(focal, Yaw(FullTurn+1000)))
}

func TestIntersectAlwaysOnPerimeter(t *testing.T) {
	focals := []Point{
		{},
		{X: 4000, Z: 4000},
		{X: -8000, Z: 7999},
		{X: 8191, Z: -8191},
		{X: -1234.5, Z: 321.25},
	}

	for _, focal := range focals {
		for y := 0; y < FullTurn; y += 7 {
			p := Intersect(focal, Yaw(y))
			onVertical := math.Abs(p.X) == BoundsExtent
			onHorizontal := math.Abs(p.Z) == BoundsExtent
			require.True(t, onVertical || onHorizontal, "focal %v yaw %d: %v not on an edge", focal, y, p)
			require.LessOrEqual(t, math.Abs(p.X), BoundsExtent, "focal %v yaw %d", focal, y)
			require.LessOrEqual(t, math.Abs(p.Z), BoundsExtent, "focal %v yaw %d", focal, y)
			require.False(t, math.IsNaN(p.X) || math.IsNaN(p.Z))
		}
	}
}

func TestIntersectFollowsYawDirection(t *testing.T) {
	focal := Point{X: 300, Z: -600}
	for y := 1; y < FullTurn; y += 499 {
		p := Intersect(focal, Yaw(y))
		// The exit point must lie along the ray, so its yaw from focal
		// matches the input yaw up to integer truncation.
		got := int(AngleTo(focal, p))
		diff := int(Normalize(got - y))
		if diff > HalfTurn {
			diff -= FullTurn
		}
		require.LessOrEqual(t, math.Abs(float64(diff)), 1.0, "yaw %d exits at %v (yaw %d)", y, p, got)
	}
}
