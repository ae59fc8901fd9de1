package camera

import (
	"math"
	"sort"
)

// EnclosedCorners returns the map corners whose yaw from focal falls inside
// the window after it has been turned by the orientation offset.
//
// Corners are returned in sweep order starting at the window start, so they
// can be threaded between the two boundary rays without crossing. A corner
// lying exactly on the start ray sorts first; ties keep canonical order.
func EnclosedCorners(focal Point, w Window, o Orientation) []Point {
	adjusted := w.Offset(o)

	type enclosed struct {
		corner Point
		dist   int
	}
	var found []enclosed
	for _, corner := range Corners {
		yaw := AngleTo(focal, corner)
		if adjusted.Contains(yaw) {
			found = append(found, enclosed{corner: corner, dist: sweep(adjusted.Start, yaw)})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].dist < found[j].dist
	})

	corners := make([]Point, len(found))
	for i, e := range found {
		corners[i] = e.corner
	}
	return corners
}

// BuildPolygon returns the closed boundary of the part of the map seen from
// focal through the window: focal, the start ray exit, enclosed corners, the
// end ray exit, and focal again.
func BuildPolygon(focal Point, w Window, o Orientation) []Point {
	adjusted := w.Offset(o)
	p1 := Intersect(focal, adjusted.Start)
	p2 := Intersect(focal, adjusted.End)

	// EnclosedCorners applies the offset itself.
	corners := EnclosedCorners(focal, w, o)

	poly := make([]Point, 0, len(corners)+4)
	poly = append(poly, focal, p1)
	poly = append(poly, corners...)
	poly = append(poly, p2, focal)
	return poly
}

// Regions builds one polygon per window of every rule, in rule order.
func Regions(rules RuleSet, o Orientation) []Region {
	var regions []Region
	for i, rule := range rules {
		for _, w := range rule.Windows {
			regions = append(regions, Region{
				Rule:    i,
				Window:  w,
				Polygon: BuildPolygon(rule.Focal, w, o),
			})
		}
	}
	return regions
}

// PolygonArea returns the unsigned shoelace area of a polygon. The closing
// edge is implied, so a repeated first point is harmless.
func PolygonArea(poly []Point) float64 {
	if len(poly) < 3 {
		return 0
	}
	var sum float64
	j := len(poly) - 1
	for i := range poly {
		sum += poly[j].X*poly[i].Z - poly[i].X*poly[j].Z
		j = i
	}
	return math.Abs(sum) / 2
}
