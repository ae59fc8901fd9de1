package camera

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Unmatched marks a point no rule accepted in Classification.Attribution.
const Unmatched = -1

// Classification partitions test points by the rule set.
type Classification struct {
	Matched   []Point
	Unmatched []Point
	// Attribution holds, per input point, the index of the rule that
	// accepted it or Unmatched.
	Attribution []int
}

// Classify assigns each point to the first rule whose windows contain the
// yaw between the rule's focal point and the point. Matched keeps rule
// order first, then input order; Unmatched keeps input order.
func Classify(points []Point, rules RuleSet, o Orientation) Classification {
	attribution := make([]int, len(points))
	for i := range attribution {
		attribution[i] = Unmatched
	}

	var matched []Point
	for ri, rule := range rules {
		for pi, p := range points {
			if attribution[pi] != Unmatched {
				continue
			}
			if rule.Accepts(p, o) {
				attribution[pi] = ri
				matched = append(matched, p)
			}
		}
	}

	var unmatched []Point
	for pi, p := range points {
		if attribution[pi] == Unmatched {
			unmatched = append(unmatched, p)
		}
	}

	return Classification{
		Matched:     matched,
		Unmatched:   unmatched,
		Attribution: attribution,
	}
}

// Accepts reports whether p satisfies any window of the rule.
func (r Rule) Accepts(p Point, o Orientation) bool {
	var yaw Yaw
	if o.Flipped {
		yaw = AngleTo(p, r.Focal)
	} else {
		yaw = AngleTo(r.Focal, p)
	}
	for _, w := range r.Windows {
		if w.Contains(yaw) {
			return true
		}
	}
	return false
}

// ClassifyAll classifies the same points against several independent rule
// sets concurrently. Results are indexed like batches.
func ClassifyAll(ctx context.Context, batches []RuleSet, points []Point, o Orientation) ([]Classification, error) {
	results := make([]Classification, len(batches))
	g, ctx := errgroup.WithContext(ctx)
	for i, rules := range batches {
		i, rules := i, rules
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Classify(points, rules, o)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
