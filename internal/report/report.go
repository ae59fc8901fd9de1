// Package report prints classification results as plain text.
package report

import (
	"context"
	"fmt"
	"io"

	"chosenoffset.com/camyaw/internal/core/camera"
	"chosenoffset.com/camyaw/internal/core/session"
)

// RuleFile records how many rules one loaded file appended to the session.
type RuleFile struct {
	Path  string
	Count int
}

// Classification prints one line per test point in input order: the point,
// then "valid (rule N)" with N counted from 1, or "invalid".
func Classification(w io.Writer, view session.View) {
	for i, p := range view.Points {
		state := "invalid"
		if rule := view.Classification.Attribution[i]; rule != camera.Unmatched {
			state = fmt.Sprintf("valid (rule %d)", rule+1)
		}
		fmt.Fprintf(w, "%g,%g\t%s\n", p.X, p.Z, state)
	}
}

// Breakdown classifies the test points against each file's rules on their
// own and prints one line per file. Files must be listed in the order they
// were loaded. Nothing is printed for fewer than two files.
func Breakdown(ctx context.Context, w io.Writer, view session.View, files []RuleFile) error {
	if len(files) < 2 {
		return nil
	}

	batches := make([]camera.RuleSet, len(files))
	offset := 0
	for i, f := range files {
		if offset+f.Count > len(view.Rules) {
			return fmt.Errorf("rule file %s: %d rules expected, %d left", f.Path, f.Count, len(view.Rules)-offset)
		}
		batches[i] = view.Rules[offset : offset+f.Count]
		offset += f.Count
	}

	results, err := camera.ClassifyAll(ctx, batches, view.Points, view.Orientation)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "per file:")
	for i, f := range files {
		fmt.Fprintf(w, "%s\t%d rules\t%d valid\t%d invalid\n",
			f.Path, f.Count, len(results[i].Matched), len(results[i].Unmatched))
	}
	return nil
}
