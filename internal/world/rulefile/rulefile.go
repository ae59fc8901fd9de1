// Package rulefile reads and writes focal point rule sets.
//
// Each non-empty line that does not start with '#' holds one rule:
//
//	focal_x,focal_z:start1,end1,start2,end2,...
//
// The two reals before the colon are the focal point and the integers after
// it are yaw window pairs. Any malformed line rejects the whole file.
package rulefile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"chosenoffset.com/camyaw/internal/core/camera"
)

var (
	ErrColonCount   = errors.New("expected exactly one colon")
	ErrFocalFields  = errors.New("focal point needs exactly two entries")
	ErrOddYawFields = errors.New("yaw range entries must come in start,end pairs")
	ErrBadNumber    = errors.New("invalid number")
	ErrNoWindows    = errors.New("rule has no yaw windows")
)

// maxLineBytes caps a single line. Rules with many windows run well past
// bufio's default token size.
const maxLineBytes = 1 << 20

// ParseError reports the line a rule file was rejected on.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid format on line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads a rule set from a file.
func Load(path string) (camera.RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rule file %s: %w", path, err)
	}
	defer f.Close()

	rules, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rule file %s: %w", path, err)
	}
	return rules, nil
}

// Parse reads rules until EOF. Nothing is returned unless every line is valid.
func Parse(r io.Reader) (camera.RuleSet, error) {
	var rules camera.RuleSet

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rule, err := parseRule(line)
		if err != nil {
			return nil, &ParseError{Line: lineNum, Err: err}
		}
		rules = append(rules, rule)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Line: lineNum + 1, Err: err}
	}

	return rules, nil
}

func parseRule(line string) (camera.Rule, error) {
	parts := strings.Split(line, ":")
	if len(parts) != 2 {
		return camera.Rule{}, fmt.Errorf("%w, found %d", ErrColonCount, len(parts)-1)
	}

	focalFields := strings.Split(parts[0], ",")
	if len(focalFields) != 2 {
		return camera.Rule{}, fmt.Errorf("%w, found %d", ErrFocalFields, len(focalFields))
	}
	focal, err := ParsePoint(focalFields[0], focalFields[1])
	if err != nil {
		return camera.Rule{}, err
	}

	yawFields := strings.Split(parts[1], ",")
	if len(yawFields)%2 != 0 {
		return camera.Rule{}, fmt.Errorf("%w, found %d entries", ErrOddYawFields, len(yawFields))
	}

	windows := make([]camera.Window, 0, len(yawFields)/2)
	for i := 0; i < len(yawFields); i += 2 {
		start, err := parseYaw(yawFields[i])
		if err != nil {
			return camera.Rule{}, err
		}
		end, err := parseYaw(yawFields[i+1])
		if err != nil {
			return camera.Rule{}, err
		}
		windows = append(windows, camera.NewWindow(start, end))
	}

	return camera.Rule{Focal: focal, Windows: windows}, nil
}

func parseYaw(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: yaw %q", ErrBadNumber, s)
	}
	return v, nil
}

// ParsePoint converts user-entered coordinates into a map point. Only
// finite numbers are accepted.
func ParsePoint(xs, zs string) (camera.Point, error) {
	x, err := parseCoord(xs)
	if err != nil {
		return camera.Point{}, err
	}
	z, err := parseCoord(zs)
	if err != nil {
		return camera.Point{}, err
	}
	return camera.Point{X: x, Z: z}, nil
}

func parseCoord(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: coordinate %q", ErrBadNumber, s)
	}
	return v, nil
}

// Save writes a rule set to a file, replacing its contents.
func Save(path string, rules camera.RuleSet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create rule file %s: %w", path, err)
	}

	if err := Write(f, rules); err != nil {
		f.Close()
		return fmt.Errorf("failed to write rule file %s: %w", path, err)
	}
	return f.Close()
}

// Write encodes rules one per line in the format Parse reads.
func Write(w io.Writer, rules camera.RuleSet) error {
	bw := bufio.NewWriter(w)
	for i, rule := range rules {
		if len(rule.Windows) == 0 {
			return fmt.Errorf("rule %d: %w", i, ErrNoWindows)
		}

		yaws := make([]string, 0, 2*len(rule.Windows))
		for _, win := range rule.Windows {
			yaws = append(yaws, strconv.Itoa(int(win.Start)), strconv.Itoa(int(win.End)))
		}

		fmt.Fprintf(bw, "%s,%s:%s\n", formatCoord(rule.Focal.X), formatCoord(rule.Focal.Z), strings.Join(yaws, ","))
	}
	return bw.Flush()
}

// formatCoord prints the shortest exact form, keeping a decimal point on
// whole numbers.
func formatCoord(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
