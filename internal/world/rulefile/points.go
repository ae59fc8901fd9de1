package rulefile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"chosenoffset.com/camyaw/internal/core/camera"
)

// LoadPoints reads a test point list from a file.
func LoadPoints(path string) ([]camera.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open point file %s: %w", path, err)
	}
	defer f.Close()

	points, err := ParsePoints(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse point file %s: %w", path, err)
	}
	return points, nil
}

// ParsePoints reads one "x,z" test point per line, skipping blank lines and
// '#' comments.
func ParsePoints(r io.Reader) ([]camera.Point, error) {
	var points []camera.Point

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != 2 {
			return nil, &ParseError{Line: lineNum, Err: fmt.Errorf("%w: expected x,z", ErrBadNumber)}
		}
		p, err := ParsePoint(fields[0], fields[1])
		if err != nil {
			return nil, &ParseError{Line: lineNum, Err: err}
		}
		points = append(points, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Line: lineNum + 1, Err: err}
	}

	return points, nil
}
