// Package session holds the focal rules, test points and orientation that
// the viewer works on, and the user actions that change them.
package session

import (
	"sync"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/camyaw/internal/core/camera"
	"chosenoffset.com/camyaw/internal/logger"
	"chosenoffset.com/camyaw/internal/world/rulefile"
)

// Session is safe for concurrent use. Rules and points are only appended or
// cleared, so the slices handed out by accessors are never modified later.
type Session struct {
	mu sync.RWMutex

	rules       camera.RuleSet
	points      []camera.Point
	orientation camera.Orientation
}

// View is a consistent snapshot of everything a renderer needs.
type View struct {
	Orientation    camera.Orientation
	Rules          camera.RuleSet
	Points         []camera.Point
	Regions        []camera.Region
	Classification camera.Classification
}

// New creates an empty session.
func New(o camera.Orientation) *Session {
	return &Session{orientation: o}
}

// --- Rule operations ---

// LoadRules appends the rules in a rule file. On error the session is left
// unchanged.
func (s *Session) LoadRules(path string) (int, error) {
	rules, err := rulefile.Load(path)
	if err != nil {
		logger.File("rules", path).WithError(err).Error("Rule file rejected")
		return 0, err
	}

	s.AddRules(rules)
	logger.Counts(logger.File("rules", path), map[string]int{"rules": len(rules)}).Info("Loaded focal point rules")
	return len(rules), nil
}

// AddRules appends rules after the existing ones.
func (s *Session) AddRules(rules camera.RuleSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = append(s.rules[:len(s.rules):len(s.rules)], rules...)
}

// SaveRules writes all rules to a rule file.
func (s *Session) SaveRules(path string) error {
	rules := s.Rules()
	if err := rulefile.Save(path, rules); err != nil {
		return err
	}
	logger.Counts(logger.File("rules", path), map[string]int{"rules": len(rules)}).Info("Saved focal point rules")
	return nil
}

// Rules returns the rules in evaluation order.
func (s *Session) Rules() camera.RuleSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rules
}

// ClearRules removes every focal rule.
func (s *Session) ClearRules() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = nil
}

// --- Test point operations ---

// AddTestPoint validates user-entered coordinates and appends the point.
// Invalid input is reported and leaves the session untouched.
func (s *Session) AddTestPoint(xs, zs string) (camera.Point, error) {
	p, err := rulefile.ParsePoint(xs, zs)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"x": xs,
			"z": zs,
		}).Warn("X/Z values must be valid numbers")
		return camera.Point{}, err
	}
	s.AddPoint(p)
	return p, nil
}

// AddPoint appends an already validated test point.
func (s *Session) AddPoint(p camera.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points = append(s.points[:len(s.points):len(s.points)], p)
}

// LoadTestPoints appends the points in a point file. On error the session is
// left unchanged.
func (s *Session) LoadTestPoints(path string) (int, error) {
	points, err := rulefile.LoadPoints(path)
	if err != nil {
		logger.File("points", path).WithError(err).Error("Point file rejected")
		return 0, err
	}

	s.mu.Lock()
	s.points = append(s.points[:len(s.points):len(s.points)], points...)
	s.mu.Unlock()

	logger.Counts(logger.File("points", path), map[string]int{"points": len(points)}).Info("Loaded test points")
	return len(points), nil
}

// TestPoints returns the test points in insertion order.
func (s *Session) TestPoints() []camera.Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.points
}

// ClearTestPoints removes every test point.
func (s *Session) ClearTestPoints() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points = nil
}

// ClearAll removes rules and test points.
func (s *Session) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = nil
	s.points = nil
}

// --- Orientation ---

// Orientation returns the current orientation.
func (s *Session) Orientation() camera.Orientation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orientation
}

// ToggleFlip flips the orientation and returns the new flipped state.
func (s *Session) ToggleFlip() bool {
	s.mu.Lock()
	s.orientation.Flipped = !s.orientation.Flipped
	flipped := s.orientation.Flipped
	s.mu.Unlock()

	logger.Log.WithField("flipped", flipped).Debug("Toggled yaw flip")
	return flipped
}

// Snapshot computes region polygons and the test point classification for
// the current state.
func (s *Session) Snapshot() View {
	s.mu.RLock()
	rules, points, o := s.rules, s.points, s.orientation
	s.mu.RUnlock()

	return View{
		Orientation:    o,
		Rules:          rules,
		Points:         points,
		Regions:        camera.Regions(rules, o),
		Classification: camera.Classify(points, rules, o),
	}
}
