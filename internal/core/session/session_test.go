package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/camyaw/internal/core/camera"
	"chosenoffset.com/camyaw/internal/world/rulefile"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRulesAppendsInOrder(t *testing.T) {
	s := New(camera.Orientation{})

	n, err := s.LoadRules(writeFile(t, "a.txt", "0,0:16384,32768\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.LoadRules(writeFile(t, "b.txt", "10,10:0,0\n-10,-10:1,2,3,4\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rules := s.Rules()
	require.Len(t, rules, 3)
	assert.Equal(t, camera.Point{}, rules[0].Focal)
	assert.Equal(t, camera.Point{X: -10, Z: -10}, rules[2].Focal)
}

func TestLoadRulesRejectsMalformedFile(t *testing.T) {
	s := New(camera.Orientation{})
	_, err := s.LoadRules(writeFile(t, "ok.txt", "0,0:1,2\n"))
	require.NoError(t, err)

	_, err = s.LoadRules(writeFile(t, "bad.txt", "5,5:1,2\n6,6:1,2,3\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, rulefile.ErrOddYawFields)
	assert.Len(t, s.Rules(), 1, "no rule from a rejected file is kept")
}

func TestAddTestPoint(t *testing.T) {
	s := New(camera.Orientation{})

	p, err := s.AddTestPoint("100", "-100")
	require.NoError(t, err)
	assert.Equal(t, camera.Point{X: 100, Z: -100}, p)

	_, err = s.AddTestPoint("abc", "0")
	assert.ErrorIs(t, err, rulefile.ErrBadNumber)
	assert.Equal(t, []camera.Point{{X: 100, Z: -100}}, s.TestPoints(), "invalid input leaves points intact")
}

func TestLoadTestPoints(t *testing.T) {
	s := New(camera.Orientation{})
	s.AddPoint(camera.Point{X: 1, Z: 1})

	n, err := s.LoadTestPoints(writeFile(t, "points.txt", "2,2\n3,3\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, s.TestPoints(), 3)

	_, err = s.LoadTestPoints(writeFile(t, "bad.txt", "4,4\nfour,4\n"))
	assert.Error(t, err)
	assert.Len(t, s.TestPoints(), 3)
}

func TestClearActions(t *testing.T) {
	s := New(camera.Orientation{})
	fill := func() {
		s.AddRules(camera.RuleSet{{Focal: camera.Point{}, Windows: []camera.Window{camera.NewWindow(0, 0)}}})
		s.AddPoint(camera.Point{X: 5, Z: 5})
	}

	fill()
	s.ClearRules()
	assert.Empty(t, s.Rules())
	assert.Len(t, s.TestPoints(), 1)

	fill()
	s.ClearTestPoints()
	assert.Len(t, s.Rules(), 1)
	assert.Empty(t, s.TestPoints())

	fill()
	s.ClearAll()
	assert.Empty(t, s.Rules())
	assert.Empty(t, s.TestPoints())
}

func TestReturnedSlicesAreStable(t *testing.T) {
	s := New(camera.Orientation{})
	s.AddPoint(camera.Point{X: 1, Z: 1})
	before := s.TestPoints()

	s.AddPoint(camera.Point{X: 2, Z: 2})
	s.ClearTestPoints()

	assert.Equal(t, []camera.Point{{X: 1, Z: 1}}, before)
}

func TestToggleFlip(t *testing.T) {
	s := New(camera.Orientation{Flipped: true})
	assert.False(t, s.ToggleFlip())
	assert.False(t, s.Orientation().Flipped)
	assert.True(t, s.ToggleFlip())
	assert.True(t, s.Orientation().Flipped)
}

func TestSnapshot(t *testing.T) {
	s := New(camera.Orientation{})
	s.AddRules(camera.RuleSet{{Focal: camera.Point{}, Windows: []camera.Window{camera.NewWindow(16384, 32768)}}})
	s.AddPoint(camera.Point{X: 100, Z: -100})
	s.AddPoint(camera.Point{X: -100, Z: 100})

	view := s.Snapshot()
	require.Len(t, view.Regions, 1)
	assert.Equal(t, []camera.Point{{X: 100, Z: -100}}, view.Classification.Matched)
	assert.Equal(t, []camera.Point{{X: -100, Z: 100}}, view.Classification.Unmatched)

	s.ToggleFlip()
	view = s.Snapshot()
	assert.True(t, view.Orientation.Flipped)
	assert.Equal(t, []camera.Point{{X: -100, Z: 100}}, view.Classification.Matched)
	assert.Equal(t, []camera.Point{{X: 100, Z: -100}}, view.Classification.Unmatched)
}

func TestSaveRules(t *testing.T) {
	s := New(camera.Orientation{})
	s.AddRules(camera.RuleSet{{Focal: camera.Point{X: 1.5, Z: -2}, Windows: []camera.Window{camera.NewWindow(10, 20)}}})

	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, s.SaveRules(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1.5,-2.0:10,20\n", string(data))
}
