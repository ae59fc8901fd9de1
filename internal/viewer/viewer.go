// Package viewer is the interactive window: it draws the valid camera
// regions and test points and maps key presses onto session actions.
package viewer

import (
	"fmt"
	"image/color"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"chosenoffset.com/camyaw/internal/core/session"
	"chosenoffset.com/camyaw/internal/export"
	"chosenoffset.com/camyaw/internal/logger"
	"chosenoffset.com/camyaw/internal/render"
	"chosenoffset.com/camyaw/internal/settings"
)

// statusHeight is the space kept for the status line at the bottom.
const statusHeight = 20

// tickSeconds is the simulated time per Update call.
const tickSeconds = 1.0 / 60

const fadeSeconds = 0.35

// diameterStep is how much one +/- press changes the test point diameter.
const diameterStep = 2.0

// Paths used by the load and save shortcuts.
type Paths struct {
	PNG    string
	Rules  string // written by S
	Load   string // appended by L
	Config string // settings written by C
}

// Viewer holds the window state around a session.
type Viewer struct {
	Session  *session.Session
	Settings *settings.Settings
	Renderer render.Renderer
	InputMgr render.InputManager
	Viewport render.Viewport
	Paths    Paths

	palette settings.Palette
	size    int

	// regionAlpha fades regions in after they change shape.
	regionAlpha float32
	fade        *gween.Tween

	status string
}

// New creates a viewer. The settings must already be validated.
func New(s *session.Session, cfg *settings.Settings, r render.Renderer, input render.InputManager, paths Paths) (*Viewer, error) {
	palette, err := cfg.Palette()
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		Session:  s,
		Settings: cfg,
		Renderer: r,
		InputMgr: input,
		Viewport: render.ViewportForSize(cfg.WindowSize),
		Paths:    paths,
		palette:  palette,
		size:     cfg.WindowSize,
	}
	v.startFade()
	return v, nil
}

func (v *Viewer) startFade() {
	v.regionAlpha = 0
	v.fade = gween.New(0, 1, fadeSeconds, ease.OutQuad)
}

// Update handles input. It returns render.ErrTerminated on Escape.
func (v *Viewer) Update() error {
	if v.fade != nil {
		alpha, done := v.fade.Update(tickSeconds)
		v.regionAlpha = alpha
		if done {
			v.fade = nil
		}
	}

	in := v.InputMgr
	switch {
	case in.IsKeyJustPressed(render.KeyEscape):
		return render.ErrTerminated
	case in.IsKeyJustPressed(render.KeyF):
		flipped := v.Session.ToggleFlip()
		v.status = fmt.Sprintf("flip %v", flipped)
		v.startFade()
	case in.IsKeyJustPressed(render.KeyT):
		v.Session.ClearTestPoints()
		v.status = "cleared test points"
	case in.IsKeyJustPressed(render.KeyR):
		v.Session.ClearRules()
		v.status = "cleared focal points"
	case in.IsKeyJustPressed(render.KeyX):
		v.Session.ClearAll()
		v.status = "cleared all"
	case in.IsKeyJustPressed(render.KeyP):
		v.savePNG()
	case in.IsKeyJustPressed(render.KeyS):
		v.saveRules()
	case in.IsKeyJustPressed(render.KeyL):
		v.loadRules()
	case in.IsKeyJustPressed(render.KeyC):
		v.saveSettings()
	case in.IsKeyJustPressed(render.KeyEqual):
		v.adjustDiameter(diameterStep)
	case in.IsKeyJustPressed(render.KeyMinus):
		v.adjustDiameter(-diameterStep)
	}

	if in.IsMouseButtonJustPressed(render.MouseButtonLeft) {
		x, y := in.GetCursorPosition()
		p := v.Viewport.ToMap(float64(x), float64(y))
		v.Session.AddPoint(p)
		v.status = fmt.Sprintf("test point (%.1f, %.1f)", p.X, p.Z)
	}

	return nil
}

func (v *Viewer) savePNG() {
	if v.Paths.PNG == "" {
		v.status = "no png path set"
		return
	}
	opts := export.Options{Size: v.size, Palette: v.palette, PointDiameter: v.Settings.TestPointDiameter}
	if err := export.SavePNG(v.Paths.PNG, v.Session.Snapshot(), opts); err != nil {
		logger.Log.WithError(err).Error("PNG export failed")
		v.status = "png export failed"
		return
	}
	v.status = "saved " + v.Paths.PNG
}

func (v *Viewer) saveRules() {
	if v.Paths.Rules == "" {
		v.status = "no rule path set"
		return
	}
	if err := v.Session.SaveRules(v.Paths.Rules); err != nil {
		logger.Log.WithError(err).Error("Saving rules failed")
		v.status = "saving rules failed"
		return
	}
	v.status = "saved " + v.Paths.Rules
}

// loadRules appends the rules in Paths.Load. A rejected file is reported on
// the status line and the session keeps its current rules.
func (v *Viewer) loadRules() {
	if v.Paths.Load == "" {
		v.status = "no rule file to load"
		return
	}
	n, err := v.Session.LoadRules(v.Paths.Load)
	if err != nil {
		v.status = "INVALID FORMAT: " + err.Error()
		return
	}
	v.status = fmt.Sprintf("loaded %d rules from %s", n, v.Paths.Load)
	v.startFade()
}

func (v *Viewer) saveSettings() {
	if v.Paths.Config == "" {
		v.status = "no settings path set"
		return
	}
	v.Settings.Flipped = v.Session.Orientation().Flipped
	if err := v.Settings.Save(v.Paths.Config); err != nil {
		logger.File("settings", v.Paths.Config).WithError(err).Error("Saving settings failed")
		v.status = "saving settings failed"
		return
	}
	logger.File("settings", v.Paths.Config).Info("Saved settings")
	v.status = "saved " + v.Paths.Config
}

func (v *Viewer) adjustDiameter(delta float64) {
	if err := v.Settings.AdjustPointDiameter(delta); err != nil {
		v.status = "point diameter must stay positive"
		return
	}
	v.status = fmt.Sprintf("point diameter %g", v.Settings.TestPointDiameter)
}

// Draw renders regions, then matched and unmatched test points.
func (v *Viewer) Draw(screen render.Image) {
	screen.Fill(v.palette.Background)

	view := v.Session.Snapshot()

	regionColor := fadeColor(v.palette.ValidPosition, v.regionAlpha)
	for _, region := range view.Regions {
		v.Renderer.FillPolygon(screen, v.Viewport.Path(region.Polygon), regionColor)
	}

	radius := float32(v.Settings.TestPointDiameter / 2)
	for _, p := range view.Classification.Matched {
		x, y := v.Viewport.ToScreen(p)
		v.Renderer.FillCircle(screen, float32(x), float32(y), radius, v.palette.TestPointSuccess)
	}
	for _, p := range view.Classification.Unmatched {
		x, y := v.Viewport.ToScreen(p)
		v.Renderer.FillCircle(screen, float32(x), float32(y), radius, v.palette.TestPointFailure)
	}

	v.Renderer.DrawText(screen, v.statusLine(view), 4, screen.Bounds().Dy()-statusHeight)
}

func (v *Viewer) statusLine(view session.View) string {
	line := fmt.Sprintf("flip:%v  rules:%d  valid:%d  invalid:%d",
		view.Orientation.Flipped, len(view.Rules),
		len(view.Classification.Matched), len(view.Classification.Unmatched))
	if v.status != "" {
		line += "  | " + v.status
	}
	return line
}

// Layout keeps the logical screen at the configured size.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.size, v.size
}

// fadeColor scales a color's alpha, premultiplied as ebiten expects.
func fadeColor(c color.RGBA, alpha float32) color.RGBA {
	if alpha >= 1 {
		return c
	}
	if alpha < 0 {
		alpha = 0
	}
	return color.RGBA{
		R: uint8(float32(c.R) * alpha),
		G: uint8(float32(c.G) * alpha),
		B: uint8(float32(c.B) * alpha),
		A: uint8(float32(c.A) * alpha),
	}
}
