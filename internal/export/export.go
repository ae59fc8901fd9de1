// Package export writes the current regions and test points to image files.
package export

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"

	svg "github.com/ajstarks/svgo"
	"github.com/llgcode/draw2d"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"

	"chosenoffset.com/camyaw/internal/core/camera"
	"chosenoffset.com/camyaw/internal/core/session"
	"chosenoffset.com/camyaw/internal/logger"
	"chosenoffset.com/camyaw/internal/render"
	"chosenoffset.com/camyaw/internal/settings"
)

// Options controls the output image.
type Options struct {
	Size          int // square side in pixels
	Palette       settings.Palette
	PointDiameter float64
}

// OptionsFrom derives export options from display settings.
func OptionsFrom(s *settings.Settings) (Options, error) {
	palette, err := s.Palette()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Size:          s.WindowSize,
		Palette:       palette,
		PointDiameter: s.TestPointDiameter,
	}, nil
}

// RenderImage rasterizes regions first, then matched and unmatched points.
func RenderImage(view session.View, opts Options) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	vp := render.ViewportForSize(opts.Size)

	gc := draw2dimg.NewGraphicContext(img)
	gc.SetFillRule(draw2d.FillRuleWinding)

	gc.SetFillColor(opts.Palette.Background)
	gc.BeginPath()
	draw2dkit.Rectangle(gc, 0, 0, float64(opts.Size), float64(opts.Size))
	gc.Fill()

	gc.SetFillColor(opts.Palette.ValidPosition)
	for _, region := range view.Regions {
		if len(region.Polygon) < 3 {
			continue
		}
		gc.BeginPath()
		x, y := vp.ToScreen(region.Polygon[0])
		gc.MoveTo(x, y)
		for _, p := range region.Polygon[1:] {
			x, y = vp.ToScreen(p)
			gc.LineTo(x, y)
		}
		gc.Close()
		gc.Fill()
	}

	radius := opts.PointDiameter / 2
	drawPoints := func(points []camera.Point, clr color.Color) {
		gc.SetFillColor(clr)
		for _, p := range points {
			x, y := vp.ToScreen(p)
			gc.BeginPath()
			draw2dkit.Circle(gc, x, y, radius)
			gc.Fill()
		}
	}
	drawPoints(view.Classification.Matched, opts.Palette.TestPointSuccess)
	drawPoints(view.Classification.Unmatched, opts.Palette.TestPointFailure)

	return img
}

// SavePNG renders the view and writes it as a PNG file.
func SavePNG(path string, view session.View, opts Options) error {
	if err := draw2dimg.SaveToPngFile(path, RenderImage(view, opts)); err != nil {
		return fmt.Errorf("failed to save png %s: %w", path, err)
	}
	logger.Counts(logger.File("png", path), map[string]int{
		"regions": len(view.Regions),
		"points":  len(view.Points),
	}).Info("Saved PNG")
	return nil
}

// WriteSVG writes the view as an SVG document.
func WriteSVG(w io.Writer, view session.View, opts Options) {
	vp := render.ViewportForSize(opts.Size)
	canvas := svg.New(w)
	canvas.Start(opts.Size, opts.Size)
	canvas.Rect(0, 0, opts.Size, opts.Size, fillStyle(opts.Palette.Background))

	regionStyle := fillStyle(opts.Palette.ValidPosition)
	for _, region := range view.Regions {
		xs := make([]int, len(region.Polygon))
		ys := make([]int, len(region.Polygon))
		for i, p := range region.Polygon {
			x, y := vp.ToScreen(p)
			xs[i], ys[i] = int(math.Round(x)), int(math.Round(y))
		}
		canvas.Polygon(xs, ys, regionStyle)
	}

	radius := int(math.Round(opts.PointDiameter / 2))
	drawPoints := func(points []camera.Point, style string) {
		for _, p := range points {
			x, y := vp.ToScreen(p)
			canvas.Circle(int(math.Round(x)), int(math.Round(y)), radius, style)
		}
	}
	drawPoints(view.Classification.Matched, fillStyle(opts.Palette.TestPointSuccess))
	drawPoints(view.Classification.Unmatched, fillStyle(opts.Palette.TestPointFailure))

	canvas.End()
}

// SaveSVG writes the view to an SVG file.
func SaveSVG(path string, view session.View, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create svg %s: %w", path, err)
	}
	WriteSVG(f, view, opts)
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write svg %s: %w", path, err)
	}
	logger.Counts(logger.File("svg", path), map[string]int{
		"regions": len(view.Regions),
		"points":  len(view.Points),
	}).Info("Saved SVG")
	return nil
}

func fillStyle(c color.RGBA) string {
	return "fill:" + settings.HexColor(c) + ";stroke:none"
}
