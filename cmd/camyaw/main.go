package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/camyaw/internal/core/camera"
	"chosenoffset.com/camyaw/internal/core/session"
	"chosenoffset.com/camyaw/internal/export"
	"chosenoffset.com/camyaw/internal/logger"
	ebitenrender "chosenoffset.com/camyaw/internal/render/ebiten"
	"chosenoffset.com/camyaw/internal/report"
	"chosenoffset.com/camyaw/internal/settings"
	"chosenoffset.com/camyaw/internal/viewer"
)

// pointList collects repeated -point x,z flags.
type pointList []string

func (p *pointList) String() string { return strings.Join(*p, " ") }

func (p *pointList) Set(v string) error {
	*p = append(*p, v)
	return nil
}

func init() {
	logger.Init()

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: camyaw [flags]\n\nViewer keys: F flip, T clear test points, R clear focal points, X clear all, P save PNG, S save rules, L load -add file, C save settings, +/- point size, Esc quit.\n\n")
		flag.PrintDefaults()
	}
}

func main() {
	var (
		rulesArg   string
		pointsPath string
		configPath string
		pngPath    string
		svgPath    string
		savePath   string
		addPath    string
		diameter   string
		flip       bool
		headless   bool
		points     pointList
	)
	flag.StringVar(&rulesArg, "rules", "", "Comma-separated focal point/yaw files, loaded in order")
	flag.StringVar(&pointsPath, "points", "", "File of x,z test points")
	flag.Var(&points, "point", "Test point as x,z (repeatable)")
	flag.StringVar(&configPath, "config", "camyaw.yaml", "Display settings file")
	flag.StringVar(&pngPath, "png", "", "PNG output path")
	flag.StringVar(&svgPath, "svg", "", "SVG output path")
	flag.StringVar(&savePath, "save", "", "Write the combined rule set to this path")
	flag.StringVar(&addPath, "add", "camyaw_add.txt", "Rule file appended by the viewer's L key")
	flag.StringVar(&diameter, "diameter", "", "Test point diameter, overriding the settings file")
	flag.BoolVar(&flip, "flip", false, "Start with yaws flipped")
	flag.BoolVar(&headless, "headless", false, "Print the classification and exit instead of opening a window")
	flag.Parse()

	cfg, err := settings.Load(configPath)
	if err != nil {
		logger.Log.Fatalf("Failed to load settings: %v", err)
	}
	if flip {
		cfg.Flipped = true
	}
	if diameter != "" {
		if err := cfg.SetPointDiameter(diameter); err != nil {
			logger.Log.WithError(err).Warnf("Keeping test point diameter %g", cfg.TestPointDiameter)
		}
	}

	sess := session.New(cfg.Orientation())

	var files []report.RuleFile
	if rulesArg != "" {
		for _, path := range strings.Split(rulesArg, ",") {
			path = strings.TrimSpace(path)
			n, err := sess.LoadRules(path)
			if err != nil {
				logger.Log.Fatalf("INVALID FORMAT: %v", err)
			}
			files = append(files, report.RuleFile{Path: path, Count: n})
		}
	}
	if pointsPath != "" {
		if _, err := sess.LoadTestPoints(pointsPath); err != nil {
			logger.Log.Fatalf("Failed to load test points: %v", err)
		}
	}
	for _, raw := range points {
		xs, zs, ok := strings.Cut(raw, ",")
		if !ok {
			logger.Log.WithField("point", raw).Warn("Test point must be x,z")
			continue
		}
		// AddTestPoint logs the rejection; the other points still load.
		if _, err := sess.AddTestPoint(xs, zs); err != nil {
			continue
		}
	}

	if headless {
		if err := runHeadless(sess, cfg, files, pngPath, svgPath, savePath); err != nil {
			logger.Log.Fatal(err)
		}
		return
	}

	v, err := viewer.New(sess, cfg, ebitenrender.NewRenderer(), ebitenrender.NewInputManager(), viewer.Paths{
		PNG:    orDefault(pngPath, "camyaw.png"),
		Rules:  orDefault(savePath, "camyaw_rules.txt"),
		Load:   addPath,
		Config: configPath,
	})
	if err != nil {
		logger.Log.Fatalf("Failed to create viewer: %v", err)
	}

	engine := ebitenrender.NewEngine()
	engine.SetWindowSize(cfg.WindowSize, cfg.WindowSize)
	engine.SetWindowTitle("Valid Camera Viewer")
	engine.SetWindowResizable(false)

	logger.Log.Info("Starting viewer...")
	if err := engine.RunGame(v); err != nil {
		logger.Log.Fatal(err)
	}
}

func runHeadless(sess *session.Session, cfg *settings.Settings, files []report.RuleFile, pngPath, svgPath, savePath string) error {
	view := sess.Snapshot()

	report.Classification(os.Stdout, view)
	if err := report.Breakdown(context.Background(), os.Stdout, view, files); err != nil {
		return err
	}

	var area float64
	for _, region := range view.Regions {
		area += camera.PolygonArea(region.Polygon)
	}
	logger.Log.WithFields(logrus.Fields{
		"flipped":    view.Orientation.Flipped,
		"rules":      len(view.Rules),
		"regions":    len(view.Regions),
		"valid":      len(view.Classification.Matched),
		"invalid":    len(view.Classification.Unmatched),
		"area_drawn": area,
	}).Info("Classification complete")

	opts, err := export.OptionsFrom(cfg)
	if err != nil {
		return err
	}
	if pngPath != "" {
		if err := export.SavePNG(pngPath, view, opts); err != nil {
			return err
		}
	}
	if svgPath != "" {
		if err := export.SaveSVG(svgPath, view, opts); err != nil {
			return err
		}
	}
	if savePath != "" {
		if err := sess.SaveRules(savePath); err != nil {
			return err
		}
	}
	return nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
