package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/lao-tseu-is-alive/go-coverage-control/pkg/coverage"
	"github.com/lao-tseu-is-alive/go-coverage-control/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-coverage-control/pkg/ui"
)

// Pre-rendered 1x1 source for batched triangle drawing.
var whiteImage = ebiten.NewImage(3, 3)

func init() {
	whiteImage.Fill(color.White)
}

type Game struct {
	ctx        context.Context
	controller *coverage.Controller
	cfg        *coverage.Config
	lastReport *coverage.StepReport
	fatalErr   error

	panel          *ui.Panel
	widgetMu       *ui.Slider
	widgetEpsilon  *ui.Slider
	widgetTol      *ui.Slider
	widgetQWeight  *ui.Slider
	widgetCells    *ui.Checkbox
	widgetTargets  *ui.Checkbox
	widgetGradient *ui.Checkbox

	// Timing instrumentation (rolling averages in ms)
	updateAvg float64
	drawAvg   float64
}

func NewGame(ctx context.Context, cfg *coverage.Config, controller *coverage.Controller) *Game {
	panel := ui.NewPanel(10, 10, 230, 260, "Controller Gains")
	g := &Game{
		ctx:        ctx,
		controller: controller,
		cfg:        cfg,
		panel:      panel,
	}
	g.widgetMu = panel.AddSlider("Gain mu", 0, 3, cfg.Gains.Mu)
	g.widgetEpsilon = panel.AddSlider("Saturation eps", 0.5, 20, cfg.Gains.Epsilon)
	g.widgetTol = panel.AddSlider("Barrier tol", 0, 5, cfg.Gains.Tol)
	g.widgetQWeight = panel.AddSlider("Q weight", 0.1, 10, cfg.Gains.QWeight)
	g.widgetCells = panel.AddCheckbox("Show Voronoi cells", true)
	g.widgetTargets = panel.AddCheckbox("Show centroid targets", true)
	g.widgetGradient = panel.AddCheckbox("Show gradients", false)
	return g
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	g.panel.Update()

	// A fatal controller condition freezes the simulation in its last state
	// so the offending configuration stays visible.
	if g.fatalErr != nil {
		return nil
	}

	g.controller.SetGains(coverage.Gains{
		Mu:        g.widgetMu.Value,
		Epsilon:   g.widgetEpsilon.Value,
		Tol:       g.widgetTol.Value,
		QWeight:   g.widgetQWeight.Value,
		Lookahead: g.cfg.Gains.Lookahead,
	})

	report, err := g.controller.Step(g.ctx)
	if err != nil {
		g.fatalErr = err
		return nil
	}
	g.lastReport = report
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	g.drawRegion(screen)

	if g.lastReport != nil {
		if g.widgetCells.Value {
			for _, cell := range g.lastReport.Cells {
				drawPolygon(screen, cell, color.RGBA{R: 90, G: 140, B: 200, A: 200}, 1)
			}
		}
		if g.widgetTargets.Value {
			for _, c := range g.lastReport.Centroids {
				drawCross(screen, c, 5, color.RGBA{R: 80, G: 220, B: 120, A: 255})
			}
		}
		for i, pose := range g.lastReport.Poses {
			drawAgent(screen, pose)
			if g.widgetGradient.Value {
				grad := g.lastReport.Gradient.Agents[i].Self
				tip := pose.Position().Add(grad.Normalize().Mul(25))
				vector.StrokeLine(screen,
					float32(pose.X), float32(pose.Y),
					float32(tip.X), float32(tip.Y),
					1, color.RGBA{R: 230, G: 180, B: 60, A: 255}, true)
			}
		}
	}

	g.panel.Draw(screen)
	g.drawStats(screen)
}

func (g *Game) drawRegion(screen *ebiten.Image) {
	drawPolygon(screen, g.controller.Region().Vertices(), color.RGBA{R: 220, G: 220, B: 220, A: 255}, 2)
}

func (g *Game) drawStats(screen *ebiten.Image) {
	cost := math.NaN()
	step := 0
	if g.lastReport != nil {
		cost = g.lastReport.Cost
		step = g.lastReport.Step
	}
	region := g.controller.Region()
	msg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nUpdate: %.2fms\nDraw:   %.2fms\n\nStep: %d\nCost: %.4f",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.updateAvg, g.drawAvg, step, cost)
	ebitenutil.DebugPrintAt(screen, msg, int(region.Width())-140, 10)

	if g.fatalErr != nil {
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("FATAL: %v", g.fatalErr),
			20, int(region.Height())-30)
	}
}

func (g *Game) Layout(w, h int) (int, int) {
	region := g.controller.Region()
	return int(region.Width()), int(region.Height())
}

func drawPolygon(screen *ebiten.Image, poly geometry.Polygon, clr color.Color, width float32) {
	n := len(poly)
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		vector.StrokeLine(screen,
			float32(a.X), float32(a.Y),
			float32(b.X), float32(b.Y),
			width, clr, true)
	}
}

func drawCross(screen *ebiten.Image, p geometry.Vector2D, size float32, clr color.Color) {
	x, y := float32(p.X), float32(p.Y)
	vector.StrokeLine(screen, x-size, y, x+size, y, 1, clr, true)
	vector.StrokeLine(screen, x, y-size, x, y+size, 1, clr, true)
}

// drawAgent renders a unicycle as a heading-aligned triangle.
func drawAgent(screen *ebiten.Image, pose coverage.Pose) {
	tipX := pose.X + math.Cos(pose.Theta)*9
	tipY := pose.Y + math.Sin(pose.Theta)*9
	rightX := pose.X + math.Cos(pose.Theta+2.5)*7
	rightY := pose.Y + math.Sin(pose.Theta+2.5)*7
	leftX := pose.X + math.Cos(pose.Theta-2.5)*7
	leftY := pose.Y + math.Sin(pose.Theta-2.5)*7

	vertices := []ebiten.Vertex{
		{DstX: float32(tipX), DstY: float32(tipY), SrcX: 1, SrcY: 1, ColorR: 1, ColorG: 0.4, ColorB: 0.3, ColorA: 1},
		{DstX: float32(rightX), DstY: float32(rightY), SrcX: 1, SrcY: 1, ColorR: 1, ColorG: 0.4, ColorB: 0.3, ColorA: 1},
		{DstX: float32(leftX), DstY: float32(leftY), SrcX: 1, SrcY: 1, ColorR: 1, ColorG: 0.4, ColorB: 0.3, ColorA: 1},
	}
	screen.DrawTriangles(vertices, []uint16{0, 1, 2}, whiteImage, &ebiten.DrawTrianglesOptions{})
}

func main() {
	configFile := flag.String("config", "", "scenario JSON file (default: built-in scenario)")
	schemaFile := flag.String("schema", "configs/coverage.schema.json", "JSON schema for the scenario file")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	cfg := coverage.DefaultConfig()
	if *configFile != "" {
		cfg, err = coverage.LoadConfig(*configFile, *schemaFile)
		if err != nil {
			logger.Fatal("invalid scenario", zap.Error(err))
		}
	}

	controller, err := coverage.NewController(cfg, logger)
	if err != nil {
		logger.Fatal("controller construction failed", zap.Error(err))
	}

	ebiten.SetWindowSize(int(controller.Region().Width()), int(controller.Region().Height()))
	ebiten.SetWindowTitle("Voronoi Coverage Control")

	game := NewGame(context.Background(), cfg, controller)
	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("viewer exited", zap.Error(err))
	}
}
