package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Widget is the minimal contract a panel entry must satisfy.
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
}

// Panel stacks widgets vertically inside a framed box.
type Panel struct {
	X, Y          float64
	Width, Height float64
	Title         string

	widgets []Widget
	nextY   float64
}

// NewPanel creates an empty panel at the given position.
func NewPanel(x, y, width, height float64, title string) *Panel {
	return &Panel{X: x, Y: y, Width: width, Height: height, Title: title, nextY: 30}
}

// AddSlider appends a slider and returns it for value access.
func (p *Panel) AddSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(p.X+10, p.Y+p.nextY+16, p.Width-20, label, min, max, value)
	p.widgets = append(p.widgets, s)
	p.nextY += 40
	return s
}

// AddCheckbox appends a checkbox and returns it for value access.
func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(p.X+10, p.Y+p.nextY, label, value)
	p.widgets = append(p.widgets, c)
	p.nextY += 24
	return c
}

// Update forwards input handling to every widget.
func (p *Panel) Update() {
	for _, w := range p.widgets {
		w.Update()
	}
}

// Draw renders the frame, title and widgets.
func (p *Panel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height),
		color.RGBA{R: 40, G: 40, B: 45, A: 230}, true)
	vector.StrokeRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height),
		2, color.RGBA{R: 100, G: 100, B: 110, A: 255}, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+10), int(p.Y+5))

	for _, w := range p.widgets {
		w.Draw(screen)
	}
}
