//go:build ebiten

package main

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/engine"
	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

var (
	aliveColor = color.RGBA{R: 255, G: 192, B: 203, A: 255}
	deadColor  = color.RGBA{R: 139, G: 69, B: 19, A: 255}
)

var keyCommands = []struct {
	key ebiten.Key
	cmd command
}{
	{ebiten.KeyEnter, cmdStart},
	{ebiten.KeySpace, cmdStop},
	{ebiten.KeyR, cmdRandomize},
	{ebiten.KeyC, cmdClear},
	{ebiten.KeyG, cmdGlider},
	{ebiten.KeyQ, cmdQuit},
	{ebiten.KeyEscape, cmdQuit},
}

// window adapts the engine to the ebiten.Game interface
type window struct {
	eng    *engine.Engine
	config utils.Config
	stats  *utils.Stats
	paint  brush
	cursor [2]int

	title     string
	lastFrame time.Time
}

// frontend opens a desktop window. The window is sized from the board, so fit
// leaves the config alone.
type frontend struct{}

func newFrontend() (*frontend, error) {
	return &frontend{}, nil
}

func (f *frontend) fit(config utils.Config) utils.Config {
	return config
}

func (f *frontend) close() {}

// run opens a window sized to the board and drives the engine until it is closed
func (f *frontend) run(eng *engine.Engine, config utils.Config) error {
	w := &window{
		eng:       eng,
		config:    config,
		stats:     utils.NewStats(),
		cursor:    [2]int{eng.Rows() / 2, eng.Columns() / 2},
		lastFrame: time.Now(),
	}

	ebiten.SetWindowTitle("go-life")
	ebiten.SetWindowSize(config.PixelWidth, config.PixelHeight)
	ebiten.SetTPS(config.FPS)

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return errors.Wrap(err, "[run] window loop failed")
	}
	return nil
}

// Update handles input and advances the simulation once per tick
func (w *window) Update() error {
	for _, kc := range keyCommands {
		if inpututil.IsKeyJustPressed(kc.key) && dispatch(w.eng, kc.cmd, w.cursor) {
			return ebiten.Termination
		}
	}

	x, y := ebiten.CursorPosition()
	row, column := cellAt(x, y, w.config.CellSize, w.config.CellSize)
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if pressed {
		w.cursor = [2]int{row, column}
	}
	w.paint.stroke(w.eng, row, column, pressed)

	now := time.Now()
	w.eng.Advance()
	if w.eng.IsRunning() {
		w.stats.Update(w.eng.Generation(), w.eng.Population(), now.Sub(w.lastFrame))
	}
	w.lastFrame = now

	if title := statusLine(w.eng, w.stats); title != w.title {
		w.title = title
		ebiten.SetWindowTitle(title)
	}
	return nil
}

// Draw paints live cells over a dead-colored background, leaving a one-pixel gap between cells
func (w *window) Draw(screen *ebiten.Image) {
	screen.Fill(deadColor)
	edge := float32(w.config.CellSize)
	for row := range w.eng.Rows() {
		for column := range w.eng.Columns() {
			if v, err := w.eng.CellValue(row, column); err != nil || v != model.Alive {
				continue
			}
			vector.DrawFilledRect(screen, float32(column)*edge, float32(row)*edge, edge-1, edge-1, aliveColor, false)
		}
	}
}

// Layout keeps the logical screen at the configured pixel size
func (w *window) Layout(_, _ int) (int, int) {
	return w.config.PixelWidth, w.config.PixelHeight
}
