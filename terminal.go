//go:build !ebiten

package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/engine"
	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

// Each cell takes two terminal columns so it renders roughly square
const termCellWidth = 2

var (
	aliveStyle  = tcell.StyleDefault.Background(tcell.NewRGBColor(255, 192, 203))
	deadStyle   = tcell.StyleDefault.Background(tcell.NewRGBColor(139, 69, 19))
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
)

// frontend owns the terminal screen for the lifetime of a session
type frontend struct {
	screen tcell.Screen
}

func newFrontend() (*frontend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "[newFrontend] failed to create terminal screen")
	}
	if err = screen.Init(); err != nil {
		return nil, errors.Wrap(err, "[newFrontend] failed to initialize terminal screen")
	}
	return &frontend{screen: screen}, nil
}

// fit limits the board to the current terminal size
func (f *frontend) fit(config utils.Config) utils.Config {
	w, h := f.screen.Size()
	return fitBoard(config, w, h, termCellWidth)
}

func (f *frontend) close() {
	f.screen.Fini()
}

// run drives the engine from a terminal until the user quits.
// Input is read on tcell's goroutine and handed over a channel, so the engine
// is only touched from this loop.
func (f *frontend) run(eng *engine.Engine, config utils.Config) error {
	screen := f.screen
	screen.EnableMouse()
	screen.HideCursor()

	var (
		events = make(chan tcell.Event, 16)
		quit   = make(chan struct{})
	)
	go screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(time.Second / time.Duration(config.FPS))
	defer ticker.Stop()

	var (
		stats     = utils.NewStats()
		cursor    = [2]int{eng.Rows() / 2, eng.Columns() / 2}
		lastFrame = time.Now()
	)
	var paint brush

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if dispatch(eng, keyCommand(ev), cursor) {
					return nil
				}
			case *tcell.EventMouse:
				x, y := ev.Position()
				row, column := cellAt(x, y, termCellWidth, 1)
				pressed := ev.Buttons()&tcell.Button1 != 0
				if pressed {
					cursor = [2]int{row, column}
				}
				paint.stroke(eng, row, column, pressed)
			}
		case now := <-ticker.C:
			eng.Advance()
			if eng.IsRunning() {
				stats.Update(eng.Generation(), eng.Population(), now.Sub(lastFrame))
			}
			lastFrame = now
			draw(screen, eng, stats)
		}
	}
}

func keyCommand(ev *tcell.EventKey) command {
	switch ev.Key() {
	case tcell.KeyEnter:
		return cmdStart
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return cmdQuit
	case tcell.KeyRune:
		return commandForRune(ev.Rune())
	}
	return cmdNone
}

func draw(screen tcell.Screen, eng *engine.Engine, stats *utils.Stats) {
	screen.Clear()
	for row := range eng.Rows() {
		for column := range eng.Columns() {
			style := deadStyle
			if v, err := eng.CellValue(row, column); err == nil && v == model.Alive {
				style = aliveStyle
			}
			for i := range termCellWidth {
				screen.SetContent(column*termCellWidth+i, row, ' ', nil, style)
			}
		}
	}

	// The terminal may have shrunk since the board was sized
	_, h := screen.Size()
	statusRow := max(0, min(eng.Rows(), h-1))
	for i, r := range []rune(statusLine(eng, stats)) {
		screen.SetContent(i, statusRow, r, nil, statusStyle)
	}
	screen.Show()
}
