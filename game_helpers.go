package main

import (
	"fmt"

	"github.com/sheikhrachel/go-life/engine"
	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

// command is a user intent decoded from a key press
type command int

const (
	cmdNone command = iota
	cmdStart
	cmdStop
	cmdRandomize
	cmdClear
	cmdGlider
	cmdQuit
)

// commandForRune maps printable keys to commands
func commandForRune(r rune) command {
	switch r {
	case ' ':
		return cmdStop
	case 'r', 'R':
		return cmdRandomize
	case 'c', 'C':
		return cmdClear
	case 'g', 'G':
		return cmdGlider
	case 'q', 'Q':
		return cmdQuit
	}
	return cmdNone
}

// dispatch forwards a command to the engine and reports whether the program should exit.
// Gliders are placed with their top-left corner at cursor.
func dispatch(eng *engine.Engine, cmd command, cursor [2]int) (quit bool) {
	switch cmd {
	case cmdStart:
		eng.Start()
	case cmdStop:
		eng.Stop()
	case cmdRandomize:
		eng.Randomize()
	case cmdClear:
		eng.Clear()
	case cmdGlider:
		eng.Place(model.Glider, cursor[0], cursor[1])
	case cmdQuit:
		return true
	}
	return false
}

// cellAt converts a screen position to grid coordinates. Positions left of or above
// the board map to negative indices, which the engine ignores.
func cellAt(x, y, cellWidth, cellHeight int) (row, column int) {
	return floorDiv(y, cellHeight), floorDiv(x, cellWidth)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// brush toggles each cell once as the pointer is dragged across it
type brush struct {
	down bool
	last [2]int
}

func (b *brush) stroke(eng *engine.Engine, row, column int, pressed bool) {
	if !pressed {
		b.down = false
		return
	}
	cell := [2]int{row, column}
	if b.down && cell == b.last {
		return
	}
	b.down, b.last = true, cell
	eng.ToggleCell(row, column)
}

// statusLine summarizes the engine for a title bar or footer
func statusLine(eng *engine.Engine, stats *utils.Stats) string {
	living := eng.Population()
	density := 0.0
	if total := eng.Rows() * eng.Columns(); total > 0 {
		density = float64(living) / float64(total) * 100
	}

	status := eng.State().String()
	switch {
	case eng.IsRunning() && living == 0:
		status += " (extinct)"
	case eng.IsRunning() && eng.Stagnant():
		status += " (stagnant)"
	}

	return fmt.Sprintf("%s | Gen: %d | Living: %d | Density: %.1f%% | %.1f gen/sec | Peak: %d",
		status, eng.Generation(), living, density, stats.GenerationsPerSecond, stats.PeakPopulation)
}

// fitBoard shrinks the board so it fits a screen measured in character cells,
// keeping the bottom line free for the status line.
func fitBoard(config utils.Config, screenWidth, screenHeight, cellWidth int) utils.Config {
	config.PixelWidth = min(config.PixelWidth, max(0, screenWidth/cellWidth)*config.CellSize)
	config.PixelHeight = min(config.PixelHeight, max(0, screenHeight-1)*config.CellSize)
	return config
}
