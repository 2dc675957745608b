// Package engine runs Conway's Game of Life on a toroidal grid.
//
// An Engine starts in the Editing state, where cells may be toggled, cleared or
// randomized. Start switches it to Running, where each Advance call computes one
// generation and edits are dropped. Stop returns to Editing.
//
// The Engine is not safe for concurrent use. Front ends drive it from a single loop,
// calling Advance once per frame.
package engine

import (
	"math/rand/v2"
	"runtime"
	"slices"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/rules"
	"github.com/sheikhrachel/go-life/utils"
)

// historySize is how many recent generations are kept for stagnation checks
const historySize = 5

// Moore neighbourhood offsets as (row, column) deltas
var offsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Engine owns the live grid and its scratch buffer
type Engine struct {
	live    *model.Grid
	scratch *model.Grid
	rows    int
	columns int
	state   State

	density float64
	rng     *rand.Rand
	workers int

	generation int
	history    []string
}

// New creates an engine in the Editing state with an all-dead grid sized from the
// config's pixel dimensions and cell size.
func New(config utils.Config) (*Engine, error) {
	if !(config.RandomDensity >= 0 && config.RandomDensity <= 1) {
		return nil, errors.Errorf("[engine.New] random density must be within [0, 1], got %v", config.RandomDensity)
	}

	live, err := model.NewGrid(config.PixelWidth, config.PixelHeight, config.CellSize)
	if err != nil {
		return nil, errors.Wrap(err, "[engine.New] live grid")
	}
	scratch, err := model.NewGrid(config.PixelWidth, config.PixelHeight, config.CellSize)
	if err != nil {
		return nil, errors.Wrap(err, "[engine.New] scratch grid")
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Engine{
		live:    live,
		scratch: scratch,
		rows:    live.Rows(),
		columns: live.Columns(),
		state:   Editing,
		density: config.RandomDensity,
		rng:     rand.New(rand.NewPCG(uint64(seed), 0)),
		workers: max(1, config.Workers),
	}, nil
}

// Rows returns the number of grid rows
func (e *Engine) Rows() int {
	return e.rows
}

// Columns returns the number of grid columns
func (e *Engine) Columns() int {
	return e.columns
}

// CellValue returns the state of a live-grid cell
func (e *Engine) CellValue(row, column int) (model.Cell, error) {
	return e.live.Get(row, column)
}

// Generation returns how many generations have been computed
func (e *Engine) Generation() int {
	return e.generation
}

// Population returns the number of living cells
func (e *Engine) Population() int {
	return e.live.Population()
}

// ToggleCell flips a cell while editing. Out-of-range coordinates are ignored.
func (e *Engine) ToggleCell(row, column int) {
	if !e.editable() {
		return
	}
	e.live.ToggleCell(row, column)
	e.resetHistory()
}

// Clear kills every cell while editing
func (e *Engine) Clear() {
	if !e.editable() {
		return
	}
	e.live.Clear()
	e.resetHistory()
}

// Randomize refills the grid at the configured density while editing
func (e *Engine) Randomize() {
	if !e.editable() {
		return
	}
	e.live.FillRandom(e.rng, e.density)
	e.resetHistory()
}

// Place stamps a pattern at (row, column) while editing, wrapping across edges
func (e *Engine) Place(p model.Pattern, row, column int) {
	if !e.editable() {
		return
	}
	e.live.Stamp(p, row, column)
	e.resetHistory()
}

// Advance computes one generation when running and does nothing while editing
func (e *Engine) Advance() {
	if e.state != Running {
		return
	}

	if err := e.checkBuffers(); err != nil {
		panic(err)
	}

	e.evaluate()
	if err := e.live.CopyFrom(e.scratch); err != nil {
		panic(errors.Wrap(err, "[Engine.Advance] live and scratch grids diverged"))
	}

	e.generation++
	e.record()
}

// Stagnant reports whether the current generation repeats one of the last few,
// which happens for still lifes, short-period oscillators and an empty grid.
func (e *Engine) Stagnant() bool {
	if len(e.history) < 2 {
		return false
	}
	current := e.history[len(e.history)-1]
	return slices.Contains(e.history[:len(e.history)-1], current)
}

// evaluate writes the next generation of live into scratch
func (e *Engine) evaluate() {
	if e.workers == 1 || e.rows < 2 {
		e.evaluateRows(0, e.rows)
		return
	}

	var (
		eg            errgroup.Group
		numWorkers    = min(e.workers, e.rows, runtime.NumCPU())
		rowsPerWorker = (e.rows + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, e.rows)
		)
		if startRow >= e.rows {
			break
		}

		eg.Go(func() error {
			e.evaluateRows(startRow, endRow)
			return nil
		})
	}

	// Bands only read live and write disjoint rows of scratch, so they cannot fail
	_ = eg.Wait()
}

func (e *Engine) evaluateRows(startRow, endRow int) {
	for row := startRow; row < endRow; row++ {
		for column := range e.columns {
			n := e.livingNeighbors(e.live, row, column)
			e.scratch.Put(row, column, rules.NextState(e.live.At(row, column), n))
		}
	}
}

// livingNeighbors counts live cells among the eight neighbours of (row, column),
// wrapping across every edge. On a grid one cell wide or tall a cell can be its own neighbour.
func (e *Engine) livingNeighbors(g *model.Grid, row, column int) int {
	count := 0
	for _, off := range offsets {
		r := ((row+off[0])%e.rows + e.rows) % e.rows
		c := ((column+off[1])%e.columns + e.columns) % e.columns
		if g.At(r, c) == model.Alive {
			count++
		}
	}
	return count
}

// checkBuffers verifies that both grids still match the dimensions used for wrap arithmetic
func (e *Engine) checkBuffers() error {
	for _, g := range []*model.Grid{e.live, e.scratch} {
		if g.Rows() != e.rows || g.Columns() != e.columns {
			return errors.Wrapf(model.ErrDimensionMismatch, "[Engine.Advance] %dx%d grid in a %dx%d engine",
				g.Rows(), g.Columns(), e.rows, e.columns)
		}
	}
	return nil
}

func (e *Engine) editable() bool {
	return e.state == Editing
}

func (e *Engine) resetHistory() {
	e.history = e.history[:0]
}

// record adds the current generation to history, keeping the last historySize entries
func (e *Engine) record() {
	e.history = append(e.history, e.live.Hash())
	if len(e.history) > historySize {
		e.history = slices.Delete(e.history, 0, 1)
	}
}
