package model

import (
	"crypto/md5"
	"fmt"
	"math/rand/v2"

	"github.com/pkg/errors"
)

// Cell is the state of a single grid position
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

// Grid is a fixed-size board of cells indexed [row][column]
type Grid struct {
	rows    int
	columns int
	cells   [][]Cell
}

// NewGrid creates a grid covering pixelWidth x pixelHeight with square cells of cellEdge pixels.
// Sizes smaller than one cell produce an empty grid.
func NewGrid(pixelWidth, pixelHeight, cellEdge int) (*Grid, error) {
	switch {
	case cellEdge <= 0:
		return nil, &ConfigurationError{Field: "cell edge", Want: "positive", Value: cellEdge}
	case pixelWidth < 0:
		return nil, &ConfigurationError{Field: "pixel width", Want: "non-negative", Value: pixelWidth}
	case pixelHeight < 0:
		return nil, &ConfigurationError{Field: "pixel height", Want: "non-negative", Value: pixelHeight}
	}

	rows, columns := pixelHeight/cellEdge, pixelWidth/cellEdge
	cells := make([][]Cell, rows)
	for i := range cells {
		cells[i] = make([]Cell, columns)
	}
	return &Grid{
		rows:    rows,
		columns: columns,
		cells:   cells,
	}, nil
}

// Rows returns the number of rows
func (g *Grid) Rows() int {
	return g.rows
}

// Columns returns the number of columns
func (g *Grid) Columns() int {
	return g.columns
}

// InBounds reports whether (row, column) addresses a cell
func (g *Grid) InBounds(row, column int) bool {
	return row >= 0 && row < g.rows && column >= 0 && column < g.columns
}

// Get returns the state of a cell
func (g *Grid) Get(row, column int) (Cell, error) {
	if !g.InBounds(row, column) {
		return Dead, errors.Wrapf(ErrIndexOutOfRange, "[Grid.Get] (%d, %d) on %dx%d grid", row, column, g.rows, g.columns)
	}
	return g.cells[row][column], nil
}

// Set writes a cell
func (g *Grid) Set(row, column int, value Cell) error {
	if value != Dead && value != Alive {
		return errors.Wrapf(ErrInvalidCell, "[Grid.Set] value %d", value)
	}
	if !g.InBounds(row, column) {
		return errors.Wrapf(ErrIndexOutOfRange, "[Grid.Set] (%d, %d) on %dx%d grid", row, column, g.rows, g.columns)
	}
	g.cells[row][column] = value
	return nil
}

// At reads a cell without bounds checking. Callers keep coordinates in range.
func (g *Grid) At(row, column int) Cell {
	return g.cells[row][column]
}

// Put writes a cell without bounds or value checks. Callers keep coordinates in
// range and values Dead or Alive.
func (g *Grid) Put(row, column int, value Cell) {
	g.cells[row][column] = value
}

// ToggleCell flips a cell. Coordinates outside the grid are ignored.
func (g *Grid) ToggleCell(row, column int) {
	if !g.InBounds(row, column) {
		return
	}
	g.cells[row][column] ^= Alive
}

// FillRandom makes each cell alive independently with the given probability
func (g *Grid) FillRandom(rng *rand.Rand, density float64) {
	for row := range g.rows {
		for column := range g.columns {
			if rng.Float64() < density {
				g.cells[row][column] = Alive
			} else {
				g.cells[row][column] = Dead
			}
		}
	}
}

// Clear kills every cell
func (g *Grid) Clear() {
	for row := range g.rows {
		clear(g.cells[row])
	}
}

// CopyFrom overwrites every cell with the value at the same position in src
func (g *Grid) CopyFrom(src *Grid) error {
	if g.rows != src.rows || g.columns != src.columns {
		return errors.Wrapf(ErrDimensionMismatch, "[Grid.CopyFrom] %dx%d into %dx%d",
			src.rows, src.columns, g.rows, g.columns)
	}
	for row := range g.rows {
		copy(g.cells[row], src.cells[row])
	}
	return nil
}

// Population returns the number of living cells
func (g *Grid) Population() (count int) {
	for row := range g.rows {
		for column := range g.columns {
			count += int(g.cells[row][column])
		}
	}
	return
}

// Hash returns an MD5 digest of the cell states
func (g *Grid) Hash() string {
	h := md5.New()
	buf := make([]byte, g.columns)
	for row := range g.rows {
		for column, c := range g.cells[row] {
			buf[column] = byte(c)
		}
		h.Write(buf)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
