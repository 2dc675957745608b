package model

// Pattern is a named rectangle of cells that can be stamped onto a grid
type Pattern struct {
	Name  string
	Cells [][]Cell
}

var (
	// Block is a 2x2 still life
	Block = Pattern{
		Name: "block",
		Cells: [][]Cell{
			{Alive, Alive},
			{Alive, Alive},
		},
	}

	// Blinker is a horizontal period-2 oscillator
	Blinker = Pattern{
		Name: "blinker",
		Cells: [][]Cell{
			{Alive, Alive, Alive},
		},
	}

	// Glider travels one cell diagonally every four generations
	Glider = Pattern{
		Name: "glider",
		Cells: [][]Cell{
			{Dead, Alive, Dead},
			{Dead, Dead, Alive},
			{Alive, Alive, Alive},
		},
	}
)

// Stamp writes the pattern with its top-left corner at (row, column). Cells past an edge
// wrap to the opposite side; an empty grid is left untouched.
func (g *Grid) Stamp(p Pattern, row, column int) {
	if g.rows == 0 || g.columns == 0 {
		return
	}
	for dr, line := range p.Cells {
		for dc, c := range line {
			r := ((row+dr)%g.rows + g.rows) % g.rows
			col := ((column+dc)%g.columns + g.columns) % g.columns
			g.cells[r][col] = c
		}
	}
}
