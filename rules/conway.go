package rules

import "github.com/sheikhrachel/go-life/model"

/*
NextState applies Conway's Game of Life (B3/S23) to one cell.

A live cell survives with two or three live neighbours and dies otherwise;
a dead cell is born with exactly three.
*/
func NextState(current model.Cell, neighbors int) model.Cell {
	if neighbors == 3 || (current == model.Alive && neighbors == 2) {
		return model.Alive
	}
	return model.Dead
}
