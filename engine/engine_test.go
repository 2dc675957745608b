package engine

import (
	"math"
	"testing"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

// newEngine builds a rows x columns engine with one-pixel cells and a fixed seed
func newEngine(t *testing.T, rows, columns int) *Engine {
	t.Helper()
	config := utils.DefaultConfig()
	config.PixelWidth = columns
	config.PixelHeight = rows
	config.CellSize = 1
	config.Seed = 42
	e, err := New(config)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

// setAlive marks cells alive, failing the test on out-of-range coordinates
func setAlive(t *testing.T, e *Engine, cells ...[2]int) {
	t.Helper()
	for _, c := range cells {
		if err := e.live.Set(c[0], c[1], model.Alive); err != nil {
			t.Fatalf("set %v: %v", c, err)
		}
	}
}

// snapshot copies the live grid into a row-major slice of slices
func snapshot(e *Engine) [][]model.Cell {
	out := make([][]model.Cell, e.Rows())
	for row := range e.Rows() {
		out[row] = make([]model.Cell, e.Columns())
		for column := range e.Columns() {
			out[row][column] = e.live.At(row, column)
		}
	}
	return out
}

// expectAlive fails unless exactly the given cells are alive
func expectAlive(t *testing.T, e *Engine, cells ...[2]int) {
	t.Helper()
	want := make(map[[2]int]bool, len(cells))
	for _, c := range cells {
		want[c] = true
	}
	for row := range e.Rows() {
		for column := range e.Columns() {
			alive := e.live.At(row, column) == model.Alive
			if alive != want[[2]int{row, column}] {
				t.Fatalf("cell (%d,%d) alive=%v, expected %v", row, column, alive, want[[2]int{row, column}])
			}
		}
	}
}

func equalGrids(a, b [][]model.Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for row := range a {
		if len(a[row]) != len(b[row]) {
			return false
		}
		for column := range a[row] {
			if a[row][column] != b[row][column] {
				return false
			}
		}
	}
	return true
}

func TestNewDimensions(t *testing.T) {
	config := utils.DefaultConfig()
	e, err := New(config)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if e.Rows() != 75 || e.Columns() != 75 {
		t.Errorf("got %dx%d, want 75x75", e.Rows(), e.Columns())
	}
	if e.State() != Editing || e.IsRunning() {
		t.Errorf("new engine should be editing, got %v", e.State())
	}
	if e.Population() != 0 {
		t.Errorf("new engine should be empty, got %d live cells", e.Population())
	}
}

func TestNewInvalidCellSize(t *testing.T) {
	for _, size := range []int{0, -10} {
		config := utils.DefaultConfig()
		config.CellSize = size

		_, err := New(config)
		var cfgErr *model.ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("cell size %d: expected ConfigurationError, got %v", size, err)
		}
		if cfgErr.Value != size {
			t.Errorf("ConfigurationError.Value = %d, want %d", cfgErr.Value, size)
		}
	}
}

func TestNewInvalidDensity(t *testing.T) {
	for _, density := range []float64{2, -0.5, math.NaN()} {
		config := utils.DefaultConfig()
		config.RandomDensity = density
		if _, err := New(config); err == nil {
			t.Errorf("expected error for density %v", density)
		}
	}
}

func TestLoneCellDies(t *testing.T) {
	e := newEngine(t, 5, 5)
	setAlive(t, e, [2]int{2, 2})

	e.Start()
	e.Advance()

	expectAlive(t, e)
	if e.Generation() != 1 {
		t.Errorf("Generation = %d, want 1", e.Generation())
	}
}

func TestBlockStillLife(t *testing.T) {
	e := newEngine(t, 6, 6)
	block := [][2]int{{2, 2}, {2, 3}, {3, 2}, {3, 3}}
	setAlive(t, e, block...)

	e.Start()
	for range 3 {
		e.Advance()
		expectAlive(t, e, block...)
	}
}

func TestBlinkerOscillation(t *testing.T) {
	e := newEngine(t, 5, 5)
	horizontal := [][2]int{{2, 1}, {2, 2}, {2, 3}}
	vertical := [][2]int{{1, 2}, {2, 2}, {3, 2}}
	setAlive(t, e, horizontal...)

	e.Start()
	e.Advance()
	expectAlive(t, e, vertical...)

	e.Advance()
	expectAlive(t, e, horizontal...)
}

func TestGliderCrossesEdge(t *testing.T) {
	e := newEngine(t, 8, 8)
	e.Place(model.Glider, 6, 6)
	start := snapshot(e)

	// A glider returns to its shape shifted by (1,1) every 4 generations,
	// so after 32 it has wrapped once around an 8x8 torus.
	e.Start()
	for range 32 {
		e.Advance()
	}

	if e.Population() != 5 {
		t.Fatalf("glider population = %d, want 5", e.Population())
	}
	if !equalGrids(start, snapshot(e)) {
		t.Error("glider did not return to its starting position after wrapping")
	}
}

func TestLivingNeighborsWrapsDiagonally(t *testing.T) {
	tests := []struct {
		rows, columns int
	}{
		{5, 5},
		{4, 7},
		{10, 3},
	}

	for _, tt := range tests {
		e := newEngine(t, tt.rows, tt.columns)
		setAlive(t, e, [2]int{0, 0}, [2]int{tt.rows - 1, tt.columns - 1})

		if n := e.livingNeighbors(e.live, 0, 0); n != 1 {
			t.Errorf("%dx%d: (0,0) has %d living neighbors, want 1", tt.rows, tt.columns, n)
		}
		if n := e.livingNeighbors(e.live, tt.rows-1, tt.columns-1); n != 1 {
			t.Errorf("%dx%d: corner has %d living neighbors, want 1", tt.rows, tt.columns, n)
		}
	}
}

func TestLivingNeighborsWrapsEdges(t *testing.T) {
	e := newEngine(t, 5, 5)
	setAlive(t, e, [2]int{4, 2}, [2]int{2, 4}, [2]int{0, 1})

	if n := e.livingNeighbors(e.live, 0, 2); n != 2 {
		t.Errorf("(0,2) has %d living neighbors, want 2", n)
	}
	if n := e.livingNeighbors(e.live, 2, 0); n != 1 {
		t.Errorf("(2,0) has %d living neighbors, want 1", n)
	}
}

func TestLivingNeighborsSingleRow(t *testing.T) {
	e := newEngine(t, 1, 4)
	setAlive(t, e, [2]int{0, 0})

	// With one row, the rows above and below are the cell's own row, so it counts itself twice
	if n := e.livingNeighbors(e.live, 0, 0); n != 2 {
		t.Errorf("(0,0) on 1x4 has %d living neighbors, want 2", n)
	}
}

func TestDegenerateGrid(t *testing.T) {
	config := utils.DefaultConfig()
	config.PixelWidth = 5
	config.PixelHeight = 5
	config.CellSize = 10

	e, err := New(config)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if e.Rows() != 0 || e.Columns() != 0 {
		t.Fatalf("got %dx%d, want 0x0", e.Rows(), e.Columns())
	}

	e.ToggleCell(0, 0)
	e.Randomize()
	e.Start()
	e.Advance()

	if e.Population() != 0 {
		t.Errorf("empty grid has population %d", e.Population())
	}
	if _, err := e.CellValue(0, 0); !errors.Is(err, model.ErrIndexOutOfRange) {
		t.Errorf("CellValue on empty grid: got %v, want ErrIndexOutOfRange", err)
	}
}

func TestEditsIgnoredWhileRunning(t *testing.T) {
	tests := []struct {
		name string
		edit func(e *Engine)
	}{
		{"toggle", func(e *Engine) { e.ToggleCell(0, 0) }},
		{"clear", func(e *Engine) { e.Clear() }},
		{"randomize", func(e *Engine) { e.Randomize() }},
		{"place", func(e *Engine) { e.Place(model.Block, 0, 0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, 6, 6)
			setAlive(t, e, [2]int{2, 2}, [2]int{2, 3}, [2]int{3, 2}, [2]int{3, 3})
			before := snapshot(e)

			e.Start()
			tt.edit(e)
			if !equalGrids(before, snapshot(e)) {
				t.Fatal("grid changed by an edit while running")
			}

			e.Stop()
			e.Advance()
			if !equalGrids(before, snapshot(e)) {
				t.Fatal("edit was applied after stopping")
			}
		})
	}
}

func TestAdvancePanicsOnMismatchedBuffers(t *testing.T) {
	for _, size := range [][2]int{{4, 5}, {6, 5}, {5, 3}} {
		e := newEngine(t, 5, 5)
		scratch, err := model.NewGrid(size[1], size[0], 1)
		if err != nil {
			t.Fatal(err)
		}
		e.scratch = scratch
		e.Start()

		func() {
			defer func() {
				r := recover()
				err, ok := r.(error)
				if !ok {
					t.Fatalf("%dx%d scratch: expected panic with an error, got %v", size[0], size[1], r)
				}
				if !errors.Is(err, model.ErrDimensionMismatch) {
					t.Errorf("%dx%d scratch: got %v, want ErrDimensionMismatch", size[0], size[1], err)
				}
			}()
			e.Advance()
		}()
	}
}

func TestAdvanceWhileEditing(t *testing.T) {
	e := newEngine(t, 5, 5)
	setAlive(t, e, [2]int{2, 2})

	e.Advance()

	expectAlive(t, e, [2]int{2, 2})
	if e.Generation() != 0 {
		t.Errorf("Generation = %d, want 0", e.Generation())
	}
}

func TestStartStopIdempotent(t *testing.T) {
	e := newEngine(t, 3, 3)

	e.Stop()
	e.Stop()
	if e.IsRunning() {
		t.Error("double Stop left the engine running")
	}

	e.Start()
	e.Start()
	if !e.IsRunning() || e.State() != Running {
		t.Errorf("double Start: state = %v", e.State())
	}

	e.Stop()
	if e.State() != Editing {
		t.Errorf("Stop: state = %v", e.State())
	}
}

func TestToggleOutOfRange(t *testing.T) {
	e := newEngine(t, 4, 6)
	setAlive(t, e, [2]int{1, 1})
	before := snapshot(e)

	for _, c := range [][2]int{{-1, 0}, {e.Rows(), 0}, {0, -1}, {0, e.Columns()}} {
		e.ToggleCell(c[0], c[1])
	}

	if !equalGrids(before, snapshot(e)) {
		t.Error("out-of-range toggles changed the grid")
	}
}

func TestToggleAndCellValue(t *testing.T) {
	e := newEngine(t, 4, 4)

	e.ToggleCell(1, 2)
	if v, err := e.CellValue(1, 2); err != nil || v != model.Alive {
		t.Fatalf("CellValue(1,2) = %v, %v; want Alive", v, err)
	}

	e.ToggleCell(1, 2)
	if v, _ := e.CellValue(1, 2); v != model.Dead {
		t.Errorf("second toggle left cell %v", v)
	}

	if _, err := e.CellValue(4, 0); !errors.Is(err, model.ErrIndexOutOfRange) {
		t.Errorf("CellValue(4,0): got %v, want ErrIndexOutOfRange", err)
	}
}

func TestRandomizeAndClear(t *testing.T) {
	e := newEngine(t, 40, 40)

	e.Randomize()
	population := e.Population()
	// 1600 cells at density 0.25 gives a mean of 400 and a standard deviation near 17
	if population < 300 || population > 500 {
		t.Errorf("randomized population = %d, want about 400", population)
	}

	e.Clear()
	if e.Population() != 0 {
		t.Errorf("population after Clear = %d", e.Population())
	}
}

func TestRandomizeRespectsDensity(t *testing.T) {
	config := utils.DefaultConfig()
	config.PixelWidth, config.PixelHeight, config.CellSize = 10, 10, 1

	config.RandomDensity = 1
	full, err := New(config)
	if err != nil {
		t.Fatal(err)
	}
	full.Randomize()
	if full.Population() != 100 {
		t.Errorf("density 1: population = %d, want 100", full.Population())
	}

	config.RandomDensity = 0
	empty, err := New(config)
	if err != nil {
		t.Fatal(err)
	}
	empty.Randomize()
	if empty.Population() != 0 {
		t.Errorf("density 0: population = %d, want 0", empty.Population())
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	config := utils.DefaultConfig()
	config.PixelWidth, config.PixelHeight, config.CellSize = 37, 23, 1
	config.Seed = 7

	sequential, err := New(config)
	if err != nil {
		t.Fatal(err)
	}
	config.Workers = 4
	parallel, err := New(config)
	if err != nil {
		t.Fatal(err)
	}

	// Same seed, same random fill
	sequential.Randomize()
	parallel.Randomize()
	if !equalGrids(snapshot(sequential), snapshot(parallel)) {
		t.Fatal("seeded fills differ")
	}

	sequential.Start()
	parallel.Start()
	for gen := range 20 {
		sequential.Advance()
		parallel.Advance()
		if !equalGrids(snapshot(sequential), snapshot(parallel)) {
			t.Fatalf("generation %d differs between 1 and 4 workers", gen+1)
		}
	}
}

func TestStagnant(t *testing.T) {
	e := newEngine(t, 6, 6)
	e.Place(model.Block, 2, 2)
	e.Start()

	e.Advance()
	if e.Stagnant() {
		t.Error("one generation is not enough history to be stagnant")
	}
	e.Advance()
	if !e.Stagnant() {
		t.Error("block should be stagnant after two generations")
	}

	e.Stop()
	e.ToggleCell(0, 0)
	if e.Stagnant() {
		t.Error("editing should reset stagnation history")
	}
}

func TestStagnantBlinker(t *testing.T) {
	e := newEngine(t, 7, 7)
	e.Place(model.Blinker, 3, 2)
	e.Start()

	e.Advance()
	e.Advance()
	if e.Stagnant() {
		t.Error("two distinct phases should not be stagnant yet")
	}
	e.Advance()
	if !e.Stagnant() {
		t.Error("blinker should be stagnant once a phase repeats")
	}
}

func TestStateString(t *testing.T) {
	if Editing.String() != "Editing" || Running.String() != "Running" {
		t.Errorf("got %q and %q", Editing, Running)
	}
	if State(9).String() != "Unknown" {
		t.Errorf("got %q for unknown state", State(9))
	}
}
