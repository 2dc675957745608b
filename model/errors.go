package model

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrIndexOutOfRange is returned when a coordinate falls outside the grid
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidCell is returned when a cell value is neither Dead nor Alive
	ErrInvalidCell = errors.New("invalid cell value")

	// ErrDimensionMismatch is returned when two grids of different sizes are combined
	ErrDimensionMismatch = errors.New("grid dimensions differ")
)

// ConfigurationError reports a grid constructed from unusable parameters.
// Want names the accepted range, e.g. "positive".
type ConfigurationError struct {
	Field string
	Want  string
	Value int
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s must be %s, got %d", e.Field, e.Want, e.Value)
}
