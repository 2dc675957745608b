package utils

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/pkg/errors"
)

// Config holds the configuration for the simulation and its front end
type Config struct {
	PixelWidth    int     `json:"pixel_width"`
	PixelHeight   int     `json:"pixel_height"`
	CellSize      int     `json:"cell_size"`
	FPS           int     `json:"fps"`
	RandomDensity float64 `json:"random_density"`
	Seed          int64   `json:"seed"` // 0 seeds from the clock
	Workers       int     `json:"workers"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		PixelWidth:    750,
		PixelHeight:   750,
		CellSize:      10,
		FPS:           60,
		RandomDensity: 0.25, // one cell in four starts alive
		Seed:          0,
		Workers:       1,
	}
}

// LoadConfig loads configuration from JSON file on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Bind attaches the configuration to the provided FlagSet, using current values as defaults
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.PixelWidth, "width", c.PixelWidth, "board width in pixels")
	fs.IntVar(&c.PixelHeight, "height", c.PixelHeight, "board height in pixels")
	fs.IntVar(&c.CellSize, "cell", c.CellSize, "cell edge in pixels")
	fs.IntVar(&c.FPS, "fps", c.FPS, "frames (and generations) per second")
	fs.Float64Var(&c.RandomDensity, "density", c.RandomDensity, "chance a cell is alive after randomize")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed, 0 for time based")
	fs.IntVar(&c.Workers, "workers", c.Workers, "row bands evaluated in parallel per generation")
}

// Validate reports the first unusable setting
func (c Config) Validate() error {
	switch {
	case c.PixelWidth <= 0:
		return errors.Errorf("[Config.Validate] pixel_width must be positive, got %d", c.PixelWidth)
	case c.PixelHeight <= 0:
		return errors.Errorf("[Config.Validate] pixel_height must be positive, got %d", c.PixelHeight)
	case c.CellSize <= 0:
		return errors.Errorf("[Config.Validate] cell_size must be positive, got %d", c.CellSize)
	case c.FPS <= 0:
		return errors.Errorf("[Config.Validate] fps must be positive, got %d", c.FPS)
	case !(c.RandomDensity >= 0 && c.RandomDensity <= 1):
		return errors.Errorf("[Config.Validate] random_density must be within [0, 1], got %v", c.RandomDensity)
	case c.Workers <= 0:
		return errors.Errorf("[Config.Validate] workers must be positive, got %d", c.Workers)
	}
	return nil
}
