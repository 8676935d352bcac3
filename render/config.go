package render

import (
	"fmt"
	"math"
	"runtime"
)

const (
	DefaultMaxIterations = 1000
	DefaultBailout       = 256.0
	DefaultTileHeight    = 16
	// DefaultMaxPixels caps a frame at 256 MiB of pixel data.
	DefaultMaxPixels = 1 << 26
)

// Config holds the tunables of one render. Every call gets its own copy,
// so concurrent renders with different settings never interfere.
type Config struct {
	MaxIterations int
	// Bailout is the escape radius. Squared magnitudes are compared
	// against Bailout², so 256 here is the same threshold as 65536 on
	// |z|².
	Bailout float64
	Policy  Policy
	// Workers is the number of goroutines sharing a frame's tiles.
	// Zero or less means GOMAXPROCS.
	Workers int
	// TileHeight is the number of rows per tile. Zero or less means
	// DefaultTileHeight.
	TileHeight int
	// MaxPixels bounds width*height of a frame. Zero or less means
	// DefaultMaxPixels.
	MaxPixels int
}

// Option configures a Config.
type Option func(*Config)

func WithMaxIterations(n int) Option {
	return func(c *Config) { c.MaxIterations = n }
}

func WithBailout(radius float64) Option {
	return func(c *Config) { c.Bailout = radius }
}

func WithPolicy(p Policy) Option {
	return func(c *Config) { c.Policy = p }
}

func WithWorkers(n int) Option {
	return func(c *Config) { c.Workers = n }
}

func WithTileHeight(rows int) Option {
	return func(c *Config) { c.TileHeight = rows }
}

func WithMaxPixels(n int) Option {
	return func(c *Config) { c.MaxPixels = n }
}

// DefaultConfig returns 1000 iterations, bailout radius 256 and the
// growth color policy.
func DefaultConfig() Config {
	return Config{
		MaxIterations: DefaultMaxIterations,
		Bailout:       DefaultBailout,
		Policy:        DefaultGrowth(),
		TileHeight:    DefaultTileHeight,
	}
}

// NewConfig applies opts on top of DefaultConfig.
func NewConfig(opts ...Option) Config {
	c := DefaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Validate checks the iteration budget, the bailout radius and the color
// policy. A radius below 2 would classify points of the set as escaping.
func (c Config) Validate() error {
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidIterations, c.MaxIterations)
	}
	if !(c.Bailout >= 2) || math.IsInf(c.Bailout, 0) {
		return fmt.Errorf("%w: %g (must be at least 2)", ErrInvalidBailout, c.Bailout)
	}
	if v, ok := c.Policy.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// CheckSize reports ErrInvalidDimensions unless a width×height frame is
// non-empty and within MaxPixels.
func (c Config) CheckSize(width, height int) error {
	if width <= 0 || height <= 0 || width > c.maxPixels()/height {
		return fmt.Errorf("%w: %dx%d (at most %d pixels)", ErrInvalidDimensions, width, height, c.maxPixels())
	}
	return nil
}

func (c Config) policy() Policy {
	if c.Policy == nil {
		return DefaultGrowth()
	}
	return c.Policy
}

func (c Config) workers() int {
	if c.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return c.Workers
}

func (c Config) maxPixels() int {
	if c.MaxPixels <= 0 {
		return DefaultMaxPixels
	}
	return min(c.MaxPixels, math.MaxInt/4)
}

func (c Config) tileHeight() int {
	if c.TileHeight <= 0 {
		return DefaultTileHeight
	}
	return c.TileHeight
}
