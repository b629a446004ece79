package lz77

import "fmt"

// Default configuration values.
const (
	DefaultWindowSize = 4096
	DefaultMinMatch   = 3

	// MaxWindowSize is the largest history the finder will search.
	MaxWindowSize = 1 << 30
)

// Config controls how Encode looks for matches.
type Config struct {
	// WindowSize is the maximum distance (in bytes) to look back for a
	// match. The default is 4096.
	WindowSize int

	// MinMatch is the shortest match that will be emitted instead of
	// literals. The default is 3.
	MinMatch int

	// MaxMatch caps the length of a single match. Zero means matches are
	// limited only by the end of the input.
	MaxMatch int

	// MaxChain is how many entries of a hash chain are examined for each
	// position. Zero means every entry inside the window.
	MaxChain int
}

// DefaultConfig returns the configuration used by Compress.
func DefaultConfig() Config {
	return Config{
		WindowSize: DefaultWindowSize,
		MinMatch:   DefaultMinMatch,
	}
}

// ApplyDefaults replaces zero WindowSize and MinMatch with their defaults.
// MaxMatch and MaxChain are meaningful at zero and are left alone.
func (c *Config) ApplyDefaults() {
	if c.WindowSize == 0 {
		c.WindowSize = DefaultWindowSize
	}
	if c.MinMatch == 0 {
		c.MinMatch = DefaultMinMatch
	}
}

// Verify checks that every field is in range. The error wraps
// ErrInvalidConfig.
func (c *Config) Verify() error {
	if !(1 <= c.WindowSize && c.WindowSize <= MaxWindowSize) {
		return fmt.Errorf("%w: WindowSize=%d out of range [1,%d]",
			ErrInvalidConfig, c.WindowSize, MaxWindowSize)
	}
	if c.MinMatch < 1 {
		return fmt.Errorf("%w: MinMatch=%d must be positive",
			ErrInvalidConfig, c.MinMatch)
	}
	if c.MaxMatch != 0 && c.MaxMatch < c.MinMatch {
		return fmt.Errorf("%w: MaxMatch=%d less than MinMatch=%d",
			ErrInvalidConfig, c.MaxMatch, c.MinMatch)
	}
	if c.MaxChain < 0 {
		return fmt.Errorf("%w: MaxChain=%d is negative",
			ErrInvalidConfig, c.MaxChain)
	}
	return nil
}
