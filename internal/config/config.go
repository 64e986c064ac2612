// Package config provides configuration structures and defaults for rlite.
package config

const defaultMaxPages = 100

// Config holds the tunable parameters of a table. Page geometry (page size,
// row layout) is part of the file format and deliberately not configurable.
type Config struct {
	// MaxPages is the hard ceiling on the number of pages one table may
	// hold. Running into it is an error, not a resize.
	MaxPages int
}

// DefaultConfig returns a Config struct populated with default values.
func DefaultConfig() *Config {
	return &Config{
		MaxPages: defaultMaxPages,
	}
}

// FillDefaults sets any zero-value fields in the Config to their default values.
func (c *Config) FillDefaults() {
	def := DefaultConfig()
	if c.MaxPages == 0 {
		c.MaxPages = def.MaxPages
	}
}
