// Package meta implements the engine that drives a compiled pattern.
//
// The engine coordinates three parts:
//   - Matcher: the backtracking operator tree, anchored at a given offset
//   - Prefilter: fast literal search proposing candidate offsets for Find
//   - Result: the element stack the root package's views navigate
//
// Strategy selection is based on:
//   - Anchoring (a pattern starting with "^" can only match at offset 0)
//   - Prefix literals (one literal or a few bytes → memchr/memmem,
//     several literals → Aho-Corasick)
package meta

// Config controls compilation and search behavior.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.UTF8 = true
//	engine, err := meta.CompileWithConfig("{α-ω}+", config)
type Config struct {
	// UTF8 compiles the pattern in UTF-8 mode: literals, sets and "."
	// match whole code points.
	// Default: false
	UTF8 bool

	// EnablePrefilter enables literal-based candidate search in Find.
	// When false, Find tries the matcher at every offset.
	// Default: true
	EnablePrefilter bool

	// MinLiteralLen is the minimum length of the shortest prefix literal
	// for a prefilter to be built. Shorter literals may produce too many
	// false candidates.
	// Default: 1
	MinLiteralLen int

	// MaxLiterals limits the number of prefix literals extracted for
	// prefiltering; patterns producing more get no prefilter.
	// Default: 64
	MaxLiterals int

	// MaxNestingDepth limits how deeply groups may nest.
	// Default: 100
	MaxNestingDepth int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UTF8:            false,
		EnablePrefilter: true,
		MinLiteralLen:   1,
		MaxLiterals:     64,
		MaxNestingDepth: 100,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - MinLiteralLen: 1 to 64
//   - MaxLiterals: 1 to 1,000
//   - MaxNestingDepth: 10 to 1,000
func (c Config) Validate() error {
	if c.EnablePrefilter {
		if c.MinLiteralLen < 1 || c.MinLiteralLen > 64 {
			return &ConfigError{
				Field:   "MinLiteralLen",
				Message: "must be between 1 and 64",
			}
		}
		if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
			return &ConfigError{
				Field:   "MaxLiterals",
				Message: "must be between 1 and 1,000",
			}
		}
	}

	if c.MaxNestingDepth < 10 || c.MaxNestingDepth > 1_000 {
		return &ConfigError{
			Field:   "MaxNestingDepth",
			Message: "must be between 10 and 1,000",
		}
	}

	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "corepat: invalid config: " + e.Field + ": " + e.Message
}
