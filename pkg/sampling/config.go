package sampling

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

const (
	// DefaultCharacterLimit sits just under ChatGPT's free tier input ceiling.
	DefaultCharacterLimit = 20000

	// DefaultInitialContentRatio is the share of the limit kept as an unsampled lead-in.
	DefaultInitialContentRatio = 0.4

	// DefaultChunkSize is roughly fifteen seconds of spoken transcript.
	DefaultChunkSize = 300

	// DefaultMinChunksPerSegment is how many consecutive chunks each sample point pulls in.
	DefaultMinChunksPerSegment = 3

	// partialThreshold is the headroom a prefix slice needs before it is worth appending.
	partialThreshold = 10
)

// ErrInvalidConfig is returned (wrapped in a *ValidationError) for unusable fit settings.
var ErrInvalidConfig = errors.New("invalid fit config")

// Config controls how text is fitted to a character budget. Every field must
// be set; WithDefaults fills the ones a caller leaves at zero.
type Config struct {
	CharacterLimit      int     `json:"characterLimit,omitempty" yaml:"characterLimit,omitempty"`
	InitialContentRatio float64 `json:"initialContentRatio,omitempty" yaml:"initialContentRatio,omitempty"`
	ChunkSize           int     `json:"chunkSize,omitempty" yaml:"chunkSize,omitempty"`
	MinChunksPerSegment int     `json:"minChunksPerSegment,omitempty" yaml:"minChunksPerSegment,omitempty"`
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		CharacterLimit:      DefaultCharacterLimit,
		InitialContentRatio: DefaultInitialContentRatio,
		ChunkSize:           DefaultChunkSize,
		MinChunksPerSegment: DefaultMinChunksPerSegment,
	}
}

// ValidationError describes a config field that cannot be used.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %v %s", ErrInvalidConfig, e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

// WithDefaults returns c with zero fields taken from DefaultConfig. Negative or
// out of range values are kept so Validate still reports them.
func (c Config) WithDefaults() Config {
	merged := c
	// Merge only fails for nil or mismatched arguments
	if err := mergo.Merge(&merged, DefaultConfig()); err != nil {
		return DefaultConfig()
	}
	return merged
}

// Validate checks every field of a fully populated config.
func (c Config) Validate() error {
	if c.CharacterLimit <= 0 {
		return &ValidationError{Field: "characterLimit", Value: c.CharacterLimit, Reason: "must be positive"}
	}
	if c.ChunkSize <= 0 {
		return &ValidationError{Field: "chunkSize", Value: c.ChunkSize, Reason: "must be positive"}
	}
	if c.MinChunksPerSegment <= 0 {
		return &ValidationError{Field: "minChunksPerSegment", Value: c.MinChunksPerSegment, Reason: "must be positive"}
	}
	if c.InitialContentRatio <= 0 || c.InitialContentRatio >= 1 {
		return &ValidationError{Field: "initialContentRatio", Value: c.InitialContentRatio, Reason: "must be between 0 and 1"}
	}
	return nil
}
