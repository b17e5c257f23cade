package endpoint

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config bundles the configuration for one session's component pair.
type Config struct {
	Accumulator AccumulatorConfig `json:"accumulator" yaml:"accumulator"`
	Strategy    StrategyConfig    `json:"strategy" yaml:"strategy"`
	Endpointer  EndpointerConfig  `json:"endpointer" yaml:"endpointer"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Accumulator: DefaultAccumulatorConfig(),
		Strategy:    DefaultStrategyConfig(),
		Endpointer:  DefaultEndpointerConfig(),
	}
}

// AccumulatorConfig configures segment filtering and buffering.
type AccumulatorConfig struct {
	// MaxBufferDurationMs bounds the span from first to last accepted
	// segment. Exceeding it flips the query status to TIMEOUT.
	// Default: 45000 (45 seconds)
	MaxBufferDurationMs int `json:"max_buffer_duration_ms" yaml:"max_buffer_duration_ms"`

	// MinConfidence is the acceptance threshold for segment confidence.
	// Default: 0.6
	MinConfidence float64 `json:"min_confidence" yaml:"min_confidence"`

	// RollingBufferSize is the capacity of the cross-turn context window.
	// Default: 10
	RollingBufferSize int `json:"rolling_buffer_size" yaml:"rolling_buffer_size"`

	// Normalizer configures text cleanup before acceptance.
	Normalizer NormalizerConfig `json:"normalizer" yaml:"normalizer"`
}

// DefaultAccumulatorConfig returns an AccumulatorConfig with sensible defaults.
func DefaultAccumulatorConfig() AccumulatorConfig {
	return AccumulatorConfig{
		MaxBufferDurationMs: 45000,
		MinConfidence:       0.6,
		RollingBufferSize:   10,
		Normalizer:          DefaultNormalizerConfig(),
	}
}

// MaxBufferDuration returns the buffer span limit as a duration.
func (c AccumulatorConfig) MaxBufferDuration() time.Duration {
	return time.Duration(c.MaxBufferDurationMs) * time.Millisecond
}

// NormalizerConfig enables or disables normalization steps.
type NormalizerConfig struct {
	// Enabled turns normalization on or off entirely. When off, only
	// surrounding whitespace is trimmed.
	// Default: true
	Enabled bool `json:"enabled" yaml:"enabled"`

	// RemoveFillers drops the fixed filler word and phrase set.
	// Default: true
	RemoveFillers bool `json:"remove_fillers" yaml:"remove_fillers"`

	// Deduplicate removes stutters and collapses adjacent duplicates.
	// Default: true
	Deduplicate bool `json:"deduplicate" yaml:"deduplicate"`
}

// DefaultNormalizerConfig returns a NormalizerConfig with all steps enabled.
func DefaultNormalizerConfig() NormalizerConfig {
	return NormalizerConfig{
		Enabled:       true,
		RemoveFillers: true,
		Deduplicate:   true,
	}
}

// StrategyConfig configures the silence gates of the endpointing strategies.
type StrategyConfig struct {
	// MinSilenceAmbiguousMs is the silence required to endpoint an
	// ambiguous or complete utterance.
	// Default: 400
	MinSilenceAmbiguousMs int `json:"min_silence_ambiguous_ms" yaml:"min_silence_ambiguous_ms"`

	// MinSilenceCompleteMs anchors the safety fallback for incomplete
	// utterances: twice this silence forces an endpoint.
	// Default: 800
	MinSilenceCompleteMs int `json:"min_silence_complete_ms" yaml:"min_silence_complete_ms"`

	// ConfidenceThreshold is reserved for future strategies that gate on
	// combined signal confidence.
	// Default: 0.7
	ConfidenceThreshold float64 `json:"confidence_threshold" yaml:"confidence_threshold"`
}

// DefaultStrategyConfig returns a StrategyConfig with sensible defaults.
func DefaultStrategyConfig() StrategyConfig {
	return StrategyConfig{
		MinSilenceAmbiguousMs: 400,
		MinSilenceCompleteMs:  800,
		ConfidenceThreshold:   0.7,
	}
}

// MinSilenceAmbiguous returns the ambiguous silence gate as a duration.
func (c StrategyConfig) MinSilenceAmbiguous() time.Duration {
	return time.Duration(c.MinSilenceAmbiguousMs) * time.Millisecond
}

// MinSilenceComplete returns the complete silence gate as a duration.
func (c StrategyConfig) MinSilenceComplete() time.Duration {
	return time.Duration(c.MinSilenceCompleteMs) * time.Millisecond
}

// EndpointerConfig configures cross-turn context tracking.
type EndpointerConfig struct {
	// TurnHistorySize bounds the in-memory history of completed turns that
	// feeds follow-up detection.
	// Default: 10
	TurnHistorySize int `json:"turn_history_size" yaml:"turn_history_size"`
}

// DefaultEndpointerConfig returns an EndpointerConfig with sensible defaults.
func DefaultEndpointerConfig() EndpointerConfig {
	return EndpointerConfig{TurnHistorySize: 10}
}

// Validate checks configuration ranges.
func (c Config) Validate() error {
	if c.Accumulator.MinConfidence < 0 || c.Accumulator.MinConfidence > 1 {
		return fmt.Errorf("config: min_confidence out of range [0,1]: %v", c.Accumulator.MinConfidence)
	}
	if c.Accumulator.MaxBufferDurationMs <= 0 {
		return fmt.Errorf("config: max_buffer_duration_ms must be positive: %d", c.Accumulator.MaxBufferDurationMs)
	}
	if c.Accumulator.RollingBufferSize <= 0 {
		return fmt.Errorf("config: rolling_buffer_size must be positive: %d", c.Accumulator.RollingBufferSize)
	}
	if c.Strategy.MinSilenceAmbiguousMs <= 0 || c.Strategy.MinSilenceCompleteMs <= 0 {
		return fmt.Errorf("config: silence gates must be positive: ambiguous=%dms complete=%dms",
			c.Strategy.MinSilenceAmbiguousMs, c.Strategy.MinSilenceCompleteMs)
	}
	if c.Strategy.MinSilenceAmbiguousMs > c.Strategy.MinSilenceCompleteMs {
		return fmt.Errorf("config: min_silence_ambiguous_ms (%d) exceeds min_silence_complete_ms (%d)",
			c.Strategy.MinSilenceAmbiguousMs, c.Strategy.MinSilenceCompleteMs)
	}
	if c.Strategy.ConfidenceThreshold < 0 || c.Strategy.ConfidenceThreshold > 1 {
		return fmt.Errorf("config: confidence_threshold out of range [0,1]: %v", c.Strategy.ConfidenceThreshold)
	}
	if c.Endpointer.TurnHistorySize <= 0 {
		return fmt.Errorf("config: turn_history_size must be positive: %d", c.Endpointer.TurnHistorySize)
	}
	return nil
}

// LoadFile reads a YAML config file over the defaults.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config %q: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFromEnv builds a Config from TURNPOINT_* environment variables,
// falling back to defaults for anything unset.
func LoadFromEnv() (Config, error) {
	cfg := DefaultConfig()
	cfg.Accumulator.MaxBufferDurationMs = envIntOr("TURNPOINT_MAX_BUFFER_MS", cfg.Accumulator.MaxBufferDurationMs)
	cfg.Accumulator.MinConfidence = envFloat64Or("TURNPOINT_MIN_CONFIDENCE", cfg.Accumulator.MinConfidence)
	cfg.Accumulator.RollingBufferSize = envIntOr("TURNPOINT_ROLLING_BUFFER_SIZE", cfg.Accumulator.RollingBufferSize)
	cfg.Accumulator.Normalizer.Enabled = envBoolOr("TURNPOINT_NORMALIZE", cfg.Accumulator.Normalizer.Enabled)
	cfg.Accumulator.Normalizer.RemoveFillers = envBoolOr("TURNPOINT_REMOVE_FILLERS", cfg.Accumulator.Normalizer.RemoveFillers)
	cfg.Accumulator.Normalizer.Deduplicate = envBoolOr("TURNPOINT_DEDUPLICATE", cfg.Accumulator.Normalizer.Deduplicate)
	cfg.Strategy.MinSilenceAmbiguousMs = envIntOr("TURNPOINT_MIN_SILENCE_AMBIGUOUS_MS", cfg.Strategy.MinSilenceAmbiguousMs)
	cfg.Strategy.MinSilenceCompleteMs = envIntOr("TURNPOINT_MIN_SILENCE_COMPLETE_MS", cfg.Strategy.MinSilenceCompleteMs)
	cfg.Strategy.ConfidenceThreshold = envFloat64Or("TURNPOINT_CONFIDENCE_THRESHOLD", cfg.Strategy.ConfidenceThreshold)
	cfg.Endpointer.TurnHistorySize = envIntOr("TURNPOINT_TURN_HISTORY_SIZE", cfg.Endpointer.TurnHistorySize)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat64Or(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
