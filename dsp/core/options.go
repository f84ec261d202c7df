package core

// Config defines the settings shared by every analysis stage.
//
// One Config value is built at the entry point and threaded through the
// generator, smoother, analyzer, and comparator so that all stages agree
// on the sample rate and rendering granularity.
type Config struct {
	SampleRate    float64
	ChunkSize     int
	SmoothSamples int
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the standard harness settings.
func DefaultConfig() Config {
	return Config{
		SampleRate:    44100,
		ChunkSize:     1024,
		SmoothSamples: 500,
	}
}

// WithSampleRate sets the system-wide sample rate.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithChunkSize sets the engine rendering block size.
func WithChunkSize(chunkSize int) Option {
	return func(cfg *Config) {
		if chunkSize > 0 {
			cfg.ChunkSize = chunkSize
		}
	}
}

// WithSmoothSamples sets the edge smoothing ramp length. Zero disables
// smoothing.
func WithSmoothSamples(samples int) Option {
	return func(cfg *Config) {
		if samples >= 0 {
			cfg.SmoothSamples = samples
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Nyquist returns half the sample rate.
func (c Config) Nyquist() float64 {
	return c.SampleRate / 2
}

// Samples returns the sample count for a duration in seconds, truncated.
func (c Config) Samples(lengthSec float64) int {
	return int(lengthSec * c.SampleRate)
}
