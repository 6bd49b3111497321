package riff

import "strconv"

// Buffer size bounds and default, per the configuration contract: unset
// yields BufferSizeDefault; any configured value is clamped into
// [BufferSizeMin, BufferSizeMax] on every path that reads it.
const (
	BufferSizeMin     = 4 * 1024
	BufferSizeMax     = 16 * 1024 * 1024
	BufferSizeDefault = 256 * 1024
)

// HeaderMaxBodyBytesDefault caps the header body_length a decoder will
// accept before rejecting the file as CorruptHeader, guarding against a
// corrupted or adversarial length field driving an unbounded allocation.
const HeaderMaxBodyBytesDefault = 64 * 1024 * 1024

// Config consolidates every reader-visible setting. Fields group by
// concern the way the teacher's DatabaseConfig/QueryConfig/... split
// does, scaled down to what a stripe reader actually needs.
type Config struct {
	IO       IOConfig
	Stripe   StripeConfig
	Metadata MetadataConfig
	Logging  LoggingConfig
}

// IOConfig controls the reader's interaction with the underlying files.
type IOConfig struct {
	BufferSize        int
	CompressionCodec  string
	HeaderMaxBodyBytes int
}

// StripeConfig controls writer-side and planner-side stripe behavior.
type StripeConfig struct {
	StripeRows           int
	ColumnFilterEnabled  bool
	FilterPushdownEnabled bool
}

// MetadataConfig controls footer/metadata shortcuts.
type MetadataConfig struct {
	CountEnabled bool
}

// LoggingConfig controls the package-level zap logger.
type LoggingConfig struct {
	Level string // "debug", "info", "warn", "error"; not read by this module (the logger is set via SetLogger)
}

// DefaultConfig returns a Config with every field at its documented
// default: buffer size BufferSizeDefault, column filters and filter
// pushdown enabled, metadata count queries enabled.
func DefaultConfig() *Config {
	return &Config{
		IO: IOConfig{
			BufferSize:         BufferSizeDefault,
			HeaderMaxBodyBytes: HeaderMaxBodyBytesDefault,
		},
		Stripe: StripeConfig{
			ColumnFilterEnabled:   true,
			FilterPushdownEnabled: true,
		},
		Metadata: MetadataConfig{CountEnabled: true},
	}
}

// ClampBufferSize clamps v into [BufferSizeMin, BufferSizeMax]. A zero or
// negative v is treated as "unset" and yields BufferSizeDefault — the
// spec mandates this clamp run on every path that reads buffer_size,
// unlike the source this format was distilled from, which only applied
// it inconsistently.
func ClampBufferSize(v int) int {
	if v <= 0 {
		return BufferSizeDefault
	}
	if v < BufferSizeMin {
		return BufferSizeMin
	}
	if v > BufferSizeMax {
		return BufferSizeMax
	}
	return v
}

// StringConfig is the flat string-keyed configuration surface external
// callers (a surrounding query engine) pass in, per the external
// interfaces contract. FromStringConfig converts it into a typed Config,
// applying every documented default and clamp.
type StringConfig map[string]string

// FromStringConfig builds a Config from a flat string map, applying
// BufferSizeMin/Max clamping and the documented defaults for every
// unset key.
func FromStringConfig(m StringConfig) *Config {
	cfg := DefaultConfig()
	if v, ok := m["buffer_size"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.IO.BufferSize = ClampBufferSize(n)
		}
	} else {
		cfg.IO.BufferSize = ClampBufferSize(0)
	}
	if v, ok := m["compression_codec"]; ok {
		cfg.IO.CompressionCodec = v
	}
	if v, ok := m["stripe_rows"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Stripe.StripeRows = n
		}
	}
	if v, ok := m["column_filter_enabled"]; ok {
		cfg.Stripe.ColumnFilterEnabled = parseBoolDefault(v, cfg.Stripe.ColumnFilterEnabled)
	}
	if v, ok := m["filter_pushdown"]; ok {
		cfg.Stripe.FilterPushdownEnabled = parseBoolDefault(v, cfg.Stripe.FilterPushdownEnabled)
	}
	if v, ok := m["metadata_count_enabled"]; ok {
		cfg.Metadata.CountEnabled = parseBoolDefault(v, cfg.Metadata.CountEnabled)
	}
	return cfg
}

func parseBoolDefault(s string, def bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}
