package session

import (
	"github.com/pkg/errors"

	"github.com/future-re/memscan/memtype"
	"github.com/future-re/memscan/scanerr"
)

const (
	defaultBlockSize    = 65536
	maxBlockSize        = 16 << 20
	defaultHistoryDepth = 10
)

// Config is the immutable, validated session-wide configuration (A3):
// block size and step for the scan engines, the region visibility level
// and filter, worker count for the parallel scheduler, and history ring
// sizing/compression.
type Config struct {
	BlockSize         int
	Step              int
	RegionLevel       memtype.RegionLevel
	RegionFilterMode  memtype.RegionFilterMode
	RegionFilterTypes []int
	Workers           int
	HistoryDepth      int
	CompressHistory   bool
}

// Option mutates a Config under construction.
type Option func(*Config)

// WithBlockSize overrides the per-read block size, default 64 KiB.
func WithBlockSize(n int) Option {
	return func(c *Config) { c.BlockSize = n }
}

// WithStep overrides the scan stride, default 1.
func WithStep(n int) Option {
	return func(c *Config) { c.Step = n }
}

// WithRegionLevel overrides the region visibility knob, default LevelAll.
func WithRegionLevel(l memtype.RegionLevel) Option {
	return func(c *Config) { c.RegionLevel = l }
}

// WithRegionFilter sets the region allow-set filter mode and allowed types.
func WithRegionFilter(mode memtype.RegionFilterMode, types ...int) Option {
	return func(c *Config) {
		c.RegionFilterMode = mode
		c.RegionFilterTypes = types
	}
}

// WithWorkers overrides the parallel scheduler's worker count. 0 means
// "use runtime.NumCPU()".
func WithWorkers(n int) Option {
	return func(c *Config) { c.Workers = n }
}

// WithHistoryDepth overrides the history ring capacity, default 10.
func WithHistoryDepth(n int) Option {
	return func(c *Config) { c.HistoryDepth = n }
}

// WithCompressHistory toggles snappy compression of history ring entries,
// default true.
func WithCompressHistory(b bool) Option {
	return func(c *Config) { c.CompressHistory = b }
}

// NewConfig builds a Config from defaults plus opts, validating once.
func NewConfig(opts ...Option) (Config, error) {
	c := Config{
		BlockSize:       defaultBlockSize,
		Step:            1,
		HistoryDepth:    defaultHistoryDepth,
		CompressHistory: true,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	if c.BlockSize <= 0 || c.BlockSize > maxBlockSize {
		return errors.Wrapf(scanerr.ErrInvalidConfig, "block size %d out of range (1,%d]", c.BlockSize, maxBlockSize)
	}
	if c.Workers < 0 {
		return errors.Wrapf(scanerr.ErrInvalidConfig, "workers %d must be >= 0", c.Workers)
	}
	if c.HistoryDepth < 1 {
		return errors.Wrapf(scanerr.ErrInvalidConfig, "history depth %d must be >= 1", c.HistoryDepth)
	}
	return nil
}

// scanOptions builds a memtype.ScanOptions for one call, combining the
// session-wide config with the per-call data type, predicate, and
// endianness choice.
func (c Config) scanOptions(dataType memtype.ScanDataType, matchType memtype.ScanMatchType, reverseEndian bool) memtype.ScanOptions {
	return memtype.ScanOptions{
		DataType:          dataType,
		MatchType:         matchType,
		ReverseEndianness: reverseEndian,
		Step:              c.Step,
		BlockSize:         c.BlockSize,
		RegionLevel:       c.RegionLevel,
		RegionFilterMode:  c.RegionFilterMode,
		RegionFilterAllow: c.RegionFilterTypes,
	}
}
