package yaml

import (
	"time"

	"go.uber.org/zap"
)

type config struct {
	loc         *time.Location
	zones       *ZoneCache
	logger      *zap.Logger
	canonical   bool
	block       bool
	indent      int
	foldSQLNull bool
}

// Option configures parsing and emitting.
type Option func(*config)

func newConfig(opts []Option) *config {
	c := &config{
		loc:    time.Local,
		zones:  defaultZones,
		logger: zap.NewNop(),
		indent: 2,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithLocation sets the zone of timestamps that carry no zone designator.
func WithLocation(loc *time.Location) Option {
	return func(c *config) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithZoneCache sets the cache used to intern fixed UTC offsets.
func WithZoneCache(zc *ZoneCache) Option {
	return func(c *config) {
		if zc != nil {
			c.zones = zc
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCanonical writes full timestamps and an explicit tag on every scalar.
func WithCanonical() Option {
	return func(c *config) { c.canonical = true }
}

// WithBlockStyle writes sequences and mappings in block style instead of
// flow style.
func WithBlockStyle() Option {
	return func(c *config) { c.block = true }
}

func WithIndent(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.indent = n
		}
	}
}

// WithFoldSQLNull writes SQLNull as a plain null.
func WithFoldSQLNull() Option {
	return func(c *config) { c.foldSQLNull = true }
}
