package yaml

import (
	"fmt"
	"sync"
	"time"
)

// ZoneCache interns fixed-offset locations so that equal offsets share one
// *time.Location. Entries are never changed or removed once inserted, so
// a cache may be shared by any number of concurrent parsers.
type ZoneCache struct {
	mu    sync.RWMutex
	zones map[int]*time.Location
}

func NewZoneCache() *ZoneCache {
	return &ZoneCache{zones: make(map[int]*time.Location)}
}

var defaultZones = NewZoneCache()

// Offset returns the location for offset seconds east of UTC, creating it
// on first use. Offset 0 is always time.UTC.
func (c *ZoneCache) Offset(secs int) *time.Location {
	if secs == 0 {
		return time.UTC
	}
	c.mu.RLock()
	loc, ok := c.zones[secs]
	c.mu.RUnlock()
	if ok {
		return loc
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if loc, ok = c.zones[secs]; ok {
		return loc
	}
	loc = time.FixedZone(offsetName(secs), secs)
	c.zones[secs] = loc
	return loc
}

// Len is the number of interned offsets.
func (c *ZoneCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.zones)
}

// offsetName renders an offset as +HH:MM, or +HH:MM:SS when it has a
// seconds part.
func offsetName(secs int) string {
	sign := byte('+')
	if secs < 0 {
		sign = '-'
		secs = -secs
	}
	h, m, s := secs/3600, secs/60%60, secs%60
	if s != 0 {
		return fmt.Sprintf("%c%02d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%c%02d:%02d", sign, h, m)
}
