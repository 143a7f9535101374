package measure

import "math"

// Cache maps a stable item key to its last measured size. Entries are never
// evicted; the cache lives exactly as long as the virtualizer that owns it.
// It is not safe for concurrent use.
type Cache struct {
	sizes map[string]float64
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{sizes: make(map[string]float64)}
}

// Get returns the measured size for key.
func (c *Cache) Get(key string) (float64, bool) {
	v, ok := c.sizes[key]
	return v, ok
}

// Has reports whether key was measured.
func (c *Cache) Has(key string) bool {
	_, ok := c.sizes[key]
	return ok
}

// Set records a measured size. Negative and NaN sizes are stored as zero.
func (c *Cache) Set(key string, size float64) {
	c.sizes[key] = sanitize(size)
}

// Len is the number of measured keys.
func (c *Cache) Len() int { return len(c.sizes) }

func sanitize(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
