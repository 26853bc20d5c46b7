package colormap

import (
	"log/slog"
	"sync"

	"lchmap/parallel"
)

// Cache keeps the most recent bitmap and hands it out again while neither
// the size nor the lightness changes. Lightness is compared with ==, so a
// NaN lightness regenerates on every call.
type Cache struct {
	mu          sync.Mutex
	pool        *parallel.Pool
	logger      *slog.Logger
	bitmap      *Bitmap
	generations int
}

type CacheOption func(*Cache)

// WithWorkers renders rows on n goroutines; n < 1 means GOMAXPROCS. A
// later WithWorkers replaces the pool of an earlier one.
func WithWorkers(n int) CacheOption {
	return func(c *Cache) {
		if c.pool != nil {
			c.pool.Close()
		}
		c.pool = parallel.Start(n)
	}
}

func WithLogger(logger *slog.Logger) CacheOption {
	return func(c *Cache) {
		c.logger = logger
	}
}

func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the bitmap for (size, lightness), regenerating it in full when
// either differs from the cached one.
func (c *Cache) Get(size int, lightness float64) (*Bitmap, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bitmap != nil && c.bitmap.Size() == size && c.bitmap.Lightness == lightness {
		return c.bitmap, nil
	}

	bm, err := GenerateWith(c.pool, size, lightness)
	if err != nil {
		return nil, err
	}
	c.generations++
	c.logger.Debug("color map regenerated", "size", size, "lightness", lightness, "generation", c.generations)

	c.bitmap = bm
	return bm, nil
}

// Generations counts how many bitmaps Get has rendered.
func (c *Cache) Generations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations
}

// Close drops the cached bitmap and stops the worker pool, if any. The
// cache must not be used afterwards.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.bitmap = nil
	if c.pool != nil {
		c.pool.Close()
		c.pool = nil
	}
}
