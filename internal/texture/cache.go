package texture

import (
	"image"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/Faultbox/founder-galaxy/internal/logger"
)

// MasterSize is the width every surface is rendered at before scaling.
const MasterSize = 1024

// Cache memoizes textures by key. Smaller sizes are downscaled from the
// master rendering of the same key, so a key always maps to the same
// pixels regardless of request order.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*image.RGBA
	log     *zap.Logger
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[Key]*image.RGBA),
		log:     logger.Named("texture"),
	}
}

// Get returns the texture for key, rendering it on first use. Callers must
// not modify the returned image.
func (c *Cache) Get(key Key) (*image.RGBA, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getLocked(key)
}

func (c *Cache) getLocked(key Key) (*image.RGBA, error) {
	if img, ok := c.entries[key]; ok {
		return img, nil
	}
	if err := key.validate(); err != nil {
		return nil, err
	}

	if key.Size >= MasterSize {
		img, err := Synthesize(key)
		if err != nil {
			return nil, err
		}
		c.entries[key] = img
		c.log.Debug("texture synthesized",
			zap.Stringer("kind", key.Kind),
			zap.Stringer("category", key.Category),
			zap.Int("size", key.Size),
		)
		return img, nil
	}

	masterKey := key
	masterKey.Size = MasterSize
	master, err := c.getLocked(masterKey)
	if err != nil {
		return nil, err
	}
	img, err := Downscale(master, key.Bounds())
	if err != nil {
		return nil, err
	}
	c.entries[key] = img
	return img, nil
}

// Len returns the number of cached buffers.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Downscale resamples src into a new image of the given bounds.
func Downscale(src image.Image, bounds image.Rectangle) (*image.RGBA, error) {
	if bounds.Dx() < 1 || bounds.Dy() < 1 {
		return nil, errInvalidBounds
	}
	dst := image.NewRGBA(bounds)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}
