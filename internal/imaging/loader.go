package imaging

import (
	"fmt"
	"image"
	_ "image/gif" // Register GIF format decoder
	"path/filepath"
	"sync"

	"github.com/anthonynsimon/bild/imgio"
)

// ImageCache keeps decoded images keyed by cleaned file path so repeated
// sampling of the same file does not hit the disk again.
//
// ImageCache is safe for concurrent use. Images stay cached until Evict or
// Clear is called.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache returns an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{images: make(map[string]image.Image)}
}

// Load returns the decoded image at path, reading it on first use. PNG, JPEG
// and GIF files are supported.
func (c *ImageCache) Load(path string) (image.Image, error) {
	key := filepath.Clean(path)

	c.mu.RLock()
	img, ok := c.images[key]
	c.mu.RUnlock()
	if ok {
		return img, nil
	}

	img, err := imgio.Open(key)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", key, err)
	}

	c.mu.Lock()
	// Another goroutine may have stored it meanwhile; keep the first copy.
	if cached, ok := c.images[key]; ok {
		img = cached
	} else {
		c.images[key] = img
	}
	c.mu.Unlock()
	return img, nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Evict drops path from the cache. Unknown paths are ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, filepath.Clean(path))
	c.mu.Unlock()
}

// Clear drops every cached image.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}
