// Package images decodes and caches the bitmaps used by image items.
package images

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"
	"sync"
)

// ImageCache caches loaded images
type ImageCache struct {
	cache map[string]image.Image
	mu    sync.RWMutex
}

// Global image cache
var globalCache = &ImageCache{
	cache: make(map[string]image.Image),
}

func (c *ImageCache) get(key string) (image.Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.cache[key]
	return img, ok
}

func (c *ImageCache) put(key string, img image.Image) {
	c.mu.Lock()
	c.cache[key] = img
	c.mu.Unlock()
}

// Store registers img under path, so later loads of path return it without
// touching the filesystem.
func Store(path string, img image.Image) {
	globalCache.put(path, img)
}

// Forget drops path from the cache.
func Forget(path string) {
	globalCache.mu.Lock()
	delete(globalCache.cache, path)
	globalCache.mu.Unlock()
}

// LoadImage loads an image from the filesystem or from a data URI.
func LoadImage(path string) (image.Image, error) {
	if img, ok := globalCache.get(path); ok {
		return img, nil
	}

	var (
		img image.Image
		err error
	)
	if IsDataURI(path) {
		img, err = LoadImageFromDataURI(path)
	} else {
		img, err = decodeFile(path)
	}
	if err != nil {
		return nil, err
	}

	globalCache.put(path, img)
	return img, nil
}

func decodeFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// IsDataURI reports whether s is a "data:" URI.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// LoadImageFromDataURI decodes a base64 "data:image/...;base64," URI.
func LoadImageFromDataURI(uri string) (image.Image, error) {
	if !IsDataURI(uri) {
		return nil, errors.New("not a data URI")
	}
	header, payload, ok := strings.Cut(uri, ",")
	if !ok {
		return nil, errors.New("data URI without payload")
	}
	if !strings.HasSuffix(header, ";base64") {
		return nil, errors.New("only base64 data URIs are supported")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("data URI: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("data URI: %w", err)
	}
	return img, nil
}

// GetImageDimensions returns the width and height of an image
func GetImageDimensions(path string) (width, height int, err error) {
	img, err := LoadImage(path)
	if err != nil {
		return 0, 0, err
	}

	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}
