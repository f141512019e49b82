package loader

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"sync"

	"sku-pricing-lab/internal/domain"
)

// Fingerprint identifies one state of the source files. Any change to a
// file's path, size, or modification time changes the fingerprint.
type Fingerprint string

// FingerprintFiles computes a fingerprint over the given source files.
func FingerprintFiles(paths ...string) (Fingerprint, error) {
	parts := make([]string, 0, len(paths))
	for _, path := range paths {
		if path == "" {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
		parts = append(parts, fmt.Sprintf("%s|%d|%d", path, info.Size(), info.ModTime().UnixNano()))
	}

	hash := sha256.Sum256([]byte(strings.Join(parts, "\n")))
	return Fingerprint(hex.EncodeToString(hash[:])), nil
}

// Cache holds one merged dataset keyed by source fingerprint. It is
// explicit and externally owned: callers decide when to consult it and
// Invalidate clears it. A stale fingerprint simply misses.
type Cache struct {
	mu      sync.RWMutex
	fp      Fingerprint
	metrics []domain.SKUMetrics
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// Get returns the cached dataset when the fingerprint matches.
func (c *Cache) Get(fp Fingerprint) ([]domain.SKUMetrics, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.fp == "" || c.fp != fp {
		return nil, false
	}
	out := make([]domain.SKUMetrics, len(c.metrics))
	copy(out, c.metrics)
	return out, true
}

// Put stores a dataset under its fingerprint, replacing any previous entry.
func (c *Cache) Put(fp Fingerprint, metrics []domain.SKUMetrics) {
	stored := make([]domain.SKUMetrics, len(metrics))
	copy(stored, metrics)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.fp = fp
	c.metrics = stored
}

// Invalidate clears the cache.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fp = ""
	c.metrics = nil
}

// LoadMerged is the cached variant of loader.LoadMerged. The second return
// reports whether the dataset came from the cache.
func (c *Cache) LoadMerged(catalogPath, adsPath string) ([]domain.SKUMetrics, bool, error) {
	fp, err := FingerprintFiles(catalogPath, adsPath)
	if err != nil {
		return nil, false, err
	}

	if metrics, ok := c.Get(fp); ok {
		return metrics, true, nil
	}

	metrics, err := LoadMerged(catalogPath, adsPath)
	if err != nil {
		return nil, false, err
	}
	c.Put(fp, metrics)
	return metrics, false, nil
}
