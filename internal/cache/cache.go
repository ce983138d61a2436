package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores serialized points keyed by a derived cache key
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the cache key for a point url. The version segment guards
// against stale payload shapes after upgrades.
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "claimtree:v1:" + hex.EncodeToString(sum[:])
}
