package blizzard

import (
	"net/url"
	"sync"
)

// CharacterCache memoizes character profile lookups for the lifetime of one
// run. It guarantees at most one profile fetch per cache key no matter how
// many leaderboard entries reference the same character, which is common in
// team brackets. It is never persisted or invalidated.
type CharacterCache struct {
	mu      sync.RWMutex
	entries map[string]*CharacterDetails
}

// NewCharacterCache creates an empty character cache.
func NewCharacterCache() *CharacterCache {
	return &CharacterCache{
		entries: make(map[string]*CharacterDetails),
	}
}

// Get retrieves cached details for a key, if present.
func (c *CharacterCache) Get(key string) (*CharacterDetails, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	details, ok := c.entries[key]
	return details, ok
}

// Set stores details for a key.
func (c *CharacterCache) Set(key string, details *CharacterDetails) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = details
}

// Len returns the number of cached profiles.
func (c *CharacterCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Clear removes all entries from the cache.
func (c *CharacterCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*CharacterDetails)
}

// CacheKey derives the cache key for a character: the realm slug combined
// with the ASCII-lowercased, percent-encoded character name. The same
// encoded name is what goes into the profile URL.
func CacheKey(realmSlug, name string) string {
	return realmSlug + ":" + encodeCharacterName(name)
}

// encodeCharacterName lowercases only the ASCII letters A-Z of a character
// name and percent-encodes the result. The fold is deliberately byte-wise:
// the vendor's name conventions are only known to be stable under ASCII
// folding, so non-ASCII letters pass through untouched rather than going
// through Unicode case folding.
func encodeCharacterName(name string) string {
	return url.PathEscape(foldASCIILower(name))
}

// foldASCIILower lowercases A-Z and leaves every other byte alone. Safe on
// UTF-8 input since multi-byte sequences never contain ASCII bytes.
func foldASCIILower(s string) string {
	b := []byte(s)
	changed := false
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(b)
}
