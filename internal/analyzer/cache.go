package analyzer

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"sync"

	"github.com/vijay-prabhu/resumescan/internal/match"
)

// CacheKey derives a content key from both inputs. Each text is length
// prefixed so ("ab", "c") and ("a", "bc") never collide.
func CacheKey(resumeRaw, jobRaw string) string {
	h := sha256.New()
	var size [8]byte
	for _, s := range []string{resumeRaw, jobRaw} {
		binary.BigEndian.PutUint64(size[:], uint64(len(s)))
		h.Write(size[:])
		h.Write([]byte(s))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Cache is a bounded FIFO memo of analysis results
type Cache struct {
	mu      sync.Mutex
	max     int
	entries map[string]*match.MatchResult
	order   []string
}

// NewCache creates a cache holding at most max results
func NewCache(max int) *Cache {
	if max < 1 {
		max = 1
	}
	return &Cache{
		max:     max,
		entries: make(map[string]*match.MatchResult, max),
	}
}

// Get returns a copy of the cached result for key
func (c *Cache) Get(key string) (*match.MatchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}

// Put stores a copy of r, evicting the oldest entry when full
func (c *Cache) Put(key string, r *match.MatchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		c.entries[key] = r.Clone()
		return
	}

	for len(c.order) >= c.max {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = r.Clone()
	c.order = append(c.order, key)
}

// Len returns the number of cached results
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
