package templating

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/byte4ever/stache/mustache"
)

// Cache holds parsed templates keyed by the SHA256 digest of
// their source and delimiters. The zero value is ready to use
// and safe for concurrent use. Parse failures are not cached.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*mustache.Template
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{}
}

// Get returns the parsed template for src, compiling it on
// first use.
func (ca *Cache) Get(
	src string,
	startTag string,
	endTag string,
) (*mustache.Template, error) {
	key := digest(src, startTag, endTag)

	ca.mu.RLock()
	tpl, ok := ca.entries[key]
	ca.mu.RUnlock()

	if ok {
		return tpl, nil
	}

	tpl, err := mustache.Compile(
		src, mustache.WithDelims(startTag, endTag),
	)
	if err != nil {
		return nil, err
	}

	ca.mu.Lock()
	defer ca.mu.Unlock()

	// Another goroutine may have won the race; keep its entry.
	if existing, ok := ca.entries[key]; ok {
		return existing, nil
	}

	if ca.entries == nil {
		ca.entries = make(map[string]*mustache.Template)
	}

	ca.entries[key] = tpl

	return tpl, nil
}

// Len returns the number of cached templates.
func (ca *Cache) Len() int {
	ca.mu.RLock()
	defer ca.mu.RUnlock()

	return len(ca.entries)
}

func digest(src, startTag, endTag string) string {
	ha := sha256.New()
	ha.Write([]byte(startTag))
	ha.Write([]byte{0})
	ha.Write([]byte(endTag))
	ha.Write([]byte{0})
	ha.Write([]byte(src))

	return hex.EncodeToString(ha.Sum(nil))
}
