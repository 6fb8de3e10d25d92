package fetch

import (
	"container/list"
	"sync"
	"time"

	"github.com/Ali-Choubdaran/corporate-news-extraction/pkg/models"
)

// PageCache is an optional in-memory LRU cache of fetched pages keyed by
// normalized URL. It is purely a performance optimization: discovery and
// extraction are correct without it.
type PageCache struct {
	store   map[string]*list.Element
	lruList *list.List
	mu      sync.Mutex
	maxSize int64
	size    int64
	ttl     time.Duration
}

type cacheEntry struct {
	key       string
	page      *models.Page
	expiresAt time.Time
}

// NewPageCache creates a cache holding up to maxSizeBytes of markup with the
// given entry TTL.
func NewPageCache(maxSizeBytes int64, ttl time.Duration) *PageCache {
	if maxSizeBytes <= 0 {
		maxSizeBytes = 50 * 1024 * 1024
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &PageCache{
		store:   make(map[string]*list.Element),
		lruList: list.New(),
		maxSize: maxSizeBytes,
		ttl:     ttl,
	}
}

// Get returns the cached page for key, if present and unexpired.
func (c *PageCache) Get(key string) (*models.Page, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.store[key]
	if !ok {
		return nil, false
	}

	entry := elem.Value.(*cacheEntry)
	if time.Now().After(entry.expiresAt) {
		c.removeLocked(elem)
		return nil, false
	}

	c.lruList.MoveToFront(elem)
	return entry.page, true
}

// Set stores a page, evicting least-recently-used entries as needed.
func (c *PageCache) Set(key string, page *models.Page) {
	if page == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.store[key]; ok {
		c.removeLocked(elem)
	}

	entrySize := int64(len(page.HTML) + len(key))
	for c.size+entrySize > c.maxSize && c.lruList.Len() > 0 {
		c.removeLocked(c.lruList.Back())
	}

	elem := c.lruList.PushFront(&cacheEntry{
		key:       key,
		page:      page,
		expiresAt: time.Now().Add(c.ttl),
	})
	c.store[key] = elem
	c.size += entrySize
}

func (c *PageCache) removeLocked(elem *list.Element) {
	entry := elem.Value.(*cacheEntry)
	c.lruList.Remove(elem)
	delete(c.store, entry.key)
	c.size -= int64(len(entry.page.HTML) + len(entry.key))
}

// Len returns the number of cached entries.
func (c *PageCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lruList.Len()
}
