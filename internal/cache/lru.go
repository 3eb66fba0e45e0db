// Package cache holds small in-process caches for values read on every request.
package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/stay-js/job-keeper/internal/utils"
)

// LRU evicts the least recently used entry once maxSize is exceeded. Entries also expire ttl
// after they were stored.
type LRU[T any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	clock   utils.Clock
	items   map[string]*list.Element
	order   *list.List
	// versions counts writes and deletes per key.
	versions map[string]uint64
}

type entry[T any] struct {
	key       string
	value     T
	expiresAt time.Time
}

func NewLRU[T any](maxSize int, ttl time.Duration, clock utils.Clock) *LRU[T] {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &LRU[T]{
		maxSize: max(maxSize, 1),
		ttl:     ttl,
		clock:   clock,
		items:    make(map[string]*list.Element),
		order:    list.New(),
		versions: make(map[string]uint64),
	}
}

func (c *LRU[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, ok := c.items[key]
	if !ok {
		return zero, false
	}
	e := elem.Value.(*entry[T])
	if !c.clock.Now().Before(e.expiresAt) {
		c.remove(elem)
		return zero, false
	}
	c.order.MoveToFront(elem)
	return e.value, true
}

// Version identifies the state of key. Read it before loading a value from the source and pass
// it to SetIfVersion.
func (c *LRU[T]) Version(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[key]
}

// SetIfVersion stores value only when key was neither written nor deleted since version was read,
// so a load that raced with an invalidation cannot put the old value back.
func (c *LRU[T]) SetIfVersion(key string, version uint64, value T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions[key] != version {
		return false
	}
	c.set(key, value)
	return true
}

func (c *LRU[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(key, value)
}

func (c *LRU[T]) set(key string, value T) {
	c.versions[key]++
	e := &entry[T]{key: key, value: value, expiresAt: c.clock.Now().Add(c.ttl)}
	if elem, ok := c.items[key]; ok {
		elem.Value = e
		c.order.MoveToFront(elem)
		return
	}
	c.items[key] = c.order.PushFront(e)
	if c.order.Len() > c.maxSize {
		c.remove(c.order.Back())
	}
}

func (c *LRU[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions[key]++
	if elem, ok := c.items[key]; ok {
		c.remove(elem)
	}
}

func (c *LRU[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *LRU[T]) remove(elem *list.Element) {
	delete(c.items, elem.Value.(*entry[T]).key)
	c.order.Remove(elem)
}
