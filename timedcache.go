package timedcache

import (
	"sync"
	"time"
)

// Cache is a generic in-memory cache with a single fixed time-to-live
// applied uniformly to all entries. Expiry is lazy: it is evaluated at
// read time and never removes anything from the store.
type Cache[K comparable, V any] struct {
	lock  rwLock
	data  map[K]Entry[V]
	ttl   time.Duration
	cfg   config[K, V]
	stats Stats

	// single-flight for loader
	loading sync.Map // K -> *loadCall[V]
}

type loadCall[V any] struct {
	done  chan struct{}
	value V
	err   error
}

// New creates an empty Cache whose entries expire ttl after insertion.
//
// A ttl of zero means entries never expire. There is no way to
// configure immediate expiry: zero is reserved as the never-expire
// sentinel.
func New[K comparable, V any](ttl time.Duration, opts ...Option[K, V]) *Cache[K, V] {
	cfg := defaultConfig[K, V]()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Cache[K, V]{
		data: make(map[K]Entry[V]),
		ttl:  ttl,
		cfg:  cfg,
	}
}

// From wraps an existing set of entries, adopting the map rather than
// copying it; the caller must not retain or mutate it afterwards. The
// TTL is forced to the never-expire sentinel so the pre-existing
// insertion timestamps do not make the seeded entries retroactively
// stale.
func From[K comparable, V any](entries map[K]Entry[V], opts ...Option[K, V]) *Cache[K, V] {
	c := New[K, V](0, opts...)
	if entries != nil {
		c.data = entries
	}
	return c
}

// TTL returns the cache's expiration window. Zero means entries never
// expire.
func (c *Cache[K, V]) TTL() time.Duration {
	return c.ttl
}

// Get retrieves a value from the cache.
// Returns the value and true if the key holds a live entry, zero value
// and false if the key is absent or its entry has expired. Expired
// entries are left in the store. The error is non-nil only when the
// lock is poisoned.
func (c *Cache[K, V]) Get(key K) (V, bool, error) {
	var (
		value V
		ok    bool
	)
	if err := c.lock.read(func() {
		value, ok = c.get(key)
	}); err != nil {
		var zero V
		return zero, false, err
	}
	return value, ok, nil
}

// get is the internal get without locking.
func (c *Cache[K, V]) get(key K) (V, bool) {
	var zero V

	ent, ok := c.data[key]
	if !ok {
		c.stats.miss()
		if c.cfg.onMiss != nil {
			c.cfg.onMiss(key)
		}
		return zero, false
	}

	if !c.live(ent) {
		// stale entries stay put; expiry only affects what reads return
		c.stats.expire()
		if c.cfg.onExpire != nil {
			c.cfg.onExpire(key, ent.Value)
		}
		return zero, false
	}

	c.stats.hit()
	if c.cfg.onHit != nil {
		c.cfg.onHit(key, ent.Value)
	}
	return ent.Value, true
}

// live reports whether an entry is still within the expiration window.
// An entry whose age equals the TTL exactly is still live.
func (c *Cache[K, V]) live(ent Entry[V]) bool {
	if c.ttl == 0 {
		return true
	}
	return ent.Age(c.cfg.clock.Now()) <= c.ttl
}

// GetAll returns a fresh map holding the value of every live entry,
// applying the same expiry test as Get. Expired entries are omitted but
// not removed. Iteration order of the result is unspecified.
func (c *Cache[K, V]) GetAll() (map[K]V, error) {
	var out map[K]V
	if err := c.lock.read(func() {
		out = make(map[K]V, len(c.data))
		for k, ent := range c.data {
			if c.live(ent) {
				out[k] = ent.Value
			}
		}
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// GetOrLoad retrieves a value, calling the configured loader if the key
// is absent or expired. Concurrent loads for the same key are coalesced
// into a single loader call; successful loads are inserted before being
// returned, failed loads cache nothing. Without a loader, GetOrLoad
// behaves like Get with the miss reported as a zero value.
func (c *Cache[K, V]) GetOrLoad(key K) (V, error) {
	v, ok, err := c.Get(key)
	if err != nil || ok {
		return v, err
	}

	var zero V
	if c.cfg.loader == nil {
		return zero, nil
	}

	call := &loadCall[V]{done: make(chan struct{})}
	actual, loaded := c.loading.LoadOrStore(key, call)
	if loaded {
		// another goroutine is loading this key
		existing := actual.(*loadCall[V])
		<-existing.done
		return existing.value, existing.err
	}

	// we're the loader
	defer c.loading.Delete(key)

	// a concurrent insert or an earlier flight may have landed
	v, ok, err = c.Get(key)
	if err == nil && !ok {
		v, err = c.cfg.loader(key)
		if err == nil {
			_, _, err = c.Insert(key, v)
		}
	}

	call.value, call.err = v, err
	close(call.done)

	if err != nil {
		return zero, err
	}
	return v, nil
}

// Insert stores a value stamped with the current time, unconditionally
// overwriting any existing entry for the key; expiry is never consulted
// on the write path. Returns the previous value and true if an entry
// existed, whether or not it had expired.
func (c *Cache[K, V]) Insert(key K, value V) (V, bool, error) {
	var (
		prev     V
		replaced bool
	)
	if err := c.lock.write(func() {
		if old, ok := c.data[key]; ok {
			prev, replaced = old.Value, true
		}
		c.data[key] = Entry[V]{Value: value, InsertedAt: c.cfg.clock.Now()}
	}); err != nil {
		var zero V
		return zero, false, err
	}
	return prev, replaced, nil
}

// Remove deletes the entry for a key if one exists, returning its value
// and true even when the entry had already expired. Absence is not an
// error.
func (c *Cache[K, V]) Remove(key K) (V, bool, error) {
	var (
		prev    V
		removed bool
	)
	if err := c.lock.write(func() {
		if old, ok := c.data[key]; ok {
			prev, removed = old.Value, true
			delete(c.data, key)
		}
	}); err != nil {
		var zero V
		return zero, false, err
	}
	return prev, removed, nil
}

// Clear removes all entries.
func (c *Cache[K, V]) Clear() error {
	return c.lock.write(func() {
		c.data = make(map[K]Entry[V])
	})
}

// Has reports whether the key holds a live entry, without copying the
// value and without firing hooks or counting stats.
func (c *Cache[K, V]) Has(key K) (bool, error) {
	var ok bool
	if err := c.lock.read(func() {
		ent, found := c.data[key]
		ok = found && c.live(ent)
	}); err != nil {
		return false, err
	}
	return ok, nil
}

// Len returns the number of entries in the store, including expired
// ones that no write has displaced yet.
func (c *Cache[K, V]) Len() (int, error) {
	var n int
	if err := c.lock.read(func() {
		n = len(c.data)
	}); err != nil {
		return 0, err
	}
	return n, nil
}

// View runs fn with shared access to the raw store, for bulk inspection
// without copying. The lock is released on every exit path, including a
// panic in fn (which poisons the cache). fn must not mutate the map and
// must apply expiry filtering itself if it needs it; fn must not call
// back into the cache, or it will deadlock.
func (c *Cache[K, V]) View(fn func(entries map[K]Entry[V])) error {
	return c.lock.read(func() {
		fn(c.data)
	})
}

// Update runs fn with exclusive access to the raw store, for bulk
// mutation. Same scoped-release and no-reentrancy contract as View.
func (c *Cache[K, V]) Update(fn func(entries map[K]Entry[V])) error {
	return c.lock.write(func() {
		fn(c.data)
	})
}

// Stats returns a snapshot of cache statistics.
func (c *Cache[K, V]) Stats() Snapshot {
	return c.stats.Snapshot()
}
