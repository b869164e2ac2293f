package timedcache

type config[K comparable, V any] struct {
	clock    Clock
	loader   func(K) (V, error)
	onHit    func(K, V)
	onMiss   func(K)
	onExpire func(K, V)
}

func defaultConfig[K comparable, V any]() config[K, V] {
	return config[K, V]{
		clock: realClock{},
	}
}

// Option configures a Cache.
type Option[K comparable, V any] func(*config[K, V])

// WithClock sets a custom clock for time operations.
// Useful for testing TTL behavior.
func WithClock[K comparable, V any](clk Clock) Option[K, V] {
	return func(c *config[K, V]) {
		if clk != nil {
			c.clock = clk
		}
	}
}

// WithLoader sets a function used by GetOrLoad to fetch values that are
// absent or expired. Concurrent loads for the same key are coalesced.
func WithLoader[K comparable, V any](fn func(K) (V, error)) Option[K, V] {
	return func(c *config[K, V]) {
		c.loader = fn
	}
}

// OnHit sets a callback invoked when a read returns a live entry.
// Hooks run while the lock is held: they must be fast, must not call
// back into the cache, and a panicking hook poisons the lock.
func OnHit[K comparable, V any](fn func(K, V)) Option[K, V] {
	return func(c *config[K, V]) {
		c.onHit = fn
	}
}

// OnMiss sets a callback invoked when a read finds no entry for a key.
// Same in-lock contract as OnHit.
func OnMiss[K comparable, V any](fn func(K)) Option[K, V] {
	return func(c *config[K, V]) {
		c.onMiss = fn
	}
}

// OnExpire sets a callback invoked each time a read observes an expired
// entry. The entry stays in the store, so repeated reads of the same
// stale key fire the callback repeatedly. Same in-lock contract as OnHit.
func OnExpire[K comparable, V any](fn func(K, V)) Option[K, V] {
	return func(c *config[K, V]) {
		c.onExpire = fn
	}
}
