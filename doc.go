// Package timedcache provides a generic, thread-safe key/value cache
// with a single fixed time-to-live and lazy, non-evicting expiry.
//
// # Overview
//
// A Cache is a passive in-memory lookup layer meant to be embedded in a
// larger service, for example to hold computed results keyed by request
// parameters. It is a map guarded by one reader/writer lock; there is
// no background sweeper, no capacity bound, and no external storage.
// Entries expire a fixed duration after insertion, but expiry is only
// ever evaluated when an entry is read: an expired entry stays in the
// store until it is removed, cleared, or overwritten.
//
// # Basic Usage
//
//	cache := timedcache.New[string, []byte](5 * time.Minute)
//
//	prev, replaced, err := cache.Insert("key", data)
//	if err != nil {
//		return err
//	}
//
//	v, ok, err := cache.Get("key")
//	if err != nil {
//		return err
//	}
//	if ok {
//		use(v)
//	}
//
// Absent keys and expired entries are normal outcomes reported as
// ok == false; the only error any method returns is *PoisonedError.
//
// # TTL Semantics
//
// The TTL is set at construction and never changes. An entry is live
// while its age is at most the TTL; an entry whose age equals the TTL
// exactly is still live. A TTL of zero is a sentinel meaning entries
// never expire: it does not mean immediate expiry, and there is no way
// to configure immediate expiry. Caches built with From always use the
// never-expire sentinel, so bulk-seeded entries with old timestamps are
// not retroactively stale.
//
// # Raw Access
//
// View and Update expose the underlying store for bulk inspection and
// mutation beyond the single-key helpers:
//
//	err := cache.View(func(entries map[string]timedcache.Entry[[]byte]) {
//		for k, ent := range entries {
//			// includes expired entries; filter by ent.InsertedAt if needed
//			_ = k
//		}
//	})
//
// The lock is held for the duration of the callback and released on
// every exit path. Callbacks must not call back into the cache: the
// lock is not reentrant and a nested acquisition deadlocks.
//
// # Poisoning
//
// If a callback or hook panics while the lock is held, the panic
// propagates to that caller and the lock is poisoned. From then on
// every operation on that cache fails with *PoisonedError naming the
// access mode that was refused; there is no recovery, the instance must
// be replaced. This mirrors the failure isolation of a poisoned
// reader/writer lock: a fault observed mid-access marks the shared
// state as suspect rather than letting other threads read a possibly
// half-written store.
//
// # Automatic Loading
//
// Configure a loader to fetch values that are absent or expired.
// Concurrent loads for the same key are coalesced into one call:
//
//	cache := timedcache.New[string, *User](time.Minute,
//		timedcache.WithLoader(func(id string) (*User, error) {
//			return db.GetUser(id)
//		}),
//	)
//
//	user, err := cache.GetOrLoad("user:123")
//
// # Testing
//
// Inject a custom clock to control time in tests:
//
//	type fakeClock struct{ now time.Time }
//	func (c *fakeClock) Now() time.Time { return c.now }
//
//	clock := &fakeClock{now: time.Now()}
//	cache := timedcache.New[string, int](time.Minute,
//		timedcache.WithClock[string, int](clock),
//	)
//
//	cache.Insert("key", 42)
//	clock.now = clock.now.Add(2 * time.Minute) // TTL expired
//	_, ok, _ := cache.Get("key")               // ok == false
//
// # Thread Safety
//
// All Cache methods are safe for concurrent use. Reads (Get, GetAll,
// Has, Len, View) share the lock and proceed in parallel; writes
// (Insert, Remove, Clear, Update) are exclusive and block until
// in-flight readers release. There is no timeout on lock acquisition.
package timedcache
