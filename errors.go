package timedcache

// PoisonedError reports that the cache lock could not be acquired
// because a previous holder panicked while holding it. Poisoning is
// permanent: every later acquisition on the same cache fails with this
// error, and the cache instance must be replaced.
type PoisonedError struct {
	// Mode is the access mode whose acquisition failed, "read" or "write".
	Mode string
}

func (e *PoisonedError) Error() string {
	return "timedcache: failed to acquire " + e.Mode + " guard: lock poisoned"
}
