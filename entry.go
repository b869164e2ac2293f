package timedcache

import "time"

// Entry is a cached value together with the time it was written.
// Entries are exposed directly by View, Update, and From; everywhere
// else the cache hands out value copies only.
type Entry[V any] struct {
	Value      V
	InsertedAt time.Time
}

// Age returns how long ago the entry was written, relative to now.
func (e Entry[V]) Age(now time.Time) time.Duration {
	return now.Sub(e.InsertedAt)
}
