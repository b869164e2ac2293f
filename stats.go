package timedcache

import "sync/atomic"

// Stats holds cache statistics using atomic counters, so the read path
// can update them while holding only the shared lock.
type Stats struct {
	hits        atomic.Int64
	misses      atomic.Int64
	expirations atomic.Int64
}

func (s *Stats) hit() {
	s.hits.Add(1)
}

func (s *Stats) miss() {
	s.misses.Add(1)
}

// expire records a read that observed a stale entry. Expired reads also
// count as misses.
func (s *Stats) expire() {
	s.expirations.Add(1)
	s.misses.Add(1)
}

// Snapshot is a point-in-time copy of cache statistics.
type Snapshot struct {
	Hits        int64
	Misses      int64
	Expirations int64
}

// HitRate returns the cache hit rate as a value between 0 and 1.
// Returns 0 if there have been no accesses.
func (s Snapshot) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Snapshot returns a point-in-time copy of the stats.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Hits:        s.hits.Load(),
		Misses:      s.misses.Load(),
		Expirations: s.expirations.Load(),
	}
}
