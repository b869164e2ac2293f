package timedcache

import (
	"strconv"
	"testing"
	"time"
)

func BenchmarkCache_Get(b *testing.B) {
	cache := New[string, int](time.Minute)

	keys := make([]string, 100)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
		cache.Insert(keys[i], i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Get(keys[i%100])
	}
}

func BenchmarkCache_Insert(b *testing.B) {
	cache := New[string, int](time.Minute)

	keys := make([]string, b.N)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Insert(keys[i], i)
	}
}

func BenchmarkCache_GetAll(b *testing.B) {
	cache := New[string, int](time.Minute)

	for i := 0; i < 100; i++ {
		cache.Insert(strconv.Itoa(i), i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.GetAll()
	}
}

func BenchmarkCache_Parallel(b *testing.B) {
	cache := New[string, int](time.Minute)

	keys := make([]string, 100)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
		cache.Insert(keys[i], i)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if i%10 == 0 {
				cache.Insert(keys[i%100], i)
			} else {
				cache.Get(keys[i%100])
			}
			i++
		}
	})
}
