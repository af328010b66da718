package profiler

import "runtime"

// Runtime counters for debug overlays. These work with or without the
// profile build tag.

// MemoryUsage returns the live heap size in bytes.
func MemoryUsage() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

// MemoryAllocs returns the cumulative heap allocation count.
func MemoryAllocs() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Mallocs
}

func NumGoroutine() int { return runtime.NumGoroutine() }

func NumCPU() int { return runtime.NumCPU() }
