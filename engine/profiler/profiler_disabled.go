//go:build !profile

package profiler

import "errors"

// No-op surface when the profile tag is absent. The runtime counters in
// stats.go stay available in both modes.

func Init(capacity int) {}

// Start returns a no-op close func.
func Start(name string) func() { return func() {} }

// OpenGraph reports that profiling is compiled out.
func OpenGraph() (string, error) {
	return "", errors.New("profiler: disabled (build with -tags profile)")
}
