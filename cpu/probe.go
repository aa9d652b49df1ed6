// Package cpu answers the single capability question the dispatch policy
// asks: whether this machine can run the fast backend's vectorized match
// search at full speed.
//
// Detection happens once, inside cpuid's package initialization, and the
// result is immutable for the life of the process. The probe is therefore
// safe to call from any goroutine, before any session exists, and costs a
// single field read.
package cpu

import "github.com/klauspost/cpuid/v2"

// SupportsFastBackend reports whether the CPU provides the SSE4.2
// instruction set the fast backend's hot loops are tuned for. Platforms
// without the feature (or without the feature-detection mechanism at all)
// simply report false and fall back to the standard backend.
func SupportsFastBackend() bool {
	return cpuid.CPU.Supports(cpuid.SSE42)
}
