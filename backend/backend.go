// Package backend contains the two compression backend adapters a session
// can drive: Standard (full deflate, any level, flush, dictionaries,
// mid-stream parameter changes, Adler-32 checksum) and Fast (the
// SIMD-oriented LZ77 engine, fixed level, step and reset only).
//
// The adapters are deliberately not unified behind an interface: the two
// capability sets differ, and the session dispatches on the backend kind
// instead of calling through null-behavior stubs. Each adapter shares the
// same staged-output engine, so partial-consumption and output-exhaustion
// semantics are identical regardless of which backend is active.
package backend

// Kind identifies which backend adapter a session drives. It is fixed at
// session creation and never changes for the session's lifetime.
type Kind uint8

const (
	// KindStandard is the general-purpose deflate backend.
	KindStandard Kind = iota
	// KindFast is the restricted fast LZ77 backend.
	KindFast
)

// String returns a human-readable backend name.
func (k Kind) String() string {
	switch k {
	case KindStandard:
		return "standard"
	case KindFast:
		return "fast"
	default:
		return "unknown"
	}
}

// FlushMode requests a synchronization boundary in the compressed stream
// without ending it. Flush is meaningful only for the Standard backend.
type FlushMode uint8

const (
	// FlushNone performs no flush; the backend buffers freely.
	FlushNone FlushMode = iota
	// FlushSync emits an empty stored block so a reader can decode all
	// input consumed so far. The compression window is preserved.
	FlushSync
	// FlushFull emits the same boundary as FlushSync and additionally
	// discards the compression window, letting a reader resynchronize
	// mid-stream at the cost of compression ratio.
	FlushFull
)

// String returns a human-readable flush mode name.
func (m FlushMode) String() string {
	switch m {
	case FlushNone:
		return "none"
	case FlushSync:
		return "sync"
	case FlushFull:
		return "full"
	default:
		return "unknown"
	}
}

// Compression strategies accepted by the Standard backend. The numbering
// follows the zlib strategy constants.
const (
	// StrategyDefault lets the encoder choose freely between matches and
	// literals.
	StrategyDefault = 0
	// StrategyFiltered is accepted for compatibility with zlib-style
	// callers; the underlying encoder has no filtered mode, so it behaves
	// as StrategyDefault.
	StrategyFiltered = 1
	// StrategyHuffmanOnly disables string matching entirely and emits
	// Huffman-coded literals only.
	StrategyHuffmanOnly = 2
)

// Compression levels accepted by the Standard backend.
const (
	// DefaultCompression selects the encoder's default effort level.
	DefaultCompression = -1
	// NoCompression emits stored (uncompressed) blocks.
	NoCompression = 0
	// BestSpeed is the lowest-effort compressing level. It is also the
	// single level the Fast backend serves.
	BestSpeed = 1
	// BestCompression is the highest-effort level.
	BestCompression = 9

	// FastLevel is the only level the Fast backend supports.
	FastLevel = BestSpeed
)
