package session

import "github.com/arloliu/deflatekit/backend"

// Stats is a snapshot of a session's cumulative accounting, useful for
// monitoring compression effectiveness in block-oriented writers.
type Stats struct {
	// Backend identifies which backend the session drives.
	Backend backend.Kind

	// BytesIn is the cumulative number of input bytes consumed.
	BytesIn int64

	// BytesOut is the cumulative number of output bytes produced,
	// including any framing overhead.
	BytesOut int64

	// DictionaryID is the xxHash64 fingerprint of the preset dictionary,
	// or 0 when no dictionary was set. Compressing and decompressing
	// sides can compare fingerprints to confirm dictionary agreement.
	DictionaryID uint64

	// Finished reports whether the logical stream has ended.
	Finished bool
}

// CompressionRatio returns produced bytes over consumed bytes. Values
// below 1.0 indicate effective compression; 0 when no input was consumed.
func (s Stats) CompressionRatio() float64 {
	if s.BytesIn == 0 {
		return 0.0
	}

	return float64(s.BytesOut) / float64(s.BytesIn)
}

// SpaceSavings returns the space savings as a percentage (0-100 for
// effective compression, negative when output expanded).
func (s Stats) SpaceSavings() float64 {
	if s.BytesIn == 0 {
		return 0.0
	}

	return (1.0 - s.CompressionRatio()) * 100.0
}
