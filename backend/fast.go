package backend

import "github.com/klauspost/compress/s2"

// fastBlockSize keeps the fast encoder's internal block buffer sized for
// session workloads instead of the library's megabyte default.
const fastBlockSize = 64 * 1024

// Fast is the restricted fast LZ77 backend adapter.
//
// It exposes only step and reset: one fixed compression level, no flush,
// no preset dictionary, no mid-stream parameter change and no checksum.
// The session rejects requests for any of those before they reach this
// adapter. Initialization is a pure in-memory state reset and cannot fail.
//
// Note: Fast is NOT thread-safe. All calls must be externally serialized
// by the owning session.
type Fast struct {
	sink   stagedSink
	w      *s2.Writer
	closed bool
}

// NewFast creates a Fast adapter. The encoder runs synchronously: every
// step is a bounded computation on the calling goroutine.
func NewFast() *Fast {
	sink := newStagedSink()

	return &Fast{
		sink: sink,
		w:    s2.NewWriter(sink.staged, s2.WriterConcurrency(1), s2.WriterBlockSize(fastBlockSize)),
	}
}

// Step runs one bounded compression step. With endOfStream set, the
// logical stream is closed once all supplied input has been consumed.
//
// ended reports true only when every byte of the closed stream has been
// handed to the caller, so retry loops with small output buffers never
// observe a truncated stream.
func (f *Fast) Step(in, out []byte, endOfStream bool) (consumed, produced int, ended bool, err error) {
	if f.closed {
		produced = f.sink.drain(out)
		return 0, produced, f.sink.pending() == 0, nil
	}

	consumed, produced, err = f.sink.pump(f.w, in, out, nil)
	if err != nil {
		return consumed, produced, false, fault(err)
	}

	if endOfStream && consumed == len(in) {
		if cerr := f.w.Close(); cerr != nil {
			return consumed, produced, false, fault(cerr)
		}
		f.closed = true
		produced += f.sink.drain(out[produced:])
	}

	return consumed, produced, f.closed && f.sink.pending() == 0, nil
}

// Reset returns the adapter to its fresh state with zeroed counters.
func (f *Fast) Reset() {
	f.sink.reset()
	f.w.Reset(f.sink.staged)
	f.closed = false
}

// End releases the adapter's resources. The adapter must not be used
// afterwards; the session guarantees End runs at most once.
func (f *Fast) End() {
	f.sink.release()
	f.w = nil
}

// BytesIn returns the cumulative number of input bytes consumed.
func (f *Fast) BytesIn() int64 {
	return f.sink.totalIn
}

// BytesOut returns the cumulative number of output bytes produced.
func (f *Fast) BytesOut() int64 {
	return f.sink.totalOut
}
