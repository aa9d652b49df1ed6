package backend

import (
	"fmt"
	"io"

	"github.com/arloliu/deflatekit/errs"
	"github.com/arloliu/deflatekit/internal/pool"
)

// feedChunkSize bounds how much input is handed to the compressor between
// drains, so output lands in the caller's buffer as soon as it exists
// instead of piling up in the staging area.
const feedChunkSize = 32 * 1024

// stagedSink decouples the compressor's write-driven output from the
// caller's capacity-bounded output buffer. Compressed bytes the caller
// could not yet accept stay staged; input consumption is throttled on
// available output room, which is what produces the partial-consumption
// and zero-progress ("resupply buffers and retry") semantics both
// adapters share.
//
// totalIn counts bytes handed to the compressor, totalOut counts bytes
// handed to the caller. Both are running stream totals and survive any
// number of steps; reset re-zeroes them.
type stagedSink struct {
	staged   *pool.ByteBuffer
	totalIn  int64
	totalOut int64
}

func newStagedSink() stagedSink {
	return stagedSink{staged: pool.GetStagingBuffer()}
}

// drain moves staged bytes into dst and accounts them as produced.
func (k *stagedSink) drain(dst []byte) int {
	n := k.staged.Drain(dst)
	k.totalOut += int64(n)

	return n
}

// pending returns the number of staged bytes not yet handed to the caller.
func (k *stagedSink) pending() int {
	return k.staged.Len()
}

// pump runs one bounded consume/drain cycle: it first drains previously
// staged output into out, then feeds input to w in chunks for as long as
// out has room, draining after every chunk. The observe callback, when
// non-nil, sees every consumed chunk (the Standard adapter maintains its
// checksum and sliding window there).
//
// A (0, 0, nil) return with unconsumed input means the caller's output
// buffer is exhausted.
func (k *stagedSink) pump(w io.Writer, in, out []byte, observe func([]byte)) (consumed, produced int, err error) {
	produced = k.drain(out)

	for consumed < len(in) && produced < len(out) {
		n := min(feedChunkSize, len(in)-consumed)
		chunk := in[consumed : consumed+n]

		if _, werr := w.Write(chunk); werr != nil {
			return consumed, produced, werr
		}
		if observe != nil {
			observe(chunk)
		}

		consumed += n
		k.totalIn += int64(n)
		produced += k.drain(out[produced:])
	}

	return consumed, produced, nil
}

// reset clears staged output and re-zeroes the stream totals.
func (k *stagedSink) reset() {
	k.staged.Reset()
	k.totalIn = 0
	k.totalOut = 0
}

// release returns the staging buffer to the pool. The sink must not be
// used afterwards.
func (k *stagedSink) release() {
	pool.PutStagingBuffer(k.staged)
	k.staged = nil
}

// fault wraps a raw compressor error as a backend fault, preserving the
// backend's diagnostic text.
func fault(err error) error {
	return fmt.Errorf("%w: %v", errs.ErrBackendFault, err)
}
