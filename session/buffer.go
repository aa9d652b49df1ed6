package session

import (
	"fmt"

	"github.com/arloliu/deflatekit/errs"
)

// Buffer is a caller-owned byte region handed to a session for the
// duration of a single step. The session pins it on entry, operates on the
// (offset, length) window, advances the window by the bytes it consumed or
// produced, and releases it before returning — on every exit path,
// including backend faults. The session never retains a reference across
// steps.
//
// While a step is in flight the caller must not mutate or resize the
// underlying slice; afterwards ownership reverts fully to the caller.
type Buffer struct {
	data   []byte
	off    int
	length int
	pinned bool
}

// NewBuffer wraps a caller-owned slice, exposing the window starting at
// off and spanning length bytes. Bounds are validated when the buffer is
// pinned, not here.
func NewBuffer(data []byte, off, length int) *Buffer {
	return &Buffer{data: data, off: off, length: length}
}

// Offset returns the current window start. Steps move it forward by the
// number of bytes consumed (input) or produced (output).
func (b *Buffer) Offset() int {
	return b.off
}

// Remaining returns the number of bytes left in the window.
func (b *Buffer) Remaining() int {
	return b.length
}

// pin grants exclusive access to the window for one step.
//
// A failed pin with a nonzero window length reports an error; with a zero
// length it reports ok=false and no error, which the session turns into a
// silent zero-progress result.
func (b *Buffer) pin() (view []byte, ok bool, err error) {
	if b.pinned || b.off < 0 || b.length < 0 || b.off+b.length > len(b.data) {
		if b.length != 0 {
			return nil, false, fmt.Errorf("%w: cannot pin [%d, %d) of a %d-byte buffer",
				errs.ErrOutOfMemory, b.off, b.off+b.length, len(b.data))
		}

		return nil, false, nil
	}

	b.pinned = true

	return b.data[b.off : b.off+b.length], true, nil
}

// release ends the step's exclusive access.
func (b *Buffer) release() {
	b.pinned = false
}

// advance moves the window past n processed bytes.
func (b *Buffer) advance(n int) {
	b.off += n
	b.length -= n
}
