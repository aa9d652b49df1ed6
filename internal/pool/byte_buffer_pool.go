// Package pool manages reusable byte buffers for backend staging areas.
//
// Every live session owns one staging buffer that holds compressed bytes the
// caller's output buffer could not yet accept. Sessions are created and
// closed at high rates by block-oriented writers (one session per output
// block in some hosts), so the staging buffers are pooled.
package pool

import "sync"

const (
	// StagingDefaultSize is the initial capacity of a staging buffer. Sized
	// to hold a full deflate output burst for a typical 64KiB input block.
	StagingDefaultSize = 32 * 1024

	// StagingMaxThreshold is the largest buffer the pool retains. Buffers
	// grown beyond it are dropped on Put to avoid pinning peak-sized
	// allocations for the life of the process.
	StagingMaxThreshold = 512 * 1024
)

// ByteBuffer is a growable byte slice with explicit length management.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the given initial capacity.
func NewByteBuffer(size int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, size)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the number of bytes currently held.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset empties the buffer, retaining the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Write appends data, growing the buffer as needed. It never fails; the
// error return satisfies io.Writer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// Drain copies up to len(dst) bytes out of the front of the buffer and
// shifts the remainder down. It returns the number of bytes copied.
func (bb *ByteBuffer) Drain(dst []byte) int {
	n := copy(dst, bb.B)
	if n == 0 {
		return 0
	}

	rest := copy(bb.B, bb.B[n:])
	bb.B = bb.B[:rest]

	return n
}

// ByteBufferPool pools ByteBuffers to minimize allocations across short-lived
// sessions. Buffers above maxThreshold are discarded instead of retained.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool handing out buffers of defaultSize
// capacity, discarding returned buffers larger than maxThreshold.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var stagingPool = NewByteBufferPool(StagingDefaultSize, StagingMaxThreshold)

// GetStagingBuffer retrieves a staging buffer from the default pool.
func GetStagingBuffer() *ByteBuffer {
	return stagingPool.Get()
}

// PutStagingBuffer returns a staging buffer to the default pool.
func PutStagingBuffer(bb *ByteBuffer) {
	stagingPool.Put(bb)
}
