package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_WriteDrain(t *testing.T) {
	bb := NewByteBuffer(16)

	n, err := bb.Write([]byte("hello world"))
	require.NoError(t, err)
	require.Equal(t, 11, n)
	require.Equal(t, 11, bb.Len())

	dst := make([]byte, 5)
	require.Equal(t, 5, bb.Drain(dst))
	require.Equal(t, []byte("hello"), dst)
	require.Equal(t, 6, bb.Len())

	// Remaining bytes shifted to the front.
	rest := make([]byte, 16)
	require.Equal(t, 6, bb.Drain(rest))
	require.Equal(t, []byte(" world"), rest[:6])
	require.Zero(t, bb.Len())

	require.Zero(t, bb.Drain(dst))
}

func TestByteBuffer_DrainEmptyDst(t *testing.T) {
	bb := NewByteBuffer(16)
	_, _ = bb.Write([]byte("abc"))

	require.Zero(t, bb.Drain(nil))
	require.Equal(t, 3, bb.Len())
}

func TestByteBufferPool_Reuse(t *testing.T) {
	p := NewByteBufferPool(64, 256)

	bb := p.Get()
	require.NotNil(t, bb)
	_, _ = bb.Write([]byte("state"))
	p.Put(bb)

	got := p.Get()
	require.NotNil(t, got)
	require.Zero(t, got.Len())
}

func TestByteBufferPool_DiscardsOversized(t *testing.T) {
	p := NewByteBufferPool(64, 128)

	bb := p.Get()
	_, _ = bb.Write(make([]byte, 4096))
	// Must not retain a buffer grown past the threshold; Put simply
	// drops it.
	p.Put(bb)

	got := p.Get()
	require.NotNil(t, got)
	require.Zero(t, got.Len())
}

func TestStagingBufferHelpers(t *testing.T) {
	bb := GetStagingBuffer()
	require.NotNil(t, bb)
	_, _ = bb.Write([]byte("staged"))
	PutStagingBuffer(bb)
	PutStagingBuffer(nil)
}
