package deflatekit_test

import (
	"bytes"
	"io"
	"math/rand"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/deflatekit"
	"github.com/arloliu/deflatekit/backend"
	"github.com/arloliu/deflatekit/session"
)

func testData(size int) []byte {
	rng := rand.New(rand.NewSource(42))
	data := make([]byte, size)
	for i := range data {
		data[i] = byte('a' + rng.Intn(16))
	}

	return data
}

func TestDeflate_RoundTrip(t *testing.T) {
	data := testData(20 * 1024)

	for _, level := range []int{deflatekit.DefaultCompression, deflatekit.BestSpeed, 6, deflatekit.BestCompression} {
		comp, err := deflatekit.Deflate(data, level,
			session.WithCapabilityProbe(func() bool { return false }))
		require.NoError(t, err)

		r, err := zlib.NewReader(bytes.NewReader(comp))
		require.NoError(t, err)
		plain, err := io.ReadAll(r)
		require.NoError(t, err)
		require.NoError(t, r.Close())
		require.Equal(t, data, plain)
	}
}

func TestDeflate_FastBackend(t *testing.T) {
	data := testData(20 * 1024)

	comp, err := deflatekit.Deflate(data, deflatekit.FastLevel,
		session.WithCapabilityProbe(func() bool { return true }))
	require.NoError(t, err)

	plain, err := io.ReadAll(s2.NewReader(bytes.NewReader(comp)))
	require.NoError(t, err)
	require.Equal(t, data, plain)
}

func TestDeflate_Empty(t *testing.T) {
	comp, err := deflatekit.Deflate(nil, 6,
		session.WithCapabilityProbe(func() bool { return false }))
	require.NoError(t, err)

	r, err := zlib.NewReader(bytes.NewReader(comp))
	require.NoError(t, err)
	plain, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Empty(t, plain)
}

func TestNewRawSession(t *testing.T) {
	data := testData(8 * 1024)

	sess, err := deflatekit.NewRawSession(6,
		session.WithCapabilityProbe(func() bool { return false }))
	require.NoError(t, err)
	defer sess.Close()
	require.Equal(t, backend.KindStandard, sess.Backend())

	input := session.NewBuffer(data, 0, len(data))
	var comp []byte
	for !sess.Finished() {
		chunk := make([]byte, 4096)
		n, err := sess.Step(&session.StepRequest{
			Input:  input,
			Output: session.NewBuffer(chunk, 0, len(chunk)),
			Finish: true,
		})
		require.NoError(t, err)
		comp = append(comp, chunk[:n]...)
	}

	r := flate.NewReader(bytes.NewReader(comp))
	defer r.Close()
	plain, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, data, plain)
}
