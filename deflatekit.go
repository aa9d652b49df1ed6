// Package deflatekit provides streaming, incremental compression sessions
// that dispatch between two interchangeable backends: a general-purpose
// deflate engine and a fast SIMD-oriented LZ77 engine.
//
// A session accepts chunks of raw bytes plus a bounded output window, runs
// one compression step, reports how much input it consumed and how much
// output it produced, and tracks cumulative byte and checksum counters
// until the caller finishes the stream. The backend is chosen once, at
// session creation: the fast engine serves exactly BestSpeed on machines
// whose CPU supports it, and the deflate engine serves everything else
// with the full feature set (levels, strategies, flushes, preset
// dictionaries, mid-stream parameter changes, zlib or raw framing).
//
// # Basic Usage
//
// Compressing a buffer through a session:
//
//	sess, _ := deflatekit.NewSession(deflatekit.BestCompression)
//	defer sess.Close()
//
//	out := make([]byte, 4096)
//	input := session.NewBuffer(data, 0, len(data))
//	for !sess.Finished() {
//	    req := &session.StepRequest{
//	        Input:  input,
//	        Output: session.NewBuffer(out, 0, len(out)),
//	        Finish: true,
//	    }
//	    n, err := sess.Step(req)
//	    if err != nil {
//	        return err
//	    }
//	    emit(out[:n])
//	}
//
// A zero-progress step (0 produced, nil error) signals that the supplied
// buffers are exhausted: grow the output window or supply more input and
// call again.
//
// # Package Structure
//
// This package offers convenient top-level wrappers around the session
// package. For fine-grained control, use the session, backend and cpu
// packages directly.
package deflatekit

import (
	"github.com/arloliu/deflatekit/backend"
	"github.com/arloliu/deflatekit/session"
)

// Compression levels, re-exported for callers that only import the root
// package.
const (
	DefaultCompression = backend.DefaultCompression
	NoCompression      = backend.NoCompression
	BestSpeed          = backend.BestSpeed
	BestCompression    = backend.BestCompression

	// FastLevel is the single level served by the fast backend.
	FastLevel = backend.FastLevel
)

// Compression strategies for the standard backend.
const (
	StrategyDefault     = backend.StrategyDefault
	StrategyFiltered    = backend.StrategyFiltered
	StrategyHuffmanOnly = backend.StrategyHuffmanOnly
)

// NewSession creates a compression session producing a zlib-framed stream
// at the given level. The dispatch policy picks the backend; see
// session.New for the rule.
func NewSession(level int, opts ...session.Option) (*session.Session, error) {
	return session.New(level, opts...)
}

// NewRawSession creates a compression session producing raw deflate
// blocks: no zlib header, no Adler-32 trailer.
func NewRawSession(level int, opts ...session.Option) (*session.Session, error) {
	opts = append(opts, session.WithRawDeflate())

	return session.New(level, opts...)
}

// Deflate compresses data in one call by driving a session's step loop to
// completion. It is a convenience for callers that do not need incremental
// buffer management.
func Deflate(data []byte, level int, opts ...session.Option) ([]byte, error) {
	sess, err := session.New(level, opts...)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	input := session.NewBuffer(data, 0, len(data))
	chunk := make([]byte, 32*1024)

	var result []byte
	for !sess.Finished() {
		output := session.NewBuffer(chunk, 0, len(chunk))
		n, err := sess.Step(&session.StepRequest{Input: input, Output: output, Finish: true})
		if err != nil {
			return nil, err
		}
		result = append(result, chunk[:n]...)
	}

	return result, nil
}
