package backend

import (
	"encoding/binary"
	"fmt"
	"hash"
	"hash/adler32"

	"github.com/klauspost/compress/flate"

	"github.com/arloliu/deflatekit/errs"
)

// windowSize is the deflate match window. The adapter mirrors the last
// windowSize bytes of consumed input so a mid-stream parameter change can
// re-prime the new encoder and keep matching across the swap.
const windowSize = 32 * 1024

// Standard is the general-purpose deflate backend adapter.
//
// It supports every compression level, sync and full flushes, preset
// dictionaries, mid-stream parameter changes and a running Adler-32
// checksum of consumed input. Output is framed either as a zlib stream
// (two-byte header, Adler-32 trailer) or as raw deflate blocks.
//
// Note: Standard is NOT thread-safe. All calls must be externally
// serialized by the owning session.
type Standard struct {
	sink stagedSink
	w    *flate.Writer

	level    int
	strategy int
	nowrap   bool

	adler  hash.Hash32
	dict   []byte // preset dictionary, nil once reset discards it
	window []byte // tail of consumed input for parameter swaps

	headerDone bool // zlib header staged (or raw mode)
	closed     bool // final block written, no further input accepted
}

// ValidateParams checks a level/strategy pair against the ranges the
// Standard backend accepts.
func ValidateParams(level, strategy int) error {
	if level < DefaultCompression || level > BestCompression {
		return fmt.Errorf("%w: compression level %d out of range [%d, %d]",
			errs.ErrInvalidConfiguration, level, DefaultCompression, BestCompression)
	}
	if strategy < StrategyDefault || strategy > StrategyHuffmanOnly {
		return fmt.Errorf("%w: compression strategy %d out of range [%d, %d]",
			errs.ErrInvalidConfiguration, strategy, StrategyDefault, StrategyHuffmanOnly)
	}

	return nil
}

// effectiveLevel maps a level/strategy pair onto the single level knob the
// underlying encoder exposes. StrategyHuffmanOnly overrides the level.
func effectiveLevel(level, strategy int) int {
	if strategy == StrategyHuffmanOnly {
		return flate.HuffmanOnly
	}

	return level
}

// NewStandard creates a Standard adapter for the given level, strategy and
// framing mode. nowrap selects raw deflate framing; otherwise output is a
// zlib stream.
func NewStandard(level, strategy int, nowrap bool) (*Standard, error) {
	if err := ValidateParams(level, strategy); err != nil {
		return nil, err
	}

	sink := newStagedSink()
	w, err := flate.NewWriter(sink.staged, effectiveLevel(level, strategy))
	if err != nil {
		sink.release()
		// Parameter problems were caught above; anything left is an
		// initialization failure of the encoder itself.
		return nil, fmt.Errorf("%w: %v", errs.ErrResourceExhausted, err)
	}

	return &Standard{
		sink:     sink,
		w:        w,
		level:    level,
		strategy: strategy,
		nowrap:   nowrap,
		adler:    adler32.New(),
	}, nil
}

// SetDictionary primes the compression window with a preset dictionary.
// Legal only before any input has been consumed; the session enforces the
// ordering. In wrapped mode the zlib header will carry the FDICT flag and
// the dictionary's Adler-32 checksum.
func (s *Standard) SetDictionary(dict []byte) error {
	w, err := flate.NewWriterDict(s.sink.staged, effectiveLevel(s.level, s.strategy), dict)
	if err != nil {
		return fault(err)
	}

	s.w = w
	s.dict = append([]byte(nil), dict...)
	s.pushWindow(dict)

	return nil
}

// Step runs one bounded compression step: drain staged output, consume as
// much input as output room allows, then honor finish or flush once all
// supplied input was consumed. finish takes precedence over flush.
//
// ended reports true only when the final block and trailer have been fully
// handed to the caller, so a caller looping on insufficient output
// capacity never observes a truncated stream.
func (s *Standard) Step(in, out []byte, flush FlushMode, finish bool) (consumed, produced int, ended bool, err error) {
	s.writeHeader()

	if s.closed {
		// Finish already done; only staged bytes remain.
		produced = s.sink.drain(out)
		return 0, produced, s.drained(), nil
	}

	consumed, produced, err = s.sink.pump(s.w, in, out, s.observe)
	if err != nil {
		return consumed, produced, false, fault(err)
	}

	if consumed < len(in) {
		// Output exhausted mid-input; finish/flush wait for the retry.
		return consumed, produced, false, nil
	}

	switch {
	case finish:
		if cerr := s.w.Close(); cerr != nil {
			return consumed, produced, false, fault(cerr)
		}
		s.closed = true
		if !s.nowrap {
			s.writeTrailer()
		}
	case flush == FlushSync:
		if ferr := s.w.Flush(); ferr != nil {
			return consumed, produced, false, fault(ferr)
		}
	case flush == FlushFull:
		if ferr := s.w.Flush(); ferr != nil {
			return consumed, produced, false, fault(ferr)
		}
		// Full flush discards the compression window: continue with a
		// fresh encoder and forget the mirrored window.
		w, werr := flate.NewWriter(s.sink.staged, effectiveLevel(s.level, s.strategy))
		if werr != nil {
			return consumed, produced, false, fault(werr)
		}
		s.w = w
		s.window = s.window[:0]
	}

	produced += s.sink.drain(out[produced:])

	return consumed, produced, s.drained(), nil
}

// ApplyParams re-negotiates level and strategy mid-stream. The currently
// buffered encoder state is flushed at the old parameters, then a new
// encoder primed with the recent input window takes over. The supplied
// buffers are consumed and filled exactly like a normal step.
//
// done reports whether every byte staged by the swap reached the caller;
// until it does, the session keeps the parameter change pending and
// retries with more output room. Retries skip the swap: the parameters
// already match.
func (s *Standard) ApplyParams(in, out []byte, level, strategy int) (consumed, produced int, done bool, err error) {
	if err := ValidateParams(level, strategy); err != nil {
		return 0, 0, false, err
	}

	s.writeHeader()

	if (level != s.level || strategy != s.strategy) && !s.closed {
		if ferr := s.w.Flush(); ferr != nil {
			return 0, 0, false, fault(ferr)
		}
		w, werr := flate.NewWriterDict(s.sink.staged, effectiveLevel(level, strategy), s.window)
		if werr != nil {
			return 0, 0, false, fault(werr)
		}
		s.w = w
	}
	s.level = level
	s.strategy = strategy

	consumed, produced, err = s.sink.pump(s.w, in, out, s.observe)
	if err != nil {
		return consumed, produced, false, fault(err)
	}

	return consumed, produced, s.sink.pending() == 0, nil
}

// Reset returns the adapter to its fresh state: counters and checksum
// re-zeroed, staged output discarded, preset dictionary forgotten. Level,
// strategy and framing mode are retained.
func (s *Standard) Reset() error {
	s.sink.reset()
	s.adler.Reset()
	s.window = s.window[:0]
	s.headerDone = false
	s.closed = false

	if s.dict == nil {
		s.w.Reset(s.sink.staged)
		return nil
	}

	// flate's Reset would re-prime the old dictionary; a reset stream
	// starts without one.
	s.dict = nil
	w, err := flate.NewWriter(s.sink.staged, effectiveLevel(s.level, s.strategy))
	if err != nil {
		return fault(err)
	}
	s.w = w

	return nil
}

// End releases the adapter's resources. The adapter must not be used
// afterwards; the session guarantees End runs at most once.
func (s *Standard) End() {
	s.sink.release()
	s.w = nil
}

// Checksum returns the running Adler-32 of all consumed input. A fresh
// stream reports 1, matching a fresh zlib adler.
func (s *Standard) Checksum() uint32 {
	return s.adler.Sum32()
}

// BytesIn returns the cumulative number of input bytes consumed.
func (s *Standard) BytesIn() int64 {
	return s.sink.totalIn
}

// BytesOut returns the cumulative number of output bytes produced.
func (s *Standard) BytesOut() int64 {
	return s.sink.totalOut
}

func (s *Standard) drained() bool {
	return s.closed && s.sink.pending() == 0
}

// observe sees every consumed chunk: it advances the checksum and mirrors
// the deflate window for parameter swaps.
func (s *Standard) observe(chunk []byte) {
	_, _ = s.adler.Write(chunk)
	s.pushWindow(chunk)
}

func (s *Standard) pushWindow(chunk []byte) {
	if len(chunk) >= windowSize {
		s.window = append(s.window[:0], chunk[len(chunk)-windowSize:]...)
		return
	}

	s.window = append(s.window, chunk...)
	if len(s.window) > windowSize {
		n := copy(s.window, s.window[len(s.window)-windowSize:])
		s.window = s.window[:n]
	}
}

// writeHeader stages the two-byte zlib header (plus the dictionary id when
// a preset dictionary is set) ahead of the first deflate byte. Raw mode
// stages nothing. Deferred to the first step so SetDictionary can still
// influence the header.
func (s *Standard) writeHeader() {
	if s.headerDone || s.nowrap {
		s.headerDone = true
		return
	}

	const cmf = 0x78 // deflate, 32K window

	flg := byte(s.flevel() << 6)
	if s.dict != nil {
		flg |= 0x20 // FDICT
	}
	// FCHECK makes the header a multiple of 31.
	if rem := (uint16(cmf)<<8 | uint16(flg)) % 31; rem != 0 {
		flg += byte(31 - rem)
	}

	_, _ = s.sink.staged.Write([]byte{cmf, flg})
	if s.dict != nil {
		var id [4]byte
		binary.BigEndian.PutUint32(id[:], adler32.Checksum(s.dict))
		_, _ = s.sink.staged.Write(id[:])
	}

	s.headerDone = true
}

// flevel is the FLEVEL header field, following zlib's classification.
func (s *Standard) flevel() int {
	level := s.level
	if level == DefaultCompression {
		level = 6
	}

	switch {
	case s.strategy == StrategyHuffmanOnly || level < 2:
		return 0
	case level < 6:
		return 1
	case level == 6:
		return 2
	default:
		return 3
	}
}

// writeTrailer stages the big-endian Adler-32 of all consumed input after
// the final deflate block.
func (s *Standard) writeTrailer() {
	var tr [4]byte
	binary.BigEndian.PutUint32(tr[:], s.adler.Sum32())
	_, _ = s.sink.staged.Write(tr[:])
}
