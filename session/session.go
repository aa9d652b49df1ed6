// Package session implements the incremental compression session: the
// dispatch policy that binds a session to one backend at creation, the
// bounded step protocol (compress, flush, finish, mid-stream parameter
// change), the buffer hand-off discipline and the cumulative stream
// counters.
//
// A session is single-threaded: all operations on one Session must be
// externally serialized by the caller. Independent sessions can run
// concurrently on independent goroutines; they share no mutable state.
package session

import (
	"fmt"

	"github.com/arloliu/deflatekit/backend"
	"github.com/arloliu/deflatekit/errs"
	"github.com/arloliu/deflatekit/internal/hash"
	"github.com/arloliu/deflatekit/internal/options"
)

// StepRequest describes one bounded compression step. Input and Output are
// caller-owned buffers pinned for the duration of the call only.
type StepRequest struct {
	// Input is the raw data window to consume. Step advances it by the
	// number of bytes consumed.
	Input *Buffer

	// Output receives compressed bytes. Step advances it by the number of
	// bytes produced.
	Output *Buffer

	// Flush requests a synchronization boundary without ending the
	// stream. Meaningful only for the standard backend; the fast backend
	// rejects any flush request.
	Flush backend.FlushMode

	// Finish requests that this step also close the logical stream. Once
	// all input is consumed and all output handed over, the session
	// reports Finished. Finish takes precedence over Flush.
	Finish bool
}

// Session is the unit of compression work. It owns exactly one backend
// adapter, chosen by the dispatch policy at creation and fixed for the
// session's lifetime, and tracks the stream state across steps.
//
// Note: Session is NOT thread-safe. Each session must be driven by a
// single goroutine at a time.
type Session struct {
	kind backend.Kind

	// Exactly one of std/fast is non-nil, keyed by kind, from creation
	// until Close.
	std  *backend.Standard
	fast *backend.Fast

	level    int
	strategy int

	pendingLevel    int
	pendingStrategy int
	paramsPending   bool

	finished bool
	started  bool
	closed   bool

	dictID uint64
}

// New creates a session for the requested compression level.
//
// Dispatch policy: the fast backend is chosen iff level equals
// backend.FastLevel and the capability probe reports support; every other
// combination gets the standard backend configured with the level,
// strategy and framing mode from the options. The choice is made exactly
// once and is irrevocable.
func New(level int, opts ...Option) (*Session, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if level == backend.FastLevel && cfg.probe() {
		if len(cfg.dict) > 0 {
			return nil, fmt.Errorf("%w: preset dictionary requires the standard backend",
				errs.ErrUnsupportedOperation)
		}

		return &Session{
			kind:     backend.KindFast,
			fast:     backend.NewFast(),
			level:    level,
			strategy: cfg.strategy,
		}, nil
	}

	std, err := backend.NewStandard(level, cfg.strategy, cfg.nowrap)
	if err != nil {
		return nil, err
	}

	s := &Session{
		kind:     backend.KindStandard,
		std:      std,
		level:    level,
		strategy: cfg.strategy,
	}

	if len(cfg.dict) > 0 {
		if err := s.SetDictionary(cfg.dict); err != nil {
			std.End()
			return nil, err
		}
	}

	return s, nil
}

// Step runs one bounded compression step and returns the number of bytes
// produced into the output buffer. Both buffers are advanced by the bytes
// processed, so a caller can loop on the same request until the input
// drains.
//
// A zero return with no error is not a failure: it means no progress was
// possible with the supplied buffers (typically the output window is
// full). Resupply buffers and call again.
func (s *Session) Step(req *StepRequest) (int, error) {
	if s.closed {
		return 0, errs.ErrClosedSession
	}
	if req == nil || req.Input == nil || req.Output == nil {
		return 0, fmt.Errorf("%w: step request needs input and output buffers", errs.ErrInvalidConfiguration)
	}
	if s.finished {
		return 0, nil
	}
	if req.Input.length == 0 && req.Output.length == 0 {
		// Nothing to consume, nowhere to produce.
		return 0, nil
	}

	if s.kind == backend.KindFast {
		if req.Flush != backend.FlushNone {
			return 0, fmt.Errorf("%w: flush is not supported by the fast backend", errs.ErrUnsupportedOperation)
		}
		if s.paramsPending {
			if s.fast.BytesIn() != 0 {
				return 0, fmt.Errorf("%w: parameter change after input on the fast backend", errs.ErrUnsupportedOperation)
			}
			// The fast backend has a single level and it is already in
			// effect; a pre-input change request is a no-op.
			s.paramsPending = false
		}
	}

	// Pin input then output; the deferred releases run in reverse order
	// on every exit path, including backend faults.
	in, ok, err := req.Input.pin()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	defer req.Input.release()

	out, ok, err := req.Output.pin()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	defer req.Output.release()

	s.started = true

	var (
		consumed, produced int
		ended, done        bool
	)

	switch {
	case s.kind == backend.KindStandard && s.paramsPending:
		consumed, produced, done, err = s.std.ApplyParams(in, out, s.pendingLevel, s.pendingStrategy)
		if err != nil {
			return 0, err
		}
		if done {
			// Cleared only on confirmed completion; a zero-progress
			// outcome keeps the change pending for the retry.
			s.paramsPending = false
			s.level = s.pendingLevel
			s.strategy = s.pendingStrategy
		}

	case s.kind == backend.KindFast:
		consumed, produced, ended, err = s.fast.Step(in, out, req.Finish)
		if err != nil {
			return 0, err
		}

	default:
		consumed, produced, ended, err = s.std.Step(in, out, req.Flush, req.Finish)
		if err != nil {
			return 0, err
		}
	}

	req.Input.advance(consumed)
	req.Output.advance(produced)

	if ended {
		s.finished = true
	}

	return produced, nil
}

// SetParams requests a new level/strategy pair to take effect before the
// next byte is compressed. The change is applied, against the buffers of
// the next Step call, by draining the backend state buffered under the old
// parameters; until that application completes the change stays pending.
//
// On the fast backend a pending change is a silent no-op if no input has
// been consumed yet, and the next Step fails with ErrUnsupportedOperation
// otherwise.
func (s *Session) SetParams(level, strategy int) error {
	if s.closed {
		return errs.ErrClosedSession
	}
	if err := backend.ValidateParams(level, strategy); err != nil {
		return err
	}
	if s.finished {
		return fmt.Errorf("%w: cannot change parameters after the stream finished", errs.ErrUnsupportedOperation)
	}

	s.pendingLevel = level
	s.pendingStrategy = strategy
	s.paramsPending = true

	return nil
}

// SetDictionary primes the compression window with a preset dictionary.
// Legal only on the standard backend and only before the first step.
func (s *Session) SetDictionary(dict []byte) error {
	if s.closed {
		return errs.ErrClosedSession
	}
	if s.kind == backend.KindFast {
		return fmt.Errorf("%w: preset dictionary requires the standard backend", errs.ErrUnsupportedOperation)
	}
	if s.started || s.std.BytesIn() != 0 || s.std.BytesOut() != 0 {
		return fmt.Errorf("%w: dictionary must be set before the first step", errs.ErrUnsupportedOperation)
	}
	if len(dict) == 0 {
		return fmt.Errorf("%w: empty dictionary", errs.ErrInvalidConfiguration)
	}

	if err := s.std.SetDictionary(dict); err != nil {
		return err
	}
	s.dictID = hash.DictionaryID(dict)

	return nil
}

// Reset returns the session to a fresh stream: counters and checksum
// re-zeroed, finished cleared, pending parameter changes dropped, preset
// dictionary forgotten. The backend choice is unchanged.
func (s *Session) Reset() error {
	if s.closed {
		return errs.ErrClosedSession
	}

	if s.kind == backend.KindFast {
		s.fast.Reset()
	} else if err := s.std.Reset(); err != nil {
		return err
	}

	s.finished = false
	s.paramsPending = false
	s.started = false
	s.dictID = 0

	return nil
}

// Close terminates the session and releases the backend state. A second
// Close is a no-op; any other operation on a closed session fails with
// ErrClosedSession.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if s.kind == backend.KindFast {
		s.fast.End()
	} else {
		s.std.End()
	}

	return nil
}

// Backend returns which backend the dispatch policy bound to this session.
func (s *Session) Backend() backend.Kind {
	return s.kind
}

// Finished reports whether the backend confirmed the logical end of the
// compressed stream and every byte of it reached the caller.
func (s *Session) Finished() bool {
	return s.finished
}

// BytesIn returns the backend's running total of consumed input bytes.
// It reports 0 after Close.
func (s *Session) BytesIn() int64 {
	switch {
	case s.closed:
		return 0
	case s.kind == backend.KindFast:
		return s.fast.BytesIn()
	default:
		return s.std.BytesIn()
	}
}

// BytesOut returns the backend's running total of produced output bytes.
// It reports 0 after Close.
func (s *Session) BytesOut() int64 {
	switch {
	case s.closed:
		return 0
	case s.kind == backend.KindFast:
		return s.fast.BytesOut()
	default:
		return s.std.BytesOut()
	}
}

// Checksum returns the running Adler-32 of all consumed input. Only the
// standard backend maintains a checksum.
func (s *Session) Checksum() (uint32, error) {
	if s.closed {
		return 0, errs.ErrClosedSession
	}
	if s.kind == backend.KindFast {
		return 0, fmt.Errorf("%w: the fast backend keeps no checksum", errs.ErrUnsupportedOperation)
	}

	return s.std.Checksum(), nil
}

// Stats returns a snapshot of the session's cumulative accounting.
func (s *Session) Stats() Stats {
	return Stats{
		Backend:      s.kind,
		BytesIn:      s.BytesIn(),
		BytesOut:     s.BytesOut(),
		DictionaryID: s.dictID,
		Finished:     s.finished,
	}
}
