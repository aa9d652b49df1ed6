package session

import (
	"github.com/arloliu/deflatekit/backend"
	"github.com/arloliu/deflatekit/cpu"
	"github.com/arloliu/deflatekit/internal/options"
)

// config collects the session creation settings the dispatch policy and
// the standard backend consume.
type config struct {
	strategy int
	nowrap   bool
	dict     []byte
	probe    func() bool
}

func newConfig() *config {
	return &config{
		strategy: backend.StrategyDefault,
		probe:    cpu.SupportsFastBackend,
	}
}

// Option represents a functional option for session creation.
type Option = options.Option[*config]

// WithStrategy sets the compression strategy for the standard backend.
// Valid strategies are backend.StrategyDefault, backend.StrategyFiltered
// and backend.StrategyHuffmanOnly; the value is validated during creation.
func WithStrategy(strategy int) Option {
	return options.NoError(func(cfg *config) {
		cfg.strategy = strategy
	})
}

// WithRawDeflate selects raw deflate framing: no zlib header, no Adler-32
// trailer. The running checksum remains queryable either way.
func WithRawDeflate() Option {
	return options.NoError(func(cfg *config) {
		cfg.nowrap = true
	})
}

// WithDictionary primes the session with a preset dictionary immediately
// after creation, equivalent to calling SetDictionary before the first
// step. Dictionaries require the standard backend; creation fails if the
// dispatch policy selects the fast backend.
func WithDictionary(dict []byte) Option {
	return options.NoError(func(cfg *config) {
		cfg.dict = dict
	})
}

// WithCapabilityProbe overrides the CPU capability probe consulted by the
// dispatch policy. Intended for tests that need to force or deny the fast
// backend regardless of the machine they run on.
func WithCapabilityProbe(probe func() bool) Option {
	return options.NoError(func(cfg *config) {
		cfg.probe = probe
	})
}
