package logging

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

// ErrorSink records non-fatal diagnostics as warnings.
// A LogError issued while another one is being written is dropped, so a
// failing hook or writer cannot recurse into the sink.
type ErrorSink struct {
	logger  zerolog.Logger
	busy    atomic.Bool
	logged  atomic.Int64
	dropped atomic.Int64
}

// NewErrorSink creates a sink writing to logger.
func NewErrorSink(logger zerolog.Logger) *ErrorSink {
	return &ErrorSink{logger: logger.With().Str("component", "dock").Logger()}
}

// LogError writes a warning tagged with category.
func (s *ErrorSink) LogError(category, message string) {
	if !s.busy.CompareAndSwap(false, true) {
		s.dropped.Add(1)
		return
	}
	defer s.busy.Store(false)

	s.logged.Add(1)
	s.logger.Warn().Str("category", category).Msg(message)
}

// Logged returns how many diagnostics were written.
func (s *ErrorSink) Logged() int64 {
	return s.logged.Load()
}

// Dropped returns how many re-entrant calls were discarded.
func (s *ErrorSink) Dropped() int64 {
	return s.dropped.Load()
}
