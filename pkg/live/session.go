// Package live glues one accumulator and one endpointer into a session
// driven by a sequential STT segment stream. It owns the handoff policy the
// core library leaves to the caller: finalize on ENDPOINT decisions and
// buffer timeouts, reset between turns, surface everything through
// synchronous callbacks.
package live

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/prosodylabs/turnpoint/pkg/endpoint"
)

// Callbacks are invoked synchronously from the same goroutine that calls
// ProcessSegment or UpdateSilence. The session spawns no goroutines. All
// fields are optional.
type Callbacks struct {
	// OnDecision receives every endpointing evaluation.
	OnDecision func(endpoint.EndpointingResult)

	// OnEndpoint receives the finalized query when a turn completes
	// normally (status READY).
	OnEndpoint func(endpoint.AccumulatedQuery, endpoint.EndpointingResult)

	// OnTimeout receives the finalized query when the buffer span exceeded
	// the limit (status TIMEOUT). Downstream should process what is there
	// and treat the turn as possibly abandoned.
	OnTimeout func(endpoint.AccumulatedQuery)
}

// Session owns one Accumulator and one Endpointer for one live speech
// stream. Segments must arrive in timestamp order from a single goroutine;
// concurrent sessions each need their own Session.
type Session struct {
	id     string
	acc    *endpoint.Accumulator
	ep     *endpoint.Endpointer
	cb     Callbacks
	logger *slog.Logger
}

// NewSession creates a session. A nil strategy gets a default linguistic
// strategy; a nil logger gets slog.Default().
func NewSession(cfg endpoint.Config, strategy endpoint.Strategy, cb Callbacks, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	return &Session{
		id:     id,
		acc:    endpoint.NewAccumulator(cfg.Accumulator),
		ep:     endpoint.NewEndpointer(cfg.Endpointer, strategy, logger.With("session_id", id)),
		cb:     cb,
		logger: logger.With("session_id", id),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// ProcessSegment accumulates one segment and evaluates the buffered
// utterance with the segment's trailing silence. A turn that times out or
// endpoints is finalized, handed to the callbacks, and the per-turn state
// reset.
func (s *Session) ProcessSegment(seg endpoint.SpeechSegment) endpoint.EndpointingResult {
	q := s.acc.AddSegment(seg)

	if q.Status == endpoint.StatusTimeout {
		return s.finalizeTimeout()
	}
	if q.SegmentCount() == 0 {
		// Rejected segment on an empty buffer: nothing to evaluate.
		s.logger.Debug("segment rejected with empty buffer", "confidence", seg.Confidence)
		return endpoint.EndpointingResult{
			Decision:     endpoint.DecisionContinue,
			Completeness: endpoint.CompletenessIncomplete,
			Reasoning:    []string{"no accepted speech buffered"},
			Timestamp:    time.Now(),
		}
	}
	return s.evaluate(q, seg.SilenceAfter)
}

// UpdateSilence re-evaluates the buffered utterance against a new trailing
// silence measurement, without adding speech. Returns nil when nothing is
// buffered. This is the caller-driven silence tick: the session keeps no
// internal clock.
func (s *Session) UpdateSilence(silence time.Duration) *endpoint.EndpointingResult {
	q := s.acc.GetCurrentQuery()
	if q == nil {
		return nil
	}
	if q.Status == endpoint.StatusTimeout {
		res := s.finalizeTimeout()
		return &res
	}
	res := s.evaluate(*q, silence)
	return &res
}

// Flush force-completes the open turn regardless of decision state, handing
// the READY query to OnEndpoint. Returns nil when nothing is buffered.
func (s *Session) Flush() *endpoint.AccumulatedQuery {
	final := s.acc.ForceCompletion()
	if final == nil {
		return nil
	}
	s.ep.RecordTurn(final.Text)
	s.logger.Info("turn flushed", "status", final.Status.String(), "words", final.WordCount())
	if final.Status == endpoint.StatusTimeout {
		if s.cb.OnTimeout != nil {
			s.cb.OnTimeout(*final)
		}
	} else if s.cb.OnEndpoint != nil {
		s.cb.OnEndpoint(*final, endpoint.EndpointingResult{
			Decision:     endpoint.DecisionEndpoint,
			Completeness: endpoint.CompletenessComplete,
			Confidence:   final.Confidence,
			Reasoning:    []string{"caller-forced completion"},
			Timestamp:    time.Now(),
		})
	}
	return final
}

// Abandon discards the open turn without handing anything downstream.
// The rolling context window survives.
func (s *Session) Abandon() {
	s.acc.Reset()
	s.logger.Info("turn abandoned")
}

// ResetContext clears the endpointer's cross-turn state and the rolling
// context window.
func (s *Session) ResetContext() {
	s.ep.ResetContext()
	s.acc.ClearContext()
}

// RollingContext returns the recent accepted segments retained across turns.
func (s *Session) RollingContext() []endpoint.SpeechSegment {
	return s.acc.RollingContext()
}

// History returns the completed-turn texts, oldest first.
func (s *Session) History() []string {
	return s.ep.TurnHistory()
}

// evaluate runs endpointing on the buffered query and finalizes on ENDPOINT.
func (s *Session) evaluate(q endpoint.AccumulatedQuery, silence time.Duration) endpoint.EndpointingResult {
	res := s.ep.AnalyzeUtterance(q.Text, silence, q.TotalDuration, &q)
	if s.cb.OnDecision != nil {
		s.cb.OnDecision(res)
	}

	if res.Decision == endpoint.DecisionEndpoint {
		final := s.acc.ForceCompletion()
		if final != nil {
			s.logger.Info("turn endpointed",
				"completeness", res.Completeness.String(),
				"confidence", res.Confidence,
				"words", final.WordCount(),
			)
			if s.cb.OnEndpoint != nil {
				s.cb.OnEndpoint(*final, res)
			}
		}
	}
	return res
}

// finalizeTimeout hands the over-long turn downstream as TIMEOUT and resets.
func (s *Session) finalizeTimeout() endpoint.EndpointingResult {
	final := s.acc.ForceCompletion()
	res := endpoint.EndpointingResult{
		Decision:     endpoint.DecisionEndpoint,
		Completeness: endpoint.CompletenessAmbiguous,
		Confidence:   0.5,
		Reasoning:    []string{"buffer duration limit exceeded"},
		Timestamp:    time.Now(),
	}
	if final != nil {
		s.ep.RecordTurn(final.Text)
		s.logger.Warn("turn timed out", "duration", final.TotalDuration, "words", final.WordCount())
		if s.cb.OnTimeout != nil {
			s.cb.OnTimeout(*final)
		}
	}
	if s.cb.OnDecision != nil {
		s.cb.OnDecision(res)
	}
	return res
}
