package endpoint

import (
	"log/slog"
	"time"
)

// Endpointer orchestrates feature extraction and strategy analysis for one
// session, keeping the minimal cross-turn context that feeds follow-up
// detection. It owns no goroutines and no locks; see the package doc for the
// concurrency contract.
type Endpointer struct {
	cfg       EndpointerConfig
	extractor FeatureExtractor
	strategy  Strategy
	logger    *slog.Logger

	lastResult *EndpointingResult
	history    []string
}

// NewEndpointer creates an endpointer using the given strategy. A nil
// strategy gets a default linguistic strategy; a nil logger gets
// slog.Default().
func NewEndpointer(cfg EndpointerConfig, strategy Strategy, logger *slog.Logger) *Endpointer {
	if strategy == nil {
		strategy = NewLinguisticStrategy(DefaultStrategyConfig())
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Endpointer{
		cfg:      cfg,
		strategy: strategy,
		logger:   logger,
	}
}

// AnalyzeUtterance evaluates the current utterance. The query is optional
// context: when present, its mean confidence flows into the features. On an
// ENDPOINT decision the utterance text joins the bounded turn history that
// feeds follow-up detection on later calls.
func (e *Endpointer) AnalyzeUtterance(text string, silence, utterance time.Duration, query *AccumulatedQuery) EndpointingResult {
	tc := TurnContext{
		CompletedTurns: len(e.history),
	}
	if e.lastResult != nil {
		tc.PreviousIncomplete = e.lastResult.Completeness == CompletenessIncomplete
	}
	if query != nil {
		tc.Confidence = query.Confidence
	}

	features := e.extractor.Extract(text, silence, utterance, tc)
	result := e.strategy.Analyze(features)
	e.lastResult = &result

	if result.Decision == DecisionEndpoint {
		e.RecordTurn(text)
	}

	e.logger.Debug("utterance analyzed",
		"strategy", e.strategy.Name(),
		"decision", result.Decision.String(),
		"completeness", result.Completeness.String(),
		"confidence", result.Confidence,
		"silence", silence,
		"words", features.WordCount,
	)
	return result
}

// RecordTurn appends a completed turn to the bounded history. The Endpointer
// calls it on ENDPOINT decisions; callers that finalize a turn some other way
// (buffer timeout, explicit flush) record it here themselves.
func (e *Endpointer) RecordTurn(text string) {
	e.history = append(e.history, text)
	if limit := e.cfg.TurnHistorySize; limit > 0 && len(e.history) > limit {
		e.history = e.history[len(e.history)-limit:]
	}
}

// LastResult returns the most recent analysis, or nil before the first call.
func (e *Endpointer) LastResult() *EndpointingResult {
	if e.lastResult == nil {
		return nil
	}
	res := *e.lastResult
	return &res
}

// TurnHistory returns a copy of the completed-turn texts, oldest first.
func (e *Endpointer) TurnHistory() []string {
	out := make([]string, len(e.history))
	copy(out, e.history)
	return out
}

// ResetContext clears the last result and turn history. There is no
// cross-process persistence to clear.
func (e *Endpointer) ResetContext() {
	e.lastResult = nil
	e.history = nil
}
