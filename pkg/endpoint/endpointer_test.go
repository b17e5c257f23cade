package endpoint

import (
	"fmt"
	"testing"
	"time"
)

func TestEndpointer_RecordsTurnOnEndpoint(t *testing.T) {
	ep := NewEndpointer(DefaultEndpointerConfig(), NewLinguisticStrategy(DefaultStrategyConfig()), nil)

	res := ep.AnalyzeUtterance("what are the best coffee shops in berkeley", time.Second, 2*time.Second, nil)
	if res.Decision != DecisionEndpoint {
		t.Fatalf("Decision = %v, want ENDPOINT", res.Decision)
	}
	if got := ep.TurnHistory(); len(got) != 1 || got[0] != "what are the best coffee shops in berkeley" {
		t.Fatalf("TurnHistory = %v", got)
	}
	if res.Features.IsFollowupQuery {
		t.Error("first turn flagged as follow-up")
	}

	res = ep.AnalyzeUtterance("show me restaurants", 100*time.Millisecond, time.Second, nil)
	if !res.Features.IsFollowupQuery {
		t.Error("second turn not flagged as follow-up")
	}
}

func TestEndpointer_TracksPreviousIncomplete(t *testing.T) {
	ep := NewEndpointer(DefaultEndpointerConfig(), NewLinguisticStrategy(DefaultStrategyConfig()), nil)

	ep.AnalyzeUtterance("show me restaurants in", 100*time.Millisecond, time.Second, nil)
	res := ep.AnalyzeUtterance("show me restaurants in berkeley", 100*time.Millisecond, time.Second, nil)
	if !res.Features.PreviousIncomplete {
		t.Error("PreviousIncomplete = false after an INCOMPLETE analysis")
	}

	ep.AnalyzeUtterance("what are the best coffee shops in berkeley", time.Second, 2*time.Second, nil)
	res = ep.AnalyzeUtterance("show me more", 100*time.Millisecond, time.Second, nil)
	if res.Features.PreviousIncomplete {
		t.Error("PreviousIncomplete = true after a COMPLETE analysis")
	}
}

func TestEndpointer_QueryConfidenceFlowsIntoFeatures(t *testing.T) {
	ep := NewEndpointer(DefaultEndpointerConfig(), NewLinguisticStrategy(DefaultStrategyConfig()), nil)

	q := AccumulatedQuery{Confidence: 0.73}
	res := ep.AnalyzeUtterance("show me restaurants", 100*time.Millisecond, time.Second, &q)
	if res.Features.Confidence != 0.73 {
		t.Fatalf("feature Confidence = %v, want 0.73", res.Features.Confidence)
	}
}

func TestEndpointer_HistoryBounded(t *testing.T) {
	cfg := EndpointerConfig{TurnHistorySize: 3}
	ep := NewEndpointer(cfg, NewLinguisticStrategy(DefaultStrategyConfig()), nil)

	for i := 0; i < 5; i++ {
		ep.RecordTurn(fmt.Sprintf("turn %d", i))
	}
	got := ep.TurnHistory()
	if len(got) != 3 {
		t.Fatalf("history length = %d, want 3", len(got))
	}
	if got[0] != "turn 2" || got[2] != "turn 4" {
		t.Fatalf("history = %v, want most recent three in order", got)
	}
}

func TestEndpointer_ResetContext(t *testing.T) {
	ep := NewEndpointer(DefaultEndpointerConfig(), NewLinguisticStrategy(DefaultStrategyConfig()), nil)

	ep.AnalyzeUtterance("what are the best coffee shops in berkeley", time.Second, 2*time.Second, nil)
	if ep.LastResult() == nil || len(ep.TurnHistory()) == 0 {
		t.Fatal("expected context before reset")
	}

	ep.ResetContext()
	if ep.LastResult() != nil {
		t.Error("LastResult not cleared")
	}
	if len(ep.TurnHistory()) != 0 {
		t.Error("TurnHistory not cleared")
	}
}

func TestEndpointer_DefaultsNilStrategy(t *testing.T) {
	ep := NewEndpointer(DefaultEndpointerConfig(), nil, nil)
	res := ep.AnalyzeUtterance("what are the best coffee shops in berkeley", time.Second, 2*time.Second, nil)
	if res.Decision != DecisionEndpoint {
		t.Fatalf("Decision = %v, want ENDPOINT from default strategy", res.Decision)
	}
}
