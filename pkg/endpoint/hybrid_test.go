package endpoint

import (
	"strings"
	"testing"
	"time"
)

// stubStrategy returns a canned result for delegation tests.
type stubStrategy struct {
	name   string
	result EndpointingResult
}

func (s *stubStrategy) Analyze(UtteranceFeatures) EndpointingResult { return s.result }
func (s *stubStrategy) Name() string                                { return s.name }

func TestHybridStrategy_DelegatesToLinguistic(t *testing.T) {
	stub := &stubStrategy{
		name: "linguistic",
		result: EndpointingResult{
			Decision:     DecisionWait,
			Completeness: CompletenessAmbiguous,
			Confidence:   0.6,
			Reasoning:    []string{"ambiguous, waiting for more silence"},
		},
	}
	h := NewHybridStrategy(stub)

	res := h.Analyze(UtteranceFeatures{})
	if res.Decision != DecisionWait || res.Completeness != CompletenessAmbiguous {
		t.Fatalf("result not delegated: %v/%v", res.Decision, res.Completeness)
	}
	if res.Confidence != 0.6 {
		t.Fatalf("Confidence = %v, want 0.6 at weight 1.0", res.Confidence)
	}
}

func TestHybridStrategy_PrefixesReasoning(t *testing.T) {
	h := NewHybridStrategy(NewLinguisticStrategy(DefaultStrategyConfig()))

	var fx FeatureExtractor
	res := h.Analyze(fx.Extract("show me restaurants", 300*time.Millisecond, time.Second, TurnContext{}))
	if len(res.Reasoning) == 0 {
		t.Fatal("Reasoning is empty")
	}
	for _, r := range res.Reasoning {
		if !strings.HasPrefix(r, "linguistic: ") {
			t.Fatalf("reasoning %q missing strategy prefix", r)
		}
	}
}

func TestHybridStrategy_DefaultsNilLinguistic(t *testing.T) {
	h := NewHybridStrategy(nil)
	if h.Name() != "hybrid" {
		t.Fatalf("Name = %q", h.Name())
	}

	var fx FeatureExtractor
	res := h.Analyze(fx.Extract("what are the best coffee shops in berkeley", time.Second, 2*time.Second, TurnContext{}))
	if res.Decision != DecisionEndpoint || res.Completeness != CompletenessComplete {
		t.Fatalf("default-constructed delegate gave %v/%v", res.Decision, res.Completeness)
	}
}

func TestHybridStrategy_MatchesLinguisticDecisions(t *testing.T) {
	ling := NewLinguisticStrategy(DefaultStrategyConfig())
	h := NewHybridStrategy(NewLinguisticStrategy(DefaultStrategyConfig()))

	var fx FeatureExtractor
	texts := []string{
		"show me restaurants in",
		"show me restaurants",
		"what are the best coffee shops in berkeley",
	}
	for _, text := range texts {
		f := fx.Extract(text, 700*time.Millisecond, 2*time.Second, TurnContext{})
		lres := ling.Analyze(f)
		hres := h.Analyze(f)
		if lres.Decision != hres.Decision || lres.Completeness != hres.Completeness {
			t.Errorf("%q: hybrid %v/%v diverges from linguistic %v/%v",
				text, hres.Decision, hres.Completeness, lres.Decision, lres.Completeness)
		}
	}
}
