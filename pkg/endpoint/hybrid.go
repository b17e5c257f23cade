package endpoint

import "fmt"

// HybridStrategy combines signal sources into one decision. Today the only
// source is the linguistic strategy at full weight; prosody or other signal
// sources slot in here as additional weighted inputs without touching the
// Endpointer.
type HybridStrategy struct {
	linguistic Strategy

	// linguisticWeight scales the linguistic contribution to the combined
	// confidence. Fixed at 1.0 until a second signal source exists.
	linguisticWeight float64
}

// NewHybridStrategy creates a hybrid strategy delegating to the given
// linguistic strategy. A nil strategy gets a default-constructed one.
func NewHybridStrategy(linguistic Strategy) *HybridStrategy {
	if linguistic == nil {
		linguistic = NewLinguisticStrategy(DefaultStrategyConfig())
	}
	return &HybridStrategy{
		linguistic:       linguistic,
		linguisticWeight: 1.0,
	}
}

// Name implements Strategy.
func (s *HybridStrategy) Name() string { return "hybrid" }

// Analyze implements Strategy. The linguistic result carries through at full
// weight; reasoning is prefixed with the contributing strategy name.
func (s *HybridStrategy) Analyze(f UtteranceFeatures) EndpointingResult {
	res := s.linguistic.Analyze(f)
	res.Confidence = clamp01(res.Confidence * s.linguisticWeight)

	prefixed := make([]string, len(res.Reasoning))
	for i, r := range res.Reasoning {
		prefixed[i] = fmt.Sprintf("%s: %s", s.linguistic.Name(), r)
	}
	res.Reasoning = prefixed
	return res
}
