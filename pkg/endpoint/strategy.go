package endpoint

import "time"

// Decision is the outcome of one endpointing evaluation. The integer order
// matters: for fixed text and duration, increasing silence never moves a
// decision backward in CONTINUE < WAIT < ENDPOINT order.
type Decision int

const (
	// DecisionContinue means keep buffering; the thought is unfinished.
	DecisionContinue Decision = iota
	// DecisionWait means hold: plausibly finished, silence not yet convincing.
	DecisionWait
	// DecisionEndpoint means finalize the turn and hand the query downstream.
	DecisionEndpoint
)

// String returns a human-readable decision name.
func (d Decision) String() string {
	switch d {
	case DecisionContinue:
		return "CONTINUE"
	case DecisionWait:
		return "WAIT"
	case DecisionEndpoint:
		return "ENDPOINT"
	default:
		return "UNKNOWN"
	}
}

// Completeness classifies how finished an utterance reads.
type Completeness int

const (
	// CompletenessIncomplete reads as an unfinished thought.
	CompletenessIncomplete Completeness = iota
	// CompletenessAmbiguous could go either way.
	CompletenessAmbiguous
	// CompletenessComplete reads as a finished request.
	CompletenessComplete
)

// String returns a human-readable completeness name.
func (c Completeness) String() string {
	switch c {
	case CompletenessIncomplete:
		return "INCOMPLETE"
	case CompletenessAmbiguous:
		return "AMBIGUOUS"
	case CompletenessComplete:
		return "COMPLETE"
	default:
		return "UNKNOWN"
	}
}

// EndpointingResult is the full outcome of one evaluation, including every
// rule that fired, so decisions stay auditable after the fact.
type EndpointingResult struct {
	Decision     Decision          `json:"decision"`
	Confidence   float64           `json:"confidence"`
	Completeness Completeness      `json:"completeness"`
	Features     UtteranceFeatures `json:"features"`
	Reasoning    []string          `json:"reasoning"`
	Timestamp    time.Time         `json:"timestamp"`
}

// Strategy classifies utterance completeness and chooses a decision.
// Implementations must be deterministic: identical features yield identical
// results. The Endpointer selects a strategy by injection and never branches
// on its concrete type.
type Strategy interface {
	// Analyze evaluates the features and returns the decision.
	Analyze(features UtteranceFeatures) EndpointingResult

	// Name identifies the strategy in reasoning output.
	Name() string
}
