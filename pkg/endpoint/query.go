package endpoint

import (
	"strings"
	"time"
)

// QueryStatus describes the lifecycle state of an AccumulatedQuery.
type QueryStatus int

const (
	// StatusAccumulating means the turn is still open and buffering.
	StatusAccumulating QueryStatus = iota
	// StatusReady means the user explicitly finished; hand the text downstream.
	StatusReady
	// StatusTimeout means the buffer span exceeded the limit; process what we
	// have, possible abandonment.
	StatusTimeout
	// StatusError is reserved for downstream consumers.
	StatusError
)

// String returns a human-readable status name.
func (s QueryStatus) String() string {
	switch s {
	case StatusAccumulating:
		return "ACCUMULATING"
	case StatusReady:
		return "READY"
	case StatusTimeout:
		return "TIMEOUT"
	case StatusError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// AccumulatedQuery is an assembled candidate query built from accepted
// segments. Each Accumulator call returns a fresh snapshot; the Accumulator
// owns the only mutable segment list.
type AccumulatedQuery struct {
	// Text is the space-joined text of all accepted segments, arrival order.
	Text string `json:"text"`

	// Segments are the accepted segments in arrival order.
	Segments []SpeechSegment `json:"segments"`

	// TotalDuration is last segment end minus first segment start.
	TotalDuration time.Duration `json:"total_duration"`

	// Confidence is the arithmetic mean over accepted segments (0 if none).
	Confidence float64 `json:"confidence"`

	// Status is the lifecycle state the downstream consumer must branch on.
	Status QueryStatus `json:"status"`

	// CreatedAt is when the first segment of this turn was accepted.
	CreatedAt time.Time `json:"created_at"`

	// Metadata carries auxiliary identifiers such as query_id.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// WordCount returns the whitespace-token count of the combined text.
func (q AccumulatedQuery) WordCount() int {
	return len(strings.Fields(q.Text))
}

// SegmentCount returns the number of accepted segments.
func (q AccumulatedQuery) SegmentCount() int {
	return len(q.Segments)
}
