package endpoint

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Accumulator buffers accepted speech segments into a candidate query.
//
// Segments below the confidence threshold or empty after normalization are
// policy rejections, not errors: the accumulator returns its current state
// unchanged. The buffer timeout is detected lazily on AddSegment and
// ForceCompletion; there is no clock goroutine.
//
// The rolling context window survives Reset and is only dropped by
// ClearContext. One accumulator serves one session; see the package doc for
// the concurrency contract.
type Accumulator struct {
	cfg        AccumulatorConfig
	normalizer *Normalizer

	queryID   string
	segments  []SpeechSegment
	createdAt time.Time

	rolling *segmentRing
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator(cfg AccumulatorConfig) *Accumulator {
	return &Accumulator{
		cfg:        cfg,
		normalizer: NewNormalizer(cfg.Normalizer),
		rolling:    newSegmentRing(cfg.RollingBufferSize),
	}
}

// AddSegment filters, normalizes, and buffers one segment, returning the
// resulting query snapshot. Rejected segments leave the state untouched.
func (a *Accumulator) AddSegment(seg SpeechSegment) AccumulatedQuery {
	if seg.Confidence < a.cfg.MinConfidence {
		return a.snapshot()
	}
	normalized := a.normalizer.Normalize(seg.Text)
	if normalized == "" {
		return a.snapshot()
	}

	if len(a.segments) == 0 {
		a.queryID = uuid.NewString()
		a.createdAt = time.Now()
	}
	accepted := seg.WithText(normalized)
	a.segments = append(a.segments, accepted)
	a.rolling.push(accepted)

	return a.snapshot()
}

// GetCurrentQuery returns a read-only snapshot of the open turn, or nil when
// nothing is buffered. No side effects.
func (a *Accumulator) GetCurrentQuery() *AccumulatedQuery {
	if len(a.segments) == 0 {
		return nil
	}
	q := a.snapshot()
	return &q
}

// ForceCompletion finalizes the open turn and resets per-turn state.
// Returns nil when nothing is buffered. The emitted status is READY unless
// the buffered span already exceeded the limit, in which case it is TIMEOUT.
func (a *Accumulator) ForceCompletion() *AccumulatedQuery {
	if len(a.segments) == 0 {
		return nil
	}
	q := a.snapshot()
	if q.Status != StatusTimeout {
		q.Status = StatusReady
	}
	a.Reset()
	return &q
}

// Reset discards the open turn. The rolling context window is preserved.
func (a *Accumulator) Reset() {
	a.queryID = ""
	a.segments = nil
	a.createdAt = time.Time{}
}

// ClearContext drops the rolling cross-turn context window.
func (a *Accumulator) ClearContext() {
	a.rolling.clear()
}

// RollingContext returns the recent accepted segments retained across turns,
// oldest first.
func (a *Accumulator) RollingContext() []SpeechSegment {
	return a.rolling.snapshot()
}

// snapshot builds a fresh AccumulatedQuery from the current turn state.
// Status reflects the lazily detected timeout.
func (a *Accumulator) snapshot() AccumulatedQuery {
	q := AccumulatedQuery{
		Status:    StatusAccumulating,
		CreatedAt: a.createdAt,
	}
	if len(a.segments) == 0 {
		return q
	}

	q.Segments = make([]SpeechSegment, len(a.segments))
	copy(q.Segments, a.segments)

	parts := make([]string, 0, len(a.segments))
	var confSum float64
	for _, s := range a.segments {
		if s.Text != "" {
			parts = append(parts, s.Text)
		}
		confSum += s.Confidence
	}
	q.Text = strings.Join(parts, " ")
	q.Confidence = confSum / float64(len(a.segments))
	q.TotalDuration = a.segments[len(a.segments)-1].End - a.segments[0].Start
	q.Metadata = map[string]string{"query_id": a.queryID}

	if q.TotalDuration > a.cfg.MaxBufferDuration() {
		q.Status = StatusTimeout
	}
	return q
}

// segmentRing is a fixed-capacity FIFO of recent accepted segments with O(1)
// eviction.
type segmentRing struct {
	buf  []SpeechSegment
	head int
	size int
}

func newSegmentRing(capacity int) *segmentRing {
	if capacity <= 0 {
		capacity = 1
	}
	return &segmentRing{buf: make([]SpeechSegment, capacity)}
}

// push appends a segment, evicting the oldest when full.
func (r *segmentRing) push(seg SpeechSegment) {
	if r.size < len(r.buf) {
		r.buf[(r.head+r.size)%len(r.buf)] = seg
		r.size++
		return
	}
	r.buf[r.head] = seg
	r.head = (r.head + 1) % len(r.buf)
}

// snapshot returns the buffered segments oldest first.
func (r *segmentRing) snapshot() []SpeechSegment {
	out := make([]SpeechSegment, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.buf[(r.head+i)%len(r.buf)]
	}
	return out
}

func (r *segmentRing) len() int { return r.size }

func (r *segmentRing) clear() {
	r.head = 0
	r.size = 0
}
