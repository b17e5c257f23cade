package endpoint

import (
	"errors"
	"fmt"
	"time"
)

// Validation errors returned by NewSpeechSegment. Malformed input fails fast
// at construction and never enters a buffer.
var (
	ErrConfidenceRange = errors.New("confidence out of range [0,1]")
	ErrInvalidTiming   = errors.New("segment end before start")
	ErrNegativeStart   = errors.New("negative segment start")
	ErrNegativeSilence = errors.New("negative trailing silence")
)

// SpeechSegment is one recognized chunk of speech-to-text output.
// It is an immutable value: never mutated after construction, only
// copied with normalized text via WithText.
type SpeechSegment struct {
	// Text is the raw transcribed text for this chunk.
	Text string `json:"text"`

	// Confidence is the recognizer's score for this chunk, in [0,1].
	Confidence float64 `json:"confidence"`

	// Start and End are offsets from the beginning of the stream.
	Start time.Duration `json:"start"`
	End   time.Duration `json:"end"`

	// SilenceAfter is the trailing silence observed after this chunk.
	SilenceAfter time.Duration `json:"silence_after"`
}

// NewSpeechSegment validates and constructs a segment. Out-of-range
// confidence, end before start, or negative timing is rejected here rather
// than silently clamped.
func NewSpeechSegment(text string, confidence float64, start, end, silenceAfter time.Duration) (SpeechSegment, error) {
	if confidence < 0 || confidence > 1 {
		return SpeechSegment{}, fmt.Errorf("speech segment: %w: %v", ErrConfidenceRange, confidence)
	}
	if start < 0 {
		return SpeechSegment{}, fmt.Errorf("speech segment: %w: %v", ErrNegativeStart, start)
	}
	if end < start {
		return SpeechSegment{}, fmt.Errorf("speech segment: %w: start=%v end=%v", ErrInvalidTiming, start, end)
	}
	if silenceAfter < 0 {
		return SpeechSegment{}, fmt.Errorf("speech segment: %w: %v", ErrNegativeSilence, silenceAfter)
	}
	return SpeechSegment{
		Text:         text,
		Confidence:   confidence,
		Start:        start,
		End:          end,
		SilenceAfter: silenceAfter,
	}, nil
}

// Duration returns the speech span of this segment.
func (s SpeechSegment) Duration() time.Duration {
	return s.End - s.Start
}

// WithText returns a copy of the segment carrying replacement text.
// Timing and confidence are preserved.
func (s SpeechSegment) WithText(text string) SpeechSegment {
	s.Text = text
	return s
}
