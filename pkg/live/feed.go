package live

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/prosodylabs/turnpoint/pkg/endpoint"
)

// SegmentMessage is the wire form of one STT segment as producers emit it:
// timing in float seconds, matching common recognizer output. It converts to
// the library's duration-based SpeechSegment via Segment.
type SegmentMessage struct {
	Text         string  `json:"text"`
	Confidence   float64 `json:"confidence"`
	Start        float64 `json:"start"`
	End          float64 `json:"end"`
	SilenceAfter float64 `json:"silence_after"`
}

// Segment validates and converts the message into a SpeechSegment.
func (m SegmentMessage) Segment() (endpoint.SpeechSegment, error) {
	return endpoint.NewSpeechSegment(
		m.Text,
		m.Confidence,
		secondsToDuration(m.Start),
		secondsToDuration(m.End),
		secondsToDuration(m.SilenceAfter),
	)
}

// DecodeSegment parses one JSON segment message and converts it.
func DecodeSegment(data []byte) (endpoint.SpeechSegment, error) {
	var msg SegmentMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return endpoint.SpeechSegment{}, fmt.Errorf("decode segment: %w", err)
	}
	return msg.Segment()
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
