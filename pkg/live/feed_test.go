package live

import (
	"testing"
	"time"
)

func TestDecodeSegment(t *testing.T) {
	data := []byte(`{"text":"show me restaurants","confidence":0.92,"start":1.5,"end":3.0,"silence_after":0.4}`)

	seg, err := DecodeSegment(data)
	if err != nil {
		t.Fatalf("DecodeSegment error: %v", err)
	}
	if seg.Text != "show me restaurants" {
		t.Errorf("Text = %q", seg.Text)
	}
	if seg.Confidence != 0.92 {
		t.Errorf("Confidence = %v", seg.Confidence)
	}
	if seg.Start != 1500*time.Millisecond || seg.End != 3*time.Second {
		t.Errorf("timing = %v..%v", seg.Start, seg.End)
	}
	if seg.SilenceAfter != 400*time.Millisecond {
		t.Errorf("SilenceAfter = %v", seg.SilenceAfter)
	}
	if seg.Duration() != 1500*time.Millisecond {
		t.Errorf("Duration = %v", seg.Duration())
	}
}

func TestDecodeSegment_MalformedJSON(t *testing.T) {
	if _, err := DecodeSegment([]byte(`{"text": unquoted}`)); err == nil {
		t.Fatal("DecodeSegment accepted malformed JSON")
	}
}

func TestDecodeSegment_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"confidence above 1", `{"text":"hi","confidence":1.2,"start":0,"end":1,"silence_after":0}`},
		{"end before start", `{"text":"hi","confidence":0.9,"start":2,"end":1,"silence_after":0}`},
		{"negative start", `{"text":"hi","confidence":0.9,"start":-1,"end":1,"silence_after":0}`},
		{"negative silence", `{"text":"hi","confidence":0.9,"start":0,"end":1,"silence_after":-0.5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeSegment([]byte(tt.data)); err == nil {
				t.Fatal("DecodeSegment accepted invalid segment")
			}
		})
	}
}
