package endpoint

import (
	"strings"
	"testing"
)

func TestNormalizer_Normalize(t *testing.T) {
	n := NewNormalizer(DefaultNormalizerConfig())

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase and trim", "  Find Me A CAFE  ", "find me a cafe"},
		{"single fillers dropped", "um show me uh restaurants", "show me restaurants"},
		{"phrase fillers dropped", "you know i mean show me restaurants", "show me restaurants"},
		{"stutter reduction", "I I want want to go", "i want to go"},
		{"stutter on articles", "the the weather in the the city", "the weather in the city"},
		{"adjacent duplicates collapsed", "go go home home", "go home"},
		{"filler then stutter", "um I I need need coffee", "i need coffee"},
		{"pure filler empties", "um uh you know like basically", ""},
		{"empty input", "", ""},
		{"punctuation kept", "what time is it?", "what time is it?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Normalize(tt.in); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizer_NeverGrowsWordCount(t *testing.T) {
	n := NewNormalizer(DefaultNormalizerConfig())
	inputs := []string{
		"I I want want to go",
		"um so basically I I need need a a ride",
		"show show me me the the weather",
	}
	for _, in := range inputs {
		before := len(strings.Fields(in))
		after := len(strings.Fields(n.Normalize(in)))
		if after > before {
			t.Errorf("Normalize(%q) grew word count %d -> %d", in, before, after)
		}
	}
}

func TestNormalizer_Disabled(t *testing.T) {
	n := NewNormalizer(NormalizerConfig{Enabled: false})
	if got := n.Normalize("  Um Hello Hello  "); got != "Um Hello Hello" {
		t.Fatalf("disabled normalizer = %q, want trimmed original", got)
	}
}

func TestNormalizer_StepsIndividuallyDisabled(t *testing.T) {
	keepFillers := NewNormalizer(NormalizerConfig{Enabled: true, RemoveFillers: false, Deduplicate: true})
	if got := keepFillers.Normalize("um I I go"); got != "um i go" {
		t.Fatalf("fillers kept = %q, want %q", got, "um i go")
	}

	keepDups := NewNormalizer(NormalizerConfig{Enabled: true, RemoveFillers: true, Deduplicate: false})
	if got := keepDups.Normalize("um I I go"); got != "i i go" {
		t.Fatalf("dups kept = %q, want %q", got, "i i go")
	}
}
