package endpoint

import "strings"

// Normalizer cleans raw transcription text before accumulation. Steps run in
// a fixed order: lowercase and trim, filler removal, stutter removal,
// adjacent-duplicate collapse, whitespace collapse. Each step can be disabled
// through NormalizerConfig.
//
// Normalization may empty the text entirely; the Accumulator treats such
// segments as contentless.
type Normalizer struct {
	cfg NormalizerConfig
}

// NewNormalizer creates a normalizer with the given configuration.
func NewNormalizer(cfg NormalizerConfig) *Normalizer {
	return &Normalizer{cfg: cfg}
}

// Normalize returns the cleaned form of text. The input is never mutated.
func (n *Normalizer) Normalize(text string) string {
	if !n.cfg.Enabled {
		return strings.TrimSpace(text)
	}

	tokens := strings.Fields(strings.ToLower(strings.TrimSpace(text)))

	if n.cfg.RemoveFillers {
		tokens = removeFillers(tokens)
	}
	if n.cfg.Deduplicate {
		tokens = removeStutters(tokens)
		tokens = collapseDuplicates(tokens)
	}

	return strings.Join(tokens, " ")
}

// removeFillers drops filler tokens and multi-token filler phrases.
// Phrases are matched before single tokens so "you know" never survives as
// a stray "you".
func removeFillers(tokens []string) []string {
	out := tokens[:0:0]
	for i := 0; i < len(tokens); {
		if n := matchFillerPhrase(tokens, i); n > 0 {
			i += n
			continue
		}
		if fillerWords.contains(tokens[i]) {
			i++
			continue
		}
		out = append(out, tokens[i])
		i++
	}
	return out
}

// matchFillerPhrase returns the length of the filler phrase starting at i,
// or 0 when none matches.
func matchFillerPhrase(tokens []string, i int) int {
	for _, phrase := range fillerPhrases {
		if i+len(phrase) > len(tokens) {
			continue
		}
		match := true
		for j, w := range phrase {
			if tokens[i+j] != w {
				match = false
				break
			}
		}
		if match {
			return len(phrase)
		}
	}
	return 0
}

// removeStutters scans left to right and drops an immediately repeated token
// when it belongs to the stutter-prone set, advancing two positions on a
// match and one otherwise.
func removeStutters(tokens []string) []string {
	out := tokens[:0:0]
	for i := 0; i < len(tokens); {
		if i+1 < len(tokens) && tokens[i] == tokens[i+1] && stutterProne.contains(tokens[i]) {
			out = append(out, tokens[i])
			i += 2
			continue
		}
		out = append(out, tokens[i])
		i++
	}
	return out
}

// collapseDuplicates removes any remaining adjacent case-insensitive
// duplicates left after stutter removal.
func collapseDuplicates(tokens []string) []string {
	out := tokens[:0:0]
	for i, tok := range tokens {
		if i > 0 && strings.EqualFold(tok, tokens[i-1]) {
			continue
		}
		out = append(out, tok)
	}
	return out
}
