package endpoint

import (
	"strings"
	"time"
)

// UtteranceFeatures are the linguistic and timing signals derived from the
// current utterance. They are recomputed on every call: silence and duration
// change between calls, so caching would serve stale decisions.
type UtteranceFeatures struct {
	// Text is the normalized utterance under evaluation.
	Text string `json:"text"`

	// WordCount is the whitespace-token count.
	WordCount int `json:"word_count"`

	// HasSentenceTerminator reports a trailing '.', '!' or '?'.
	HasSentenceTerminator bool `json:"has_sentence_terminator"`

	// HasConjunctionEnding reports a trailing coordinating conjunction.
	HasConjunctionEnding bool `json:"has_conjunction_ending"`

	// HasPrepositionEnding reports a trailing dangling preposition.
	HasPrepositionEnding bool `json:"has_preposition_ending"`

	// HasIncompletePhrase reports a request opener that usually precedes
	// more content ("show me", "can you", ...).
	HasIncompletePhrase bool `json:"has_incomplete_phrase"`

	// HasCompletePredicate reports a known verb with at least one token
	// after it in an utterance of three or more words.
	HasCompletePredicate bool `json:"has_complete_predicate"`

	// QuestionWords are the interrogative tokens in order of appearance.
	QuestionWords []string `json:"question_words,omitempty"`

	// SyntacticCompleteness is the strategy's completeness score in [0,1].
	// The extractor leaves it zero; the strategy fills it in.
	SyntacticCompleteness float64 `json:"syntactic_completeness"`

	// SilenceDuration is the trailing silence at evaluation time.
	SilenceDuration time.Duration `json:"silence_duration"`

	// UtteranceDuration is the speech span of the utterance so far.
	UtteranceDuration time.Duration `json:"utterance_duration"`

	// SpeechRate is words per second (0 when duration is unknown).
	SpeechRate float64 `json:"speech_rate"`

	// IsFollowupQuery reports that at least one turn already completed in
	// this session.
	IsFollowupQuery bool `json:"is_followup_query"`

	// PreviousIncomplete reports that the last recorded completeness was
	// INCOMPLETE.
	PreviousIncomplete bool `json:"previous_incomplete"`

	// Confidence is the mean recognition confidence of the utterance.
	Confidence float64 `json:"confidence"`
}

// TurnContext is the cross-turn state the Endpointer feeds into extraction.
type TurnContext struct {
	// CompletedTurns is the number of turns already handed downstream.
	CompletedTurns int

	// PreviousIncomplete reports the completeness of the last analysis.
	PreviousIncomplete bool

	// Confidence is the mean recognition confidence of the current query.
	Confidence float64
}

// FeatureExtractor derives UtteranceFeatures from text and timing metadata.
// It is stateless and safe to share.
type FeatureExtractor struct{}

// Extract computes the feature set for one evaluation of the utterance.
func (FeatureExtractor) Extract(text string, silence, utterance time.Duration, tc TurnContext) UtteranceFeatures {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)
	tokens := strings.Fields(lower)

	f := UtteranceFeatures{
		Text:               trimmed,
		WordCount:          len(tokens),
		SilenceDuration:    silence,
		UtteranceDuration:  utterance,
		IsFollowupQuery:    tc.CompletedTurns > 0,
		PreviousIncomplete: tc.PreviousIncomplete,
		Confidence:         tc.Confidence,
	}
	if len(tokens) == 0 {
		return f
	}

	f.HasSentenceTerminator = strings.ContainsRune(sentenceTerminators, rune(trimmed[len(trimmed)-1]))

	last := strings.TrimRight(tokens[len(tokens)-1], sentenceTerminators+",;:")
	f.HasConjunctionEnding = conjunctionEndings.contains(last)
	f.HasPrepositionEnding = prepositionEndings.contains(last)

	f.HasIncompletePhrase = hasOpener(lower)
	f.HasCompletePredicate = hasCompletePredicate(tokens)

	for _, tok := range tokens {
		w := strings.TrimRight(tok, sentenceTerminators+",;:")
		if questionWords.contains(w) {
			f.QuestionWords = append(f.QuestionWords, w)
		}
	}

	if sec := utterance.Seconds(); sec > 0 {
		f.SpeechRate = float64(len(tokens)) / sec
	}
	return f
}

// hasCompletePredicate reports whether the tokens contain a known verb with
// at least one token following its first occurrence, in an utterance of
// three or more words.
func hasCompletePredicate(tokens []string) bool {
	if len(tokens) < 3 {
		return false
	}
	for i, tok := range tokens {
		if predicateVerbs.contains(strings.TrimRight(tok, sentenceTerminators+",;:")) {
			return i < len(tokens)-1
		}
	}
	return false
}
