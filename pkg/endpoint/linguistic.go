package endpoint

import (
	"fmt"
	"strings"
	"time"
)

// Completeness score weights and thresholds. The score is a heuristic in
// [0,1]: below scoreIncomplete the utterance reads unfinished, above
// scoreComplete it reads done, in between it is ambiguous.
const (
	weightPredicate     = 0.4
	weightQuestionFull  = 0.3  // two or more tokens after the question word
	weightQuestionShort = 0.15 // exactly one token after the question word
	weightStatement     = 0.3  // statement of at least minUtteranceWords words
	weightLength        = 0.2  // five or more words, question or statement
	weightTerminator    = 0.2
	weightBadEnding     = 0.3

	scoreIncomplete = 0.5
	scoreComplete   = 0.8

	minUtteranceWords = 3
	lengthBonusWords  = 5
)

// LinguisticStrategy classifies completeness from linguistic features alone
// and gates the final decision on trailing silence. It is purely rule-based
// and deterministic.
type LinguisticStrategy struct {
	cfg StrategyConfig
}

// NewLinguisticStrategy creates a linguistic strategy.
func NewLinguisticStrategy(cfg StrategyConfig) *LinguisticStrategy {
	return &LinguisticStrategy{cfg: cfg}
}

// Name implements Strategy.
func (s *LinguisticStrategy) Name() string { return "linguistic" }

// Analyze implements Strategy. It classifies the utterance, then picks the
// decision from the silence gates. Reasoning lists every rule that fired.
func (s *LinguisticStrategy) Analyze(f UtteranceFeatures) EndpointingResult {
	var (
		reasons []string
		signals []float64
	)

	completeness, score := s.classify(f, &reasons, &signals)
	f.SyntacticCompleteness = score

	decision := s.decide(completeness, f.SilenceDuration, &reasons, &signals)

	return EndpointingResult{
		Decision:     decision,
		Confidence:   mean(signals),
		Completeness: completeness,
		Features:     f,
		Reasoning:    reasons,
		Timestamp:    time.Now(),
	}
}

// classify determines utterance completeness and the syntactic score.
func (s *LinguisticStrategy) classify(f UtteranceFeatures, reasons *[]string, signals *[]float64) (Completeness, float64) {
	if f.WordCount < minUtteranceWords {
		*reasons = append(*reasons, fmt.Sprintf("too few words (%d < %d)", f.WordCount, minUtteranceWords))
		*signals = append(*signals, 0.9)
		return CompletenessIncomplete, 0
	}

	if f.HasConjunctionEnding || f.HasPrepositionEnding {
		kind := "conjunction"
		if f.HasPrepositionEnding {
			kind = "preposition"
		}
		*reasons = append(*reasons, fmt.Sprintf("utterance ends with a %s (%q)", kind, lastToken(f.Text)))
		*signals = append(*signals, 0.9)
		return CompletenessIncomplete, 0
	}

	if f.HasIncompletePhrase && !f.HasCompletePredicate {
		*reasons = append(*reasons, "request opener without a complete predicate")
		*signals = append(*signals, 0.85)
		return CompletenessIncomplete, 0
	}

	score := s.score(f, reasons)
	*reasons = append(*reasons, fmt.Sprintf("syntactic completeness score %.2f", score))

	switch {
	case score < scoreIncomplete:
		*signals = append(*signals, 0.8)
		return CompletenessIncomplete, score
	case score > scoreComplete:
		*signals = append(*signals, 0.9)
		return CompletenessComplete, score
	default:
		*signals = append(*signals, 0.6)
		return CompletenessAmbiguous, score
	}
}

// score computes the syntactic completeness score in [0,1].
func (s *LinguisticStrategy) score(f UtteranceFeatures, reasons *[]string) float64 {
	var score float64

	if f.HasCompletePredicate {
		score += weightPredicate
		*reasons = append(*reasons, "complete predicate present")
	}

	if len(f.QuestionWords) > 0 {
		switch after := tokensAfterFirstQuestionWord(f.Text); {
		case after >= 2:
			score += weightQuestionFull
			*reasons = append(*reasons, fmt.Sprintf("question %q with developed body", f.QuestionWords[0]))
		case after == 1:
			score += weightQuestionShort
			*reasons = append(*reasons, fmt.Sprintf("question %q with minimal body", f.QuestionWords[0]))
		}
	} else if f.WordCount >= minUtteranceWords {
		score += weightStatement
		*reasons = append(*reasons, "statement of sufficient length")
	}

	if f.WordCount >= lengthBonusWords {
		score += weightLength
		*reasons = append(*reasons, "long utterance")
	}

	if f.HasSentenceTerminator {
		score += weightTerminator
		*reasons = append(*reasons, "sentence terminator present")
	}

	if f.HasConjunctionEnding || f.HasPrepositionEnding {
		score -= weightBadEnding
		*reasons = append(*reasons, "dangling ending")
	}

	return clamp01(score)
}

// decide applies the silence gates to the classification.
func (s *LinguisticStrategy) decide(c Completeness, silence time.Duration, reasons *[]string, signals *[]float64) Decision {
	switch c {
	case CompletenessIncomplete:
		// Safety fallback: even an unfinished-sounding utterance gets
		// endpointed after a long enough pause, or the user is stranded.
		fallback := 2 * s.cfg.MinSilenceComplete()
		if silence >= fallback {
			*reasons = append(*reasons, fmt.Sprintf("incomplete but silence %v >= %v, endpointing as safety fallback", silence, fallback))
			*signals = append(*signals, 0.6)
			return DecisionEndpoint
		}
		*reasons = append(*reasons, fmt.Sprintf("incomplete, silence %v < %v, continue buffering", silence, fallback))
		return DecisionContinue

	case CompletenessComplete:
		if silence >= s.cfg.MinSilenceAmbiguous() {
			*reasons = append(*reasons, fmt.Sprintf("complete with silence %v >= %v", silence, s.cfg.MinSilenceAmbiguous()))
			*signals = append(*signals, 0.9)
			return DecisionEndpoint
		}
		*reasons = append(*reasons, "complete but silence too short, waiting")
		return DecisionWait

	default: // CompletenessAmbiguous
		if silence >= s.cfg.MinSilenceAmbiguous() {
			*reasons = append(*reasons, fmt.Sprintf("ambiguous with silence %v >= %v", silence, s.cfg.MinSilenceAmbiguous()))
			*signals = append(*signals, 0.7)
			return DecisionEndpoint
		}
		*reasons = append(*reasons, "ambiguous, waiting for more silence")
		return DecisionWait
	}
}

// tokensAfterFirstQuestionWord counts the tokens following the first
// interrogative token.
func tokensAfterFirstQuestionWord(text string) int {
	tokens := strings.Fields(strings.ToLower(text))
	for i, tok := range tokens {
		if questionWords.contains(strings.TrimRight(tok, sentenceTerminators+",;:")) {
			return len(tokens) - i - 1
		}
	}
	return 0
}

func lastToken(text string) string {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[len(tokens)-1]
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
