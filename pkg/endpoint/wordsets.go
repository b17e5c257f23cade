package endpoint

import "strings"

// Closed word sets used by the normalizer and feature extractor. Built once
// at package init, read-only afterwards, safe to share across sessions.

// fillerPhrases are multi-token fillers matched before single-token fillers.
var fillerPhrases = [][]string{
	{"you", "know"},
	{"i", "mean"},
	{"sort", "of"},
	{"kind", "of"},
}

// fillerWords are single-token fillers dropped during normalization.
var fillerWords = newWordSet(
	"um", "uh", "er", "ah", "like", "basically",
	"actually", "literally", "well", "so",
)

// stutterProne are tokens whose immediate repetition is presumed a
// recognition or speaking artifact rather than intentional repetition.
var stutterProne = newWordSet(
	"i", "the", "a", "an", "to", "and", "or", "but",
	"can", "will", "would", "could", "should",
	"want", "need", "have", "has",
)

// incompleteOpeners start requests that are usually followed by more content.
// Longer openers must precede their prefixes so the longest match wins.
var incompleteOpeners = []string{
	"can you", "could you", "will you", "would you",
	"show me", "tell me", "find me", "give me",
	"i want", "i need", "i'd like",
	"what about", "how about",
	"and then", "and also", "and maybe",
}

// conjunctionEndings are trailing tokens that signal an unfinished clause.
var conjunctionEndings = newWordSet("and", "or", "but", "so", "because")

// prepositionEndings are trailing tokens that signal a dangling phrase.
var prepositionEndings = newWordSet("in", "on", "at", "to", "for", "from", "with", "about")

// predicateVerbs is the verb inventory used for complete-predicate detection.
var predicateVerbs = newWordSet(
	"is", "are", "was", "were", "be",
	"show", "tell", "find", "give", "get", "go", "make", "do",
	"want", "need", "have", "has", "like",
	"play", "open", "close", "turn", "set", "start", "stop",
	"search", "call", "send", "book", "order", "check", "add", "remove",
)

// questionWords mark interrogative utterances.
var questionWords = newWordSet("who", "what", "where", "when", "why", "how", "which")

// sentenceTerminators end a complete written sentence.
const sentenceTerminators = ".!?"

type wordSet map[string]struct{}

func newWordSet(words ...string) wordSet {
	s := make(wordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func (s wordSet) contains(w string) bool {
	_, ok := s[w]
	return ok
}

// hasOpener reports whether text starts with one of the incomplete openers,
// respecting token boundaries.
func hasOpener(text string) bool {
	for _, opener := range incompleteOpeners {
		if text == opener || strings.HasPrefix(text, opener+" ") {
			return true
		}
	}
	return false
}
