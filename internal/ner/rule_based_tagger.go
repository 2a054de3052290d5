package ner

import (
	"context"
	"strings"
	"unicode"
)

// RuleBasedTagger is a dependency-free fallback used in development and
// offline test environments where neither a model process nor an NER RPC
// endpoint is reachable. It is deliberately crude — it has no claim to
// match the accuracy of the trained sequence tagger §4.B.3 describes — and
// exists only so the rest of the pipeline can run end to end without that
// external dependency. A run starts at any word (letters and hyphens) and
// continues across a space only while the next word is capitalized, so
// "Schumacher-Platz" and "Zoologischer Garten" are single runs, and a
// capitalized word in front of them joins the run too ("Jetzt Zoologischer
// Garten"). A run is tagged if it starts with a capital letter or is at
// least four runes long, since real chat messages are often lower-cased
// entirely and the true tagger would still find names in them.
type RuleBasedTagger struct{}

func NewRuleBasedTagger() *RuleBasedTagger { return &RuleBasedTagger{} }

func (RuleBasedTagger) Tag(_ context.Context, text string) ([]Span, error) {
	var spans []Span
	runes := []rune(text)

	isWordRune := func(r rune) bool {
		return unicode.IsLetter(r) || r == '-'
	}

	i := 0
	for i < len(runes) {
		if !isWordRune(runes[i]) {
			i++
			continue
		}
		start := i
		for i < len(runes) && (isWordRune(runes[i]) || runes[i] == ' ') {
			if runes[i] == ' ' {
				// only keep consuming through a space if the next word is
				// also capitalized, to approximate multi-word proper nouns
				if i+1 >= len(runes) || !unicode.IsUpper(runes[i+1]) {
					break
				}
			}
			i++
		}
		for i > start && runes[i-1] == ' ' {
			i--
		}
		word := strings.TrimSpace(string(runes[start:i]))
		if word == "" {
			continue
		}
		firstRune := []rune(word)[0]
		if unicode.IsUpper(firstRune) || len([]rune(word)) >= 4 {
			spans = append(spans, Span{Text: word, Start: start, End: i})
		}
	}
	return spans, nil
}
