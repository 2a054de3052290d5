package extractor

import (
	"regexp"
	"strings"
)

// directionKeywords is the closed set from §4.B.2 step 2.
var directionKeywords = map[string]bool{
	"nach": true, "richtung": true, "bis": true, "zu": true,
	"to": true, "towards": true, "direction": true, "ri": true, "richtig": true,
}

var standaloneSUWord = regexp.MustCompile(`(?i)\b[su]\b`)

// directionNormalize implements §4.B.2 step 1: lowercase, "." and "," to
// space, drop standalone "s"/"u" tokens (word-boundary regex).
func directionNormalize(text string) string {
	replacer := strings.NewReplacer(".", " ", ",", " ")
	normalized := replacer.Replace(strings.ToLower(text))
	normalized = standaloneSUWord.ReplaceAllString(normalized, " ")
	return normalized
}

// DirectionResult is the outcome of §4.B.2: the resolved direction station
// id (if any) and the residual text with the keyword and resolved word
// removed, ready for station detection to re-use without double-consuming
// the same word.
type DirectionResult struct {
	Direction *string
	Residual  string
}

// DetectDirection implements §4.B.2 in full. resolver is station detection's
// word-against-pool resolution (already constrained to the known line, if
// any), reused here so a word that resolves as a direction is scored exactly
// the way it would be scored as a station.
func DetectDirection(text string, resolver func(word string) (string, bool)) DirectionResult {
	normalized := directionNormalize(text)
	tokens := strings.Fields(normalized)

	keywordIdx := -1
	for i, tok := range tokens {
		if directionKeywords[tok] {
			keywordIdx = i
			break
		}
	}

	if keywordIdx == -1 {
		return DirectionResult{Direction: nil, Residual: text}
	}

	// Step 3: words following the keyword, in order.
	for i := keywordIdx + 1; i < len(tokens); i++ {
		if id, ok := resolver(tokens[i]); ok {
			return DirectionResult{Direction: strPtr(id), Residual: removeTokens(text, []string{tokens[keywordIdx], tokens[i]})}
		}
	}

	// Step 4: the single word before the keyword.
	if keywordIdx > 0 {
		if id, ok := resolver(tokens[keywordIdx-1]); ok {
			return DirectionResult{Direction: strPtr(id), Residual: removeTokens(text, []string{tokens[keywordIdx], tokens[keywordIdx-1]})}
		}
	}

	return DirectionResult{Direction: nil, Residual: text}
}

// removeTokens strips every whole-word occurrence of each given token
// (case-insensitively) from text, used to build the residual text handed to
// station detection so the consumed keyword/word isn't matched twice. A
// token is bounded by the text's ends or by any rune that is not a letter,
// digit or underscore, so tokens with trailing punctuation ("steglitz!")
// and non-ASCII letters are removed too.
func removeTokens(text string, tokens []string) string {
	result := text
	for _, tok := range tokens {
		re := regexp.MustCompile(`(?i)(^|[^\p{L}\p{N}_])` + regexp.QuoteMeta(tok) + `($|[^\p{L}\p{N}_])`)
		result = re.ReplaceAllString(result, " ")
	}
	return strings.Join(strings.Fields(result), " ")
}
