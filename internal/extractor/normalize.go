package extractor

import "strings"

// normalizeAndTokenize implements §4.B.1 step 1: lowercase a working copy,
// replace ",", ".", "-", "/" with spaces, tokenize on whitespace.
func normalizeAndTokenize(text string) []string {
	replacer := strings.NewReplacer(",", " ", ".", " ", "-", " ", "/", " ")
	normalized := replacer.Replace(strings.ToLower(text))
	return strings.Fields(normalized)
}

// fusePrefixes implements §4.B.1 step 2: merge a standalone "s" or "u"
// token with the token that follows it ("s" + "41" -> "s41"), preserving
// the case of the second token in the merged form (comparisons downstream
// are case-insensitive regardless).
func fusePrefixes(tokens []string) []string {
	fused := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if (strings.EqualFold(tok, "s") || strings.EqualFold(tok, "u")) && i+1 < len(tokens) {
			fused = append(fused, strings.ToLower(tok)+tokens[i+1])
			i++
			continue
		}
		fused = append(fused, tok)
	}
	return fused
}
