package extractor

import (
	"strings"

	"github.com/freifahren/sichtungskern/internal/errs"
	"github.com/freifahren/sichtungskern/internal/topology"
)

// isPureDigits reports whether s consists only of ASCII digits, i.e. a tram
// line id like "2" or "21" (§4.B.1 step 4's digit-line exception).
func isPureDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// DetectLine implements §4.B.1 in full: normalize, tokenize, fuse s/u
// prefixes, match fused tokens against known line ids (skipping pure-digit
// ids unless immediately preceded by the literal "tram"), and tie-break.
func DetectLine(text string, topo *topology.Topology) errs.MatchResult {
	tokens := fusePrefixes(normalizeAndTokenize(text))
	lineIDs := topo.LineIDsByDescendingLength()

	// matches[token] = list of line ids the token matched, preserving the
	// order tokens first appear so "exactly one token matched" is well
	// defined even with repeated tokens.
	type tokenMatch struct {
		token string
		lines []string
	}
	var order []string
	matches := make(map[string][]string)

	for i, tok := range tokens {
		lowerTok := strings.ToLower(tok)
		for _, lineID := range lineIDs {
			if !strings.EqualFold(tok, lineID) {
				continue
			}
			if isPureDigits(lineID) {
				if i == 0 || !strings.EqualFold(tokens[i-1], "tram") {
					continue
				}
			}
			if _, seen := matches[lowerTok]; !seen {
				order = append(order, lowerTok)
			}
			matches[lowerTok] = append(matches[lowerTok], lineID)
		}
	}

	var tokensWithMatches []tokenMatch
	for _, tok := range order {
		if len(matches[tok]) > 0 {
			tokensWithMatches = append(tokensWithMatches, tokenMatch{token: tok, lines: matches[tok]})
		}
	}

	if len(tokensWithMatches) == 0 {
		return errs.NoneMatched()
	}

	if len(tokensWithMatches) == 1 {
		return errs.OneMatched(longest(tokensWithMatches[0].lines))
	}

	// More than one distinct token matched something. Per §4.B.1 step 6,
	// resolve using the tokens that were themselves ambiguous (matched more
	// than one line); if none of the matched tokens were individually
	// ambiguous, there is no principled way to choose between the distinct
	// lines mentioned, so the result is null.
	var ambiguousLines []string
	for _, tm := range tokensWithMatches {
		if len(tm.lines) > 1 {
			ambiguousLines = append(ambiguousLines, tm.lines...)
		}
	}
	if len(ambiguousLines) == 0 {
		return errs.NoneMatched()
	}
	return errs.OneMatched(longest(ambiguousLines))
}

func longest(lines []string) string {
	best := lines[0]
	for _, l := range lines[1:] {
		if len(l) > len(best) {
			best = l
		}
	}
	return best
}
