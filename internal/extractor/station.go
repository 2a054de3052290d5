package extractor

import (
	"context"

	"github.com/freifahren/sichtungskern/internal/fuzzy"
	"github.com/freifahren/sichtungskern/internal/ner"
	"github.com/freifahren/sichtungskern/internal/topology"
)

// StationResult is the outcome of §4.B.3: the resolved station (if any)
// and, per the secret-direction rule, a second resolved station mined from
// the NER's second span.
type StationResult struct {
	Station        *string // canonical station id
	SecretDirection *string // canonical station id, from the 2nd NER span
}

// resolveAgainstPool scores word against every name in pool with a
// token-based fuzzy ratio and returns the canonical station id of the
// highest-scoring candidate, if its score clears threshold (§4.B.3 step 3).
func resolveAgainstPool(word string, pool candidatePool, threshold float64) (string, bool) {
	bestScore := -1
	bestID := ""
	for name, id := range pool {
		score := fuzzy.TokenSetRatio(word, name)
		if score > bestScore {
			bestScore = score
			bestID = id
		}
	}
	if bestScore < 0 || float64(bestScore) < threshold {
		return "", false
	}
	return bestID, true
}

// matchThreshold is the "score ≥ 75" cutoff from §4.B.3 step 3.
const matchThreshold = 75

// ResolveWord scores a single word against the candidate pool for lineID
// (or every station, if lineID is nil) exactly as station detection would.
// Exported for the Verifier's V3 rule, which needs the same resolution
// logic outside of a full NER pass.
func ResolveWord(topo *topology.Topology, lineID *string, word string) (string, bool) {
	pool := buildPool(topo, lineID)
	return resolveAgainstPool(word, pool, matchThreshold)
}

// DetectStation implements §4.B.3. lineID constrains the candidate pool to
// that line's stations when known (the constraint the Verifier and
// direction-detection callers both rely on).
func DetectStation(ctx context.Context, text string, topo *topology.Topology, tagger ner.Tagger, lineID *string) (StationResult, error) {
	pool := buildPool(topo, lineID)

	spans, err := tagger.Tag(ctx, text)
	if err != nil {
		return StationResult{}, err
	}

	var result StationResult
	resolvedFirst := false

	for _, span := range spans {
		id, ok := resolveAgainstPool(span.Text, pool, matchThreshold)
		if !ok {
			continue
		}
		if !resolvedFirst {
			result.Station = strPtr(id)
			resolvedFirst = true
			break
		}
	}

	// §4.B.3 step 4, the secret-direction rule: unconditionally re-score
	// the SECOND NER span (not "whichever span comes after the one that
	// resolved") — preserved verbatim per spec.md §9's open question, which
	// notes the source never checks this span is topologically downstream.
	// candidate.go only keeps this value when direction detection itself
	// found nothing, per step 4's "if direction is still null" guard.
	if resolvedFirst && len(spans) >= 2 {
		if secondID, ok := resolveAgainstPool(spans[1].Text, pool, matchThreshold); ok {
			result.SecretDirection = strPtr(secondID)
		}
	}

	return result, nil
}

func strPtr(s string) *string { return &s }
