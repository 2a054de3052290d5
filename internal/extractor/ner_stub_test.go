package extractor

import (
	"context"

	"github.com/freifahren/sichtungskern/internal/ner"
)

// scriptedTagger is a test double standing in for the real NER boundary.
// §4.B.3 treats the tagger as a fixed black box; exercising extraction
// logic against a scripted tagger (rather than a heuristic stand-in trying
// to reproduce a real model's exact spans) keeps these tests deterministic
// and focused on the extractor's own logic.
type scriptedTagger struct {
	spans []ner.Span
	err   error
}

func (s scriptedTagger) Tag(ctx context.Context, text string) ([]ner.Span, error) {
	return s.spans, s.err
}

func spanned(texts ...string) scriptedTagger {
	spans := make([]ner.Span, len(texts))
	for i, t := range texts {
		spans[i] = ner.Span{Text: t}
	}
	return scriptedTagger{spans: spans}
}
