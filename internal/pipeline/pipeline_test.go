package pipeline

import (
	"context"
	"sync"

	"github.com/freifahren/sichtungskern/internal/catalog"
	"github.com/freifahren/sichtungskern/internal/errs"
	"github.com/freifahren/sichtungskern/internal/ner"
)

// scriptedTagger is a local test double for ner.Tagger, mirroring the one in
// internal/extractor's own tests — each package's tests script the spans a
// scenario needs rather than depending on a real trained tagger.
type scriptedTagger struct {
	spans []ner.Span
}

func (s scriptedTagger) Tag(_ context.Context, _ string) ([]ner.Span, error) {
	return s.spans, nil
}

func spanned(texts ...string) scriptedTagger {
	spans := make([]ner.Span, len(texts))
	for i, t := range texts {
		spans[i] = ner.Span{Text: t}
	}
	return scriptedTagger{spans: spans}
}

// fakeCatalogClient resolves any name present in byName, otherwise reports
// not-found; if forceErr is set every call transport-fails instead.
type fakeCatalogClient struct {
	byName   map[string]string
	forceErr error

	mu        sync.Mutex
	submitted []catalog.Report
}

func (f *fakeCatalogClient) ResolveName(_ context.Context, name string) errs.ResolveResult {
	if f.forceErr != nil {
		return errs.FailedTransport(f.forceErr)
	}
	if id, ok := f.byName[name]; ok {
		return errs.ResolvedID(id)
	}
	return errs.NoneFound()
}

func (f *fakeCatalogClient) SubmitReport(_ context.Context, report catalog.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, report)
	return nil
}

func (f *fakeCatalogClient) submittedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.submitted)
}
