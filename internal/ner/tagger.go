// Package ner wraps the named-entity recognizer described in spec.md
// §4.B.3 and §9: a fixed, pre-trained black-box sequence tagger returning
// station-like spans, never re-trained by this system. Two real
// implementations are provided behind the same interface, matching §9's
// design note: one in-process (an LLM asked to tag spans), one
// out-of-process (a small deadline-bound RPC call) — the core never
// assumes the model lives in the same process.
package ner

import "context"

// Span is one substring the tagger believes names a station, in text
// order, exactly as spec.md §4.B.3 describes: "zero or more substrings
// that look like station mentions".
type Span struct {
	Text  string
	Start int
	End   int
}

// Tagger is the NER boundary. Implementations must be safe for concurrent
// use by the worker pool (§5).
type Tagger interface {
	Tag(ctx context.Context, text string) ([]Span, error)
}
