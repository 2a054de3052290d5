package ner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

// LLMTagger is the "process-in a shared library" NER variant from §9: it
// asks an LLM to tag STATION spans in a single completion call instead of
// invoking a dedicated sequence-tagger model. Grounded on the teacher's LLM
// wiring (internal/agent/agent.go's openai.New(...) call and
// internal/tools/llm_retry.go's retry wrapper) — the model is treated as a
// fixed, pre-trained black box per §9, never fine-tuned by this package.
type LLMTagger struct {
	llm llms.Model
}

// NewLLMTagger wraps an already-constructed langchaingo model. Retry
// behavior, if desired, is the caller's responsibility (wrap llm with the
// same pattern as the teacher's LLMRetryWrapper before passing it in).
func NewLLMTagger(llm llms.Model) *LLMTagger {
	return &LLMTagger{llm: llm}
}

const taggingPrompt = `You are a named-entity tagger. Given a short chat message, identify every substring that names or plausibly names a public transit station. Respond with strict JSON only: {"spans": [{"text": "...", "start": 0, "end": 5}, ...]}. start/end are rune offsets into the original message. Return an empty list if none found. Message:
%s`

func (t *LLMTagger) Tag(ctx context.Context, text string) ([]Span, error) {
	prompt := fmt.Sprintf(taggingPrompt, text)

	resp, err := t.llm.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	})
	if err != nil {
		return nil, fmt.Errorf("ner: llm tagging failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, nil
	}

	raw := strings.TrimSpace(resp.Choices[0].Content)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var parsed rpcTagResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("ner: parsing llm response: %w", err)
	}

	spans := make([]Span, 0, len(parsed.Spans))
	for _, s := range parsed.Spans {
		spans = append(spans, Span{Text: s.Text, Start: s.Start, End: s.End})
	}
	return spans, nil
}
