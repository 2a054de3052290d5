package ner_test

import (
	"context"
	"testing"

	"github.com/freifahren/sichtungskern/internal/ner"
	"github.com/stretchr/testify/require"
)

func TestRuleBasedTagger_FindsCapitalizedMultiWordSpan(t *testing.T) {
	tagger := ner.NewRuleBasedTagger()
	spans, err := tagger.Tag(context.Background(), "Jetzt Zoologischer Garten in der Bahn")
	require.NoError(t, err)

	found := false
	for _, s := range spans {
		// The capitalized "Jetzt" in front joins the run.
		if s.Text == "Jetzt Zoologischer Garten" {
			found = true
		}
	}
	require.True(t, found)
}

func TestRuleBasedTagger_FindsLowercaseLongToken(t *testing.T) {
	tagger := ner.NewRuleBasedTagger()
	spans, err := tagger.Tag(context.Background(), "u6 merhingdam gesehen")
	require.NoError(t, err)

	found := false
	for _, s := range spans {
		if s.Text == "merhingdam" {
			found = true
		}
	}
	require.True(t, found)
}
