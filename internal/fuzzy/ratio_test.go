package fuzzy_test

import (
	"testing"

	"github.com/freifahren/sichtungskern/internal/fuzzy"
	"github.com/stretchr/testify/require"
)

func TestRatio_Identical(t *testing.T) {
	require.Equal(t, 100, fuzzy.Ratio("mehringdamm", "mehringdamm"))
}

func TestRatio_CloseMisspelling(t *testing.T) {
	// Edit distance 3 over 11 runes: (1 - 3/11) * 100 rounds to 73.
	score := fuzzy.Ratio("merhingdam", "mehringdamm")
	require.Equal(t, 73, score)
}

func TestTokenSortRatio_IgnoresWordOrder(t *testing.T) {
	require.Equal(t, 100, fuzzy.TokenSortRatio("zoologischer garten", "garten zoologischer"))
}

func TestTokenSetRatio_DisjointTokensScoreBelowPerfect(t *testing.T) {
	score := fuzzy.TokenSetRatio("jetzt zoo in der bahn", "zoologischer garten")
	require.Less(t, score, 100)
}
