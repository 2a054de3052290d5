package extractor

import (
	"testing"

	"github.com/freifahren/sichtungskern/internal/testfixtures"
	"github.com/stretchr/testify/require"
)

func resolverFor(t *testing.T, lineID *string) func(string) (string, bool) {
	topo, err := testfixtures.Berlin()
	require.NoError(t, err)
	pool := buildPool(topo, lineID)
	return func(word string) (string, bool) {
		return resolveAgainstPool(word, pool, matchThreshold)
	}
}

func TestDetectDirection_FollowingWord(t *testing.T) {
	result := DetectDirection("U8 Hermannplatz Richtung Wittenau am Bahnsteig", resolverFor(t, strPtr("U8")))
	require.NotNil(t, result.Direction)
	require.Equal(t, "wittenau", *result.Direction)
}

func TestDetectDirection_PrecedingWordFallback(t *testing.T) {
	result := DetectDirection("Wittenau Richtung am Bahnsteig", resolverFor(t, strPtr("U8")))
	require.NotNil(t, result.Direction)
	require.Equal(t, "wittenau", *result.Direction)
}

func TestDetectDirection_NoKeywordIsNull(t *testing.T) {
	result := DetectDirection("Kontrolleure am Bahnhof", resolverFor(t, nil))
	require.Nil(t, result.Direction)
}

func TestDetectDirection_StandaloneSUTokenRemoved(t *testing.T) {
	// Without the removal, the word before the keyword would be "u" and
	// nothing would resolve.
	result := DetectDirection("U8 Wittenau u Richtung", resolverFor(t, strPtr("U8")))
	require.NotNil(t, result.Direction)
	require.Equal(t, "wittenau", *result.Direction)
}
