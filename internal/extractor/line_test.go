package extractor

import (
	"testing"

	"github.com/freifahren/sichtungskern/internal/errs"
	"github.com/freifahren/sichtungskern/internal/testfixtures"
	"github.com/stretchr/testify/require"
)

func TestDetectLine_PlainMention(t *testing.T) {
	topo, err := testfixtures.Berlin()
	require.NoError(t, err)

	result := DetectLine("Kontrolleure auf der U8 Richtung Wittenau", topo)
	require.Equal(t, errs.OneMatch, result.Kind)
	require.Equal(t, "U8", result.Value)
}

func TestDetectLine_FusedPrefix(t *testing.T) {
	topo, err := testfixtures.Berlin()
	require.NoError(t, err)

	result := DetectLine("2 Kontrolleure in der S 41", topo)
	require.Equal(t, errs.OneMatch, result.Kind)
	require.Equal(t, "S41", result.Value)
}

func TestDetectLine_DigitWithoutTramPrefixIsNotALine(t *testing.T) {
	topo, err := testfixtures.Berlin()
	require.NoError(t, err)

	result := DetectLine("2 Kontrolleure am Bahnsteig", topo)
	require.Equal(t, errs.NoMatch, result.Kind)
}

func TestDetectLine_NoMentionIsNull(t *testing.T) {
	topo, err := testfixtures.Berlin()
	require.NoError(t, err)

	result := DetectLine("Kontrolleure am Bahnhof", topo)
	require.Equal(t, errs.NoMatch, result.Kind)
}
