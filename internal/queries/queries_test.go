package queries_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"harvester/internal/queries"
)

func TestGenerateCombinesTemplates(t *testing.T) {
	got := queries.Generate([]string{"Kenya"}, []string{"airline"}, 100, nil)

	// 9 phrase templates plus 3 site: templates per country/keyword pair.
	require.Len(t, got, 12)
	require.Equal(t, `"airline" "Kenya" "contact" email`, got[0])
	require.Contains(t, got, `site:.ke "airline" email contact`)
	require.Contains(t, got, `site:.ke "airline" "contact us"`)
}

func TestGenerateRespectsMax(t *testing.T) {
	got := queries.Generate(
		[]string{"Kenya", "Ghana"},
		[]string{"airline", "air cargo"},
		5,
		nil,
	)
	require.Len(t, got, 5)
}

func TestGenerateUnknownCountryFallsBackToCom(t *testing.T) {
	got := queries.Generate([]string{"Atlantis"}, []string{"airline"}, 100, nil)

	found := false
	for _, q := range got {
		if strings.Contains(q, "site:.com") {
			found = true
		}
		require.NotContains(t, q, "site:.atlantis")
	}
	require.True(t, found)
}

func TestGenerateShufflesDeterministically(t *testing.T) {
	countries := []string{"Kenya", "Ghana", "Nigeria"}
	keywords := []string{"airline", "charter"}

	a := queries.Generate(countries, keywords, 50, rand.New(rand.NewSource(7)))
	b := queries.Generate(countries, keywords, 50, rand.New(rand.NewSource(7)))
	require.Equal(t, a, b)

	ordered := queries.Generate(countries, keywords, 50, nil)
	require.ElementsMatch(t, ordered, a)
}

func TestTLDFor(t *testing.T) {
	require.Equal(t, "za", queries.TLDFor("South Africa"))
	require.Equal(t, "ae", queries.TLDFor("United Arab Emirates"))
	require.Equal(t, "com", queries.TLDFor("Unknown"))
}

func TestReadLinesSkipsBlanksAndComments(t *testing.T) {
	input := "airline\n\n# comment\n  charter  \n"
	got, err := queries.ReadLines(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, []string{"airline", "charter"}, got)
}
