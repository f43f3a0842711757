package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBulletin = `Tropical Weather Discussion
NWS National Hurricane Center Miami FL

...SPECIAL FEATURES...
A tropical disturbance east of the Windward Islands is moving west.
Heavy rainfall may reach Puerto Rico by Friday.

...TROPICAL WAVES...
A tropical wave is along 40W from 05N to 15N.
`

func TestExtractSpecialFeatures(t *testing.T) {
	t.Run("returns marker-delimited substring", func(t *testing.T) {
		section, err := ExtractSpecialFeatures(sampleBulletin)

		require.NoError(t, err)
		assert.True(t, len(section) > 0)
		assert.Contains(t, section, "...SPECIAL FEATURES...")
		assert.Contains(t, section, "Puerto Rico")
		assert.NotContains(t, section, "...TROPICAL WAVES...")
		assert.NotContains(t, section, "tropical wave is along 40W")
	})

	t.Run("is idempotent", func(t *testing.T) {
		first, err := ExtractSpecialFeatures(sampleBulletin)
		require.NoError(t, err)
		second, err := ExtractSpecialFeatures(sampleBulletin)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("start marker inclusive, end marker exclusive", func(t *testing.T) {
		bulletin := "prefix ...SPECIAL FEATURES...body...TROPICAL WAVES... suffix"
		section, err := ExtractSpecialFeatures(bulletin)

		require.NoError(t, err)
		assert.Equal(t, "...SPECIAL FEATURES...body", section)
	})
}

func TestExtractSpecialFeatures_NotFound(t *testing.T) {
	tests := []struct {
		name     string
		bulletin string
	}{
		{"empty bulletin", ""},
		{"missing start marker", "some text ...TROPICAL WAVES... more text"},
		{"missing end marker", "some text ...SPECIAL FEATURES... more text"},
		{"end marker before start marker", "...TROPICAL WAVES... middle ...SPECIAL FEATURES... tail"},
		{"no markers at all", "an ordinary quiet bulletin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			section, err := ExtractSpecialFeatures(tt.bulletin)

			require.ErrorIs(t, err, ErrSectionNotFound)
			assert.Empty(t, section)
		})
	}
}

func TestSplitSentences(t *testing.T) {
	sentences := splitSentences("First sentence. Second sentence. Third")

	require.Len(t, sentences, 3)
	assert.Equal(t, "First sentence", sentences[0])
	assert.Equal(t, " Second sentence", sentences[1])
	assert.Equal(t, " Third", sentences[2])
}
