package extractors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airbnb-rooms-scraper/extractors"
	"airbnb-rooms-scraper/models"
)

func TestHighlights(t *testing.T) {
	got := extractors.Highlights(loadFixture(t))
	require.Len(t, got, 3)
	assert.Equal(t, models.Highlight{Title: "Self check-in", Subtitle: models.String("Check yourself in with the lockbox.")}, got[0])
	assert.Equal(t, "Ana is a Superhost", got[1].Title)
	assert.Equal(t, models.Highlight{Title: "Great location"}, got[2], "title-only entry has no subtitle")
}

func TestHighlights_SkipsUntitled(t *testing.T) {
	doc := parseDoc(t, withSections(sectionJSON("HIGHLIGHTS_DEFAULT", `{"highlights": [
		{"subtitle": "orphan"}, {"title": "Free cancellation", "subtitle": "  "}
	]}`)))

	assert.Equal(t, []models.Highlight{{Title: "Free cancellation"}}, extractors.Highlights(doc))
	assert.Empty(t, extractors.Highlights(parseDoc(t, `{}`)))
}
