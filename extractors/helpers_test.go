package extractors_test

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"airbnb-rooms-scraper/models"
)

func parseDoc(t *testing.T, raw string) models.RawListingDocument {
	t.Helper()

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var doc models.RawListingDocument
	require.NoError(t, dec.Decode(&doc))
	return doc
}

func loadFixture(t *testing.T) models.RawListingDocument {
	t.Helper()

	data, err := os.ReadFile("testdata/room_53997462.json")
	require.NoError(t, err)
	return parseDoc(t, string(data))
}

// withSections wraps section entries into a minimal document.
func withSections(sections ...string) string {
	return `{"sections": [` + strings.Join(sections, ",") + `]}`
}

func sectionJSON(kind, payload string) string {
	return `{"sectionComponentType": "` + kind + `", "section": ` + payload + `}`
}
