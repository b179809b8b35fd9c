package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const roomURL = "https://www.airbnb.com/rooms/53997462"

func fixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("../extractors/testdata/room_53997462.json")
	require.NoError(t, err)
	return data
}

func htmlPage(doc []byte) []byte {
	state := `{"niobeMinimalClientData": [["StaysPdpSections", {"data": {"presentation": {"stayProductDetailPage": {"sections": ` +
		string(doc) + `}}}}]]}`
	return []byte(`<!doctype html><html><head></head><body>
<script id="data-deferred-state-0" type="application/json">` + state + `</script>
</body></html>`)
}

func TestDecodeDocument(t *testing.T) {
	doc := fixture(t)

	fromJSON, err := decodeDocument(doc)
	require.NoError(t, err)
	fromHTML, err := decodeDocument(htmlPage(doc))
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromHTML)
	_, ok := fromJSON["sections"].([]any)
	assert.True(t, ok)
}

func TestDecodeDocument_Invalid(t *testing.T) {
	_, err := decodeDocument([]byte("{not json"))
	assert.Error(t, err)

	_, err = decodeDocument([]byte("<html><body>nothing here</body></html>"))
	assert.Error(t, err)
}

func TestParseCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "room.html")
	require.NoError(t, os.WriteFile(path, htmlPage(fixture(t)), 0o644))

	var out bytes.Buffer
	parse := newParseCommand()
	parse.SetOut(&out)
	parse.SetArgs([]string{path, "--url", roomURL})
	require.NoError(t, parse.Execute())

	var record map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &record))
	assert.Equal(t, roomURL, record["sourceUrl"])
	assert.Equal(t, "Entire condo", record["propertyType"])
	assert.EqualValues(t, 4, record["personCapacity"])
}

func TestParseCommand_RequiresURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "room.json")
	require.NoError(t, os.WriteFile(path, fixture(t), 0o644))

	parse := newParseCommand()
	parse.SetOut(&bytes.Buffer{})
	parse.SetArgs([]string{path})
	assert.Error(t, parse.Execute())
}
