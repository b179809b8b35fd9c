package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airbnb-rooms-scraper/config"
	"airbnb-rooms-scraper/models"
)

func urls(inputs []models.RoomInput) []string {
	out := make([]string, len(inputs))
	for i, in := range inputs {
		out[i] = in.URL
	}
	return out
}

func TestParseInput_Shapes(t *testing.T) {
	want := []string{"https://www.airbnb.com/rooms/1", "https://www.airbnb.com/rooms/2"}

	tests := []struct {
		name string
		raw  string
	}{
		{"strings", `["https://www.airbnb.com/rooms/1", "https://www.airbnb.com/rooms/2"]`},
		{"url objects", `[{"url": "https://www.airbnb.com/rooms/1"}, {"url": "https://www.airbnb.com/rooms/2"}]`},
		{"startUrl objects", `[{"startUrl": "https://www.airbnb.com/rooms/1"}, {"startUrl": "https://www.airbnb.com/rooms/2?adults=2"}]`},
		{"startUrls in list", `[{"startUrls": ["https://www.airbnb.com/rooms/1", {"url": "https://www.airbnb.com/rooms/2"}]}]`},
		{"startUrls object", `{"startUrls": ["https://www.airbnb.com/rooms/1", "2"]}`},
		{"urls object", `{"urls": ["1", "", "https://www.airbnb.com/rooms/2"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inputs, err := config.ParseInput([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, want, urls(inputs))
		})
	}
}

func TestParseInput_Dates(t *testing.T) {
	inputs, err := config.ParseInput([]byte(`[
		{"url": "https://www.airbnb.com/rooms/1", "checkIn": "2025-05-01", "checkOut": "2025-05-04"},
		"https://www.airbnb.com/rooms/2?check_in=2025-06-01&check_out=2025-06-02",
		"https://www.airbnb.com/rooms/3"
	]`))
	require.NoError(t, err)
	require.Len(t, inputs, 3)

	require.NotNil(t, inputs[0].Dates)
	assert.Equal(t, 3, inputs[0].Dates.Nights())
	require.NotNil(t, inputs[1].Dates)
	assert.Equal(t, "2025-06-01..2025-06-02", inputs[1].Dates.String())
	assert.Equal(t, "https://www.airbnb.com/rooms/2", inputs[1].URL)
	assert.Nil(t, inputs[2].Dates)

	shared, err := config.ParseInput([]byte(`{"startUrls": ["1", "2"], "checkIn": "2025-05-01", "checkOut": "2025-05-02"}`))
	require.NoError(t, err)
	for _, in := range shared {
		assert.NotNil(t, in.Dates)
	}
}

func TestParseInput_Errors(t *testing.T) {
	bad := []string{
		``,
		`"https://www.airbnb.com/rooms/1"`,
		`[]`,
		`{"startUrls": []}`,
		`["https://www.airbnb.com/s/Lisbon/homes"]`,
		`[{"url": "https://www.airbnb.com/rooms/1", "checkIn": "2025-05-01"}]`,
		`[{"url": "https://www.airbnb.com/rooms/1", "checkIn": "2025-05-04", "checkOut": "2025-05-01"}]`,
		`[42]`,
	}
	for _, raw := range bad {
		_, err := config.ParseInput([]byte(raw))
		assert.Error(t, err, raw)
	}
}

func TestParseInput_DuplicatesAreKept(t *testing.T) {
	inputs, err := config.ParseInput([]byte(`["1", "1"]`))
	require.NoError(t, err)
	assert.Len(t, inputs, 2)
}

func TestLoadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"startUrl": "https://www.airbnb.com/rooms/53997462"}]`), 0644))

	inputs, err := config.LoadInput(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://www.airbnb.com/rooms/53997462"}, urls(inputs))

	_, err = config.LoadInput(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
