package airbnb

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airbnb-rooms-scraper/models"
)

func TestCanonicalRoomURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"53997462", "https://www.airbnb.com/rooms/53997462", false},
		{" https://www.airbnb.com/rooms/53997462?source_impression_id=p3&guests=1#photos ", "https://www.airbnb.com/rooms/53997462", false},
		{"https://www.airbnb.pt/rooms/plus/123/", "https://www.airbnb.pt/rooms/plus/123", false},
		{"https://www.airbnb.com/s/Lisbon/homes", "", true},
		{"www.airbnb.com/rooms/1", "", true},
		{"ftp://www.airbnb.com/rooms/1", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := CanonicalRoomURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoomID(t *testing.T) {
	id, ok := RoomID("https://www.airbnb.com/rooms/53997462?adults=2")
	assert.True(t, ok)
	assert.Equal(t, "53997462", id)

	_, ok = RoomID("https://www.airbnb.com/users/show/1")
	assert.False(t, ok)
}

func TestRequestURL(t *testing.T) {
	dates, err := models.ParseDateRange("2025-07-10", "2025-07-14")
	require.NoError(t, err)

	got, err := RequestURL("https://www.airbnb.com/rooms/1?check_in=2020-01-01&adults=2", dates)
	require.NoError(t, err)
	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "2025-07-10", u.Query().Get("check_in"))
	assert.Equal(t, "2025-07-14", u.Query().Get("check_out"))
	assert.Equal(t, "2", u.Query().Get("adults"))

	got, err = RequestURL("https://www.airbnb.com/rooms/1?check_in=2020-01-01&check_out=2020-01-02", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://www.airbnb.com/rooms/1", got)
}

func TestIsRoomPath(t *testing.T) {
	u, _ := url.Parse("https://www.airbnb.com/rooms/5")
	assert.True(t, isRoomPath(u))
	u, _ = url.Parse("https://www.airbnb.com/?redirected=1")
	assert.False(t, isRoomPath(u))
	assert.False(t, isRoomPath(nil))
}
