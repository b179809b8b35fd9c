package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"airbnb-rooms-scraper/utils"
)

func TestURLTracker(t *testing.T) {
	tr := utils.NewURLTracker()

	assert.True(t, tr.Add("https://www.airbnb.com/rooms/1"))
	assert.False(t, tr.Add("https://www.airbnb.com/rooms/1"))
	assert.True(t, tr.Add("https://www.airbnb.com/rooms/2"))
	assert.False(t, tr.Add("https://www.airbnb.com/rooms/1"))

	assert.Equal(t, 2, tr.Count())
	assert.Equal(t, 2, tr.Duplicates())
}
