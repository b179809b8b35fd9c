package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airbnb-rooms-scraper/models"
)

func TestParseDateRange(t *testing.T) {
	r, err := models.ParseDateRange("", "")
	require.NoError(t, err)
	assert.Nil(t, r)

	r, err = models.ParseDateRange("2024-05-01", "2024-05-04")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, 3, r.Nights())
	assert.Equal(t, "2024-05-01..2024-05-04", r.String())

	_, err = models.ParseDateRange("2024-05-01", "")
	require.Error(t, err)

	_, err = models.ParseDateRange("2024-05-04", "2024-05-01")
	require.Error(t, err)

	_, err = models.ParseDateRange("05/01/2024", "2024-05-04")
	require.Error(t, err)
}

func TestBatchResult_Add(t *testing.T) {
	b := models.NewBatchResult()
	b.Add(models.Outcome{Record: &models.ListingRecord{SourceURL: "a"}})
	b.Add(models.Outcome{Failure: &models.Failure{URL: "b", Reason: models.KindPermanentFetch, Attempts: 1}})
	b.Add(models.Outcome{})

	assert.Len(t, b.Successes, 1)
	assert.Len(t, b.Failures, 1)
	assert.Equal(t, 2, b.Total())
}
