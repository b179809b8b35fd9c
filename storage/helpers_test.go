package storage_test

import "airbnb-rooms-scraper/models"

const runID = "6f1c2b1e-8d4a-4c39-9a3e-2b7f5e0d9c11"

func sampleResult() *models.BatchResult {
	result := models.NewBatchResult()
	result.Successes = append(result.Successes, models.ListingRecord{
		PropertyType:   "Entire condo",
		PersonCapacity: 4,
		Rating: &models.RatingBlock{
			Accuracy:          models.Float64(4.94),
			GuestSatisfaction: models.Float64(4.97),
			ReviewsCount:      models.Int(36),
		},
		Amenities: []models.AmenityGroup{{Title: "Bathroom", Values: []models.Amenity{
			{Title: "Hair dryer", Available: true},
			{Title: "Bathtub", Available: false},
		}}},
		Highlights:  []models.Highlight{{Title: "Self check-in"}},
		Images:      []models.Image{{URL: "https://a0.muscache.com/1.jpeg", Caption: models.String("Living room")}},
		HostDetails: &models.HostInfo{Name: "Ana", IsSuperhost: models.Bool(true)},
		Price:       &models.PriceInfo{Amount: 131, Currency: "$"},
		SourceURL:   "https://www.airbnb.com/rooms/53997462",
		ListingID:   "53997462",
	}, models.ListingRecord{
		PropertyType: "Private room",
		Amenities:    []models.AmenityGroup{},
		Highlights:   []models.Highlight{},
		Images:       []models.Image{},
		SourceURL:    "https://www.airbnb.com/rooms/2",
		ListingID:    "2",
		Warnings:     []models.DataQualityWarning{{Field: "personCapacity", Message: "capacity missing, defaulted to 0"}},
	})
	result.Failures = append(result.Failures, models.Failure{
		URL:      "https://www.airbnb.com/rooms/404",
		Reason:   models.KindPermanentFetch,
		Attempts: 1,
		Message:  "not found",
	})
	return result
}
