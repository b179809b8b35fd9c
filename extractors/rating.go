package extractors

import (
	"strings"

	"airbnb-rooms-scraper/models"
)

type subrating struct {
	eventKey string // key in eventDataLogging
	category string // categoryType in the reviews section
	set      func(*models.RatingBlock, *float64)
}

var subratings = []subrating{
	{"accuracyRating", "ACCURACY", func(r *models.RatingBlock, v *float64) { r.Accuracy = v }},
	{"checkinRating", "CHECKIN", func(r *models.RatingBlock, v *float64) { r.Checking = v }},
	{"cleanlinessRating", "CLEANLINESS", func(r *models.RatingBlock, v *float64) { r.Cleanliness = v }},
	{"communicationRating", "COMMUNICATION", func(r *models.RatingBlock, v *float64) { r.Communication = v }},
	{"locationRating", "LOCATION", func(r *models.RatingBlock, v *float64) { r.Location = v }},
	{"valueRating", "VALUE", func(r *models.RatingBlock, v *float64) { r.Value = v }},
}

// Rating extracts the review scores. The logging payload is read first and
// the reviews section fills whatever it lacks. Nil when neither carries a
// score or a review count.
func Rating(doc models.RawListingDocument) *models.RatingBlock {
	data, hasData := eventData(doc)
	reviews, hasReviews := section(doc, SectionReviews)
	if !hasData && !hasReviews {
		return nil
	}

	var categories map[string]float64
	if hasReviews {
		categories = reviewCategories(reviews)
	}

	block := &models.RatingBlock{}
	found := false
	for _, s := range subratings {
		var (
			v  float64
			ok bool
		)
		if hasData {
			v, ok = data.Number(s.eventKey)
		}
		if !ok {
			v, ok = categories[s.category]
		}
		if ok {
			s.set(block, models.Float64(models.Round2(v)))
			found = true
		}
	}

	if v, ok := firstNumber(data, reviews, "guestSatisfactionOverall", "overallRating"); ok {
		block.GuestSatisfaction = models.Float64(models.Round2(v))
		found = true
	}

	if n, ok := reviewsCount(data, reviews); ok {
		block.ReviewsCount = models.Int(n)
		found = true
		if n == 0 {
			block.ClearSubratings()
			block.GuestSatisfaction = nil
		}
	}

	if !found {
		return nil
	}
	return block
}

func reviewCategories(reviews models.RawListingDocument) map[string]float64 {
	items, _ := reviews.Slice("ratings")
	out := make(map[string]float64, len(items))
	for _, item := range documents(items) {
		category, ok := item.Text("categoryType")
		if !ok {
			continue
		}
		v, ok := item.Number("localizedRating")
		if !ok {
			v, ok = item.Number("value")
		}
		if ok {
			out[strings.ToUpper(category)] = v
		}
	}
	return out
}

func firstNumber(data, reviews models.RawListingDocument, dataKey, reviewsKey string) (float64, bool) {
	if data != nil {
		if v, ok := data.Number(dataKey); ok {
			return v, true
		}
	}
	if reviews != nil {
		if v, ok := reviews.Number(reviewsKey); ok {
			return v, true
		}
	}
	return 0, false
}

func reviewsCount(data, reviews models.RawListingDocument) (int, bool) {
	if data != nil {
		if n, ok := data.Int("visibleReviewCount"); ok && n >= 0 {
			return n, true
		}
	}
	if reviews != nil {
		if n, ok := reviews.Int("overallCount"); ok && n >= 0 {
			return n, true
		}
	}
	return 0, false
}
