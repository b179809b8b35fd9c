package models

import "math"

// ListingRecord is the normalized output for one room URL. Absent optional
// values are nil pointers and serialize as null; sequences are never nil.
type ListingRecord struct {
	PropertyType   string         `json:"propertyType"`
	PersonCapacity int            `json:"personCapacity"`
	Rating         *RatingBlock   `json:"rating"`
	Amenities      []AmenityGroup `json:"amenities"`
	Highlights     []Highlight    `json:"highlights"`
	Images         []Image        `json:"images"`
	HostDetails    *HostInfo      `json:"hostDetails"`
	Price          *PriceInfo     `json:"price"`
	SourceURL      string         `json:"sourceUrl"`

	// ListingID is the Airbnb room id the record was resolved to. It keys the
	// database rows.
	ListingID string `json:"listingId,omitempty"`

	Warnings []DataQualityWarning `json:"warnings,omitempty"`
}

// RatingBlock holds the review scores of a listing. Subratings are nil when
// the listing has no reviews, since 0 is a valid score.
type RatingBlock struct {
	Accuracy          *float64 `json:"accuracy"`
	Checking          *float64 `json:"checking"`
	Cleanliness       *float64 `json:"cleanliness"`
	Communication     *float64 `json:"communication"`
	Location          *float64 `json:"location"`
	Value             *float64 `json:"value"`
	GuestSatisfaction *float64 `json:"guestSatisfaction"`
	ReviewsCount      *int     `json:"reviewsCount"`
}

// HasSubratings reports whether any of the six category scores is present.
func (r *RatingBlock) HasSubratings() bool {
	if r == nil {
		return false
	}
	return r.Accuracy != nil || r.Checking != nil || r.Cleanliness != nil ||
		r.Communication != nil || r.Location != nil || r.Value != nil
}

// ClearSubratings drops the six category scores.
func (r *RatingBlock) ClearSubratings() {
	r.Accuracy, r.Checking, r.Cleanliness = nil, nil, nil
	r.Communication, r.Location, r.Value = nil, nil, nil
}

// AmenityGroup is one amenity category, e.g. "Bathroom".
type AmenityGroup struct {
	Title  string    `json:"title"`
	Values []Amenity `json:"values"`
}

// Amenity is a single amenity inside a group.
type Amenity struct {
	Title     string `json:"title"`
	Available bool   `json:"available"`
}

// Highlight is a badge-like listing highlight such as "Self check-in".
type Highlight struct {
	Title    string  `json:"title"`
	Subtitle *string `json:"subtitle"`
}

// Image is one listing photo.
type Image struct {
	URL     string  `json:"url"`
	Caption *string `json:"caption"`
}

// HostInfo is the subset of host data kept from the page. Either Name or ID
// is always set.
type HostInfo struct {
	ID                string   `json:"id,omitempty"`
	Name              string   `json:"name,omitempty"`
	IsSuperhost       *bool    `json:"isSuperhost,omitempty"`
	IsVerified        *bool    `json:"isVerified,omitempty"`
	Rating            *float64 `json:"rating,omitempty"`
	ReviewsCount      *int     `json:"reviewsCount,omitempty"`
	YearsHosting      *int     `json:"yearsHosting,omitempty"`
	ProfilePictureURL string   `json:"profilePictureUrl,omitempty"`
	About             string   `json:"about,omitempty"`
}

// PriceInfo is the displayed stay price for the requested dates.
type PriceInfo struct {
	Amount         float64  `json:"amount"`
	Currency       string   `json:"currency"`
	OriginalAmount *float64 `json:"originalAmount,omitempty"`
	Qualifier      string   `json:"qualifier,omitempty"`
	Raw            string   `json:"raw,omitempty"`
}

// DataQualityWarning flags a field that fell back to absent or a default
// where a value was expected. It never fails the record.
type DataQualityWarning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// InsightReport holds analytics computed over one batch
type InsightReport struct {
	RunID           string
	TotalInputs     int
	Successes       int
	Failures        int
	FailuresByKind  map[ErrorKind]int
	WarningCount    int
	AverageRating   float64
	AverageCapacity float64
	PricedListings  int
	MostExpensive   *ListingRecord
	TopRated        []*ListingRecord
	ByPropertyType  map[string]int
}

// Round2 rounds to two decimals, the precision ratings are published with.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Float64 returns a pointer to v.
func Float64(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }
