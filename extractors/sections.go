// Package extractors maps a raw room page document to the fields of a
// listing record. Every extractor is total: missing or malformed structure
// yields an absent value, never an error or a panic.
package extractors

import (
	"strings"

	"airbnb-rooms-scraper/models"
)

// Section component types of the room page.
const (
	SectionAmenities  = "AMENITIES_DEFAULT"
	SectionReviews    = "REVIEWS_DEFAULT"
	SectionHighlights = "HIGHLIGHTS_DEFAULT"
	SectionPhotoTour  = "PHOTO_TOUR_SCROLLABLE"
	SectionHero       = "HERO_DEFAULT"
	SectionMeetHost   = "MEET_YOUR_HOST"
	SectionHost       = "HOST_PROFILE_DEFAULT"
	SectionBookIt     = "BOOK_IT_SIDEBAR"
	SectionOverview   = "OVERVIEW_DEFAULT_V2"
)

// section returns the payload of the first section with the given component type.
func section(doc models.RawListingDocument, componentType string) (models.RawListingDocument, bool) {
	entries, ok := doc.Slice("sections")
	if !ok {
		return nil, false
	}
	for _, e := range entries {
		entry, ok := models.AsDocument(e)
		if !ok {
			continue
		}
		kind, _ := entry.Text("sectionComponentType")
		if !strings.EqualFold(kind, componentType) {
			continue
		}
		if payload, ok := entry.Map("section"); ok {
			return payload, true
		}
	}
	return nil, false
}

// eventData is the logging payload that carries the listing id and rating numbers.
func eventData(doc models.RawListingDocument) (models.RawListingDocument, bool) {
	return doc.Map("metadata", "loggingContext", "eventDataLogging")
}

// documents converts a sequence into its mapping elements, skipping anything else.
func documents(items []any) []models.RawListingDocument {
	out := make([]models.RawListingDocument, 0, len(items))
	for _, item := range items {
		if d, ok := models.AsDocument(item); ok {
			out = append(out, d)
		}
	}
	return out
}

// firstText returns the first non-empty string among the given paths.
func firstText(doc models.RawListingDocument, paths ...[]any) (string, bool) {
	for _, p := range paths {
		if s, ok := doc.Text(p...); ok {
			return s, true
		}
	}
	return "", false
}
