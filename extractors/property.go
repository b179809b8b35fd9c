package extractors

import (
	"regexp"
	"strings"

	"airbnb-rooms-scraper/models"
)

var (
	guestsRegex = regexp.MustCompile(`(?i)(-?\d+)\+?\s+guests?\b`)
	roomIDRegex = regexp.MustCompile(`/rooms/(?:plus/)?(\d+)`)
)

// PropertyType returns the listing's property type, e.g. "Entire condo".
func PropertyType(doc models.RawListingDocument) (string, bool) {
	if s, ok := doc.Text("metadata", "sharingConfig", "propertyType"); ok {
		return s, true
	}
	// "Entire condo in Lisbon, Portugal"
	if overview, ok := section(doc, SectionOverview); ok {
		if title, ok := overview.Text("title"); ok {
			if idx := strings.Index(title, " in "); idx > 0 {
				return strings.TrimSpace(title[:idx]), true
			}
		}
	}
	return "", false
}

// Capacity is the person capacity as found in the document, before validation.
type Capacity struct {
	Value   int
	Present bool // a capacity value exists in the document
	Numeric bool // the value is a whole number
}

// PersonCapacity reads the guest capacity without judging it. The first
// numeric value wins; a non-numeric one is reported only when no later
// source has a number.
func PersonCapacity(doc models.RawListingDocument) Capacity {
	paths := [][]any{
		{"metadata", "sharingConfig", "personCapacity"},
		{"metadata", "loggingContext", "eventDataLogging", "personCapacity"},
	}
	present := false
	for _, p := range paths {
		v, ok := doc.Lookup(p...)
		if !ok {
			continue
		}
		present = true
		if n, numeric := models.AsInt(v); numeric {
			return Capacity{Value: n, Present: true, Numeric: true}
		}
	}

	// "4 guests" in the overview detail line
	if overview, ok := section(doc, SectionOverview); ok {
		items, _ := overview.Slice("detailItems")
		for _, item := range documents(items) {
			title, _ := item.Text("title")
			if m := guestsRegex.FindStringSubmatch(title); m != nil {
				if n, ok := models.AsInt(m[1]); ok {
					return Capacity{Value: n, Present: true, Numeric: true}
				}
			}
		}
	}
	return Capacity{Present: present}
}

// ListingID resolves the room id from the document, falling back to the URL.
func ListingID(doc models.RawListingDocument, sourceURL string) (string, bool) {
	if data, ok := eventData(doc); ok {
		if id, ok := data.Text("listingId"); ok {
			return id, true
		}
	}
	if m := roomIDRegex.FindStringSubmatch(sourceURL); m != nil {
		return m[1], true
	}
	return "", false
}
