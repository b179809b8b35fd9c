package extractors

import (
	"strings"

	"airbnb-rooms-scraper/models"
)

const (
	defaultAmenityGroup = "Amenities"
	unavailablePrefix   = "Unavailable:"
)

// Amenities returns the amenity groups in page order. Groups repeating an
// earlier title are merged into it; items without a title are skipped.
func Amenities(doc models.RawListingDocument) []models.AmenityGroup {
	groups := []models.AmenityGroup{}
	payload, ok := section(doc, SectionAmenities)
	if !ok {
		return groups
	}
	rawGroups, ok := payload.Slice("seeAllAmenitiesGroups")
	if !ok {
		rawGroups, _ = payload.Slice("previewAmenitiesGroups")
	}

	index := make(map[string]int)
	for _, g := range documents(rawGroups) {
		title, ok := g.Text("title")
		if !ok {
			title = defaultAmenityGroup
		}
		items, _ := g.Slice("amenities")
		values := amenityValues(items)
		if len(values) == 0 {
			continue
		}
		if i, seen := index[title]; seen {
			groups[i].Values = append(groups[i].Values, values...)
			continue
		}
		index[title] = len(groups)
		groups = append(groups, models.AmenityGroup{Title: title, Values: values})
	}
	return groups
}

func amenityValues(items []any) []models.Amenity {
	values := make([]models.Amenity, 0, len(items))
	for _, item := range documents(items) {
		title, ok := item.Text("title")
		if !ok {
			continue
		}
		struck := false
		if rest, found := cutPrefixFold(title, unavailablePrefix); found {
			title, struck = strings.TrimSpace(rest), true
			if title == "" {
				continue
			}
		}
		values = append(values, models.Amenity{Title: title, Available: available(item, struck)})
	}
	return values
}

// available applies the availability rule: an explicit flag wins, then an
// "included" marker; anything else is unavailable.
func available(item models.RawListingDocument, struck bool) bool {
	if v, ok := item.Bool("available"); ok {
		return v
	}
	if struck {
		return false
	}
	if v, ok := item.Bool("included"); ok {
		return v
	}
	if status, ok := item.Text("status"); ok {
		return strings.EqualFold(status, "included")
	}
	return false
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return s, false
}
