package services

import (
	"fmt"
	"strings"

	"airbnb-rooms-scraper/extractors"
	"airbnb-rooms-scraper/models"
	"airbnb-rooms-scraper/utils"
)

// Normalizer turns a raw room document into a ListingRecord
type Normalizer struct {
	logger *utils.Logger
}

// NewNormalizer creates a new Normalizer
func NewNormalizer(logger *utils.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize runs every field extractor on doc and assembles the record.
//
// A record is always returned. The error is non-nil, and wraps
// models.ErrMalformedDocument, only when a structurally required field
// (source URL, property type or listing id) is missing; the caller decides
// what to do with the partial record.
func (n *Normalizer) Normalize(doc models.RawListingDocument, sourceURL string) (*models.ListingRecord, error) {
	sourceURL = strings.TrimSpace(sourceURL)
	record := &models.ListingRecord{
		SourceURL:  sourceURL,
		Amenities:  extractors.Amenities(doc),
		Highlights: extractors.Highlights(doc),
		Images:     extractors.Images(doc),
		Rating:     extractors.Rating(doc),
	}

	var warnings []models.DataQualityWarning
	warn := func(w *models.DataQualityWarning) {
		if w != nil {
			warnings = append(warnings, *w)
		}
	}

	propertyType, hasType := extractors.PropertyType(doc)
	record.PropertyType = propertyType
	listingID, hasID := extractors.ListingID(doc, sourceURL)
	record.ListingID = listingID

	var hostWarn, priceWarn *models.DataQualityWarning
	record.HostDetails, hostWarn = extractors.HostDetails(doc)
	record.Price, priceWarn = extractors.Price(doc)
	warn(hostWarn)
	warn(priceWarn)

	capacity, capWarn := validCapacity(extractors.PersonCapacity(doc))
	record.PersonCapacity = capacity
	warn(capWarn)

	record.Warnings = warnings

	for _, w := range warnings {
		n.logger.Debug("Data quality warning for %s: %s: %s", sourceURL, w.Field, w.Message)
	}

	switch {
	case sourceURL == "":
		return record, models.MalformedError("<empty>", "sourceUrl")
	case !hasType:
		return record, models.MalformedError(sourceURL, "propertyType")
	case !hasID:
		return record, models.MalformedError(sourceURL, "listing id")
	}
	return record, nil
}

// validCapacity coerces a missing, non-numeric or negative capacity to 0 and
// reports it.
func validCapacity(c extractors.Capacity) (int, *models.DataQualityWarning) {
	switch {
	case !c.Present:
		return 0, &models.DataQualityWarning{Field: "personCapacity", Message: "capacity missing, defaulted to 0"}
	case !c.Numeric:
		return 0, &models.DataQualityWarning{Field: "personCapacity", Message: "capacity is not a whole number, defaulted to 0"}
	case c.Value < 0:
		return 0, &models.DataQualityWarning{Field: "personCapacity", Message: fmt.Sprintf("negative capacity %d, defaulted to 0", c.Value)}
	}
	return c.Value, nil
}
