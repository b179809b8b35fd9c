package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"airbnb-rooms-scraper/models"
	"airbnb-rooms-scraper/utils"
)

var csvHeader = []string{
	"run_id", "listing_id", "source_url", "property_type", "person_capacity",
	"guest_satisfaction", "reviews_count", "amenities_available", "highlights",
	"images", "host_name", "superhost", "price_amount", "price_currency", "warnings",
}

// CSVWriter writes one flattened row per record to a CSV file
type CSVWriter struct {
	filePath string
	logger   *utils.Logger
}

// NewCSVWriter creates a new CSVWriter
func NewCSVWriter(filePath string, logger *utils.Logger) *CSVWriter {
	return &CSVWriter{filePath: filePath, logger: logger}
}

func (w *CSVWriter) Save(_ context.Context, runID string, result *models.BatchResult) error {
	// Ensure output directory exists
	if err := os.MkdirAll(filepath.Dir(w.filePath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(w.filePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := range result.Successes {
		l := &result.Successes[i]
		if err := writer.Write(csvRow(runID, l)); err != nil {
			w.logger.Error("Failed to write CSV row for '%s': %v", l.SourceURL, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	w.logger.Info("Records written to: %s (%d rows)", w.filePath, len(result.Successes))
	return nil
}

func (w *CSVWriter) Close() error { return nil }

func csvRow(runID string, l *models.ListingRecord) []string {
	row := []string{
		runID,
		l.ListingID,
		l.SourceURL,
		l.PropertyType,
		strconv.Itoa(l.PersonCapacity),
		"", "",
		strconv.Itoa(availableAmenities(l.Amenities)),
		strconv.Itoa(len(l.Highlights)),
		strconv.Itoa(len(l.Images)),
		"", "",
		"", "",
		warningFields(l.Warnings),
	}
	if r := l.Rating; r != nil {
		row[5] = formatFloat(r.GuestSatisfaction)
		if r.ReviewsCount != nil {
			row[6] = strconv.Itoa(*r.ReviewsCount)
		}
	}
	if h := l.HostDetails; h != nil {
		row[10] = h.Name
		if h.IsSuperhost != nil {
			row[11] = strconv.FormatBool(*h.IsSuperhost)
		}
	}
	if p := l.Price; p != nil {
		row[12] = strconv.FormatFloat(p.Amount, 'f', 2, 64)
		row[13] = p.Currency
	}
	return row
}

func availableAmenities(groups []models.AmenityGroup) int {
	n := 0
	for _, g := range groups {
		for _, a := range g.Values {
			if a.Available {
				n++
			}
		}
	}
	return n
}

func warningFields(warnings []models.DataQualityWarning) string {
	fields := make([]string, 0, len(warnings))
	for _, w := range warnings {
		fields = append(fields, w.Field)
	}
	return strings.Join(fields, ";")
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
