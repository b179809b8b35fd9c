package services

import (
	"sort"

	"airbnb-rooms-scraper/models"
	"airbnb-rooms-scraper/utils"
)

const topRatedLimit = 5

// InsightService computes analytics over a batch result
type InsightService struct {
	logger *utils.Logger
}

// NewInsightService creates a new InsightService
func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate summarizes one run
func (s *InsightService) Generate(runID string, result *models.BatchResult) *models.InsightReport {
	report := &models.InsightReport{
		RunID:          runID,
		FailuresByKind: make(map[models.ErrorKind]int),
		ByPropertyType: make(map[string]int),
		TopRated:       []*models.ListingRecord{},
	}
	if result == nil {
		return report
	}

	report.TotalInputs = result.Total()
	report.Successes = len(result.Successes)
	report.Failures = len(result.Failures)
	for _, f := range result.Failures {
		report.FailuresByKind[f.Reason]++
	}

	if report.Successes == 0 {
		s.logger.Warn("No listings to generate insights from")
		return report
	}

	var (
		ratingSum   float64
		ratingCount int
		capacitySum int
		rated       []*models.ListingRecord
	)
	for i := range result.Successes {
		l := &result.Successes[i]
		report.WarningCount += len(l.Warnings)
		report.ByPropertyType[l.PropertyType]++
		capacitySum += l.PersonCapacity

		if l.Rating != nil && l.Rating.GuestSatisfaction != nil {
			ratingSum += *l.Rating.GuestSatisfaction
			ratingCount++
			rated = append(rated, l)
		}

		if l.Price != nil {
			report.PricedListings++
			if report.MostExpensive == nil || l.Price.Amount > report.MostExpensive.Price.Amount {
				report.MostExpensive = l
			}
		}
	}

	report.AverageCapacity = float64(capacitySum) / float64(report.Successes)
	if ratingCount > 0 {
		report.AverageRating = models.Round2(ratingSum / float64(ratingCount))
	}

	// Highest guest satisfaction first, more reviews breaks ties
	sort.SliceStable(rated, func(i, j int) bool {
		a, b := *rated[i].Rating.GuestSatisfaction, *rated[j].Rating.GuestSatisfaction
		if a != b {
			return a > b
		}
		return reviews(rated[i]) > reviews(rated[j])
	})
	if len(rated) > topRatedLimit {
		rated = rated[:topRatedLimit]
	}
	report.TopRated = append(report.TopRated, rated...)

	return report
}

func reviews(l *models.ListingRecord) int {
	if l.Rating == nil || l.Rating.ReviewsCount == nil {
		return 0
	}
	return *l.Rating.ReviewsCount
}
