package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"airbnb-rooms-scraper/models"
)

const reportWidth = 55

// PrintInsightReport writes the insight report to w
func PrintInsightReport(w io.Writer, report *models.InsightReport) {
	border := strings.Repeat("═", reportWidth)

	fmt.Fprintf(w, "\n╔%s╗\n", border)
	fmt.Fprintf(w, "║%s║\n", center("AIRBNB ROOM EXTRACTION SUMMARY", reportWidth))
	fmt.Fprintf(w, "╚%s╝\n", border)
	if report.RunID != "" {
		fmt.Fprintf(w, "  Run: %s\n", report.RunID)
	}

	overview := newTable(w, "OVERVIEW")
	overview.AppendRows([]table.Row{
		{"Inputs", report.TotalInputs},
		{"Extracted listings", report.Successes},
		{"Failed inputs", report.Failures},
		{"Data quality warnings", report.WarningCount},
		{"Listings with price", report.PricedListings},
		{"Average guest rating", fmt.Sprintf("%.2f", report.AverageRating)},
		{"Average capacity", fmt.Sprintf("%.1f", report.AverageCapacity)},
	})
	overview.Render()

	if len(report.FailuresByKind) > 0 {
		t := newTable(w, "FAILURES BY REASON")
		t.AppendHeader(table.Row{"Reason", "Count"})
		kinds := make([]string, 0, len(report.FailuresByKind))
		for k := range report.FailuresByKind {
			kinds = append(kinds, string(k))
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			t.AppendRow(table.Row{k, report.FailuresByKind[models.ErrorKind(k)]})
		}
		t.Render()
	}

	if len(report.ByPropertyType) > 0 {
		t := newTable(w, "LISTINGS PER PROPERTY TYPE")
		t.AppendHeader(table.Row{"Property type", "Count"})
		for _, pc := range sortedCounts(report.ByPropertyType) {
			t.AppendRow(table.Row{pc.name, pc.count})
		}
		t.Render()
	}

	if m := report.MostExpensive; m != nil && m.Price != nil {
		t := newTable(w, "MOST EXPENSIVE LISTING")
		t.AppendRows([]table.Row{
			{"Type", m.PropertyType},
			{"Price", fmt.Sprintf("%s%.2f %s", m.Price.Currency, m.Price.Amount, m.Price.Qualifier)},
			{"URL", m.SourceURL},
		})
		t.Render()
	}

	if len(report.TopRated) > 0 {
		t := newTable(w, fmt.Sprintf("TOP %d HIGHEST RATED LISTINGS", len(report.TopRated)))
		t.AppendHeader(table.Row{"#", "Listing", "Rating", "Reviews"})
		for i, l := range report.TopRated {
			t.AppendRow(table.Row{i + 1, truncate(l.PropertyType+" "+l.ListingID, 35),
				fmt.Sprintf("%.2f", *l.Rating.GuestSatisfaction), reviews(l)})
		}
		t.Render()
	}

	fmt.Fprintf(w, "\n%s\n\n", border)
}

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	return t
}

type propertyCount struct {
	name  string
	count int
}

// sortedCounts orders by count descending, then name
func sortedCounts(m map[string]int) []propertyCount {
	out := make([]propertyCount, 0, len(m))
	for name, count := range m {
		out = append(out, propertyCount{name, count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})
	return out
}

func center(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return s
	}
	pad := (width - len(runes)) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-len(runes)-pad)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
