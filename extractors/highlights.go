package extractors

import "airbnb-rooms-scraper/models"

// Highlights returns the listing badges in page order.
func Highlights(doc models.RawListingDocument) []models.Highlight {
	out := []models.Highlight{}
	payload, ok := section(doc, SectionHighlights)
	if !ok {
		return out
	}
	items, _ := payload.Slice("highlights")
	for _, item := range documents(items) {
		title, ok := item.Text("title")
		if !ok {
			continue
		}
		h := models.Highlight{Title: title}
		if subtitle, ok := item.Text("subtitle"); ok {
			h.Subtitle = models.String(subtitle)
		}
		out = append(out, h)
	}
	return out
}
