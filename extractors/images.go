package extractors

import "airbnb-rooms-scraper/models"

// Images returns the listing photos in page order. Entries without a URL
// are dropped.
func Images(doc models.RawListingDocument) []models.Image {
	if payload, ok := section(doc, SectionPhotoTour); ok {
		if items, ok := payload.Slice("mediaItems"); ok {
			if images := imageList(items); len(images) > 0 {
				return images
			}
		}
	}
	if payload, ok := section(doc, SectionHero); ok {
		if items, ok := payload.Slice("previewImages"); ok {
			return imageList(items)
		}
	}
	return []models.Image{}
}

func imageList(items []any) []models.Image {
	out := make([]models.Image, 0, len(items))
	for _, item := range documents(items) {
		url, ok := firstText(item, []any{"baseUrl"}, []any{"url"}, []any{"picture"})
		if !ok {
			continue
		}
		img := models.Image{URL: url}
		if caption, ok := firstText(item, []any{"imageMetadata", "caption"}, []any{"caption"}); ok {
			img.Caption = models.String(caption)
		}
		out = append(out, img)
	}
	return out
}
