package airbnb

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"airbnb-rooms-scraper/models"
)

// ErrNoRoomState means the page carries no embedded room data, which is what
// Airbnb serves for removed or unknown rooms.
var ErrNoRoomState = errors.New("no embedded room state in page")

const (
	stateSelector    = `script[id^="data-deferred-state"], script#data-injector-instances`
	fallbackSelector = `script[type="application/json"]`
	pdpKey           = "stayProductDetailPage"
	maxSearchDepth   = 16
)

// ParseRoomPage extracts the room document from a room page. It reads the
// JSON blobs the page embeds for client hydration and returns the
// stayProductDetailPage.sections object, numbers kept as json.Number.
func ParseRoomPage(r io.Reader) (models.RawListingDocument, error) {
	page, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	for _, selector := range []string{stateSelector, fallbackSelector} {
		var found models.RawListingDocument
		page.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			found = roomStateFromScript(s.Text())
			return found == nil
		})
		if found != nil {
			return found, nil
		}
	}
	return nil, ErrNoRoomState
}

func roomStateFromScript(text string) models.RawListingDocument {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()
	var blob any
	if err := dec.Decode(&blob); err != nil {
		return nil
	}
	return findSections(blob, 0)
}

// findSections walks the blob for {"stayProductDetailPage": {"sections": {...}}}.
// The wrapping differs between page versions, so the search is structural.
func findSections(v any, depth int) models.RawListingDocument {
	if depth > maxSearchDepth {
		return nil
	}
	switch t := v.(type) {
	case map[string]any:
		if pdp, ok := models.AsDocument(t[pdpKey]); ok {
			if sections, ok := pdp.Map("sections"); ok {
				return sections
			}
		}
		for _, child := range t {
			if doc := findSections(child, depth+1); doc != nil {
				return doc
			}
		}
	case []any:
		for _, child := range t {
			if doc := findSections(child, depth+1); doc != nil {
				return doc
			}
		}
	}
	return nil
}
