package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"airbnb-rooms-scraper/models"
	"airbnb-rooms-scraper/scraper/airbnb"
)

// inputEntry is one object of the input file. Any of the URL fields may be set.
type inputEntry struct {
	URL       string            `json:"url"`
	StartURL  string            `json:"startUrl"`
	StartURLs []json.RawMessage `json:"startUrls"`
	URLs      []json.RawMessage `json:"urls"`
	CheckIn   string            `json:"checkIn"`
	CheckOut  string            `json:"checkOut"`
}

// LoadInput reads the room list from a JSON file.
func LoadInput(path string) ([]models.RoomInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	inputs, err := ParseInput(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return inputs, nil
}

// ParseInput accepts a list of URL strings, a list of objects carrying
// "url", "startUrl" or "startUrls", or one object with "startUrls" or "urls".
// Objects may add "checkIn"/"checkOut" dates, which apply to their URLs.
// Room ids are accepted in place of URLs. Input order is kept.
func ParseInput(data []byte) ([]models.RoomInput, error) {
	data = bytes.TrimSpace(data)
	var inputs []models.RoomInput
	var errs []error

	switch {
	case len(data) > 0 && data[0] == '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("invalid input JSON: %w", err)
		}
		for _, item := range items {
			in, err := parseItem(item, nil)
			inputs = append(inputs, in...)
			errs = append(errs, err)
		}
	case len(data) > 0 && data[0] == '{':
		var entry inputEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			return nil, fmt.Errorf("invalid input JSON: %w", err)
		}
		list := entry.StartURLs
		if len(list) == 0 {
			list = entry.URLs
		}
		dates, err := models.ParseDateRange(entry.CheckIn, entry.CheckOut)
		if err != nil {
			return nil, err
		}
		for _, item := range list {
			in, err := parseItem(item, dates)
			inputs = append(inputs, in...)
			errs = append(errs, err)
		}
	default:
		return nil, errors.New("unsupported input JSON structure for URLs")
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, errors.New("no URLs found in the input")
	}
	return inputs, nil
}

// parseItem handles one list element: a string or an entry object.
func parseItem(raw json.RawMessage, dates *models.DateRange) ([]models.RoomInput, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		in, err := newRoomInput(s, dates)
		if err != nil {
			return nil, err
		}
		return []models.RoomInput{in}, nil
	}

	var entry inputEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("unsupported input entry %s", raw)
	}
	entryDates, err := models.ParseDateRange(entry.CheckIn, entry.CheckOut)
	if err != nil {
		return nil, err
	}
	if entryDates == nil {
		entryDates = dates
	}

	switch {
	case entry.StartURL != "":
		in, err := newRoomInput(entry.StartURL, entryDates)
		if err != nil {
			return nil, err
		}
		return []models.RoomInput{in}, nil
	case entry.URL != "":
		in, err := newRoomInput(entry.URL, entryDates)
		if err != nil {
			return nil, err
		}
		return []models.RoomInput{in}, nil
	case len(entry.StartURLs) > 0:
		var out []models.RoomInput
		var errs []error
		for _, item := range entry.StartURLs {
			in, err := parseItem(item, entryDates)
			out = append(out, in...)
			errs = append(errs, err)
		}
		return out, errors.Join(errs...)
	}
	return nil, nil
}

// newRoomInput canonicalizes the URL. Dates not given explicitly are taken
// from the URL's check_in/check_out query.
func newRoomInput(raw string, dates *models.DateRange) (models.RoomInput, error) {
	canonical, err := airbnb.CanonicalRoomURL(raw)
	if err != nil {
		return models.RoomInput{}, err
	}
	if dates == nil {
		if u, err := url.Parse(strings.TrimSpace(raw)); err == nil {
			q := u.Query()
			dates, err = models.ParseDateRange(q.Get("check_in"), q.Get("check_out"))
			if err != nil {
				return models.RoomInput{}, fmt.Errorf("room %s: %w", raw, err)
			}
		}
	}
	return models.RoomInput{URL: canonical, Dates: dates}, nil
}
