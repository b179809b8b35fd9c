package airbnb

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"airbnb-rooms-scraper/models"
)

const defaultBaseURL = "https://www.airbnb.com"

var (
	roomPathRegex = regexp.MustCompile(`^/rooms/(?:plus/)?(\d+)/?$`)
	roomIDRegex   = regexp.MustCompile(`^\d+$`)
)

// CanonicalRoomURL turns a room URL or a bare numeric room id into an
// absolute room URL without query or fragment.
func CanonicalRoomURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if roomIDRegex.MatchString(raw) {
		return defaultBaseURL + "/rooms/" + raw, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid room URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return "", fmt.Errorf("invalid room URL %q: not an absolute http(s) URL", raw)
	}
	if !roomPathRegex.MatchString(u.Path) {
		return "", fmt.Errorf("invalid room URL %q: path is not /rooms/<id>", raw)
	}
	u.RawQuery, u.Fragment = "", ""
	u.Path = strings.TrimSuffix(u.Path, "/")
	return u.String(), nil
}

// RoomID returns the numeric id of a room URL.
func RoomID(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	m := roomPathRegex.FindStringSubmatch(u.Path)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// RequestURL is the URL actually loaded for a room: the given URL with the
// stay dates set, so the page shows a price for them.
func RequestURL(roomURL string, dates *models.DateRange) (string, error) {
	u, err := url.Parse(roomURL)
	if err != nil {
		return "", fmt.Errorf("invalid room URL %q: %w", roomURL, err)
	}
	q := u.Query()
	q.Del("check_in")
	q.Del("check_out")
	if dates != nil {
		q.Set("check_in", dates.CheckIn.Format(models.DateLayout))
		q.Set("check_out", dates.CheckOut.Format(models.DateLayout))
		if q.Get("adults") == "" {
			q.Set("adults", "1")
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// isRoomPath reports whether a final (post-redirect) URL still points at a room.
func isRoomPath(u *url.URL) bool {
	return u != nil && roomPathRegex.MatchString(u.Path)
}
