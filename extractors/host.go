package extractors

import (
	"strings"

	"airbnb-rooms-scraper/models"
)

const hostedByPrefix = "Hosted by "

// HostDetails projects the host card onto HostInfo. A host section without a
// name or id yields nil plus a warning.
func HostDetails(doc models.RawListingDocument) (*models.HostInfo, *models.DataQualityWarning) {
	if payload, ok := section(doc, SectionMeetHost); ok {
		return validHost(meetYourHost(payload))
	}
	if payload, ok := section(doc, SectionHost); ok {
		return validHost(hostProfile(payload))
	}
	return nil, nil
}

func meetYourHost(payload models.RawListingDocument) *models.HostInfo {
	card, _ := payload.Map("cardData")
	host := &models.HostInfo{}
	host.Name, _ = card.Text("name")
	host.ID, _ = card.Text("userId")
	if v, ok := card.Bool("isSuperhost"); ok {
		host.IsSuperhost = models.Bool(v)
	}
	if v, ok := card.Bool("isVerified"); ok {
		host.IsVerified = models.Bool(v)
	}
	if v, ok := card.Number("ratingAverage"); ok && v >= 0 {
		host.Rating = models.Float64(models.Round2(v))
	}
	if n, ok := card.Int("ratingCount"); ok && n >= 0 {
		host.ReviewsCount = models.Int(n)
	}
	if n, ok := card.Int("timeAsHost", "years"); ok && n >= 0 {
		host.YearsHosting = models.Int(n)
	}
	host.ProfilePictureURL, _ = card.Text("profilePictureUrl")
	host.About, _ = payload.Text("about")
	return host
}

func hostProfile(payload models.RawListingDocument) *models.HostInfo {
	host := &models.HostInfo{}
	if title, ok := payload.Text("title"); ok {
		host.Name = strings.TrimSpace(strings.TrimPrefix(title, hostedByPrefix))
	}
	host.ID, _ = payload.Text("hostAvatar", "userId")
	host.ProfilePictureURL, _ = payload.Text("hostAvatar", "avatarImage", "baseUrl")
	if v, ok := payload.Bool("hostAvatar", "isSuperhost"); ok {
		host.IsSuperhost = models.Bool(v)
	}
	return host
}

func validHost(host *models.HostInfo) (*models.HostInfo, *models.DataQualityWarning) {
	if host.Name == "" && host.ID == "" {
		return nil, &models.DataQualityWarning{Field: "hostDetails", Message: "host section has neither name nor id"}
	}
	return host, nil
}
