package extractors

import (
	"regexp"
	"strconv"
	"strings"

	"airbnb-rooms-scraper/models"
)

var amountRegex = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// Price reads the displayed price from the booking sidebar. A discounted
// price is the amount and the struck-through price becomes OriginalAmount.
// A price line that cannot be parsed yields nil plus a warning.
func Price(doc models.RawListingDocument) (*models.PriceInfo, *models.DataQualityWarning) {
	payload, ok := section(doc, SectionBookIt)
	if !ok {
		return nil, nil
	}
	line, ok := payload.Map("structuredDisplayPrice", "primaryLine")
	if !ok {
		return nil, nil
	}

	raw, ok := firstText(line, []any{"discountedPrice"}, []any{"price"})
	if !ok {
		return nil, &models.DataQualityWarning{Field: "price", Message: "price line has no amount"}
	}
	amount, currency, ok := ParseMoney(raw)
	if !ok || amount <= 0 || currency == "" {
		return nil, &models.DataQualityWarning{Field: "price", Message: "unparseable price " + strconv.Quote(raw)}
	}

	price := &models.PriceInfo{Amount: amount, Currency: currency, Raw: raw}
	if original, ok := line.Text("originalPrice"); ok {
		if v, _, ok := ParseMoney(original); ok && v > amount {
			price.OriginalAmount = models.Float64(v)
		}
	}
	price.Qualifier, _ = line.Text("qualifier")
	return price, nil
}

// ParseMoney splits a display price such as "$1,234", "€ 95.50" or "420 kr"
// into amount and currency symbol.
func ParseMoney(s string) (float64, string, bool) {
	loc := amountRegex.FindStringIndex(s)
	if loc == nil {
		return 0, "", false
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(s[loc[0]:loc[1]], ",", ""), 64)
	if err != nil {
		return 0, "", false
	}
	currency := strings.TrimSpace(s[:loc[0]])
	if currency == "" {
		currency = strings.TrimSpace(s[loc[1]:])
	}
	if f := strings.Fields(currency); len(f) > 0 {
		currency = f[0]
	}
	return amount, currency, true
}
