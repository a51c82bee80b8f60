package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"pricetrack/internal/platform"
)

// Adapter maps a parsed document to a product snapshot using one merchant's
// markup. Adapters default missing fields to zero/empty instead of failing:
// the pipeline's tier escalation handles a zero price.
type Adapter interface {
	Extract(doc *goquery.Document) Result
}

// adapters is the merchant dispatch table. New merchants are added here as new
// variants, never by subclassing an existing one.
var adapters = map[platform.Platform]Adapter{
	platform.Amazon:          amazonAdapter{},
	platform.Flipkart:        flipkartAdapter{},
	platform.Myntra:          myntraAdapter{},
	platform.Ajio:            ajioAdapter{},
	platform.Snapdeal:        snapdealAdapter{},
	platform.TataCliq:        tatacliqAdapter{},
	platform.Nykaa:           nykaaAdapter{},
	platform.Meesho:          meeshoAdapter{},
	platform.JioMart:         jiomartAdapter{},
	platform.Croma:           cromaAdapter{},
	platform.RelianceDigital: relianceDigitalAdapter{},
}

// AdapterFor returns the merchant adapter for p, or the generic fallback.
func AdapterFor(p platform.Platform) Adapter {
	if a, ok := adapters[p]; ok {
		return a
	}
	return GenericAdapter{Platform: p}
}

var nonDigits = regexp.MustCompile(`[^0-9]`)

// parsePriceText strips currency symbols and grouping from a price label and
// returns the integer rupee amount, or zero when no digits remain.
func parsePriceText(s string) decimal.Decimal {
	digits := nonDigits.ReplaceAllString(s, "")
	if digits == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// firstText returns the trimmed text of the first selector that matches
// non-empty content.
func firstText(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// firstAttr returns the first non-empty attribute value across the given
// selector/attribute pairs.
func firstAttr(doc *goquery.Document, pairs ...[2]string) string {
	for _, pair := range pairs {
		if val, ok := doc.Find(pair[0]).First().Attr(pair[1]); ok && strings.TrimSpace(val) != "" {
			return strings.TrimSpace(val)
		}
	}
	return ""
}
