package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pricetrack/internal/platform"
)

// currencyToken matches a rupee-prefixed amount anywhere in the page text,
// with optional comma grouping ("₹1,29,900", "Rs. 499", "INR 70000").
var currencyToken = regexp.MustCompile(`(?i)(?:₹|Rs\.?|INR)\s*([\d,]+)`)

// GenericAdapter is the catch-all for unknown merchants: first heading as the
// name, first currency-prefixed numeric token in the body as the price.
type GenericAdapter struct {
	Platform platform.Platform
}

func (g GenericAdapter) Extract(doc *goquery.Document) Result {
	name := strings.TrimSpace(doc.Find("h1").First().Text())
	if name == "" {
		name = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if name == "" {
		name = "Product from " + g.Platform.String()
	}

	res := Result{Name: name, Platform: g.Platform}
	if m := currencyToken.FindStringSubmatch(doc.Find("body").Text()); m != nil {
		res.CurrentPrice = parsePriceText(m[1])
	}
	return res
}
