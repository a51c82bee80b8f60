package scraper

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"pricetrack/internal/platform"
)

// ParseStructuredData scans embedded JSON-LD blocks for a schema.org Product
// with an offer price. Structured metadata is the highest-trust source, so it
// runs before any merchant adapter. The second return is false when no usable
// product block was found.
func ParseStructuredData(doc *goquery.Document, p platform.Platform) (Result, bool) {
	var out Result
	found := false

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var raw any
		if err := json.Unmarshal([]byte(sel.Text()), &raw); err != nil {
			return true // malformed block, keep scanning
		}
		for _, item := range flattenLDNodes(raw) {
			res, ok := productFromLDNode(item)
			if !ok {
				continue
			}
			res.Platform = p
			out = res.sanitized()
			found = true
			return false
		}
		return true
	})

	return out, found
}

// flattenLDNodes normalizes the three shapes JSON-LD ships in: a single
// object, a top-level array, or an @graph collection.
func flattenLDNodes(raw any) []map[string]any {
	switch v := raw.(type) {
	case []any:
		var out []map[string]any
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	case map[string]any:
		if graph, ok := v["@graph"].([]any); ok {
			var out []map[string]any
			for _, item := range graph {
				if m, ok := item.(map[string]any); ok {
					out = append(out, m)
				}
			}
			return out
		}
		return []map[string]any{v}
	default:
		return nil
	}
}

func productFromLDNode(node map[string]any) (Result, bool) {
	typ, _ := node["@type"].(string)
	if typ != "Product" && typ != "SoftwareApplication" {
		return Result{}, false
	}

	offer := firstOffer(node["offers"])
	if offer == nil {
		return Result{}, false
	}

	var res Result
	res.Name, _ = node["name"].(string)
	res.CurrentPrice = ldPrice(offer["price"])
	if !res.CurrentPrice.IsPositive() {
		res.CurrentPrice = ldPrice(offer["highPrice"])
	}
	if spec, ok := offer["priceSpecification"].(map[string]any); ok {
		res.OriginalPrice = ldPrice(spec["maxPrice"])
	}
	res.ImageURL = ldImage(node["image"])
	return res, true
}

func firstOffer(v any) map[string]any {
	switch offers := v.(type) {
	case map[string]any:
		return offers
	case []any:
		if len(offers) > 0 {
			if m, ok := offers[0].(map[string]any); ok {
				return m
			}
		}
	}
	return nil
}

// ldPrice accepts the number and string encodings both seen in the wild.
func ldPrice(v any) decimal.Decimal {
	switch price := v.(type) {
	case float64:
		return decimal.NewFromFloat(price)
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(price))
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// ldImage handles image as a bare URL, a list of URLs, or an ImageObject.
func ldImage(v any) string {
	switch img := v.(type) {
	case string:
		return img
	case []any:
		if len(img) > 0 {
			if s, ok := img[0].(string); ok {
				return s
			}
		}
	case map[string]any:
		if s, ok := img["url"].(string); ok {
			return s
		}
	}
	return ""
}
