package scraper

import (
	"github.com/shopspring/decimal"

	"pricetrack/internal/platform"
)

// maxOriginalPriceRatio guards against selector noise: a struck-through
// "original" price more than 20x the current price is not a real discount.
var maxOriginalPriceRatio = decimal.NewFromInt(20)

// Result is a normalized product snapshot produced by one pipeline run. It is
// transient: the caller owns it until it is persisted.
type Result struct {
	Name          string            `json:"name"`
	CurrentPrice  decimal.Decimal   `json:"currentPrice"`
	OriginalPrice decimal.Decimal   `json:"originalPrice"`
	ImageURL      string            `json:"imageUrl,omitempty"`
	Platform      platform.Platform `json:"platform"`
}

// HasPrice reports whether the extraction found a usable (positive) price.
func (r Result) HasPrice() bool {
	return r.CurrentPrice.IsPositive()
}

// sanitized applies the original-price sanity check and fills a fallback name.
func (r Result) sanitized() Result {
	if r.CurrentPrice.IsNegative() {
		r.CurrentPrice = decimal.Zero
	}
	if r.HasPrice() && r.OriginalPrice.GreaterThan(r.CurrentPrice.Mul(maxOriginalPriceRatio)) {
		r.OriginalPrice = decimal.Zero
	}
	if r.OriginalPrice.IsNegative() {
		r.OriginalPrice = decimal.Zero
	}
	return r
}

// Placeholder is the last-resort result when every tier came up empty.
func Placeholder(p platform.Platform) Result {
	return Result{
		Name:     "Product from " + p.String(),
		Platform: p,
	}
}
