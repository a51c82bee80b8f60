package scraper

import (
	"github.com/PuerkitoBio/goquery"

	"pricetrack/internal/platform"
)

// Selector sets below track each merchant's current product-page markup. They
// rot as merchants redesign; the structured-data pass and the generic fallback
// keep extraction alive while a set is stale.

type amazonAdapter struct{}

func (amazonAdapter) Extract(doc *goquery.Document) Result {
	name := firstText(doc,
		"#productTitle",
		"h1 span#productTitle",
		"span.product-title-word-break",
	)
	price := parsePriceText(firstText(doc,
		".a-price-whole",
		".a-price .a-offscreen",
		"#priceblock_ourprice",
		"#priceblock_dealprice",
	))
	original := parsePriceText(firstText(doc,
		".a-text-price .a-offscreen",
		"#priceblock_saleprice",
	))
	image := firstAttr(doc,
		[2]string{"#landingImage", "data-old-hires"},
		[2]string{"#landingImage", "src"},
		[2]string{".a-dynamic-image", "src"},
	)
	if name == "" {
		name = "Amazon Product"
	}
	return Result{Name: name, CurrentPrice: price, OriginalPrice: original, ImageURL: image, Platform: platform.Amazon}
}

type flipkartAdapter struct{}

func (flipkartAdapter) Extract(doc *goquery.Document) Result {
	name := firstText(doc, ".B_NuCI", ".VU-ZEz", "h1")
	price := parsePriceText(firstText(doc, "._30jeq3._16Jk6d", "._30jeq3"))
	original := parsePriceText(firstText(doc, "._3I9_wc._2p6lqe", "._3I9_wc"))
	image := firstAttr(doc,
		[2]string{"._396cs4._2amPTt img", "src"},
		[2]string{"img._2r_T1I", "src"},
	)
	if name == "" {
		name = "Flipkart Product"
	}
	return Result{Name: name, CurrentPrice: price, OriginalPrice: original, ImageURL: image, Platform: platform.Flipkart}
}

type myntraAdapter struct{}

func (myntraAdapter) Extract(doc *goquery.Document) Result {
	name := firstText(doc, ".pdp-title", "h1.pdp-title")
	price := parsePriceText(firstText(doc, ".pdp-price strong"))
	image := firstAttr(doc, [2]string{".image-grid-image", "src"})
	if name == "" {
		name = "Myntra Product"
	}
	return Result{Name: name, CurrentPrice: price, ImageURL: image, Platform: platform.Myntra}
}

type ajioAdapter struct{}

func (ajioAdapter) Extract(doc *goquery.Document) Result {
	name := firstText(doc, "h1.prod-title")
	price := parsePriceText(firstText(doc, ".prod-sp"))
	image := firstAttr(doc, [2]string{".product-image img", "src"})
	if name == "" {
		name = "Ajio Product"
	}
	return Result{Name: name, CurrentPrice: price, ImageURL: image, Platform: platform.Ajio}
}

type snapdealAdapter struct{}

func (snapdealAdapter) Extract(doc *goquery.Document) Result {
	name := firstText(doc, "h1.pdp-e-i-head")
	price := parsePriceText(firstText(doc, ".payBlkBig", ".pdp-final-price"))
	image := firstAttr(doc,
		[2]string{".cloudzoom", "src"},
		[2]string{".pdp-image-gallery-small", "src"},
	)
	if name == "" {
		name = "Snapdeal Product"
	}
	return Result{Name: name, CurrentPrice: price, ImageURL: image, Platform: platform.Snapdeal}
}

type tatacliqAdapter struct{}

func (tatacliqAdapter) Extract(doc *goquery.Document) Result {
	name := firstText(doc, ".ProductDescriptionPage__productName", "h1")
	price := parsePriceText(firstText(doc, ".ProductDetailsMainCard__price"))
	// Tata CLiQ lazy-loads its gallery; the structured-data pass usually wins.
	image := firstAttr(doc, [2]string{".ImageGallery__image img", "src"})
	if name == "" {
		name = "Tata CLiQ Product"
	}
	return Result{Name: name, CurrentPrice: price, ImageURL: image, Platform: platform.TataCliq}
}

type nykaaAdapter struct{}

func (nykaaAdapter) Extract(doc *goquery.Document) Result {
	name := firstText(doc, ".product-title", "h1")
	price := parsePriceText(firstText(doc, ".css-1jczs19", ".post-card__content-price-offer"))
	image := firstAttr(doc, [2]string{".css-12ydk9l img", "src"})
	if name == "" {
		name = "Nykaa Product"
	}
	return Result{Name: name, CurrentPrice: price, ImageURL: image, Platform: platform.Nykaa}
}

type meeshoAdapter struct{}

func (meeshoAdapter) Extract(doc *goquery.Document) Result {
	name := firstText(doc, "h1")
	price := parsePriceText(firstText(doc, "h4"))
	image := firstAttr(doc, [2]string{"img", "src"})
	if name == "" {
		name = "Meesho Product"
	}
	return Result{Name: name, CurrentPrice: price, ImageURL: image, Platform: platform.Meesho}
}

type jiomartAdapter struct{}

func (jiomartAdapter) Extract(doc *goquery.Document) Result {
	name := firstText(doc, "#pdp_product_name")
	price := parsePriceText(firstText(doc, "#pdp_product_price", ".price-box .price"))
	image := firstAttr(doc, [2]string{".large-image img", "src"})
	if name == "" {
		name = "JioMart Product"
	}
	return Result{Name: name, CurrentPrice: price, ImageURL: image, Platform: platform.JioMart}
}

type cromaAdapter struct{}

func (cromaAdapter) Extract(doc *goquery.Document) Result {
	name := firstText(doc, "h1.pd-title")
	price := parsePriceText(firstText(doc, ".new-price"))
	image := firstAttr(doc, [2]string{"#0image", "src"})
	if name == "" {
		name = "Croma Product"
	}
	return Result{Name: name, CurrentPrice: price, ImageURL: image, Platform: platform.Croma}
}

type relianceDigitalAdapter struct{}

func (relianceDigitalAdapter) Extract(doc *goquery.Document) Result {
	name := firstText(doc, "h1.pdp__title")
	price := parsePriceText(firstText(doc, ".pdp__offerPrice"))
	image := firstAttr(doc, [2]string{".pdp__mainImg", "src"})
	if name == "" {
		name = "Reliance Digital Product"
	}
	return Result{Name: name, CurrentPrice: price, ImageURL: image, Platform: platform.RelianceDigital}
}
