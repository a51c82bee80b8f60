package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"pricetrack/internal/platform"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	return doc
}

func TestParseStructuredDataProduct(t *testing.T) {
	doc := mustDoc(t, `<html><head>
<script type="application/ld+json">
{"@type":"Product","name":"Sony WH-1000XM5","image":"https://img.example/xm5.jpg",
 "offers":{"price":"24990","priceSpecification":{"maxPrice":34990}}}
</script>
</head><body></body></html>`)

	res, ok := ParseStructuredData(doc, platform.Croma)
	if !ok {
		t.Fatalf("expected a product block")
	}
	if res.Name != "Sony WH-1000XM5" {
		t.Fatalf("name = %q", res.Name)
	}
	if res.CurrentPrice.String() != "24990" {
		t.Fatalf("current price = %s", res.CurrentPrice)
	}
	if res.OriginalPrice.String() != "34990" {
		t.Fatalf("original price = %s", res.OriginalPrice)
	}
	if res.ImageURL != "https://img.example/xm5.jpg" {
		t.Fatalf("image = %q", res.ImageURL)
	}
	if res.Platform != platform.Croma {
		t.Fatalf("platform = %q", res.Platform)
	}
}

func TestParseStructuredDataShapes(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "top-level array",
			html: `<script type="application/ld+json">
[{"@type":"BreadcrumbList"},{"@type":"Product","name":"A","offers":{"price":499}}]
</script>`,
			want: "499",
		},
		{
			name: "graph collection",
			html: `<script type="application/ld+json">
{"@graph":[{"@type":"WebSite"},{"@type":"Product","name":"B","offers":[{"price":"1,299"}]}]}
</script>`,
			// comma-grouped strings are not valid decimals; the block is
			// still claimed, with highPrice/price both unusable.
			want: "0",
		},
		{
			name: "offer list with highPrice fallback",
			html: `<script type="application/ld+json">
{"@type":"Product","name":"C","offers":[{"price":0,"highPrice":899}]}
</script>`,
			want: "899",
		},
	}
	for _, tt := range tests {
		doc := mustDoc(t, "<html><head>"+tt.html+"</head><body></body></html>")
		res, ok := ParseStructuredData(doc, platform.Unknown)
		if !ok {
			t.Fatalf("%s: expected a product block", tt.name)
		}
		if res.CurrentPrice.String() != tt.want {
			t.Fatalf("%s: price = %s, want %s", tt.name, res.CurrentPrice, tt.want)
		}
	}
}

func TestParseStructuredDataSkipsMalformedAndNonProduct(t *testing.T) {
	doc := mustDoc(t, `<html><head>
<script type="application/ld+json">{not json</script>
<script type="application/ld+json">{"@type":"Organization","name":"Shop"}</script>
<script type="application/ld+json">{"@type":"Product","name":"NoOffers"}</script>
<script type="application/ld+json">{"@type":"Product","name":"Real","offers":{"price":150}}</script>
</head><body></body></html>`)

	res, ok := ParseStructuredData(doc, platform.Unknown)
	if !ok {
		t.Fatalf("expected the last block to match")
	}
	if res.Name != "Real" || res.CurrentPrice.String() != "150" {
		t.Fatalf("got %q at %s", res.Name, res.CurrentPrice)
	}
}

func TestParseStructuredDataOriginalPriceSanity(t *testing.T) {
	doc := mustDoc(t, `<html><head>
<script type="application/ld+json">
{"@type":"Product","name":"Noisy","offers":{"price":66999,"priceSpecification":{"maxPrice":1699900}}}
</script>
</head><body></body></html>`)

	res, ok := ParseStructuredData(doc, platform.Flipkart)
	if !ok {
		t.Fatalf("expected a product block")
	}
	if res.CurrentPrice.String() != "66999" {
		t.Fatalf("current price = %s", res.CurrentPrice)
	}
	if !res.OriginalPrice.IsZero() {
		t.Fatalf("original price %s survived the 20x sanity check", res.OriginalPrice)
	}
}

func TestParseStructuredDataImageShapes(t *testing.T) {
	tests := []struct {
		name string
		img  string
		want string
	}{
		{"bare url", `"https://a/1.jpg"`, "https://a/1.jpg"},
		{"list", `["https://a/2.jpg","https://a/3.jpg"]`, "https://a/2.jpg"},
		{"image object", `{"@type":"ImageObject","url":"https://a/4.jpg"}`, "https://a/4.jpg"},
	}
	for _, tt := range tests {
		doc := mustDoc(t, `<html><head><script type="application/ld+json">
{"@type":"Product","name":"X","image":`+tt.img+`,"offers":{"price":10}}
</script></head><body></body></html>`)
		res, ok := ParseStructuredData(doc, platform.Unknown)
		if !ok {
			t.Fatalf("%s: expected a product block", tt.name)
		}
		if res.ImageURL != tt.want {
			t.Fatalf("%s: image = %q, want %q", tt.name, res.ImageURL, tt.want)
		}
	}
}
