// Package platform maps product-page URLs to merchant identifiers.
package platform

import "strings"

// Platform identifies the merchant a tracked URL belongs to.
type Platform string

const (
	Amazon          Platform = "amazon"
	Flipkart        Platform = "flipkart"
	Myntra          Platform = "myntra"
	Ajio            Platform = "ajio"
	Snapdeal        Platform = "snapdeal"
	TataCliq        Platform = "tatacliq"
	Nykaa           Platform = "nykaa"
	Meesho          Platform = "meesho"
	JioMart         Platform = "jiomart"
	Croma           Platform = "croma"
	RelianceDigital Platform = "reliancedigital"
	Unknown         Platform = "unknown"
)

// rules are tested in order against the lower-cased URL; first match wins.
var rules = []struct {
	substr string
	id     Platform
}{
	{"amazon", Amazon},
	{"flipkart", Flipkart},
	{"myntra", Myntra},
	{"ajio", Ajio},
	{"snapdeal", Snapdeal},
	{"tatacliq", TataCliq},
	{"nykaa", Nykaa},
	{"meesho", Meesho},
	{"jiomart", JioMart},
	{"croma", Croma},
	{"reliancedigital", RelianceDigital},
}

// Detect returns the merchant for url, or Unknown. It never fails.
func Detect(url string) Platform {
	if url == "" {
		return Unknown
	}
	u := strings.ToLower(url)
	for _, r := range rules {
		if strings.Contains(u, r.substr) {
			return r.id
		}
	}
	return Unknown
}

// All lists every known merchant (excluding Unknown).
func All() []Platform {
	out := make([]Platform, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.id)
	}
	return out
}

func (p Platform) String() string { return string(p) }

// Valid reports whether p is a known merchant or the Unknown sentinel.
func Valid(p Platform) bool {
	if p == Unknown {
		return true
	}
	for _, r := range rules {
		if r.id == p {
			return true
		}
	}
	return false
}
