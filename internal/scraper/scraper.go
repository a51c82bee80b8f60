// Package scraper extracts product snapshots from merchant pages through an
// ordered chain of fallback tiers: plain fetch, then a scripted browser, each
// feeding structured-data parsing and merchant-specific adapters.
package scraper

import (
	"context"
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"pricetrack/internal/platform"
)

type Service struct {
	Fetcher  DocumentFetcher
	Renderer Renderer // nil disables the rendered tier
	Logger   *zap.Logger
}

// tier is one ordered step of the fallback chain. It either produces a parsed
// document or reports a tier failure the pipeline can skip past.
type tier struct {
	name string
	load func(ctx context.Context, url string) (*goquery.Document, error)
}

// Extract runs the full pipeline for a product URL. It never returns an error
// for a bad target page: every page-level failure degrades to a lower-trust
// result and, at worst, the placeholder. The only error path is a rendering
// engine that cannot start (ErrRendererUnavailable).
func (s *Service) Extract(ctx context.Context, url string) (Result, error) {
	p := platform.Detect(url)

	tiers := []tier{
		{name: "fast", load: s.fastDocument},
	}
	if s.Renderer != nil {
		tiers = append(tiers, tier{name: "rendered", load: s.renderedDocument})
	}

	for _, t := range tiers {
		doc, err := t.load(ctx, url)
		if err != nil {
			if errors.Is(err, ErrRendererUnavailable) {
				return Result{}, err
			}
			s.logger().Debug("extraction tier failed",
				zap.String("tier", t.name),
				zap.String("platform", p.String()),
				zap.Error(err),
			)
			continue
		}

		res := s.extractDocument(doc, p)
		if res.HasPrice() {
			s.logger().Info("extraction succeeded",
				zap.String("tier", t.name),
				zap.String("platform", p.String()),
				zap.String("price", res.CurrentPrice.String()),
			)
			return res, nil
		}
	}

	s.logger().Info("extraction exhausted all tiers, returning placeholder",
		zap.String("platform", p.String()),
	)
	return Placeholder(p), nil
}

// extractDocument applies the in-document strategy order: structured metadata
// first (highest trust), then the merchant adapter for the detected platform.
func (s *Service) extractDocument(doc *goquery.Document, p platform.Platform) Result {
	if res, ok := ParseStructuredData(doc, p); ok && res.HasPrice() {
		return res
	}
	res := AdapterFor(p).Extract(doc)
	res.Platform = p
	return res.sanitized()
}

func (s *Service) fastDocument(ctx context.Context, url string) (*goquery.Document, error) {
	return s.Fetcher.Fetch(ctx, url)
}

func (s *Service) renderedDocument(ctx context.Context, url string) (*goquery.Document, error) {
	html, err := s.Renderer.Render(ctx, url)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func (s *Service) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}
