package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"pricetrack/internal/config"
)

// ErrRendererUnavailable marks a rendering-engine startup failure (browser
// missing, launch or connect refused). Unlike page-specific noise this is an
// environment problem, so it propagates to the caller instead of degrading to
// a placeholder.
var ErrRendererUnavailable = errors.New("renderer unavailable")

// Renderer is the heavy tier: it executes page scripts and returns the final
// document for pages whose price is populated client-side.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// RodRenderer drives a headless Chromium via the DevTools protocol. Each
// Render call launches its own browser and tears it down on every exit path,
// so a mid-extraction failure cannot leak the process.
type RodRenderer struct {
	UserAgent string
	Timeout   time.Duration
	Bin       string
}

func NewRodRenderer(cfg config.ScraperConfig) *RodRenderer {
	timeout := cfg.RenderTimeout
	if timeout <= 0 {
		timeout = 50 * time.Second
	}
	return &RodRenderer{
		UserAgent: cfg.UserAgent,
		Timeout:   timeout,
		Bin:       cfg.BrowserBin,
	}
}

func (r *RodRenderer) Render(ctx context.Context, url string) (string, error) {
	l := launcher.New().
		Headless(true).
		NoSandbox(true).
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-gpu").
		Set("window-size", "1920,1080")
	if r.Bin != "" {
		l = l.Bin(r.Bin)
	}
	defer l.Cleanup()

	controlURL, err := l.Launch()
	if err != nil {
		return "", fmt.Errorf("%w: launch: %v", ErrRendererUnavailable, err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return "", fmt.Errorf("%w: connect: %v", ErrRendererUnavailable, err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return "", fmt.Errorf("open page: %w", err)
	}
	defer page.Close()

	if r.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: r.UserAgent}); err != nil {
			return "", fmt.Errorf("set user agent: %w", err)
		}
	}

	page = page.Timeout(r.Timeout)
	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("navigate: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("wait load: %w", err)
	}
	// Equivalent of puppeteer's networkidle2: give late XHR-driven price
	// widgets a chance to settle before reading the DOM.
	wait := page.WaitRequestIdle(800*time.Millisecond, nil, nil, nil)
	wait()

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("read html: %w", err)
	}
	return html, nil
}
