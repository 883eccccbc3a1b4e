// browser.go provides headless browser rendering for SPA sites, including
// the element height measurement pass the extraction heuristics rely on.
package fetch

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/jonathan/resume-radar/internal/dom"
)

// heightStampScript records each element's rendered height on the element
// itself, so the heights survive into the serialized HTML that the
// extraction heuristics parse. A plain measurement pass; it does not alter
// layout or visible content.
const heightStampScript = `(function() {
	var all = document.querySelectorAll('body *');
	for (var i = 0; i < all.length; i++) {
		var h = all[i].getBoundingClientRect().height;
		all[i].setAttribute('` + dom.HeightAttr + `', h.toFixed(1));
	}
	return all.length;
})()`

// Rendered loads a page in a headless browser, waits for it to settle,
// stamps rendered element heights, and returns the resulting HTML.
// Requires Chrome/Chromium to be installed on the system.
func Rendered(ctx context.Context, url string, timeout time.Duration, verbose bool) (string, error) {
	if verbose {
		log.Printf("[BROWSER] Starting headless browser for: %s", url)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var stamped int
	var html string

	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Give client-side rendering a moment to fill the listing in.
		chromedp.Sleep(3*time.Second),
		chromedp.Evaluate(heightStampScript, &stamped),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	if verbose {
		log.Printf("[BROWSER] Rendered HTML: %d bytes, %d elements measured", len(html), stamped)
	}

	return html, nil
}

// RenderedSimple is a simplified version that uses the default timeout.
func RenderedSimple(ctx context.Context, url string, verbose bool) (string, error) {
	return Rendered(ctx, url, DefaultTimeout, verbose)
}
