// tab.go queries the active tab of an already-running browser over the
// DevTools protocol. The capability is optional: a missing or unreachable
// browser yields "no tab" rather than an error.
package fetch

import (
	"context"

	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
)

// ActiveTabURL returns the URL of the active page tab of the browser
// reachable at devtoolsURL (for example "ws://127.0.0.1:9222"). It returns
// ("", false) when the capability is unavailable for any reason.
func ActiveTabURL(ctx context.Context, devtoolsURL string) (string, bool) {
	if devtoolsURL == "" {
		return "", false
	}

	allocCtx, cancel := chromedp.NewRemoteAllocator(ctx, devtoolsURL)
	defer cancel()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	infos, err := chromedp.Targets(browserCtx)
	if err != nil {
		return "", false
	}

	if url, ok := pickActiveTab(infos); ok {
		return url, true
	}
	return "", false
}

// pickActiveTab selects the tab the user is most plausibly looking at: the
// first unattached page target with a real URL.
func pickActiveTab(infos []*target.Info) (string, bool) {
	for _, info := range infos {
		if info.Type != "page" || info.URL == "" || info.URL == "about:blank" {
			continue
		}
		if info.Attached {
			continue
		}
		return info.URL, true
	}
	return "", false
}
