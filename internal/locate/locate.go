// Package locate implements the two-stage heuristic that finds a job
// description inside an arbitrary listing page: a heading locator that spots
// the "About the job" section header, and a body resolver that walks out
// from the heading to the adjacent block of substantial text.
package locate

import (
	"errors"
	"strings"
	"unicode"

	"github.com/jonathan/resume-radar/internal/dom"
)

const (
	// minBodyChars is the minimum acceptable length for a description body.
	// Shorter candidates are treated as toggles, dividers, or decoration.
	minBodyChars = 50
	// minSiblingHeight is the minimum rendered height for a sibling
	// candidate. Shorter elements are spacers or icon rows.
	minSiblingHeight = 40
	// maxSiblingHops bounds the forward sibling walk from the heading.
	maxSiblingHops = 5
	// ancestorMinChars is the length threshold for candidates collected
	// inside the enclosing block during the fallback search.
	ancestorMinChars = 60
)

// Job sites wrap the section header in wildly different markup; the scan
// covers heading tags, inline text tags, and generic containers. Categories
// are tried most-specific first: a container's text always includes the text
// of the heading it wraps, so scanning containers alongside headings would
// only ever surface an outer wrapper.
var headingScanCategories = []string{
	"h1, h2, h3, h4, h5, h6",
	"span, p, strong, b",
	"div, section",
}

const (
	blockAncestorSelector = "div, section, article, main"
	textBearingSelector   = "p, div, span, li"
)

// Exact user-facing messages, surfaced verbatim by the scan flow.
var (
	ErrHeadingNotFound = errors.New("Could not find 'About this job' section on this page.")
	ErrBodyNotFound    = errors.New("Could not find job description body. LinkedIn page structure may have changed.")
)

// FindHeading returns the element most likely to be the job description
// section header, scanning each tag category in document order. The primary
// pass matches
// "About the job" / "About this job" ignoring case and punctuation; if
// nothing matches, a looser pass accepts any element whose trimmed text
// contains "about". The loose pass can hit earlier look-alike headings
// ("About the company"); that is an accepted limitation of the heuristic.
func FindHeading(doc *dom.Document) (*dom.Element, bool) {
	for _, category := range headingScanCategories {
		for _, el := range doc.Find(category) {
			if strings.Contains(lettersOnly(el.Text()), "aboutthejob") {
				return el, true
			}
		}
	}
	for _, category := range headingScanCategories {
		for _, el := range doc.Find(category) {
			if strings.Contains(strings.ToLower(el.Text()), "about") {
				return el, true
			}
		}
	}
	return nil, false
}

// ResolveBody finds the substantial text block adjacent to a located
// heading. Tier one walks forward through immediate siblings, skipping
// anything too short or too flat to be body text. Tier two falls back to
// the nearest enclosing block and takes the first text-bearing descendant
// of meaningful length. Candidates under minBodyChars never resolve.
func ResolveBody(heading *dom.Element) (string, bool) {
	for _, sib := range heading.NextElements(maxSiblingHops) {
		text := sib.Text()
		if len(text) < minBodyChars {
			continue
		}
		if h := sib.Height(); h != dom.HeightUnknown && h < minSiblingHeight {
			continue
		}
		return text, true
	}

	block := heading.ClosestAncestor(blockAncestorSelector)
	if block == nil {
		return "", false
	}
	for _, el := range block.Descendants(textBearingSelector) {
		text := el.Text()
		if len(text) > ancestorMinChars {
			return text, true
		}
	}
	return "", false
}

// Extract runs the full heuristic against a page snapshot and returns the
// job description body text.
func Extract(doc *dom.Document) (string, error) {
	heading, ok := FindHeading(doc)
	if !ok {
		return "", ErrHeadingNotFound
	}
	body, ok := ResolveBody(heading)
	if !ok {
		return "", ErrBodyNotFound
	}
	return body, nil
}

// lettersOnly lowercases s and strips every non-letter rune, so that
// "✦ About-THE-Job:" and "about the job" normalize identically.
func lettersOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
