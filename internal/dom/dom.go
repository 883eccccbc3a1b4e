// Package dom models a scraped page as a read-only element tree, exposing
// only the surface the extraction heuristics need: visible text, rendered
// height, sibling walks, and ancestor lookups.
package dom

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HeightAttr is the attribute the browser measurement pass stamps each
// element's rendered height into. Statically fetched pages carry no
// measurements; those elements report an unknown height.
const HeightAttr = "data-rr-height"

// HeightUnknown is returned by Element.Height when no measurement exists.
const HeightUnknown = -1

var whitespaceRE = regexp.MustCompile(`\s+`)

// Document holds a parsed page. The underlying tree is owned by the
// document; callers must treat elements as read-only views and must not
// hold them across a re-snapshot of the page.
type Document struct {
	doc *goquery.Document
}

// Element is a single element node within a Document.
type Element struct {
	sel *goquery.Selection
}

// Parse builds a Document from raw HTML. Script, style, and noscript
// subtrees are removed up front so that Text always reflects visible
// content only.
func Parse(src string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find("script, style, noscript, template").Remove()
	return &Document{doc: doc}, nil
}

// Find returns all elements matching the given CSS selector, in document
// order.
func (d *Document) Find(selector string) []*Element {
	return wrapAll(d.doc.Find(selector))
}

// Text returns an element's visible text with runs of whitespace collapsed
// to single spaces and the ends trimmed.
func (e *Element) Text() string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(e.sel.Text(), " "))
}

// Tag returns the element's lowercase tag name.
func (e *Element) Tag() string {
	return goquery.NodeName(e.sel)
}

// Height returns the element's rendered height in layout units, or
// HeightUnknown when the page carries no measurement for it.
func (e *Element) Height() float64 {
	raw, ok := e.sel.Attr(HeightAttr)
	if !ok {
		return HeightUnknown
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || h < 0 {
		return HeightUnknown
	}
	return h
}

// NextElements returns up to max immediate following element siblings, in
// document order. Text and comment nodes between elements are skipped.
func (e *Element) NextElements(max int) []*Element {
	out := make([]*Element, 0, max)
	cur := e.sel.Next()
	for cur.Length() > 0 && len(out) < max {
		out = append(out, &Element{sel: cur})
		cur = cur.Next()
	}
	return out
}

// ClosestAncestor returns the nearest enclosing element matching the given
// selector, excluding the element itself, or nil when none exists.
func (e *Element) ClosestAncestor(selector string) *Element {
	anc := e.sel.Parent().Closest(selector)
	if anc.Length() == 0 {
		return nil
	}
	return &Element{sel: anc.First()}
}

// Descendants returns all descendant elements matching the given selector,
// in document order.
func (e *Element) Descendants(selector string) []*Element {
	return wrapAll(e.sel.Find(selector))
}

func wrapAll(sel *goquery.Selection) []*Element {
	out := make([]*Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, &Element{sel: s})
	})
	return out
}
