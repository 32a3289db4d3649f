// Package goquery implements mos.Navigator on top of goquery documents.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mos"
)

// Ensure Navigator implements mos.Navigator at compile time.
var _ mos.Navigator = (*Navigator)(nil)

// Navigator parses Matricula archive pages.
type Navigator struct{}

// NewNavigator creates a new Navigator.
func NewNavigator() *Navigator {
	return &Navigator{}
}

// Parse builds a traversable document from page HTML.
func (n *Navigator) Parse(html string, pageURL string) (mos.Document, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, mos.Errorf(mos.EPARSE, "invalid page URL %q: %v", pageURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, mos.Errorf(mos.EPARSE, "failed to parse HTML of %s: %v", pageURL, err)
	}

	return &Document{doc: doc, base: base}, nil
}

// Ensure Document implements mos.Document at compile time.
var _ mos.Document = (*Document)(nil)

// Document is a parsed archive page.
type Document struct {
	doc  *goquery.Document
	base *url.URL
}

// NewDocument wraps an already parsed goquery document fetched from base.
func NewDocument(doc *goquery.Document, base *url.URL) *Document {
	return &Document{doc: doc, base: base}
}

// URL returns the address the page was fetched from.
func (d *Document) URL() string {
	return d.base.String()
}

// RecordPages returns the record pages listed in the registers table.
func (d *Document) RecordPages() []mos.RecordPageRef {
	return ListRecordPages(d.doc, d.base)
}

// PageLinks returns the remaining pagination pages of a registers page.
func (d *Document) PageLinks() []string {
	return ListPageLinks(d.doc, d.base)
}

// Images returns the scanned images referenced by the page viewer.
func (d *Document) Images() []mos.ImageRef {
	return ListImages(d.doc, d.base)
}

// DisplayName returns the human-readable page title.
func (d *Document) DisplayName() (string, bool) {
	return ExtractDisplayName(d.doc)
}
