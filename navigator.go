package mos

// Document is a parsed archive page.
// Methods never fail: markup that does not match the expected structure
// yields empty results.
type Document interface {
	// URL returns the address the page was fetched from.
	URL() string

	// RecordPages returns the record pages listed on a registers page,
	// in order of appearance.
	RecordPages() []RecordPageRef

	// PageLinks returns the URLs of the remaining pagination pages of a
	// registers page. The document itself is the first page.
	PageLinks() []string

	// Images returns the scanned images of a record page in physical
	// page order.
	Images() []ImageRef

	// DisplayName returns a human-readable parish or book title.
	// The bool result is false if the page carries no such label.
	DisplayName() (string, bool)
}

// Navigator parses archive pages.
type Navigator interface {
	// Parse builds a Document from page HTML.
	// Returns EPARSE if the HTML cannot be parsed at all.
	Parse(html string, pageURL string) (Document, error)
}
