package mock

import "github.com/fwojciec/mos"

var (
	_ mos.Navigator = (*Navigator)(nil)
	_ mos.Document  = (*Document)(nil)
)

// Navigator is a mock implementation of mos.Navigator.
type Navigator struct {
	ParseFn func(html string, pageURL string) (mos.Document, error)
}

func (n *Navigator) Parse(html string, pageURL string) (mos.Document, error) {
	return n.ParseFn(html, pageURL)
}

// Document is a mock implementation of mos.Document.
type Document struct {
	URLFn         func() string
	RecordPagesFn func() []mos.RecordPageRef
	PageLinksFn   func() []string
	ImagesFn      func() []mos.ImageRef
	DisplayNameFn func() (string, bool)
}

func (d *Document) URL() string {
	return d.URLFn()
}

func (d *Document) RecordPages() []mos.RecordPageRef {
	return d.RecordPagesFn()
}

func (d *Document) PageLinks() []string {
	return d.PageLinksFn()
}

func (d *Document) Images() []mos.ImageRef {
	return d.ImagesFn()
}

func (d *Document) DisplayName() (string, bool) {
	return d.DisplayNameFn()
}
