package mos

// RegistersPage is a parish's collection of record books.
type RegistersPage struct {
	URL         string
	Tokens      Tokens
	DisplayName string
	Records     []RecordPageRef
}

// RecordPageRef references one record page listed on a registers page.
type RecordPageRef struct {
	Index int    // zero-based position on the registers page
	URL   string // record page link
	Name  string // register name as listed
}

// RecordPage represents one scanned book.
type RecordPage struct {
	URL         string
	Tokens      Tokens
	DisplayName string
	Images      []ImageRef
}

// ImageRef is one scanned image of a record page.
type ImageRef struct {
	URL      string
	Sequence int // one-based, in physical page order
	Label    string
}

// LocalTarget is the destination file of an image.
type LocalTarget struct {
	Path string
}
