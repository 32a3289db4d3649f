package mos

import (
	"net/url"
	"strings"
)

// PageKind identifies the kind of archive page a URL points to.
type PageKind int

const (
	// KindRegisters is a parish page listing its record books.
	KindRegisters PageKind = iota + 1
	// KindRecord is a single record book with its scanned pages.
	KindRecord
)

// String returns the kind's name.
func (k PageKind) String() string {
	switch k {
	case KindRegisters:
		return "registers"
	case KindRecord:
		return "record"
	default:
		return "unknown"
	}
}

// Tokens are the identifying path segments of an archive URL.
// Book is empty for registers URLs.
type Tokens struct {
	Parish string
	Book   string
}

// Number of path segments after the optional language prefix:
// /<country>/<diocese>/<parish>/[<book>/]
const (
	registersSegments = 3
	recordSegments    = 4
)

// Classify determines the kind of page an archive URL points to from the
// URL structure alone. The URL is never fetched.
// Returns EUNRECOGNIZED if the URL matches no known archive pattern.
func Classify(rawURL string) (PageKind, error) {
	segments, err := archiveSegments(rawURL)
	if err != nil {
		return 0, err
	}
	switch len(segments) {
	case registersSegments:
		return KindRegisters, nil
	case recordSegments:
		return KindRecord, nil
	}
	return 0, Errorf(EUNRECOGNIZED, "unrecognized archive URL %q", rawURL)
}

// ExtractTokens returns the parish and book tokens of an archive URL
// without fetching it.
func ExtractTokens(rawURL string) (Tokens, error) {
	segments, err := archiveSegments(rawURL)
	if err != nil {
		return Tokens{}, err
	}
	switch len(segments) {
	case registersSegments:
		return Tokens{Parish: segments[2]}, nil
	case recordSegments:
		return Tokens{Parish: segments[2], Book: segments[3]}, nil
	}
	return Tokens{}, Errorf(EUNRECOGNIZED, "unrecognized archive URL %q", rawURL)
}

// archiveSegments returns the unescaped, non-empty path segments of an
// archive URL with the optional two-letter language prefix removed.
func archiveSegments(rawURL string) ([]string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, Errorf(EUNRECOGNIZED, "unrecognized archive URL %q: %v", rawURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, Errorf(EUNRECOGNIZED, "unrecognized archive URL %q: absolute http(s) URL required", rawURL)
	}

	var segments []string
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) > 0 && isLanguageCode(segments[0]) {
		segments = segments[1:]
	}
	return segments, nil
}

func isLanguageCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
