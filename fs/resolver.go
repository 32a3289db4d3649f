// Package fs lays out downloaded images on the local filesystem.
package fs

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/mos"
	"golang.org/x/text/unicode/norm"
)

// DefaultExtension is used when an image URL carries no usable extension.
const DefaultExtension = ".jpg"

// maxSegmentBytes bounds a sanitized path segment.
const maxSegmentBytes = 100

// Ensure Resolver implements mos.PathResolver at compile time.
var _ mos.PathResolver = (*Resolver)(nil)

// Resolver derives local image paths under an output directory.
//
// Deep layout:  <output>/<parish>/<book>/<seq><ext>
// Flat layout:  <output>/<parish>_<book>_<seq><ext>
//
// The sequence is zero-padded to four digits so file names sort in page
// order. Books with more than 9999 pages get five-digit names from page
// 10000 on, which sort before the four-digit ones.
type Resolver struct {
	outputDir string
	deep      bool
	names     mos.NameSource
}

// NewResolver creates a new Resolver.
func NewResolver(outputDir string, deep bool, names mos.NameSource) *Resolver {
	return &Resolver{
		outputDir: outputDir,
		deep:      deep,
		names:     names,
	}
}

// Resolve returns the destination of img within the record described by rec.
func (r *Resolver) Resolve(img mos.ImageRef, rec mos.RecordContext) mos.LocalTarget {
	parish, book := r.names.Names(rec)
	parish = segment(parish, rec.RecordURL)
	book = segment(book, rec.RecordURL)
	file := fmt.Sprintf("%04d%s", img.Sequence, Extension(img.URL))

	if r.deep {
		return mos.LocalTarget{Path: filepath.Join(r.outputDir, parish, book, file)}
	}
	return mos.LocalTarget{Path: filepath.Join(r.outputDir, parish+"_"+book+"_"+file)}
}

// Extension returns the lowercase file extension of an image URL, or
// DefaultExtension when the URL has none or an implausible one.
func Extension(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return DefaultExtension
	}
	ext := strings.ToLower(path.Ext(u.Path))
	if len(ext) < 3 || len(ext) > 6 {
		return DefaultExtension
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return DefaultExtension
		}
	}
	return ext
}

// Sanitize makes a name safe to use as a single path segment. It
// normalizes to NFC, drops separators, reserved and control characters,
// turns whitespace runs into underscores and trims leading and trailing
// dots and underscores.
func Sanitize(name string) string {
	var b strings.Builder
	space := false
	for _, r := range norm.NFC.String(name) {
		switch {
		case unicode.IsSpace(r):
			space = true
			continue
		case unicode.IsControl(r), strings.ContainsRune(`<>:"/\|?*`, r):
			continue
		}
		if space {
			b.WriteByte('_')
			space = false
		}
		b.WriteRune(r)
	}
	return truncate(strings.Trim(b.String(), "._"), maxSegmentBytes)
}

// segment sanitizes name, falling back to a hash of key when nothing
// usable remains.
func segment(name, key string) string {
	if s := Sanitize(name); s != "" {
		return s
	}
	return fmt.Sprintf("x%016x", xxhash.Sum64String(key))
}

// truncate shortens s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return strings.TrimRight(s[:n], "._")
}
