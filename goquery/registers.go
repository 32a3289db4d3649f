package goquery

import (
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mos"
)

// ListRecordPages extracts the record page references of a registers page.
// Each row of the registers table whose second cell names a register
// yields one reference, in document order. The link is the cell's anchor
// when present, otherwise the register name appended to the page path.
func ListRecordPages(doc *goquery.Document, base *url.URL) []mos.RecordPageRef {
	var refs []mos.RecordPageRef

	doc.Find("div.table-responsive tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("td")
		if cells.Length() < 2 {
			return
		}
		cell := cells.Eq(1)
		name := collapseSpace(cell.Text())
		if name == "" {
			return
		}

		link := ""
		if href, ok := cell.Find("a[href]").First().Attr("href"); ok && !isNonHTTPLink(href) {
			link = resolveURL(base, href)
		}
		if link == "" {
			link = childURL(base, name)
		}

		refs = append(refs, mos.RecordPageRef{
			Index: len(refs),
			URL:   link,
			Name:  name,
		})
	})

	return refs
}

// ListPageLinks returns the URLs of pagination pages 2..N of a registers
// page. The last page number is the text of the second-to-last page link;
// the final link is the "next" arrow.
func ListPageLinks(doc *goquery.Document, base *url.URL) []string {
	header := doc.Find("h3#register-header").First()
	if header.Length() == 0 {
		return nil
	}

	list := header.NextAllFiltered("ul").First()
	if list.Length() == 0 {
		list = header.Parent().Find("ul.pagination").First()
	}
	if list.Length() == 0 {
		return nil
	}

	links := list.Find("a.page-link")
	if links.Length() < 2 {
		return nil
	}
	last, err := strconv.Atoi(strings.TrimSpace(links.Eq(links.Length() - 2).Text()))
	if err != nil || last < 2 {
		return nil
	}

	pages := make([]string, 0, last-1)
	for i := 2; i <= last; i++ {
		pages = append(pages, pageURL(base, i))
	}
	return pages
}

// ExtractDisplayName returns the human-readable title of a page.
// Record pages carry it in the register data table (title cell, falling
// back to the signature cell); registers pages carry it in the heading.
func ExtractDisplayName(doc *goquery.Document) (string, bool) {
	cells := doc.Find("table.table-register-data td")
	if cells.Length() > 0 {
		for _, i := range []int{2, 1} {
			if i >= cells.Length() {
				continue
			}
			if name := collapseSpace(cells.Eq(i).Text()); name != "" {
				return name, true
			}
		}
		return "", false
	}

	if name := collapseSpace(doc.Find("h1").First().Text()); name != "" {
		return name, true
	}
	return "", false
}

// childURL returns the URL of a named child of base, ignoring query and fragment.
func childURL(base *url.URL, name string) string {
	u := *base
	u.RawQuery = ""
	u.Fragment = ""
	u.RawPath = ""
	u.Path = path.Join("/", base.Path, name) + "/"
	return u.String()
}

// pageURL returns base with its page query parameter set to n.
func pageURL(base *url.URL, n int) string {
	u := *base
	u.Fragment = ""
	q := u.Query()
	q.Set("page", strconv.Itoa(n))
	u.RawQuery = q.Encode()
	return u.String()
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed.
// Fragments are stripped from the resolved URL.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return href == "" ||
		strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

// collapseSpace trims s and collapses internal whitespace runs to one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
