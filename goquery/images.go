package goquery

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mos"
)

// The page viewer is configured by an inline script holding the image
// paths and their labels as JSON string arrays. An array ends at the
// first quote followed by a closing bracket, so paths may contain
// brackets but not that pair.
var (
	filesPattern  = regexp.MustCompile(`(?s)"files"\s*:\s*(\[\s*\]|\[.*?"\s*\])`)
	labelsPattern = regexp.MustCompile(`(?s)"labels"\s*:\s*(\[\s*\]|\[.*?"\s*\])`)
)

// ListImages extracts the scanned images of a record page in viewer order.
// Image paths are resolved against base. Labels are paired by position;
// a missing label defaults to the sequence number.
func ListImages(doc *goquery.Document, base *url.URL) []mos.ImageRef {
	var files, labels []string
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		script := sel.Text()
		f, ok := jsonArray(filesPattern, script)
		if !ok {
			return true
		}
		files = f
		labels, _ = jsonArray(labelsPattern, script)
		return false
	})

	var images []mos.ImageRef
	for i, file := range files {
		if isNonHTTPLink(file) {
			continue
		}
		link := resolveURL(base, file)
		if link == "" {
			continue
		}
		seq := len(images) + 1
		label := strconv.Itoa(seq)
		if i < len(labels) && labels[i] != "" {
			label = labels[i]
		}
		images = append(images, mos.ImageRef{
			URL:      link,
			Sequence: seq,
			Label:    label,
		})
	}
	return images
}

// jsonArray returns the first string array matched by re in s.
func jsonArray(re *regexp.Regexp, s string) ([]string, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	var values []string
	if err := json.Unmarshal([]byte(m[1]), &values); err != nil {
		return nil, false
	}
	return values, true
}
