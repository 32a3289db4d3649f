package goquery_test

import (
	"testing"

	"github.com/fwojciec/mos"
	"github.com/fwojciec/mos/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const registersURL = "https://data.matricula-online.eu/en/deutschland/akmb/militaerkirchenbuecher/"

const registersHTML = `<!DOCTYPE html>
<html>
<body>
<h1>Militärkirchenbücher</h1>
<h3 id="register-header">Registers</h3>
<ul class="pagination">
	<li><a class="page-link" href="?page=1">1</a></li>
	<li><a class="page-link" href="?page=2">2</a></li>
	<li><a class="page-link" href="?page=3">3</a></li>
	<li><a class="page-link" href="?page=2">&raquo;</a></li>
</ul>
<div class="table-responsive">
<table>
	<tr><th>View</th><th>Signature</th><th>Type</th></tr>
	<tr><td><a href="/en/deutschland/akmb/militaerkirchenbuecher/0001/">view</a></td><td>0001</td><td>Taufen</td></tr>
	<tr><td></td><td><a href="/en/deutschland/akmb/militaerkirchenbuecher/0002/#top">0002</a></td><td>Trauungen</td></tr>
	<tr><td></td><td>  0003  </td><td>Tote</td></tr>
	<tr><td></td><td></td><td>empty signature</td></tr>
	<tr><td>only one cell</td></tr>
</table>
</div>
</body>
</html>`

const recordURL = "https://data.matricula-online.eu/en/deutschland/akmb/militaerkirchenbuecher/0002/"

const recordHTML = `<!DOCTYPE html>
<html>
<head>
<script>var analytics = {"id": 1};</script>
<script>
	var viewer = new Viewer({
		"files": ["/image/akmb/0002/0001.jpg", "https:\/\/img.data.matricula-online.eu\/akmb\/0002\/0002.jpg", "0003.png"],
		"labels": ["001", "002"],
		"startPage": 0
	});
</script>
</head>
<body>
<h1>Militärkirchenbücher</h1>
<table class="table table-register-data">
	<tr><th>Parish</th><td>Militärkirchenbücher</td></tr>
	<tr><th>Signature</th><td>0002</td></tr>
	<tr><th>Title</th><td>Trauungen   1890 -
		1900</td></tr>
</table>
</body>
</html>`

func parse(t *testing.T, html, pageURL string) mos.Document {
	t.Helper()

	doc, err := goquery.NewNavigator().Parse(html, pageURL)
	require.NoError(t, err)
	return doc
}

func TestNavigator_Parse(t *testing.T) {
	t.Parallel()

	t.Run("returns document for page URL", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, "<html></html>", recordURL)

		assert.Equal(t, recordURL, doc.URL())
	})

	t.Run("returns parse error for invalid page URL", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewNavigator().Parse("<html></html>", "://invalid-url")

		require.Error(t, err)
		assert.Equal(t, mos.EPARSE, mos.ErrorCode(err))
	})
}

func TestDocument_RecordPages(t *testing.T) {
	t.Parallel()

	t.Run("lists records in table order", func(t *testing.T) {
		t.Parallel()

		refs := parse(t, registersHTML, registersURL).RecordPages()

		require.Len(t, refs, 3)
		assert.Equal(t, mos.RecordPageRef{
			Index: 0,
			URL:   "https://data.matricula-online.eu/en/deutschland/akmb/militaerkirchenbuecher/0001/",
			Name:  "0001",
		}, refs[0])
		assert.Equal(t, mos.RecordPageRef{
			Index: 1,
			URL:   "https://data.matricula-online.eu/en/deutschland/akmb/militaerkirchenbuecher/0002/",
			Name:  "0002",
		}, refs[1])
		assert.Equal(t, mos.RecordPageRef{
			Index: 2,
			URL:   "https://data.matricula-online.eu/en/deutschland/akmb/militaerkirchenbuecher/0003/",
			Name:  "0003",
		}, refs[2])
	})

	t.Run("builds links from the page path without query", func(t *testing.T) {
		t.Parallel()

		html := `<div class="table-responsive"><table><tr><td></td><td>0007</td></tr></table></div>`

		refs := parse(t, html, "https://data.matricula-online.eu/en/deutschland/akmb/militaerkirchenbuecher?page=2").RecordPages()

		require.Len(t, refs, 1)
		assert.Equal(t, "https://data.matricula-online.eu/en/deutschland/akmb/militaerkirchenbuecher/0007/", refs[0].URL)
	})

	t.Run("returns empty for a collection without books", func(t *testing.T) {
		t.Parallel()

		refs := parse(t, `<html><body><h1>Empty parish</h1></body></html>`, registersURL).RecordPages()

		assert.Empty(t, refs)
	})

	t.Run("tolerates malformed markup", func(t *testing.T) {
		t.Parallel()

		refs := parse(t, `<div class="table-responsive"><tr><td>a<td><b>`, registersURL).RecordPages()

		assert.Empty(t, refs)
	})
}

func TestDocument_PageLinks(t *testing.T) {
	t.Parallel()

	t.Run("lists remaining pagination pages", func(t *testing.T) {
		t.Parallel()

		links := parse(t, registersHTML, registersURL).PageLinks()

		assert.Equal(t, []string{
			registersURL + "?page=2",
			registersURL + "?page=3",
		}, links)
	})

	t.Run("returns empty without pagination", func(t *testing.T) {
		t.Parallel()

		html := `<h3 id="register-header">Registers</h3><div class="table-responsive"></div>`

		assert.Empty(t, parse(t, html, registersURL).PageLinks())
	})

	t.Run("returns empty without register header", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, parse(t, recordHTML, recordURL).PageLinks())
	})

	t.Run("returns empty when page number is not numeric", func(t *testing.T) {
		t.Parallel()

		html := `<h3 id="register-header">Registers</h3>
<ul><li><a class="page-link">first</a></li><li><a class="page-link">next</a></li></ul>`

		assert.Empty(t, parse(t, html, registersURL).PageLinks())
	})
}

func TestDocument_Images(t *testing.T) {
	t.Parallel()

	t.Run("lists viewer images in order", func(t *testing.T) {
		t.Parallel()

		images := parse(t, recordHTML, recordURL).Images()

		require.Len(t, images, 3)
		assert.Equal(t, mos.ImageRef{
			URL:      "https://data.matricula-online.eu/image/akmb/0002/0001.jpg",
			Sequence: 1,
			Label:    "001",
		}, images[0])
		assert.Equal(t, mos.ImageRef{
			URL:      "https://img.data.matricula-online.eu/akmb/0002/0002.jpg",
			Sequence: 2,
			Label:    "002",
		}, images[1])
		assert.Equal(t, mos.ImageRef{
			URL:      recordURL + "0003.png",
			Sequence: 3,
			Label:    "3",
		}, images[2])
	})

	t.Run("sequence numbers are strictly increasing", func(t *testing.T) {
		t.Parallel()

		images := parse(t, recordHTML, recordURL).Images()

		for i := 1; i < len(images); i++ {
			assert.Greater(t, images[i].Sequence, images[i-1].Sequence)
		}
	})

	t.Run("returns empty without viewer script", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, parse(t, registersHTML, registersURL).Images())
	})

	t.Run("keeps paths containing brackets", func(t *testing.T) {
		t.Parallel()

		html := `<script>var v = new Viewer({
			"files": ["/image/akmb/0002/[1]/0001.jpg",
				"/image/akmb/0002/0002.jpg"],
			"labels": ["001", "002"]
		});</script>`

		images := parse(t, html, recordURL).Images()

		require.Len(t, images, 2)
		assert.Equal(t, "001", images[0].Label)
		assert.Equal(t, mos.ImageRef{
			URL:      "https://data.matricula-online.eu/image/akmb/0002/0002.jpg",
			Sequence: 2,
			Label:    "002",
		}, images[1])
	})

	t.Run("empty file list has no images", func(t *testing.T) {
		t.Parallel()

		html := `<script>var v = {"files": [], "labels": ["x"]};</script>`

		assert.Empty(t, parse(t, html, recordURL).Images())
	})

	t.Run("returns empty for malformed file list", func(t *testing.T) {
		t.Parallel()

		html := `<script>var v = {"files": ['/a.jpg', ], "labels": []};</script>`

		assert.Empty(t, parse(t, html, recordURL).Images())
	})
}

func TestDocument_DisplayName(t *testing.T) {
	t.Parallel()

	t.Run("record page uses title cell", func(t *testing.T) {
		t.Parallel()

		name, ok := parse(t, recordHTML, recordURL).DisplayName()

		require.True(t, ok)
		assert.Equal(t, "Trauungen 1890 - 1900", name)
	})

	t.Run("record page falls back to signature cell", func(t *testing.T) {
		t.Parallel()

		html := `<table class="table table-register-data"><tr><td>Parish</td><td>0002</td><td> </td></tr></table>`

		name, ok := parse(t, html, recordURL).DisplayName()

		require.True(t, ok)
		assert.Equal(t, "0002", name)
	})

	t.Run("registers page uses heading", func(t *testing.T) {
		t.Parallel()

		name, ok := parse(t, registersHTML, registersURL).DisplayName()

		require.True(t, ok)
		assert.Equal(t, "Militärkirchenbücher", name)
	})

	t.Run("returns absence when markup is missing", func(t *testing.T) {
		t.Parallel()

		_, ok := parse(t, `<html><body><p>nothing here</p></body></html>`, recordURL).DisplayName()

		assert.False(t, ok)
	})
}
