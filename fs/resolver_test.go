package fs_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/mos"
	"github.com/fwojciec/mos/fs"
	"github.com/stretchr/testify/assert"
)

func record() mos.RecordContext {
	return mos.RecordContext{
		RecordURL:     "https://data.matricula-online.eu/en/deutschland/akmb/militaerkirchenbuecher/0002/",
		Tokens:        mos.Tokens{Parish: "militaerkirchenbuecher", Book: "0002"},
		ParishDisplay: "Militärkirchenbücher",
		BookDisplay:   "Trauungen 1890-1900",
	}
}

func image(seq int) mos.ImageRef {
	return mos.ImageRef{
		URL:      "https://img.data.matricula-online.eu/akmb/0002/page.jpg",
		Sequence: seq,
	}
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		deep bool
		mode mos.NamingMode
		want string
	}{
		{
			name: "flat simple",
			mode: mos.NamingSimple,
			want: "out/militaerkirchenbuecher_0002_0007.jpg",
		},
		{
			name: "deep simple",
			deep: true,
			mode: mos.NamingSimple,
			want: "out/militaerkirchenbuecher/0002/0007.jpg",
		},
		{
			name: "deep fullname",
			deep: true,
			mode: mos.NamingFullname,
			want: "out/Militärkirchenbücher/Trauungen_1890-1900/0007.jpg",
		},
		{
			name: "deep default combines identifier and display name",
			deep: true,
			mode: mos.NamingDefault,
			want: "out/militaerkirchenbuecher__Militärkirchenbücher/0002__Trauungen_1890-1900/0007.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := fs.NewResolver("out", tt.deep, fs.NewNameSource(tt.mode))
			got := r.Resolve(image(7), record())

			assert.Equal(t, filepath.FromSlash(tt.want), got.Path)
		})
	}
}

func TestResolver_Resolve_FallsBackToURLTokens(t *testing.T) {
	t.Parallel()

	rec := record()
	rec.ParishDisplay = ""
	rec.BookDisplay = ""

	for _, mode := range []mos.NamingMode{mos.NamingDefault, mos.NamingFullname} {
		r := fs.NewResolver("out", true, fs.NewNameSource(mode))
		got := r.Resolve(image(1), rec)

		assert.Equal(t, filepath.Join("out", "militaerkirchenbuecher", "0002", "0001.jpg"), got.Path, mode.String())
	}
}

func TestResolver_Resolve_IsDeterministic(t *testing.T) {
	t.Parallel()

	r := fs.NewResolver("out", true, fs.NewNameSource(mos.NamingDefault))

	first := r.Resolve(image(3), record())
	second := r.Resolve(image(3), record())

	assert.Equal(t, first, second)
}

func TestResolver_Resolve_PreservesImageOrder(t *testing.T) {
	t.Parallel()

	r := fs.NewResolver("out", false, fs.NewNameSource(mos.NamingSimple))

	var paths []string
	for seq := 1; seq <= 12; seq++ {
		paths = append(paths, r.Resolve(image(seq), record()).Path)
	}

	for i := 1; i < len(paths); i++ {
		assert.Less(t, paths[i-1], paths[i])
	}
}

func TestResolver_Resolve_WidensPastFourDigits(t *testing.T) {
	t.Parallel()

	r := fs.NewResolver("out", true, fs.NewNameSource(mos.NamingSimple))

	assert.Equal(t, "9999.jpg", filepath.Base(r.Resolve(image(9999), record()).Path))
	assert.Equal(t, "10000.jpg", filepath.Base(r.Resolve(image(10000), record()).Path))
}

func TestResolver_Resolve_HashesUnusableNames(t *testing.T) {
	t.Parallel()

	rec := record()
	rec.Tokens = mos.Tokens{Parish: "...", Book: "???"}
	r := fs.NewResolver("out", true, fs.NewNameSource(mos.NamingSimple))

	got := r.Resolve(image(1), rec)

	parts := strings.Split(filepath.ToSlash(got.Path), "/")
	assert.Len(t, parts, 4)
	assert.True(t, strings.HasPrefix(parts[1], "x"))
	assert.Len(t, parts[1], 17)
	assert.Equal(t, got, r.Resolve(image(1), rec))
}

func TestExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{url: "https://example.com/a/0001.jpg", want: ".jpg"},
		{url: "https://example.com/a/0001.JPEG", want: ".jpeg"},
		{url: "https://example.com/a/0001.png?token=abc", want: ".png"},
		{url: "https://example.com/a/0001", want: ".jpg"},
		{url: "https://example.com/a/0001.", want: ".jpg"},
		{url: "https://example.com/a/v1.2-final", want: ".jpg"},
		{url: "https://example.com/a/file.toolongext", want: ".jpg"},
		{url: "://bad", want: ".jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, fs.Extension(tt.url))
		})
	}
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "keeps plain names", in: "0002", want: "0002"},
		{name: "replaces whitespace runs", in: "Taufen  1890\t1900", want: "Taufen_1890_1900"},
		{name: "drops separators", in: "a/b\\c", want: "abc"},
		{name: "drops reserved characters", in: `a<b>c:d"e|f?g*h`, want: "abcdefgh"},
		{name: "trims dots and underscores", in: " ..name.. ", want: "name"},
		{name: "normalizes to NFC", in: "Mu\u0308nchen", want: "M\u00fcnchen"},
		{name: "empty stays empty", in: "..", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, fs.Sanitize(tt.in))
		})
	}
}

func TestSanitize_Truncates(t *testing.T) {
	t.Parallel()

	got := fs.Sanitize(strings.Repeat("ä", 80))

	assert.LessOrEqual(t, len(got), 100)
	assert.Equal(t, strings.Repeat("ä", 50), got)
}

func TestNewNameSource(t *testing.T) {
	t.Parallel()

	assert.False(t, fs.NewNameSource(mos.NamingSimple).UsesDisplayNames())
	assert.True(t, fs.NewNameSource(mos.NamingFullname).UsesDisplayNames())
	assert.True(t, fs.NewNameSource(mos.NamingDefault).UsesDisplayNames())
}
