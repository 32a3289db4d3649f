package fs

import "github.com/fwojciec/mos"

// Compile-time interface verification.
var (
	_ mos.NameSource = URLNames{}
	_ mos.NameSource = DisplayNames{}
	_ mos.NameSource = CombinedNames{}
)

// NewNameSource returns the name source for a naming mode.
func NewNameSource(mode mos.NamingMode) mos.NameSource {
	switch mode {
	case mos.NamingSimple:
		return URLNames{}
	case mos.NamingFullname:
		return DisplayNames{}
	default:
		return CombinedNames{}
	}
}

// URLNames names records by their URL tokens only.
type URLNames struct{}

func (URLNames) Names(rec mos.RecordContext) (string, string) {
	return rec.Tokens.Parish, rec.Tokens.Book
}

func (URLNames) UsesDisplayNames() bool { return false }

// DisplayNames names records by their page display names, falling back
// to URL tokens when a page has none.
type DisplayNames struct{}

func (DisplayNames) Names(rec mos.RecordContext) (string, string) {
	return firstNonEmpty(rec.ParishDisplay, rec.Tokens.Parish),
		firstNonEmpty(rec.BookDisplay, rec.Tokens.Book)
}

func (DisplayNames) UsesDisplayNames() bool { return true }

// CombinedNames joins URL identifiers and display names as <id>__<name>.
type CombinedNames struct{}

func (CombinedNames) Names(rec mos.RecordContext) (string, string) {
	return combine(rec.Tokens.Parish, rec.ParishDisplay),
		combine(rec.Tokens.Book, rec.BookDisplay)
}

func (CombinedNames) UsesDisplayNames() bool { return true }

func combine(id, display string) string {
	if display == "" || display == id {
		return id
	}
	if id == "" {
		return display
	}
	return id + "__" + display
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
