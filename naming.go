package mos

// NamingMode selects where parish and book directory names come from.
type NamingMode int

// Naming modes.
const (
	// NamingDefault combines URL identifiers with page display names
	// when the page provides them.
	NamingDefault NamingMode = iota
	// NamingFullname uses page display names, falling back to URL tokens.
	NamingFullname
	// NamingSimple uses URL tokens only and never reads names from markup.
	NamingSimple
)

// String returns the mode's name.
func (m NamingMode) String() string {
	switch m {
	case NamingFullname:
		return "fullname"
	case NamingSimple:
		return "simple"
	default:
		return "default"
	}
}

// RecordContext carries the naming inputs for one record page.
type RecordContext struct {
	RecordURL     string
	Tokens        Tokens
	ParishDisplay string
	BookDisplay   string
}

// NameSource derives the parish and book names of a record.
type NameSource interface {
	// Names returns unsanitized parish and book names.
	Names(rec RecordContext) (parish, book string)

	// UsesDisplayNames reports whether Names reads display names.
	// When false, callers need not extract them from page markup.
	UsesDisplayNames() bool
}

// PathResolver derives the local destination of an image.
// Resolve must be deterministic: equal inputs yield equal targets.
type PathResolver interface {
	Resolve(img ImageRef, rec RecordContext) LocalTarget
}

// ResumeTracker decides whether an image is already downloaded.
type ResumeTracker interface {
	ShouldSkip(target LocalTarget) bool
}
