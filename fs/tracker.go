package fs

import (
	"os"

	"github.com/fwojciec/mos"
)

// Ensure Tracker implements mos.ResumeTracker at compile time.
var _ mos.ResumeTracker = (*Tracker)(nil)

// Tracker uses the output directory itself as the record of progress.
type Tracker struct {
	skipExisting bool
}

// NewTracker creates a new Tracker. With skipExisting unset, every image
// is downloaded again.
func NewTracker(skipExisting bool) *Tracker {
	return &Tracker{skipExisting: skipExisting}
}

// ShouldSkip reports whether a complete file already exists at the target.
// A zero-byte file is a failed earlier attempt and is not skipped.
func (t *Tracker) ShouldSkip(target mos.LocalTarget) bool {
	if !t.skipExisting {
		return false
	}
	info, err := os.Stat(target.Path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Size() > 0
}
