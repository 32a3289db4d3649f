package mock

import "github.com/fwojciec/mos"

var (
	_ mos.NameSource    = (*NameSource)(nil)
	_ mos.PathResolver  = (*PathResolver)(nil)
	_ mos.ResumeTracker = (*ResumeTracker)(nil)
)

// NameSource is a mock implementation of mos.NameSource.
type NameSource struct {
	NamesFn            func(rec mos.RecordContext) (string, string)
	UsesDisplayNamesFn func() bool
}

func (n *NameSource) Names(rec mos.RecordContext) (string, string) {
	return n.NamesFn(rec)
}

func (n *NameSource) UsesDisplayNames() bool {
	return n.UsesDisplayNamesFn()
}

// PathResolver is a mock implementation of mos.PathResolver.
type PathResolver struct {
	ResolveFn func(img mos.ImageRef, rec mos.RecordContext) mos.LocalTarget
}

func (r *PathResolver) Resolve(img mos.ImageRef, rec mos.RecordContext) mos.LocalTarget {
	return r.ResolveFn(img, rec)
}

// ResumeTracker is a mock implementation of mos.ResumeTracker.
type ResumeTracker struct {
	ShouldSkipFn func(target mos.LocalTarget) bool
}

func (t *ResumeTracker) ShouldSkip(target mos.LocalTarget) bool {
	return t.ShouldSkipFn(target)
}
