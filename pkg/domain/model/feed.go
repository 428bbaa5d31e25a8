package model

import "time"

// FeedIdentity identifies one concrete feed payload: where it came from, the
// md5 fingerprint of its content and its modification time. It is persisted
// in the run ledger so the next run can decide whether the feed changed.
//
// Fingerprint is recorded for operator diagnosis only.
type FeedIdentity struct {
	Path        string
	Fingerprint string
	ModifiedAt  time.Time
}

// IsNewerThan reports whether a feed with this identity should be processed,
// given the identity recorded by the previous run. The decision uses only the
// path and the modification time; the fingerprint is not consulted.
func (f *FeedIdentity) IsNewerThan(prev *FeedIdentity) bool {
	if prev == nil || prev.Path == "" {
		return true
	}
	if f.Path != prev.Path {
		return true
	}
	return f.ModifiedAt.After(prev.ModifiedAt)
}
