package model

import "github.com/campus-lab/rostersync/pkg/domain/types"

// MembershipRecord is one <membership> element of the feed: a course source
// ID plus the member lines that should be enrolled into (or removed from)
// that course.
type MembershipRecord struct {
	CourseSourceID string
	Members        []Member
}

// Member is one <member> line of a membership block.
type Member struct {
	IDNumber  string
	RoleCode  types.RoleCode
	Active    bool
	RecStatus types.RecStatus

	// Raw inner text of the role's timeframe begin/end elements. Decoding to
	// timestamps happens in the reconciler.
	TimeframeBegin string
	TimeframeEnd   string

	// Cohort name from the member extension, empty when absent
	GroupName string
}

// EffectiveActive reports whether the member line should result in an
// enrolment. A recstatus of 3 (delete) forces inactive regardless of the
// explicit status field.
func (m *Member) EffectiveActive() bool {
	if m.RecStatus.IsDelete() {
		return false
	}
	return m.Active
}
