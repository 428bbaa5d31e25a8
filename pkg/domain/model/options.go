package model

// Options carries the per-run sync behavior switches. All of them default to
// the conservative side: nothing is created, deleted or unenrolled unless
// explicitly enabled.
type Options struct {
	// Course pass
	TruncateCourseCodes int // 0 disables truncation
	CreateCourses       bool
	CreateCategories    bool

	// Person pass
	CreateUsers          bool
	DeleteUsers          bool
	FixCaseUsernames     bool
	FixCasePersonalNames bool
	SourcedIDFallback    bool
	EmailDomain          string

	// Membership pass
	AllowUnenrol bool

	// Known vendor quirk: some student record systems emit the role type as a
	// child element instead of an attribute
	CapitaFix bool
}

// TruncateCourseCode applies the configured course code truncation
func (o *Options) TruncateCourseCode(code string) string {
	if o.TruncateCourseCodes > 0 && len(code) > o.TruncateCourseCodes {
		return code[:o.TruncateCourseCodes]
	}
	return code
}
