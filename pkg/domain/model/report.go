package model

import (
	"fmt"
	"strings"
	"time"
)

// Report is the outcome of one sync run, aggregated from the three passes.
// It feeds the completion notification and the final audit lines.
type Report struct {
	StartedAt time.Time
	Elapsed   time.Duration
	FeedPath  string

	// Skipped is true when the feed identity matched the run ledger and the
	// passes were not executed
	Skipped bool

	Groups      GroupTally
	Persons     PersonTally
	Memberships MembershipTally

	// Per-course enrolment counts, in feed order
	Courses []CourseTally
}

// GroupTally counts the outcomes of the group pass
type GroupTally struct {
	Processed         int
	CoursesCreated    int
	CoursesUpdated    int
	CategoriesCreated int
	Rejected          int
}

// PersonTally counts the outcomes of the person pass
type PersonTally struct {
	Processed          int
	Created            int
	Deleted            int
	DeletionsIgnored   int
	Unsuspended        int
	CollisionsResolved int
	Skipped            int
}

// MembershipTally counts the outcomes of the membership pass
type MembershipTally struct {
	BlocksProcessed     int
	BlocksSkipped       int
	Enrolled            int
	Unenrolled          int
	RolesSkipped        int
	MissedDeactivations int
}

// CourseTally is the per-course summary emitted after each membership block
type CourseTally struct {
	CourseCode string
	Enrolled   int
	Removed    int
}

// Summary renders the human-readable completion message. It reports elapsed
// time and where the audit log went, not per-record detail.
func (r *Report) Summary(auditLogPath string) string {
	var b strings.Builder
	if r.Skipped {
		fmt.Fprintf(&b, "Roster sync completed: feed %s unchanged, no passes executed.\n", r.FeedPath)
	} else {
		fmt.Fprintf(&b, "Roster sync completed for feed %s.\n", r.FeedPath)
		fmt.Fprintf(&b, "Courses: %d created, %d updated. Users: %d created, %d deleted. Enrolments: %d added, %d removed.\n",
			r.Groups.CoursesCreated, r.Groups.CoursesUpdated,
			r.Persons.Created, r.Persons.Deleted,
			r.Memberships.Enrolled, r.Memberships.Unenrolled)
	}
	fmt.Fprintf(&b, "Time taken: %d seconds.\n", int(r.Elapsed.Seconds()))
	if auditLogPath != "" {
		fmt.Fprintf(&b, "Log data has been written to: %s\n", auditLogPath)
	} else {
		b.WriteString("Logging to a file is currently not active.\n")
	}
	return b.String()
}
