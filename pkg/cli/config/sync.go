package config

import (
	"github.com/urfave/cli/v3"

	"github.com/campus-lab/rostersync/pkg/domain/model"
)

// Sync holds CLI flags for the sync behavior switches
type Sync struct {
	truncateCourseCodes  int
	createCourses        bool
	createCategories     bool
	createUsers          bool
	deleteUsers          bool
	fixCaseUsernames     bool
	fixCasePersonalNames bool
	sourcedIDFallback    bool
	emailDomain          string
	allowUnenrol         bool
	capitaFix            bool
}

// Flags returns CLI flags for sync configuration
func (s *Sync) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "truncate-course-codes",
			Usage:       "Truncate course codes to this many characters (0 disables)",
			Category:    "Sync",
			Sources:     cli.EnvVars("ROSTERSYNC_TRUNCATE_COURSE_CODES"),
			Destination: &s.truncateCourseCodes,
		},
		&cli.BoolFlag{
			Name:        "create-courses",
			Usage:       "Create courses that appear in the feed but not in the store",
			Category:    "Sync",
			Sources:     cli.EnvVars("ROSTERSYNC_CREATE_COURSES"),
			Destination: &s.createCourses,
		},
		&cli.BoolFlag{
			Name:        "create-categories",
			Usage:       "Create course categories named by the feed",
			Category:    "Sync",
			Sources:     cli.EnvVars("ROSTERSYNC_CREATE_CATEGORIES"),
			Destination: &s.createCategories,
		},
		&cli.BoolFlag{
			Name:        "create-users",
			Usage:       "Create user accounts for feed persons without one",
			Category:    "Sync",
			Sources:     cli.EnvVars("ROSTERSYNC_CREATE_USERS"),
			Destination: &s.createUsers,
		},
		&cli.BoolFlag{
			Name:        "delete-users",
			Usage:       "Honor feed deletion requests by soft-deleting accounts",
			Category:    "Sync",
			Sources:     cli.EnvVars("ROSTERSYNC_DELETE_USERS"),
			Destination: &s.deleteUsers,
		},
		&cli.BoolFlag{
			Name:        "fix-case-usernames",
			Usage:       "Lowercase usernames taken from the feed",
			Category:    "Sync",
			Sources:     cli.EnvVars("ROSTERSYNC_FIX_CASE_USERNAMES"),
			Destination: &s.fixCaseUsernames,
		},
		&cli.BoolFlag{
			Name:        "fix-case-personal-names",
			Usage:       "Title-case personal names taken from the feed",
			Category:    "Sync",
			Sources:     cli.EnvVars("ROSTERSYNC_FIX_CASE_PERSONAL_NAMES"),
			Destination: &s.fixCasePersonalNames,
		},
		&cli.BoolFlag{
			Name:        "sourcedid-fallback",
			Usage:       "Use the person sourcedid as username when the feed omits one",
			Category:    "Sync",
			Sources:     cli.EnvVars("ROSTERSYNC_SOURCEDID_FALLBACK"),
			Destination: &s.sourcedIDFallback,
		},
		&cli.StringFlag{
			Name:        "email-domain",
			Usage:       "Mail domain for derived user email addresses",
			Category:    "Sync",
			Value:       "example.edu",
			Sources:     cli.EnvVars("ROSTERSYNC_EMAIL_DOMAIN"),
			Destination: &s.emailDomain,
		},
		&cli.BoolFlag{
			Name:        "allow-unenrol",
			Usage:       "Remove enrolments for members the feed marks inactive",
			Category:    "Sync",
			Sources:     cli.EnvVars("ROSTERSYNC_ALLOW_UNENROL"),
			Destination: &s.allowUnenrol,
		},
		&cli.BoolFlag{
			Name:        "capita-fix",
			Usage:       "Read the role type from a child element (Capita feed layout)",
			Category:    "Sync",
			Sources:     cli.EnvVars("ROSTERSYNC_CAPITA_FIX"),
			Destination: &s.capitaFix,
		},
	}
}

// CapitaFix reports whether the Capita role layout is enabled
func (s *Sync) CapitaFix() bool {
	return s.capitaFix
}

// Options returns the configured sync behavior switches
func (s *Sync) Options() model.Options {
	return model.Options{
		TruncateCourseCodes:  int(s.truncateCourseCodes),
		CreateCourses:        s.createCourses,
		CreateCategories:     s.createCategories,
		CreateUsers:          s.createUsers,
		DeleteUsers:          s.deleteUsers,
		FixCaseUsernames:     s.fixCaseUsernames,
		FixCasePersonalNames: s.fixCasePersonalNames,
		SourcedIDFallback:    s.sourcedIDFallback,
		EmailDomain:          s.emailDomain,
		AllowUnenrol:         s.allowUnenrol,
		CapitaFix:            s.capitaFix,
	}
}
