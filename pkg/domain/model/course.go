package model

import (
	"time"

	"github.com/google/uuid"
)

// CourseID is a UUID-based identifier for Course
type CourseID string

// NewCourseID generates a new UUID v4 CourseID
func NewCourseID() CourseID {
	return CourseID(uuid.New().String())
}

// String returns the string representation of CourseID
func (c CourseID) String() string {
	return string(c)
}

// DefaultCategoryName is the predefined root category used when a feed
// category cannot be resolved and category creation is disabled.
const DefaultCategoryName = "Miscellaneous"

// Course is a target-system course. IDNumber is the unique external key
// (the feed group sourcedid, possibly truncated).
type Course struct {
	ID          CourseID
	IDNumber    string
	FullName    string
	ShortName   string
	CategoryID  CategoryID
	Visible     bool
	Format      string
	NumSections int
	SortOrder   int
	StartDate   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategoryID is a UUID-based identifier for Category
type CategoryID string

// NewCategoryID generates a new UUID v4 CategoryID
func NewCategoryID() CategoryID {
	return CategoryID(uuid.New().String())
}

// String returns the string representation of CategoryID
func (c CategoryID) String() string {
	return string(c)
}

// Category is a target-system course category, resolved by exact name match
type Category struct {
	ID        CategoryID
	Name      string
	Visible   bool
	CreatedAt time.Time
}

// SectionID is a UUID-based identifier for Section
type SectionID string

// NewSectionID generates a new UUID v4 SectionID
func NewSectionID() SectionID {
	return SectionID(uuid.New().String())
}

// Section is a content section within a course. Newly created courses get a
// single default section zero.
type Section struct {
	ID       SectionID
	CourseID CourseID
	Number   int
}

// GroupID is a UUID-based identifier for CourseGroup
type GroupID string

// NewGroupID generates a new UUID v4 GroupID
func NewGroupID() GroupID {
	return GroupID(uuid.New().String())
}

// String returns the string representation of GroupID
func (g GroupID) String() string {
	return string(g)
}

// CourseGroup is a sub-group (cohort) inside a course, resolved by name
type CourseGroup struct {
	ID        GroupID
	CourseID  CourseID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
