package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/campus-lab/rostersync/pkg/domain/types"
)

// EnrolMethod marks the enrolment instances this sync owns. Un-enrolment only
// ever touches instances carrying this method.
const EnrolMethod = "imsenterprise"

// EnrolmentID is a UUID-based identifier for EnrolInstance
type EnrolmentID string

// NewEnrolmentID generates a new UUID v4 EnrolmentID
func NewEnrolmentID() EnrolmentID {
	return EnrolmentID(uuid.New().String())
}

// String returns the string representation of EnrolmentID
func (e EnrolmentID) String() string {
	return string(e)
}

// EnrolInstance is an enrolment mechanism attached to a course. A course can
// carry instances from several mechanisms; this sync creates at most one
// instance with EnrolMethod per course.
type EnrolInstance struct {
	ID        EnrolmentID
	CourseID  CourseID
	Method    string
	CreatedAt time.Time
}

// UserEnrolment is one user enrolled through an instance at a role, limited
// to an optional time window. Times are unix seconds; zero means unbounded.
type UserEnrolment struct {
	InstanceID EnrolmentID
	UserID     UserID
	RoleID     types.RoleID
	TimeStart  int64
	TimeEnd    int64
	UpdatedAt  time.Time
}
