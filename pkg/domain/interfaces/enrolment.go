package interfaces

import (
	"context"

	"github.com/campus-lab/rostersync/pkg/domain/model"
	"github.com/campus-lab/rostersync/pkg/domain/types"
)

// EnrolmentRepository defines the interface for enrolment instances and user
// enrolments
type EnrolmentRepository interface {
	// GetInstance retrieves the enrolment instance this sync owns for a
	// course. Returns nil, nil when the course has none.
	GetInstance(ctx context.Context, courseID model.CourseID) (*model.EnrolInstance, error)

	// ListInstances retrieves every enrolment instance this sync owns for a
	// course
	ListInstances(ctx context.Context, courseID model.CourseID) ([]*model.EnrolInstance, error)

	// CreateInstance attaches a new enrolment instance to a course
	CreateInstance(ctx context.Context, courseID model.CourseID) (*model.EnrolInstance, error)

	// Enrol upserts the user's enrolment on the instance at the given role
	// and time window. Re-enrolling an already enrolled user refreshes the
	// role and window instead of duplicating.
	Enrol(ctx context.Context, instanceID model.EnrolmentID, userID model.UserID, roleID types.RoleID, timeStart, timeEnd int64) error

	// Unenrol removes the user's enrolment from the instance. A miss is not
	// an error.
	Unenrol(ctx context.Context, instanceID model.EnrolmentID, userID model.UserID) error

	// GetEnrolment retrieves the user's enrolment on the instance.
	// Returns nil, nil when the user is not enrolled through it.
	GetEnrolment(ctx context.Context, instanceID model.EnrolmentID, userID model.UserID) (*model.UserEnrolment, error)

	// IsEnrolled reports whether the user is enrolled through the instance
	IsEnrolled(ctx context.Context, instanceID model.EnrolmentID, userID model.UserID) (bool, error)
}

// GroupRepository defines the interface for course sub-group (cohort) access
type GroupRepository interface {
	// GetByName retrieves a group by name within a course.
	// Returns nil, nil when the course has no group with that name.
	GetByName(ctx context.Context, courseID model.CourseID, name string) (*model.CourseGroup, error)

	// Create creates a new group in a course with auto-generated ID
	Create(ctx context.Context, g *model.CourseGroup) (*model.CourseGroup, error)

	// AddMember records group membership; adding an existing member is a
	// no-op
	AddMember(ctx context.Context, groupID model.GroupID, userID model.UserID) error
}
