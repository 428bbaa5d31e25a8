package interfaces

import (
	"context"

	"github.com/campus-lab/rostersync/pkg/domain/model"
)

// CourseRepository defines the interface for Course data access
type CourseRepository interface {
	// GetByIDNumber retrieves a course by its external idnumber key.
	// Returns nil, nil when no course carries the idnumber.
	GetByIDNumber(ctx context.Context, idNumber string) (*model.Course, error)

	// Create creates a new course with auto-generated ID and creates its
	// default section zero
	Create(ctx context.Context, c *model.Course) (*model.Course, error)

	// UpdateFullName refreshes the course title
	UpdateFullName(ctx context.Context, id model.CourseID, fullName string) error

	// SetVisible toggles course visibility
	SetVisible(ctx context.Context, id model.CourseID, visible bool) error
}

// CategoryRepository defines the interface for course category data access
type CategoryRepository interface {
	// GetByName retrieves a category by exact name match.
	// Returns nil, nil when the category does not exist.
	GetByName(ctx context.Context, name string) (*model.Category, error)

	// Create creates a new category with auto-generated ID
	Create(ctx context.Context, c *model.Category) (*model.Category, error)
}
