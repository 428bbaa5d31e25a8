// Package memory provides an in-memory repository, used as the development
// backend and as the entity store double in tests.
package memory

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/campus-lab/rostersync/pkg/domain/interfaces"
)

// ErrNotFound is returned when a mutation targets an entity that does not
// exist. Lookups signal a miss with (nil, nil) instead.
var ErrNotFound = goerr.New("record not found")

// Memory is an in-memory implementation of interfaces.Repository
type Memory struct {
	course    *courseRepository
	category  *categoryRepository
	user      *userRepository
	group     *groupRepository
	enrolment *enrolmentRepository
	ledger    *ledgerRepository
}

var _ interfaces.Repository = &Memory{}

// New creates an empty in-memory repository
func New() *Memory {
	return &Memory{
		course:    newCourseRepository(),
		category:  newCategoryRepository(),
		user:      newUserRepository(),
		group:     newGroupRepository(),
		enrolment: newEnrolmentRepository(),
		ledger:    newLedgerRepository(),
	}
}

func (m *Memory) Course() interfaces.CourseRepository {
	return m.course
}

func (m *Memory) Category() interfaces.CategoryRepository {
	return m.category
}

func (m *Memory) User() interfaces.UserRepository {
	return m.user
}

func (m *Memory) Group() interfaces.GroupRepository {
	return m.group
}

func (m *Memory) Enrolment() interfaces.EnrolmentRepository {
	return m.enrolment
}

func (m *Memory) Ledger() interfaces.LedgerRepository {
	return m.ledger
}

func (m *Memory) Close() error {
	return nil
}
