package memory

import (
	"context"
	"sync"
	"time"

	"github.com/campus-lab/rostersync/pkg/domain/model"
	"github.com/campus-lab/rostersync/pkg/domain/types"
)

type enrolmentKey struct {
	instanceID model.EnrolmentID
	userID     model.UserID
}

type enrolmentRepository struct {
	mu         sync.RWMutex
	instances  map[model.EnrolmentID]*model.EnrolInstance
	order      []model.EnrolmentID
	enrolments map[enrolmentKey]*model.UserEnrolment
}

func newEnrolmentRepository() *enrolmentRepository {
	return &enrolmentRepository{
		instances:  make(map[model.EnrolmentID]*model.EnrolInstance),
		enrolments: make(map[enrolmentKey]*model.UserEnrolment),
	}
}

func (r *enrolmentRepository) GetInstance(ctx context.Context, courseID model.CourseID) (*model.EnrolInstance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if inst := r.instances[id]; inst != nil && inst.CourseID == courseID {
			copied := *inst
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *enrolmentRepository) ListInstances(ctx context.Context, courseID model.CourseID) ([]*model.EnrolInstance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.EnrolInstance
	for _, id := range r.order {
		if inst := r.instances[id]; inst != nil && inst.CourseID == courseID {
			copied := *inst
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *enrolmentRepository) CreateInstance(ctx context.Context, courseID model.CourseID) (*model.EnrolInstance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inst := &model.EnrolInstance{
		ID:        model.NewEnrolmentID(),
		CourseID:  courseID,
		Method:    model.EnrolMethod,
		CreatedAt: time.Now().UTC(),
	}
	r.instances[inst.ID] = inst
	r.order = append(r.order, inst.ID)

	copied := *inst
	return &copied, nil
}

func (r *enrolmentRepository) Enrol(ctx context.Context, instanceID model.EnrolmentID, userID model.UserID, roleID types.RoleID, timeStart, timeEnd int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := enrolmentKey{instanceID: instanceID, userID: userID}
	r.enrolments[key] = &model.UserEnrolment{
		InstanceID: instanceID,
		UserID:     userID,
		RoleID:     roleID,
		TimeStart:  timeStart,
		TimeEnd:    timeEnd,
		UpdatedAt:  time.Now().UTC(),
	}
	return nil
}

func (r *enrolmentRepository) Unenrol(ctx context.Context, instanceID model.EnrolmentID, userID model.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.enrolments, enrolmentKey{instanceID: instanceID, userID: userID})
	return nil
}

func (r *enrolmentRepository) GetEnrolment(ctx context.Context, instanceID model.EnrolmentID, userID model.UserID) (*model.UserEnrolment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.enrolments[enrolmentKey{instanceID: instanceID, userID: userID}]
	if !exists {
		return nil, nil
	}
	copied := *e
	return &copied, nil
}

func (r *enrolmentRepository) IsEnrolled(ctx context.Context, instanceID model.EnrolmentID, userID model.UserID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.enrolments[enrolmentKey{instanceID: instanceID, userID: userID}]
	return exists, nil
}
