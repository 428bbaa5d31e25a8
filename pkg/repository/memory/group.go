package memory

import (
	"context"
	"sync"
	"time"

	"github.com/campus-lab/rostersync/pkg/domain/model"
)

type groupMemberKey struct {
	groupID model.GroupID
	userID  model.UserID
}

type groupRepository struct {
	mu      sync.RWMutex
	groups  map[model.GroupID]*model.CourseGroup
	members map[groupMemberKey]bool
}

func newGroupRepository() *groupRepository {
	return &groupRepository{
		groups:  make(map[model.GroupID]*model.CourseGroup),
		members: make(map[groupMemberKey]bool),
	}
}

func (r *groupRepository) GetByName(ctx context.Context, courseID model.CourseID, name string) (*model.CourseGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.groups {
		if g.CourseID == courseID && g.Name == name {
			copied := *g
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *groupRepository) Create(ctx context.Context, g *model.CourseGroup) (*model.CourseGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := *g
	if created.ID == "" {
		created.ID = model.NewGroupID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now
	r.groups[created.ID] = &created

	copied := created
	return &copied, nil
}

func (r *groupRepository) AddMember(ctx context.Context, groupID model.GroupID, userID model.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.members[groupMemberKey{groupID: groupID, userID: userID}] = true
	return nil
}
