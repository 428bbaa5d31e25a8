package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/campus-lab/rostersync/pkg/domain/model"
)

type courseRepository struct {
	mu       sync.RWMutex
	courses  map[model.CourseID]*model.Course
	sections map[model.SectionID]*model.Section
}

func newCourseRepository() *courseRepository {
	return &courseRepository{
		courses:  make(map[model.CourseID]*model.Course),
		sections: make(map[model.SectionID]*model.Section),
	}
}

func copyCourse(c *model.Course) *model.Course {
	copied := *c
	return &copied
}

func (r *courseRepository) GetByIDNumber(ctx context.Context, idNumber string) (*model.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.courses {
		if c.IDNumber == idNumber {
			return copyCourse(c), nil
		}
	}
	return nil, nil
}

func (r *courseRepository) Create(ctx context.Context, c *model.Course) (*model.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyCourse(c)
	if created.ID == "" {
		created.ID = model.NewCourseID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now
	r.courses[created.ID] = created

	// Every new course gets its default section zero
	section := &model.Section{
		ID:       model.NewSectionID(),
		CourseID: created.ID,
		Number:   0,
	}
	r.sections[section.ID] = section

	return copyCourse(created), nil
}

func (r *courseRepository) UpdateFullName(ctx context.Context, id model.CourseID, fullName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, exists := r.courses[id]
	if !exists {
		return goerr.Wrap(ErrNotFound, "course not found", goerr.V("id", id))
	}
	c.FullName = fullName
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *courseRepository) SetVisible(ctx context.Context, id model.CourseID, visible bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, exists := r.courses[id]
	if !exists {
		return goerr.Wrap(ErrNotFound, "course not found", goerr.V("id", id))
	}
	c.Visible = visible
	c.UpdatedAt = time.Now().UTC()
	return nil
}

type categoryRepository struct {
	mu         sync.RWMutex
	categories map[model.CategoryID]*model.Category
}

func newCategoryRepository() *categoryRepository {
	return &categoryRepository{
		categories: make(map[model.CategoryID]*model.Category),
	}
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*model.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if c.Name == name {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *categoryRepository) Create(ctx context.Context, c *model.Category) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := *c
	if created.ID == "" {
		created.ID = model.NewCategoryID()
	}
	created.CreatedAt = time.Now().UTC()
	r.categories[created.ID] = &created

	copied := created
	return &copied, nil
}
