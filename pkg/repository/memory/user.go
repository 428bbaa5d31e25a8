package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/campus-lab/rostersync/pkg/domain/model"
)

type userRepository struct {
	mu    sync.RWMutex
	users map[model.UserID]*model.User

	// insertion order, so scans over duplicate keys stay deterministic
	order []model.UserID
}

func newUserRepository() *userRepository {
	return &userRepository{
		users: make(map[model.UserID]*model.User),
	}
}

func copyUser(u *model.User) *model.User {
	copied := *u
	return &copied
}

func (r *userRepository) GetByIDNumber(ctx context.Context, idNumber string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if idNumber == "" {
		return nil, nil
	}
	for _, id := range r.order {
		if u := r.users[id]; u != nil && u.IDNumber == idNumber {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if username == "" {
		return nil, nil
	}
	for _, id := range r.order {
		if u := r.users[id]; u != nil && u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (r *userRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyUser(u)
	if created.ID == "" {
		created.ID = model.NewUserID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now
	r.users[created.ID] = created
	r.order = append(r.order, created.ID)

	return copyUser(created), nil
}

func (r *userRepository) Update(ctx context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.users[u.ID]
	if !exists {
		return goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", u.ID))
	}

	updated := copyUser(u)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.users[u.ID] = updated
	return nil
}

func (r *userRepository) SetDeletedByUsername(ctx context.Context, username string, deleted bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.order {
		if u := r.users[id]; u != nil && u.Username == username {
			u.Deleted = deleted
			u.UpdatedAt = time.Now().UTC()
		}
	}
	return nil
}

func (r *userRepository) SetDeletedByIDNumber(ctx context.Context, idNumber string, deleted bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if idNumber == "" {
		return nil
	}
	for _, id := range r.order {
		if u := r.users[id]; u != nil && u.IDNumber == idNumber {
			u.Deleted = deleted
			u.UpdatedAt = time.Now().UTC()
		}
	}
	return nil
}
