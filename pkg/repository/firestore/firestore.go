// Package firestore provides the Firestore-backed repository. One document
// collection per entity type; the external idnumber keys are plain document
// fields resolved through single-field queries, so the reconciler's lookups
// never concatenate feed values into query strings.
package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"

	"github.com/campus-lab/rostersync/pkg/domain/interfaces"
)

// ErrNotFound is returned when a mutation targets an entity that does not
// exist. Lookups signal a miss with (nil, nil) instead.
var ErrNotFound = goerr.New("record not found")

// Firestore is a Firestore-backed implementation of interfaces.Repository
type Firestore struct {
	client    *firestore.Client
	course    *courseRepository
	category  *categoryRepository
	user      *userRepository
	group     *groupRepository
	enrolment *enrolmentRepository
	ledger    *ledgerRepository
}

var _ interfaces.Repository = &Firestore{}

// Option is a functional option for Firestore configuration
type Option func(*Firestore)

// WithCollectionPrefix prefixes every collection name, so multiple
// deployments can share a database
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.course.collectionPrefix = prefix
		f.category.collectionPrefix = prefix
		f.user.collectionPrefix = prefix
		f.group.collectionPrefix = prefix
		f.enrolment.collectionPrefix = prefix
		f.ledger.collectionPrefix = prefix
	}
}

// New creates a Firestore repository. The caller is responsible for calling
// Close() on the returned repository.
func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID == "" {
		client, err = firestore.NewClient(ctx, projectID)
	} else {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:    client,
		course:    newCourseRepository(client),
		category:  newCategoryRepository(client),
		user:      newUserRepository(client),
		group:     newGroupRepository(client),
		enrolment: newEnrolmentRepository(client),
		ledger:    newLedgerRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Course() interfaces.CourseRepository {
	return f.course
}

func (f *Firestore) Category() interfaces.CategoryRepository {
	return f.category
}

func (f *Firestore) User() interfaces.UserRepository {
	return f.user
}

func (f *Firestore) Group() interfaces.GroupRepository {
	return f.group
}

func (f *Firestore) Enrolment() interfaces.EnrolmentRepository {
	return f.enrolment
}

func (f *Firestore) Ledger() interfaces.LedgerRepository {
	return f.ledger
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

func collectionName(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}
