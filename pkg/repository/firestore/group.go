package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/campus-lab/rostersync/pkg/domain/model"
)

type groupDocument struct {
	ID        string    `firestore:"id"`
	CourseID  string    `firestore:"course_id"`
	Name      string    `firestore:"name"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type groupMemberDocument struct {
	GroupID   string    `firestore:"group_id"`
	UserID    string    `firestore:"user_id"`
	CreatedAt time.Time `firestore:"created_at"`
}

type groupRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newGroupRepository(client *firestore.Client) *groupRepository {
	return &groupRepository{client: client}
}

func (r *groupRepository) groupsCollection() string {
	return collectionName(r.collectionPrefix, "course_groups")
}

func (r *groupRepository) membersCollection() string {
	return collectionName(r.collectionPrefix, "group_members")
}

func groupToModel(doc *groupDocument) *model.CourseGroup {
	return &model.CourseGroup{
		ID:        model.GroupID(doc.ID),
		CourseID:  model.CourseID(doc.CourseID),
		Name:      doc.Name,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

func (r *groupRepository) GetByName(ctx context.Context, courseID model.CourseID, name string) (*model.CourseGroup, error) {
	iter := r.client.Collection(r.groupsCollection()).
		Where("course_id", "==", string(courseID)).
		Where("name", "==", name).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query course group",
			goerr.V("courseID", courseID), goerr.V("name", name))
	}

	var groupDoc groupDocument
	if err := doc.DataTo(&groupDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal course group",
			goerr.V("courseID", courseID), goerr.V("name", name))
	}
	return groupToModel(&groupDoc), nil
}

func (r *groupRepository) Create(ctx context.Context, g *model.CourseGroup) (*model.CourseGroup, error) {
	now := time.Now().UTC()
	if g.ID == "" {
		g.ID = model.NewGroupID()
	}
	g.CreatedAt = now
	g.UpdatedAt = now

	doc := &groupDocument{
		ID:        string(g.ID),
		CourseID:  string(g.CourseID),
		Name:      g.Name,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}

	docRef := r.client.Collection(r.groupsCollection()).Doc(doc.ID)
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create course group",
			goerr.V("courseID", g.CourseID), goerr.V("name", g.Name))
	}
	return groupToModel(doc), nil
}

func (r *groupRepository) AddMember(ctx context.Context, groupID model.GroupID, userID model.UserID) error {
	doc := &groupMemberDocument{
		GroupID:   string(groupID),
		UserID:    string(userID),
		CreatedAt: time.Now().UTC(),
	}

	// Deterministic document ID makes repeated adds an overwrite, not a
	// duplicate
	docRef := r.client.Collection(r.membersCollection()).Doc(string(groupID) + "_" + string(userID))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to add group member",
			goerr.V("groupID", groupID), goerr.V("userID", userID))
	}
	return nil
}
