package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/campus-lab/rostersync/pkg/domain/model"
	"github.com/campus-lab/rostersync/pkg/domain/types"
)

type enrolInstanceDocument struct {
	ID        string    `firestore:"id"`
	CourseID  string    `firestore:"course_id"`
	Method    string    `firestore:"method"`
	CreatedAt time.Time `firestore:"created_at"`
}

type userEnrolmentDocument struct {
	InstanceID string    `firestore:"instance_id"`
	UserID     string    `firestore:"user_id"`
	RoleID     int       `firestore:"role_id"`
	TimeStart  int64     `firestore:"time_start"`
	TimeEnd    int64     `firestore:"time_end"`
	UpdatedAt  time.Time `firestore:"updated_at"`
}

type enrolmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newEnrolmentRepository(client *firestore.Client) *enrolmentRepository {
	return &enrolmentRepository{client: client}
}

func (r *enrolmentRepository) instancesCollection() string {
	return collectionName(r.collectionPrefix, "enrol_instances")
}

func (r *enrolmentRepository) enrolmentsCollection() string {
	return collectionName(r.collectionPrefix, "user_enrolments")
}

// enrolmentDocID gives user enrolments a deterministic document ID, so Enrol
// is an idempotent Set and Unenrol a plain Delete.
func enrolmentDocID(instanceID model.EnrolmentID, userID model.UserID) string {
	return string(instanceID) + "_" + string(userID)
}

func instanceToModel(doc *enrolInstanceDocument) *model.EnrolInstance {
	return &model.EnrolInstance{
		ID:        model.EnrolmentID(doc.ID),
		CourseID:  model.CourseID(doc.CourseID),
		Method:    doc.Method,
		CreatedAt: doc.CreatedAt,
	}
}

func (r *enrolmentRepository) GetInstance(ctx context.Context, courseID model.CourseID) (*model.EnrolInstance, error) {
	iter := r.client.Collection(r.instancesCollection()).
		Where("course_id", "==", string(courseID)).
		Where("method", "==", model.EnrolMethod).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query enrol instance", goerr.V("courseID", courseID))
	}

	var instDoc enrolInstanceDocument
	if err := doc.DataTo(&instDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal enrol instance", goerr.V("courseID", courseID))
	}
	return instanceToModel(&instDoc), nil
}

func (r *enrolmentRepository) ListInstances(ctx context.Context, courseID model.CourseID) ([]*model.EnrolInstance, error) {
	iter := r.client.Collection(r.instancesCollection()).
		Where("course_id", "==", string(courseID)).
		Where("method", "==", model.EnrolMethod).
		Documents(ctx)
	defer iter.Stop()

	var instances []*model.EnrolInstance
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list enrol instances", goerr.V("courseID", courseID))
		}

		var instDoc enrolInstanceDocument
		if err := doc.DataTo(&instDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal enrol instance", goerr.V("courseID", courseID))
		}
		instances = append(instances, instanceToModel(&instDoc))
	}
	return instances, nil
}

func (r *enrolmentRepository) CreateInstance(ctx context.Context, courseID model.CourseID) (*model.EnrolInstance, error) {
	doc := &enrolInstanceDocument{
		ID:        model.NewEnrolmentID().String(),
		CourseID:  string(courseID),
		Method:    model.EnrolMethod,
		CreatedAt: time.Now().UTC(),
	}

	docRef := r.client.Collection(r.instancesCollection()).Doc(doc.ID)
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create enrol instance", goerr.V("courseID", courseID))
	}
	return instanceToModel(doc), nil
}

func (r *enrolmentRepository) Enrol(ctx context.Context, instanceID model.EnrolmentID, userID model.UserID, roleID types.RoleID, timeStart, timeEnd int64) error {
	doc := &userEnrolmentDocument{
		InstanceID: string(instanceID),
		UserID:     string(userID),
		RoleID:     int(roleID),
		TimeStart:  timeStart,
		TimeEnd:    timeEnd,
		UpdatedAt:  time.Now().UTC(),
	}

	docRef := r.client.Collection(r.enrolmentsCollection()).Doc(enrolmentDocID(instanceID, userID))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to enrol user",
			goerr.V("instanceID", instanceID), goerr.V("userID", userID))
	}
	return nil
}

func (r *enrolmentRepository) Unenrol(ctx context.Context, instanceID model.EnrolmentID, userID model.UserID) error {
	docRef := r.client.Collection(r.enrolmentsCollection()).Doc(enrolmentDocID(instanceID, userID))
	if _, err := docRef.Delete(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil
		}
		return goerr.Wrap(err, "failed to unenrol user",
			goerr.V("instanceID", instanceID), goerr.V("userID", userID))
	}
	return nil
}

func (r *enrolmentRepository) GetEnrolment(ctx context.Context, instanceID model.EnrolmentID, userID model.UserID) (*model.UserEnrolment, error) {
	docRef := r.client.Collection(r.enrolmentsCollection()).Doc(enrolmentDocID(instanceID, userID))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get user enrolment",
			goerr.V("instanceID", instanceID), goerr.V("userID", userID))
	}

	var enrolDoc userEnrolmentDocument
	if err := doc.DataTo(&enrolDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal user enrolment",
			goerr.V("instanceID", instanceID), goerr.V("userID", userID))
	}
	return &model.UserEnrolment{
		InstanceID: model.EnrolmentID(enrolDoc.InstanceID),
		UserID:     model.UserID(enrolDoc.UserID),
		RoleID:     types.RoleID(enrolDoc.RoleID),
		TimeStart:  enrolDoc.TimeStart,
		TimeEnd:    enrolDoc.TimeEnd,
		UpdatedAt:  enrolDoc.UpdatedAt,
	}, nil
}

func (r *enrolmentRepository) IsEnrolled(ctx context.Context, instanceID model.EnrolmentID, userID model.UserID) (bool, error) {
	docRef := r.client.Collection(r.enrolmentsCollection()).Doc(enrolmentDocID(instanceID, userID))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, goerr.Wrap(err, "failed to get user enrolment",
			goerr.V("instanceID", instanceID), goerr.V("userID", userID))
	}
	return doc.Exists(), nil
}
