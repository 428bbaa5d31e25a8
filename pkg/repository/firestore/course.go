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
)

type courseDocument struct {
	ID          string    `firestore:"id"`
	IDNumber    string    `firestore:"idnumber"`
	FullName    string    `firestore:"fullname"`
	ShortName   string    `firestore:"shortname"`
	CategoryID  string    `firestore:"category_id"`
	Visible     bool      `firestore:"visible"`
	Format      string    `firestore:"format"`
	NumSections int       `firestore:"num_sections"`
	SortOrder   int       `firestore:"sortorder"`
	StartDate   time.Time `firestore:"startdate"`
	CreatedAt   time.Time `firestore:"created_at"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

type sectionDocument struct {
	ID       string `firestore:"id"`
	CourseID string `firestore:"course_id"`
	Number   int    `firestore:"number"`
}

type courseRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newCourseRepository(client *firestore.Client) *courseRepository {
	return &courseRepository{client: client}
}

func (r *courseRepository) coursesCollection() string {
	return collectionName(r.collectionPrefix, "courses")
}

func (r *courseRepository) sectionsCollection() string {
	return collectionName(r.collectionPrefix, "course_sections")
}

func courseToDocument(c *model.Course) *courseDocument {
	return &courseDocument{
		ID:          string(c.ID),
		IDNumber:    c.IDNumber,
		FullName:    c.FullName,
		ShortName:   c.ShortName,
		CategoryID:  string(c.CategoryID),
		Visible:     c.Visible,
		Format:      c.Format,
		NumSections: c.NumSections,
		SortOrder:   c.SortOrder,
		StartDate:   c.StartDate,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func courseToModel(doc *courseDocument) *model.Course {
	return &model.Course{
		ID:          model.CourseID(doc.ID),
		IDNumber:    doc.IDNumber,
		FullName:    doc.FullName,
		ShortName:   doc.ShortName,
		CategoryID:  model.CategoryID(doc.CategoryID),
		Visible:     doc.Visible,
		Format:      doc.Format,
		NumSections: doc.NumSections,
		SortOrder:   doc.SortOrder,
		StartDate:   doc.StartDate,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

func (r *courseRepository) GetByIDNumber(ctx context.Context, idNumber string) (*model.Course, error) {
	iter := r.client.Collection(r.coursesCollection()).
		Where("idnumber", "==", idNumber).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query course", goerr.V("idnumber", idNumber))
	}

	var courseDoc courseDocument
	if err := doc.DataTo(&courseDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal course", goerr.V("idnumber", idNumber))
	}
	return courseToModel(&courseDoc), nil
}

func (r *courseRepository) Create(ctx context.Context, c *model.Course) (*model.Course, error) {
	now := time.Now().UTC()
	if c.ID == "" {
		c.ID = model.NewCourseID()
	}
	c.CreatedAt = now
	c.UpdatedAt = now

	doc := courseToDocument(c)
	docRef := r.client.Collection(r.coursesCollection()).Doc(string(c.ID))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create course", goerr.V("idnumber", c.IDNumber))
	}

	// Every new course gets its default section zero
	section := &sectionDocument{
		ID:       string(model.NewSectionID()),
		CourseID: string(c.ID),
		Number:   0,
	}
	sectionRef := r.client.Collection(r.sectionsCollection()).Doc(section.ID)
	if _, err := sectionRef.Set(ctx, section); err != nil {
		return nil, goerr.Wrap(err, "failed to create default course section", goerr.V("course_id", c.ID))
	}

	return courseToModel(doc), nil
}

func (r *courseRepository) UpdateFullName(ctx context.Context, id model.CourseID, fullName string) error {
	docRef := r.client.Collection(r.coursesCollection()).Doc(string(id))
	_, err := docRef.Update(ctx, []firestore.Update{
		{Path: "fullname", Value: fullName},
		{Path: "updated_at", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "course not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to update course fullname", goerr.V("id", id))
	}
	return nil
}

func (r *courseRepository) SetVisible(ctx context.Context, id model.CourseID, visible bool) error {
	docRef := r.client.Collection(r.coursesCollection()).Doc(string(id))
	_, err := docRef.Update(ctx, []firestore.Update{
		{Path: "visible", Value: visible},
		{Path: "updated_at", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "course not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to update course visibility", goerr.V("id", id))
	}
	return nil
}
