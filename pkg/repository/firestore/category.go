package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/campus-lab/rostersync/pkg/domain/model"
)

type categoryDocument struct {
	ID        string    `firestore:"id"`
	Name      string    `firestore:"name"`
	Visible   bool      `firestore:"visible"`
	CreatedAt time.Time `firestore:"created_at"`
}

type categoryRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newCategoryRepository(client *firestore.Client) *categoryRepository {
	return &categoryRepository{client: client}
}

func (r *categoryRepository) collection() string {
	return collectionName(r.collectionPrefix, "course_categories")
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*model.Category, error) {
	iter := r.client.Collection(r.collection()).
		Where("name", "==", name).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query category", goerr.V("name", name))
	}

	var catDoc categoryDocument
	if err := doc.DataTo(&catDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal category", goerr.V("name", name))
	}

	return &model.Category{
		ID:        model.CategoryID(catDoc.ID),
		Name:      catDoc.Name,
		Visible:   catDoc.Visible,
		CreatedAt: catDoc.CreatedAt,
	}, nil
}

func (r *categoryRepository) Create(ctx context.Context, c *model.Category) (*model.Category, error) {
	if c.ID == "" {
		c.ID = model.NewCategoryID()
	}
	c.CreatedAt = time.Now().UTC()

	doc := &categoryDocument{
		ID:        string(c.ID),
		Name:      c.Name,
		Visible:   c.Visible,
		CreatedAt: c.CreatedAt,
	}
	docRef := r.client.Collection(r.collection()).Doc(string(c.ID))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create category", goerr.V("name", c.Name))
	}

	copied := *c
	return &copied, nil
}
