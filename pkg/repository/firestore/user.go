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

type userDocument struct {
	ID          string    `firestore:"id"`
	IDNumber    string    `firestore:"idnumber"`
	Username    string    `firestore:"username"`
	FirstName   string    `firestore:"firstname"`
	LastName    string    `firestore:"lastname"`
	Email       string    `firestore:"email"`
	URL         string    `firestore:"url"`
	City        string    `firestore:"city"`
	Country     string    `firestore:"country"`
	Auth        string    `firestore:"auth"`
	Lang        string    `firestore:"lang"`
	Description string    `firestore:"description"`
	Confirmed   bool      `firestore:"confirmed"`
	Deleted     bool      `firestore:"deleted"`
	Suspended   bool      `firestore:"suspended"`
	CreatedAt   time.Time `firestore:"created_at"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

type userRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newUserRepository(client *firestore.Client) *userRepository {
	return &userRepository{client: client}
}

func (r *userRepository) collection() string {
	return collectionName(r.collectionPrefix, "users")
}

func userToDocument(u *model.User) *userDocument {
	return &userDocument{
		ID:          string(u.ID),
		IDNumber:    u.IDNumber,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		URL:         u.URL,
		City:        u.City,
		Country:     u.Country,
		Auth:        u.Auth,
		Lang:        u.Lang,
		Description: u.Description,
		Confirmed:   u.Confirmed,
		Deleted:     u.Deleted,
		Suspended:   u.Suspended,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func userToModel(doc *userDocument) *model.User {
	return &model.User{
		ID:          model.UserID(doc.ID),
		IDNumber:    doc.IDNumber,
		Username:    doc.Username,
		FirstName:   doc.FirstName,
		LastName:    doc.LastName,
		Email:       doc.Email,
		URL:         doc.URL,
		City:        doc.City,
		Country:     doc.Country,
		Auth:        doc.Auth,
		Lang:        doc.Lang,
		Description: doc.Description,
		Confirmed:   doc.Confirmed,
		Deleted:     doc.Deleted,
		Suspended:   doc.Suspended,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

func (r *userRepository) queryOne(ctx context.Context, field, value string) (*model.User, error) {
	if value == "" {
		return nil, nil
	}

	// Oldest account wins when duplicates exist; the index is assured by the
	// migrate command
	iter := r.client.Collection(r.collection()).
		Where(field, "==", value).
		OrderBy("created_at", firestore.Asc).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query user", goerr.V(field, value))
	}

	var userDoc userDocument
	if err := doc.DataTo(&userDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal user", goerr.V(field, value))
	}
	return userToModel(&userDoc), nil
}

func (r *userRepository) GetByIDNumber(ctx context.Context, idNumber string) (*model.User, error) {
	return r.queryOne(ctx, "idnumber", idNumber)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.queryOne(ctx, "username", username)
}

func (r *userRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	now := time.Now().UTC()
	if u.ID == "" {
		u.ID = model.NewUserID()
	}
	u.CreatedAt = now
	u.UpdatedAt = now

	doc := userToDocument(u)
	docRef := r.client.Collection(r.collection()).Doc(string(u.ID))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create user", goerr.V("idnumber", u.IDNumber))
	}
	return userToModel(doc), nil
}

func (r *userRepository) Update(ctx context.Context, u *model.User) error {
	u.UpdatedAt = time.Now().UTC()
	doc := userToDocument(u)

	docRef := r.client.Collection(r.collection()).Doc(string(u.ID))
	if _, err := docRef.Set(ctx, doc); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", u.ID))
		}
		return goerr.Wrap(err, "failed to update user", goerr.V("id", u.ID))
	}
	return nil
}

func (r *userRepository) setDeletedBy(ctx context.Context, field, value string, deleted bool) error {
	if value == "" {
		return nil
	}

	iter := r.client.Collection(r.collection()).
		Where(field, "==", value).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return goerr.Wrap(err, "failed to query user for soft delete", goerr.V(field, value))
		}

		_, err = doc.Ref.Update(ctx, []firestore.Update{
			{Path: "deleted", Value: deleted},
			{Path: "updated_at", Value: time.Now().UTC()},
		})
		if err != nil {
			return goerr.Wrap(err, "failed to update user deleted flag", goerr.V(field, value))
		}
	}
}

func (r *userRepository) SetDeletedByUsername(ctx context.Context, username string, deleted bool) error {
	return r.setDeletedBy(ctx, "username", username, deleted)
}

func (r *userRepository) SetDeletedByIDNumber(ctx context.Context, idNumber string, deleted bool) error {
	return r.setDeletedBy(ctx, "idnumber", idNumber, deleted)
}
