package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/campus-lab/rostersync/pkg/domain/model"
)

// ledgerDocID is the fixed document holding the last processed feed identity
const ledgerDocID = "last_feed"

type ledgerDocument struct {
	Path        string    `firestore:"path"`
	Fingerprint string    `firestore:"fingerprint"`
	ModifiedAt  time.Time `firestore:"modified_at"`
	RecordedAt  time.Time `firestore:"recorded_at"`
}

type ledgerRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newLedgerRepository(client *firestore.Client) *ledgerRepository {
	return &ledgerRepository{client: client}
}

func (r *ledgerRepository) collection() string {
	return collectionName(r.collectionPrefix, "sync_ledger")
}

func (r *ledgerRepository) Get(ctx context.Context) (*model.FeedIdentity, error) {
	doc, err := r.client.Collection(r.collection()).Doc(ledgerDocID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get feed ledger")
	}

	var ledgerDoc ledgerDocument
	if err := doc.DataTo(&ledgerDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal feed ledger")
	}
	return &model.FeedIdentity{
		Path:        ledgerDoc.Path,
		Fingerprint: ledgerDoc.Fingerprint,
		ModifiedAt:  ledgerDoc.ModifiedAt,
	}, nil
}

func (r *ledgerRepository) Put(ctx context.Context, id *model.FeedIdentity) error {
	doc := &ledgerDocument{
		Path:        id.Path,
		Fingerprint: id.Fingerprint,
		ModifiedAt:  id.ModifiedAt,
		RecordedAt:  time.Now().UTC(),
	}

	docRef := r.client.Collection(r.collection()).Doc(ledgerDocID)
	if _, err := docRef.Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put feed ledger", goerr.V("path", id.Path))
	}
	return nil
}
