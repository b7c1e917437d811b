package storage

import (
	"context"
	"fmt"
	"scorekeeper/internal/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

type FirestoreOptions struct {
	ProjectID       string
	Namespace       string
	CredentialsFile string
}

// FirestoreStore keeps collections under artifacts/<namespace>/public/data.
// Multi-document writes run in a single transaction, which Firestore caps
// at 500 writes.
type FirestoreStore struct {
	client *firestore.Client
	root   *firestore.DocumentRef
}

func NewFirestoreStore(ctx context.Context, opts FirestoreOptions) (*FirestoreStore, error) {
	if opts.ProjectID == "" {
		return nil, fmt.Errorf("firestore: project id is required")
	}
	if opts.Namespace == "" {
		return nil, fmt.Errorf("firestore: namespace is required")
	}

	var clientOpts []option.ClientOption
	if opts.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}

	client, err := firestore.NewClient(ctx, opts.ProjectID, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("firestore: create client: %w", err)
	}

	return &FirestoreStore{
		client: client,
		root:   client.Collection("artifacts").Doc(opts.Namespace).Collection("public").Doc("data"),
	}, nil
}

func (s *FirestoreStore) coll(name string) *firestore.CollectionRef {
	return s.root.Collection(name)
}

func toDocuments(snaps []*firestore.DocumentSnapshot) []models.Document {
	docs := make([]models.Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, models.NewDocument(snap.Ref.ID, snap.Data()))
	}
	return docs
}

func (s *FirestoreStore) ref(collection, id string) *firestore.DocumentRef {
	if id == "" {
		return s.coll(collection).NewDoc()
	}
	return s.coll(collection).Doc(id)
}

func (s *FirestoreStore) GetAll(ctx context.Context, collection string) ([]models.Document, error) {
	snaps, err := s.coll(collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	return toDocuments(snaps), nil
}

func (s *FirestoreStore) Query(ctx context.Context, collection string, limit int, filters ...Filter) ([]models.Document, error) {
	q := s.coll(collection).Query
	for _, f := range filters {
		q = q.Where(f.Field, string(f.Op), f.Value)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	return toDocuments(snaps), nil
}

func (s *FirestoreStore) Insert(ctx context.Context, collection string, doc models.Document) (string, error) {
	ref := s.ref(collection, doc.ID)
	if _, err := ref.Set(ctx, doc.Fields); err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (s *FirestoreStore) InsertMany(ctx context.Context, collection string, docs []models.Document) ([]string, error) {
	refs := make([]*firestore.DocumentRef, 0, len(docs))
	for _, doc := range docs {
		refs = append(refs, s.ref(collection, doc.ID))
	}

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for i, doc := range docs {
			if err := tx.Set(refs[i], doc.Fields); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}
	return ids, nil
}

func (s *FirestoreStore) AppendTimestamped(ctx context.Context, collection, field string, fields map[string]any) (string, error) {
	data := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		data[k] = v
	}
	data[field] = firestore.ServerTimestamp

	ref, _, err := s.coll(collection).Add(ctx, data)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (s *FirestoreStore) DeleteAll(ctx context.Context, collection string) (int, error) {
	var deleted int
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snaps, err := tx.Documents(s.coll(collection)).GetAll()
		if err != nil {
			return err
		}
		for _, snap := range snaps {
			if err := tx.Delete(snap.Ref); err != nil {
				return err
			}
		}
		deleted = len(snaps)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (s *FirestoreStore) DeleteMany(ctx context.Context, collection string, ids []string) error {
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for _, id := range ids {
			if err := tx.Delete(s.coll(collection).Doc(id)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *FirestoreStore) ReplaceAll(ctx context.Context, collection string, docs []models.Document) (int, error) {
	refs := make([]*firestore.DocumentRef, 0, len(docs))
	for _, doc := range docs {
		refs = append(refs, s.ref(collection, doc.ID))
	}

	var deleted int
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snaps, err := tx.Documents(s.coll(collection)).GetAll()
		if err != nil {
			return err
		}
		for _, snap := range snaps {
			if err := tx.Delete(snap.Ref); err != nil {
				return err
			}
		}
		for i, doc := range docs {
			if err := tx.Set(refs[i], doc.Fields); err != nil {
				return err
			}
		}
		deleted = len(snaps)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
