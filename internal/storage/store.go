package storage

import (
	"context"
	"scorekeeper/internal/models"
)

const (
	CollectionStudents    = "students"
	CollectionWinners     = "winners"
	CollectionActivityLog = "activityLog"
	CollectionGuestLinks  = "guestLinks"
)

// DocumentStore is the document database the repository talks to. Every
// multi-document write is all-or-nothing.
type DocumentStore interface {
	GetAll(ctx context.Context, collection string) ([]models.Document, error)
	// Query returns documents matching every filter; limit <= 0 means no limit.
	Query(ctx context.Context, collection string, limit int, filters ...Filter) ([]models.Document, error)
	// Insert writes doc under doc.ID, or under a fresh id when doc.ID is empty,
	// and returns the id used.
	Insert(ctx context.Context, collection string, doc models.Document) (string, error)
	InsertMany(ctx context.Context, collection string, docs []models.Document) ([]string, error)
	// AppendTimestamped inserts fields under a fresh id with field set to the
	// store's own clock.
	AppendTimestamped(ctx context.Context, collection, field string, fields map[string]any) (string, error)
	DeleteAll(ctx context.Context, collection string) (int, error)
	DeleteMany(ctx context.Context, collection string, ids []string) error
	Close() error
}

// AtomicReplacer is implemented by stores that can swap a whole collection
// in one transaction.
type AtomicReplacer interface {
	ReplaceAll(ctx context.Context, collection string, docs []models.Document) (int, error)
}
