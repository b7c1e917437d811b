package repository

import (
	"context"
	"scorekeeper/internal/apperr"
	"scorekeeper/internal/models"
	"scorekeeper/internal/storage"
	"time"
)

type RecordRepositoryInterface interface {
	Students() *Collection
	Winners() *Collection
	ActivityLog() *Collection
	GuestLinks() *Collection

	AppendActivity(ctx context.Context, action string, details map[string]any) (string, error)
	StudentsByClass(ctx context.Context, classID string) ([]models.Document, error)
	FindGuestLinkByToken(ctx context.Context, token string) (models.GuestLink, error)
	FindValidGuestLink(ctx context.Context, classID string, now time.Time) (models.GuestLink, bool, error)
	DeleteGuestLink(ctx context.Context, id string) error
	ReplaceStudents(ctx context.Context, docs []models.Document) (int, error)
}

type RecordRepository struct {
	store       storage.DocumentStore
	students    *Collection
	winners     *Collection
	activityLog *Collection
	guestLinks  *Collection
}

func NewRecordRepository(store storage.DocumentStore) RecordRepositoryInterface {
	return &RecordRepository{
		store:       store,
		students:    NewCollection(store, storage.CollectionStudents),
		winners:     NewCollection(store, storage.CollectionWinners),
		activityLog: NewCollection(store, storage.CollectionActivityLog),
		guestLinks:  NewCollection(store, storage.CollectionGuestLinks),
	}
}

func (r *RecordRepository) Students() *Collection    { return r.students }
func (r *RecordRepository) Winners() *Collection     { return r.winners }
func (r *RecordRepository) ActivityLog() *Collection { return r.activityLog }
func (r *RecordRepository) GuestLinks() *Collection  { return r.guestLinks }

// AppendActivity adds an audit entry; the store assigns its id and timestamp.
func (r *RecordRepository) AppendActivity(ctx context.Context, action string, details map[string]any) (string, error) {
	if details == nil {
		details = map[string]any{}
	}
	id, err := r.store.AppendTimestamped(ctx, storage.CollectionActivityLog, "timestamp", map[string]any{
		"action":  action,
		"details": details,
	})
	if err != nil {
		return "", apperr.Store("append", storage.CollectionActivityLog, err)
	}
	return id, nil
}

func (r *RecordRepository) StudentsByClass(ctx context.Context, classID string) ([]models.Document, error) {
	return r.students.Query(ctx, 0, storage.Eq("classId", classID))
}

func (r *RecordRepository) FindGuestLinkByToken(ctx context.Context, token string) (models.GuestLink, error) {
	docs, err := r.guestLinks.Query(ctx, 1, storage.Eq("token", token))
	if err != nil {
		return models.GuestLink{}, err
	}
	if len(docs) == 0 {
		return models.GuestLink{}, apperr.NotFound("guest link", token)
	}
	return models.GuestLinkFromDocument(docs[0]), nil
}

// FindValidGuestLink returns a link for classID whose expiry is strictly
// after now, if one exists.
func (r *RecordRepository) FindValidGuestLink(ctx context.Context, classID string, now time.Time) (models.GuestLink, bool, error) {
	docs, err := r.guestLinks.Query(ctx, 1, storage.Eq("classId", classID), storage.After("expiry", now))
	if err != nil {
		return models.GuestLink{}, false, err
	}
	if len(docs) == 0 {
		return models.GuestLink{}, false, nil
	}
	return models.GuestLinkFromDocument(docs[0]), true, nil
}

func (r *RecordRepository) DeleteGuestLink(ctx context.Context, id string) error {
	return r.guestLinks.DeleteMany(ctx, []string{id})
}

// ReplaceStudents swaps the whole students collection for docs and returns
// how many records were removed. Stores without an atomic replace get a
// delete followed by an insert; if the insert fails after the delete went
// through, the error is *apperr.PartialRestoreError.
func (r *RecordRepository) ReplaceStudents(ctx context.Context, docs []models.Document) (int, error) {
	if replacer, ok := r.store.(storage.AtomicReplacer); ok {
		deleted, err := replacer.ReplaceAll(ctx, storage.CollectionStudents, docs)
		if err != nil {
			return 0, apperr.Store("replace", storage.CollectionStudents, err)
		}
		return deleted, nil
	}

	deleted, err := r.students.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	if _, err := r.students.InsertMany(ctx, docs); err != nil {
		return deleted, &apperr.PartialRestoreError{Deleted: deleted, Err: err}
	}
	return deleted, nil
}
