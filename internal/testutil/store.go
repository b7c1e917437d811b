package testutil

import (
	"context"
	"fmt"
	"scorekeeper/internal/models"
	"scorekeeper/internal/storage"
	"sync"
	"time"
)

// FakeStore is an in-memory storage.DocumentStore without atomic replace.
// Fail maps "<op>:<collection>" (or "<op>:*") to the error that operation
// returns. Ops: getAll, query, insert, insertMany, append, deleteAll,
// deleteMany.
type FakeStore struct {
	mu    sync.Mutex
	data  map[string][]models.Document
	seq   int
	Now   func() time.Time
	Fail  map[string]error
	Calls []string
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		data: make(map[string][]models.Document),
		Now:  time.Now,
		Fail: make(map[string]error),
	}
}

func (f *FakeStore) check(op, collection string) error {
	f.Calls = append(f.Calls, op+":"+collection)
	if err, ok := f.Fail[op+":"+collection]; ok {
		return err
	}
	return f.Fail[op+":*"]
}

func (f *FakeStore) nextID() string {
	f.seq++
	return fmt.Sprintf("doc-%04d", f.seq)
}

func copyDoc(d models.Document) models.Document {
	fields := make(map[string]any, len(d.Fields))
	for k, v := range d.Fields {
		fields[k] = v
	}
	return models.NewDocument(d.ID, fields)
}

// Seed puts docs straight into a collection, bypassing failure injection.
func (f *FakeStore) Seed(collection string, docs ...models.Document) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range docs {
		d = copyDoc(d)
		if d.ID == "" {
			d.ID = f.nextID()
		}
		f.put(collection, d)
	}
}

// Docs returns the current content of a collection.
func (f *FakeStore) Docs(collection string) []models.Document {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Document, 0, len(f.data[collection]))
	for _, d := range f.data[collection] {
		out = append(out, copyDoc(d))
	}
	return out
}

func (f *FakeStore) put(collection string, d models.Document) {
	for i, existing := range f.data[collection] {
		if existing.ID == d.ID {
			f.data[collection][i] = d
			return
		}
	}
	f.data[collection] = append(f.data[collection], d)
}

func (f *FakeStore) GetAll(ctx context.Context, collection string) ([]models.Document, error) {
	return f.Query(ctx, collection, 0)
}

func (f *FakeStore) Query(ctx context.Context, collection string, limit int, filters ...storage.Filter) ([]models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	op := "query"
	if len(filters) == 0 && limit == 0 {
		op = "getAll"
	}
	if err := f.check(op, collection); err != nil {
		return nil, err
	}
	out := make([]models.Document, 0)
	for _, d := range f.data[collection] {
		if !storage.Matches(d, filters) {
			continue
		}
		out = append(out, copyDoc(d))
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (f *FakeStore) Insert(ctx context.Context, collection string, doc models.Document) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("insert", collection); err != nil {
		return "", err
	}
	doc = copyDoc(doc)
	if doc.ID == "" {
		doc.ID = f.nextID()
	}
	f.put(collection, doc)
	return doc.ID, nil
}

func (f *FakeStore) InsertMany(ctx context.Context, collection string, docs []models.Document) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("insertMany", collection); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		d = copyDoc(d)
		if d.ID == "" {
			d.ID = f.nextID()
		}
		f.put(collection, d)
		ids = append(ids, d.ID)
	}
	return ids, nil
}

func (f *FakeStore) AppendTimestamped(ctx context.Context, collection, field string, fields map[string]any) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("append", collection); err != nil {
		return "", err
	}
	d := copyDoc(models.NewDocument(f.nextID(), fields))
	d.Fields[field] = f.Now().UTC()
	f.put(collection, d)
	return d.ID, nil
}

func (f *FakeStore) DeleteAll(ctx context.Context, collection string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("deleteAll", collection); err != nil {
		return 0, err
	}
	n := len(f.data[collection])
	delete(f.data, collection)
	return n, nil
}

func (f *FakeStore) DeleteMany(ctx context.Context, collection string, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("deleteMany", collection); err != nil {
		return err
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := f.data[collection][:0]
	for _, d := range f.data[collection] {
		if !drop[d.ID] {
			kept = append(kept, d)
		}
	}
	f.data[collection] = kept
	return nil
}

func (f *FakeStore) Close() error { return nil }
