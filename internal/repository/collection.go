package repository

import (
	"context"
	"scorekeeper/internal/apperr"
	"scorekeeper/internal/models"
	"scorekeeper/internal/storage"
)

// Collection is one named collection of the document store. Every store
// failure comes back as *apperr.StoreError.
type Collection struct {
	store storage.DocumentStore
	name  string
}

func NewCollection(store storage.DocumentStore, name string) *Collection {
	return &Collection{store: store, name: name}
}

func (c *Collection) Name() string {
	return c.name
}

func (c *Collection) GetAll(ctx context.Context) ([]models.Document, error) {
	docs, err := c.store.GetAll(ctx, c.name)
	if err != nil {
		return nil, apperr.Store("get all", c.name, err)
	}
	return docs, nil
}

func (c *Collection) Query(ctx context.Context, limit int, filters ...storage.Filter) ([]models.Document, error) {
	docs, err := c.store.Query(ctx, c.name, limit, filters...)
	if err != nil {
		return nil, apperr.Store("query", c.name, err)
	}
	return docs, nil
}

func (c *Collection) Insert(ctx context.Context, doc models.Document) (string, error) {
	id, err := c.store.Insert(ctx, c.name, doc)
	if err != nil {
		return "", apperr.Store("insert", c.name, err)
	}
	return id, nil
}

func (c *Collection) InsertMany(ctx context.Context, docs []models.Document) ([]string, error) {
	if len(docs) == 0 {
		return []string{}, nil
	}
	ids, err := c.store.InsertMany(ctx, c.name, docs)
	if err != nil {
		return nil, apperr.Store("insert many", c.name, err)
	}
	return ids, nil
}

func (c *Collection) DeleteAll(ctx context.Context) (int, error) {
	n, err := c.store.DeleteAll(ctx, c.name)
	if err != nil {
		return 0, apperr.Store("delete all", c.name, err)
	}
	return n, nil
}

func (c *Collection) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := c.store.DeleteMany(ctx, c.name, ids); err != nil {
		return apperr.Store("delete many", c.name, err)
	}
	return nil
}
