package storage

import (
	"context"
	"crypto/rand"
	"fmt"
	"scorekeeper/internal/models"
	"scorekeeper/internal/providers"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v3"
	json "github.com/goccy/go-json"
	"github.com/oklog/ulid/v2"
)

type BadgerOptions struct {
	Dir       string
	Namespace string
	InMemory  bool
}

// BadgerStore keeps documents in an embedded badger database under
// "<namespace>/<collection>/<id>" keys. Generated ids are monotonic ULIDs,
// so key order is insertion order.
type BadgerStore struct {
	db        *badger.DB
	namespace string

	idMu    sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

func NewBadgerStore(opts BadgerOptions, logger providers.Logger) (*BadgerStore, error) {
	if opts.Namespace == "" {
		return nil, fmt.Errorf("badger: namespace is required")
	}

	var bo badger.Options
	if opts.InMemory {
		bo = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if opts.Dir == "" {
			return nil, fmt.Errorf("badger: dir is required")
		}
		bo = badger.DefaultOptions(opts.Dir)
	}
	if logger != nil {
		bo = bo.WithLogger(&badgerLogger{logger: logger})
	} else {
		bo = bo.WithLogger(nil)
	}

	db, err := badger.Open(bo)
	if err != nil {
		return nil, fmt.Errorf("badger: open db: %w", err)
	}

	return &BadgerStore{
		db:        db,
		namespace: opts.Namespace,
		entropy:   ulid.Monotonic(rand.Reader, 0),
		now:       time.Now,
	}, nil
}

func (s *BadgerStore) prefix(collection string) []byte {
	return []byte(s.namespace + "/" + collection + "/")
}

func (s *BadgerStore) key(collection, id string) []byte {
	return []byte(s.namespace + "/" + collection + "/" + id)
}

func (s *BadgerStore) newID() (string, error) {
	s.idMu.Lock()
	defer s.idMu.Unlock()
	id, err := ulid.New(ulid.Timestamp(s.now()), s.entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (s *BadgerStore) GetAll(ctx context.Context, collection string) ([]models.Document, error) {
	return s.scan(ctx, collection, 0, nil)
}

func (s *BadgerStore) Query(ctx context.Context, collection string, limit int, filters ...Filter) ([]models.Document, error) {
	return s.scan(ctx, collection, limit, filters)
}

func (s *BadgerStore) scan(ctx context.Context, collection string, limit int, filters []Filter) ([]models.Document, error) {
	prefix := s.prefix(collection)
	docs := make([]models.Document, 0)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			id := strings.TrimPrefix(string(item.Key()), string(prefix))

			var fields map[string]any
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &fields)
			})
			if err != nil {
				return fmt.Errorf("decode %s/%s: %w", collection, id, err)
			}

			doc := models.NewDocument(id, fields)
			if !Matches(doc, filters) {
				continue
			}
			docs = append(docs, doc)
			if limit > 0 && len(docs) >= limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *BadgerStore) set(txn *badger.Txn, collection string, doc models.Document) (string, error) {
	id := doc.ID
	if id == "" {
		var err error
		if id, err = s.newID(); err != nil {
			return "", err
		}
	}
	encoded, err := json.Marshal(doc.Fields)
	if err != nil {
		return "", fmt.Errorf("encode %s/%s: %w", collection, id, err)
	}
	if err := txn.Set(s.key(collection, id), encoded); err != nil {
		return "", err
	}
	return id, nil
}

func (s *BadgerStore) Insert(ctx context.Context, collection string, doc models.Document) (string, error) {
	var id string
	err := s.db.Update(func(txn *badger.Txn) error {
		var err error
		id, err = s.set(txn, collection, doc)
		return err
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *BadgerStore) InsertMany(ctx context.Context, collection string, docs []models.Document) ([]string, error) {
	ids := make([]string, 0, len(docs))
	err := s.db.Update(func(txn *badger.Txn) error {
		for _, doc := range docs {
			id, err := s.set(txn, collection, doc)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *BadgerStore) AppendTimestamped(ctx context.Context, collection, field string, fields map[string]any) (string, error) {
	doc := models.NewDocument("", make(map[string]any, len(fields)+1))
	for k, v := range fields {
		doc.Fields[k] = v
	}
	doc.Fields[field] = s.now().UTC()
	return s.Insert(ctx, collection, doc)
}

// deleteCollection removes every key of the collection inside txn.
func (s *BadgerStore) deleteCollection(txn *badger.Txn, collection string) (int, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = s.prefix(collection)
	opts.PrefetchValues = false

	var keys [][]byte
	it := txn.NewIterator(opts)
	for it.Rewind(); it.Valid(); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	it.Close()

	for _, k := range keys {
		if err := txn.Delete(k); err != nil {
			return 0, err
		}
	}
	return len(keys), nil
}

func (s *BadgerStore) DeleteAll(ctx context.Context, collection string) (int, error) {
	var deleted int
	err := s.db.Update(func(txn *badger.Txn) error {
		var err error
		deleted, err = s.deleteCollection(txn, collection)
		return err
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (s *BadgerStore) DeleteMany(ctx context.Context, collection string, ids []string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		for _, id := range ids {
			if err := txn.Delete(s.key(collection, id)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BadgerStore) ReplaceAll(ctx context.Context, collection string, docs []models.Document) (int, error) {
	var deleted int
	err := s.db.Update(func(txn *badger.Txn) error {
		var err error
		if deleted, err = s.deleteCollection(txn, collection); err != nil {
			return err
		}
		for _, doc := range docs {
			if _, err := s.set(txn, collection, doc); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// badgerLogger adapts providers.Logger to badger's Logger interface.
type badgerLogger struct {
	logger providers.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Errorf(providers.TypeApp, "badger: "+format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warnf(providers.TypeApp, "badger: "+format, args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debugf(providers.TypeApp, "badger: "+format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debugf(providers.TypeApp, "badger: "+format, args...)
}
