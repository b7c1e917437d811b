package storage

import (
	"context"
	"fmt"
	"os"
	"scorekeeper/internal/providers"
	"scorekeeper/internal/structures"
)

// NewDocumentStore opens the driver selected in the config. The returned
// cleanup closes it.
func NewDocumentStore(conf *structures.Config, logger providers.Logger) (DocumentStore, func(), error) {
	var (
		store DocumentStore
		err   error
	)

	switch conf.Store.Driver {
	case "firestore":
		store, err = NewFirestoreStore(context.Background(), FirestoreOptions{
			ProjectID:       conf.Store.ProjectID,
			Namespace:       conf.Store.Namespace,
			CredentialsFile: conf.Store.CredentialsFile,
		})
	case "badger", "":
		if err = os.MkdirAll(conf.Store.DataDir, 0750); err != nil {
			return nil, nil, fmt.Errorf("create store dir: %w", err)
		}
		store, err = NewBadgerStore(BadgerOptions{
			Dir:       conf.Store.DataDir,
			Namespace: conf.Store.Namespace,
		}, logger)
	default:
		err = fmt.Errorf("unknown store driver %q", conf.Store.Driver)
	}
	if err != nil {
		return nil, nil, err
	}

	logger.Infof(providers.TypeApp, "Document store %q opened for namespace %s", conf.Store.Driver, conf.Store.Namespace)

	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Errorf(providers.TypeApp, "Closing document store: %s", err)
		}
	}
	return store, cleanup, nil
}
