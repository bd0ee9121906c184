package config

import (
	"errors"
	"fmt"
	"io"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"

	"github.com/codetesla51/stash/store"
	"github.com/codetesla51/stash/webstorage"
)

// OpenStore builds the store described by b.
func OpenStore(b Backend) (store.Store, error) {
	switch b.Driver {
	case "", "memory":
		return store.NewMemoryStoreWithQuota(b.QuotaBytes), nil
	case "redis":
		if b.Addr == "" {
			return nil, errors.New("redis backend requires addr")
		}
		return store.NewRedisStore(b.Addr, b.Namespace)
	case "postgres":
		if b.DSN == "" {
			return nil, errors.New("postgres backend requires dsn")
		}
		return store.NewDatabaseStore(b.DSN, b.Namespace)
	case "sqlite":
		if b.DSN == "" {
			return nil, errors.New("sqlite backend requires dsn")
		}
		return store.OpenDatabaseStore(sqlite.Open(b.DSN), b.Namespace)
	default:
		return nil, fmt.Errorf("unknown store driver %q", b.Driver)
	}
}

// Open builds both stores and the client over them. The returned close
// function releases any connections the stores hold.
func Open(cfg Config, logger *zap.Logger) (*webstorage.Client, func() error, error) {
	mode, err := webstorage.ParseRuntimeMode(cfg.Mode)
	if err != nil {
		return nil, nil, err
	}

	durable, err := OpenStore(cfg.Durable)
	if err != nil {
		return nil, nil, fmt.Errorf("durable store: %w", err)
	}
	session, err := OpenStore(cfg.Session)
	if err != nil {
		closeStore(durable)
		return nil, nil, fmt.Errorf("session store: %w", err)
	}

	client := webstorage.New(durable, session,
		webstorage.WithMode(mode),
		webstorage.WithPersistenceAllowed(cfg.PersistenceAllowed),
		webstorage.WithLogger(logger))

	closeFn := func() error {
		return errors.Join(closeStore(durable), closeStore(session))
	}
	return client, closeFn, nil
}

func closeStore(s store.Store) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
