package storage

import (
	"errors"
	"fmt"

	"github.com/misterclayt0n/fitcal/internal/config"
	"github.com/sirupsen/logrus"
)

// ErrKeyNotFound is returned by Get when nothing was ever stored under the key.
var ErrKeyNotFound = errors.New("key not found")

// BlobStore holds whole serialized values under string keys.
// A Put replaces the previous value atomically.
type BlobStore interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Close() error
}

// Open returns the blob store selected by cfg.
func Open(cfg config.StorageConfig, log *logrus.Entry) (BlobStore, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	log = log.WithField("backend", cfg.Backend)

	switch cfg.Backend {
	case config.BackendFile:
		return NewFileStore(cfg.Path, log)
	case config.BackendSQLite:
		return OpenGormStore(cfg.Path, log)
	case config.BackendLibSQL:
		return OpenLibSQL(cfg.URL, log)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
