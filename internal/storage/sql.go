package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// SQLStore keeps blobs in a single key/value table reached through database/sql.
type SQLStore struct {
	DB  *sql.DB
	log *logrus.Entry
}

// OpenLibSQL connects to a Turso/libsql database.
func OpenLibSQL(url string, log *logrus.Entry) (*SQLStore, error) {
	if url == "" {
		return nil, errors.New("TURSO_DATABASE_URL not set")
	}

	db, err := sql.Open("libsql", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open db %s: %w", url, err)
	}

	st, err := NewSQLStore(db, log)
	if err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

// NewSQLStore creates the blobs table on db if needed.
func NewSQLStore(db *sql.DB, log *logrus.Entry) (*SQLStore, error) {
	if err := InitializeDB(db); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &SQLStore{DB: db, log: log}, nil
}

func InitializeDB(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS blobs (
            name TEXT PRIMARY KEY,
            value TEXT NOT NULL,
            updated_at TEXT NOT NULL
        );
    `)
	return err
}

func (s *SQLStore) Get(key string) ([]byte, error) {
	var value string
	err := s.DB.QueryRow("SELECT value FROM blobs WHERE name = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s: %w", key, err)
	}
	return []byte(value), nil
}

func (s *SQLStore) Put(key string, value []byte) error {
	_, err := s.DB.Exec(
		`INSERT INTO blobs (name, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET
				value = excluded.value,
				updated_at = excluded.updated_at`,
		key,
		string(value),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to write blob %s: %w", key, err)
	}

	s.log.WithFields(logrus.Fields{"key": key, "bytes": len(value)}).Debug("blob written")
	return nil
}

func (s *SQLStore) Close() error {
	return s.DB.Close()
}
