package storage

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Blob is the row GormStore persists.
type Blob struct {
	Name      string `gorm:"primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

// GormStore keeps blobs in a local SQLite file through gorm.
type GormStore struct {
	db  *gorm.DB
	log *logrus.Entry
}

// OpenGormStore opens (and migrates) the SQLite database at dsn.
func OpenGormStore(dsn string, log *logrus.Entry) (*GormStore, error) {
	if dsn == "" {
		dsn = "fitcal.db"
	}

	if err := ensureDirForSQLite(dsn); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.AutoMigrate(&Blob{}); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &GormStore{db: db, log: log}, nil
}

func newGormLogger() logger.Interface {
	return logger.New(
		log.New(os.Stderr, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

func (g *GormStore) Get(key string) ([]byte, error) {
	var b Blob
	err := g.db.First(&b, "name = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", key, err)
	}
	return []byte(b.Value), nil
}

func (g *GormStore) Put(key string, value []byte) error {
	b := Blob{Name: key, Value: string(value), UpdatedAt: time.Now().UTC()}
	err := g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&b).Error
	if err != nil {
		return fmt.Errorf("write blob %s: %w", key, err)
	}

	g.log.WithFields(logrus.Fields{"key": key, "bytes": len(value)}).Debug("blob written")
	return nil
}

func (g *GormStore) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ensureDirForSQLite creates the parent dir for a SQLite file if needed.
func ensureDirForSQLite(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}
