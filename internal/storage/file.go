package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	filePermissions = 0o644
	tmpSuffix       = ".tmp"
	backupSuffix    = ".bak"
)

// FileStore keeps one JSON file per key inside a directory.
type FileStore struct {
	dir string
	log *logrus.Entry
}

func NewFileStore(dir string, log *logrus.Entry) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("file store: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %q: %w", dir, err)
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &FileStore{dir: dir, log: log}, nil
}

func (f *FileStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

func (f *FileStore) Get(key string) ([]byte, error) {
	path, err := f.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// Put writes to a temp file and renames it over the old one, keeping the
// previous version next to it as a backup.
func (f *FileStore) Put(key string, value []byte) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}

	tmp := path + tmpSuffix
	if err := os.WriteFile(tmp, value, filePermissions); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}

	if _, err := os.Stat(path); err == nil {
		if err := copyFile(path, path+backupSuffix); err != nil {
			f.log.WithError(err).Warn("failed to create backup")
		}
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}

	f.log.WithFields(logrus.Fields{"key": key, "bytes": len(value)}).Debug("blob written")
	return nil
}

func (f *FileStore) Close() error { return nil }

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, filePermissions)
}
