package storage

import (
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/misterclayt0n/fitcal/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLog() *logrus.Entry {
	l := logrus.New()
	l.Out = io.Discard
	return logrus.NewEntry(l)
}

// exerciseBlobStore runs the behavior every backend must share.
func exerciseBlobStore(t *testing.T, st BlobStore) {
	t.Helper()

	_, err := st.Get("fitcal-data")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, st.Put("fitcal-data", []byte(`{"v":1}`)))
	got, err := st.Get("fitcal-data")
	require.NoError(t, err)
	assert.Equal(t, `{"v":1}`, string(got))

	require.NoError(t, st.Put("fitcal-data", []byte(`{"v":2}`)))
	got, err = st.Get("fitcal-data")
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, string(got))

	_, err = st.Get("other")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	assert.NoError(t, st.Close())
}

func TestMemoryStore(t *testing.T) {
	exerciseBlobStore(t, NewMemoryStore())
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	st := NewMemoryStore()
	v := []byte("abc")
	require.NoError(t, st.Put("k", v))
	v[0] = 'x'

	got, err := st.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFileStore(t *testing.T) {
	st, err := NewFileStore(t.TempDir(), quietLog())
	require.NoError(t, err)
	exerciseBlobStore(t, st)
}

func TestFileStoreKeepsBackupAndNoTempFile(t *testing.T) {
	dir := t.TempDir()
	st, err := NewFileStore(dir, quietLog())
	require.NoError(t, err)

	require.NoError(t, st.Put("fitcal-data", []byte("first")))
	require.NoError(t, st.Put("fitcal-data", []byte("second")))

	backup, err := os.ReadFile(filepath.Join(dir, "fitcal-data.json.bak"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(backup))

	_, err = os.Stat(filepath.Join(dir, "fitcal-data.json.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileStoreRejectsPathKeys(t *testing.T) {
	st, err := NewFileStore(t.TempDir(), quietLog())
	require.NoError(t, err)

	assert.Error(t, st.Put("../escape", []byte("x")))
	_, err = st.Get("a/b")
	assert.Error(t, err)
}

func TestSQLStore(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "blobs.db"))
	require.NoError(t, err)

	st, err := NewSQLStore(db, quietLog())
	require.NoError(t, err)
	exerciseBlobStore(t, st)
}

func TestOpenLibSQLRequiresURL(t *testing.T) {
	_, err := OpenLibSQL("", quietLog())
	assert.Error(t, err)
}

func TestGormStore(t *testing.T) {
	st, err := OpenGormStore(filepath.Join(t.TempDir(), "nested", "fitcal.db"), quietLog())
	require.NoError(t, err)
	exerciseBlobStore(t, st)
}

func TestOpenSelectsBackend(t *testing.T) {
	dir := t.TempDir()

	st, err := Open(config.StorageConfig{Backend: config.BackendFile, Path: dir}, quietLog())
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, st)

	st, err = Open(config.StorageConfig{Backend: config.BackendSQLite, Path: filepath.Join(dir, "x.db")}, quietLog())
	require.NoError(t, err)
	assert.IsType(t, &GormStore{}, st)
	require.NoError(t, st.Close())

	_, err = Open(config.StorageConfig{Backend: "redis"}, quietLog())
	assert.Error(t, err)
}

func TestOpenGormStoreReportsMigrationFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitcal.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec("CREATE TABLE blobs (name TEXT PRIMARY KEY)")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = OpenGormStore(path, quietLog())
	assert.ErrorContains(t, err, "migrate db")

	require.NoError(t, os.Remove(path))
}
