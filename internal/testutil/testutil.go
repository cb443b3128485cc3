// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/RafiALMahmud/Job-portal1/config"
	"github.com/RafiALMahmud/Job-portal1/internal/storage"
)

// NewDB returns a migrated, private in-memory SQLite database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := config.OpenDatabase(config.DatabaseSettings{Driver: "sqlite", DSN: dsn, MaxIdle: 1, MaxOpen: 1})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// MemoryStore is an ObjectStore kept in a map.
type MemoryStore struct {
	mu      sync.Mutex
	Objects map[string][]byte
	FailUp  error
}

var _ storage.ObjectStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{Objects: map[string][]byte{}}
}

func (m *MemoryStore) Upload(_ context.Context, objectName string, _ string, r io.Reader) (string, error) {
	if m.FailUp != nil {
		return "", m.FailUp
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[objectName] = buf.Bytes()
	return "mem://" + objectName, nil
}

func (m *MemoryStore) Delete(_ context.Context, objectName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Objects[objectName]; !ok {
		return storage.ErrObjectNotFound
	}
	delete(m.Objects, objectName)
	return nil
}

func (m *MemoryStore) Has(objectName string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Objects[objectName]
	return ok
}

// PNG is a minimal image whose content sniffs as image/png.
var PNG = append([]byte("\x89PNG\x0D\x0A\x1A\x0A"), make([]byte, 64)...)
