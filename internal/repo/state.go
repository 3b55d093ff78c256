package repo

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/table-reservations/internal/domain"
)

// GormStateStore keeps state blobs in the state_blobs table of any GORM
// dialect (SQLite, PostgreSQL, MySQL).
type GormStateStore struct {
	DB *gorm.DB
}

// NewGormStateStore returns a StateStore over db. The schema must already be
// migrated with AutoMigrate.
func NewGormStateStore(db *gorm.DB) *GormStateStore {
	return &GormStateStore{DB: db}
}

// Load returns the blob under key, or (nil, nil) when no row exists.
func (s *GormStateStore) Load(ctx context.Context, key string) ([]byte, error) {
	var row domain.StateBlob
	err := s.DB.WithContext(ctx).Where("state_key = ?", key).First(&row).Error
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.Value, nil
}

// Save upserts the blob under key.
func (s *GormStateStore) Save(ctx context.Context, key string, value []byte) error {
	row := domain.StateBlob{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "state_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
}

// MemoryStateStore keeps blobs in a process-local map. State is lost on
// restart.
type MemoryStateStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStateStore returns an empty in-memory store.
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{blobs: make(map[string][]byte)}
}

// Load returns a copy of the blob under key, or (nil, nil) when absent.
func (s *MemoryStateStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.blobs[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

// Save stores a copy of value under key.
func (s *MemoryStateStore) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = append([]byte(nil), value...)
	return nil
}

// Snapshot returns a copy of every stored blob.
func (s *MemoryStateStore) Snapshot() map[string][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.blobs)
}
