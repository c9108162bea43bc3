// internal/repository/kv.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"papervocab/internal/middleware"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVStore は永続化層の境界です。chrome.storage 相当の get/set しか提供しない。
// トランザクションも部分更新もなく、値は常にまるごと読み書きされる。
type KVStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

// KVEntry は kv_entries テーブルの1行を表します
type KVEntry struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

type gormKVStore struct {
	db *gorm.DB
}

func NewGormKVStore(db *gorm.DB) KVStore {
	return &gormKVStore{db: db}
}

func (s *gormKVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	logger := middleware.GetLogger(ctx)
	var entry KVEntry
	result := s.db.WithContext(ctx).Where("key = ?", key).First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		logger.Error("Error reading kv entry from DB",
			"error", result.Error,
			"key", key,
		)
		return nil, false, fmt.Errorf("gormKVStore.Get: %w", result.Error)
	}
	return entry.Value, true, nil
}

func (s *gormKVStore) Set(ctx context.Context, key string, value []byte) error {
	logger := middleware.GetLogger(ctx)
	entry := KVEntry{Key: key, Value: value}
	// 主キー衝突時は値を上書きする (last-write-wins)
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry)
	if result.Error != nil {
		logger.Error("Error writing kv entry to DB",
			"error", result.Error,
			"key", key,
		)
		return fmt.Errorf("gormKVStore.Set: %w", result.Error)
	}
	return nil
}

// memoryKVStore はテスト用のインメモリ実装です
type memoryKVStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryKVStore() KVStore {
	return &memoryKVStore{data: make(map[string][]byte)}
}

func (s *memoryKVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, true, nil
}

func (s *memoryKVStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	s.data[key] = cp
	return nil
}
