package sqlite

import (
	"context"
	"errors"
	"fmt"
	"petagenda/internal/domain/entity"
	"petagenda/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type collectionStore struct {
	db *gorm.DB
}

// NewCollectionStore creates a new instance of CollectionStore.
func NewCollectionStore(db *gorm.DB) repository.CollectionStore {
	return &collectionStore{db: db}
}

// Get retrieves the JSON text stored under key.
func (s *collectionStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry entity.CollectionEntry
	if err := s.db.WithContext(ctx).Where("name = ?", key).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read collection %s: %w", key, err)
	}
	return entry.Value, true, nil
}

// Set replaces the JSON text stored under key.
func (s *collectionStore) Set(ctx context.Context, key string, value string) error {
	entry := entity.CollectionEntry{Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write collection %s: %w", key, err)
	}
	return nil
}
