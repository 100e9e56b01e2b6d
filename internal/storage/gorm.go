package storage

import (
	"context"
	"errors"
	"fmt"

	"minisocial/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBackend stores one row per key in the feed_snapshots table. Works on
// any gorm dialect that supports ON CONFLICT upserts (sqlite, postgres).
type GormBackend struct {
	db *gorm.DB
}

// NewGormBackend wraps a migrated gorm connection.
func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{db: db}
}

func (b *GormBackend) Name() string { return b.db.Dialector.Name() }

func (b *GormBackend) Load(ctx context.Context, key string) ([]byte, error) {
	var snap models.FeedSnapshot
	err := b.db.WithContext(ctx).Where("snapshot_key = ?", key).Take(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", key, err)
	}
	return []byte(snap.Data), nil
}

func (b *GormBackend) Save(ctx context.Context, key string, data []byte) error {
	snap := models.FeedSnapshot{Key: key, Data: string(data)}
	err := b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "snapshot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&snap).Error
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}
	return nil
}

func (b *GormBackend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
