package repository

import (
	"context"

	"gorm.io/gorm"

	"khatapro/internal/model"
)

// HistoryRepository persists audit entries. There is no update and no
// delete here on purpose: history is append only, even for entities that
// have since been removed.
type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Create(ctx context.Context, tx *gorm.DB, entry *model.HistoryEntry) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(entry).Error
}

// ListByEntity returns one entity's history, newest first - the same order
// the in-memory recorder maintains, so consumers never re-sort.
func (r *HistoryRepository) ListByEntity(ctx context.Context, entityType, entityID string) ([]model.HistoryEntry, error) {
	var entries []model.HistoryEntry
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
