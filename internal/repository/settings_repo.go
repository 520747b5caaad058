package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"khatapro/internal/model"
)

var (
	ErrSettingsNotFound = errors.New("settings not found")

	// ErrSerialConflict means another writer advanced last_bill_serial
	// between read and commit. Under the serial lock this should not
	// happen; treating it as an error rather than retrying keeps the
	// counter's single-writer discipline honest.
	ErrSerialConflict = errors.New("bill serial counter moved concurrently")
)

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetOrCreate returns the singleton settings row, creating a default one on
// first use. The conflict clause makes concurrent first calls converge on
// one row.
func (r *SettingsRepository) GetOrCreate(ctx context.Context, defaults *model.Settings) (*model.Settings, error) {
	settings, err := r.get(ctx)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, ErrSettingsNotFound) {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(defaults).Error
	if err != nil {
		return nil, err
	}

	return r.get(ctx)
}

func (r *SettingsRepository) get(ctx context.Context) (*model.Settings, error) {
	var settings model.Settings
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}
	return &settings, nil
}

// UpdateShopDetails rewrites the shop fields, leaving the serial counter to
// AdvanceSerial.
func (r *SettingsRepository) UpdateShopDetails(ctx context.Context, tx *gorm.DB, settings *model.Settings) error {
	if tx == nil {
		tx = r.db
	}
	result := tx.WithContext(ctx).Model(&model.Settings{}).
		Where("id = ?", settings.ID).
		Updates(map[string]interface{}{
			"shop_name":    settings.ShopName,
			"shop_address": settings.ShopAddress,
			"admin_phone":  settings.AdminPhone,
			"updated_at":   settings.UpdatedAt,
			"updated_by":   settings.UpdatedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSettingsNotFound
	}
	return nil
}

// AdvanceSerial moves the bill counter from one exact value to the next.
// The WHERE clause is the compare-and-set: if another writer already moved
// the counter, zero rows match and the enclosing transaction must abort,
// so a serial can never be issued twice.
func (r *SettingsRepository) AdvanceSerial(ctx context.Context, tx *gorm.DB, id string, from, to int64, updatedBy string) error {
	if tx == nil {
		tx = r.db
	}
	result := tx.WithContext(ctx).Model(&model.Settings{}).
		Where("id = ? AND last_bill_serial = ?", id, from).
		Updates(map[string]interface{}{
			"last_bill_serial": to,
			"updated_by":       updatedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSerialConflict
	}
	return nil
}
