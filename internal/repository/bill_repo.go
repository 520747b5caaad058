package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"khatapro/internal/model"
)

var (
	ErrBillNotFound      = errors.New("bill not found")
	ErrBillItemNotFound  = errors.New("bill item not found")
	ErrBillStatusInvalid = errors.New("bill status transition not allowed")
)

type BillRepository struct {
	db *gorm.DB
}

func NewBillRepository(db *gorm.DB) *BillRepository {
	return &BillRepository{db: db}
}

func (r *BillRepository) Create(ctx context.Context, tx *gorm.DB, bill *model.Bill) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Omit("Items").Create(bill).Error
}

func (r *BillRepository) CreateItem(ctx context.Context, tx *gorm.DB, item *model.BillItem) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(item).Error
}

func (r *BillRepository) GetByID(ctx context.Context, id string) (*model.Bill, error) {
	var bill model.Bill
	err := r.db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&bill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBillNotFound
		}
		return nil, err
	}
	return &bill, nil
}

func (r *BillRepository) GetItemByID(ctx context.Context, id string) (*model.BillItem, error) {
	var item model.BillItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBillItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *BillRepository) UpdateItem(ctx context.Context, tx *gorm.DB, item *model.BillItem) error {
	if tx == nil {
		tx = r.db
	}
	result := tx.WithContext(ctx).Model(&model.BillItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"product_name": item.ProductName,
			"quantity":     item.Quantity,
			"price":        item.Price,
			"amount":       item.Amount,
			"updated_at":   item.UpdatedAt,
			"updated_by":   item.UpdatedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBillItemNotFound
	}
	return nil
}

func (r *BillRepository) List(ctx context.Context, page, pageSize int) ([]*model.Bill, int64, error) {
	var bills []*model.Bill
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Bill{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&bills).Error

	return bills, total, err
}

// ListAll returns every bill with items for export snapshots.
func (r *BillRepository) ListAll(ctx context.Context) ([]*model.Bill, error) {
	var bills []*model.Bill
	err := r.db.WithContext(ctx).Preload("Items").Order("created_at ASC").Find(&bills).Error
	return bills, err
}

// UpdateStatus moves a bill between statuses, guarding both the transition
// table and a concurrent move with a conditional update.
func (r *BillRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id string, fromStatus, toStatus string, updatedAt time.Time, updatedBy string) error {
	if !model.CanTransitionTo(fromStatus, toStatus) {
		return ErrBillStatusInvalid
	}

	if tx == nil {
		tx = r.db
	}

	result := tx.WithContext(ctx).
		Model(&model.Bill{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(map[string]interface{}{
			"status":     toStatus,
			"updated_at": updatedAt,
			"updated_by": updatedBy,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBillStatusInvalid
	}
	return nil
}
