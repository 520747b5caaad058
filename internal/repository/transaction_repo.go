package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"khatapro/internal/model"
)

var ErrTransactionNotFound = errors.New("transaction not found")

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *gorm.DB, trans *model.Transaction) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(trans).Error
}

// ListByParty returns every transaction belonging to one customer or
// company, oldest first. This is the input to the balance derivation, so it
// is never paginated - the fold needs the full journal.
func (r *TransactionRepository) ListByParty(ctx context.Context, entityID string) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.WithContext(ctx).
		Where("customer_id = ? OR company_id = ?", entityID, entityID).
		Order("date ASC, created_at ASC").
		Find(&transactions).Error
	return transactions, err
}

func (r *TransactionRepository) List(ctx context.Context, partyID string, page, pageSize int) ([]*model.Transaction, int64, error) {
	var transactions []*model.Transaction
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Transaction{})
	if partyID != "" {
		query = query.Where("customer_id = ? OR company_id = ?", partyID, partyID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("date DESC, created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&transactions).Error

	return transactions, total, err
}

// ListAll returns the full journal for export snapshots.
func (r *TransactionRepository) ListAll(ctx context.Context) ([]*model.Transaction, error) {
	var transactions []*model.Transaction
	err := r.db.WithContext(ctx).Order("date ASC, created_at ASC").Find(&transactions).Error
	return transactions, err
}

// DeleteByParty removes every transaction of one party. This is the "clear
// record" operation - the single sanctioned bulk delete on the journal.
func (r *TransactionRepository) DeleteByParty(ctx context.Context, tx *gorm.DB, entityID string) (int64, error) {
	if tx == nil {
		tx = r.db
	}
	result := tx.WithContext(ctx).
		Where("customer_id = ? OR company_id = ?", entityID, entityID).
		Delete(&model.Transaction{})
	return result.RowsAffected, result.Error
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*model.Transaction, error) {
	var trans model.Transaction
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&trans).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &trans, nil
}
