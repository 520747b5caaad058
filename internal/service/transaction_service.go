package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"khatapro/internal/audit"
	"khatapro/internal/config"
	"khatapro/internal/infrastructure/cache"
	"khatapro/internal/model"
	"khatapro/internal/repository"
	"khatapro/pkg/idgen"
)

var (
	// ErrPartyRequired enforces the customer/company XOR: a transaction
	// belongs to exactly one party, never both, never neither.
	ErrPartyRequired = errors.New("transaction must reference exactly one customer or company")
	ErrAmountInvalid = errors.New("amount must be positive")
	ErrTypeInvalid   = errors.New("type must be credit or debit")
)

type TransactionService struct {
	db              *gorm.DB
	cfg             *config.Config
	recorder        *audit.Recorder
	balanceCache    *cache.BalanceCache
	transactionRepo *repository.TransactionRepository
	customerRepo    *repository.CustomerRepository
	companyRepo     *repository.CompanyRepository
	historyRepo     *repository.HistoryRepository
	outboxRepo      *repository.OutboxRepository
}

func NewTransactionService(db *gorm.DB, cfg *config.Config, balanceCache *cache.BalanceCache) *TransactionService {
	return &TransactionService{
		db:              db,
		cfg:             cfg,
		recorder:        audit.NewRecorder(),
		balanceCache:    balanceCache,
		transactionRepo: repository.NewTransactionRepository(db),
		customerRepo:    repository.NewCustomerRepository(db),
		companyRepo:     repository.NewCompanyRepository(db),
		historyRepo:     repository.NewHistoryRepository(db),
		outboxRepo:      repository.NewOutboxRepository(db),
	}
}

type TransactionInput struct {
	CustomerID  string          `json:"customer_id"`
	CompanyID   string          `json:"company_id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	PaymentMode string          `json:"payment_mode"`
	Description string          `json:"description"`
}

func (s *TransactionService) Create(ctx context.Context, actor audit.Actor, input *TransactionInput) (*model.Transaction, error) {
	// All validation happens before any state is touched.
	if (input.CustomerID == "") == (input.CompanyID == "") {
		return nil, ErrPartyRequired
	}
	if input.Amount.Sign() <= 0 {
		return nil, ErrAmountInvalid
	}
	if input.Type != model.TransactionTypeCredit && input.Type != model.TransactionTypeDebit {
		return nil, ErrTypeInvalid
	}

	if input.CustomerID != "" {
		if _, err := s.customerRepo.GetByID(ctx, input.CustomerID); err != nil {
			return nil, err
		}
	} else {
		if _, err := s.companyRepo.GetByID(ctx, input.CompanyID); err != nil {
			return nil, err
		}
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	txn := &model.Transaction{
		ID:          idgen.GenerateTransactionID(),
		CustomerID:  input.CustomerID,
		CompanyID:   input.CompanyID,
		Date:        date,
		Amount:      input.Amount,
		Type:        input.Type,
		Quantity:    input.Quantity,
		PaymentMode: input.PaymentMode,
		Description: input.Description,
	}
	txn.CreatedBy = actor.ID

	entry, err := s.recorder.Record(txn, model.ActionCreated, actor,
		fmt.Sprintf("Recorded %s of Rs %s", txn.Type, txn.Amount.StringFixed(2)), nil, nil)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.transactionRepo.Create(ctx, tx, txn); err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}
		if err := s.historyRepo.Create(ctx, tx, entry); err != nil {
			return fmt.Errorf("record history: %w", err)
		}
		return s.outboxRepo.Create(ctx, tx, newAuditOutbox(s.cfg.Kafka.Topic.Audit, entry))
	})
	if err != nil {
		return nil, err
	}

	// The journal changed, so the party's derived balance cache is stale.
	s.balanceCache.Invalidate(ctx, txn.PartyID())

	return txn, nil
}

// GetDetail returns one transaction with its full history attached.
func (s *TransactionService) GetDetail(ctx context.Context, id string) (*model.Transaction, error) {
	txn, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	history, err := s.historyRepo.ListByEntity(ctx, model.EntityTypeTransaction, id)
	if err != nil {
		return nil, err
	}
	txn.History = history
	return txn, nil
}

func (s *TransactionService) List(ctx context.Context, partyID string, page, pageSize int) ([]*model.Transaction, int64, error) {
	return s.transactionRepo.List(ctx, partyID, page, pageSize)
}

// ExportSnapshot returns the full journal, oldest first, for CSV and
// spreadsheet collaborators. The snapshot is read-only; file formats are
// the consumer's business.
func (s *TransactionService) ExportSnapshot(ctx context.Context) ([]*model.Transaction, error) {
	return s.transactionRepo.ListAll(ctx)
}
