package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"khatapro/internal/audit"
	"khatapro/internal/config"
	"khatapro/internal/infrastructure/cache"
	"khatapro/internal/ledger"
	"khatapro/internal/model"
	"khatapro/internal/repository"
	"khatapro/pkg/idgen"
)

var ErrNameRequired = errors.New("name is required")

type CustomerService struct {
	db              *gorm.DB
	cfg             *config.Config
	recorder        *audit.Recorder
	balanceCache    *cache.BalanceCache
	customerRepo    *repository.CustomerRepository
	transactionRepo *repository.TransactionRepository
	historyRepo     *repository.HistoryRepository
	outboxRepo      *repository.OutboxRepository
}

func NewCustomerService(db *gorm.DB, cfg *config.Config, balanceCache *cache.BalanceCache) *CustomerService {
	return &CustomerService{
		db:              db,
		cfg:             cfg,
		recorder:        audit.NewRecorder(),
		balanceCache:    balanceCache,
		customerRepo:    repository.NewCustomerRepository(db),
		transactionRepo: repository.NewTransactionRepository(db),
		historyRepo:     repository.NewHistoryRepository(db),
		outboxRepo:      repository.NewOutboxRepository(db),
	}
}

type CustomerInput struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (s *CustomerService) Create(ctx context.Context, actor audit.Actor, input *CustomerInput) (*model.Customer, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}

	customer := &model.Customer{
		ID:      idgen.GenerateCustomerID(),
		Name:    strings.TrimSpace(input.Name),
		Phone:   input.Phone,
		Address: input.Address,
	}
	customer.CreatedBy = actor.ID

	entry, err := s.recorder.Record(customer, model.ActionCreated, actor,
		fmt.Sprintf("Created customer %s", customer.Name), nil, nil)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.customerRepo.Create(ctx, tx, customer); err != nil {
			return fmt.Errorf("create customer: %w", err)
		}
		if err := s.historyRepo.Create(ctx, tx, entry); err != nil {
			return fmt.Errorf("record history: %w", err)
		}
		return s.outboxRepo.Create(ctx, tx, newAuditOutbox(s.cfg.Kafka.Topic.Audit, entry))
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// GetDetail returns the customer with its full history (newest first) and
// derived balance attached.
func (s *CustomerService) GetDetail(ctx context.Context, id string) (*model.Customer, decimal.Decimal, ledger.Standing, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, decimal.Zero, "", err
	}

	history, err := s.historyRepo.ListByEntity(ctx, model.EntityTypeCustomer, id)
	if err != nil {
		return nil, decimal.Zero, "", err
	}
	customer.History = history

	balance, err := s.Balance(ctx, id)
	if err != nil {
		return nil, decimal.Zero, "", err
	}
	return customer, balance, ledger.Classify(balance), nil
}

func (s *CustomerService) List(ctx context.Context) ([]*model.Customer, error) {
	return s.customerRepo.List(ctx)
}

func (s *CustomerService) Update(ctx context.Context, actor audit.Actor, id string, input *CustomerInput) (*model.Customer, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}

	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldValues, newValues := diffFields(map[string][2]string{
		"name":    {customer.Name, strings.TrimSpace(input.Name)},
		"phone":   {customer.Phone, input.Phone},
		"address": {customer.Address, input.Address},
	})

	customer.Name = strings.TrimSpace(input.Name)
	customer.Phone = input.Phone
	customer.Address = input.Address

	entry, err := s.recorder.Record(customer, model.ActionUpdated, actor,
		fmt.Sprintf("Updated customer %s", customer.Name), oldValues, newValues)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.customerRepo.Update(ctx, tx, customer); err != nil {
			return fmt.Errorf("update customer: %w", err)
		}
		if err := s.historyRepo.Create(ctx, tx, entry); err != nil {
			return fmt.Errorf("record history: %w", err)
		}
		return s.outboxRepo.Create(ctx, tx, newAuditOutbox(s.cfg.Kafka.Topic.Audit, entry))
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete removes the customer record. Their transactions deliberately stay
// behind as historical record, and so do their history rows.
func (s *CustomerService) Delete(ctx context.Context, actor audit.Actor, id string) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	entry, err := s.recorder.Record(customer, model.ActionDeleted, actor,
		fmt.Sprintf("Deleted customer %s", customer.Name), nil, nil)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.customerRepo.Delete(ctx, tx, id); err != nil {
			return fmt.Errorf("delete customer: %w", err)
		}
		if err := s.historyRepo.Create(ctx, tx, entry); err != nil {
			return fmt.Errorf("record history: %w", err)
		}
		return s.outboxRepo.Create(ctx, tx, newAuditOutbox(s.cfg.Kafka.Topic.Audit, entry))
	})
	if err != nil {
		return err
	}

	s.balanceCache.Invalidate(ctx, id)
	return nil
}

// Balance derives the customer's balance from their transactions, reading
// through the display cache.
func (s *CustomerService) Balance(ctx context.Context, id string) (decimal.Decimal, error) {
	if balance, ok := s.balanceCache.Get(ctx, id); ok {
		return balance, nil
	}

	txns, err := s.transactionRepo.ListByParty(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}

	balance := ledger.BalanceOf(id, txns)
	s.balanceCache.Set(ctx, id, balance)
	return balance, nil
}

func (s *CustomerService) Transactions(ctx context.Context, id string) ([]model.Transaction, error) {
	if _, err := s.customerRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.transactionRepo.ListByParty(ctx, id)
}

// ClearRecord bulk-deletes the customer's transactions - the only sanctioned
// bulk removal from the journal - and audits it on the customer.
func (s *CustomerService) ClearRecord(ctx context.Context, actor audit.Actor, id string) (int64, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	var removed int64
	err = s.db.Transaction(func(tx *gorm.DB) error {
		removed, err = s.transactionRepo.DeleteByParty(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("clear transactions: %w", err)
		}

		entry, err := s.recorder.Record(customer, model.ActionUpdated, actor,
			fmt.Sprintf("Cleared record: removed %d transactions", removed), nil, nil)
		if err != nil {
			return err
		}
		if err := s.historyRepo.Create(ctx, tx, entry); err != nil {
			return fmt.Errorf("record history: %w", err)
		}
		if err := s.customerRepo.Update(ctx, tx, customer); err != nil {
			return fmt.Errorf("stamp customer: %w", err)
		}
		return s.outboxRepo.Create(ctx, tx, newAuditOutbox(s.cfg.Kafka.Topic.Audit, entry))
	})
	if err != nil {
		return 0, err
	}

	s.balanceCache.Invalidate(ctx, id)
	return removed, nil
}

// diffFields builds symmetric before/after snapshots from changed text
// fields only. Unchanged fields are left out of both sides.
func diffFields(fields map[string][2]string) (model.FieldValues, model.FieldValues) {
	var oldValues, newValues model.FieldValues
	for name, pair := range fields {
		if pair[0] == pair[1] {
			continue
		}
		if oldValues == nil {
			oldValues = model.FieldValues{}
			newValues = model.FieldValues{}
		}
		oldValues[name] = model.Text(pair[0])
		newValues[name] = model.Text(pair[1])
	}
	return oldValues, newValues
}
