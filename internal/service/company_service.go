package service

import (
	"context"
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

type CompanyService struct {
	db              *gorm.DB
	cfg             *config.Config
	recorder        *audit.Recorder
	balanceCache    *cache.BalanceCache
	companyRepo     *repository.CompanyRepository
	transactionRepo *repository.TransactionRepository
	historyRepo     *repository.HistoryRepository
	outboxRepo      *repository.OutboxRepository
}

func NewCompanyService(db *gorm.DB, cfg *config.Config, balanceCache *cache.BalanceCache) *CompanyService {
	return &CompanyService{
		db:              db,
		cfg:             cfg,
		recorder:        audit.NewRecorder(),
		balanceCache:    balanceCache,
		companyRepo:     repository.NewCompanyRepository(db),
		transactionRepo: repository.NewTransactionRepository(db),
		historyRepo:     repository.NewHistoryRepository(db),
		outboxRepo:      repository.NewOutboxRepository(db),
	}
}

type CompanyInput struct {
	Name          string `json:"name" binding:"required"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
}

func (s *CompanyService) Create(ctx context.Context, actor audit.Actor, input *CompanyInput) (*model.Company, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}

	company := &model.Company{
		ID:            idgen.GenerateCompanyID(),
		Name:          strings.TrimSpace(input.Name),
		Phone:         input.Phone,
		Address:       input.Address,
		ContactPerson: input.ContactPerson,
		Email:         input.Email,
	}
	company.CreatedBy = actor.ID

	entry, err := s.recorder.Record(company, model.ActionCreated, actor,
		fmt.Sprintf("Created company %s", company.Name), nil, nil)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.companyRepo.Create(ctx, tx, company); err != nil {
			return fmt.Errorf("create company: %w", err)
		}
		if err := s.historyRepo.Create(ctx, tx, entry); err != nil {
			return fmt.Errorf("record history: %w", err)
		}
		return s.outboxRepo.Create(ctx, tx, newAuditOutbox(s.cfg.Kafka.Topic.Audit, entry))
	})
	if err != nil {
		return nil, err
	}
	return company, nil
}

func (s *CompanyService) GetDetail(ctx context.Context, id string) (*model.Company, decimal.Decimal, ledger.Standing, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, decimal.Zero, "", err
	}

	history, err := s.historyRepo.ListByEntity(ctx, model.EntityTypeCompany, id)
	if err != nil {
		return nil, decimal.Zero, "", err
	}
	company.History = history

	balance, err := s.Balance(ctx, id)
	if err != nil {
		return nil, decimal.Zero, "", err
	}
	return company, balance, ledger.Classify(balance), nil
}

func (s *CompanyService) List(ctx context.Context) ([]*model.Company, error) {
	return s.companyRepo.List(ctx)
}

func (s *CompanyService) Update(ctx context.Context, actor audit.Actor, id string, input *CompanyInput) (*model.Company, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}

	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldValues, newValues := diffFields(map[string][2]string{
		"name":           {company.Name, strings.TrimSpace(input.Name)},
		"phone":          {company.Phone, input.Phone},
		"address":        {company.Address, input.Address},
		"contact_person": {company.ContactPerson, input.ContactPerson},
		"email":          {company.Email, input.Email},
	})

	company.Name = strings.TrimSpace(input.Name)
	company.Phone = input.Phone
	company.Address = input.Address
	company.ContactPerson = input.ContactPerson
	company.Email = input.Email

	entry, err := s.recorder.Record(company, model.ActionUpdated, actor,
		fmt.Sprintf("Updated company %s", company.Name), oldValues, newValues)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.companyRepo.Update(ctx, tx, company); err != nil {
			return fmt.Errorf("update company: %w", err)
		}
		if err := s.historyRepo.Create(ctx, tx, entry); err != nil {
			return fmt.Errorf("record history: %w", err)
		}
		return s.outboxRepo.Create(ctx, tx, newAuditOutbox(s.cfg.Kafka.Topic.Audit, entry))
	})
	if err != nil {
		return nil, err
	}
	return company, nil
}

func (s *CompanyService) Delete(ctx context.Context, actor audit.Actor, id string) error {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	entry, err := s.recorder.Record(company, model.ActionDeleted, actor,
		fmt.Sprintf("Deleted company %s", company.Name), nil, nil)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.companyRepo.Delete(ctx, tx, id); err != nil {
			return fmt.Errorf("delete company: %w", err)
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

func (s *CompanyService) Balance(ctx context.Context, id string) (decimal.Decimal, error) {
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

func (s *CompanyService) Transactions(ctx context.Context, id string) ([]model.Transaction, error) {
	if _, err := s.companyRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.transactionRepo.ListByParty(ctx, id)
}

func (s *CompanyService) ClearRecord(ctx context.Context, actor audit.Actor, id string) (int64, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	var removed int64
	err = s.db.Transaction(func(tx *gorm.DB) error {
		removed, err = s.transactionRepo.DeleteByParty(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("clear transactions: %w", err)
		}

		entry, err := s.recorder.Record(company, model.ActionUpdated, actor,
			fmt.Sprintf("Cleared record: removed %d transactions", removed), nil, nil)
		if err != nil {
			return err
		}
		if err := s.historyRepo.Create(ctx, tx, entry); err != nil {
			return fmt.Errorf("record history: %w", err)
		}
		if err := s.companyRepo.Update(ctx, tx, company); err != nil {
			return fmt.Errorf("stamp company: %w", err)
		}
		return s.outboxRepo.Create(ctx, tx, newAuditOutbox(s.cfg.Kafka.Topic.Audit, entry))
	})
	if err != nil {
		return 0, err
	}

	s.balanceCache.Invalidate(ctx, id)
	return removed, nil
}
