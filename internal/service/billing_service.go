package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"khatapro/internal/audit"
	"khatapro/internal/billing"
	"khatapro/internal/config"
	"khatapro/internal/infrastructure/cache"
	"khatapro/internal/infrastructure/lock"
	"khatapro/internal/logger"
	"khatapro/internal/model"
	"khatapro/internal/repository"
)

type BillingService struct {
	db              *gorm.DB
	redisClient     *redis.Client
	cfg             *config.Config
	log             zerolog.Logger
	recorder        *audit.Recorder
	balanceCache    *cache.BalanceCache
	billRepo        *repository.BillRepository
	customerRepo    *repository.CustomerRepository
	transactionRepo *repository.TransactionRepository
	settingsRepo    *repository.SettingsRepository
	historyRepo     *repository.HistoryRepository
	outboxRepo      *repository.OutboxRepository
}

func NewBillingService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, balanceCache *cache.BalanceCache) *BillingService {
	return &BillingService{
		db:              db,
		redisClient:     redisClient,
		cfg:             cfg,
		log:             logger.WithComponent("billing"),
		recorder:        audit.NewRecorder(),
		balanceCache:    balanceCache,
		billRepo:        repository.NewBillRepository(db),
		customerRepo:    repository.NewCustomerRepository(db),
		transactionRepo: repository.NewTransactionRepository(db),
		settingsRepo:    repository.NewSettingsRepository(db),
		historyRepo:     repository.NewHistoryRepository(db),
		outboxRepo:      repository.NewOutboxRepository(db),
	}
}

// GenerateBill runs one billing operation end to end.
//
// Key points:
//  1. the serial lock makes this the single writer of last_bill_serial
//  2. bill, items, ledger debit, history, outbox and the serial advance
//     commit in ONE database transaction - a bill can never exist whose
//     serial the counter doesn't account for
//  3. the serial advance is a compare-and-set; if it misses, the whole
//     operation rolls back rather than reuse a serial
func (s *BillingService) GenerateBill(ctx context.Context, actor audit.Actor, req *billing.GenerateRequest) (*billing.Result, error) {
	serialLock := lock.NewBillSerialLock(s.redisClient, uuid.NewString())
	if err := serialLock.Lock(ctx, 100*time.Millisecond, 30); err != nil {
		return nil, fmt.Errorf("billing busy, try again: %w", err)
	}
	defer serialLock.Unlock(ctx)

	settings, err := s.settingsRepo.GetOrCreate(ctx, defaultSettings())
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	var candidates []*model.Customer
	customer, err := s.customerRepo.FindByName(ctx, req.CustomerName)
	if err != nil {
		return nil, fmt.Errorf("resolve customer: %w", err)
	}
	if customer != nil {
		candidates = append(candidates, customer)
	}

	result, err := billing.Generate(req, settings, candidates, actor, s.recorder, s.cfg.Business.BillSerialPrefix)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.billRepo.Create(ctx, tx, result.Bill); err != nil {
			return fmt.Errorf("create bill: %w", err)
		}
		for _, item := range result.Items {
			if err := s.billRepo.CreateItem(ctx, tx, item); err != nil {
				return fmt.Errorf("create bill item: %w", err)
			}
		}
		if result.Transaction != nil {
			if err := s.transactionRepo.Create(ctx, tx, result.Transaction); err != nil {
				return fmt.Errorf("create ledger debit: %w", err)
			}
		}
		for _, entry := range result.History {
			if err := s.historyRepo.Create(ctx, tx, entry); err != nil {
				return fmt.Errorf("record history: %w", err)
			}
			if err := s.outboxRepo.Create(ctx, tx, newAuditOutbox(s.cfg.Kafka.Topic.Audit, entry)); err != nil {
				return err
			}
		}
		if err := s.outboxRepo.Create(ctx, tx, s.billingOutbox(result)); err != nil {
			return err
		}
		return s.settingsRepo.AdvanceSerial(ctx, tx, settings.ID,
			settings.LastBillSerial, result.Settings.LastBillSerial, actor.ID)
	})
	if err != nil {
		return nil, err
	}

	if result.Transaction != nil {
		s.balanceCache.Invalidate(ctx, result.Transaction.PartyID())
	}

	s.log.Info().
		Str("serial_no", result.Bill.SerialNo).
		Str("customer", result.Bill.CustomerName).
		Str("total", result.Bill.TotalAmount.StringFixed(2)).
		Bool("ledger_debit", result.Transaction != nil).
		Msg("bill generated")

	return result, nil
}

func (s *BillingService) billingOutbox(result *billing.Result) *model.OutboxMessage {
	payload, _ := json.Marshal(map[string]interface{}{
		"bill_id":      result.Bill.ID,
		"serial_no":    result.Bill.SerialNo,
		"customer":     result.Bill.CustomerName,
		"total_amount": result.Bill.TotalAmount,
		"item_count":   len(result.Items),
		"issued_at":    result.Bill.CreatedAt.Format(time.RFC3339),
	})
	return &model.OutboxMessage{
		MessageKey: result.Bill.SerialNo,
		Topic:      s.cfg.Kafka.Topic.Billing,
		Payload:    string(payload),
		Status:     model.OutboxStatusPending,
	}
}

func (s *BillingService) GetBill(ctx context.Context, id string) (*model.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	history, err := s.historyRepo.ListByEntity(ctx, model.EntityTypeBill, id)
	if err != nil {
		return nil, err
	}
	bill.History = history
	return bill, nil
}

func (s *BillingService) ListBills(ctx context.Context, page, pageSize int) ([]*model.Bill, int64, error) {
	return s.billRepo.List(ctx, page, pageSize)
}

// UpdateStatus moves a bill through its status table, audited as a
// status_changed entry with before/after snapshots.
func (s *BillingService) UpdateStatus(ctx context.Context, actor audit.Actor, id, toStatus string) (*model.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fromStatus := bill.Status
	if !model.CanTransitionTo(fromStatus, toStatus) {
		return nil, repository.ErrBillStatusInvalid
	}

	bill.Status = toStatus
	entry, err := s.recorder.Record(bill, model.ActionStatusChanged, actor,
		fmt.Sprintf("Bill %s marked %s", bill.SerialNo, toStatus),
		model.FieldValues{"status": model.Text(fromStatus)},
		model.FieldValues{"status": model.Text(toStatus)})
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.billRepo.UpdateStatus(ctx, tx, id, fromStatus, toStatus, bill.UpdatedAt, bill.UpdatedBy); err != nil {
			return err
		}
		if err := s.historyRepo.Create(ctx, tx, entry); err != nil {
			return fmt.Errorf("record history: %w", err)
		}
		return s.outboxRepo.Create(ctx, tx, newAuditOutbox(s.cfg.Kafka.Topic.Audit, entry))
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

type BillItemInput struct {
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// UpdateItem edits a bill line. The amount is always recomputed from the
// new quantity and price in the same operation - a stale amount is never
// left behind.
func (s *BillingService) UpdateItem(ctx context.Context, actor audit.Actor, itemID string, input *BillItemInput) (*model.BillItem, error) {
	item, err := s.billRepo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	quantity := input.Quantity
	price := input.Price
	if quantity.Sign() <= 0 || price.Sign() <= 0 {
		return nil, billing.ErrInvalidItem
	}

	oldValues := model.FieldValues{
		"quantity": model.Text(item.Quantity.String()),
		"price":    model.Currency(item.Price),
		"amount":   model.Currency(item.Amount),
	}

	if input.ProductName != "" {
		item.ProductName = input.ProductName
	}
	item.Quantity = quantity
	item.Price = price
	billing.RecomputeAmount(item)

	newValues := model.FieldValues{
		"quantity": model.Text(item.Quantity.String()),
		"price":    model.Currency(item.Price),
		"amount":   model.Currency(item.Amount),
	}

	entry, err := s.recorder.Record(item, model.ActionUpdated, actor,
		fmt.Sprintf("Updated bill item %s", item.ProductName), oldValues, newValues)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.billRepo.UpdateItem(ctx, tx, item); err != nil {
			return fmt.Errorf("update bill item: %w", err)
		}
		if err := s.historyRepo.Create(ctx, tx, entry); err != nil {
			return fmt.Errorf("record history: %w", err)
		}
		return s.outboxRepo.Create(ctx, tx, newAuditOutbox(s.cfg.Kafka.Topic.Audit, entry))
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ExportSnapshot returns every bill with line items for export collaborators.
func (s *BillingService) ExportSnapshot(ctx context.Context) ([]*model.Bill, error) {
	return s.billRepo.ListAll(ctx)
}
