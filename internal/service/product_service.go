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
	"khatapro/internal/model"
	"khatapro/internal/repository"
	"khatapro/pkg/idgen"
)

var ErrPriceInvalid = errors.New("price must not be negative")

type ProductService struct {
	db          *gorm.DB
	cfg         *config.Config
	recorder    *audit.Recorder
	productRepo *repository.ProductRepository
	historyRepo *repository.HistoryRepository
	outboxRepo  *repository.OutboxRepository
}

func NewProductService(db *gorm.DB, cfg *config.Config) *ProductService {
	return &ProductService{
		db:          db,
		cfg:         cfg,
		recorder:    audit.NewRecorder(),
		productRepo: repository.NewProductRepository(db),
		historyRepo: repository.NewHistoryRepository(db),
		outboxRepo:  repository.NewOutboxRepository(db),
	}
}

type ProductInput struct {
	Name  string          `json:"name" binding:"required"`
	Price decimal.Decimal `json:"price"`
	Stock decimal.Decimal `json:"stock"`
	Unit  string          `json:"unit"`
}

func (s *ProductService) Create(ctx context.Context, actor audit.Actor, input *ProductInput) (*model.Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}
	if input.Price.Sign() < 0 {
		return nil, ErrPriceInvalid
	}

	product := &model.Product{
		ID:    idgen.GenerateProductID(),
		Name:  strings.TrimSpace(input.Name),
		Price: input.Price,
		Stock: input.Stock,
		Unit:  input.Unit,
	}
	product.CreatedBy = actor.ID

	entry, err := s.recorder.Record(product, model.ActionCreated, actor,
		fmt.Sprintf("Created product %s", product.Name), nil, nil)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.Create(ctx, tx, product); err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		if err := s.historyRepo.Create(ctx, tx, entry); err != nil {
			return fmt.Errorf("record history: %w", err)
		}
		return s.outboxRepo.Create(ctx, tx, newAuditOutbox(s.cfg.Kafka.Topic.Audit, entry))
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) GetDetail(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	history, err := s.historyRepo.ListByEntity(ctx, model.EntityTypeProduct, id)
	if err != nil {
		return nil, err
	}
	product.History = history
	return product, nil
}

func (s *ProductService) List(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.List(ctx)
}

func (s *ProductService) Update(ctx context.Context, actor audit.Actor, id string, input *ProductInput) (*model.Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}
	if input.Price.Sign() < 0 {
		return nil, ErrPriceInvalid
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var oldValues, newValues model.FieldValues
	if !product.Price.Equal(input.Price) || product.Name != input.Name || !product.Stock.Equal(input.Stock) {
		oldValues = model.FieldValues{
			"name":  model.Text(product.Name),
			"price": model.Currency(product.Price),
			"stock": model.Text(product.Stock.String()),
		}
		newValues = model.FieldValues{
			"name":  model.Text(strings.TrimSpace(input.Name)),
			"price": model.Currency(input.Price),
			"stock": model.Text(input.Stock.String()),
		}
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Price = input.Price
	product.Stock = input.Stock
	product.Unit = input.Unit

	entry, err := s.recorder.Record(product, model.ActionUpdated, actor,
		fmt.Sprintf("Updated product %s", product.Name), oldValues, newValues)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.Update(ctx, tx, product); err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		if err := s.historyRepo.Create(ctx, tx, entry); err != nil {
			return fmt.Errorf("record history: %w", err)
		}
		return s.outboxRepo.Create(ctx, tx, newAuditOutbox(s.cfg.Kafka.Topic.Audit, entry))
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, actor audit.Actor, id string) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	entry, err := s.recorder.Record(product, model.ActionDeleted, actor,
		fmt.Sprintf("Deleted product %s", product.Name), nil, nil)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.Delete(ctx, tx, id); err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		if err := s.historyRepo.Create(ctx, tx, entry); err != nil {
			return fmt.Errorf("record history: %w", err)
		}
		return s.outboxRepo.Create(ctx, tx, newAuditOutbox(s.cfg.Kafka.Topic.Audit, entry))
	})
}
