package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"khatapro/internal/audit"
	"khatapro/internal/config"
	"khatapro/internal/model"
	"khatapro/internal/repository"
	"khatapro/pkg/idgen"
)

// defaultSettings seeds the singleton on first use. The serial counter
// starts at zero; the first generated bill gets serial 1.
func defaultSettings() *model.Settings {
	return &model.Settings{
		ID:             idgen.GenerateSettingsID(),
		ShopName:       "Khata Pro",
		LastBillSerial: 0,
	}
}

type SettingsService struct {
	db           *gorm.DB
	cfg          *config.Config
	recorder     *audit.Recorder
	settingsRepo *repository.SettingsRepository
	historyRepo  *repository.HistoryRepository
	outboxRepo   *repository.OutboxRepository
}

func NewSettingsService(db *gorm.DB, cfg *config.Config) *SettingsService {
	return &SettingsService{
		db:           db,
		cfg:          cfg,
		recorder:     audit.NewRecorder(),
		settingsRepo: repository.NewSettingsRepository(db),
		historyRepo:  repository.NewHistoryRepository(db),
		outboxRepo:   repository.NewOutboxRepository(db),
	}
}

func (s *SettingsService) Get(ctx context.Context) (*model.Settings, error) {
	settings, err := s.settingsRepo.GetOrCreate(ctx, defaultSettings())
	if err != nil {
		return nil, err
	}
	history, err := s.historyRepo.ListByEntity(ctx, model.EntityTypeSettings, settings.ID)
	if err != nil {
		return nil, err
	}
	settings.History = history
	return settings, nil
}

type SettingsInput struct {
	ShopName    string `json:"shop_name" binding:"required"`
	ShopAddress string `json:"shop_address"`
	AdminPhone  string `json:"admin_phone"`
}

// Update rewrites the shop details. The serial counter is out of reach
// here - only the bill sequencer advances it.
func (s *SettingsService) Update(ctx context.Context, actor audit.Actor, input *SettingsInput) (*model.Settings, error) {
	settings, err := s.settingsRepo.GetOrCreate(ctx, defaultSettings())
	if err != nil {
		return nil, err
	}

	oldValues, newValues := diffFields(map[string][2]string{
		"shop_name":    {settings.ShopName, input.ShopName},
		"shop_address": {settings.ShopAddress, input.ShopAddress},
		"admin_phone":  {settings.AdminPhone, input.AdminPhone},
	})

	settings.ShopName = input.ShopName
	settings.ShopAddress = input.ShopAddress
	settings.AdminPhone = input.AdminPhone

	entry, err := s.recorder.Record(settings, model.ActionUpdated, actor,
		"Updated shop settings", oldValues, newValues)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.settingsRepo.UpdateShopDetails(ctx, tx, settings); err != nil {
			return fmt.Errorf("update settings: %w", err)
		}
		if err := s.historyRepo.Create(ctx, tx, entry); err != nil {
			return fmt.Errorf("record history: %w", err)
		}
		return s.outboxRepo.Create(ctx, tx, newAuditOutbox(s.cfg.Kafka.Topic.Audit, entry))
	})
	if err != nil {
		return nil, err
	}
	return settings, nil
}
