package service

import (
	"context"

	"github.com/tillbook/tillbook-api/internal/domain/entity"
	"github.com/tillbook/tillbook-api/internal/domain/repository"
)

// SettingsService handles the shop's configuration
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetSettings returns the settings row, creating the default one if the
// seed has not run.
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.BusinessSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &entity.BusinessSettings{}
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
	}
	return settings, nil
}

// UpdateSettingsInput represents the update settings input
type UpdateSettingsInput struct {
	ShopName            *string
	Address             *string
	Phone               *string
	Currency            *string
	Timezone            *string
	GSTIN               *string
	TaxPercent          *int
	ReceiptHeader       *string
	ReceiptFooter       *string
	AllowCustomerCredit *bool
	CreditLimit         *int64
}

// UpdateSettings applies a partial settings update
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.BusinessSettings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if input.ShopName != nil {
		settings.ShopName = *input.ShopName
	}
	if input.Address != nil {
		settings.Address = *input.Address
	}
	if input.Phone != nil {
		settings.Phone = *input.Phone
	}
	if input.Currency != nil {
		settings.Currency = *input.Currency
	}
	if input.Timezone != nil {
		settings.Timezone = *input.Timezone
	}
	if input.GSTIN != nil {
		settings.GSTIN = *input.GSTIN
	}
	if input.TaxPercent != nil {
		settings.TaxPercent = *input.TaxPercent
	}
	if input.ReceiptHeader != nil {
		settings.ReceiptHeader = *input.ReceiptHeader
	}
	if input.ReceiptFooter != nil {
		settings.ReceiptFooter = *input.ReceiptFooter
	}
	if input.AllowCustomerCredit != nil {
		settings.AllowCustomerCredit = *input.AllowCustomerCredit
	}
	if input.CreditLimit != nil {
		settings.CreditLimit = *input.CreditLimit
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
