package repository

import (
	"context"

	"github.com/tillbook/tillbook-api/internal/domain/entity"
)

// SettingsRepository defines the interface for business settings access.
// There is exactly one settings row per installation.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.BusinessSettings, error)
	Create(ctx context.Context, settings *entity.BusinessSettings) error
	Update(ctx context.Context, settings *entity.BusinessSettings) error
}
