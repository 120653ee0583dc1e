package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/tillbook/tillbook-api/internal/domain/enum"
	"gorm.io/gorm"
)

// KOT represents a kitchen order ticket, the base billable unit. A KOT is
// attached to a bill when the customer settles; until then BillID is nil.
type KOT struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	KOTNo      string         `gorm:"size:100;unique;not null" json:"kot_no"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID *uuid.UUID     `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	BillID     *uuid.UUID     `gorm:"type:uuid;index" json:"bill_id,omitempty"`
	TableNo    *string        `gorm:"size:20" json:"table_no,omitempty"`
	Status     enum.KOTStatus `gorm:"default:0" json:"status"`
	SubTotal   int64          `gorm:"default:0" json:"-"` // Stored in paise, excluded from JSON
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []KOTItem `gorm:"foreignKey:KOTID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert paise to decimal for API responses
func (k KOT) MarshalJSON() ([]byte, error) {
	type Alias KOT
	return json.Marshal(&struct {
		Alias
		SubTotal float64 `json:"sub_total"`
	}{
		Alias:    Alias(k),
		SubTotal: float64(k.SubTotal) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new KOT
func (k *KOT) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the KOT model
func (KOT) TableName() string {
	return "kots"
}

// KOTItem represents a line item on a kitchen order ticket
type KOTItem struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	KOTID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"kot_id"`
	MenuItemID uuid.UUID      `gorm:"type:uuid;not null;index" json:"menu_item_id"`
	Quantity   int            `gorm:"not null" json:"quantity"`
	UnitPrice  int64          `gorm:"not null" json:"-"` // Stored in paise, excluded from JSON
	Total      int64          `gorm:"not null" json:"-"` // Stored in paise, excluded from JSON
	Note       *string        `gorm:"size:255" json:"note,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	KOT      KOT      `gorm:"foreignKey:KOTID" json:"-"`
	MenuItem MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
}

// MarshalJSON custom marshaler to convert paise to decimal for API responses
func (ki KOTItem) MarshalJSON() ([]byte, error) {
	type Alias KOTItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(ki),
		UnitPrice: float64(ki.UnitPrice) / 100,
		Total:     float64(ki.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new KOT item
func (ki *KOTItem) BeforeCreate(tx *gorm.DB) error {
	if ki.ID == uuid.Nil {
		ki.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the KOTItem model
func (KOTItem) TableName() string {
	return "kot_items"
}
