package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/tillbook/tillbook-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Bill aggregates one or more KOTs for a single customer settlement.
// Paid and CreditDue are derived from the bill's settlement entries at
// settle time; the settlement log remains the ground truth.
type Bill struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	BillNo     string          `gorm:"size:100;unique;not null" json:"bill_no"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID *uuid.UUID      `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Status     enum.BillStatus `gorm:"default:0" json:"status"`
	SubTotal   int64           `gorm:"default:0" json:"-"` // Stored in paise, excluded from JSON
	Total      int64           `gorm:"default:0" json:"-"` // Stored in paise, excluded from JSON
	Paid       int64           `gorm:"default:0" json:"-"` // Stored in paise, excluded from JSON
	CreditDue  int64           `gorm:"default:0" json:"-"` // Stored in paise, excluded from JSON
	SettledAt  *time.Time      `json:"settled_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	User        User         `gorm:"foreignKey:UserID" json:"-"`
	Customer    *Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	KOTs        []KOT        `gorm:"foreignKey:BillID" json:"kots,omitempty"`
	Settlements []Settlement `gorm:"foreignKey:ReferenceID" json:"settlements,omitempty"`
}

// MarshalJSON custom marshaler to convert paise to decimal for API responses
func (b Bill) MarshalJSON() ([]byte, error) {
	type Alias Bill
	return json.Marshal(&struct {
		Alias
		SubTotal  float64 `json:"sub_total"`
		Total     float64 `json:"total"`
		Paid      float64 `json:"paid"`
		CreditDue float64 `json:"credit_due"`
	}{
		Alias:     Alias(b),
		SubTotal:  float64(b.SubTotal) / 100,
		Total:     float64(b.Total) / 100,
		Paid:      float64(b.Paid) / 100,
		CreditDue: float64(b.CreditDue) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new bill
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}
