package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/tillbook/tillbook-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Settlement is one immutable, append-only log entry recording a payment
// component applied to a bill, expense, credit clearance, or advance top-up.
// Rows are never updated or deleted once written; reversals are later
// entries referencing the same target. Every balance in the system is a
// view over this log.
//
// Mode retains the free-text payment label written by older versions of the
// till; MigrateLegacyModes canonicalizes it against Kind.
type Settlement struct {
	ID          uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID  *uuid.UUID             `gorm:"type:uuid;index" json:"customer_id,omitempty"` // nil for business-scoped (expense) entries
	Context     enum.SettlementContext `gorm:"not null;index" json:"context"`
	ReferenceID *uuid.UUID             `gorm:"type:uuid;index" json:"reference_id,omitempty"` // bill or expense being settled
	Kind        enum.PaymentKind       `gorm:"not null;index" json:"kind"`
	Mode        string                 `gorm:"size:50" json:"mode"`
	Amount      int64                  `gorm:"not null" json:"-"` // Stored in paise, excluded from JSON
	CreatedAt   time.Time              `json:"created_at"`
	DeletedAt   gorm.DeletedAt         `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"-"`
}

// MarshalJSON custom marshaler to convert paise to decimal for API responses
func (s Settlement) MarshalJSON() ([]byte, error) {
	type Alias Settlement
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(s),
		Amount: float64(s.Amount) / 100,
	})
}

// BeforeCreate generates a UUID and stamps the canonical mode label
func (s *Settlement) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Mode == "" {
		s.Mode = s.Kind.String()
	}
	return nil
}

// TableName returns the table name for the Settlement model
func (Settlement) TableName() string {
	return "settlements"
}
