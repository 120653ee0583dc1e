package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a customer with a running tab. CreditBalance and
// AdvanceBalance are denormalized caches over the settlement log; the
// settlement log is the ground truth and the audit service keeps the two
// in agreement. Customers are never hard-deleted, only soft-deleted, so
// historical settlements always resolve.
type Customer struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name           string         `gorm:"size:255;not null" json:"name"`
	Phone          *string        `gorm:"size:50;index" json:"phone,omitempty"`
	Address        *string        `gorm:"type:text" json:"address,omitempty"`
	CreditBalance  int64          `gorm:"default:0" json:"-"` // Stored in paise, excluded from JSON
	AdvanceBalance int64          `gorm:"default:0" json:"-"` // Stored in paise, excluded from JSON
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Bills       []Bill       `gorm:"foreignKey:CustomerID" json:"-"`
	Settlements []Settlement `gorm:"foreignKey:CustomerID" json:"-"`
}

// MarshalJSON custom marshaler to convert paise to decimal for API responses
func (c Customer) MarshalJSON() ([]byte, error) {
	type Alias Customer
	return json.Marshal(&struct {
		Alias
		CreditBalance  float64 `json:"credit_balance"`
		AdvanceBalance float64 `json:"advance_balance"`
	}{
		Alias:          Alias(c),
		CreditBalance:  float64(c.CreditBalance) / 100,
		AdvanceBalance: float64(c.AdvanceBalance) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
