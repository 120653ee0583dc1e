package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BusinessSettings represents the single shop's configuration
type BusinessSettings struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// General settings
	ShopName   string `gorm:"size:255;default:'Tillbook'" json:"shop_name"`
	Address    string `gorm:"type:text" json:"address"`
	Phone      string `gorm:"size:50" json:"phone"`
	Currency   string `gorm:"size:10;default:'INR'" json:"currency"`
	Timezone   string `gorm:"size:50;default:'Asia/Kolkata'" json:"timezone"`
	GSTIN      string `gorm:"size:50;column:gstin" json:"gstin"`
	TaxPercent int    `gorm:"default:0" json:"tax_percent"`

	// Receipt settings
	ReceiptHeader string `gorm:"size:255" json:"receipt_header"`
	ReceiptFooter string `gorm:"size:255;default:'Thank you, visit again!'" json:"receipt_footer"`

	// Credit settings
	AllowCustomerCredit bool  `gorm:"default:true" json:"allow_customer_credit"`
	CreditLimit         int64 `gorm:"default:0" json:"credit_limit"` // Stored in paise; 0 = no limit
}

// BeforeCreate generates a UUID before creating new settings
func (s *BusinessSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BusinessSettings model
func (BusinessSettings) TableName() string {
	return "business_settings"
}
