package request

// UpdateSettingsRequest represents a partial business settings update
type UpdateSettingsRequest struct {
	ShopName            *string  `json:"shop_name" binding:"omitempty,max=100"`
	Address             *string  `json:"address" binding:"omitempty,max=255"`
	Phone               *string  `json:"phone" binding:"omitempty,max=20"`
	Currency            *string  `json:"currency" binding:"omitempty,len=3"`
	Timezone            *string  `json:"timezone" binding:"omitempty,max=50"`
	GSTIN               *string  `json:"gstin" binding:"omitempty,max=20"`
	TaxPercent          *int     `json:"tax_percent" binding:"omitempty,gte=0,lte=100"`
	ReceiptHeader       *string  `json:"receipt_header" binding:"omitempty,max=255"`
	ReceiptFooter       *string  `json:"receipt_footer" binding:"omitempty,max=255"`
	AllowCustomerCredit *bool    `json:"allow_customer_credit"`
	CreditLimit         *float64 `json:"credit_limit" binding:"omitempty,gte=0"`
}
