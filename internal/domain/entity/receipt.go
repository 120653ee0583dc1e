package entity

import "encoding/json"

// Receipt is the printable projection of a bill. Amounts are paise, like
// every other entity; rendering converts at the edge.
type Receipt struct {
	Header    ReceiptHeader `json:"header"`
	BillNo    string        `json:"bill_no"`
	Date      string        `json:"date"`
	Cashier   string        `json:"cashier,omitempty"`
	Customer  string        `json:"customer,omitempty"`
	Items     []ReceiptItem `json:"items"`
	SubTotal  int64         `json:"-"`
	Tax       int64         `json:"-"`
	Total     int64         `json:"-"`
	Payments  []ReceiptLine `json:"payments,omitempty"`
	CreditDue int64         `json:"-"`
	Footer    string        `json:"footer,omitempty"`
}

// MarshalJSON custom marshaler to convert paise to decimal for API responses
func (r Receipt) MarshalJSON() ([]byte, error) {
	type Alias Receipt
	return json.Marshal(&struct {
		Alias
		SubTotal  float64 `json:"sub_total"`
		Tax       float64 `json:"tax"`
		Total     float64 `json:"total"`
		CreditDue float64 `json:"credit_due"`
	}{
		Alias:     Alias(r),
		SubTotal:  float64(r.SubTotal) / 100,
		Tax:       float64(r.Tax) / 100,
		Total:     float64(r.Total) / 100,
		CreditDue: float64(r.CreditDue) / 100,
	})
}

// ReceiptHeader carries the shop identity block
type ReceiptHeader struct {
	ShopName string `json:"shop_name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	GSTIN    string `json:"gstin,omitempty"`
}

// ReceiptItem is one printed line item
type ReceiptItem struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"-"`
	Total     int64  `json:"-"`
}

// MarshalJSON custom marshaler to convert paise to decimal for API responses
func (i ReceiptItem) MarshalJSON() ([]byte, error) {
	type Alias ReceiptItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(i),
		UnitPrice: float64(i.UnitPrice) / 100,
		Total:     float64(i.Total) / 100,
	})
}

// ReceiptLine is one printed payment line, e.g. "Cash  300.00"
type ReceiptLine struct {
	Label  string `json:"label"`
	Amount int64  `json:"-"`
}

// MarshalJSON custom marshaler to convert paise to decimal for API responses
func (l ReceiptLine) MarshalJSON() ([]byte, error) {
	type Alias ReceiptLine
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(l),
		Amount: float64(l.Amount) / 100,
	})
}
