package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// PaymentKind represents one payment allocation method in a split payment
type PaymentKind int

const (
	PaymentKindCash PaymentKind = iota
	PaymentKindUPI
	PaymentKindCredit
	PaymentKindAdvanceUse
	PaymentKindAdvanceAddCash
	PaymentKindAdvanceAddUPI
)

var paymentKindNames = [...]string{"Cash", "UPI", "Credit", "AdvanceUse", "AdvanceAddCash", "AdvanceAddUPI"}

func (k PaymentKind) String() string {
	if int(k) < 0 || int(k) >= len(paymentKindNames) {
		return "Cash"
	}
	return paymentKindNames[k]
}

// PaymentKinds returns every defined kind in declaration order
func PaymentKinds() []PaymentKind {
	kinds := make([]PaymentKind, len(paymentKindNames))
	for i := range kinds {
		kinds[i] = PaymentKind(i)
	}
	return kinds
}

// IsValid reports whether k is one of the defined payment kinds
func (k PaymentKind) IsValid() bool {
	return int(k) >= 0 && int(k) < len(paymentKindNames)
}

// ContributesToTotal reports whether this kind counts toward a bill or
// expense's settled total. Advance top-ups move money into the advance
// ledger and never settle anything by themselves.
func (k PaymentKind) ContributesToTotal() bool {
	switch k {
	case PaymentKindCash, PaymentKindUPI, PaymentKindCredit, PaymentKindAdvanceUse:
		return true
	}
	return false
}

// IsAdvanceTopUp reports whether this kind deposits into the advance ledger
func (k PaymentKind) IsAdvanceTopUp() bool {
	return k == PaymentKindAdvanceAddCash || k == PaymentKindAdvanceAddUPI
}

// ParsePaymentKind resolves a payment-kind label, tolerating the case and
// spacing variants found in data recorded before kinds were an enum
// ("cash", "CASH", "advance use", ...).
func ParsePaymentKind(s string) (PaymentKind, bool) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	switch normalized {
	case "cash":
		return PaymentKindCash, true
	case "upi", "gpay", "phonepe":
		return PaymentKindUPI, true
	case "credit", "due", "udhaar":
		return PaymentKindCredit, true
	case "advanceuse", "advance":
		return PaymentKindAdvanceUse, true
	case "advanceaddcash":
		return PaymentKindAdvanceAddCash, true
	case "advanceaddupi":
		return PaymentKindAdvanceAddUPI, true
	}
	return PaymentKindCash, false
}

func (k PaymentKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *PaymentKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*k = PaymentKind(i)
		return nil
	}
	if parsed, ok := ParsePaymentKind(str); ok {
		*k = parsed
	}
	return nil
}

func (k PaymentKind) Value() (driver.Value, error) {
	return int64(k), nil
}

func (k *PaymentKind) Scan(value interface{}) error {
	if value == nil {
		*k = PaymentKindCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*k = PaymentKind(v)
	case int:
		*k = PaymentKind(v)
	}
	return nil
}
