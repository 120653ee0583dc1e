package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SettlementContext identifies what a settlement log entry was applied to
type SettlementContext int

const (
	SettlementContextBill            SettlementContext = 0
	SettlementContextExpense         SettlementContext = 1
	SettlementContextCreditClearance SettlementContext = 2
	SettlementContextAdvanceTopUp    SettlementContext = 3
)

func (c SettlementContext) String() string {
	names := [...]string{"Bill", "Expense", "CreditClearance", "AdvanceTopUp"}
	if int(c) < 0 || int(c) >= len(names) {
		return "Bill"
	}
	return names[c]
}

func (c SettlementContext) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *SettlementContext) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*c = SettlementContext(i)
		return nil
	}
	switch str {
	case "Bill":
		*c = SettlementContextBill
	case "Expense":
		*c = SettlementContextExpense
	case "CreditClearance":
		*c = SettlementContextCreditClearance
	case "AdvanceTopUp":
		*c = SettlementContextAdvanceTopUp
	}
	return nil
}

func (c SettlementContext) Value() (driver.Value, error) {
	return int64(c), nil
}

func (c *SettlementContext) Scan(value interface{}) error {
	if value == nil {
		*c = SettlementContextBill
		return nil
	}
	switch v := value.(type) {
	case int64:
		*c = SettlementContext(v)
	case int:
		*c = SettlementContext(v)
	}
	return nil
}
