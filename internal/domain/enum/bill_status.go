package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// BillStatus represents the lifecycle state of a bill
type BillStatus int

const (
	BillStatusOpen    BillStatus = 0
	BillStatusSettled BillStatus = 1
	BillStatusCancel  BillStatus = 2
)

func (s BillStatus) String() string {
	names := [...]string{"Open", "Settled", "Cancel"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Open"
	}
	return names[s]
}

// ParseBillStatus maps a status name to its enum value.
func ParseBillStatus(s string) (BillStatus, bool) {
	switch s {
	case "Open":
		return BillStatusOpen, true
	case "Settled":
		return BillStatusSettled, true
	case "Cancel":
		return BillStatusCancel, true
	}
	return BillStatusOpen, false
}

func (s BillStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *BillStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = BillStatus(i)
		return nil
	}
	switch str {
	case "Open":
		*s = BillStatusOpen
	case "Settled":
		*s = BillStatusSettled
	case "Cancel":
		*s = BillStatusCancel
	}
	return nil
}

func (s BillStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *BillStatus) Scan(value interface{}) error {
	if value == nil {
		*s = BillStatusOpen
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = BillStatus(v)
	case int:
		*s = BillStatus(v)
	}
	return nil
}
