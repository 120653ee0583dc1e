package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// KOTStatus represents the status of a kitchen order ticket
type KOTStatus int

const (
	KOTStatusPending KOTStatus = 0
	KOTStatusServed  KOTStatus = 1
	KOTStatusCancel  KOTStatus = 2
)

func (s KOTStatus) String() string {
	names := [...]string{"Pending", "Served", "Cancel"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Pending"
	}
	return names[s]
}

// ParseKOTStatus maps a status name to its enum value.
func ParseKOTStatus(s string) (KOTStatus, bool) {
	switch s {
	case "Pending":
		return KOTStatusPending, true
	case "Served":
		return KOTStatusServed, true
	case "Cancel":
		return KOTStatusCancel, true
	}
	return KOTStatusPending, false
}

func (s KOTStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *KOTStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = KOTStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = KOTStatusPending
	case "Served":
		*s = KOTStatusServed
	case "Cancel":
		*s = KOTStatusCancel
	}
	return nil
}

func (s KOTStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *KOTStatus) Scan(value interface{}) error {
	if value == nil {
		*s = KOTStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = KOTStatus(v)
	case int:
		*s = KOTStatus(v)
	}
	return nil
}
