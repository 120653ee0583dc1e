package enum

import "encoding/json"

// ExpenseStatus is the derived settlement state of an expense. It is computed
// from the expense's settlement log entries and never stored.
type ExpenseStatus int

const (
	ExpenseStatusPaid              ExpenseStatus = 0
	ExpenseStatusPartiallyCredited ExpenseStatus = 1
	ExpenseStatusOutstanding       ExpenseStatus = 2
)

func (s ExpenseStatus) String() string {
	names := [...]string{"Paid", "PartiallyCredited", "Outstanding"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Outstanding"
	}
	return names[s]
}

func (s ExpenseStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
