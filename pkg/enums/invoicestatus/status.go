package invoicestatus

import "strings"

type Status struct {
	Name string
}

func (s Status) Code() string {
	return s.Name
}

type Enum struct {
	Paid    Status
	Pending Status
	Voided  Status
}

var Statuses = Enum{
	Paid:    Status{Name: "PAID"},
	Pending: Status{Name: "PENDING"},
	Voided:  Status{Name: "VOIDED"},
}

var All = []Status{
	Statuses.Paid,
	Statuses.Pending,
	Statuses.Voided,
}

// ByName returns the status for a given name, or nil if not found
func ByName(name string) *Status {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	for _, s := range All {
		if s.Name == normalized {
			return &s
		}
	}
	return nil
}
