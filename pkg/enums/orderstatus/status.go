package orderstatus

import (
	"strings"
)

type Status struct {
	Name string
}

func (s Status) Code() string {
	return s.Name
}

func (s Status) Label() string {
	parts := strings.Split(strings.ToLower(s.Name), "_")
	for i := range parts {
		if len(parts[i]) > 0 {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, " ")
}

func (s Status) String() string {
	return s.Name
}

type Enum struct {
	Received      Status
	InPreparation Status
	Ready         Status
	Delivered     Status
	Closed        Status
}

var Statuses = Enum{
	Received:      Status{Name: "RECEIVED"},
	InPreparation: Status{Name: "IN_PREPARATION"},
	Ready:         Status{Name: "READY"},
	Delivered:     Status{Name: "DELIVERED"},
	Closed:        Status{Name: "CLOSED"},
}

var All = []Status{
	Statuses.Received,
	Statuses.InPreparation,
	Statuses.Ready,
	Statuses.Delivered,
	Statuses.Closed,
}

// Preparable is the filter name billing uses for orders it may settle.
const Preparable = "preparable"

// Active is the filter name for every order that is not closed.
const Active = "active"

// ByName returns the status for a given name, or nil if not found
func ByName(name string) *Status {
	for _, s := range All {
		if s.Name == name {
			return &s
		}
	}
	return nil
}

// Parse is ByName with case and separator tolerance ("in-preparation").
func Parse(name string) (Status, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "_")
	s := ByName(normalized)
	if s == nil {
		return Status{}, false
	}
	return *s, true
}

type edge struct {
	from string
	to   string
}

var kitchenEdges = map[edge]bool{
	{Statuses.Received.Name, Statuses.InPreparation.Name}: true,
	{Statuses.InPreparation.Name, Statuses.Ready.Name}:    true,
	{Statuses.InPreparation.Name, Statuses.Received.Name}: true,
	{Statuses.Ready.Name, Statuses.InPreparation.Name}:    true,
}

var billingEdges = map[edge]bool{
	{Statuses.Ready.Name, Statuses.Delivered.Name}:  true,
	{Statuses.Ready.Name, Statuses.Closed.Name}:     true,
	{Statuses.Delivered.Name, Statuses.Closed.Name}: true,
}

// KitchenTransition reports whether kitchen controls may move an order from
// one status to another.
func KitchenTransition(from, to string) bool {
	return kitchenEdges[edge{from, to}]
}

// CanTransition reports whether any actor may move an order along the edge.
func CanTransition(from, to string) bool {
	e := edge{from, to}
	return kitchenEdges[e] || billingEdges[e]
}

// Forward returns the next kitchen status, if the kitchen can advance s.
func Forward(s string) (Status, bool) {
	switch s {
	case Statuses.Received.Name:
		return Statuses.InPreparation, true
	case Statuses.InPreparation.Name:
		return Statuses.Ready, true
	}
	return Status{}, false
}

// Backward returns the correction status, if the kitchen can revert s.
func Backward(s string) (Status, bool) {
	switch s {
	case Statuses.InPreparation.Name:
		return Statuses.Received, true
	case Statuses.Ready.Name:
		return Statuses.InPreparation, true
	}
	return Status{}, false
}

// Billable reports whether billing may settle an order in status s.
func Billable(s string) bool {
	return s == Statuses.Ready.Name || s == Statuses.Delivered.Name
}

// IsActive reports whether s is any status but closed.
func IsActive(s string) bool {
	return ByName(s) != nil && s != Statuses.Closed.Name
}

// Expand resolves a status filter (a name, a comma separated list, or one of
// the Preparable/Active aliases) into concrete status names. Unknown names
// are reported as invalid.
func Expand(filter string) ([]string, bool) {
	filter = strings.TrimSpace(filter)
	switch strings.ToLower(filter) {
	case "":
		return nil, true
	case Preparable:
		return []string{Statuses.Ready.Name, Statuses.Delivered.Name}, true
	case Active:
		return []string{
			Statuses.Received.Name,
			Statuses.InPreparation.Name,
			Statuses.Ready.Name,
			Statuses.Delivered.Name,
		}, true
	}

	var names []string
	for _, part := range strings.Split(filter, ",") {
		s, ok := Parse(part)
		if !ok {
			return nil, false
		}
		names = append(names, s.Name)
	}
	return names, true
}
