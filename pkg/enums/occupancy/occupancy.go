package occupancy

import "strings"

// Occupancy is the canonical two-value table state. Every boolean seen on the
// wire is mapped through FromOccupied / Occupied and nowhere else.
type Occupancy struct {
	Name string
}

func (o Occupancy) Code() string {
	return o.Name
}

func (o Occupancy) String() string {
	return o.Name
}

func (o Occupancy) Occupied() bool {
	return o.Name == States.Occupied.Name
}

type Enum struct {
	Available Occupancy
	Occupied  Occupancy
}

var States = Enum{
	Available: Occupancy{Name: "AVAILABLE"},
	Occupied:  Occupancy{Name: "OCCUPIED"},
}

var All = []Occupancy{
	States.Available,
	States.Occupied,
}

func FromOccupied(occupied bool) Occupancy {
	if occupied {
		return States.Occupied
	}
	return States.Available
}

// ByName returns the occupancy for a given name, or nil if not found
func ByName(name string) *Occupancy {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	for _, o := range All {
		if o.Name == normalized {
			return &o
		}
	}
	return nil
}
