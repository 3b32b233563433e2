package records

import (
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/appetiteclub/frontdesk/pkg/enums/occupancy"
)

type Table struct {
	ID        uuid.UUID `json:"id" bson:"_id"`
	Number    int       `json:"number" bson:"number"`
	Capacity  int       `json:"capacity" bson:"capacity"`
	Occupancy string    `json:"occupancy" bson:"occupancy"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	CreatedBy string    `json:"created_by" bson:"created_by"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
	UpdatedBy string    `json:"updated_by" bson:"updated_by"`
}

func (t *Table) GetID() uuid.UUID {
	return t.ID
}

func (t *Table) ResourceType() string {
	return "table"
}

func (t *Table) SetID(id uuid.UUID) {
	t.ID = id
}

func NewTable() *Table {
	return &Table{
		ID:        apt.GenerateNewID(),
		Occupancy: occupancy.States.Available.Name,
	}
}

func (t *Table) EnsureID() {
	if t.ID == uuid.Nil {
		t.ID = apt.GenerateNewID()
	}
}

func (t *Table) BeforeCreate() {
	t.EnsureID()
	if t.Occupancy == "" {
		t.Occupancy = occupancy.States.Available.Name
	}
	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()
}

func (t *Table) BeforeUpdate() {
	t.UpdatedAt = time.Now()
}

func (t *Table) IsOccupied() bool {
	return t.Occupancy == occupancy.States.Occupied.Name
}
