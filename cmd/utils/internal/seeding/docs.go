package seeding

import (
	"time"

	"github.com/google/uuid"
)

// Collection names in the records database.
const (
	TablesCollection = "tables"
	DishesCollection = "dishes"
	OrdersCollection = "orders"
	SeedsCollection  = "_seeds"
)

// DemoActor marks every document the demo seed writes.
const DemoActor = "demo-seed"

type TableDoc struct {
	ID        uuid.UUID `bson:"_id"`
	Number    int       `bson:"number"`
	Occupancy string    `bson:"occupancy"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type DishDoc struct {
	ID        uuid.UUID `bson:"_id"`
	Name      string    `bson:"name"`
	Price     float64   `bson:"price"`
	Available bool      `bson:"available"`
}

type OrderDoc struct {
	ID          uuid.UUID     `bson:"_id"`
	TableID     uuid.UUID     `bson:"table_id"`
	TableNumber int           `bson:"table_number"`
	Items       []LineItemDoc `bson:"items"`
	Status      string        `bson:"status"`
	Note        string        `bson:"note,omitempty"`
	CreatedAt   time.Time     `bson:"created_at"`
	CreatedBy   string        `bson:"created_by"`
	UpdatedAt   time.Time     `bson:"updated_at"`
	UpdatedBy   string        `bson:"updated_by"`
}

type LineItemDoc struct {
	DishID    uuid.UUID `bson:"dish_id"`
	Name      string    `bson:"name"`
	UnitPrice float64   `bson:"unit_price"`
	Quantity  int       `bson:"quantity"`
}
