package records

import (
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

type Category struct {
	ID        uuid.UUID `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (c *Category) GetID() uuid.UUID {
	return c.ID
}

func (c *Category) ResourceType() string {
	return "category"
}

func NewCategory(name string) *Category {
	now := time.Now()
	return &Category{
		ID:        apt.GenerateNewID(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Dish is an entry of the menu catalog. Price is the unit price charged at
// the moment an order is created.
type Dish struct {
	ID          uuid.UUID `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	CategoryID  uuid.UUID `json:"category_id" bson:"category_id"`
	Price       float64   `json:"price" bson:"price"`
	Available   bool      `json:"available" bson:"available"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

func (d *Dish) GetID() uuid.UUID {
	return d.ID
}

func (d *Dish) ResourceType() string {
	return "dish"
}

func NewDish(name string, categoryID uuid.UUID, price float64) *Dish {
	now := time.Now()
	return &Dish{
		ID:         apt.GenerateNewID(),
		Name:       name,
		CategoryID: categoryID,
		Price:      price,
		Available:  true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
