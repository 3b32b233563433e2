package session

import (
	"encoding/json"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/appetiteclub/frontdesk/pkg/money"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/restaurant"
)

// Line is one dish in the cart. Quantity is always at least 1.
type Line struct {
	Dish     restaurant.Dish `json:"dish"`
	Quantity int             `json:"quantity"`
}

func (l Line) Amount() decimal.Decimal {
	return money.Line(l.Dish.Price, l.Quantity)
}

// Cart is the not yet submitted selection of one session, keyed by dish.
type Cart struct {
	lines map[uuid.UUID]*Line
}

func NewCart() *Cart {
	return &Cart{lines: make(map[uuid.UUID]*Line)}
}

// Add inserts the dish with quantity 1, or increments it.
func (c *Cart) Add(dish restaurant.Dish) error {
	if dish.ID == uuid.Nil {
		return restaurant.NewValidationError("dish_id", "dish is required")
	}
	if !dish.Available {
		return restaurant.NewValidationError("dish_id", dish.Name+" is not available")
	}

	if line, ok := c.lines[dish.ID]; ok {
		line.Quantity++
		return nil
	}
	c.lines[dish.ID] = &Line{Dish: dish, Quantity: 1}
	return nil
}

// SetQuantity overwrites the quantity of a dish already in the cart. n <= 0
// removes it. It reports false when the dish is not in the cart.
func (c *Cart) SetQuantity(dishID uuid.UUID, n int) bool {
	line, ok := c.lines[dishID]
	if !ok {
		return false
	}
	if n <= 0 {
		delete(c.lines, dishID)
		return true
	}
	line.Quantity = n
	return true
}

func (c *Cart) Remove(dishID uuid.UUID) {
	delete(c.lines, dishID)
}

func (c *Cart) TotalItems() int {
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// Subtotal is recomputed on every call and rounded to cents.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Amount())
	}
	return money.Round(total)
}

// Lines returns a copy sorted by dish name.
func (c *Cart) Lines() []Line {
	lines := make([]Line, 0, len(c.lines))
	for _, line := range c.lines {
		lines = append(lines, *line)
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Dish.Name == lines[j].Dish.Name {
			return lines[i].Dish.ID.String() < lines[j].Dish.ID.String()
		}
		return lines[i].Dish.Name < lines[j].Dish.Name
	})
	return lines
}

func (c *Cart) Clear() {
	c.lines = make(map[uuid.UUID]*Line)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Items converts the cart to order line items.
func (c *Cart) Items() []restaurant.LineItem {
	lines := c.Lines()
	items := make([]restaurant.LineItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, restaurant.LineItem{
			DishID:    line.Dish.ID,
			Name:      line.Dish.Name,
			UnitPrice: line.Dish.Price,
			Quantity:  line.Quantity,
		})
	}
	return items
}

func (c *Cart) Clone() *Cart {
	clone := NewCart()
	for id, line := range c.lines {
		l := *line
		clone.lines[id] = &l
	}
	return clone
}

func (c *Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Lines())
}

// UnmarshalJSON drops lines that could never have been stored: no dish id or
// a quantity below 1.
func (c *Cart) UnmarshalJSON(data []byte) error {
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}

	c.lines = make(map[uuid.UUID]*Line, len(lines))
	for i := range lines {
		line := lines[i]
		if line.Dish.ID == uuid.Nil || line.Quantity <= 0 {
			continue
		}
		if existing, ok := c.lines[line.Dish.ID]; ok {
			existing.Quantity += line.Quantity
			continue
		}
		c.lines[line.Dish.ID] = &line
	}
	return nil
}
