package seeding

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/appetiteclub/frontdesk/pkg/enums/orderstatus"
)

// DemoSeedID is the marker stored in the seeds collection once the demo
// orders exist.
const DemoSeedID = "demo_orders_v1"

const demoFile = "demo.yaml"

//go:embed demo.yaml
var demoFS embed.FS

type DemoDocument struct {
	Orders []DemoOrder `yaml:"orders"`
}

type DemoOrder struct {
	Table  int           `yaml:"table"`
	Status string        `yaml:"status"`
	Age    time.Duration `yaml:"age"`
	Note   string        `yaml:"note"`
	Items  []DemoItem    `yaml:"items"`
}

type DemoItem struct {
	Dish     string `yaml:"dish"`
	Quantity int    `yaml:"quantity"`
}

// DefaultDemo returns the embedded demo document.
func DefaultDemo() (*DemoDocument, error) {
	return LoadDemo(demoFS)
}

func LoadDemo(fsys fs.FS) (*DemoDocument, error) {
	data, err := fs.ReadFile(fsys, demoFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", demoFile, err)
	}
	return ParseDemo(data)
}

func ParseDemo(data []byte) (*DemoDocument, error) {
	if len(data) == 0 {
		return nil, errors.New("demo seed file is empty")
	}

	var doc DemoDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode demo seed file: %w", err)
	}
	if len(doc.Orders) == 0 {
		return nil, errors.New("demo seed file does not contain orders")
	}
	return &doc, nil
}

// DemoPlan is what the demo seed writes: the orders and the tables that must
// be marked occupied because they hold an active order.
type DemoPlan struct {
	Orders   []OrderDoc
	Occupied []uuid.UUID
}

// BuildDemo resolves the document against the tables and dishes found in the
// records database. Dishes are matched by name, case insensitive. A table may
// hold at most one active demo order.
func BuildDemo(doc *DemoDocument, tables []TableDoc, dishes []DishDoc, now time.Time) (*DemoPlan, error) {
	tableByNumber := make(map[int]TableDoc, len(tables))
	for _, t := range tables {
		tableByNumber[t.Number] = t
	}
	dishByName := make(map[string]DishDoc, len(dishes))
	for _, d := range dishes {
		dishByName[strings.ToLower(strings.TrimSpace(d.Name))] = d
	}

	plan := &DemoPlan{}
	active := make(map[int]bool)

	for i, o := range doc.Orders {
		table, ok := tableByNumber[o.Table]
		if !ok {
			return nil, fmt.Errorf("demo order %d: table %d not found", i+1, o.Table)
		}

		status, ok := orderstatus.Parse(o.Status)
		if !ok {
			return nil, fmt.Errorf("demo order %d: unknown status %q", i+1, o.Status)
		}

		if orderstatus.IsActive(status.Name) {
			if active[o.Table] {
				return nil, fmt.Errorf("demo order %d: table %d already has an active order", i+1, o.Table)
			}
			active[o.Table] = true
			plan.Occupied = append(plan.Occupied, table.ID)
		}

		if len(o.Items) == 0 {
			return nil, fmt.Errorf("demo order %d: no items", i+1)
		}

		items := make([]LineItemDoc, 0, len(o.Items))
		for _, item := range o.Items {
			dish, ok := dishByName[strings.ToLower(strings.TrimSpace(item.Dish))]
			if !ok {
				return nil, fmt.Errorf("demo order %d: dish %q not found", i+1, item.Dish)
			}
			quantity := item.Quantity
			if quantity <= 0 {
				quantity = 1
			}
			items = append(items, LineItemDoc{
				DishID:    dish.ID,
				Name:      dish.Name,
				UnitPrice: dish.Price,
				Quantity:  quantity,
			})
		}

		createdAt := now.Add(-o.Age)
		plan.Orders = append(plan.Orders, OrderDoc{
			ID:          uuid.New(),
			TableID:     table.ID,
			TableNumber: table.Number,
			Items:       items,
			Status:      status.Name,
			Note:        strings.TrimSpace(o.Note),
			CreatedAt:   createdAt,
			CreatedBy:   DemoActor,
			UpdatedAt:   createdAt,
			UpdatedBy:   DemoActor,
		})
	}

	return plan, nil
}
