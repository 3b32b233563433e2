package seeding

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/uuid"
)

const testDemo = `
orders:
  - table: 1
    status: received
    age: 5m
    items:
      - { dish: Edamame, quantity: 2 }
  - table: 2
    status: CLOSED
    age: 1h
    note: "  window seat  "
    items:
      - { dish: edamame }
`

func demoFixtures() ([]TableDoc, []DishDoc) {
	tables := []TableDoc{
		{ID: uuid.New(), Number: 1, Occupancy: "AVAILABLE"},
		{ID: uuid.New(), Number: 2, Occupancy: "AVAILABLE"},
	}
	dishes := []DishDoc{
		{ID: uuid.New(), Name: "Edamame", Price: 3.5, Available: true},
	}
	return tables, dishes
}

func TestLoadDemo(t *testing.T) {
	tests := []struct {
		name    string
		fs      fstest.MapFS
		wantErr bool
	}{
		{name: "valid", fs: fstest.MapFS{"demo.yaml": {Data: []byte(testDemo)}}},
		{name: "missing", fs: fstest.MapFS{}, wantErr: true},
		{name: "empty", fs: fstest.MapFS{"demo.yaml": {Data: []byte{}}}, wantErr: true},
		{name: "noOrders", fs: fstest.MapFS{"demo.yaml": {Data: []byte("orders: []\n")}}, wantErr: true},
		{name: "badAge", fs: fstest.MapFS{"demo.yaml": {Data: []byte("orders:\n  - table: 1\n    age: soon\n")}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDemo(tt.fs)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadDemo() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultDemo(t *testing.T) {
	doc, err := DefaultDemo()
	if err != nil {
		t.Fatalf("DefaultDemo() error = %v", err)
	}
	if len(doc.Orders) == 0 {
		t.Fatal("expected embedded demo orders")
	}
}

func TestBuildDemo(t *testing.T) {
	doc, err := ParseDemo([]byte(testDemo))
	if err != nil {
		t.Fatalf("ParseDemo() error = %v", err)
	}
	tables, dishes := demoFixtures()
	now := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)

	plan, err := BuildDemo(doc, tables, dishes, now)
	if err != nil {
		t.Fatalf("BuildDemo() error = %v", err)
	}

	if len(plan.Orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(plan.Orders))
	}

	first := plan.Orders[0]
	if first.Status != "RECEIVED" {
		t.Errorf("expected status RECEIVED, got %s", first.Status)
	}
	if first.TableID != tables[0].ID || first.TableNumber != 1 {
		t.Errorf("unexpected table %v/%d", first.TableID, first.TableNumber)
	}
	if !first.CreatedAt.Equal(now.Add(-5 * time.Minute)) {
		t.Errorf("unexpected created_at %v", first.CreatedAt)
	}
	if first.CreatedBy != DemoActor {
		t.Errorf("expected created_by %s, got %s", DemoActor, first.CreatedBy)
	}
	if first.Items[0].Quantity != 2 || first.Items[0].UnitPrice != 3.5 {
		t.Errorf("unexpected item %+v", first.Items[0])
	}

	second := plan.Orders[1]
	if second.Items[0].Quantity != 1 {
		t.Errorf("expected default quantity 1, got %d", second.Items[0].Quantity)
	}
	if second.Note != "window seat" {
		t.Errorf("expected trimmed note, got %q", second.Note)
	}

	if len(plan.Occupied) != 1 || plan.Occupied[0] != tables[0].ID {
		t.Errorf("expected only table 1 occupied, got %v", plan.Occupied)
	}
}

func TestBuildDemoErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "unknownTable", yaml: "orders:\n  - { table: 9, status: RECEIVED, items: [{ dish: Edamame }] }\n"},
		{name: "unknownStatus", yaml: "orders:\n  - { table: 1, status: EATEN, items: [{ dish: Edamame }] }\n"},
		{name: "unknownDish", yaml: "orders:\n  - { table: 1, status: RECEIVED, items: [{ dish: Pizza }] }\n"},
		{name: "noItems", yaml: "orders:\n  - { table: 1, status: RECEIVED }\n"},
		{name: "twoActiveOnOneTable", yaml: "orders:\n  - { table: 1, status: RECEIVED, items: [{ dish: Edamame }] }\n  - { table: 1, status: READY, items: [{ dish: Edamame }] }\n"},
	}

	tables, dishes := demoFixtures()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseDemo([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("ParseDemo() error = %v", err)
			}
			if _, err := BuildDemo(doc, tables, dishes, time.Now()); err == nil {
				t.Error("expected error")
			}
		})
	}
}
