package records

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/appetiteclub/apt"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type testFixture struct {
	tables    *MockTableRepo
	menu      *MockMenuRepo
	orders    *MockOrderRepo
	invoices  *MockInvoiceRepo
	publisher *MockPublisher
	handler   *Handler
}

func newTestFixture() *testFixture {
	f := &testFixture{
		tables:    NewMockTableRepo(),
		menu:      NewMockMenuRepo(),
		orders:    NewMockOrderRepo(),
		invoices:  NewMockInvoiceRepo(),
		publisher: NewMockPublisher(),
	}

	deps := HandlerDeps{
		Repos: Repos{
			TableRepo:   f.tables,
			MenuRepo:    f.menu,
			OrderRepo:   f.orders,
			InvoiceRepo: f.invoices,
		},
		Publisher: f.publisher,
	}
	f.handler = NewHandler(deps, apt.NewConfig(), apt.NewNoopLogger())
	return f
}

func (f *testFixture) addTable(t *testing.T, number int) *Table {
	t.Helper()
	table := NewTable()
	table.Number = number
	table.Capacity = 4
	table.BeforeCreate()
	if err := f.tables.Create(context.Background(), table); err != nil {
		t.Fatalf("cannot create table: %v", err)
	}
	return table
}

func (f *testFixture) addDish(t *testing.T, name string, price float64, available bool) *Dish {
	t.Helper()
	dish := NewDish(name, uuid.New(), price)
	dish.Available = available
	if err := f.menu.CreateDish(context.Background(), dish); err != nil {
		t.Fatalf("cannot create dish: %v", err)
	}
	return dish
}

func (f *testFixture) addOrder(t *testing.T, table *Table, status string, items ...LineItem) *Order {
	t.Helper()
	order := NewOrder()
	order.TableID = table.ID
	order.TableNumber = table.Number
	order.Status = status
	order.Items = items
	order.BeforeCreate()
	if err := f.orders.Create(context.Background(), order); err != nil {
		t.Fatalf("cannot create order: %v", err)
	}
	return order
}

func withIDParam(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("cannot marshal body: %v", err)
	}
	return bytes.NewReader(body)
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("cannot decode response: %v", err)
	}
	data, ok := resp["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no data object: %v", resp)
	}
	return data
}

func TestRegisterRoutes(t *testing.T) {
	f := newTestFixture()
	table := f.addTable(t, 3)

	r := chi.NewRouter()
	f.handler.RegisterRoutes(r)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{name: "listTables", method: http.MethodGet, path: "/tables", wantStatus: http.StatusOK},
		{name: "getTable", method: http.MethodGet, path: "/tables/" + table.ID.String(), wantStatus: http.StatusOK},
		{name: "getMissingTable", method: http.MethodGet, path: "/tables/" + uuid.NewString(), wantStatus: http.StatusNotFound},
		{name: "listCategories", method: http.MethodGet, path: "/categories", wantStatus: http.StatusOK},
		{name: "listDishes", method: http.MethodGet, path: "/dishes?available=true", wantStatus: http.StatusOK},
		{name: "listActiveOrders", method: http.MethodGet, path: "/orders?status=active", wantStatus: http.StatusOK},
		{name: "listOrdersBadFilter", method: http.MethodGet, path: "/orders?status=cooking", wantStatus: http.StatusBadRequest},
		{name: "listInvoices", method: http.MethodGet, path: "/invoices", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestParseIDParam(t *testing.T) {
	f := newTestFixture()

	tests := []struct {
		name   string
		id     string
		wantOK bool
	}{
		{name: "valid", id: uuid.NewString(), wantOK: true},
		{name: "empty", id: "", wantOK: false},
		{name: "malformed", id: "table-7", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withIDParam(httptest.NewRequest(http.MethodGet, "/tables/x", nil), tt.id)
			w := httptest.NewRecorder()

			_, ok := f.handler.parseIDParam(w, req, apt.NewNoopLogger())
			if ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok && w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}
