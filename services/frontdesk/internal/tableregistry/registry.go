// Package tableregistry is the only place in the frontdesk that reads or
// writes table occupancy.
package tableregistry

import (
	"context"
	"errors"
	"fmt"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/appetiteclub/frontdesk/pkg/enums/occupancy"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/restaurant"
)

// Store is the record store contract for tables. SetOccupancy with a
// non-empty expected state must fail with restaurant.ErrConflict when the
// table is not in that state.
type Store interface {
	ListTables(ctx context.Context) ([]restaurant.Table, error)
	GetTable(ctx context.Context, id uuid.UUID) (*restaurant.Table, error)
	SetOccupancy(ctx context.Context, id uuid.UUID, occupancy, expected string) (*restaurant.Table, error)
}

type Registry struct {
	store  Store
	cache  *OccupancyCache
	logger apt.Logger
}

func NewRegistry(store Store, logger apt.Logger) *Registry {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Registry{
		store:  store,
		cache:  NewOccupancyCache(),
		logger: logger,
	}
}

// Start warms the occupancy cache. A failure is logged and the cache fills
// on the next ListTables.
func (r *Registry) Start(ctx context.Context) error {
	if _, err := r.ListTables(ctx); err != nil {
		r.logger.Error("cannot warm table cache", "error", err)
	}
	return nil
}

func (r *Registry) Stop(ctx context.Context) error {
	return nil
}

func (r *Registry) ListTables(ctx context.Context) ([]restaurant.Table, error) {
	tables, err := r.store.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	r.cache.Replace(tables)
	return r.cache.All(), nil
}

// Cached returns the last known tables without calling the store.
func (r *Registry) Cached() []restaurant.Table {
	return r.cache.All()
}

func (r *Registry) Lookup(id uuid.UUID) (restaurant.Table, bool) {
	return r.cache.Get(id)
}

// SetOccupied writes one occupancy transition. The boolean is mapped through
// the occupancy enum and nowhere else.
func (r *Registry) SetOccupied(ctx context.Context, id uuid.UUID, occupied bool) (*restaurant.Table, error) {
	if id == uuid.Nil {
		return nil, restaurant.ErrTableUnassigned
	}

	target := occupancy.FromOccupied(occupied)
	table, err := r.store.SetOccupancy(ctx, id, target.Name, "")
	if err != nil {
		return nil, err
	}

	r.cache.Set(*table)
	r.logger.Info("table occupancy set", "table_id", id.String(), "number", table.Number, "occupancy", table.Occupancy)
	return table, nil
}

// Claim moves a table from AVAILABLE to OCCUPIED. The write is fenced on
// AVAILABLE so a table with an open order cannot be claimed twice.
func (r *Registry) Claim(ctx context.Context, id uuid.UUID) (*restaurant.Table, error) {
	if id == uuid.Nil {
		return nil, restaurant.ErrTableUnassigned
	}

	table, err := r.store.SetOccupancy(ctx, id, occupancy.States.Occupied.Name, occupancy.States.Available.Name)
	if err != nil {
		if errors.Is(err, restaurant.ErrConflict) {
			if table != nil {
				r.cache.Set(*table)
			}
			return nil, fmt.Errorf("cannot claim table %s: %w", id.String(), restaurant.ErrTableOccupied)
		}
		return nil, err
	}

	r.cache.Set(*table)
	r.logger.Info("table claimed", "table_id", id.String(), "number", table.Number)
	return table, nil
}

// Release frees a table.
func (r *Registry) Release(ctx context.Context, id uuid.UUID) error {
	_, err := r.SetOccupied(ctx, id, false)
	return err
}

// Apply folds an occupancy change pushed by the record store into the cache.
func (r *Registry) Apply(id uuid.UUID, number int, state string) {
	if occupancy.ByName(state) == nil {
		r.logger.Debug("ignoring unknown occupancy", "table_id", id.String(), "occupancy", state)
		return
	}
	r.cache.ApplyOccupancy(id, number, occupancy.ByName(state).Name)
}
