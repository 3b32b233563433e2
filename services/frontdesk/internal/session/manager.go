package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/restaurant"
)

// TableClaimer flips table occupancy for a session.
type TableClaimer interface {
	Claim(ctx context.Context, id uuid.UUID) (*restaurant.Table, error)
	Release(ctx context.Context, id uuid.UUID) error
}

type Manager struct {
	store  StateStore
	tables TableClaimer
	ttl    time.Duration
	logger apt.Logger
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(store StateStore, tables TableClaimer, ttl time.Duration, logger apt.Logger) *Manager {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	if store == nil {
		store = NewMemoryStore(ttl)
	}
	return &Manager{
		store:    store,
		tables:   tables,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Begin starts a session with an empty cart and no table.
func (m *Manager) Begin(ctx context.Context) (*Session, error) {
	now := m.now()
	s := &Session{
		ID:        apt.GenerateNewID().String(),
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
		state:     newState(),
	}

	if err := m.persist(ctx, s); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Debug("session started", "session_id", s.ID)
	return s, nil
}

// Get returns a live session. A session unknown to this process is rebuilt
// from the state store, so a restart keeps carts and table bindings.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()

	if ok {
		if m.now().After(s.ExpiresAt) {
			m.forget(ctx, id)
			return nil, restaurant.ErrSessionNotFound
		}
		return s, nil
	}

	values, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cannot load session: %w", err)
	}
	if len(values) == 0 {
		return nil, restaurant.ErrSessionNotFound
	}

	now := m.now()
	s = &Session{
		ID:        id,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
		state:     m.decodeState(values),
	}

	m.mu.Lock()
	if existing, ok := m.sessions[id]; ok {
		s = existing
	} else {
		m.sessions[id] = s
	}
	m.mu.Unlock()

	m.logger.Debug("session rehydrated", "session_id", id)
	return s, nil
}

// Do runs fn with the session locked against a copy of its state. The copy
// replaces the session state only once the store accepted it, so a failed fn
// or a failed save leaves the session untouched.
func (m *Manager) Do(ctx context.Context, s *Session, fn func(st *State) error) error {
	return m.do(ctx, s, fn, false)
}

// Record is Do for changes that mirror something already done elsewhere, such
// as an order the record store accepted. The copy is kept in memory even when
// the save fails; that failure comes back as a *PersistError.
func (m *Manager) Record(ctx context.Context, s *Session, fn func(st *State) error) error {
	return m.do(ctx, s, fn, true)
}

func (m *Manager) do(ctx context.Context, s *Session, fn func(st *State) error, keep bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	if err := fn(&next); err != nil {
		return err
	}

	if err := m.save(ctx, s.ID, next); err != nil {
		if keep {
			s.state = next
		}
		return &PersistError{SessionID: s.ID, Err: err}
	}

	s.state = next
	s.ExpiresAt = m.now().Add(m.ttl)
	return nil
}

// BindTable claims the table and binds it to the session. Binding the table
// already bound is a no-op. A session that already submitted an order keeps
// its table. The previous table is released only after the new binding was
// saved; a claim whose binding could not be saved is given back.
func (m *Manager) BindTable(ctx context.Context, s *Session, tableID uuid.UUID) (*restaurant.Table, error) {
	var bound, claimed, previous *restaurant.Table

	err := m.Do(ctx, s, func(st *State) error {
		if st.Table != nil && st.Table.ID == tableID {
			bound = st.Table
			return nil
		}
		if st.Table != nil && len(st.Submitted) > 0 {
			return restaurant.NewValidationError("table_id", fmt.Sprintf("session already ordered for table %d", st.Table.Number))
		}

		table, err := m.tables.Claim(ctx, tableID)
		if err != nil {
			return err
		}

		claimed = table
		previous = st.Table
		st.Table = table
		bound = table
		return nil
	})
	if err != nil {
		if claimed != nil {
			if relErr := m.tables.Release(ctx, claimed.ID); relErr != nil {
				m.logger.Error("cannot give back claimed table", "session_id", s.ID, "table_id", claimed.ID.String(), "error", relErr)
			}
		}
		return nil, err
	}

	if previous != nil {
		if err := m.tables.Release(ctx, previous.ID); err != nil {
			m.logger.Error("cannot release previous table", "session_id", s.ID, "table_id", previous.ID.String(), "error", err)
		}
	}

	m.logger.Info("table bound", "session_id", s.ID, "table_id", bound.ID.String(), "number", bound.Number)
	return bound, nil
}

// UnbindTable drops the binding. The table is released only when no order
// was submitted from the session; otherwise billing releases it. Once the
// release went through the session stays unbound even if the save fails.
func (m *Manager) UnbindTable(ctx context.Context, s *Session) error {
	err := m.Record(ctx, s, func(st *State) error {
		if st.Table == nil {
			return nil
		}
		if len(st.Submitted) == 0 {
			if err := m.tables.Release(ctx, st.Table.ID); err != nil {
				return err
			}
		}
		st.Table = nil
		return nil
	})

	var persistErr *PersistError
	if errors.As(err, &persistErr) {
		m.logger.Error("table unbound but session not saved", "session_id", s.ID, "error", persistErr)
		return nil
	}
	return err
}

// End tears a session down, releasing its table if it never ordered.
func (m *Manager) End(ctx context.Context, id string) error {
	s, err := m.Get(ctx, id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.state.Table != nil && len(s.state.Submitted) == 0 {
		if err := m.tables.Release(ctx, s.state.Table.ID); err != nil {
			m.logger.Error("cannot release table on session end", "session_id", id, "error", err)
		}
	}
	s.state = newState()
	s.mu.Unlock()

	m.forget(ctx, id)
	m.logger.Debug("session ended", "session_id", id)
	return nil
}

func (m *Manager) forget(ctx context.Context, id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()

	if err := m.store.Delete(ctx, id); err != nil {
		m.logger.Error("cannot delete session state", "session_id", id, "error", err)
	}
}

func (m *Manager) persist(ctx context.Context, s *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return m.save(ctx, s.ID, s.state)
}

func (m *Manager) save(ctx context.Context, id string, st State) error {
	values, err := encodeState(st)
	if err != nil {
		return fmt.Errorf("cannot encode session: %w", err)
	}
	if err := m.store.Save(ctx, id, values); err != nil {
		return fmt.Errorf("cannot persist session: %w", err)
	}
	return nil
}

func encodeState(st State) (map[string][]byte, error) {
	cart, err := json.Marshal(st.Cart)
	if err != nil {
		return nil, err
	}
	table, err := json.Marshal(st.Table)
	if err != nil {
		return nil, err
	}
	submitted, err := json.Marshal(st.Submitted)
	if err != nil {
		return nil, err
	}

	return map[string][]byte{
		KeyCart:      cart,
		KeyTable:     table,
		KeySubmitted: submitted,
	}, nil
}

// decodeState rebuilds a session from stored values. Corrupted keys fall back
// to their empty value.
func (m *Manager) decodeState(values map[string][]byte) State {
	st := newState()

	if raw, ok := values[KeyCart]; ok {
		cart := NewCart()
		if err := json.Unmarshal(raw, cart); err != nil {
			m.logger.Info("recovering empty cart", "error", &restaurant.ParseError{Key: KeyCart, Err: err})
		} else {
			st.Cart = cart
		}
	}

	if raw, ok := values[KeyTable]; ok {
		var table *restaurant.Table
		if err := json.Unmarshal(raw, &table); err != nil {
			m.logger.Info("recovering unbound table", "error", &restaurant.ParseError{Key: KeyTable, Err: err})
		} else if table != nil && table.ID != uuid.Nil {
			st.Table = table
		}
	}

	if raw, ok := values[KeySubmitted]; ok {
		var submitted []uuid.UUID
		if err := json.Unmarshal(raw, &submitted); err != nil {
			m.logger.Info("recovering submitted orders", "error", &restaurant.ParseError{Key: KeySubmitted, Err: err})
		} else {
			st.Submitted = submitted
		}
	}

	return st
}
