// Package session owns the per guest context: the cart, the bound table and
// the orders already submitted. A Session is created by Manager.Begin, passed
// explicitly to whatever needs it, and torn down by Manager.End.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/appetiteclub/frontdesk/pkg/money"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/restaurant"
)

type Session struct {
	ID        string
	CreatedAt time.Time
	ExpiresAt time.Time

	mu    sync.Mutex
	state State
}

// State is the mutable part of a session. It is only handed out under the
// session lock, through Manager.Do.
type State struct {
	Cart      *Cart
	Table     *restaurant.Table
	Submitted []uuid.UUID
}

func newState() State {
	return State{Cart: NewCart()}
}

func (st State) clone() State {
	c := State{Cart: NewCart()}
	if st.Cart != nil {
		c.Cart = st.Cart.Clone()
	}
	if st.Table != nil {
		table := *st.Table
		c.Table = &table
	}
	if len(st.Submitted) > 0 {
		c.Submitted = append([]uuid.UUID(nil), st.Submitted...)
	}
	return c
}

// PersistError reports a session change the state store did not accept.
type PersistError struct {
	SessionID string
	Err       error
}

func (e *PersistError) Error() string {
	return e.Err.Error()
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

func (st *State) HasSubmitted(id uuid.UUID) bool {
	for _, s := range st.Submitted {
		if s == id {
			return true
		}
	}
	return false
}

func (st *State) RecordSubmission(id uuid.UUID) {
	if !st.HasSubmitted(id) {
		st.Submitted = append(st.Submitted, id)
	}
}

// View is a read only copy of a session for rendering.
type View struct {
	ID         string            `json:"id"`
	Table      *restaurant.Table `json:"table,omitempty"`
	Lines      []Line            `json:"lines"`
	TotalItems int               `json:"total_items"`
	Subtotal   string            `json:"subtotal"`
	Submitted  []uuid.UUID       `json:"submitted"`
	ExpiresAt  time.Time         `json:"expires_at"`
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		ID:         s.ID,
		Lines:      s.state.Cart.Lines(),
		TotalItems: s.state.Cart.TotalItems(),
		Subtotal:   money.Format(s.state.Cart.Subtotal()),
		Submitted:  append([]uuid.UUID{}, s.state.Submitted...),
		ExpiresAt:  s.ExpiresAt,
	}
	if s.state.Table != nil {
		table := *s.state.Table
		v.Table = &table
	}
	return v
}
