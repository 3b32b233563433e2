package kitchen

import (
	"github.com/appetiteclub/frontdesk/pkg/enums/orderstatus"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/restaurant"
)

// Board is the kitchen display: one column per kitchen state, oldest first.
// Delivered orders are open but no longer the kitchen's concern.
type Board struct {
	Received      []restaurant.Order `json:"received"`
	InPreparation []restaurant.Order `json:"in_preparation"`
	Ready         []restaurant.Order `json:"ready"`
}

func (b Board) Len() int {
	return len(b.Received) + len(b.InPreparation) + len(b.Ready)
}

func (e *Engine) Board() Board {
	b := Board{
		Received:      []restaurant.Order{},
		InPreparation: []restaurant.Order{},
		Ready:         []restaurant.Order{},
	}

	for _, o := range e.Snapshot() {
		switch o.Status {
		case orderstatus.Statuses.Received.Name:
			b.Received = append(b.Received, o)
		case orderstatus.Statuses.InPreparation.Name:
			b.InPreparation = append(b.InPreparation, o)
		case orderstatus.Statuses.Ready.Name:
			b.Ready = append(b.Ready, o)
		}
	}
	return b
}
