package frontdesk

import (
	"sync"
	"time"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/restaurant"
)

// DefaultNoticeCapacity is how many notices the board remembers.
const DefaultNoticeCapacity = 50

// NoticeBoard keeps the latest notices raised by the core, oldest dropped
// first.
type NoticeBoard struct {
	mu       sync.Mutex
	notices  []restaurant.Notice
	capacity int
	now      func() time.Time
}

func NewNoticeBoard(capacity int) *NoticeBoard {
	if capacity <= 0 {
		capacity = DefaultNoticeCapacity
	}
	return &NoticeBoard{
		notices:  make([]restaurant.Notice, 0, capacity),
		capacity: capacity,
		now:      time.Now,
	}
}

func (b *NoticeBoard) Notify(n restaurant.Notice) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = b.now()
	}
	if n.TTL <= 0 {
		n.TTL = restaurant.DefaultNoticeTTL
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.notices) == b.capacity {
		copy(b.notices, b.notices[1:])
		b.notices = b.notices[:len(b.notices)-1]
	}
	b.notices = append(b.notices, n)
}

// Active returns the notices still visible at now, newest first.
func (b *NoticeBoard) Active(now time.Time) []restaurant.Notice {
	b.mu.Lock()
	defer b.mu.Unlock()

	active := make([]restaurant.Notice, 0, len(b.notices))
	for i := len(b.notices) - 1; i >= 0; i-- {
		if !b.notices[i].Expired(now) {
			active = append(active, b.notices[i])
		}
	}
	return active
}

// All returns every remembered notice, newest first.
func (b *NoticeBoard) All() []restaurant.Notice {
	b.mu.Lock()
	defer b.mu.Unlock()

	all := make([]restaurant.Notice, 0, len(b.notices))
	for i := len(b.notices) - 1; i >= 0; i-- {
		all = append(all, b.notices[i])
	}
	return all
}
