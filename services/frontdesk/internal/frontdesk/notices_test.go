package frontdesk

import (
	"fmt"
	"testing"
	"time"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/restaurant"
)

func TestNoticeBoardCapacity(t *testing.T) {
	board := NewNoticeBoard(3)
	for i := 0; i < 5; i++ {
		board.Notify(restaurant.NewNotice(restaurant.LevelInfo, restaurant.KindSuccess, fmt.Sprintf("n%d", i)))
	}

	all := board.All()
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].Message != "n4" || all[2].Message != "n2" {
		t.Errorf("messages = %s..%s, want n4..n2", all[0].Message, all[2].Message)
	}
}

func TestNoticeBoardActive(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	board := NewNoticeBoard(0)
	board.now = func() time.Time { return now }

	board.Notify(restaurant.Notice{Level: restaurant.LevelError, Kind: restaurant.KindNetwork, Message: "old", CreatedAt: now.Add(-10 * time.Second)})
	board.Notify(restaurant.Notice{Level: restaurant.LevelInfo, Kind: restaurant.KindSuccess, Message: "fresh"})

	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{name: "now", at: now, want: 1},
		{name: "justBeforeExpiry", at: now.Add(restaurant.DefaultNoticeTTL - time.Millisecond), want: 1},
		{name: "afterExpiry", at: now.Add(restaurant.DefaultNoticeTTL), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(board.Active(tt.at)); got != tt.want {
				t.Errorf("Active() len = %d, want %d", got, tt.want)
			}
		})
	}
}
