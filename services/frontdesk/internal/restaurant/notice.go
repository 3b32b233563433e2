package restaurant

import "time"

const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

const (
	KindValidation = "validation"
	KindNetwork    = "network"
	KindConflict   = "conflict"
	KindDuplicate  = "duplicate"
	KindSuccess    = "success"
)

// DefaultNoticeTTL is how long a notice stays visible.
const DefaultNoticeTTL = 5 * time.Second

type Notice struct {
	Level     string        `json:"level"`
	Kind      string        `json:"kind"`
	Message   string        `json:"message"`
	CreatedAt time.Time     `json:"created_at"`
	TTL       time.Duration `json:"ttl"`
}

func (n Notice) ExpiresAt() time.Time {
	return n.CreatedAt.Add(n.TTL)
}

func (n Notice) Expired(now time.Time) bool {
	return !now.Before(n.ExpiresAt())
}

func NewNotice(level, kind, message string) Notice {
	return Notice{
		Level:     level,
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now(),
		TTL:       DefaultNoticeTTL,
	}
}

type Notifier interface {
	Notify(Notice)
}

type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) {
	f(n)
}

// DiscardNotices drops every notice.
var DiscardNotices Notifier = NotifierFunc(func(Notice) {})
