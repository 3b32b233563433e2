package session

import (
	"context"
	"sync"
	"time"
)

// Fixed keys under which a session persists its state.
const (
	KeyCart      = "cart"
	KeyTable     = "table"
	KeySubmitted = "submitted"
)

// StateStore is a session scoped key/value store. Load returns an empty map,
// not an error, for a session it does not know.
type StateStore interface {
	Load(ctx context.Context, sessionID string) (map[string][]byte, error)
	Save(ctx context.Context, sessionID string, values map[string][]byte) error
	Delete(ctx context.Context, sessionID string) error
}

type memoryEntry struct {
	values    map[string][]byte
	expiresAt time.Time
}

// MemoryStore keeps session state in process. Entries expire ttl after their
// last save.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
}

func (s *MemoryStore) Load(ctx context.Context, sessionID string) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[sessionID]
	if !ok || s.now().After(entry.expiresAt) {
		return map[string][]byte{}, nil
	}

	values := make(map[string][]byte, len(entry.values))
	for k, v := range entry.values {
		values[k] = append([]byte(nil), v...)
	}
	return values, nil
}

func (s *MemoryStore) Save(ctx context.Context, sessionID string, values map[string][]byte) error {
	stored := make(map[string][]byte, len(values))
	for k, v := range values {
		stored[k] = append([]byte(nil), v...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = memoryEntry{values: stored, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}

// Start runs the expiry sweep until Stop.
func (s *MemoryStore) Start(ctx context.Context) error {
	go s.cleanup()
	return nil
}

func (s *MemoryStore) Stop(ctx context.Context) error {
	s.once.Do(func() { close(s.stop) })
	return nil
}

func (s *MemoryStore) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *MemoryStore) sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}
