package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/cloudwego/eino/schema"
)

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

const maxSweepInterval = time.Minute

// MemoryStore keeps transcripts in process. Expired entries are dropped on read and swept
// from the whole map during Save, at most once per sweep interval.
type MemoryStore struct {
	mu        sync.RWMutex
	entries   map[string]memoryEntry
	ttl       time.Duration
	now       func() time.Time
	nextSweep time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Load(_ context.Context, token string) ([]*schema.Message, error) {
	key, err := normalizeToken(token)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrConversationNotFound
	}
	if !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, ErrConversationNotFound
	}
	return decodeTranscript(entry.payload)
}

func (s *MemoryStore) Save(_ context.Context, token string, messages []*schema.Message) error {
	key, err := normalizeToken(token)
	if err != nil {
		return err
	}
	payload, err := encodeTranscript(messages)
	if err != nil {
		return err
	}

	now := s.now()
	entry := memoryEntry{payload: payload}
	if s.ttl > 0 {
		entry.expiresAt = now.Add(s.ttl)
	}

	s.mu.Lock()
	s.sweepLocked(now)
	s.entries[key] = entry
	s.mu.Unlock()
	return nil
}

// Len reports the number of retained entries, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore) sweepLocked(now time.Time) {
	if s.ttl <= 0 || now.Before(s.nextSweep) {
		return
	}
	for key, entry := range s.entries {
		if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
	s.nextSweep = now.Add(min(s.ttl, maxSweepInterval))
}

func (s *MemoryStore) Close() error {
	return nil
}
