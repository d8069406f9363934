package cache

import (
	"context"
	"sync"
	"time"

	"vouch/internal/verification/models"
	"vouch/pkg/platform/sentinel"
)

// Memory is an in-memory cache guarded by a RWMutex. Entries expire lazily
// on read; it intentionally favors clarity over eviction sophistication.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

type memoryEntry struct {
	eval      models.Evaluation
	expiresAt time.Time
}

// NewMemory builds an in-memory cache with the given TTL.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, sessionID string) (models.Evaluation, error) {
	m.mu.RLock()
	entry, ok := m.entries[sessionID]
	m.mu.RUnlock()

	if !ok {
		return models.Evaluation{}, sentinel.ErrNotFound
	}
	if m.now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, sessionID)
		m.mu.Unlock()
		return models.Evaluation{}, sentinel.ErrNotFound
	}
	return entry.eval, nil
}

func (m *Memory) Set(_ context.Context, eval models.Evaluation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[eval.SessionID] = memoryEntry{
		eval:      eval,
		expiresAt: m.now().Add(m.ttl),
	}
	return nil
}
