package question

import (
	"errors"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("question not found")

type Store interface {
	Put(q Question) error
	// Get returns the question only when it belongs to ownerID.
	Get(id, ownerID string) (Question, error)
	// ListByOwner returns the owner's questions, newest first.
	ListByOwner(ownerID string) ([]Question, error)
}

type memoryStore struct {
	mu        sync.RWMutex
	questions map[string]Question
}

func NewInMemoryStore() Store {
	return &memoryStore{questions: map[string]Question{}}
}

func (m *memoryStore) Put(q Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questions[q.ID] = q
	return nil
}

func (m *memoryStore) Get(id, ownerID string) (Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.questions[id]
	if !ok || q.OwnerID != ownerID {
		return Question{}, ErrNotFound
	}
	return q, nil
}

func (m *memoryStore) ListByOwner(ownerID string) ([]Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Question, 0)
	for _, q := range m.questions {
		if q.OwnerID == ownerID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}
