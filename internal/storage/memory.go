package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/xaenox/weather-bot/internal/models"
)

type MemoryStorage struct {
	mu            sync.RWMutex
	clock         clockwork.Clock
	conversations map[string]models.ConversationRecord
}

var _ ConversationStore = (*MemoryStorage)(nil)

func NewMemoryStorage(clock clockwork.Clock) *MemoryStorage {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryStorage{
		clock:         clock,
		conversations: make(map[string]models.ConversationRecord),
	}
}

func (s *MemoryStorage) MarkJoined(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.conversations[token]; exists {
		return false, nil
	}
	s.conversations[token] = models.ConversationRecord{
		Token:    token,
		JoinedAt: s.clock.Now(),
	}
	return true, nil
}

func (s *MemoryStorage) Forget(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.conversations, token)
	return nil
}

// List returns the joined conversations, oldest first.
func (s *MemoryStorage) List(_ context.Context) ([]models.ConversationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]models.ConversationRecord, 0, len(s.conversations))
	for _, r := range s.conversations {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].JoinedAt.Equal(records[j].JoinedAt) {
			return records[i].Token < records[j].Token
		}
		return records[i].JoinedAt.Before(records[j].JoinedAt)
	})
	return records, nil
}

func (s *MemoryStorage) CheckReadiness(_ context.Context) error {
	return nil
}

func (s *MemoryStorage) Close() error {
	return nil
}
