package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"nuggetube-backend/internal/model"
)

type MemoryCounterStore struct {
	users map[string]*model.UserRecord
	mu    sync.RWMutex
}

func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{
		users: make(map[string]*model.UserRecord),
	}
}

func (m *MemoryCounterStore) GetUser(_ context.Context, userID string) (*model.UserRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, exists := m.users[userID]
	if !exists {
		return nil, ErrUserNotFound
	}

	c := *record
	return &c, nil
}

func (m *MemoryCounterStore) Increment(_ context.Context, profile model.UserProfile, chickens, chicks int) (*model.UserRecord, error) {
	if profile.UserID == "" {
		return nil, ErrInvalidData
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	record, exists := m.users[profile.UserID]
	if !exists {
		record = &model.UserRecord{UserID: profile.UserID}
		m.users[profile.UserID] = record
	}

	record.DisplayName = profile.DisplayName
	record.PhotoURL = profile.PhotoURL
	record.ChickenCount += chickens
	record.ChickCount += chicks
	record.UpdatedAt = time.Now()

	c := *record
	return &c, nil
}

// TopUsers orders by chicken count, then by user id so equal counts list stably.
func (m *MemoryCounterStore) TopUsers(_ context.Context, limit int) ([]model.UserRecord, error) {
	m.mu.RLock()
	records := make([]model.UserRecord, 0, len(m.users))
	for _, record := range m.users {
		records = append(records, *record)
	}
	m.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		if records[i].ChickenCount != records[j].ChickenCount {
			return records[i].ChickenCount > records[j].ChickenCount
		}
		return records[i].UserID < records[j].UserID
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (m *MemoryCounterStore) CountUsers(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.users), nil
}

func (m *MemoryCounterStore) Close() error {
	return nil
}
