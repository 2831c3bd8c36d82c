package chat

import (
	"context"
	"sync"
)

// MemoryStorage keeps chat states in process memory. The mutex makes it
// safe even if the hosting environment dispatches updates concurrently.
type MemoryStorage struct {
	mu     sync.Mutex
	states map[string]*ChatState
}

// NewMemoryStorage creates an empty in-memory state store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{states: make(map[string]*ChatState)}
}

func stateKey(platform, userID string) string {
	return platform + ":" + userID
}

func (s *MemoryStorage) Save(ctx context.Context, state *ChatState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[stateKey(state.Platform, state.UserID)] = state
	return nil
}

func (s *MemoryStorage) Load(ctx context.Context, platform, userID string) (*ChatState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[stateKey(platform, userID)]
	if !ok {
		return nil, nil
	}
	return state, nil
}

func (s *MemoryStorage) Delete(ctx context.Context, platform, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, stateKey(platform, userID))
	return nil
}

// StateRepository defines the database operations for chat state.
type StateRepository interface {
	SaveChatState(ctx context.Context, state *ChatState) error
	LoadChatState(ctx context.Context, platform, userID string) (*ChatState, error)
	DeleteChatState(ctx context.Context, platform, userID string) error
}

// MongoStorage adapts the database repository to the Storage interface,
// giving state that survives across serverless invocations.
type MongoStorage struct {
	repo StateRepository
}

// NewMongoStorage creates a MongoDB-backed chat state storage.
func NewMongoStorage(repo StateRepository) *MongoStorage {
	return &MongoStorage{repo: repo}
}

func (s *MongoStorage) Save(ctx context.Context, state *ChatState) error {
	return s.repo.SaveChatState(ctx, state)
}

func (s *MongoStorage) Load(ctx context.Context, platform, userID string) (*ChatState, error) {
	return s.repo.LoadChatState(ctx, platform, userID)
}

func (s *MongoStorage) Delete(ctx context.Context, platform, userID string) error {
	return s.repo.DeleteChatState(ctx, platform, userID)
}
