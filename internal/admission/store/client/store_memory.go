package client

import (
	"context"
	"fmt"
	"sync"

	"admission/internal/admission/models"
	"admission/pkg/platform/sentinel"
)

// InMemory is a map-backed client directory for local runs and tests.
type InMemory struct {
	mu      sync.RWMutex
	clients map[models.ClientID]models.Client
}

// NewInMemory builds a directory holding the given clients.
func NewInMemory(seed ...models.Client) *InMemory {
	s := &InMemory{clients: make(map[models.ClientID]models.Client, len(seed))}
	for _, c := range seed {
		s.clients[c.ID] = c
	}
	return s
}

// Create adds a client. Returns sentinel.ErrConflict if the ID is taken.
func (s *InMemory) Create(_ context.Context, client *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[client.ID]; ok {
		return fmt.Errorf("client %s: %w", client.ID, sentinel.ErrConflict)
	}
	s.clients[client.ID] = *client
	return nil
}

// FindByID returns a copy of the client so callers cannot mutate the directory.
func (s *InMemory) FindByID(_ context.Context, id models.ClientID) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[id]
	if !ok {
		return nil, fmt.Errorf("client %s: %w", id, sentinel.ErrNotFound)
	}
	return &c, nil
}
