package user

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"admission/internal/admission/models"
	"admission/pkg/platform/sentinel"
	"admission/pkg/requestcontext"
)

// InMemory keeps admitted users in a map. It favors clarity over performance.
type InMemory struct {
	mu    sync.RWMutex
	users map[uuid.UUID]models.User
}

func NewInMemory() *InMemory {
	return &InMemory{users: make(map[uuid.UUID]models.User)}
}

// Save assigns an ID and creation time when missing and stores a copy of user.
func (s *InMemory) Save(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = requestcontext.Now(ctx)
	}
	if _, ok := s.users[user.ID]; ok {
		return fmt.Errorf("user %s: %w", user.ID, sentinel.ErrConflict)
	}
	s.users[user.ID] = *user
	return nil
}

