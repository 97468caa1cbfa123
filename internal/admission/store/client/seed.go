package client

import (
	"context"
	"fmt"

	"admission/internal/admission/models"
)

// DefaultClients returns one client per known tier. It backs the in-memory
// directory and the migrate seed command.
func DefaultClients() []models.Client {
	return []models.Client{
		{ID: 1, Name: "Regular Client", Tier: models.TierRegular},
		{ID: 2, Name: "Important Client", Tier: models.TierImportant},
		{ID: 3, Name: "Very Important Client", Tier: models.TierVeryImportant},
	}
}

type creator interface {
	Create(ctx context.Context, client *models.Client) error
}

// Seed creates every client in order and stops at the first failure.
func Seed(ctx context.Context, store creator, clients []models.Client) error {
	for i := range clients {
		if err := store.Create(ctx, &clients[i]); err != nil {
			return fmt.Errorf("seed client %s: %w", clients[i].ID, err)
		}
	}
	return nil
}
