package ports

//go:generate mockgen -source=ports.go -destination=../mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"admission/internal/admission/models"
)

// ClientDirectory resolves clients by ID. Implementations return an error
// matching sentinel.ErrNotFound when the client does not exist; any other
// error is treated as an infrastructure failure.
type ClientDirectory interface {
	FindByID(ctx context.Context, id models.ClientID) (*models.Client, error)
}

// CreditLimitOracle computes a base credit limit for a surname and birth date.
// The admission engine treats it as a pure function of its inputs.
type CreditLimitOracle interface {
	CreditLimit(ctx context.Context, lastName string, dateOfBirth time.Time) (int64, error)
}

// UserStore persists admitted users. Save assigns the user's ID and CreatedAt.
type UserStore interface {
	Save(ctx context.Context, user *models.User) error
}
