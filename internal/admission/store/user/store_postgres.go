package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"admission/internal/admission/models"
	"admission/pkg/platform/sentinel"
	"admission/pkg/requestcontext"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	dateLayout            = "2006-01-02"
)

// PostgresStore persists admitted users in the users table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed user store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Save inserts the user. credit_limit is NULL when the user has no limit.
func (s *PostgresStore) Save(ctx context.Context, user *models.User) error {
	if user.Client == nil {
		return fmt.Errorf("user client is required")
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = requestcontext.Now(ctx)
	}

	creditLimit := sql.NullInt64{Int64: user.CreditLimit, Valid: user.HasCreditLimit}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, first_name, last_name, email, date_of_birth, client_id, has_credit_limit, credit_limit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		user.ID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.DateOfBirth.Format(dateLayout),
		int64(user.Client.ID),
		user.HasCreditLimit,
		creditLimit,
		user.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case pgUniqueViolation:
				return fmt.Errorf("user %s: %w", user.ID, sentinel.ErrConflict)
			case pgForeignKeyViolation:
				return fmt.Errorf("client %s: %w", user.Client.ID, sentinel.ErrNotFound)
			}
		}
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

