package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"admission/internal/admission/models"
	"admission/pkg/platform/sentinel"
	txcontext "admission/pkg/platform/tx"
)

const pgUniqueViolation = "23505"

// PostgresStore reads clients from the clients table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed client directory.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// Create inserts a client, joining the context transaction when one is set.
func (s *PostgresStore) Create(ctx context.Context, client *models.Client) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO clients (id, name, tier)
		VALUES ($1, $2, $3)
	`, int64(client.ID), client.Name, string(client.Tier))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return fmt.Errorf("client %s: %w", client.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id models.ClientID) (*models.Client, error) {
	var (
		c     models.Client
		rawID int64
		tier  string
	)
	err := s.db.QueryRowContext(ctx, `SELECT id, name, tier FROM clients WHERE id = $1`, int64(id)).
		Scan(&rawID, &c.Name, &tier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("client %s: %w", id, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	c.ID = models.ClientID(rawID)
	c.Tier = models.ClientTier(tier)
	return &c, nil
}
