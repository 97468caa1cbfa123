//go:build integration

package user_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"admission/internal/admission/models"
	"admission/internal/admission/store/client"
	"admission/internal/admission/store/user"
	"admission/pkg/platform/sentinel"
	"admission/pkg/requestcontext"
	"admission/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *user.PostgresStore
	clients  *client.PostgresStore
	ctx      context.Context
	now      time.Time
	client   *models.Client
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = user.NewPostgres(s.postgres.DB)
	s.clients = client.NewPostgres(s.postgres.DB)
	s.now = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func (s *PostgresStoreSuite) TearDownSuite() {
	s.postgres.Terminate(context.Background())
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(s.ctx, "users", "clients"))
	s.client = &models.Client{ID: 3, Name: "Acme", Tier: models.TierImportant}
	s.Require().NoError(s.clients.Create(s.ctx, s.client))
}

func (s *PostgresStoreSuite) newUser() *models.User {
	return &models.User{
		FirstName:   "Ann",
		LastName:    "Boleyn",
		Email:       "ann.boleyn@example.com",
		DateOfBirth: time.Date(2001, time.May, 19, 0, 0, 0, 0, time.UTC),
		Client:      s.client,
	}
}

type storedUser struct {
	firstName      string
	email          string
	dateOfBirth    time.Time
	clientID       int64
	hasCreditLimit bool
	creditLimit    sql.NullInt64
	createdAt      time.Time
}

func (s *PostgresStoreSuite) loadUser(id uuid.UUID) storedUser {
	var u storedUser
	err := s.postgres.DB.QueryRowContext(s.ctx, `
		SELECT first_name, email, date_of_birth, client_id, has_credit_limit, credit_limit, created_at
		FROM users WHERE id = $1
	`, id).Scan(&u.firstName, &u.email, &u.dateOfBirth, &u.clientID, &u.hasCreditLimit, &u.creditLimit, &u.createdAt)
	s.Require().NoError(err)
	return u
}

func (s *PostgresStoreSuite) TestSaveWithCreditLimit() {
	u := s.newUser()
	u.ApplyCreditLimit(600)
	s.Require().NoError(s.store.Save(s.ctx, u))
	s.NotEqual(uuid.Nil, u.ID)

	found := s.loadUser(u.ID)
	s.Equal(u.FirstName, found.firstName)
	s.Equal(u.Email, found.email)
	s.True(found.hasCreditLimit)
	s.Require().True(found.creditLimit.Valid)
	s.Equal(int64(600), found.creditLimit.Int64)
	s.Equal("2001-05-19", found.dateOfBirth.Format("2006-01-02"))
	s.True(s.now.Equal(found.createdAt))
	s.Equal(int64(s.client.ID), found.clientID)
}

func (s *PostgresStoreSuite) TestSaveWithoutCreditLimit() {
	u := s.newUser()
	u.ClearCreditLimit()
	s.Require().NoError(s.store.Save(s.ctx, u))

	found := s.loadUser(u.ID)
	s.False(found.hasCreditLimit)
	s.False(found.creditLimit.Valid)
}

func (s *PostgresStoreSuite) TestSaveErrors() {
	s.Run("duplicate id conflicts", func() {
		u := s.newUser()
		s.Require().NoError(s.store.Save(s.ctx, u))

		dup := s.newUser()
		dup.ID = u.ID
		s.Require().ErrorIs(s.store.Save(s.ctx, dup), sentinel.ErrConflict)
	})

	s.Run("unknown client is not found", func() {
		u := s.newUser()
		u.Client = &models.Client{ID: 999, Tier: models.TierRegular}
		s.Require().ErrorIs(s.store.Save(s.ctx, u), sentinel.ErrNotFound)
	})

	s.Run("missing client is rejected", func() {
		u := s.newUser()
		u.Client = nil
		s.Require().Error(s.store.Save(s.ctx, u))
	})
}
