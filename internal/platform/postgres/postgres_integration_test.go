//go:build integration

package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"admission/internal/platform/postgres"
	"admission/pkg/testutil/containers"
)

type MigrateSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	ctx      context.Context
}

func TestMigrateSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(MigrateSuite))
}

func (s *MigrateSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.ctx = context.Background()
}

func (s *MigrateSuite) TearDownSuite() {
	s.postgres.Terminate(s.ctx)
}

func (s *MigrateSuite) TestMigrateUpReleasesItsConnection() {
	db := s.postgres.DB
	s.Equal(0, db.Stats().InUse, "connection still held after the initial migration")

	s.Require().NoError(postgres.MigrateUp(s.ctx, db))
	s.Equal(0, db.Stats().InUse)

	s.Require().NoError(db.PingContext(s.ctx))
	var tables int
	err := db.QueryRowContext(s.ctx, `
		SELECT COUNT(*) FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name IN ('clients', 'users')
	`).Scan(&tables)
	s.Require().NoError(err)
	s.Equal(2, tables)
}

func (s *MigrateSuite) TestMigrateUpKeepsPoolUsableWithOneConnection() {
	db := s.postgres.DB
	db.SetMaxOpenConns(1)
	defer db.SetMaxOpenConns(0)

	s.Require().NoError(postgres.MigrateUp(s.ctx, db))
	s.Require().NoError(db.PingContext(s.ctx))
}
