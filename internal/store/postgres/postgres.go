// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/groblegark/trak/internal/model"
	"github.com/groblegark/trak/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) CreateIssue(ctx context.Context, issue *model.RawIssue) error {
	return queryCreateIssue(ctx, s.db, issue)
}

func (s *PostgresStore) GetIssue(ctx context.Context, id int) (*model.RawIssue, error) {
	return queryGetIssue(ctx, s.db, id)
}

func (s *PostgresStore) ListIssues(ctx context.Context, filter store.IssueFilter) ([]*model.RawIssue, error) {
	return queryListIssues(ctx, s.db, filter)
}

func (s *PostgresStore) UpdateIssue(ctx context.Context, issue *model.RawIssue) error {
	return queryUpdateIssue(ctx, s.db, issue)
}

func (s *PostgresStore) DeleteIssue(ctx context.Context, id int) error {
	return queryDeleteIssue(ctx, s.db, id)
}

func (s *PostgresStore) CreateProject(ctx context.Context, project *model.RawProject) error {
	return queryCreateProject(ctx, s.db, project)
}

func (s *PostgresStore) GetProject(ctx context.Context, id int) (*model.RawProject, error) {
	return queryGetProject(ctx, s.db, id)
}

func (s *PostgresStore) ListProjects(ctx context.Context) ([]*model.RawProject, error) {
	return queryListProjects(ctx, s.db)
}

func (s *PostgresStore) ListUsers(ctx context.Context) ([]*model.RawUser, error) {
	return queryListUsers(ctx, s.db)
}
