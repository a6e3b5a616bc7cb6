// Package sqlstore implements the repositories on database/sql for
// PostgreSQL (pgx or lib/pq) and SQLite (modernc).
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/jascaniojs/parking-business-api/internal/config"
	"github.com/jascaniojs/parking-business-api/internal/repository"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type conn struct {
	q  querier
	d  dialect
	tx bool
}

func (c conn) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return c.q.ExecContext(ctx, c.d.rebind(query), args...)
}

func (c conn) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.q.QueryContext(ctx, c.d.rebind(query), args...)
}

func (c conn) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return c.q.QueryRowContext(ctx, c.d.rebind(query), args...)
}

type repos struct {
	buildings *buildingRepository
	spaces    *parkingSpaceRepository
	sessions  *parkingSessionRepository
	prices    *priceRepository
}

func newRepos(c conn) repos {
	return repos{
		buildings: &buildingRepository{c: c},
		spaces:    &parkingSpaceRepository{c: c},
		sessions:  &parkingSessionRepository{c: c},
		prices:    &priceRepository{c: c},
	}
}

func (r repos) Buildings() repository.BuildingRepository { return r.buildings }
func (r repos) Spaces() repository.ParkingSpaceRepository { return r.spaces }
func (r repos) Sessions() repository.ParkingSessionRepository { return r.sessions }
func (r repos) Prices() repository.PriceRepository { return r.prices }

type Store struct {
	repos
	db          *sql.DB
	dialect     dialect
	lockTimeout time.Duration
}

// NewDB opens and pings the database selected by cfg.DBDriver.
func NewDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if cfg.DBDriver == config.DriverSQLite {
		db.SetMaxOpenConns(1)
	} else if cfg.DBMaxConns > 0 {
		db.SetMaxOpenConns(cfg.DBMaxConns)
		db.SetMaxIdleConns(cfg.DBMaxConns / 2)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Open connects to the configured database and applies pending migrations.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	db, err := NewDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s := New(db, cfg.DBDriver, cfg.DBLockTimeout)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open database. driver is one of the config.Driver* names.
func New(db *sql.DB, driver string, lockTimeout time.Duration) *Store {
	d := postgresDialect
	if driver == config.DriverSQLite {
		d = sqliteDialect
	}
	return &Store{
		repos:       newRepos(conn{q: db, d: d}),
		db:          db,
		dialect:     d,
		lockTimeout: lockTimeout,
	}
}

func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Close() error { return s.db.Close() }

// WithTx runs fn in one transaction, committing when fn returns nil.
func (s *Store) WithTx(ctx context.Context, fn func(repository.Repos) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", classify(err))
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
		}
	}()

	for _, stmt := range s.dialect.txSetup(s.lockTimeout) {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("configure transaction: %w", err)
		}
	}

	if err = fn(newRepos(conn{q: tx, d: s.dialect, tx: true})); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", classify(err))
	}
	return nil
}

var _ repository.Store = (*Store)(nil)
