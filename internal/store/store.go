// Package store owns all access to the relational database: the shared
// connection pool for single-statement reads and writes, and the dedicated
// non-pooled connections used by the cascade-delete transactions.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dnikolaeva/collectdesk/internal/config"
	"github.com/dnikolaeva/collectdesk/internal/core"
	"github.com/dnikolaeva/collectdesk/internal/debug"
)

// Store provides database access on top of a bounded pgx pool.
type Store struct {
	cfg   config.Database
	state *core.AppState
	mu    sync.RWMutex
	pool  *pgxpool.Pool
}

// New creates a Store. No connection is made until Connect.
func New(cfg config.Database, state *core.AppState) *Store {
	return &Store{
		cfg:   cfg,
		state: state,
	}
}

// Connect establishes the shared pool and pings it. On success the
// "connected" event is emitted; on failure the Store stays unconnected and
// every operation remains a no-op until a later successful Connect.
func (s *Store) Connect(ctx context.Context) error {
	poolCfg, err := pgxpool.ParseConfig(s.cfg.DSN())
	if err != nil {
		return fmt.Errorf("parse pool config: %w", err)
	}

	poolCfg.MinConns = s.cfg.MinConns
	if poolCfg.MinConns <= 0 {
		poolCfg.MinConns = 1
	}
	poolCfg.MaxConns = s.cfg.MaxConns
	if poolCfg.MaxConns <= 0 {
		poolCfg.MaxConns = 10
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("ping database: %w", err)
	}

	s.mu.Lock()
	if s.pool != nil {
		s.pool.Close()
	}
	s.pool = pool
	s.mu.Unlock()

	debug.LogConnection("database pool established", map[string]interface{}{
		"host":      s.cfg.Host,
		"database":  s.cfg.Database,
		"max_conns": poolCfg.MaxConns,
	})
	s.state.EmitEvent(core.EventConnected, nil)
	return nil
}

// Ready reports whether the shared pool is established.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pool != nil
}

// Close drains and closes the shared pool. Safe to call when unconnected.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	pool := s.pool
	s.pool = nil
	s.mu.Unlock()
	if pool != nil {
		pool.Close()
		debug.LogConnection("database pool closed", nil)
	}
	return nil
}

// acquirePool returns the shared pool or a NotConnectedError.
func (s *Store) acquirePool() (*pgxpool.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pool == nil {
		return nil, &core.NotConnectedError{}
	}
	return s.pool, nil
}

// Query runs a read statement on the pool and returns all rows as
// column-name → value records. "No rows" is an empty result with a nil
// error; a failed query is a non-nil error, never a silent nil.
func (s *Store) Query(ctx context.Context, sql string, args ...interface{}) ([]map[string]interface{}, error) {
	pool, err := s.acquirePool()
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, sql, args...)
	if err != nil {
		debug.LogQuery("query failed", map[string]interface{}{"sql": sql, "error": err.Error()})
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	records := []map[string]interface{}{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		record := make(map[string]interface{}, len(fields))
		for i, f := range fields {
			record[f.Name] = values[i]
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return records, nil
}

// Exec runs a mutation statement on the pool and returns the number of
// affected rows.
func (s *Store) Exec(ctx context.Context, sql string, args ...interface{}) (int64, error) {
	pool, err := s.acquirePool()
	if err != nil {
		return 0, err
	}

	tag, err := pool.Exec(ctx, sql, args...)
	if err != nil {
		debug.LogQuery("exec failed", map[string]interface{}{"sql": sql, "error": err.Error()})
		return 0, fmt.Errorf("exec: %w", err)
	}
	return tag.RowsAffected(), nil
}

// insertReturningID runs an INSERT ... RETURNING id statement on the pool and
// returns the generated row id.
func (s *Store) insertReturningID(ctx context.Context, sql string, args ...interface{}) (int64, error) {
	pool, err := s.acquirePool()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := pool.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		debug.LogQuery("insert failed", map[string]interface{}{"sql": sql, "error": err.Error()})
		return 0, fmt.Errorf("insert: %w", err)
	}
	return id, nil
}
