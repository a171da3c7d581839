// Package store implements the record store: CRUD over work logs, daily
// checks, inventory items, and switches with their cameras, plus the
// dashboard queries. All SQL lives here; handlers only translate requests.
package store

import (
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// ErrNotFound is returned by lookups when no row matches the id.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateCheck is returned when a daily check already exists for the
// same (check_date, item_name) pair. The uniqueness lives in a database
// index, so concurrent inserts cannot race past it.
var ErrDuplicateCheck = errors.New("daily check already recorded for this item and date")

// Mutation actions reported to hooks.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Event describes one committed mutation.
type Event struct {
	Module string
	Action string
	ID     int64
}

// Hook receives a mutation event after its transaction has committed.
// Hooks must not block; anything slow should hand off to its own goroutine
// or channel.
type Hook func(Event)

// Store wraps the database handle and fans mutation events out to
// registered hooks.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
	hooks  []Hook
}

// New creates a Store. logger may be nil.
func New(conn *sql.DB, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: conn, logger: logger}
}

// DB exposes the underlying handle for packages that query alongside the
// store (audit trail, exports).
func (s *Store) DB() *sql.DB {
	return s.db
}

// OnMutation registers a post-commit hook. Not safe to call after the
// store is in use.
func (s *Store) OnMutation(h Hook) {
	s.hooks = append(s.hooks, h)
}

func (s *Store) notify(module, action string, id int64) {
	evt := Event{Module: module, Action: action, ID: id}
	for _, h := range s.hooks {
		h(evt)
	}
	s.logger.Debug("mutation",
		zap.String("module", module),
		zap.String("action", action),
		zap.Int64("id", id))
}

// isUniqueViolation reports whether err is a SQLite unique-constraint
// failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
