// Package server wires middleware and routes around the handler packages.
package server

import (
	"database/sql"

	"go.uber.org/zap"

	"maintlog/internal/backup"
	"maintlog/internal/store"
	"maintlog/internal/websocket"
)

// App holds shared dependencies for the application.
type App struct {
	DB     *sql.DB
	Store  *store.Store
	Hub    *websocket.Hub
	Backup *backup.Driver
	Logger *zap.Logger
}
