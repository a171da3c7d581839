package main

import (
	"flag"
	"net/http"
	"os"

	"go.uber.org/zap"

	"maintlog/internal/backup"
	"maintlog/internal/config"
	"maintlog/internal/db"
	"maintlog/internal/logger"
	"maintlog/internal/server"
	"maintlog/internal/store"
	"maintlog/internal/websocket"
)

func main() {
	configPath := flag.String("config", "maintlog.yaml", "Path to YAML config file")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}
	defer conn.Close()

	st := store.New(conn, log)
	hub := websocket.NewHub(log)
	driver := backup.NewDriver(
		cfg.Backup.Dir, cfg.DBPath,
		cfg.Backup.DumpCommand, cfg.Backup.RestoreCommand,
		cfg.Backup.Retention, log)

	// Every committed mutation refreshes connected dashboards and, when
	// enabled, queues a best-effort dump. The dump runs off the request
	// path; the only ordering promised is "issued after commit".
	st.OnMutation(func(e store.Event) {
		hub.Broadcast(websocket.Event{Module: e.Module, Action: e.Action, ID: e.ID})
		if cfg.Backup.OnMutation {
			driver.Notify()
		}
	})

	stop := make(chan struct{})
	defer close(stop)
	go driver.Run(stop)

	app := &server.App{DB: conn, Store: st, Hub: hub, Backup: driver, Logger: log}

	log.Info("listening", zap.String("addr", cfg.ListenAddr), zap.String("db", cfg.DBPath))
	if err := http.ListenAndServe(cfg.ListenAddr, app.Routes()); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
