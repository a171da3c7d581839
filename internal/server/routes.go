package server

import (
	"net/http"
	"strconv"
	"strings"

	"maintlog/internal/handlers/admin"
	"maintlog/internal/handlers/common"
	"maintlog/internal/handlers/dailychecks"
	"maintlog/internal/handlers/inventory"
	"maintlog/internal/handlers/network"
	"maintlog/internal/handlers/worklogs"
	"maintlog/internal/response"
)

// Routes builds the full HTTP handler: middleware chain around the API
// route table and the websocket endpoint.
func (a *App) Routes() http.Handler {
	workLogH := &worklogs.Handler{Store: a.Store, Logger: a.Logger}
	dailyCheckH := &dailychecks.Handler{Store: a.Store, Logger: a.Logger}
	inventoryH := &inventory.Handler{Store: a.Store, Logger: a.Logger}
	networkH := &network.Handler{Store: a.Store, Logger: a.Logger}
	adminH := &admin.Handler{Store: a.Store, Backup: a.Backup, Logger: a.Logger}
	exportH := &common.Handler{Store: a.Store, Logger: a.Logger}

	mux := http.NewServeMux()

	mux.HandleFunc("/ws", a.Hub.Handle)

	mux.HandleFunc("/api/v1/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/api/v1/")
		path = strings.TrimSuffix(path, "/")

		// Export endpoints write their own content type.
		switch {
		case path == "worklogs/export" && r.Method == "GET":
			exportH.ExportWorkLogs(w, r)
			return
		case path == "daily-checks/export" && r.Method == "GET":
			exportH.ExportDailyChecks(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		parts := strings.Split(path, "/")

		switch {
		case path == "health" && r.Method == "GET":
			response.JSON(w, map[string]string{"status": "ok"})

		case path == "dashboard" && r.Method == "GET":
			workLogH.Dashboard(w, r)

		// Work logs
		case path == "worklogs":
			collection(w, r, workLogH.List, workLogH.Create)
		case path == "worklogs/summary" && r.Method == "GET":
			workLogH.Summary(w, r)
		case parts[0] == "worklogs" && len(parts) == 2:
			withID(w, r, parts[1], workLogH.Get, workLogH.Update, workLogH.Delete)

		// Daily checks
		case path == "daily-checks":
			collection(w, r, dailyCheckH.List, dailyCheckH.Create)
		case path == "daily-checks/summary" && r.Method == "GET":
			dailyCheckH.Summary(w, r)
		case parts[0] == "daily-checks" && len(parts) == 2:
			withID(w, r, parts[1], dailyCheckH.Get, dailyCheckH.Update, dailyCheckH.Delete)

		// Inventory
		case path == "inventory":
			collection(w, r, inventoryH.List, inventoryH.Create)
		case parts[0] == "inventory" && len(parts) == 2:
			withID(w, r, parts[1], inventoryH.Get, inventoryH.Update, inventoryH.Delete)

		// Switches and cameras
		case path == "switches":
			collection(w, r, networkH.List, networkH.Create)
		case parts[0] == "switches" && len(parts) == 2:
			withID(w, r, parts[1], networkH.Get, networkH.Update, networkH.Delete)

		// Audit trail
		case path == "audit" && r.Method == "GET":
			adminH.AuditLog(w, r)

		// Admin
		case path == "admin/backups":
			collection(w, r, adminH.ListBackups, adminH.CreateBackup)
		case path == "admin/restore-latest" && r.Method == "POST":
			adminH.RestoreLatest(w, r)
		case path == "admin/seed" && r.Method == "POST":
			adminH.Seed(w, r)

		default:
			response.Err(w, "not found", 404)
		}
	})

	return LoggingMiddleware(a.Logger)(SecurityHeaders(mux))
}

// collection dispatches GET/POST on a collection path; anything else is a
// method error, not a missing route.
func collection(w http.ResponseWriter, r *http.Request, get, post http.HandlerFunc) {
	switch r.Method {
	case "GET":
		get(w, r)
	case "POST":
		post(w, r)
	default:
		response.Err(w, "method not allowed", 405)
	}
}

type idHandler func(http.ResponseWriter, *http.Request, int64)

// withID parses the id path segment and dispatches on method.
func withID(w http.ResponseWriter, r *http.Request, raw string, get, put, del idHandler) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.Err(w, "invalid id", 400)
		return
	}
	switch r.Method {
	case "GET":
		get(w, r, id)
	case "PUT":
		put(w, r, id)
	case "DELETE":
		del(w, r, id)
	default:
		response.Err(w, "method not allowed", 405)
	}
}
