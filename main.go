package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"strings"

	"fieldops/internal/audit"
	"fieldops/internal/config"
	"fieldops/internal/handlers/admin"
	"fieldops/internal/handlers/common"
	"fieldops/internal/handlers/hse"
	"fieldops/internal/handlers/operations"
	"fieldops/internal/handlers/rounds"
	"fieldops/internal/server"
	"fieldops/internal/store"
	"fieldops/internal/websocket"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config file")
	listen := flag.String("listen", "", "Listen address (overrides config)")
	dataDir := flag.String("data", "", "Data directory (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal("config: ", err)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	st := store.New(cfg.DataDir)
	if err := st.SeedIfMissing(); err != nil {
		log.Fatal("seed failed: ", err)
	}

	auditDB, err := audit.InitDB(cfg.AuditDB)
	if err != nil {
		log.Fatal("audit DB init failed: ", err)
	}
	defer auditDB.Close()

	hub := websocket.NewHub()
	app := &server.App{Store: st, Audit: auditDB, Hub: hub, Cfg: cfg}

	opsH := &operations.Handler{Store: app.Store, Audit: app.Audit, Hub: app.Hub}
	roundsH := &rounds.Handler{Store: app.Store, Audit: app.Audit, Hub: app.Hub}
	hseH := &hse.Handler{Store: app.Store, Audit: app.Audit, Hub: app.Hub}
	adminH := &admin.Handler{Store: app.Store, Audit: app.Audit, Hub: app.Hub}
	commonH := &common.Handler{Store: app.Store, Audit: app.Audit, Hub: app.Hub, DocsDir: cfg.DocsDir}

	mux := http.NewServeMux()

	// Static UI
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "static/index.html")
	})

	// Live events
	mux.HandleFunc("/ws", hub.Handle)

	// API routes - using a simple router
	mux.HandleFunc("/api/v1/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/api/v1/")
		path = strings.TrimSuffix(path, "/")
		parts := strings.Split(path, "/")

		switch {
		case path == "health" && r.Method == "GET":
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"status": "ok", "site": cfg.SiteName})

		// Dashboard
		case path == "dashboard" && r.Method == "GET":
			commonH.Dashboard(w, r)
		case path == "dashboard/charts" && r.Method == "GET":
			commonH.DashboardCharts(w, r)

		// Reference data
		case path == "assets" && r.Method == "GET":
			adminH.ListAssets(w, r)

		// Users
		case path == "users" && r.Method == "GET":
			adminH.ListUsers(w, r)
		case path == "users" && r.Method == "POST":
			adminH.AddUser(w, r)

		// Notifications
		case path == "notifications" && r.Method == "GET":
			opsH.ListNotifications(w, r)
		case path == "notifications" && r.Method == "POST":
			opsH.CreateNotification(w, r)
		case parts[0] == "notifications" && len(parts) == 3 && parts[2] == "status" && r.Method == "POST":
			opsH.UpdateNotificationStatus(w, r, parts[1])

		// Simulated IoT events
		case path == "sensor-events" && r.Method == "POST":
			opsH.EvaluateSensorEvent(w, r)

		// Rounds
		case path == "rounds/templates" && r.Method == "GET":
			roundsH.ListTemplates(w, r)
		case path == "rounds/executions" && r.Method == "GET":
			roundsH.ListExecutions(w, r)
		case path == "rounds/executions" && r.Method == "POST":
			roundsH.SubmitExecution(w, r)

		// Incidents
		case path == "incidents" && r.Method == "GET":
			hseH.ListIncidents(w, r)
		case path == "incidents" && r.Method == "POST":
			hseH.ReportIncident(w, r)

		// Permits / work orders
		case path == "permits" && r.Method == "GET":
			hseH.ListPermits(w, r)
		case path == "permits" && r.Method == "POST":
			hseH.CreatePermit(w, r)
		case parts[0] == "permits" && len(parts) == 3 && parts[2] == "status" && r.Method == "POST":
			hseH.UpdatePermitStatus(w, r, parts[1])

		// Documents
		case path == "documents" && r.Method == "GET":
			commonH.ListDocuments(w, r)
		case parts[0] == "documents" && len(parts) == 2 && r.Method == "GET":
			commonH.ServeDocument(w, r, parts[1])

		// Export
		case parts[0] == "export" && len(parts) == 2 && r.Method == "GET":
			commonH.ExportDataset(w, r, parts[1])

		// Audit trail
		case path == "audit" && r.Method == "GET":
			adminH.ListAuditLog(w, r)

		default:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(404)
			json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
		}
	})

	handler := server.LoggingMiddleware(server.RecoverMiddleware(server.SecurityHeaders(server.GzipMiddleware(mux))))
	log.Printf("%s serving on http://localhost%s (data: %s)", cfg.SiteName, cfg.Listen, cfg.DataDir)
	log.Fatal(http.ListenAndServe(cfg.Listen, handler))
}
