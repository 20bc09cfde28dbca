package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/restodash/lossledger/internal/cache"
	"github.com/restodash/lossledger/internal/config"
	"github.com/restodash/lossledger/internal/export"
	"github.com/restodash/lossledger/internal/ledger"
	"github.com/restodash/lossledger/internal/repository/postgres"
	"github.com/restodash/lossledger/internal/storage"
)

// Ops entrypoint: report export and demo resets, kept off the public API
// server so the dashboard origin never reaches them.
func main() {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	statsCache, err := cache.NewStatsCache(cfg.Cache)
	if err != nil {
		log.Printf("warning: statistics cache unavailable: %v", err)
		statsCache = cache.NewNoopStatsCache()
	}

	service := ledger.NewService(
		postgres.NewLossRepository(db),
		postgres.NewInventoryRepository(db),
		statsCache,
		cfg.Finance,
	)

	var exporter *export.ReportExporter
	if cfg.Export.Endpoint != "" {
		store, err := storage.NewMinioClient(cfg.Export)
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		exporter = export.NewReportExporter(service, store)
	}

	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	r.HandleFunc("/admin/export", func(w http.ResponseWriter, r *http.Request) {
		if exporter == nil {
			http.Error(w, "export storage not configured", http.StatusServiceUnavailable)
			return
		}

		days := 30
		if v := r.URL.Query().Get("days"); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				days = parsed
			}
		}

		key, err := exporter.Export(r.Context(), days)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"key": key})
	}).Methods("POST")

	r.HandleFunc("/admin/reset", func(w http.ResponseWriter, r *http.Request) {
		if err := service.Reset(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("reset"))
	}).Methods("POST")

	addr := fmt.Sprintf(":%s", cfg.Server.AdminPort)
	log.Printf("Admin server starting on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
