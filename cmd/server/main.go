package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"loantracker/internal/cache"
	"loantracker/internal/config"
	"loantracker/internal/handler"
	"loantracker/internal/middleware"
	"loantracker/internal/service"
	"loantracker/internal/storage/sqlite"
	"loantracker/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	// Pick the loan-list cache backend
	var listCache cache.Cache = cache.NewMemory()
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedis(cfg.RedisAddr)
		if err := redisCache.Ping(context.Background()); err != nil {
			slog.Error("Failed to reach Redis", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		listCache = redisCache
		slog.Info("Redis cache enabled", "addr", cfg.RedisAddr)
	}

	mux := http.NewServeMux()

	// Register API routes
	h := handler.NewLoanHandler(service.NewLoanService(store, listCache))
	h.Routes(mux)

	mux.Handle("GET /metrics", promhttp.Handler())

	// Serve the static frontend
	staticDir, err := filepath.Abs(cfg.StaticPath)
	if err != nil {
		slog.Error("Failed to resolve static path", "error", err)
		os.Exit(1)
	}
	slog.Info("Serving static files", "path", staticDir)

	// Handle all non-API routes with static file server
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			// Unknown paths fall back to the single-page client
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	})

	// Logging, metrics and CORS around everything
	wrapped := middleware.Logging(middleware.Metrics(middleware.CORS(mux)))

	// h2c enables HTTP/2 without TLS
	h2cHandler := h2c.NewHandler(wrapped, &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("LoanTracker API listening", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
