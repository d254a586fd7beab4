package main

import (
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/foremenchoice/chitledger/internal/auth"
	"github.com/foremenchoice/chitledger/internal/config"
	"github.com/foremenchoice/chitledger/internal/server"
	"github.com/foremenchoice/chitledger/internal/service"
	"github.com/foremenchoice/chitledger/internal/storage/sqlite"
	"github.com/foremenchoice/chitledger/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	var opts []sqlite.Option
	if cfg.CascadeDelete {
		opts = append(opts, sqlite.WithCascadeDelete())
	}
	store, err := sqlite.New(cfg.DBPath, opts...)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath, "cascade_delete", cfg.CascadeDelete)

	srv := server.New(
		service.NewGroupService(store),
		service.NewSubscriberService(store),
		service.NewEnrollmentService(store),
		service.NewInstallmentService(store),
		service.NewPaymentService(store),
		service.NewDividendService(store),
		service.NewReportService(store),
		auth.NewPasswordAuthenticator(store),
		auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL),
	)

	// h2c allows HTTP/2 without TLS so a reverse proxy can terminate it.
	handler := h2c.NewHandler(corsMiddleware(srv.Router()), &http2.Server{})

	slog.Info("Server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
