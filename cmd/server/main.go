package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/britizen/backend/internal/api"
	"github.com/britizen/backend/internal/domain/questionbank"
	"github.com/britizen/backend/internal/infrastructure/config"
	"github.com/britizen/backend/internal/service"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Static data ─────────────────────────────────────────────────
	// The bank is required; the context file degrades to "no context".
	bankRaw, err := os.ReadFile(cfg.BankPath)
	if err != nil {
		logger.Error("failed to load question bank", "path", cfg.BankPath, "error", err)
		os.Exit(1)
	}
	bank, err := questionbank.Load(bankRaw)
	if err != nil {
		logger.Error("failed to parse question bank", "path", cfg.BankPath, "error", err)
		os.Exit(1)
	}

	contexts := questionbank.ContextIndex{}
	if contextRaw, err := os.ReadFile(cfg.ContextPath); err != nil {
		logger.Warn("no context file; continuing without contexts", "path", cfg.ContextPath, "error", err)
	} else {
		contexts = questionbank.NormalizeContexts(contextRaw)
	}

	logger.Info("question bank loaded",
		"questions", len(bank.Questions),
		"topics", len(bank.Topics),
		"contexts", contexts.Count(),
	)

	// ── Dependencies ────────────────────────────────────────────────
	sessions := service.NewSessionService(bank, contexts, logger, nil)
	handler := api.NewHandler(bank, contexts, sessions, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// Swagger UI served at /swagger/, fed by the embedded document.
	api.RegisterSwaggerDoc(mux)
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
