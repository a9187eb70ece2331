package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/printbridge/printbridge/api"
	"github.com/printbridge/printbridge/api/handlers"
	"github.com/printbridge/printbridge/config"
	"github.com/printbridge/printbridge/ledger"
	"github.com/printbridge/printbridge/printer"
)

func main() {
	// Parse command line flags
	cfg := config.ParseFlags()

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "printbridge",
		Level: hclog.LevelFromString(cfg.LogLevel),
	})

	// Probe the host print system; a bridge with no printers still serves,
	// submissions just fail with structured results.
	spooler := printer.CUPSSpooler{}
	if printers, err := spooler.Printers(); err != nil {
		logger.Warn("printer enumeration failed at startup", "error", err)
	} else {
		defaultPrinter, _ := spooler.DefaultPrinter()
		logger.Info("print system ready", "printers", len(printers), "default", defaultPrinter)
	}

	// Wire the pipeline
	jobs := ledger.New(cfg.LedgerCap)
	label := printer.LabelSpec{
		WidthIn:  cfg.LabelWidthIn,
		HeightIn: cfg.LabelHeightIn,
		WidthMM:  cfg.LabelWidthMM,
		HeightMM: cfg.LabelHeightMM,
	}
	executor := printer.NewExecutor(spooler, jobs, label, cfg.DPI, cfg.ScratchDir, logger.Named("executor"))
	handler := handlers.NewHandler(executor, spooler, jobs, logger.Named("intake"))
	router := api.SetupRouter(handler)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start the server in a goroutine
	go func() {
		logger.Info("starting HTTP server", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	// In-flight prints run to completion before the listener drains
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}

	logger.Info("shutdown complete")
}
