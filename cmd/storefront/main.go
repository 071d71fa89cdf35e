package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/nikolayk812/storefront-cart/internal/cart"
	"github.com/nikolayk812/storefront-cart/internal/config"
	"github.com/nikolayk812/storefront-cart/internal/httpapi"
	"github.com/nikolayk812/storefront-cart/internal/logger"
	"github.com/nikolayk812/storefront-cart/internal/metrics"
	"github.com/nikolayk812/storefront-cart/internal/presenter"
	"github.com/nikolayk812/storefront-cart/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	serviceName     = "storefront"
	shutdownTimeout = 10 * time.Second
)

func main() {
	logg := logger.New(logger.Options{ServiceName: serviceName})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment", nil)
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slot, err := openSlot(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to open cart slot", err)
		os.Exit(1)
	}
	defer slot.close()

	unit, err := cfg.Presenter.CurrencyUnit()
	if err != nil {
		logg.Error(ctx, "failed to parse currency", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	storage := metrics.InstrumentStorage(
		repository.NewCartStorage(slot, cfg.Storage.SlotKey, logg),
		reg,
	)
	store := cart.New(ctx, storage,
		cart.WithLogger(logg),
		cart.WithObservers(metrics.NewCartMetrics(reg)),
	)

	board := presenter.NewToastBoard()
	toaster := presenter.NewToaster(board, cfg.Presenter.ToastDelay)
	defer toaster.Close()

	view := presenter.New(store, toaster, presenter.Options{
		ModalTitle: cfg.Presenter.ModalTitle,
		Currency:   unit,
	})
	store.Subscribe(view)

	server := &http.Server{
		Addr: cfg.App.Addr,
		Handler: httpapi.NewRouter(httpapi.Deps{
			Controller: presenter.NewController(store, nil),
			Presenter:  view,
			Toasts:     board,
			Gatherer:   reg,
			Pinger:     slot.pinger,
			Logger:     logg,

			AllowedOrigins: cfg.App.CORSOrigins,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveCtx := logg.WithFields(ctx, map[string]any{
		"env":    cfg.App.Env,
		"addr":   cfg.App.Addr,
		"driver": cfg.Storage.Driver,
	})
	logg.Info(serveCtx, "starting storefront server")

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(serveCtx, "storefront server stopped unexpectedly", err)
		}
		return
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(serveCtx, "storefront server shutdown failed", err)
		return
	}
	logg.Info(serveCtx, "storefront server stopped")
}
