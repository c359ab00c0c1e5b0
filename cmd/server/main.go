package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	cartapp "github.com/pixelpatch/studio-api/internal/cart/app"
	cartrest "github.com/pixelpatch/studio-api/internal/cart/rest"
	catalogapp "github.com/pixelpatch/studio-api/internal/catalog/app"
	catalogrest "github.com/pixelpatch/studio-api/internal/catalog/rest"
	checkoutapp "github.com/pixelpatch/studio-api/internal/checkout/app"
	"github.com/pixelpatch/studio-api/internal/checkout/infra/paylink"
	checkoutrest "github.com/pixelpatch/studio-api/internal/checkout/rest"
	intakeapp "github.com/pixelpatch/studio-api/internal/intake/app"
	"github.com/pixelpatch/studio-api/internal/intake/infra/tasktracker"
	intakerest "github.com/pixelpatch/studio-api/internal/intake/rest"
	newsletterapp "github.com/pixelpatch/studio-api/internal/newsletter/app"
	"github.com/pixelpatch/studio-api/internal/newsletter/infra/mailer"
	newsletterrest "github.com/pixelpatch/studio-api/internal/newsletter/rest"
	"github.com/pixelpatch/studio-api/internal/notify"
	"github.com/pixelpatch/studio-api/internal/records"
	"github.com/pixelpatch/studio-api/pkg/config"
	"github.com/pixelpatch/studio-api/pkg/httpx"
	"github.com/pixelpatch/studio-api/pkg/logger"
	"github.com/pixelpatch/studio-api/pkg/shutdown"
)

func main() {
	// .env is a development convenience; production sets variables directly.
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Service:   "studio-api",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	root := context.Background()
	ctx, cancel := shutdown.WithSignals(root)
	defer cancel()

	store, err := records.Open(cfg.RecordsDBPath)
	if err != nil {
		log.Error("opening records store", slog.Any("err", err))
		os.Exit(1)
	}
	defer store.Close()

	notifier := notify.NewCenter(notify.DefaultTTL)

	catalogSvc := catalogapp.NewService(cfg.Currency, log)
	cartSvc := cartapp.NewService(catalogSvc, notifier)
	checkoutSvc := checkoutapp.NewService(
		paylink.NewClient(cfg.PaymentAPIBaseURL, cfg.PaymentAPIToken),
		cartSvc,
		store,
		cfg.CheckoutRedirectURL,
		log,
	)
	intakeSvc := intakeapp.NewService(
		tasktracker.NewClient(cfg.TaskTrackerBaseURL, cfg.TaskTrackerToken, cfg.TaskTrackerListID),
		store,
		log,
	)
	newsletterSvc := newsletterapp.NewService(
		mailer.NewClient(cfg.NewsletterBaseURL, cfg.NewsletterAPIKey, cfg.NewsletterListID),
		log,
	)

	api := http.NewServeMux()
	catalogrest.NewHandler(catalogSvc).Register(api)
	cartrest.NewHandler(cartSvc).Register(api)
	checkoutrest.NewHandler(checkoutSvc).Register(api)
	intakerest.NewHandler(intakeSvc).Register(api)
	newsletterrest.NewHandler(newsletterSvc).Register(api)
	notifier.Register(api)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Handle("/api/", httpx.WithSession(api))

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		err := notifier.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutdown requested")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("bye")
}
