package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/poflow/internal/app"
	"github.com/MrJamesThe3rd/poflow/internal/config"
	poflowHttp "github.com/MrJamesThe3rd/poflow/internal/http"
	accountsHandler "github.com/MrJamesThe3rd/poflow/internal/http/accounts"
	directoryHandler "github.com/MrJamesThe3rd/poflow/internal/http/directory"
	expeditingHandler "github.com/MrJamesThe3rd/poflow/internal/http/expediting"
	poHandler "github.com/MrJamesThe3rd/poflow/internal/http/purchaseorder"
	reportHandler "github.com/MrJamesThe3rd/poflow/internal/http/report"
	"github.com/MrJamesThe3rd/poflow/internal/lineimport"
	"github.com/MrJamesThe3rd/poflow/internal/purchaseorder"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := app.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to start", err)
		return err
	}
	defer a.Close()

	poOpts := []poHandler.Option{
		poHandler.WithArchiver(a.Archiver),
		poHandler.WithMailer(a.Mailer),
		poHandler.WithImporter(lineimport.NewParser(purchaseorder.DefaultCurrency)),
	}

	if a.Tokens != nil {
		poOpts = append(poOpts, poHandler.WithFormTokens(a.Tokens))
	}

	handlers := poflowHttp.Handlers{
		PurchaseOrders: poHandler.NewHandler(a.PurchaseOrders, a.Directory, a.Renderer, log, poOpts...),
		Accounts:       accountsHandler.NewHandler(a.Accounts, log),
		Expediting:     expeditingHandler.NewHandler(a.Expediting, log),
		Reports:        reportHandler.NewHandler(a.Reports, log),
		Directory:      directoryHandler.NewHandler(a.Directory, log),
	}

	opts := poflowHttp.Options{
		Logger:      log,
		CORSOrigins: a.CORSOrigins(),
		JWTSecret:   []byte(cfg.Auth.JWTSecret),
		JWTIssuer:   cfg.Auth.Issuer,
	}

	if a.Metrics != nil {
		opts.Metrics = a.Metrics.Handler()
	}

	if cfg.Auth.JWTSecret == "" {
		log.Warn(ctx, "JWT_SECRET not set, API is unauthenticated", nil)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           poflowHttp.New(opts, handlers),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	go a.RunReconciler(ctx, cfg.Reconcile.Interval)

	errCh := make(chan error, 1)

	go func() {
		log.Info(log.WithField(ctx, "addr", srv.Addr), "starting server")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error(ctx, "server failed", err)
			return err
		}
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
