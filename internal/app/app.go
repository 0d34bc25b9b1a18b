// Package app builds the services shared by the API server, the CLI and
// the TUI from configuration.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/poflow/internal/accounts"
	accountsStore "github.com/MrJamesThe3rd/poflow/internal/accounts/store"
	"github.com/MrJamesThe3rd/poflow/internal/archive"
	"github.com/MrJamesThe3rd/poflow/internal/config"
	"github.com/MrJamesThe3rd/poflow/internal/database"
	"github.com/MrJamesThe3rd/poflow/internal/directory"
	dirStore "github.com/MrJamesThe3rd/poflow/internal/directory/store"
	"github.com/MrJamesThe3rd/poflow/internal/document"
	"github.com/MrJamesThe3rd/poflow/internal/expediting"
	expeditingStore "github.com/MrJamesThe3rd/poflow/internal/expediting/store"
	"github.com/MrJamesThe3rd/poflow/internal/formtoken"
	"github.com/MrJamesThe3rd/poflow/internal/logger"
	"github.com/MrJamesThe3rd/poflow/internal/mailer"
	"github.com/MrJamesThe3rd/poflow/internal/metrics"
	"github.com/MrJamesThe3rd/poflow/internal/purchaseorder"
	poStore "github.com/MrJamesThe3rd/poflow/internal/purchaseorder/store"
	"github.com/MrJamesThe3rd/poflow/internal/report"
	reportStore "github.com/MrJamesThe3rd/poflow/internal/report/store"
)

type App struct {
	Config  *config.Config
	Log     *logger.Logger
	DB      *sql.DB
	Metrics *metrics.Metrics

	Directory      *directory.Service
	PurchaseOrders *purchaseorder.Service
	Accounts       *accounts.Service
	Expediting     *expediting.Service
	Reports        *report.Service

	Renderer *document.Renderer
	Archiver *archive.Archiver
	Mailer   *mailer.Service
	// Tokens is nil when REDIS_URL is unset.
	Tokens *formtoken.Store

	closers []func() error
}

func NewLogger(cfg *config.Config) *logger.Logger {
	return logger.New(logger.Options{
		ServiceName: cfg.App.Name,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		Output:      os.Stderr,
	})
}

// New connects to every configured backend. Optional integrations that are
// switched off are left disabled rather than failing startup.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	a := &App{Config: cfg, Log: log}

	if err := a.init(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}

	return a, nil
}

func (a *App) init(ctx context.Context) error {
	cfg := a.Config

	vatRate, err := decimal.NewFromString(cfg.Document.VATRate)
	if err != nil {
		return fmt.Errorf("parsing VAT_RATE: %w", err)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	a.DB = db
	a.closers = append(a.closers, db.Close)

	poOpts := []purchaseorder.Option{purchaseorder.WithLogger(a.Log)}

	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New()
		poOpts = append(poOpts, purchaseorder.WithRecorder(a.Metrics))
	}

	timeout := cfg.Store.Timeout

	a.Directory = directory.NewService(dirStore.New(db, timeout))
	a.PurchaseOrders = purchaseorder.NewService(poStore.New(db, timeout), poOpts...)
	a.Accounts = accounts.NewService(accountsStore.New(db, timeout))
	a.Expediting = expediting.NewService(expeditingStore.New(db, timeout))
	a.Reports = report.NewService(reportStore.New(db, timeout), purchaseorder.DefaultCurrency)

	a.Renderer = document.NewRenderer(cfg.Document.CompanyName, document.WithVATRate(vatRate))

	if a.Archiver, err = a.newArchiver(ctx); err != nil {
		return err
	}

	if a.Mailer, err = a.newMailer(ctx); err != nil {
		return err
	}

	if cfg.Redis.URL != "" {
		tokens, err := formtoken.New(ctx, cfg.Redis.URL, cfg.Redis.FormTokenTTL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}

		a.Tokens = tokens
		a.closers = append(a.closers, tokens.Close)
	} else {
		a.Log.Warn(ctx, "REDIS_URL not set, form resubmission guard disabled", nil)
	}

	return nil
}

func (a *App) newArchiver(ctx context.Context) (*archive.Archiver, error) {
	cfg := a.Config.Archive
	opts := []archive.Option{
		archive.WithLogger(a.Log),
		archive.WithFailureHook(a.Metrics.IncArchiveFailure),
	}

	if !cfg.Enabled {
		return archive.New(nil, opts...), nil
	}

	if cfg.Bucket != "" {
		gcs, err := archive.NewGCS(ctx, cfg.Bucket, cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("opening archive bucket: %w", err)
		}

		a.closers = append(a.closers, gcs.Close)

		return archive.New(gcs, opts...), nil
	}

	return archive.New(archive.NewFS(cfg.Root), opts...), nil
}

func (a *App) newMailer(ctx context.Context) (*mailer.Service, error) {
	cfg := a.Config.Outlook
	opts := []mailer.Option{
		mailer.WithLogger(a.Log),
		mailer.WithFailureHook(a.Metrics.IncDraftFailure),
	}

	if !cfg.DraftEnabled {
		return mailer.NewService(nil, opts...), nil
	}

	client, err := mailer.NewGraphClient(ctx, mailer.GraphConfig{
		TenantID:     cfg.TenantID,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Mailbox:      cfg.Mailbox,
		Timeout:      cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("configuring outlook: %w", err)
	}

	return mailer.NewService(client, opts...), nil
}

// CORSOrigins splits CORS_ORIGINS on commas.
func (a *App) CORSOrigins() []string {
	var origins []string

	for _, o := range strings.Split(a.Config.App.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return origins
}

// Close releases every backend in reverse order of opening.
func (a *App) Close() error {
	var errs []error

	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}

	a.closers = nil

	return errors.Join(errs...)
}
