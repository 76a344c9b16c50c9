// Package app wires storage, stores, services, and the sync machinery into
// one container owned by the binaries.
package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/tzoee/personal-finance-manager-sub001/internal/amqp"
	"github.com/tzoee/personal-finance-manager-sub001/internal/cloud"
	cloudgoogle "github.com/tzoee/personal-finance-manager-sub001/internal/cloud/google"
	"github.com/tzoee/personal-finance-manager-sub001/internal/cloud/memory"
	"github.com/tzoee/personal-finance-manager-sub001/internal/config"
	"github.com/tzoee/personal-finance-manager-sub001/internal/log"
	"github.com/tzoee/personal-finance-manager-sub001/internal/services"
	"github.com/tzoee/personal-finance-manager-sub001/internal/snapshot"
	"github.com/tzoee/personal-finance-manager-sub001/internal/storage"
	"github.com/tzoee/personal-finance-manager-sub001/internal/store"
)

type App struct {
	Stores    snapshot.Stores
	Service   *services.FinanceService
	Snapshots *snapshot.Coordinator

	// Cloud and Sync are nil when no cloud backend is configured.
	Cloud cloud.Store
	Sync  *services.CloudSync

	cfg    *config.Config
	db     *storage.DB
	amqp   *amqp.Client
	logger *log.Logger
}

func New(ctx context.Context, cfg *config.Config, logger *log.Logger) (*App, error) {
	db, err := storage.Open(cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	a := &App{cfg: cfg, db: db, logger: logger}

	// Notify is resolved through the app pointer so the stores can be built
	// before the sync machine exists.
	opts := store.Options{Notify: func() {
		if a.Sync != nil {
			a.Sync.NotifyChange()
		}
	}}

	a.Stores = snapshot.Stores{
		Transactions: store.NewTransactionStore(db.Table("transactions"), opts),
		Categories:   store.NewCategoryStore(db.Table("categories"), opts),
		Savings:      store.NewSavingsStore(db.Table("savings_goals"), opts),
		Wishlist:     store.NewWishlistStore(db.Table("wishlist_items"), opts),
		Installments: store.NewInstallmentStore(db.Table("installments"), opts),
		Needs:        store.NewNeedStore(db.Table("monthly_needs"), db.Table("monthly_need_payments"), opts),
		Assets:       store.NewAssetStore(db.Table("assets"), opts),
		Settings:     store.NewSettingsStore(db.Table("settings"), opts),
	}
	a.Snapshots = snapshot.NewCoordinator(a.Stores, nil)

	cloudStore, err := newCloudStore(ctx, cfg, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	if cloudStore != nil {
		a.Cloud = cloudStore
		a.Sync = services.NewCloudSync(cloudStore, a.Snapshots.Export, cfg.SyncDebounce)
	}

	var publisher services.ChangePublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			// The dataset works without a broker; changes just stay local.
			logger.Warn("AMQP unavailable, change messages disabled", "error", err)
		} else {
			a.amqp = client
			publisher = client
		}
	}

	a.Service = services.NewFinanceService(a.Stores, publisher)
	return a, nil
}

func newCloudStore(ctx context.Context, cfg *config.Config, logger *log.Logger) (cloud.Store, error) {
	switch cfg.CloudBackend {
	case "drive":
		client, err := cloudgoogle.New(ctx, cloudgoogle.Credentials{
			ClientFile: cfg.GoogleOAuthClientFile,
			ClientJSON: cfg.GoogleOAuthClientJSON,
			TokenFile:  cfg.GoogleOAuthTokenFile,
			TokenJSON:  cfg.GoogleOAuthTokenJSON,
		})
		if err != nil {
			return nil, fmt.Errorf("drive backend: %w", err)
		}
		return client, nil
	case "memory":
		return memory.New(), nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown cloud backend %q", cfg.CloudBackend)
	}
}

// Initialize loads every store. Stores share no mutable state, so the loads
// fan out and the first failure wins.
func (a *App) Initialize(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Stores.Transactions.Initialize(ctx) })
	g.Go(func() error { return a.Stores.Categories.Initialize(ctx) })
	g.Go(func() error { return a.Stores.Savings.Initialize(ctx) })
	g.Go(func() error { return a.Stores.Wishlist.Initialize(ctx) })
	g.Go(func() error { return a.Stores.Installments.Initialize(ctx) })
	g.Go(func() error { return a.Stores.Needs.Initialize(ctx) })
	g.Go(func() error { return a.Stores.Assets.Initialize(ctx) })
	g.Go(func() error { return a.Stores.Settings.Initialize(ctx) })
	if err := g.Wait(); err != nil {
		return fmt.Errorf("initialize stores: %w", err)
	}
	a.logger.Info("Stores initialized",
		"transactions", a.Stores.Transactions.Count(),
		"categories", a.Stores.Categories.Count(),
		"savings", a.Stores.Savings.Count(),
		"wishlist", a.Stores.Wishlist.Count(),
		"installments", a.Stores.Installments.Count(),
		"needs", a.Stores.Needs.Count(),
		"assets", a.Stores.Assets.Count())
	return nil
}

// Close flushes the sync machine and releases every resource.
func (a *App) Close() error {
	if a.Sync != nil {
		a.Sync.Close()
	}
	if a.amqp != nil {
		a.amqp.Close()
	}
	return a.db.Close()
}
