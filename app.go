package main

import (
	"context"
	"fmt"

	"github.com/dnikolaeva/collectdesk/internal/bridge"
	"github.com/dnikolaeva/collectdesk/internal/config"
	"github.com/dnikolaeva/collectdesk/internal/core"
	"github.com/dnikolaeva/collectdesk/internal/credential"
	"github.com/dnikolaeva/collectdesk/internal/debug"
	"github.com/dnikolaeva/collectdesk/internal/export"
	"github.com/dnikolaeva/collectdesk/internal/store"
	"github.com/dnikolaeva/collectdesk/internal/types"
	"github.com/dnikolaeva/collectdesk/internal/worker"
)

// =============================================================================
// Type Re-exports for Wails Binding Generation
// =============================================================================

type Country = types.Country
type CollectionType = types.CollectionType
type Collector = types.Collector
type Collection = types.Collection
type CatalogItem = types.CatalogItem
type CollectionItem = types.CollectionItem
type CollectorData = types.CollectorData
type CollectionData = types.CollectionData
type CatalogItemData = types.CatalogItemData
type Statistics = types.Statistics
type CollectionTypeStat = types.CollectionTypeStat
type CountryStat = types.CountryStat
type TopCollector = types.TopCollector
type SummaryReport = types.SummaryReport

// =============================================================================
// App - Thin Facade for Wails Bindings
// =============================================================================

// App struct holds the application state and services. Every data method is
// fire-and-forget: results and errors come back as tagged events.
type App struct {
	state      *core.AppState
	credential *credential.Service
	cfg        *config.Config
	worker     *worker.Worker
	store      *store.Store
	bridge     *bridge.Bridge
	export     *export.Service
}

// NewApp creates a new App instance
func NewApp() *App {
	return &App{
		state:      core.NewAppState(),
		credential: credential.NewService(),
		worker:     worker.New(),
	}
}

// startup is called when the app starts
func (a *App) startup(ctx context.Context) {
	a.state.Ctx = ctx
	a.state.SetEmitter(&core.WailsEventEmitter{Ctx: ctx})
	debug.Init(ctx)

	configDir := config.InitConfigDir()
	a.state.ConfigDir = configDir

	cfg, err := config.Load(configDir)
	if err != nil {
		a.state.EmitEvent(core.EventError, fmt.Sprintf("config: %s", err))
		cfg = &config.Config{Database: config.Database{
			Host: "localhost", Port: 5432,
			User: "collectdesk", Database: "collectdesk",
			SSLMode: "disable", MinConns: 1, MaxConns: 10,
		}}
	}

	// The config file may omit the password; the OS keyring is the
	// preferred place for it.
	if cfg.Database.Password == "" {
		account := fmt.Sprintf("%s@%s", cfg.Database.User, cfg.Database.Host)
		if password, err := a.credential.GetDatabasePassword(account); err == nil {
			cfg.Database.Password = password
		}
	}
	a.cfg = cfg

	a.store = store.New(cfg.Database, a.state)
	a.bridge = bridge.New(a.worker, a.state, a.store)
	a.export = export.NewService(a.state, a.store)

	a.worker.Start()
	a.ConnectDatabase()
}

// shutdown is called when the app is closing. The pool close runs as the
// worker's final task; shutdown proceeds even if it fails.
func (a *App) shutdown(ctx context.Context) {
	if a.store != nil {
		a.worker.Stop(a.store.Close)
	} else {
		a.worker.Stop(nil)
	}
}

// =============================================================================
// Connection Methods
// =============================================================================

// ConnectDatabase establishes the pool on the worker and prepares the
// schema. Success surfaces as the "connected" event.
func (a *App) ConnectDatabase() {
	a.bridge.SubmitSilent("connect", func(ctx context.Context) (interface{}, error) {
		if err := a.store.Connect(ctx); err != nil {
			return nil, err
		}
		if err := a.store.Migrate(ctx); err != nil {
			return nil, err
		}
		return nil, a.store.Seed(ctx)
	})
}

// SaveDatabasePassword stores the database password in the OS keyring.
func (a *App) SaveDatabasePassword(password string) error {
	account := fmt.Sprintf("%s@%s", a.cfg.Database.User, a.cfg.Database.Host)
	return a.credential.SetDatabasePassword(account, password)
}

// SetDebugLogging toggles debug event emission.
func (a *App) SetDebugLogging(enabled bool) {
	debug.SetEnabled(enabled)
}

// =============================================================================
// Read Methods
// =============================================================================

func (a *App) GetCollectors() {
	a.bridge.Submit(core.EventCollectors, func(ctx context.Context) (interface{}, error) {
		return a.store.Collectors(ctx)
	})
}

func (a *App) GetCollections() {
	a.bridge.Submit(core.EventCollections, func(ctx context.Context) (interface{}, error) {
		return a.store.Collections(ctx)
	})
}

func (a *App) GetCatalog() {
	a.bridge.Submit(core.EventCatalog, func(ctx context.Context) (interface{}, error) {
		return a.store.Catalog(ctx)
	})
}

func (a *App) GetCountries() {
	a.bridge.Submit(core.EventCountries, func(ctx context.Context) (interface{}, error) {
		return a.store.Countries(ctx)
	})
}

func (a *App) GetCollectionTypes() {
	a.bridge.Submit(core.EventCollectionTypeList, func(ctx context.Context) (interface{}, error) {
		return a.store.CollectionTypes(ctx)
	})
}

func (a *App) GetStatistics() {
	a.bridge.Submit(core.EventStatistics, func(ctx context.Context) (interface{}, error) {
		return a.store.Statistics(ctx)
	})
}

func (a *App) GetCollectionTypeStats() {
	a.bridge.Submit(core.EventCollectionTypeStats, func(ctx context.Context) (interface{}, error) {
		return a.store.CollectionTypeStats(ctx)
	})
}

func (a *App) GetCountryStats() {
	a.bridge.Submit(core.EventCountryStats, func(ctx context.Context) (interface{}, error) {
		return a.store.CountryStats(ctx)
	})
}

// =============================================================================
// Collector Methods
// =============================================================================

func (a *App) AddCollector(data CollectorData) {
	a.bridge.Submit(core.EventCollectorAdded, func(ctx context.Context) (interface{}, error) {
		return a.store.AddCollector(ctx, data)
	})
}

func (a *App) UpdateCollector(collectorID int64, data CollectorData) {
	a.bridge.Submit(core.EventCollectorUpdated, func(ctx context.Context) (interface{}, error) {
		return a.store.UpdateCollector(ctx, collectorID, data)
	})
}

func (a *App) DeleteCollector(collectorID int64) {
	a.bridge.Submit(core.EventCollectorDeleted, func(ctx context.Context) (interface{}, error) {
		return collectorID, a.store.DeleteCollector(ctx, collectorID)
	})
}

// =============================================================================
// Collection Methods
// =============================================================================

func (a *App) AddCollection(data CollectionData) {
	a.bridge.Submit(core.EventCollectionAdded, func(ctx context.Context) (interface{}, error) {
		return a.store.AddCollection(ctx, data)
	})
}

func (a *App) UpdateCollection(collectionID int64, data CollectionData) {
	a.bridge.Submit(core.EventCollectionUpdated, func(ctx context.Context) (interface{}, error) {
		return a.store.UpdateCollection(ctx, collectionID, data)
	})
}

func (a *App) DeleteCollection(collectionID int64) {
	a.bridge.Submit(core.EventCollectionDeleted, func(ctx context.Context) (interface{}, error) {
		return collectionID, a.store.DeleteCollection(ctx, collectionID)
	})
}

func (a *App) AddCollectionItem(item CollectionItem) {
	a.bridge.Submit(core.EventCollectionItemAdded, func(ctx context.Context) (interface{}, error) {
		return a.store.AddCollectionItem(ctx, item)
	})
}

// =============================================================================
// Catalog Methods
// =============================================================================

func (a *App) AddCatalogItem(data CatalogItemData) {
	a.bridge.Submit(core.EventCatalogItemAdded, func(ctx context.Context) (interface{}, error) {
		return a.store.AddCatalogItem(ctx, data)
	})
}

func (a *App) UpdateCatalogItem(itemID int64, data CatalogItemData) {
	a.bridge.Submit(core.EventCatalogItemUpdated, func(ctx context.Context) (interface{}, error) {
		return a.store.UpdateCatalogItem(ctx, itemID, data)
	})
}

func (a *App) DeleteCatalogItem(itemID int64) {
	a.bridge.Submit(core.EventCatalogItemDeleted, func(ctx context.Context) (interface{}, error) {
		return itemID, a.store.DeleteCatalogItem(ctx, itemID)
	})
}

// =============================================================================
// Export Methods
// =============================================================================

func (a *App) ExportCollectorsCSV(defaultFilename string) (string, error) {
	return a.export.ExportCollectorsCSV(defaultFilename)
}

func (a *App) ExportCollectionsCSV(defaultFilename string) (string, error) {
	return a.export.ExportCollectionsCSV(defaultFilename)
}

func (a *App) ExportCatalogCSV(defaultFilename string) (string, error) {
	return a.export.ExportCatalogCSV(defaultFilename)
}

func (a *App) ExportSummaryCSV(defaultFilename string) (string, error) {
	return a.export.ExportSummaryCSV(defaultFilename)
}

func (a *App) RevealInFinder(filePath string) error {
	return a.export.RevealInFinder(filePath)
}
