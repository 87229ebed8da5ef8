package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"bons-travail/internal/config"
	"bons-travail/internal/logger"
	"bons-travail/internal/service/auth"
	"bons-travail/internal/service/dashboard"
	"bons-travail/internal/service/generate-excel"
	"bons-travail/internal/service/inventory"
	"bons-travail/internal/service/options"
	"bons-travail/internal/service/workorder"
	"bons-travail/internal/storage"
	"bons-travail/internal/storage/gormdb"
	"bons-travail/internal/storage/jsonfile"
	"bons-travail/internal/storage/mysql"
)

type services struct {
	auth       *auth.AuthService
	workOrders *workorder.WorkOrderService
	inventory  *inventory.InventoryService
	options    *options.OptionsService
	dashboard  *dashboard.DashboardService
	excel      *generate_excel.GenerateExcelService
}

func main() {
	cfg := config.MustConfig()

	log, errLog := logger.Setup(cfg.Env, cfg.ErrorLog)
	defer errLog.Close()

	store, err := openStorage(cfg.Storage)
	if err != nil {
		log.Error("failed to open storage", slog.String("driver", cfg.Storage.Driver), logger.Err(err))
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newServices(ctx, cfg, log, store)
	if err != nil {
		log.Error("failed to init services", logger.Err(err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(cfg, log, svc),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	log.Info("server started",
		slog.String("address", cfg.Address),
		slog.String("env", cfg.Env),
		slog.String("storage", cfg.Storage.Driver),
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", logger.Err(err))
		return
	}

	log.Info("server stopped")
}

func openStorage(cfg config.Storage) (storage.Store, error) {
	switch cfg.Driver {
	case config.DriverJSON:
		s, err := jsonfile.New(cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverMySQL:
		s, err := mysql.New(cfg.DSN, cfg.Migrate)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverPostgres, config.DriverSQLite:
		dialect := gormdb.DialectSQLite
		if cfg.Driver == config.DriverPostgres {
			dialect = gormdb.DialectPostgres
		}
		s, err := gormdb.New(dialect, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, errors.New("unknown storage driver " + cfg.Driver)
}

func newServices(ctx context.Context, cfg *config.Config, log *slog.Logger, store storage.Store) (*services, error) {
	authService, err := auth.NewAuthService(store, auth.Config{
		Scheme:    cfg.Auth.PasswordScheme,
		JWTSecret: cfg.Auth.JWTSecret,
		TokenTTL:  cfg.Auth.TokenTTL,
	})
	if err != nil {
		return nil, err
	}
	if cfg.Auth.PasswordScheme == auth.SchemeSHA256 {
		log.Warn("password scheme sha256 is unsalted, use bcrypt")
	}

	catalog := options.DefaultCatalog()
	if cfg.CatalogPath != "" {
		catalog, err = options.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			return nil, err
		}
	}

	optionsService := options.NewOptionsService(store)

	seedCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := optionsService.Seed(seedCtx, catalog); err != nil {
		return nil, err
	}

	needs, err := authService.NeedsBootstrap(seedCtx)
	if err != nil {
		return nil, err
	}
	if needs {
		log.Warn("no user yet, create the first manager with POST /api/auth/bootstrap")
	}

	return &services{
		auth:       authService,
		workOrders: workorder.NewWorkOrderService(store, log),
		inventory:  inventory.NewInventoryService(store),
		options:    optionsService,
		dashboard:  dashboard.NewDashboardService(store),
		excel:      generate_excel.NewGenerateService(store),
	}, nil
}
