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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/petalworks/registry/backend/internal/config"
	"github.com/petalworks/registry/backend/internal/database"
	"github.com/petalworks/registry/backend/internal/gateway"
	"github.com/petalworks/registry/backend/internal/logging"
	"github.com/petalworks/registry/backend/internal/registry"
)

var (
	cfgFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "registry-api",
		Short: "Wedding registry backend service",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}

	setupFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupFlags(cmd *cobra.Command) {
	config.ApplyDefaults(viper.GetViper())
	defaults := config.NewViper()
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to configuration file")
	cmd.PersistentFlags().String("http-address", defaults.GetString("http.address"), "HTTP listen address")
	cmd.PersistentFlags().String("path-prefix", defaults.GetString("http.path_prefix"), "Path prefix stripped before route matching")
	cmd.PersistentFlags().String("database-path", defaults.GetString("database.path"), "SQLite database path")
	cmd.PersistentFlags().String("store-driver", defaults.GetString("store.driver"), "Store driver (sqlite, memory)")
	cmd.PersistentFlags().Bool("store-seed", defaults.GetBool("store.seed"), "Seed the store with the starter gift catalog")
	cmd.PersistentFlags().String("log-level", defaults.GetString("log.level"), "Log level (debug, info, warn, error)")

	bindFlag(cmd, "http.address", "http-address")
	bindFlag(cmd, "http.path_prefix", "path-prefix")
	bindFlag(cmd, "database.path", "database-path")
	bindFlag(cmd, "store.driver", "store-driver")
	bindFlag(cmd, "store.seed", "store-seed")
	bindFlag(cmd, "log.level", "log-level")
}

func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	if err := viper.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if cfgFile != "" && errors.As(err, &configNotFound) {
			return err
		}
	}

	return nil
}

func runServer(ctx context.Context) error {
	appConfig, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(appConfig.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	store, cleanup, err := buildStore(appConfig, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	if appConfig.SeedStore {
		if err := seedIfEmpty(ctx, store, logger); err != nil {
			return err
		}
	}

	handler, err := gateway.NewHTTPHandler(gateway.Dependencies{
		Store:       store,
		Logger:      logger,
		PathPrefix:  appConfig.PathPrefix,
		CORSOrigins: appConfig.CORSOrigins,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:    appConfig.HTTPAddress,
		Handler: handler,
	}

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("address", appConfig.HTTPAddress),
			zap.String("store_driver", appConfig.StoreDriver),
		)
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-signalCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func buildStore(appConfig config.AppConfig, logger *zap.Logger) (registry.Store, func(), error) {
	switch appConfig.StoreDriver {
	case config.StoreDriverMemory:
		store, err := registry.NewMemoryStore(registry.MemoryStoreConfig{
			Clock:      time.Now,
			IDProvider: registry.NewUUIDProvider(),
		})
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil

	case config.StoreDriverSQLite:
		db, err := database.OpenSQLite(appConfig.DatabasePath, logger)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		store, err := registry.NewSQLStore(registry.SQLStoreConfig{
			Database:   db,
			Clock:      time.Now,
			IDProvider: registry.NewUUIDProvider(),
			Logger:     logger,
		})
		if err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
		return store, func() { sqlDB.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", appConfig.StoreDriver)
	}
}

func seedIfEmpty(ctx context.Context, store registry.Store, logger *zap.Logger) error {
	gifts, err := store.ListGifts(ctx)
	if err != nil {
		return err
	}
	if len(gifts) > 0 {
		return nil
	}

	starter := registry.StarterGifts()
	if err := registry.SeedGifts(ctx, store, starter); err != nil {
		return err
	}
	logger.Info("seeded starter gift catalog", zap.Int("gifts", len(starter)))
	return nil
}
